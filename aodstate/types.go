package aodstate

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/katalvlaran/tweezer/action"
)

// Sentinel errors reported through *Violation.
var (
	// ErrToneCollision indicates a tone turned on while already active.
	ErrToneCollision = errors.New("aodstate: tone collision")

	// ErrToneJump indicates an active tone moved without a Move.
	ErrToneJump = errors.New("aodstate: tone jump")

	// ErrToneIdle indicates a tone turned off while idle.
	ErrToneIdle = errors.New("aodstate: turn-off of idle tone")

	// ErrToneShared indicates a member switching off a tone that another
	// member of its group still traps with.
	ErrToneShared = errors.New("aodstate: shared tone switched off under another member")

	// ErrToneRange indicates a tone index outside the tone budget.
	ErrToneRange = errors.New("aodstate: tone out of range")
)

// Violation locates an illegal action.
type Violation struct {
	Err    error
	Group  int // index of the group in a schedule, 0 for single paths
	Step   int // lockstep index within the group
	Kind   action.Kind
	XTones []int
	YTones []int
	State  State
}

func (v *Violation) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "group %d step %d (%v): %v", v.Group, v.Step, v.Kind, v.Err)
	if len(v.XTones) > 0 {
		fmt.Fprintf(&sb, " x=%v", v.XTones)
	}
	if len(v.YTones) > 0 {
		fmt.Fprintf(&sb, " y=%v", v.YTones)
	}

	return sb.String()
}

func (v *Violation) Unwrap() error { return v.Err }

// Options configures a Checker.
type Options struct {
	// MaxXTones and MaxYTones bound tone indices; 0 means unbounded.
	MaxXTones int
	MaxYTones int

	// Logger receives one debug record per interpreted step.
	Logger *slog.Logger
}

// Option configures a Checker.
type Option func(*Options)

// DefaultOptions returns unbounded tones and a discarding logger.
func DefaultOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithToneBudget bounds x and y tone indices to [0, maxX) and [0, maxY).
func WithToneBudget(maxX, maxY int) Option {
	return func(o *Options) {
		o.MaxXTones, o.MaxYTones = maxX, maxY
	}
}

// WithLogger sets the logger; nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
