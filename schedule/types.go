package schedule

import (
	"errors"
	"io"
	"log/slog"
)

// Sentinel errors for scheduling.
var (
	// ErrUnboundTones indicates tones that are not compile-time constants, or
	// trace generation for a task that never received tones.
	ErrUnboundTones = errors.New("schedule: tones are not bound")

	// ErrNotConstant indicates a task reference or input that is not a
	// compile-time constant.
	ErrNotConstant = errors.New("schedule: value is not a compile-time constant")

	// ErrNotSchedulable indicates an operand of the wrong lattice kind.
	ErrNotSchedulable = errors.New("schedule: operand is not schedulable")

	// ErrSchedulingConflict indicates an auto group whose disjointness cannot
	// be decided.
	ErrSchedulingConflict = errors.New("schedule: cannot schedule auto group")

	// ErrMisaligned indicates parallel members whose traces cannot run in lockstep.
	ErrMisaligned = errors.New("schedule: traces cannot run in lockstep")

	// ErrSharedTones indicates parallel members that switch the tones they
	// share differently.
	ErrSharedTones = errors.New("schedule: shared tones switched differently")

	// ErrToneBudget indicates a tone request beyond the AOD's tone count.
	ErrToneBudget = errors.New("schedule: tone budget exceeded")

	// ErrScheduleIncomplete indicates a played value that is still unscheduled.
	ErrScheduleIncomplete = errors.New("schedule: schedule incomplete")
)

// Options configures an Analyzer.
type Options struct {
	// Scheduler groups auto members. Defaults to a GreedyScheduler with the
	// tone budget below.
	Scheduler Scheduler

	// MaxXTones and MaxYTones bound tone indices; 0 means unbounded.
	MaxXTones int
	MaxYTones int

	// Logger receives debug records per analyzed statement.
	Logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Options)

// DefaultOptions returns options with an unbounded tone budget, the greedy
// scheduler and a discarding logger.
func DefaultOptions() Options {
	return Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithScheduler installs a custom Scheduler.
func WithScheduler(s Scheduler) Option {
	return func(o *Options) { o.Scheduler = s }
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
