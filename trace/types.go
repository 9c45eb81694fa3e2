package trace

import (
	"errors"

	"github.com/katalvlaran/tweezer/action"
	"github.com/katalvlaran/tweezer/grid"
)

// Sentinel errors for trace generation.
var (
	// ErrUnsetPosition indicates an intensity or move action before SetLocation.
	ErrUnsetPosition = errors.New("trace: position of AOD not set")

	// ErrPositionReset indicates a second SetLocation to a different grid.
	ErrPositionReset = errors.New("trace: position already set")

	// ErrBadArgument indicates a missing or ill-typed task argument.
	ErrBadArgument = errors.New("trace: bad task argument")

	// ErrNilTask indicates Run was called without a task.
	ErrNilTask = errors.New("trace: task is nil")
)

// Task is an unbound relocation program. Trace drives g with the primitive
// actions of the task for the given arguments.
type Task interface {
	Name() string
	Trace(g *Generator, args ...any) error
}

// Generator accumulates the trace of one task run.
type Generator struct {
	pos     grid.Grid
	hasPos  bool
	inRun   bool
	actions []action.Action
}

// NewGenerator returns an empty Generator.
func NewGenerator() *Generator {
	return &Generator{}
}
