package trace

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/tweezer/action"
	"github.com/katalvlaran/tweezer/grid"
)

// funcTask adapts a plain function to Task.
type funcTask struct {
	name string
	fn   func(g *Generator, args ...any) error
}

// NewTask wraps fn as a named Task. The returned value is comparable by
// identity, so two calls with the same name yield distinct tasks.
func NewTask(name string, fn func(g *Generator, args ...any) error) Task {
	return &funcTask{name: name, fn: fn}
}

func (t *funcTask) Name() string { return t.name }

func (t *funcTask) Trace(g *Generator, args ...any) error {
	return t.fn(g, args...)
}

// GridOperand yields the grid of a scripted step from the call arguments.
type GridOperand func(args []any) (grid.Grid, error)

// Fixed is an operand that ignores the arguments.
func Fixed(g grid.Grid) GridOperand {
	return func([]any) (grid.Grid, error) { return g, nil }
}

// Param is an operand that reads argument i, which must be a grid.Grid.
func Param(i int) GridOperand {
	return func(args []any) (grid.Grid, error) {
		if i < 0 || i >= len(args) {
			return grid.Grid{}, fmt.Errorf("%w: parameter %d of %d", ErrBadArgument, i, len(args))
		}
		g, ok := args[i].(grid.Grid)
		if !ok {
			return grid.Grid{}, fmt.Errorf("%w: parameter %d is %T, want grid.Grid", ErrBadArgument, i, args[i])
		}
		return g, nil
	}
}

// Step is one primitive of a Script. Grid is used by SetLocation and Move,
// X and Y by TurnOn and TurnOff.
type Step struct {
	Op   action.Kind
	Grid GridOperand
	X, Y action.Selector
}

// Script is a data-driven Task: an ordered list of steps over named grid
// parameters.
type Script struct {
	name   string
	params []string
	steps  []Step
}

// NewScript builds a Script named name with the given parameter names.
func NewScript(name string, params []string, steps ...Step) *Script {
	return &Script{name: name, params: slices.Clone(params), steps: slices.Clone(steps)}
}

// Name returns the script name.
func (s *Script) Name() string { return s.name }

// Params returns the parameter names in call order.
func (s *Script) Params() []string { return slices.Clone(s.params) }

// Trace replays the steps on g.
func (s *Script) Trace(g *Generator, args ...any) error {
	if len(args) < len(s.params) {
		return fmt.Errorf("%w: %s wants %d arguments, got %d", ErrBadArgument, s.name, len(s.params), len(args))
	}
	for i, st := range s.steps {
		if err := s.step(g, st, args); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, st.Op, err)
		}
	}

	return nil
}

func (s *Script) step(g *Generator, st Step, args []any) error {
	switch st.Op {
	case action.KindSetLocation, action.KindMove:
		if st.Grid == nil {
			return fmt.Errorf("%w: missing grid operand", ErrBadArgument)
		}
		pos, err := st.Grid(args)
		if err != nil {
			return err
		}
		if st.Op == action.KindSetLocation {
			return g.SetLocation(pos)
		}
		return g.Move(pos)
	case action.KindTurnOn:
		return g.TurnOn(st.X, st.Y)
	case action.KindTurnOff:
		return g.TurnOff(st.X, st.Y)
	}

	return fmt.Errorf("%w: unknown step %v", ErrBadArgument, st.Op)
}
