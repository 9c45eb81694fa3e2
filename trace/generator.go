package trace

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/tweezer/action"
	"github.com/katalvlaran/tweezer/grid"
)

// SetLocation places the tones at g without moving atoms.
// Returns ErrPositionReset when a different position was already set.
func (gen *Generator) SetLocation(g grid.Grid) error {
	if g.IsZero() {
		return grid.ErrEmptyAxis
	}
	if gen.hasPos {
		if gen.pos.Equal(g) {
			return nil
		}
		return fmt.Errorf("%w: at %v, asked for %v", ErrPositionReset, gen.pos, g)
	}
	gen.actions = append(gen.actions, action.SetLocation{Grid: g})
	gen.pos, gen.hasPos = g, true
	gen.inRun = false

	return nil
}

// TurnOn ramps up the tone rectangle x × y at the current position.
func (gen *Generator) TurnOn(x, y action.Selector) error {
	if err := gen.intensity(x, y); err != nil {
		return err
	}
	gen.actions = append(gen.actions, action.TurnOn{X: x, Y: y})

	return nil
}

// TurnOff ramps down the tone rectangle x × y at the current position.
func (gen *Generator) TurnOff(x, y action.Selector) error {
	if err := gen.intensity(x, y); err != nil {
		return err
	}
	gen.actions = append(gen.actions, action.TurnOff{X: x, Y: y})

	return nil
}

func (gen *Generator) intensity(x, y action.Selector) error {
	if !gen.hasPos {
		return fmt.Errorf("%w: before turning tones on/off", ErrUnsetPosition)
	}
	nx, ny := gen.pos.Shape()
	if _, err := x.Resolve(nx); err != nil {
		return fmt.Errorf("x: %w", err)
	}
	if _, err := y.Resolve(ny); err != nil {
		return fmt.Errorf("y: %w", err)
	}
	gen.inRun = false

	return nil
}

// Move continues the active waypoint run to g, or opens a new run from the
// current position. g must have the shape of the current position.
func (gen *Generator) Move(g grid.Grid) error {
	if !gen.hasPos {
		return fmt.Errorf("%w: before moving tones", ErrUnsetPosition)
	}
	if err := grid.CheckShape(gen.pos, g); err != nil {
		return fmt.Errorf("move from %v to %v: %w", gen.pos, g, err)
	}
	if gen.inRun {
		last := len(gen.actions) - 1
		run := gen.actions[last].(action.Move)
		run.Waypoints = append(slices.Clip(run.Waypoints), g)
		gen.actions[last] = run
	} else {
		gen.actions = append(gen.actions, action.Move{Waypoints: []grid.Grid{gen.pos, g}})
		gen.inRun = true
	}
	gen.pos = g

	return nil
}

// Position returns the currently addressed grid.
func (gen *Generator) Position() (grid.Grid, bool) {
	return gen.pos, gen.hasPos
}

// Actions returns a copy of the trace so far.
func (gen *Generator) Actions() []action.Action {
	return slices.Clone(gen.actions)
}

// Reset clears the generator for reuse.
func (gen *Generator) Reset() {
	*gen = Generator{}
}

// Run executes task with args on a fresh Generator and returns the trace.
func Run(task Task, args ...any) ([]action.Action, error) {
	if task == nil {
		return nil, ErrNilTask
	}
	gen := NewGenerator()
	if err := task.Trace(gen, args...); err != nil {
		return nil, fmt.Errorf("task %s: %w", task.Name(), err)
	}

	return gen.Actions(), nil
}
