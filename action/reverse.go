package action

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/tweezer/grid"
)

// Inverse returns the action that undoes a.
// TurnOn and TurnOff swap; Move walks its waypoints backwards.
// SetLocation has no inverse and yields ErrInvalidReverse.
func Inverse(a Action) (Action, error) {
	switch act := a.(type) {
	case TurnOn:
		return TurnOff{X: act.X, Y: act.Y}, nil
	case TurnOff:
		return TurnOn{X: act.X, Y: act.Y}, nil
	case Move:
		w := slices.Clone(act.Waypoints)
		slices.Reverse(w)
		return Move{Waypoints: w}, nil
	case SetLocation:
		return nil, fmt.Errorf("%w: %v", ErrInvalidReverse, act)
	}

	return nil, fmt.Errorf("%w: unknown action %T", ErrInvalidReverse, a)
}

// Reverse returns the time-reversed trace: actions in reverse order, each
// replaced by its inverse.
//
// A SetLocation heading the trace is not inverted. The reversed trace instead
// starts with SetLocation at the forward trace's final position, so that
// Reverse(Reverse(a)) == a. A SetLocation anywhere else yields
// ErrInvalidReverse.
// Complexity: O(len(actions) + total waypoints).
func Reverse(actions []Action) ([]Action, error) {
	out := make([]Action, 0, len(actions))
	body := actions
	if len(actions) > 0 {
		if _, ok := actions[0].(SetLocation); ok {
			final, _ := FinalPosition(actions)
			out = append(out, SetLocation{Grid: final})
			body = actions[1:]
		}
	}
	for i := len(body) - 1; i >= 0; i-- {
		inv, err := Inverse(body[i])
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i+len(actions)-len(body), err)
		}
		out = append(out, inv)
	}

	return out, nil
}

// FinalPosition returns the position the tones occupy after the trace:
// the last waypoint of the last Move, or the last SetLocation grid.
func FinalPosition(actions []Action) (grid.Grid, bool) {
	for i := len(actions) - 1; i >= 0; i-- {
		switch act := actions[i].(type) {
		case Move:
			if len(act.Waypoints) > 0 {
				return act.Last(), true
			}
		case SetLocation:
			return act.Grid, true
		case TurnOn, TurnOff:
		}
	}

	return grid.Grid{}, false
}

// InitialPosition returns the position the tones occupy before the trace:
// the SetLocation grid or the first waypoint of the first Move.
func InitialPosition(actions []Action) (grid.Grid, bool) {
	for _, a := range actions {
		switch act := a.(type) {
		case SetLocation:
			return act.Grid, true
		case Move:
			if len(act.Waypoints) > 0 {
				return act.Waypoints[0], true
			}
		case TurnOn, TurnOff:
		}
	}

	return grid.Grid{}, false
}

// Equal reports structural equality of two actions.
func Equal(a, b Action) bool {
	switch x := a.(type) {
	case SetLocation:
		y, ok := b.(SetLocation)
		return ok && x.Grid.Equal(y.Grid)
	case TurnOn:
		y, ok := b.(TurnOn)
		return ok && x.X.Equal(y.X) && x.Y.Equal(y.Y)
	case TurnOff:
		y, ok := b.(TurnOff)
		return ok && x.X.Equal(y.X) && x.Y.Equal(y.Y)
	case Move:
		y, ok := b.(Move)
		return ok && slices.EqualFunc(x.Waypoints, y.Waypoints, grid.Grid.Equal)
	}

	return false
}

// EqualTrace reports element-wise equality of two traces.
func EqualTrace(a, b []Action) bool {
	return slices.EqualFunc(a, b, Equal)
}

// Kinds returns the kind sequence of a trace.
func Kinds(actions []Action) []Kind {
	out := make([]Kind, len(actions))
	for i, a := range actions {
		out[i] = a.Kind()
	}

	return out
}
