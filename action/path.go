package action

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/tweezer/grid"
)

// Path is a finished trace bound to the global tones it was compiled against.
// Local tone index i along x addresses global tone XTones[i].
type Path struct {
	XTones  []int
	YTones  []int
	Actions []Action
}

// NewPath validates and builds a Path.
// Tones must be non-negative and unique per axis (ErrBadTone); every grid of
// the trace must have shape len(xTones)×len(yTones) (grid.ErrShapeMismatch);
// selectors must stay within that shape (ErrToneIndex).
// Complexity: O(len(actions) + total waypoints).
func NewPath(xTones, yTones []int, actions []Action) (Path, error) {
	if err := checkTones(xTones); err != nil {
		return Path{}, fmt.Errorf("x tones: %w", err)
	}
	if err := checkTones(yTones); err != nil {
		return Path{}, fmt.Errorf("y tones: %w", err)
	}
	if err := CheckShape(actions, len(xTones), len(yTones)); err != nil {
		return Path{}, err
	}

	return Path{
		XTones:  slices.Clone(xTones),
		YTones:  slices.Clone(yTones),
		Actions: slices.Clone(actions),
	}, nil
}

func checkTones(tones []int) error {
	seen := make(map[int]struct{}, len(tones))
	for _, t := range tones {
		if t < 0 {
			return fmt.Errorf("%w: negative tone %d", ErrBadTone, t)
		}
		if _, dup := seen[t]; dup {
			return fmt.Errorf("%w: duplicate tone %d", ErrBadTone, t)
		}
		seen[t] = struct{}{}
	}

	return nil
}

// CheckShape verifies that every grid in actions has shape nx×ny and that
// every selector resolves within it.
func CheckShape(actions []Action, nx, ny int) error {
	checkGrid := func(i int, g grid.Grid) error {
		if w, h := g.Shape(); w != nx || h != ny {
			return fmt.Errorf("action %d: %w: %dx%d vs tones %dx%d", i, grid.ErrShapeMismatch, w, h, nx, ny)
		}
		return nil
	}
	checkSel := func(i int, x, y Selector) error {
		if _, err := x.Resolve(nx); err != nil {
			return fmt.Errorf("action %d: x: %w", i, err)
		}
		if _, err := y.Resolve(ny); err != nil {
			return fmt.Errorf("action %d: y: %w", i, err)
		}
		return nil
	}
	for i, a := range actions {
		var err error
		switch act := a.(type) {
		case SetLocation:
			err = checkGrid(i, act.Grid)
		case TurnOn:
			err = checkSel(i, act.X, act.Y)
		case TurnOff:
			err = checkSel(i, act.X, act.Y)
		case Move:
			for _, w := range act.Waypoints {
				if err = checkGrid(i, w); err != nil {
					break
				}
			}
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// TraceShape returns the tone counts a trace needs, read from its first grid.
// ok is false when the trace holds no grid. All grids must agree.
func TraceShape(actions []Action) (nx, ny int, ok bool, err error) {
	start, found := InitialPosition(actions)
	if !found {
		return 0, 0, false, nil
	}
	nx, ny = start.Shape()
	if err := CheckShape(actions, nx, ny); err != nil {
		return 0, 0, false, err
	}

	return nx, ny, true, nil
}

// Shape returns the number of x and y tones the path occupies.
func (p Path) Shape() (nx, ny int) {
	return len(p.XTones), len(p.YTones)
}

// Reverse returns the time-reversed path on the same tones.
func (p Path) Reverse() (Path, error) {
	actions, err := Reverse(p.Actions)
	if err != nil {
		return Path{}, err
	}

	return Path{XTones: slices.Clone(p.XTones), YTones: slices.Clone(p.YTones), Actions: actions}, nil
}

// GlobalX maps a selector over local x indices to global x tones.
func (p Path) GlobalX(s Selector) ([]int, error) {
	return mapTones(s, p.XTones)
}

// GlobalY maps a selector over local y indices to global y tones.
func (p Path) GlobalY(s Selector) ([]int, error) {
	return mapTones(s, p.YTones)
}

func mapTones(s Selector, tones []int) ([]int, error) {
	local, err := s.Resolve(len(tones))
	if err != nil {
		return nil, err
	}
	out := make([]int, len(local))
	for k, i := range local {
		out[k] = tones[i]
	}

	return out, nil
}

// Equal reports structural equality of two paths.
func (p Path) Equal(o Path) bool {
	return slices.Equal(p.XTones, o.XTones) &&
		slices.Equal(p.YTones, o.YTones) &&
		EqualTrace(p.Actions, o.Actions)
}
