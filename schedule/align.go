package schedule

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/katalvlaran/tweezer/action"
	"github.com/katalvlaran/tweezer/grid"
)

// Frame is one lockstep step of a group.
// Actions[i] belongs to member i and is nil once that member's trace ended.
// In a Move frame every non-nil member carries the same number of waypoints.
type Frame struct {
	Kind    action.Kind
	Actions []action.Action
}

// Align merges member traces into lockstep frames.
// Members must agree on the action kind of every step they share
// (ErrMisaligned). A shorter trace holds its final state. Shorter Move runs
// are padded by repeating their last waypoint.
// Complexity: O(total actions + total waypoints).
func Align(traces ...[]action.Action) ([]Frame, error) {
	steps := 0
	for _, t := range traces {
		steps = max(steps, len(t))
	}

	frames := make([]Frame, 0, steps)
	for k := 0; k < steps; k++ {
		f := Frame{Kind: -1, Actions: make([]action.Action, len(traces))}
		waypoints := 0
		for i, t := range traces {
			if k >= len(t) {
				continue
			}
			a := t[k]
			switch {
			case f.Kind < 0:
				f.Kind = a.Kind()
			case f.Kind != a.Kind():
				return nil, fmt.Errorf("%w: step %d: member %d has %v, expected %v", ErrMisaligned, k, i, a.Kind(), f.Kind)
			}
			if m, ok := a.(action.Move); ok {
				waypoints = max(waypoints, len(m.Waypoints))
			}
			f.Actions[i] = a
		}
		if f.Kind == action.KindMove {
			for i, a := range f.Actions {
				if a != nil {
					f.Actions[i] = padMove(a.(action.Move), waypoints)
				}
			}
		}
		frames = append(frames, f)
	}

	return frames, nil
}

func padMove(m action.Move, n int) action.Move {
	if len(m.Waypoints) >= n || len(m.Waypoints) == 0 {
		return m
	}
	w := make([]grid.Grid, n)
	copy(w, m.Waypoints)
	last := m.Last()
	for i := len(m.Waypoints); i < n; i++ {
		w[i] = last
	}

	return action.Move{Waypoints: w}
}

// Compatible reports whether two traces can run in lockstep.
func Compatible(a, b []action.Action) bool {
	for k := range min(len(a), len(b)) {
		if a[k].Kind() != b[k].Kind() {
			return false
		}
	}

	return true
}

// Coherent reports whether two members on tones ta and tb can share those
// tones in lockstep. At every TurnOn or TurnOff step where either member
// switches a tone the two share, both must switch the same shared tones and
// each must switch its whole tone set on the other axis. A shared tone may
// not be switched after the other member's trace ended. Members with no tone
// in common are always coherent.
// Complexity: O(steps·t) for t tones per member.
func Coherent(a, b []action.Action, ta, tb ToneData) bool {
	sx := lo.Intersect(ta.XTones, tb.XTones)
	sy := lo.Intersect(ta.YTones, tb.YTones)
	if len(sx) == 0 && len(sy) == 0 {
		return true
	}

	n := min(len(a), len(b))
	for k := range n {
		ax, ay, ok := switched(a[k], ta)
		if !ok {
			continue
		}
		bx, by, ok := switched(b[k], tb)
		if !ok {
			return false
		}
		if !sameShared(ay, by, sy, ax, bx, ta.XTones, tb.XTones) ||
			!sameShared(ax, bx, sx, ay, by, ta.YTones, tb.YTones) {
			return false
		}
	}

	return !switchesAfter(a[n:], ta, sx, sy) && !switchesAfter(b[n:], tb, sx, sy)
}

// switchesAfter reports whether the tail of a trace switches a shared tone
// once the other member has ended.
func switchesAfter(tail []action.Action, t ToneData, sx, sy []int) bool {
	return lo.SomeBy(tail, func(a action.Action) bool {
		x, y, ok := switched(a, t)
		return ok && (lo.Some(x, sx) || lo.Some(y, sy))
	})
}

// sameShared checks one shared axis: p and q are the switched tones on that
// axis, shared the tones both members own there, and po, qo the switched
// tones on the other axis against the full sets pAll, qAll.
func sameShared(p, q, shared, po, qo, pAll, qAll []int) bool {
	ps, qs := lo.Intersect(p, shared), lo.Intersect(q, shared)
	if len(ps) == 0 && len(qs) == 0 {
		return true
	}

	return sameSet(ps, qs) && sameSet(po, pAll) && sameSet(qo, qAll)
}

// switched resolves an intensity action to global tones. ok is false for
// other kinds and for selectors that do not resolve.
func switched(a action.Action, t ToneData) (x, y []int, ok bool) {
	p := action.Path{XTones: t.XTones, YTones: t.YTones}
	var xs, ys action.Selector
	switch v := a.(type) {
	case action.TurnOn:
		xs, ys = v.X, v.Y
	case action.TurnOff:
		xs, ys = v.X, v.Y
	default:
		return nil, nil, false
	}

	x, errX := p.GlobalX(xs)
	y, errY := p.GlobalY(ys)

	return x, y, errX == nil && errY == nil
}

func sameSet(a, b []int) bool {
	return len(lo.Uniq(a)) == len(lo.Uniq(b)) && lo.Every(a, b) && lo.Every(b, a)
}
