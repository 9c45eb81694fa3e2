package aodstate

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/samber/lo"

	"github.com/katalvlaran/tweezer/action"
	"github.com/katalvlaran/tweezer/grid"
	"github.com/katalvlaran/tweezer/schedule"
)

// placement assigns coordinates to global tones.
type placement struct {
	x, y map[int]float64
}

// event is one lockstep step expressed in global tones.
type event struct {
	kind      action.Kind
	x, y      []int
	waypoints []placement
	jumps     AODJump
}

// Checker interprets schedules on one device, group after group.
// A Checker is not safe for concurrent use.
type Checker struct {
	opts      Options
	state     State
	group     int
	violation *Violation
}

// NewChecker returns a Checker for a device with every tone idle.
func NewChecker(opts ...Option) *Checker {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &Checker{opts: o, state: Idle()}
}

// State returns the current device state.
func (c *Checker) State() State { return c.state }

// ApplyPath interprets a single path.
func (c *Checker) ApplyPath(p action.Path) error {
	return c.ApplyGroup([]action.Path{p})
}

// ApplyGroup interprets paths in lockstep. The first violation is returned as
// a *Violation and returned again by every later call.
func (c *Checker) ApplyGroup(paths []action.Path) error {
	if c.violation != nil {
		return c.violation
	}
	traces := lo.Map(paths, func(p action.Path, _ int) []action.Action { return p.Actions })
	frames, err := schedule.Align(traces...)
	if err != nil {
		return fmt.Errorf("group %d: %w", c.group, err)
	}

	held := newHoldings(len(paths))
	for k, f := range frames {
		ev := lower(f, paths)
		if xs, ys := c.outOfRange(ev); len(xs)+len(ys) > 0 {
			c.state = Top()
			return c.fail(k, f.Kind, ErrToneRange, xs, ys)
		}

		cur, ok := c.state.(AOD)
		if !ok {
			return fmt.Errorf("group %d step %d: device state is %v", c.group, k, c.state)
		}
		orphaned := held.update(f, paths)
		next, xs, ys := apply(cur, ev)
		c.state = next
		c.opts.Logger.Debug("checked step",
			slog.Int("group", c.group),
			slog.Int("step", k),
			slog.String("kind", f.Kind.String()),
			slog.String("state", next.String()),
		)
		if IsViolation(next) {
			return c.fail(k, f.Kind, sentinel(next), xs, ys)
		}
		if len(orphaned.X)+len(orphaned.Y) > 0 {
			c.state = orphaned
			return c.fail(k, f.Kind, ErrToneShared, sortedKeys(orphaned.X), sortedKeys(orphaned.Y))
		}
	}
	c.group++

	return nil
}

func (c *Checker) fail(step int, kind action.Kind, err error, xs, ys []int) error {
	c.violation = &Violation{
		Err:    err,
		Group:  c.group,
		Step:   step,
		Kind:   kind,
		XTones: xs,
		YTones: ys,
		State:  c.state,
	}

	return c.violation
}

func sentinel(s State) error {
	switch s.Kind() {
	case KindCollision:
		return ErrToneCollision
	case KindJump:
		return ErrToneJump
	case KindIdle:
		return ErrToneIdle
	case KindShared:
		return ErrToneShared
	}

	return nil
}

func (c *Checker) outOfRange(ev event) (xs, ys []int) {
	over := func(tones []int, limit int) []int {
		if limit <= 0 {
			return nil
		}
		return lo.Filter(tones, func(t int, _ int) bool { return t >= limit })
	}
	xs, ys = over(ev.x, c.opts.MaxXTones), over(ev.y, c.opts.MaxYTones)
	for _, w := range ev.waypoints {
		xs = append(xs, over(sortedKeys(w.x), c.opts.MaxXTones)...)
		ys = append(ys, over(sortedKeys(w.y), c.opts.MaxYTones)...)
	}

	return sortedUniq(xs), sortedUniq(ys)
}

// CheckSchedule interprets every group of s in order on an idle device.
func CheckSchedule(s schedule.Schedule, opts ...Option) (State, error) {
	c := NewChecker(opts...)
	for _, g := range s.Groups {
		if err := c.ApplyGroup(g.Paths); err != nil {
			return c.State(), err
		}
	}

	return c.State(), nil
}

// Check interprets a single path on an idle device.
func Check(p action.Path, opts ...Option) (State, error) {
	c := NewChecker(opts...)
	err := c.ApplyPath(p)

	return c.State(), err
}

// lower merges one aligned frame into a device event.
func lower(f schedule.Frame, paths []action.Path) event {
	ev := event{kind: f.Kind, jumps: AODJump{X: map[int]Jump{}, Y: map[int]Jump{}}}
	var grids [][]grid.Grid
	owners := make([]int, 0, len(paths))
	for i, a := range f.Actions {
		switch act := a.(type) {
		case nil:
		case action.SetLocation:
			grids = append(grids, []grid.Grid{act.Grid})
			owners = append(owners, i)
		case action.Move:
			grids = append(grids, act.Waypoints)
			owners = append(owners, i)
		case action.TurnOn:
			ev.x, ev.y = addTones(ev.x, ev.y, paths[i], act.X, act.Y)
		case action.TurnOff:
			ev.x, ev.y = addTones(ev.x, ev.y, paths[i], act.X, act.Y)
		}
	}
	ev.x, ev.y = sortedUniq(ev.x), sortedUniq(ev.y)

	steps := 0
	for _, ws := range grids {
		steps = max(steps, len(ws))
	}
	for k := range steps {
		pl := placement{x: map[int]float64{}, y: map[int]float64{}}
		for m, ws := range grids {
			if k >= len(ws) {
				continue
			}
			p := paths[owners[m]]
			place(pl.x, ev.jumps.X, p.XTones, ws[k].XPositions())
			place(pl.y, ev.jumps.Y, p.YTones, ws[k].YPositions())
		}
		ev.waypoints = append(ev.waypoints, pl)
	}

	return ev
}

func addTones(xs, ys []int, p action.Path, x, y action.Selector) ([]int, []int) {
	// Selectors were validated against the path shape when it was built.
	gx, _ := p.GlobalX(x)
	gy, _ := p.GlobalY(y)

	return append(xs, gx...), append(ys, gy...)
}

// holdings records, per group member, the global tones it turned on and has
// not turned off.
type holdings struct {
	x, y []map[int]bool
}

func newHoldings(n int) holdings {
	h := holdings{x: make([]map[int]bool, n), y: make([]map[int]bool, n)}
	for i := range n {
		h.x[i], h.y[i] = map[int]bool{}, map[int]bool{}
	}

	return h
}

type claim struct{ member, tone int }

// update applies the intensity actions of f. A tone switched off by one
// member orphans another member that held it and afterwards still holds it
// or any tone on the other axis; those tones are returned with the members.
func (h holdings) update(f schedule.Frame, paths []action.Path) AODShared {
	out := AODShared{X: map[int][]int{}, Y: map[int][]int{}}
	if f.Kind != action.KindTurnOn && f.Kind != action.KindTurnOff {
		return out
	}

	rx, ry := make([][]int, len(paths)), make([][]int, len(paths))
	for i, a := range f.Actions {
		switch act := a.(type) {
		case action.TurnOn:
			gx, gy := addTones(nil, nil, paths[i], act.X, act.Y)
			lo.ForEach(gx, func(t int, _ int) { h.x[i][t] = true })
			lo.ForEach(gy, func(t int, _ int) { h.y[i][t] = true })
		case action.TurnOff:
			rx[i], ry[i] = addTones(nil, nil, paths[i], act.X, act.Y)
		}
	}

	var cx, cy []claim
	for j := range paths {
		for i := range paths {
			if i == j {
				continue
			}
			cx = append(cx, claims(j, rx[i], h.x[j])...)
			cy = append(cy, claims(j, ry[i], h.y[j])...)
		}
	}
	for i := range paths {
		lo.ForEach(rx[i], func(t int, _ int) { delete(h.x[i], t) })
		lo.ForEach(ry[i], func(t int, _ int) { delete(h.y[i], t) })
	}

	for _, c := range cx {
		if h.x[c.member][c.tone] || len(h.y[c.member]) > 0 {
			out.X[c.tone] = sortedUniq(append(out.X[c.tone], c.member))
		}
	}
	for _, c := range cy {
		if h.y[c.member][c.tone] || len(h.x[c.member]) > 0 {
			out.Y[c.tone] = sortedUniq(append(out.Y[c.tone], c.member))
		}
	}

	return out
}

func claims(member int, released []int, held map[int]bool) []claim {
	var out []claim
	for _, t := range released {
		if held[t] {
			out = append(out, claim{member, t})
		}
	}

	return out
}

// place records coords for tones, noting members that disagree on a tone.
func place(dst map[int]float64, jumps map[int]Jump, tones []int, coords []float64) {
	for i, t := range tones {
		if i >= len(coords) {
			return
		}
		if prev, ok := dst[t]; ok && prev != coords[i] {
			jumps[t] = Jump{From: prev, To: coords[i]}
			continue
		}
		dst[t] = coords[i]
	}
}

// apply interprets ev on s and returns the offending tones of a violation.
func apply(s AOD, ev event) (State, []int, []int) {
	if len(ev.jumps.X)+len(ev.jumps.Y) > 0 {
		return ev.jumps, sortedKeys(ev.jumps.X), sortedKeys(ev.jumps.Y)
	}

	switch ev.kind {
	case action.KindSetLocation, action.KindMove:
		if len(ev.waypoints) == 0 {
			return s, nil, nil
		}
		jumps := AODJump{
			X: jumped(s.XTones, s.XPos, ev.waypoints[0].x),
			Y: jumped(s.YTones, s.YPos, ev.waypoints[0].y),
		}
		if len(jumps.X)+len(jumps.Y) > 0 {
			return jumps, sortedKeys(jumps.X), sortedKeys(jumps.Y)
		}
		last := ev.waypoints[len(ev.waypoints)-1]
		next := s.clone()
		maps.Copy(next.XPos, last.x)
		maps.Copy(next.YPos, last.y)
		return next, nil, nil

	case action.KindTurnOn:
		dx := lo.Filter(ev.x, func(t int, _ int) bool { return slices.Contains(s.XTones, t) })
		dy := lo.Filter(ev.y, func(t int, _ int) bool { return slices.Contains(s.YTones, t) })
		if len(dx)+len(dy) > 0 {
			return AODCollision{X: twice(dx), Y: twice(dy)}, dx, dy
		}
		next := s.clone()
		next.XTones = sortedUniq(append(next.XTones, ev.x...))
		next.YTones = sortedUniq(append(next.YTones, ev.y...))
		return next, nil, nil

	case action.KindTurnOff:
		ix := lo.Filter(ev.x, func(t int, _ int) bool { return !slices.Contains(s.XTones, t) })
		iy := lo.Filter(ev.y, func(t int, _ int) bool { return !slices.Contains(s.YTones, t) })
		if len(ix)+len(iy) > 0 {
			return AODIdle{X: ix, Y: iy}, ix, iy
		}
		next := s.clone()
		next.XTones = lo.Without(next.XTones, ev.x...)
		next.YTones = lo.Without(next.YTones, ev.y...)
		return next, nil, nil
	}

	return Top(), nil, nil
}

// jumped returns the active tones whose coordinate in to differs from pos.
func jumped(active []int, pos, to map[int]float64) map[int]Jump {
	out := map[int]Jump{}
	for _, t := range active {
		c, moved := to[t]
		if from, known := pos[t]; moved && known && from != c {
			out[t] = Jump{From: from, To: c}
		}
	}

	return out
}

func (s AOD) clone() AOD {
	out := Idle()
	out.XTones = slices.Clone(s.XTones)
	out.YTones = slices.Clone(s.YTones)
	maps.Copy(out.XPos, s.XPos)
	maps.Copy(out.YPos, s.YPos)

	return out
}

func twice(tones []int) map[int]int {
	return lo.SliceToMap(tones, func(t int) (int, int) { return t, 2 })
}

func sortedKeys[V any](m map[int]V) []int {
	return slices.Sorted(maps.Keys(m))
}

func sortedUniq(v []int) []int {
	out := lo.Uniq(v)
	slices.Sort(out)

	return out
}
