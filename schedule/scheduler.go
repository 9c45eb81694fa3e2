package schedule

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/katalvlaran/tweezer/action"
)

// Scheduler partitions the members of an auto group into parallel windows.
type Scheduler interface {
	Schedule(paths []Lattice) (AutoSchedule, error)
}

// GreedyScheduler colours the conflict graph first-fit, in input order.
// A NeedsTones member receives the lowest free contiguous x range of the
// first group where it fits (y tones from 0), failing that the lowest free
// y range (x tones from 0). Tone indices stay below MaxXTones / MaxYTones
// when those are positive.
type GreedyScheduler struct {
	MaxXTones int
	MaxYTones int
}

// member is the scheduler's view of one auto member.
type member struct {
	tones     ToneData
	nx, ny    int
	actions   []action.Action
	unbound   bool
	composite bool
}

type window struct {
	members []int
	x, y    []int
}

// Schedule implements Scheduler.
// Complexity: O(n²·t) for n members with t tones each.
func (s GreedyScheduler) Schedule(paths []Lattice) (AutoSchedule, error) {
	ms := make([]member, len(paths))
	for i, p := range paths {
		m, err := s.describe(p)
		if err != nil {
			return AutoSchedule{}, fmt.Errorf("member %d: %w", i, err)
		}
		ms[i] = m
	}

	var windows []*window
	ids := make([]int, len(ms))
	for i := range ms {
		placed := false
		for g, w := range windows {
			if s.place(ms, i, w) {
				ids[i], placed = g, true
				break
			}
		}
		if !placed {
			w := &window{}
			if !s.place(ms, i, w) {
				return AutoSchedule{}, fmt.Errorf("member %d: %w: needs %dx%d tones, budget %dx%d",
					i, ErrToneBudget, ms[i].nx, ms[i].ny, s.MaxXTones, s.MaxYTones)
			}
			ids[i] = len(windows)
			windows = append(windows, w)
		}
	}

	out := AutoSchedule{
		Paths:    slices.Clone(paths),
		GroupIDs: ids,
		Tones:    make([]ToneData, len(ms)),
		Groups:   make([]ToneData, len(windows)),
	}
	for i, m := range ms {
		out.Tones[i] = m.tones
	}
	for g, w := range windows {
		out.Groups[g] = ToneData{XTones: w.x, YTones: w.y}
	}

	return out, nil
}

func (s GreedyScheduler) describe(p Lattice) (member, error) {
	switch l := p.(type) {
	case ConcretePath:
		return member{
			tones:   ToneData{XTones: l.Path.XTones, YTones: l.Path.YTones},
			actions: l.Path.Actions,
		}, nil
	case NeedsTones:
		nx, ny, ok, err := action.TraceShape(l.Actions)
		if err != nil {
			return member{}, err
		}
		if !ok {
			return member{}, fmt.Errorf("%w: trace never sets a position", ErrUnboundTones)
		}
		return member{nx: nx, ny: ny, actions: l.Actions, unbound: true}, nil
	case ParallelSchedule, AutoSchedule:
		t, err := occupied(p)
		if err != nil {
			return member{}, err
		}
		return member{tones: t, composite: true}, nil
	}

	return member{}, fmt.Errorf("%w: %v", ErrSchedulingConflict, p)
}

// occupied returns the sorted union of tones a bound schedule uses.
func occupied(p Lattice) (ToneData, error) {
	switch l := p.(type) {
	case ConcretePath:
		return ToneData{XTones: sorted(l.Path.XTones), YTones: sorted(l.Path.YTones)}, nil
	case ParallelSchedule:
		var acc ToneData
		for _, m := range l.Paths {
			t, err := occupied(m)
			if err != nil {
				return ToneData{}, err
			}
			acc = union(acc, t)
		}
		return acc, nil
	case AutoSchedule:
		if slices.ContainsFunc(l.Paths, needsTones) {
			return ToneData{}, fmt.Errorf("%w: nested auto group has members without tones", ErrSchedulingConflict)
		}
		var acc ToneData
		for _, t := range l.Groups {
			acc = union(acc, t)
		}
		return acc, nil
	case NeedsTones:
		return ToneData{}, fmt.Errorf("%w: nested member has no tones", ErrUnboundTones)
	}

	return ToneData{}, fmt.Errorf("%w: %v", ErrSchedulingConflict, p)
}

// needsTones reports whether l still holds a member waiting for tones.
func needsTones(l Lattice) bool {
	switch v := l.(type) {
	case NeedsTones:
		return true
	case ParallelSchedule:
		return slices.ContainsFunc(v.Paths, needsTones)
	case AutoSchedule:
		return slices.ContainsFunc(v.Paths, needsTones)
	}

	return false
}

// place tries to add member i to w, allocating tones when needed.
func (s GreedyScheduler) place(ms []member, i int, w *window) bool {
	m := &ms[i]
	if m.composite && len(w.members) > 0 {
		return false
	}
	for _, j := range w.members {
		if ms[j].composite || !Compatible(m.actions, ms[j].actions) {
			return false
		}
	}

	t := m.tones
	if m.unbound {
		var ok bool
		if t, ok = s.allocate(m.nx, m.ny, w); !ok {
			return false
		}
	} else {
		if !s.within(t) {
			return false
		}
		for _, j := range w.members {
			if t.Overlaps(ms[j].tones) {
				return false
			}
		}
	}
	for _, j := range w.members {
		if !Coherent(m.actions, ms[j].actions, t, ms[j].tones) {
			return false
		}
	}

	m.tones = t
	w.members = append(w.members, i)
	acc := union(ToneData{XTones: w.x, YTones: w.y}, m.tones)
	w.x, w.y = acc.XTones, acc.YTones

	return true
}

// allocate picks tones disjoint from w on one axis.
func (s GreedyScheduler) allocate(nx, ny int, w *window) (ToneData, bool) {
	if x, ok := lowestFree(w.x, nx, s.MaxXTones); ok && fits(ny, s.MaxYTones) {
		return ToneData{XTones: x, YTones: lo.Range(ny)}, true
	}
	if y, ok := lowestFree(w.y, ny, s.MaxYTones); ok && fits(nx, s.MaxXTones) {
		return ToneData{XTones: lo.Range(nx), YTones: y}, true
	}

	return ToneData{}, false
}

func (s GreedyScheduler) within(t ToneData) bool {
	return inBudget(t.XTones, s.MaxXTones) && inBudget(t.YTones, s.MaxYTones)
}

// lowestFree returns the lowest run [k, k+n) avoiding used and below limit.
func lowestFree(used []int, n, limit int) ([]int, bool) {
	for start := 0; ; start++ {
		if limit > 0 && start+n > limit {
			return nil, false
		}
		run := lo.RangeFrom(start, n)
		if !lo.Some(used, run) {
			return run, true
		}
	}
}

func fits(n, limit int) bool { return limit <= 0 || n <= limit }

func inBudget(tones []int, limit int) bool {
	return limit <= 0 || !lo.SomeBy(tones, func(t int) bool { return t >= limit })
}

func intersects(a, b []int) bool { return lo.Some(a, b) }

func union(a, b ToneData) ToneData {
	return ToneData{
		XTones: sorted(lo.Union(a.XTones, b.XTones)),
		YTones: sorted(lo.Union(a.YTones, b.YTones)),
	}
}

func sorted(v []int) []int {
	out := lo.Uniq(v)
	slices.Sort(out)

	return out
}
