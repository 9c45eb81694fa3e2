package schedule

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/tweezer/action"
	"github.com/katalvlaran/tweezer/trace"
)

// Kind tags a Lattice variant.
type Kind int

const (
	KindNoPath Kind = iota
	KindTweezerTask
	KindDeviceFunction
	KindReverse
	KindConcretePath
	KindNeedsTones
	KindParallel
	KindAuto
	KindNoSchedule
)

var kindNames = [...]string{
	KindNoPath:         "NoPath",
	KindTweezerTask:    "TweezerTask",
	KindDeviceFunction: "DeviceFunction",
	KindReverse:        "Reverse",
	KindConcretePath:   "ConcretePath",
	KindNeedsTones:     "NeedsTones",
	KindParallel:       "ParallelSchedule",
	KindAuto:           "AutoSchedule",
	KindNoSchedule:     "NoSchedule",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Lattice is the analysis judgment about one program value.
// The set of variants is closed.
type Lattice interface {
	Kind() Kind
	String() string
	lattice()
}

// NoPath is bottom: nothing known yet.
type NoPath struct{}

// NoSchedule is top: the value cannot be scheduled.
type NoSchedule struct{}

// TweezerTask is a task without tones.
type TweezerTask struct {
	Task trace.Task
}

// DeviceFunction is a task bound to constant tones.
type DeviceFunction struct {
	Task   trace.Task
	XTones []int
	YTones []int
}

// Reverse is the time-reversal of a TweezerTask or DeviceFunction.
type Reverse struct {
	Inner Lattice
}

// ConcretePath is a fully generated trace on bound tones.
type ConcretePath struct {
	Path action.Path
}

// NeedsTones is a generated trace still waiting for tones.
type NeedsTones struct {
	Actions []action.Action
}

// ParallelSchedule runs its members in lockstep.
type ParallelSchedule struct {
	Paths []Lattice
}

// ToneData is a pair of tone sets.
type ToneData struct {
	XTones []int
	YTones []int
}

// AutoSchedule is a scheduler decision for an auto group.
// GroupIDs[i] and Tones[i] belong to Paths[i]; Groups[g] is the union of the
// tones of group g. Group ids are 0..len(Groups)-1.
type AutoSchedule struct {
	Paths    []Lattice
	GroupIDs []int
	Tones    []ToneData
	Groups   []ToneData
}

func (NoPath) Kind() Kind           { return KindNoPath }
func (NoSchedule) Kind() Kind       { return KindNoSchedule }
func (TweezerTask) Kind() Kind      { return KindTweezerTask }
func (DeviceFunction) Kind() Kind   { return KindDeviceFunction }
func (Reverse) Kind() Kind          { return KindReverse }
func (ConcretePath) Kind() Kind     { return KindConcretePath }
func (NeedsTones) Kind() Kind       { return KindNeedsTones }
func (ParallelSchedule) Kind() Kind { return KindParallel }
func (AutoSchedule) Kind() Kind     { return KindAuto }

func (NoPath) lattice()           {}
func (NoSchedule) lattice()       {}
func (TweezerTask) lattice()      {}
func (DeviceFunction) lattice()   {}
func (Reverse) lattice()          {}
func (ConcretePath) lattice()     {}
func (NeedsTones) lattice()       {}
func (ParallelSchedule) lattice() {}
func (AutoSchedule) lattice()     {}

func (NoPath) String() string     { return "NoPath" }
func (NoSchedule) String() string { return "NoSchedule" }
func (l TweezerTask) String() string {
	return fmt.Sprintf("TweezerTask(%s)", taskName(l.Task))
}
func (l DeviceFunction) String() string {
	return fmt.Sprintf("DeviceFunction(%s, x=%v, y=%v)", taskName(l.Task), l.XTones, l.YTones)
}
func (l Reverse) String() string { return fmt.Sprintf("Reverse(%v)", l.Inner) }
func (l ConcretePath) String() string {
	return fmt.Sprintf("ConcretePath(x=%v, y=%v, %d actions)", l.Path.XTones, l.Path.YTones, len(l.Path.Actions))
}
func (l NeedsTones) String() string {
	return fmt.Sprintf("NeedsTones(%d actions)", len(l.Actions))
}
func (l ParallelSchedule) String() string { return fmt.Sprintf("Parallel%v", l.Paths) }
func (l AutoSchedule) String() string {
	return fmt.Sprintf("Auto(groups=%v, %d groups)", l.GroupIDs, len(l.Groups))
}

func taskName(t trace.Task) string {
	if t == nil {
		return "<nil>"
	}

	return t.Name()
}

// Bottom returns NoPath.
func Bottom() Lattice { return NoPath{} }

// Top returns NoSchedule.
func Top() Lattice { return NoSchedule{} }

// IsTop reports whether l is NoSchedule.
func IsTop(l Lattice) bool { return l.Kind() == KindNoSchedule }

// IsPathLike reports whether l denotes something that can be played.
func IsPathLike(l Lattice) bool {
	switch l.Kind() {
	case KindConcretePath, KindNeedsTones, KindParallel, KindAuto:
		return true
	}

	return false
}

// IsSubseteq reports a ⊑ b.
// Bottom is below everything and top above everything. Between middle
// elements the order is equality, except that Reverse and ParallelSchedule
// compare their members pointwise.
func IsSubseteq(a, b Lattice) bool {
	switch {
	case a.Kind() == KindNoPath, b.Kind() == KindNoSchedule:
		return true
	case b.Kind() == KindNoPath, a.Kind() == KindNoSchedule:
		return false
	case a.Kind() != b.Kind():
		return false
	}

	switch x := a.(type) {
	case TweezerTask:
		return x.Task == b.(TweezerTask).Task
	case DeviceFunction:
		y := b.(DeviceFunction)
		return x.Task == y.Task && slices.Equal(x.XTones, y.XTones) && slices.Equal(x.YTones, y.YTones)
	case Reverse:
		return IsSubseteq(x.Inner, b.(Reverse).Inner)
	case ConcretePath:
		return x.Path.Equal(b.(ConcretePath).Path)
	case NeedsTones:
		return action.EqualTrace(x.Actions, b.(NeedsTones).Actions)
	case ParallelSchedule:
		return slices.EqualFunc(x.Paths, b.(ParallelSchedule).Paths, IsSubseteq)
	case AutoSchedule:
		y := b.(AutoSchedule)
		return sameDecision(x, y) && slices.EqualFunc(x.Paths, y.Paths, IsSubseteq)
	}

	return false
}

// Equal reports a ⊑ b and b ⊑ a.
func Equal(a, b Lattice) bool {
	return IsSubseteq(a, b) && IsSubseteq(b, a)
}

// Join returns the least upper bound of a and b.
// Reverse, ParallelSchedule and AutoSchedule join their members pointwise
// when their shapes agree; other unequal pairs join to top. A schedule with
// a member joined to top is top.
func Join(a, b Lattice) Lattice {
	return combine(a, b, Join, true)
}

// Meet returns the greatest lower bound of a and b, dual to Join.
func Meet(a, b Lattice) Lattice {
	return combine(a, b, Meet, false)
}

// combine implements Join (upper) and Meet (!upper).
func combine(a, b Lattice, op func(a, b Lattice) Lattice, upper bool) Lattice {
	bound := Bottom
	if upper {
		bound = Top
	}
	switch {
	case IsSubseteq(a, b):
		if upper {
			return b
		}
		return a
	case IsSubseteq(b, a):
		if upper {
			return a
		}
		return b
	case a.Kind() != b.Kind():
		return bound()
	}

	switch x := a.(type) {
	case Reverse:
		return Reverse{Inner: op(x.Inner, b.(Reverse).Inner)}
	case ParallelSchedule:
		y := b.(ParallelSchedule)
		if len(x.Paths) == len(y.Paths) {
			paths := zipWith(x.Paths, y.Paths, op)
			if upper && slices.ContainsFunc(paths, IsTop) {
				return bound()
			}
			return ParallelSchedule{Paths: paths}
		}
	case AutoSchedule:
		y := b.(AutoSchedule)
		if sameDecision(x, y) {
			z := x
			z.Paths = zipWith(x.Paths, y.Paths, op)
			if upper && slices.ContainsFunc(z.Paths, IsTop) {
				return bound()
			}
			return z
		}
	}

	return bound()
}

func zipWith(a, b []Lattice, op func(a, b Lattice) Lattice) []Lattice {
	out := make([]Lattice, len(a))
	for i := range a {
		out[i] = op(a[i], b[i])
	}

	return out
}

func sameDecision(a, b AutoSchedule) bool {
	return len(a.Paths) == len(b.Paths) &&
		slices.Equal(a.GroupIDs, b.GroupIDs) &&
		slices.EqualFunc(a.Tones, b.Tones, ToneData.Equal) &&
		slices.EqualFunc(a.Groups, b.Groups, ToneData.Equal)
}

// Equal reports equal tone lists.
func (t ToneData) Equal(o ToneData) bool {
	return slices.Equal(t.XTones, o.XTones) && slices.Equal(t.YTones, o.YTones)
}

// Overlaps reports whether t and o share an x tone and a y tone.
func (t ToneData) Overlaps(o ToneData) bool {
	return intersects(t.XTones, o.XTones) && intersects(t.YTones, o.YTones)
}
