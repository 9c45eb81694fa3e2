package aodstate

import (
	"fmt"
	"maps"
	"slices"

	"github.com/samber/lo"

	"github.com/katalvlaran/tweezer/grid"
)

// Kind tags a State variant.
type Kind int

const (
	KindNotAOD Kind = iota
	KindAOD
	KindCollision
	KindJump
	KindIdle
	KindShared
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNotAOD:
		return "NotAOD"
	case KindAOD:
		return "AOD"
	case KindCollision:
		return "AODCollision"
	case KindJump:
		return "AODJump"
	case KindIdle:
		return "AODIdle"
	case KindShared:
		return "AODShared"
	case KindUnknown:
		return "Unknown"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// State is the legality checker's judgment about the device.
type State interface {
	Kind() Kind
	String() string
	state()
}

// NotAOD is bottom.
type NotAOD struct{}

// Unknown is top.
type Unknown struct{}

// AOD is a legal device state. XTones and YTones list the active tones in
// ascending order; XPos and YPos hold the coordinate of every tone that was
// ever positioned, active or not.
type AOD struct {
	XTones []int
	YTones []int
	XPos   map[int]float64
	YPos   map[int]float64
}

// AODCollision maps tones to the number of times they were turned on.
type AODCollision struct {
	X map[int]int
	Y map[int]int
}

// Jump is an illegal coordinate change.
type Jump struct {
	From, To float64
}

// AODJump maps tones to their illegal coordinate change.
type AODJump struct {
	X map[int]Jump
	Y map[int]Jump
}

// AODIdle lists tones turned off while idle.
type AODIdle struct {
	X []int
	Y []int
}

// AODShared maps shared tones switched off by one member to the members
// that still held traps on them.
type AODShared struct {
	X map[int][]int
	Y map[int][]int
}

func (NotAOD) Kind() Kind       { return KindNotAOD }
func (Unknown) Kind() Kind      { return KindUnknown }
func (AOD) Kind() Kind          { return KindAOD }
func (AODCollision) Kind() Kind { return KindCollision }
func (AODJump) Kind() Kind      { return KindJump }
func (AODIdle) Kind() Kind      { return KindIdle }
func (AODShared) Kind() Kind    { return KindShared }

func (NotAOD) state()       {}
func (Unknown) state()      {}
func (AOD) state()          {}
func (AODCollision) state() {}
func (AODJump) state()      {}
func (AODIdle) state()      {}
func (AODShared) state()    {}

func (NotAOD) String() string  { return "NotAOD" }
func (Unknown) String() string { return "Unknown" }
func (s AOD) String() string {
	return fmt.Sprintf("AOD(x=%v, y=%v)", s.XTones, s.YTones)
}
func (s AODCollision) String() string {
	return fmt.Sprintf("AODCollision(x=%v, y=%v)", s.X, s.Y)
}
func (s AODJump) String() string {
	return fmt.Sprintf("AODJump(x=%v, y=%v)", s.X, s.Y)
}
func (s AODIdle) String() string {
	return fmt.Sprintf("AODIdle(x=%v, y=%v)", s.X, s.Y)
}
func (s AODShared) String() string {
	return fmt.Sprintf("AODShared(x=%v, y=%v)", s.X, s.Y)
}

// Idle returns the device with every tone idle and unpositioned.
func Idle() AOD {
	return AOD{XPos: map[int]float64{}, YPos: map[int]float64{}}
}

// Bottom returns NotAOD.
func Bottom() State { return NotAOD{} }

// Top returns Unknown.
func Top() State { return Unknown{} }

// IsViolation reports whether s records a misuse.
func IsViolation(s State) bool {
	switch s.Kind() {
	case KindCollision, KindJump, KindIdle, KindShared:
		return true
	}

	return false
}

// Active returns the active rectangle as a grid. ok is false when no x or no
// y tone is active.
func (s AOD) Active() (g grid.Grid, ok bool) {
	if len(s.XTones) == 0 || len(s.YTones) == 0 {
		return grid.Grid{}, false
	}
	xs := lo.Map(s.XTones, func(t int, _ int) float64 { return s.XPos[t] })
	ys := lo.Map(s.YTones, func(t int, _ int) float64 { return s.YPos[t] })
	g, err := grid.FromPositions(xs, ys)

	return g, err == nil
}

// IsSubseteq reports a ⊑ b. AOD states are compared by their active tones
// and those tones' coordinates only.
func IsSubseteq(a, b State) bool {
	switch {
	case a.Kind() == KindNotAOD, b.Kind() == KindUnknown:
		return true
	case b.Kind() == KindNotAOD, a.Kind() == KindUnknown:
		return false
	case a.Kind() != b.Kind():
		return false
	}

	switch x := a.(type) {
	case AOD:
		y := b.(AOD)
		return sameActive(x.XTones, y.XTones, x.XPos, y.XPos) &&
			sameActive(x.YTones, y.YTones, x.YPos, y.YPos)
	case AODCollision:
		y := b.(AODCollision)
		return maps.Equal(x.X, y.X) && maps.Equal(x.Y, y.Y)
	case AODJump:
		y := b.(AODJump)
		return maps.Equal(x.X, y.X) && maps.Equal(x.Y, y.Y)
	case AODIdle:
		y := b.(AODIdle)
		return slices.Equal(x.X, y.X) && slices.Equal(x.Y, y.Y)
	case AODShared:
		y := b.(AODShared)
		return maps.EqualFunc(x.X, y.X, slices.Equal[[]int, int]) &&
			maps.EqualFunc(x.Y, y.Y, slices.Equal[[]int, int])
	}

	return false
}

func sameActive(a, b []int, apos, bpos map[int]float64) bool {
	if !slices.Equal(a, b) {
		return false
	}
	for _, t := range a {
		if apos[t] != bpos[t] {
			return false
		}
	}

	return true
}

// Equal reports a ⊑ b and b ⊑ a.
func Equal(a, b State) bool {
	return IsSubseteq(a, b) && IsSubseteq(b, a)
}

// Join returns the least upper bound of a and b; unrelated states join to
// Unknown.
func Join(a, b State) State {
	switch {
	case IsSubseteq(a, b):
		return b
	case IsSubseteq(b, a):
		return a
	}

	return Top()
}
