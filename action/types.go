package action

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tweezer/grid"
)

// Sentinel errors for action operations.
var (
	// ErrInvalidReverse indicates a construct without an inverse.
	ErrInvalidReverse = errors.New("action: construct has no inverse")

	// ErrToneIndex indicates a selector index outside the addressed shape.
	ErrToneIndex = errors.New("action: tone index out of range")

	// ErrBadTone indicates a negative or duplicate tone in a path.
	ErrBadTone = errors.New("action: invalid tone list")
)

// Kind enumerates the primitive action kinds.
type Kind int

const (
	// KindSetLocation places the tones without moving any atom.
	KindSetLocation Kind = iota
	// KindTurnOn activates a tone rectangle.
	KindTurnOn
	// KindTurnOff deactivates a tone rectangle.
	KindTurnOff
	// KindMove moves the tones along waypoints.
	KindMove
)

func (k Kind) String() string {
	switch k {
	case KindSetLocation:
		return "set_location"
	case KindTurnOn:
		return "turn_on"
	case KindTurnOff:
		return "turn_off"
	case KindMove:
		return "move"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Action is one primitive of a trace. The set of implementations is closed:
// SetLocation, TurnOn, TurnOff and Move.
type Action interface {
	Kind() Kind
	String() string
	action()
}

// SetLocation marks the starting position of a trace.
type SetLocation struct {
	Grid grid.Grid
}

// TurnOn activates the tones X × Y.
type TurnOn struct {
	X, Y Selector
}

// TurnOff deactivates the tones X × Y.
type TurnOff struct {
	X, Y Selector
}

// Move is one continuous run through Waypoints. Waypoints[0] is the position
// the run starts from; all waypoints share one shape.
type Move struct {
	Waypoints []grid.Grid
}

func (SetLocation) Kind() Kind { return KindSetLocation }
func (TurnOn) Kind() Kind      { return KindTurnOn }
func (TurnOff) Kind() Kind     { return KindTurnOff }
func (Move) Kind() Kind        { return KindMove }

func (SetLocation) action() {}
func (TurnOn) action()      {}
func (TurnOff) action()     {}
func (Move) action()        {}

func (a SetLocation) String() string { return fmt.Sprintf("SetLocation(%v)", a.Grid) }
func (a TurnOn) String() string      { return fmt.Sprintf("TurnOn(%v, %v)", a.X, a.Y) }
func (a TurnOff) String() string     { return fmt.Sprintf("TurnOff(%v, %v)", a.X, a.Y) }
func (a Move) String() string        { return fmt.Sprintf("Move(%v)", a.Waypoints) }

// Last returns the final waypoint of the run.
func (a Move) Last() grid.Grid {
	return a.Waypoints[len(a.Waypoints)-1]
}
