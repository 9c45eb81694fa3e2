// Package trace turns a tweezer task into an ordered, hardware-legal list of
// actions.
//
// A Generator is the explicit state of one trace: the currently addressed
// grid and the actions emitted so far. Tasks receive the Generator and drive
// it through SetLocation, TurnOn, TurnOff and Move; Run executes a task on a
// fresh Generator and returns its trace.
//
// Waypoint runs: consecutive Move calls extend one action.Move whose first
// waypoint is the position the run started from. TurnOn and TurnOff close the
// active run; the next Move opens a new one.
//
// Re-positioning: a second SetLocation with the same grid is ignored; with a
// different grid it fails with ErrPositionReset. A trace has exactly one
// starting position.
//
// Errors:
//
//   - ErrUnsetPosition:        TurnOn, TurnOff or Move before SetLocation.
//   - ErrPositionReset:        SetLocation to a second, different grid.
//   - grid.ErrShapeMismatch:   a Move target with a different shape (wrapped).
//   - action.ErrToneIndex:     a selector outside the current shape (wrapped).
//   - ErrBadArgument:          a Script parameter missing or not a grid.
package trace
