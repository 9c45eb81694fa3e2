// Package action defines the vocabulary of physical AOD primitives and the
// time-reversal operator over traces built from them.
//
// The four primitives form a closed set:
//
//	SetLocation(g)   place the tones at grid g (start of a trace only)
//	TurnOn(x, y)     ramp up the rectangle of tones x × y
//	TurnOff(x, y)    ramp down the rectangle of tones x × y
//	Move(w0…wn)      continuously move the tones through waypoints w0…wn
//
// Every primitive except SetLocation has an inverse: TurnOn and TurnOff swap,
// Move walks its waypoints backwards. Reverse turns a forward trace into the
// trace that undoes it; Reverse(Reverse(a)) == a.
//
// A Path binds a trace to the global X and Y tone indices it was compiled
// against. Selectors inside a trace address local tone indices; Path maps them
// to global ones.
//
// Errors:
//
//   - ErrInvalidReverse: a SetLocation outside the first position of a trace.
//   - ErrToneIndex:      a selector addresses a tone outside the trace shape.
//   - ErrBadTone:        a path lists a negative or duplicate tone.
//   - grid.ErrShapeMismatch (wrapped): a grid disagrees with the path shape.
package action
