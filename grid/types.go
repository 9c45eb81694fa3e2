package grid

import (
	"errors"
	"math"
)

// Sentinel errors for grid operations.
var (
	// ErrEmptyAxis indicates a grid axis with no sites.
	ErrEmptyAxis = errors.New("grid: every axis must have at least one site")

	// ErrNaNInf indicates a NaN or infinite coordinate, spacing or origin.
	ErrNaNInf = errors.New("grid: NaN or Inf coordinate")

	// ErrIndexOutOfRange indicates a site index outside [0, n).
	ErrIndexOutOfRange = errors.New("grid: index out of range")

	// ErrBadStep indicates a slice step smaller than 1.
	ErrBadStep = errors.New("grid: slice step must be >= 1")

	// ErrBadRepeat indicates a repeat count smaller than 1.
	ErrBadRepeat = errors.New("grid: repeat count must be >= 1")

	// ErrShapeMismatch indicates two grids with different site counts per axis.
	ErrShapeMismatch = errors.New("grid: shape mismatch")
)

// End is the Stop value that selects through the last index of an axis.
const End = math.MaxInt

// Range is a regular index selection start:stop:step along one axis.
// Stop is exclusive and clamped to the axis length; Step must be >= 1.
type Range struct {
	Start, Stop, Step int
}

// All selects every index of an axis.
func All() Range {
	return Range{Start: 0, Stop: End, Step: 1}
}

// Span builds a Range; a zero step is read as 1.
func Span(start, stop, step int) Range {
	if step == 0 {
		step = 1
	}

	return Range{Start: start, Stop: stop, Step: step}
}

// Indices resolves r against an axis of length n.
// Returns ErrBadStep or ErrIndexOutOfRange for a negative start.
func (r Range) Indices(n int) ([]int, error) {
	if r.Step < 1 {
		return nil, ErrBadStep
	}
	if r.Start < 0 {
		return nil, ErrIndexOutOfRange
	}
	stop := r.Stop
	if stop > n {
		stop = n
	}
	out := make([]int, 0, n)
	for i := r.Start; i < stop; i += r.Step {
		out = append(out, i)
	}

	return out, nil
}

// Grid is an immutable rectangular lattice of sites.
//
// xs[i] is the x coordinate of column i and ys[j] the y coordinate of row j;
// site (i,j) sits at (xs[i], ys[j]). Coordinates need not be sorted: a view
// in arbitrary index order keeps that order.
type Grid struct {
	xs []float64
	ys []float64
}
