package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// New builds a Grid from per-axis spacing and an origin.
// Site positions are the origin plus the cumulative sum of spacings, so an
// axis with k spacings has k+1 sites.
// Returns ErrNaNInf on any non-finite input.
// Complexity: O(W+H).
func New(xSpacing, ySpacing []float64, x0, y0 float64) (Grid, error) {
	xs, err := cumulative(xSpacing, x0)
	if err != nil {
		return Grid{}, err
	}
	ys, err := cumulative(ySpacing, y0)
	if err != nil {
		return Grid{}, err
	}

	return Grid{xs: xs, ys: ys}, nil
}

// FromPositions builds a Grid whose columns sit at xs and rows at ys.
// The inputs are copied. Returns ErrEmptyAxis or ErrNaNInf.
// Complexity: O(W+H).
func FromPositions(xs, ys []float64) (Grid, error) {
	if len(xs) == 0 || len(ys) == 0 {
		return Grid{}, ErrEmptyAxis
	}
	if !finite(xs) || !finite(ys) {
		return Grid{}, ErrNaNInf
	}

	return Grid{xs: clone(xs), ys: clone(ys)}, nil
}

// MustFromPositions is FromPositions that panics on error.
// Intended for fixed layouts and tests.
func MustFromPositions(xs, ys []float64) Grid {
	g, err := FromPositions(xs, ys)
	if err != nil {
		panic(err)
	}

	return g
}

func cumulative(spacing []float64, origin float64) ([]float64, error) {
	if !finite(spacing) || math.IsNaN(origin) || math.IsInf(origin, 0) {
		return nil, ErrNaNInf
	}
	out := make([]float64, len(spacing)+1)
	out[0] = origin
	for i, s := range spacing {
		out[i+1] = out[i] + s
	}

	return out, nil
}

func finite(vs []float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

func clone(vs []float64) []float64 {
	out := make([]float64, len(vs))
	copy(out, vs)

	return out
}

// IsZero reports whether g is the zero Grid (no sites).
func (g Grid) IsZero() bool {
	return len(g.xs) == 0 || len(g.ys) == 0
}

// Shape returns the number of sites along x and y.
func (g Grid) Shape() (nx, ny int) {
	return len(g.xs), len(g.ys)
}

// Width is the number of sites along x.
func (g Grid) Width() int { return len(g.xs) }

// Height is the number of sites along y.
func (g Grid) Height() int { return len(g.ys) }

// XPositions returns a copy of the column coordinates.
func (g Grid) XPositions() []float64 { return clone(g.xs) }

// YPositions returns a copy of the row coordinates.
func (g Grid) YPositions() []float64 { return clone(g.ys) }

// X returns the coordinate of column i. Panics when i is out of range.
func (g Grid) X(i int) float64 { return g.xs[i] }

// Y returns the coordinate of row j. Panics when j is out of range.
func (g Grid) Y(j int) float64 { return g.ys[j] }

// Origin returns the coordinate of site (0,0).
func (g Grid) Origin() (x0, y0 float64) {
	if g.IsZero() {
		return 0, 0
	}

	return g.xs[0], g.ys[0]
}

// XSpacing returns the gaps between consecutive columns (len = Width-1).
func (g Grid) XSpacing() []float64 { return gaps(g.xs) }

// YSpacing returns the gaps between consecutive rows (len = Height-1).
func (g Grid) YSpacing() []float64 { return gaps(g.ys) }

func gaps(vs []float64) []float64 {
	if len(vs) < 2 {
		return []float64{}
	}
	out := make([]float64, len(vs)-1)
	for i := 1; i < len(vs); i++ {
		out[i-1] = vs[i] - vs[i-1]
	}

	return out
}

// At returns the coordinates of site (i,j).
// Returns ErrIndexOutOfRange outside the grid.
func (g Grid) At(i, j int) (x, y float64, err error) {
	if i < 0 || i >= len(g.xs) || j < 0 || j >= len(g.ys) {
		return 0, 0, ErrIndexOutOfRange
	}

	return g.xs[i], g.ys[j], nil
}

// Positions lists every site, row-major: (x0,y0), (x1,y0), …, (x0,y1), …
// Complexity: O(W·H).
func (g Grid) Positions() [][2]float64 {
	out := make([][2]float64, 0, len(g.xs)*len(g.ys))
	for _, y := range g.ys {
		for _, x := range g.xs {
			out = append(out, [2]float64{x, y})
		}
	}

	return out
}

// Equal reports whether g and other place their sites at identical
// coordinates. The comparison is exact.
func (g Grid) Equal(other Grid) bool {
	return equalAxis(g.xs, other.xs) && equalAxis(g.ys, other.ys)
}

func equalAxis(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// Key returns a canonical string of the site positions, usable as a map key.
// Equal grids yield equal keys.
func (g Grid) Key() string {
	var sb strings.Builder
	writeAxis(&sb, g.xs)
	sb.WriteByte('|')
	writeAxis(&sb, g.ys)

	return sb.String()
}

func writeAxis(sb *strings.Builder, vs []float64) {
	for i, v := range vs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
}

// String renders the grid as Grid(x=[…], y=[…]).
func (g Grid) String() string {
	return fmt.Sprintf("Grid(x=%v, y=%v)", g.xs, g.ys)
}

// SameShape reports whether a and b have the same site counts per axis.
func SameShape(a, b Grid) bool {
	return len(a.xs) == len(b.xs) && len(a.ys) == len(b.ys)
}

// CheckShape returns ErrShapeMismatch, annotated with both shapes, when a and
// b differ in shape.
func CheckShape(a, b Grid) error {
	if SameShape(a, b) {
		return nil
	}

	return fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch, a.Width(), a.Height(), b.Width(), b.Height())
}
