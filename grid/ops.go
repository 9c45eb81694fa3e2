package grid

// View re-indexes g, keeping the columns listed in xIdx and the rows listed
// in yIdx, in the given order. Indices may repeat or be unsorted.
// Returns ErrEmptyAxis for an empty index list, ErrIndexOutOfRange otherwise.
// Complexity: O(len(xIdx)+len(yIdx)).
func (g Grid) View(xIdx, yIdx []int) (Grid, error) {
	xs, err := pick(g.xs, xIdx)
	if err != nil {
		return Grid{}, err
	}
	ys, err := pick(g.ys, yIdx)
	if err != nil {
		return Grid{}, err
	}

	return Grid{xs: xs, ys: ys}, nil
}

func pick(vs []float64, idx []int) ([]float64, error) {
	if len(idx) == 0 {
		return nil, ErrEmptyAxis
	}
	out := make([]float64, len(idx))
	for k, i := range idx {
		if i < 0 || i >= len(vs) {
			return nil, ErrIndexOutOfRange
		}
		out[k] = vs[i]
	}

	return out, nil
}

// Slice selects columns and rows by regular ranges.
// Returns ErrBadStep, ErrIndexOutOfRange or ErrEmptyAxis.
func (g Grid) Slice(xr, yr Range) (Grid, error) {
	xIdx, err := xr.Indices(len(g.xs))
	if err != nil {
		return Grid{}, err
	}
	yIdx, err := yr.Indices(len(g.ys))
	if err != nil {
		return Grid{}, err
	}

	return g.View(xIdx, yIdx)
}

// Shift translates every site by (dx, dy).
func (g Grid) Shift(dx, dy float64) Grid {
	xs := clone(g.xs)
	for i := range xs {
		xs[i] += dx
	}
	ys := clone(g.ys)
	for j := range ys {
		ys[j] += dy
	}

	return Grid{xs: xs, ys: ys}
}

// Scale multiplies the spacing of each axis by sx and sy. The origin
// (site (0,0)) stays in place.
func (g Grid) Scale(sx, sy float64) Grid {
	return Grid{xs: scaleAxis(g.xs, sx), ys: scaleAxis(g.ys, sy)}
}

func scaleAxis(vs []float64, s float64) []float64 {
	out := make([]float64, len(vs))
	if len(vs) == 0 {
		return out
	}
	out[0] = vs[0]
	for i := 1; i < len(vs); i++ {
		out[i] = out[i-1] + (vs[i]-vs[i-1])*s
	}

	return out
}

// Repeat tiles g nx times along x and ny times along y. gapX is the distance
// from the last column of one tile to the first column of the next; gapY
// likewise for rows. Returns ErrBadRepeat for counts below 1.
// Complexity: O(nx·W + ny·H).
func (g Grid) Repeat(nx, ny int, gapX, gapY float64) (Grid, error) {
	if nx < 1 || ny < 1 {
		return Grid{}, ErrBadRepeat
	}
	if g.IsZero() {
		return Grid{}, ErrEmptyAxis
	}

	return Grid{xs: tile(g.xs, nx, gapX), ys: tile(g.ys, ny, gapY)}, nil
}

func tile(vs []float64, n int, gap float64) []float64 {
	spacing := gaps(vs)
	out := make([]float64, 0, n*len(vs))
	out = append(out, vs[0])
	for t := 0; t < n; t++ {
		if t > 0 {
			out = append(out, out[len(out)-1]+gap)
		}
		for _, s := range spacing {
			out = append(out, out[len(out)-1]+s)
		}
	}

	return out
}
