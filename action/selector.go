package action

import (
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/tweezer/grid"
)

// Selector picks local tone indices along one axis: either an explicit sorted
// list or a contiguous start:stop:step range.
type Selector struct {
	span    bool
	rng     grid.Range
	indices []int
}

// Indices selects an explicit set of tones. The list is copied, sorted and
// deduplicated.
func Indices(idx ...int) Selector {
	out := slices.Clone(idx)
	slices.Sort(out)

	return Selector{indices: slices.Compact(out)}
}

// Span selects tones start:stop:step; stop is exclusive and clamped.
func Span(start, stop, step int) Selector {
	return Selector{span: true, rng: grid.Span(start, stop, step)}
}

// All selects every tone of the axis.
func All() Selector {
	return Selector{span: true, rng: grid.All()}
}

// IsSpan reports whether s is a range selector.
func (s Selector) IsSpan() bool { return s.span }

// Resolve returns the concrete local indices selected on an axis of n tones.
// Returns ErrToneIndex when an explicit index or a range start is out of range.
func (s Selector) Resolve(n int) ([]int, error) {
	if s.span {
		idx, err := s.rng.Indices(n)
		if err != nil {
			if errors.Is(err, grid.ErrBadStep) {
				return nil, fmt.Errorf("%w: %v", ErrToneIndex, err)
			}
			return nil, fmt.Errorf("%w: %v on %d tones", ErrToneIndex, s, n)
		}
		if s.rng.Start > 0 && s.rng.Start >= n {
			return nil, fmt.Errorf("%w: %v on %d tones", ErrToneIndex, s, n)
		}
		return idx, nil
	}
	for _, i := range s.indices {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%w: %d on %d tones", ErrToneIndex, i, n)
		}
	}

	return slices.Clone(s.indices), nil
}

// Equal reports structural equality of two selectors.
func (s Selector) Equal(o Selector) bool {
	if s.span != o.span {
		return false
	}
	if s.span {
		return s.rng == o.rng
	}

	return slices.Equal(s.indices, o.indices)
}

func (s Selector) String() string {
	if !s.span {
		return fmt.Sprint(s.indices)
	}
	if s.rng == grid.All() {
		return "ALL"
	}
	stop := ""
	if s.rng.Stop != grid.End {
		stop = fmt.Sprint(s.rng.Stop)
	}

	return fmt.Sprintf("%d:%s:%d", s.rng.Start, stop, s.rng.Step)
}

// Bounds returns the range of a span selector; the zero Range otherwise.
func (s Selector) Bounds() grid.Range {
	if !s.span {
		return grid.Range{}
	}

	return s.rng
}

// List returns a copy of the explicit indices of a list selector.
func (s Selector) List() []int {
	return slices.Clone(s.indices)
}

// End is the Span stop value that runs through the last tone.
const End = grid.End
