package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tweezer/action"
	"github.com/katalvlaran/tweezer/grid"
	"github.com/katalvlaran/tweezer/schedule"
)

// TestGreedyScheduler_Disjoint checks that every group the scheduler forms is
// pairwise disjoint on at least one axis, over all placements of 2x1 and
// 1x2 tone rectangles in a 4x4 tone space.
func TestGreedyScheduler_Disjoint(t *testing.T) {
	var paths []schedule.Lattice
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			for _, shape := range [][2]int{{2, 1}, {1, 2}} {
				nx, ny := shape[0], shape[1]
				if x+nx > 4 || y+ny > 4 {
					continue
				}
				paths = append(paths, concrete(t, x, y, nx, ny))
			}
		}
	}

	sched, err := schedule.GreedyScheduler{MaxXTones: 4, MaxYTones: 4}.Schedule(paths)
	require.NoError(t, err)
	require.Len(t, sched.GroupIDs, len(paths))

	for i := range paths {
		for j := i + 1; j < len(paths); j++ {
			if sched.GroupIDs[i] != sched.GroupIDs[j] {
				continue
			}
			require.False(t, sched.Tones[i].Overlaps(sched.Tones[j]),
				"paths %d and %d share group %d: %v / %v", i, j, sched.GroupIDs[i], sched.Tones[i], sched.Tones[j])
		}
	}

	again, err := schedule.GreedyScheduler{MaxXTones: 4, MaxYTones: 4}.Schedule(paths)
	require.NoError(t, err)
	require.Equal(t, sched.GroupIDs, again.GroupIDs, "deterministic")
}

func TestGreedyScheduler_Composite(t *testing.T) {
	a := concrete(t, 0, 0, 2, 1)
	b := concrete(t, 2, 0, 2, 1)
	par := schedule.ParallelSchedule{Paths: []schedule.Lattice{a, b}}

	sched, err := schedule.GreedyScheduler{}.Schedule([]schedule.Lattice{par, concrete(t, 0, 3, 1, 1)})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, sched.GroupIDs, "nested schedules run alone")
	require.Equal(t, []int{0, 1, 2, 3}, sched.Tones[0].XTones)

	_, err = schedule.GreedyScheduler{}.Schedule([]schedule.Lattice{schedule.TweezerTask{}})
	require.ErrorIs(t, err, schedule.ErrSchedulingConflict)
}

// concrete builds a pick path on the tone rectangle at (x, y) of size nx×ny.
func concrete(t testing.TB, x, y, nx, ny int) schedule.Lattice {
	t.Helper()
	xs := make([]float64, nx)
	for i := range xs {
		xs[i] = float64(x + i)
	}
	ys := make([]float64, ny)
	for j := range ys {
		ys[j] = float64(y + j)
	}
	start := grid.MustFromPositions(xs, ys)

	xt, yt := make([]int, nx), make([]int, ny)
	for i := range xt {
		xt[i] = x + i
	}
	for j := range yt {
		yt[j] = y + j
	}
	p, err := action.NewPath(xt, yt, pickTrace(t, start))
	require.NoError(t, err)

	return schedule.ConcretePath{Path: p}
}
