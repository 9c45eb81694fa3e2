package schedule_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/tweezer/action"
	"github.com/katalvlaran/tweezer/grid"
	"github.com/katalvlaran/tweezer/ir"
	"github.com/katalvlaran/tweezer/schedule"
	"github.com/katalvlaran/tweezer/trace"
)

func row(xs ...float64) grid.Grid {
	return grid.MustFromPositions(xs, []float64{0})
}

// pickTask lifts the sites of its grid argument and carries them 5 units up.
func pickTask() trace.Task {
	return trace.NewTask("pick", func(g *trace.Generator, args ...any) error {
		start, ok := args[0].(grid.Grid)
		if !ok {
			return fmt.Errorf("%w: want grid.Grid, got %T", trace.ErrBadArgument, args[0])
		}
		if err := g.SetLocation(start); err != nil {
			return err
		}
		if err := g.TurnOn(action.All(), action.All()); err != nil {
			return err
		}
		if err := g.Move(start.Shift(0, 5)); err != nil {
			return err
		}
		return g.TurnOff(action.All(), action.All())
	})
}

// slideTask only moves, so it cannot run in lockstep with pickTask.
func slideTask() trace.Task {
	return trace.NewTask("slide", func(g *trace.Generator, args ...any) error {
		start := args[0].(grid.Grid)
		if err := g.SetLocation(start); err != nil {
			return err
		}
		return g.Move(start.Shift(3, 0))
	})
}

// dropTask is pickTask that releases only the first column of its sites.
func dropTask() trace.Task {
	return trace.NewTask("drop", func(g *trace.Generator, args ...any) error {
		start := args[0].(grid.Grid)
		if err := g.SetLocation(start); err != nil {
			return err
		}
		if err := g.TurnOn(action.All(), action.All()); err != nil {
			return err
		}
		if err := g.Move(start.Shift(0, 5)); err != nil {
			return err
		}
		return g.TurnOff(action.Indices(0), action.All())
	})
}

func pickTrace(t testing.TB, start grid.Grid) []action.Action {
	t.Helper()
	actions, err := trace.Run(pickTask(), start)
	require.NoError(t, err)

	return actions
}

// AnalysisSuite exercises binding, generation and auto grouping.
type AnalysisSuite struct {
	suite.Suite
	task trace.Task
}

func (s *AnalysisSuite) SetupTest() {
	s.task = pickTask()
}

// bound builds Auto(gen(device_fn(task, x_i, y_i), grid_i)...) and plays it.
func (s *AnalysisSuite) bound(tones ...schedule.ToneData) (*ir.Program, ir.Value) {
	b := ir.NewBuilder()
	task := b.Const(s.task)
	paths := make([]ir.Value, len(tones))
	for i, t := range tones {
		fn := b.DeviceFunction(task, b.Const(t.XTones), b.Const(t.YTones))
		start := row(float64(10*i), float64(10*i+1))
		paths[i] = b.Gen(fn, b.Const(start))
	}
	auto := b.Auto(paths...)
	b.Play(auto)

	return b.Program(), auto
}

func (s *AnalysisSuite) analyze(p *ir.Program, opts ...schedule.Option) *schedule.Result {
	res, err := schedule.NewAnalyzer(opts...).Run(p)
	require.NoError(s.T(), err)

	return res
}

// TestDisjointTonesShareGroup: x [0,1] and x [2,3] on y [0] run in parallel.
func (s *AnalysisSuite) TestDisjointTonesShareGroup() {
	p, auto := s.bound(
		schedule.ToneData{XTones: []int{0, 1}, YTones: []int{0}},
		schedule.ToneData{XTones: []int{2, 3}, YTones: []int{0}},
	)
	res := s.analyze(p)
	require.NoError(s.T(), res.Err())

	sched, ok := res.Get(auto).(schedule.AutoSchedule)
	require.True(s.T(), ok, "got %v", res.Get(auto))
	require.Equal(s.T(), []int{0, 0}, sched.GroupIDs)
	require.Equal(s.T(), []int{0, 1, 2, 3}, sched.Groups[0].XTones)

	rewritten, err := schedule.AutoRewriter{}.Rewrite(p, res)
	require.NoError(s.T(), err)
	require.Contains(s.T(), rewritten.String(), "parallel")

	res = s.analyze(rewritten)
	out, err := schedule.Materialize(rewritten, res)
	require.NoError(s.T(), err)
	require.Len(s.T(), out.Groups, 1)
	require.Len(s.T(), out.Groups[0].Paths, 2)
}

// TestIdenticalTonesAreSequential: two paths on the same tones never merge.
func (s *AnalysisSuite) TestIdenticalTonesAreSequential() {
	t := schedule.ToneData{XTones: []int{0, 1}, YTones: []int{0}}
	p, auto := s.bound(t, t)
	res := s.analyze(p)
	require.NoError(s.T(), res.Err())

	sched := res.Get(auto).(schedule.AutoSchedule)
	require.Equal(s.T(), []int{0, 1}, sched.GroupIDs)

	out, err := schedule.Materialize(p, res)
	require.NoError(s.T(), err)
	require.Len(s.T(), out.Groups, 2)
	for _, g := range out.Groups {
		require.Len(s.T(), g.Paths, 1)
	}
}

// TestSameXDisjointYShareGroup: disjointness on one axis suffices.
func (s *AnalysisSuite) TestSameXDisjointYShareGroup() {
	p, auto := s.bound(
		schedule.ToneData{XTones: []int{0, 1}, YTones: []int{0}},
		schedule.ToneData{XTones: []int{0, 1}, YTones: []int{1}},
	)
	res := s.analyze(p)
	require.Equal(s.T(), []int{0, 0}, res.Get(auto).(schedule.AutoSchedule).GroupIDs)
}

// TestAllocation covers the three allocation branches of the greedy scheduler.
func (s *AnalysisSuite) TestAllocation() {
	build := func() (*ir.Program, ir.Value) {
		b := ir.NewBuilder()
		fn := b.TweezerTask(b.Const(s.task))
		p1 := b.Gen(fn, b.Const(row(0, 1)))
		p2 := b.Gen(fn, b.Const(row(5, 6)))
		auto := b.Auto(p1, p2)
		b.Play(auto)
		return b.Program(), auto
	}

	cases := []struct {
		name       string
		maxX, maxY int
		ids        []int
		second     schedule.ToneData
	}{
		{"unbounded", 0, 0, []int{0, 0}, schedule.ToneData{XTones: []int{2, 3}, YTones: []int{0}}},
		{"x exhausted", 2, 0, []int{0, 0}, schedule.ToneData{XTones: []int{0, 1}, YTones: []int{1}}},
		{"both exhausted", 2, 1, []int{0, 1}, schedule.ToneData{XTones: []int{0, 1}, YTones: []int{0}}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			p, auto := build()
			res := s.analyze(p, schedule.WithToneBudget(tc.maxX, tc.maxY))
			require.NoError(s.T(), res.Err())

			sched := res.Get(auto).(schedule.AutoSchedule)
			require.Equal(s.T(), tc.ids, sched.GroupIDs)
			require.True(s.T(), sched.Tones[1].Equal(tc.second), "got %v", sched.Tones[1])
			require.Equal(s.T(), schedule.KindNeedsTones, sched.Paths[1].Kind())

			_, err := schedule.Materialize(p, res)
			require.ErrorIs(s.T(), err, schedule.ErrScheduleIncomplete, "members still need tones")

			out, _, err := schedule.Compile(p, schedule.WithToneBudget(tc.maxX, tc.maxY))
			require.NoError(s.T(), err)
			var paths []action.Path
			for _, g := range out.Groups {
				paths = append(paths, g.Paths...)
			}
			require.Len(s.T(), paths, 2)
			require.Equal(s.T(), tc.second.XTones, paths[1].XTones)
			require.Equal(s.T(), tc.second.YTones, paths[1].YTones)
		})
	}
}

// TestToneBudgetExceeded: a request wider than the AOD cannot be placed.
func (s *AnalysisSuite) TestToneBudgetExceeded() {
	b := ir.NewBuilder()
	fn := b.TweezerTask(b.Const(s.task))
	b.Play(b.Auto(b.Gen(fn, b.Const(row(0, 1, 2)))))

	res := s.analyze(b.Program(), schedule.WithToneBudget(2, 2))
	require.ErrorIs(s.T(), res.Err(), schedule.ErrToneBudget)
	require.ErrorIs(s.T(), res.Err(), schedule.ErrSchedulingConflict)
}

// TestReverse: double reversal unwraps and reversed generation inverts the trace.
func (s *AnalysisSuite) TestReverse() {
	b := ir.NewBuilder()
	fn := b.TweezerTask(b.Const(s.task))
	rev := b.Reverse(fn)
	twice := b.Reverse(rev)
	bound := b.Reverse(b.DeviceFunction(b.Const(s.task), b.Const([]int{4, 5}), b.Const([]int{1})))
	start := b.Const(row(0, 1))
	path := b.Gen(bound, start)
	b.Play(path)
	p := b.Program()

	res := s.analyze(p)
	require.NoError(s.T(), res.Err())
	require.True(s.T(), schedule.Equal(res.Get(twice), res.Get(fn)))
	require.Equal(s.T(), schedule.KindReverse, res.Get(rev).Kind())

	want, err := action.Reverse(pickTrace(s.T(), row(0, 1)))
	require.NoError(s.T(), err)
	cp, ok := res.Get(path).(schedule.ConcretePath)
	require.True(s.T(), ok)
	require.True(s.T(), action.EqualTrace(want, cp.Path.Actions))
	require.Equal(s.T(), []int{4, 5}, cp.Path.XTones)
}

// TestRewriteKeepsReverse: an unbound reversed task is re-bound under Reverse.
func (s *AnalysisSuite) TestRewriteKeepsReverse() {
	b := ir.NewBuilder()
	fn := b.Reverse(b.TweezerTask(b.Const(s.task)))
	b.Play(b.Auto(b.Gen(fn, b.Const(row(0, 1)))))
	p := b.Program()

	out, rewritten, err := schedule.Compile(p)
	require.NoError(s.T(), err)
	require.Contains(s.T(), rewritten.String(), "device_fn")
	require.Len(s.T(), out.Groups, 1)

	want, err := action.Reverse(pickTrace(s.T(), row(0, 1)))
	require.NoError(s.T(), err)
	got := out.Groups[0].Paths[0]
	require.True(s.T(), action.EqualTrace(want, got.Actions))
	require.Equal(s.T(), []int{0, 1}, got.XTones)
	require.Equal(s.T(), []int{0}, got.YTones)
}

// TestUnboundTones: non-constant tones widen to top and the auto fails.
func (s *AnalysisSuite) TestUnboundTones() {
	b := ir.NewBuilder()
	task := b.Const(s.task)
	fn := b.DeviceFunction(task, b.Opaque("xs"), b.Const([]int{0}))
	path := b.Gen(fn, b.Const(row(0, 1)))
	auto := b.Auto(path)
	b.Play(auto)
	p := b.Program()

	res := s.analyze(p)
	require.True(s.T(), schedule.IsTop(res.Get(fn)))
	require.True(s.T(), schedule.IsTop(res.Get(path)))
	require.True(s.T(), schedule.IsTop(res.Get(auto)))
	require.Len(s.T(), res.Diagnostics, 2, "gen inherits top silently")
	require.ErrorIs(s.T(), res.Diagnostics[0], schedule.ErrUnboundTones)
	require.ErrorIs(s.T(), res.Diagnostics[1], schedule.ErrSchedulingConflict)

	_, err := schedule.AutoRewriter{}.Rewrite(p, res)
	require.ErrorIs(s.T(), err, schedule.ErrScheduleIncomplete)

	_, err = schedule.Materialize(p, res)
	require.ErrorIs(s.T(), err, schedule.ErrScheduleIncomplete)
}

// TestNonConstantInput: generation needs constant inputs.
func (s *AnalysisSuite) TestNonConstantInput() {
	b := ir.NewBuilder()
	fn := b.TweezerTask(b.Const(s.task))
	path := b.Gen(fn, b.Opaque("site"))
	p := b.Program()

	res := s.analyze(p)
	require.True(s.T(), schedule.IsTop(res.Get(path)))
	require.ErrorIs(s.T(), res.Err(), schedule.ErrNotConstant)
}

// TestShapeMismatch: bound tones must match the generated grids.
func (s *AnalysisSuite) TestShapeMismatch() {
	b := ir.NewBuilder()
	fn := b.DeviceFunction(b.Const(s.task), b.Const([]int{0}), b.Const([]int{0}))
	b.Gen(fn, b.Const(row(0, 1)))

	res := s.analyze(b.Program())
	require.ErrorIs(s.T(), res.Err(), grid.ErrShapeMismatch)
}

// TestParallelMisaligned: members with different skeletons are rejected.
func (s *AnalysisSuite) TestParallelMisaligned() {
	b := ir.NewBuilder()
	pick := b.TweezerTask(b.Const(s.task))
	slide := b.TweezerTask(b.Const(slideTask()))
	par := b.Parallel(b.Gen(pick, b.Const(row(0, 1))), b.Gen(slide, b.Const(row(5, 6))))
	b.Play(par)

	res := s.analyze(b.Program())
	require.True(s.T(), schedule.IsTop(res.Get(par)))
	require.ErrorIs(s.T(), res.Err(), schedule.ErrMisaligned)
}

// TestMisalignedAutoSplits: the scheduler keeps incompatible skeletons apart
// even when their tones are disjoint.
func (s *AnalysisSuite) TestMisalignedAutoSplits() {
	b := ir.NewBuilder()
	pick := b.DeviceFunction(b.Const(s.task), b.Const([]int{0, 1}), b.Const([]int{0}))
	slide := b.DeviceFunction(b.Const(slideTask()), b.Const([]int{2, 3}), b.Const([]int{0}))
	auto := b.Auto(b.Gen(pick, b.Const(row(0, 1))), b.Gen(slide, b.Const(row(5, 6))))
	b.Play(auto)

	res := s.analyze(b.Program())
	require.NoError(s.T(), res.Err())
	require.Equal(s.T(), []int{0, 1}, res.Get(auto).(schedule.AutoSchedule).GroupIDs)
}

// TestSharedToneReleasedApart: members sharing a y tone but releasing
// different columns of it are not grouped.
func (s *AnalysisSuite) TestSharedToneReleasedApart() {
	b := ir.NewBuilder()
	pick := b.DeviceFunction(b.Const(s.task), b.Const([]int{0, 1}), b.Const([]int{0}))
	drop := b.DeviceFunction(b.Const(dropTask()), b.Const([]int{2, 3}), b.Const([]int{0}))
	left, right := b.Gen(pick, b.Const(row(0, 1))), b.Gen(drop, b.Const(row(5, 6)))
	auto := b.Auto(left, right)
	b.Play(auto)

	res := s.analyze(b.Program())
	require.NoError(s.T(), res.Err())
	require.Equal(s.T(), []int{0, 1}, res.Get(auto).(schedule.AutoSchedule).GroupIDs)

	b = ir.NewBuilder()
	pick = b.DeviceFunction(b.Const(s.task), b.Const([]int{0, 1}), b.Const([]int{0}))
	drop = b.DeviceFunction(b.Const(dropTask()), b.Const([]int{2, 3}), b.Const([]int{0}))
	par := b.Parallel(b.Gen(pick, b.Const(row(0, 1))), b.Gen(drop, b.Const(row(5, 6))))
	b.Play(par)

	res = s.analyze(b.Program())
	require.True(s.T(), schedule.IsTop(res.Get(par)))
	require.ErrorIs(s.T(), res.Err(), schedule.ErrSharedTones)
}

// TestNestedAutoNeedsTones: an auto group nested in another cannot hand tones
// to its unbound members, so the outer group is rejected during analysis.
func (s *AnalysisSuite) TestNestedAutoNeedsTones() {
	b := ir.NewBuilder()
	fn := b.TweezerTask(b.Const(s.task))
	inner := b.Auto(b.Gen(fn, b.Const(row(0, 1))), b.Gen(fn, b.Const(row(5, 6))))
	outer := b.Auto(inner)
	b.Play(outer)
	p := b.Program()

	res := s.analyze(p)
	require.Equal(s.T(), schedule.KindAuto, res.Get(inner).Kind())
	require.True(s.T(), schedule.IsTop(res.Get(outer)))
	require.ErrorIs(s.T(), res.Err(), schedule.ErrSchedulingConflict)

	_, _, err := schedule.Compile(p)
	require.ErrorIs(s.T(), err, schedule.ErrSchedulingConflict)
	require.NotErrorIs(s.T(), err, schedule.ErrScheduleIncomplete)
}

// TestMalformedProgram: undefined values are reported by Run itself.
func (s *AnalysisSuite) TestMalformedProgram() {
	b := ir.NewBuilder()
	b.Append(&ir.Stmt{Op: ir.OpPlay, Args: []ir.Value{42}})

	_, err := schedule.NewAnalyzer().Run(b.Program())
	require.True(s.T(), errors.Is(err, ir.ErrUndefined))
}

func TestAnalysisSuite(t *testing.T) {
	suite.Run(t, new(AnalysisSuite))
}
