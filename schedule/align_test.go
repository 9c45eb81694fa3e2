package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tweezer/action"
	"github.com/katalvlaran/tweezer/grid"
	"github.com/katalvlaran/tweezer/schedule"
)

// TestAlign_PadsAndHolds checks waypoint padding and holding of short traces.
func TestAlign_PadsAndHolds(t *testing.T) {
	a0, a1, a2 := row(0, 1), row(0, 2), row(0, 3)
	b0, b1 := row(5, 6), row(5, 8)
	long := []action.Action{
		action.SetLocation{Grid: a0},
		action.TurnOn{X: action.All(), Y: action.All()},
		action.Move{Waypoints: []grid.Grid{a0, a1, a2}},
		action.TurnOff{X: action.All(), Y: action.All()},
	}
	short := []action.Action{
		action.SetLocation{Grid: b0},
		action.TurnOn{X: action.All(), Y: action.All()},
		action.Move{Waypoints: []grid.Grid{b0, b1}},
	}

	frames, err := schedule.Align(long, short)
	require.NoError(t, err)
	require.Len(t, frames, 4)

	assert.Equal(t, action.KindMove, frames[2].Kind)
	padded := frames[2].Actions[1].(action.Move)
	require.Len(t, padded.Waypoints, 3)
	assert.True(t, padded.Waypoints[2].Equal(b1), "last waypoint is held")

	assert.Equal(t, action.KindTurnOff, frames[3].Kind)
	assert.Nil(t, frames[3].Actions[1], "short trace has ended")
}

func TestAlign_Mismatch(t *testing.T) {
	g := row(0, 1)
	a := []action.Action{action.SetLocation{Grid: g}, action.TurnOn{X: action.All(), Y: action.All()}}
	b := []action.Action{action.SetLocation{Grid: g}, action.Move{Waypoints: []grid.Grid{g, g.Shift(1, 0)}}}

	_, err := schedule.Align(a, b)
	assert.ErrorIs(t, err, schedule.ErrMisaligned)
	assert.False(t, schedule.Compatible(a, b))
	assert.True(t, schedule.Compatible(a, a[:1]))
}

func TestCoherent(t *testing.T) {
	g := row(0, 1)
	trace := func(off action.TurnOff) []action.Action {
		return []action.Action{
			action.SetLocation{Grid: g},
			action.TurnOn{X: action.All(), Y: action.All()},
			off,
		}
	}
	full := trace(action.TurnOff{X: action.All(), Y: action.All()})
	column := trace(action.TurnOff{X: action.Indices(0), Y: action.All()})
	left := schedule.ToneData{XTones: []int{0, 1}, YTones: []int{0}}
	right := schedule.ToneData{XTones: []int{2, 3}, YTones: []int{0}}
	apart := schedule.ToneData{XTones: []int{2, 3}, YTones: []int{1}}

	cases := []struct {
		name string
		a, b []action.Action
		ta   schedule.ToneData
		tb   schedule.ToneData
		want bool
	}{
		{"whole rows", full, full, left, right, true},
		{"one column of a shared row", full, column, left, right, false},
		{"no shared tone", full, column, left, apart, true},
		{"release after the other ended", full, full[:2], left, right, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, schedule.Coherent(tc.a, tc.b, tc.ta, tc.tb))
			assert.Equal(t, tc.want, schedule.Coherent(tc.b, tc.a, tc.tb, tc.ta))
		})
	}
}
