package aodstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tweezer/aodstate"
)

// TestIsSubseteq_ActiveOnly: idle-tone bookkeeping does not affect ordering.
func TestIsSubseteq_ActiveOnly(t *testing.T) {
	a := aodstate.AOD{
		XTones: []int{0}, YTones: []int{0},
		XPos: map[int]float64{0: 1, 7: 9}, YPos: map[int]float64{0: 2},
	}
	b := aodstate.AOD{
		XTones: []int{0}, YTones: []int{0},
		XPos: map[int]float64{0: 1}, YPos: map[int]float64{0: 2, 3: 4},
	}
	moved := aodstate.AOD{
		XTones: []int{0}, YTones: []int{0},
		XPos: map[int]float64{0: 1.5}, YPos: map[int]float64{0: 2},
	}

	assert.True(t, aodstate.Equal(a, b))
	assert.False(t, aodstate.IsSubseteq(a, moved))
	assert.Equal(t, aodstate.KindUnknown, aodstate.Join(a, moved).Kind())

	g, ok := a.Active()
	require.True(t, ok)
	assert.Equal(t, []float64{1}, g.XPositions())
	assert.Equal(t, []float64{2}, g.YPositions())
}

func TestLattice_Bounds(t *testing.T) {
	cases := []aodstate.State{
		aodstate.Bottom(),
		aodstate.Idle(),
		aodstate.AODCollision{X: map[int]int{0: 2}},
		aodstate.AODJump{Y: map[int]aodstate.Jump{1: {From: 0, To: 1}}},
		aodstate.AODIdle{X: []int{3}},
		aodstate.Top(),
	}
	for _, s := range cases {
		assert.True(t, aodstate.IsSubseteq(aodstate.Bottom(), s), "%v", s)
		assert.True(t, aodstate.IsSubseteq(s, aodstate.Top()), "%v", s)
		assert.True(t, aodstate.Equal(aodstate.Join(s, aodstate.Bottom()), s), "%v", s)
		assert.Equal(t, aodstate.KindUnknown, aodstate.Join(s, aodstate.Top()).Kind())
	}
	assert.True(t, aodstate.IsViolation(cases[2]))
	assert.False(t, aodstate.IsViolation(cases[1]))
}
