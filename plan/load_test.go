package plan_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tweezer/aodstate"
	"github.com/katalvlaran/tweezer/arch"
	"github.com/katalvlaran/tweezer/ir"
	"github.com/katalvlaran/tweezer/plan"
	"github.com/katalvlaran/tweezer/schedule"
	"github.com/katalvlaran/tweezer/trace"
)

const device = `
aod {
  x_tones = 4
  y_tones = 1
}

constants {
  float = { lift = 5 }
}

zone "storage" {
  x_positions = [0, 10, 20, 30, 40, 50]
  y_positions = [0]
}
`

const moves = `
task "pick" {
  params = ["src"]

  step "set_location" { grid = param.src }
  step "turn_on" {}
  step "move" { grid = shift(param.src, 0, const.float.lift) }
  step "turn_off" {}
}

task "wiggle" {
  params = ["src", "dx"]

  step "set_location" { grid = param.src }
  step "turn_on" { x = [0] }
  step "move" { grid = shift(param.src, param.dx, -const.float.lift) }
  step "turn_off" { x = { start = 0, stop = 1 } }
}

path "a" {
  task = "pick"
  args = [view(zone.storage, [0, 1], [0])]
}

path "b" {
  task = "pick"
  args = [view(zone.storage, [2, 3], [0])]
}

path "c" {
  task = "pick"
  args = [view(zone.storage, [4, 5], [0])]
}

path "home" {
  task    = "pick"
  x_tones = [0, 1]
  y_tones = [0]
  args    = [view(zone.storage, [0, 1], [0])]
  reverse = true
}

path "nudge" {
  task    = "wiggle"
  x_tones = [2]
  y_tones = [0]
  args    = [shift(view(zone.storage, [3], [0]), 0, const.float.lift), 2]
}

play "auto" {
  paths = ["a", "b", "c"]
}

play "sequential" {
  paths = ["home"]
}

play "parallel" {
  paths = ["home", "nudge"]
}
`

func load(t *testing.T, src string) *plan.Plan {
	t.Helper()
	spec, err := arch.Parse(context.Background(), []byte(device), "device.hcl")
	require.NoError(t, err)
	p, err := plan.Parse(context.Background(), []byte(src), "moves.hcl", spec)
	require.NoError(t, err)

	return p
}

func TestParse(t *testing.T) {
	p := load(t, moves)

	assert.Equal(t, []string{"a", "b", "c", "home", "nudge"}, p.Paths)
	require.Contains(t, p.Tasks, "pick")
	assert.Equal(t, []string{"src"}, p.Tasks["pick"].Params())
	require.NoError(t, p.Program.Validate())

	var plays, gens int
	for _, s := range p.Program.Stmts() {
		switch s.Op {
		case ir.OpPlay:
			plays++
		case ir.OpGen:
			gens++
		}
	}
	assert.Equal(t, 3, plays)
	assert.Equal(t, 5, gens, "each path is generated once")
	assert.Len(t, p.Values, 5)
}

func TestCompilePlan(t *testing.T) {
	p := load(t, moves)

	sched, _, err := schedule.Compile(p.Program, schedule.WithToneBudget(4, 1))
	require.NoError(t, err)
	require.Len(t, sched.Groups, 4)

	// a and b share the AOD, c waits, then home, then home beside nudge.
	assert.Len(t, sched.Groups[0].Paths, 2)
	assert.Len(t, sched.Groups[1].Paths, 1)
	assert.Len(t, sched.Groups[2].Paths, 1)
	assert.Len(t, sched.Groups[3].Paths, 2)
	assert.Equal(t, []int{0, 1}, sched.Groups[0].Paths[0].XTones)
	assert.Equal(t, []int{2, 3}, sched.Groups[0].Paths[1].XTones)

	_, err = aodstate.CheckSchedule(sched, aodstate.WithToneBudget(4, 1))
	require.NoError(t, err)
}

func TestScriptTrace(t *testing.T) {
	p := load(t, moves)

	spec, err := arch.Parse(context.Background(), []byte(device), "device.hcl")
	require.NoError(t, err)
	storage, err := spec.Zone("storage")
	require.NoError(t, err)
	src, err := storage.View([]int{0, 1}, []int{0})
	require.NoError(t, err)

	acts, err := trace.Run(p.Tasks["pick"], src)
	require.NoError(t, err)
	require.Len(t, acts, 4)
	_, err = trace.Run(p.Tasks["pick"])
	require.ErrorIs(t, err, trace.ErrBadArgument)
}

func TestParseErrors(t *testing.T) {
	const pick = `
task "pick" {
  step "set_location" { grid = zone.storage }
}
`
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"unknown op", `
task "t" {
  step "teleport" {}
}`, plan.ErrUnknownOp},
		{"move without grid", `
task "t" {
  step "move" {}
}`, plan.ErrBadStep},
		{"bad selector", `
task "t" {
  step "turn_on" { x = "some" }
}`, plan.ErrBadStep},
		{"duplicate task", pick + pick, plan.ErrDuplicate},
		{"unknown task", `
path "p" { task = "nope" }
play "sequential" { paths = ["p"] }`, plan.ErrUnknownTask},
		{"unknown path", pick + `play "auto" { paths = ["p"] }`, plan.ErrUnknownPath},
		{"half tones", pick + `
path "p" {
  task    = "pick"
  x_tones = [0]
}
play "sequential" { paths = ["p"] }`, plan.ErrBadPath},
		{"bad mode", pick + `
path "p" { task = "pick" }
play "shuffle" { paths = ["p"] }`, plan.ErrBadMode},
		{"duplicate path", pick + `
path "p" { task = "pick" }
path "p" { task = "pick" }`, plan.ErrDuplicate},
	}

	spec, err := arch.Parse(context.Background(), []byte(device), "device.hcl")
	require.NoError(t, err)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := plan.Parse(context.Background(), []byte(tc.src), "bad.hcl", spec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := plan.Parse(context.Background(), []byte(`task {`), "broken.hcl", nil)
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	spec, err := arch.Parse(context.Background(), []byte(device), "device.hcl")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "moves.hcl")
	require.NoError(t, os.WriteFile(path, []byte(moves), 0o600))

	p, err := plan.Load(context.Background(), path, spec)
	require.NoError(t, err)
	assert.Len(t, p.Paths, 5)

	_, err = plan.Load(context.Background(), filepath.Join(t.TempDir(), "missing.hcl"), spec)
	require.Error(t, err)
}
