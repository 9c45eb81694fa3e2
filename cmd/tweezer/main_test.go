package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tweezer/export"
)

const device = `
aod {
  x_tones = 4
  y_tones = 2
}

zone "storage" {
  x_positions = [0, 10, 20, 30]
  y_positions = [0, 10]
}
`

const moves = `
task "pick" {
  params = ["src"]

  step "set_location" { grid = param.src }
  step "turn_on" {}
  step "move" { grid = shift(param.src, 0, 5) }
  step "turn_off" {}
}

path "left" {
  task = "pick"
  args = [view(zone.storage, [0, 1], [0])]
}

path "right" {
  task = "pick"
  args = [view(zone.storage, [2, 3], [0])]
}

path "fixed" {
  task    = "pick"
  x_tones = [0]
  y_tones = [1]
  args    = [view(zone.storage, [0], [1])]
}

play "auto" {
  paths = ["left", "right"]
}
`

func write(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func TestCheckCmd(t *testing.T) {
	archFile := write(t, "device.hcl", device)
	planFile := write(t, "moves.hcl", moves)

	out, err := run(t, "check", "--arch", archFile, planFile)
	require.NoError(t, err)

	s, err := export.Decode(bytes.NewBufferString(out))
	require.NoError(t, err)
	require.Len(t, s.Groups, 1)
	assert.Len(t, s.Groups[0].Paths, 2)
}

func TestCheckCmd_OutFileAndLogFile(t *testing.T) {
	archFile := write(t, "device.hcl", device)
	planFile := write(t, "moves.hcl", moves)
	dir := t.TempDir()
	outFile := filepath.Join(dir, "schedule.yaml")
	logFile := filepath.Join(dir, "tweezer.log")

	out, err := run(t, "check", "-a", archFile, "-o", outFile, "--log-level", "debug", "--log-file", logFile, planFile)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "groups:")

	logs, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logs), `"msg":"Schedule checked."`)
}

func TestCheckCmd_NeedsArch(t *testing.T) {
	planFile := write(t, "moves.hcl", moves)

	_, err := run(t, "check", planFile)
	require.Error(t, err)
}

func TestCheckCmd_OverBudget(t *testing.T) {
	archFile := write(t, "device.hcl", `
aod {
  x_tones = 1
  y_tones = 1
}

zone "storage" {
  x_positions = [0, 10, 20, 30]
  y_positions = [0, 10]
}
`)
	planFile := write(t, "moves.hcl", moves)

	_, err := run(t, "check", "--arch", archFile, planFile)
	require.Error(t, err)
}

func TestTraceCmd(t *testing.T) {
	archFile := write(t, "device.hcl", device)
	planFile := write(t, "moves.hcl", moves)

	out, err := run(t, "trace", "--arch", archFile, planFile, "left", "fixed")
	require.NoError(t, err)
	assert.Contains(t, out, "left: unbound, needs 2x1 tones")
	assert.Contains(t, out, "fixed: x[0] y[1]")
	assert.Contains(t, out, "  3: TurnOff(ALL, ALL)")

	_, err = run(t, "trace", "--arch", archFile, planFile, "nowhere")
	require.Error(t, err)
}

func TestZonesCmd(t *testing.T) {
	archFile := write(t, "device.hcl", device)

	out, err := run(t, "zones", "--arch", archFile)
	require.NoError(t, err)
	assert.Contains(t, out, "aod: 4 x tones, 2 y tones")
	assert.Contains(t, out, "zone storage: 4x2 x=[0 10 20 30] y=[0 10]")
}
