package plan

import (
	"errors"

	"github.com/hashicorp/hcl/v2"

	"github.com/katalvlaran/tweezer/ir"
	"github.com/katalvlaran/tweezer/trace"
)

// Sentinel errors for plan loading.
var (
	ErrUnknownTask = errors.New("plan: unknown task")
	ErrUnknownPath = errors.New("plan: unknown path")
	ErrUnknownOp   = errors.New("plan: unknown step")
	ErrBadStep     = errors.New("plan: invalid step")
	ErrBadPath     = errors.New("plan: invalid path")
	ErrBadMode     = errors.New("plan: unknown play mode")
	ErrDuplicate   = errors.New("plan: duplicate name")
)

// Play modes.
const (
	ModeSequential = "sequential"
	ModeParallel   = "parallel"
	ModeAuto       = "auto"
)

// Plan is a loaded plan file. Values maps each path name to the Gen value
// that generates it in Program.
type Plan struct {
	Tasks   map[string]*trace.Script
	Paths   []string
	Values  map[string]ir.Value
	Program *ir.Program
}

type fileRoot struct {
	Tasks []*taskBlock `hcl:"task,block"`
	Paths []*pathBlock `hcl:"path,block"`
	Plays []*playBlock `hcl:"play,block"`
}

type taskBlock struct {
	Name   string       `hcl:"name,label"`
	Params []string     `hcl:"params,optional"`
	Steps  []*stepBlock `hcl:"step,block"`
}

type stepBlock struct {
	Op   string         `hcl:"op,label"`
	Grid hcl.Expression `hcl:"grid,optional"`
	X    hcl.Expression `hcl:"x,optional"`
	Y    hcl.Expression `hcl:"y,optional"`
}

type pathBlock struct {
	Name    string         `hcl:"name,label"`
	Task    string         `hcl:"task"`
	XTones  hcl.Expression `hcl:"x_tones,optional"`
	YTones  hcl.Expression `hcl:"y_tones,optional"`
	Args    hcl.Expression `hcl:"args,optional"`
	Reverse bool           `hcl:"reverse,optional"`
}

type playBlock struct {
	Mode  string   `hcl:"mode,label"`
	Paths []string `hcl:"paths"`
}
