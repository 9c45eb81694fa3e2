package export

import (
	"errors"
)

// ErrBadDocument indicates YAML that does not describe a schedule.
var ErrBadDocument = errors.New("export: malformed schedule document")

// Document is the YAML form of a schedule.Schedule.
type Document struct {
	Groups []GroupDoc `yaml:"groups"`
}

// GroupDoc is one lockstep group.
type GroupDoc struct {
	Paths []PathDoc `yaml:"paths"`
}

// PathDoc is one bound path.
type PathDoc struct {
	XTones  []int       `yaml:"x_tones,flow"`
	YTones  []int       `yaml:"y_tones,flow"`
	Actions []ActionDoc `yaml:"actions"`
}

// ActionDoc is one action; which fields are set depends on Op.
type ActionDoc struct {
	Op        string       `yaml:"op"`
	Grid      *GridDoc     `yaml:"grid,omitempty"`
	Waypoints []GridDoc    `yaml:"waypoints,omitempty"`
	X         *SelectorDoc `yaml:"x,omitempty"`
	Y         *SelectorDoc `yaml:"y,omitempty"`
}

// GridDoc lists the site positions of a grid per axis.
type GridDoc struct {
	X []float64 `yaml:"x,flow"`
	Y []float64 `yaml:"y,flow"`
}

// SelectorDoc wraps an action.Selector for YAML.
type SelectorDoc struct {
	All     bool
	Indices []int
	Start   int
	Stop    *int
	Step    int
}

type spanDoc struct {
	Start int  `yaml:"start"`
	Stop  *int `yaml:"stop,omitempty"`
	Step  int  `yaml:"step,omitempty"`
}
