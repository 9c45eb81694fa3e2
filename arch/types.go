package arch

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/hashicorp/hcl/v2"

	"github.com/katalvlaran/tweezer/grid"
)

// Sentinel errors for architecture lookups.
var (
	ErrZoneNotFound     = errors.New("arch: zone not found")
	ErrGridNotFound     = errors.New("arch: special grid not found")
	ErrConstantNotFound = errors.New("arch: constant not found")
	ErrBadZone          = errors.New("arch: invalid zone")
)

// Spec describes one device.
type Spec struct {
	// XTones and YTones are the number of tones per AOD axis; 0 means unbounded.
	XTones int
	YTones int

	Zones   map[string]grid.Grid
	Special map[string]grid.Grid
	Floats  map[string]float64
	Ints    map[string]int
}

// NewSpec returns an empty Spec.
func NewSpec() *Spec {
	return &Spec{
		Zones:   map[string]grid.Grid{},
		Special: map[string]grid.Grid{},
		Floats:  map[string]float64{},
		Ints:    map[string]int{},
	}
}

// Zone returns the named zone.
func (s *Spec) Zone(name string) (grid.Grid, error) {
	g, ok := s.Zones[name]
	if !ok {
		return grid.Grid{}, fmt.Errorf("%w: %q", ErrZoneNotFound, name)
	}

	return g, nil
}

// SpecialGrid returns the named special grid.
func (s *Spec) SpecialGrid(name string) (grid.Grid, error) {
	g, ok := s.Special[name]
	if !ok {
		return grid.Grid{}, fmt.Errorf("%w: %q", ErrGridNotFound, name)
	}

	return g, nil
}

// Float returns the named float constant.
func (s *Spec) Float(name string) (float64, error) {
	v, ok := s.Floats[name]
	if !ok {
		return 0, fmt.Errorf("%w: float %q", ErrConstantNotFound, name)
	}

	return v, nil
}

// Int returns the named int constant.
func (s *Spec) Int(name string) (int, error) {
	v, ok := s.Ints[name]
	if !ok {
		return 0, fmt.Errorf("%w: int %q", ErrConstantNotFound, name)
	}

	return v, nil
}

// ZoneNames returns the zone names in ascending order.
func (s *Spec) ZoneNames() []string {
	return slices.Sorted(maps.Keys(s.Zones))
}

// SpecialNames returns the special grid names in ascending order.
func (s *Spec) SpecialNames() []string {
	return slices.Sorted(maps.Keys(s.Special))
}

// fileRoot decodes the top-level blocks of an architecture file.
type fileRoot struct {
	AOD       *aodBlock       `hcl:"aod,block"`
	Constants *constantsBlock `hcl:"constants,block"`
	Zones     []*gridBlock    `hcl:"zone,block"`
	Special   []*gridBlock    `hcl:"special_grid,block"`
}

type aodBlock struct {
	XTones int `hcl:"x_tones"`
	YTones int `hcl:"y_tones"`
}

type constantsBlock struct {
	Float map[string]float64 `hcl:"float,optional"`
	Int   map[string]int     `hcl:"int,optional"`
}

// gridBlock holds unevaluated grid attributes; gohcl assigns a null
// expression to absent optional attributes.
type gridBlock struct {
	Name       string         `hcl:"name,label"`
	XSpacing   hcl.Expression `hcl:"x_spacing,optional"`
	YSpacing   hcl.Expression `hcl:"y_spacing,optional"`
	Origin     hcl.Expression `hcl:"origin,optional"`
	XPositions hcl.Expression `hcl:"x_positions,optional"`
	YPositions hcl.Expression `hcl:"y_positions,optional"`
	Grid       hcl.Expression `hcl:"grid,optional"`
}
