package arch

import (
	"context"
	"fmt"
	"maps"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/katalvlaran/tweezer/grid"
	"github.com/katalvlaran/tweezer/internal/ctxlog"
)

// Load reads and evaluates the architecture file at path.
func Load(ctx context.Context, path string) (*Spec, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("arch: %w", err)
	}

	return Parse(ctx, src, path)
}

// Parse evaluates architecture source; filename is used in diagnostics.
func Parse(ctx context.Context, src []byte, filename string) (*Spec, error) {
	logger := ctxlog.FromContext(ctx)

	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse architecture file %s: %w", filename, diags)
	}
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode architecture file %s: %w", filename, diags)
	}

	spec := NewSpec()
	if root.AOD != nil {
		if root.AOD.XTones < 0 || root.AOD.YTones < 0 {
			return nil, fmt.Errorf("%s: negative tone count %dx%d", filename, root.AOD.XTones, root.AOD.YTones)
		}
		spec.XTones, spec.YTones = root.AOD.XTones, root.AOD.YTones
	}
	if root.Constants != nil {
		maps.Copy(spec.Floats, root.Constants.Float)
		maps.Copy(spec.Ints, root.Constants.Int)
	}

	for _, b := range root.Zones {
		if _, dup := spec.Zones[b.Name]; dup {
			return nil, fmt.Errorf("%s: %w: zone %q defined twice", filename, ErrBadZone, b.Name)
		}
		g, err := b.eval(spec.EvalContext())
		if err != nil {
			return nil, fmt.Errorf("%s: zone %q: %w", filename, b.Name, err)
		}
		spec.Zones[b.Name] = g
		logger.Debug("Loaded zone.", "zone", b.Name, "shape", fmt.Sprint(g.Width(), "x", g.Height()))
	}
	for _, b := range root.Special {
		if _, dup := spec.Special[b.Name]; dup {
			return nil, fmt.Errorf("%s: %w: special grid %q defined twice", filename, ErrBadZone, b.Name)
		}
		g, err := b.eval(spec.EvalContext())
		if err != nil {
			return nil, fmt.Errorf("%s: special grid %q: %w", filename, b.Name, err)
		}
		spec.Special[b.Name] = g
	}

	logger.Debug("Architecture loaded.",
		"file", filename,
		"x_tones", spec.XTones,
		"y_tones", spec.YTones,
		"zones", len(spec.Zones),
		"special_grids", len(spec.Special),
	)

	return spec, nil
}

// EvalContext returns the HCL context exposing zone, special and const
// variables and the grid functions.
func (s *Spec) EvalContext() *hcl.EvalContext {
	grids := func(m map[string]grid.Grid) cty.Value {
		if len(m) == 0 {
			return cty.EmptyObjectVal
		}
		vals := make(map[string]cty.Value, len(m))
		for name, g := range m {
			vals[name] = GridVal(g)
		}
		return cty.ObjectVal(vals)
	}
	floats := make(map[string]cty.Value, len(s.Floats))
	for k, v := range s.Floats {
		floats[k] = cty.NumberFloatVal(v)
	}
	ints := make(map[string]cty.Value, len(s.Ints))
	for k, v := range s.Ints {
		ints[k] = cty.NumberIntVal(int64(v))
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"zone":    grids(s.Zones),
			"special": grids(s.Special),
			"const": cty.ObjectVal(map[string]cty.Value{
				"float": objectOrEmpty(floats),
				"int":   objectOrEmpty(ints),
			}),
			"aod": cty.ObjectVal(map[string]cty.Value{
				"x_tones": cty.NumberIntVal(int64(s.XTones)),
				"y_tones": cty.NumberIntVal(int64(s.YTones)),
			}),
		},
		Functions: Functions(),
	}
}

func objectOrEmpty(m map[string]cty.Value) cty.Value {
	if len(m) == 0 {
		return cty.EmptyObjectVal
	}

	return cty.ObjectVal(m)
}

func (b *gridBlock) eval(ctx *hcl.EvalContext) (grid.Grid, error) {
	vals := map[string]cty.Value{}
	for name, expr := range map[string]hcl.Expression{
		"x_spacing":   b.XSpacing,
		"y_spacing":   b.YSpacing,
		"origin":      b.Origin,
		"x_positions": b.XPositions,
		"y_positions": b.YPositions,
		"grid":        b.Grid,
	} {
		if expr == nil {
			continue
		}
		v, diags := expr.Value(ctx)
		if diags.HasErrors() {
			return grid.Grid{}, diags
		}
		if !v.IsNull() {
			vals[name] = v
		}
	}

	_, hasGrid := vals["grid"]
	_, hasXS := vals["x_spacing"]
	_, hasYS := vals["y_spacing"]
	_, hasXP := vals["x_positions"]
	_, hasYP := vals["y_positions"]
	switch {
	case hasGrid && len(vals) == 1:
		return AsGrid(vals["grid"])

	case hasXS && hasYS && !hasGrid && !hasXP && !hasYP:
		xs, ys, err := axes(vals, "x_spacing", "y_spacing")
		if err != nil {
			return grid.Grid{}, err
		}
		origin := []float64{0, 0}
		if _, ok := vals["origin"]; ok {
			if origin, err = floats(vals, "origin"); err != nil {
				return grid.Grid{}, err
			}
			if len(origin) != 2 {
				return grid.Grid{}, fmt.Errorf("%w: origin needs 2 numbers, got %d", ErrBadZone, len(origin))
			}
		}
		return grid.New(xs, ys, origin[0], origin[1])

	case hasXP && hasYP && len(vals) == 2:
		xs, ys, err := axes(vals, "x_positions", "y_positions")
		if err != nil {
			return grid.Grid{}, err
		}
		return grid.FromPositions(xs, ys)
	}

	return grid.Grid{}, fmt.Errorf("%w: need grid, x_spacing+y_spacing or x_positions+y_positions", ErrBadZone)
}

func axes(vals map[string]cty.Value, xName, yName string) (xs, ys []float64, err error) {
	if xs, err = floats(vals, xName); err != nil {
		return nil, nil, err
	}
	if ys, err = floats(vals, yName); err != nil {
		return nil, nil, err
	}

	return xs, ys, nil
}

// floats converts a number tuple or list attribute to []float64.
func floats(vals map[string]cty.Value, name string) ([]float64, error) {
	v, err := convert.Convert(vals[name], cty.List(cty.Number))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBadZone, name, err)
	}
	var out []float64
	if err := gocty.FromCtyValue(v, &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBadZone, name, err)
	}

	return out, nil
}
