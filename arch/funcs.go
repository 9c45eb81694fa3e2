package arch

import (
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/katalvlaran/tweezer/grid"
)

// GridType is the HCL type of grid values.
var GridType = cty.Capsule("grid", reflect.TypeOf(grid.Grid{}))

// GridVal wraps g as an HCL value.
func GridVal(g grid.Grid) cty.Value {
	return cty.CapsuleVal(GridType, &g)
}

// AsGrid unwraps an HCL grid value.
func AsGrid(v cty.Value) (grid.Grid, error) {
	if v.IsNull() || !v.IsKnown() {
		return grid.Grid{}, fmt.Errorf("%w: grid value is null or unknown", ErrBadZone)
	}
	if !v.Type().Equals(GridType) {
		return grid.Grid{}, fmt.Errorf("%w: want grid, got %s", ErrBadZone, v.Type().FriendlyName())
	}

	return *v.EncapsulatedValue().(*grid.Grid), nil
}

// Functions returns the HCL functions available in architecture and plan
// files.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"grid":      gridFunc,
		"positions": positionsFunc,
		"shift":     shiftFunc,
		"scale":     scaleFunc,
		"repeat":    repeatFunc,
		"view":      viewFunc,
		"slice":     sliceFunc,
		"width":     widthFunc,
		"height":    heightFunc,

		"range":  stdlib.RangeFunc,
		"length": stdlib.LengthFunc,
		"concat": stdlib.ConcatFunc,
		"min":    stdlib.MinFunc,
		"max":    stdlib.MaxFunc,
	}
}

var (
	numbers = cty.List(cty.Number)

	gridParam = function.Parameter{Name: "grid", Type: GridType}
)

func num(name string) function.Parameter {
	return function.Parameter{Name: name, Type: cty.Number}
}

func list(name string) function.Parameter {
	return function.Parameter{Name: name, Type: numbers}
}

// gridImpl adapts a grid-returning Go function to a cty implementation.
func gridImpl(fn func(args []cty.Value) (grid.Grid, error)) function.ImplFunc {
	return func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		g, err := fn(args)
		if err != nil {
			return cty.NilVal, err
		}
		return GridVal(g), nil
	}
}

var gridFunc = function.New(&function.Spec{
	Params: []function.Parameter{list("x_spacing"), list("y_spacing"), num("x0"), num("y0")},
	Type:   function.StaticReturnType(GridType),
	Impl: gridImpl(func(args []cty.Value) (grid.Grid, error) {
		var xs, ys []float64
		var x0, y0 float64
		if err := decodeAll(args, &xs, &ys, &x0, &y0); err != nil {
			return grid.Grid{}, err
		}
		return grid.New(xs, ys, x0, y0)
	}),
})

var positionsFunc = function.New(&function.Spec{
	Params: []function.Parameter{list("x_positions"), list("y_positions")},
	Type:   function.StaticReturnType(GridType),
	Impl: gridImpl(func(args []cty.Value) (grid.Grid, error) {
		var xs, ys []float64
		if err := decodeAll(args, &xs, &ys); err != nil {
			return grid.Grid{}, err
		}
		return grid.FromPositions(xs, ys)
	}),
})

var shiftFunc = function.New(&function.Spec{
	Params: []function.Parameter{gridParam, num("dx"), num("dy")},
	Type:   function.StaticReturnType(GridType),
	Impl: gridImpl(func(args []cty.Value) (grid.Grid, error) {
		g, err := AsGrid(args[0])
		if err != nil {
			return grid.Grid{}, err
		}
		var dx, dy float64
		if err := decodeAll(args[1:], &dx, &dy); err != nil {
			return grid.Grid{}, err
		}
		return g.Shift(dx, dy), nil
	}),
})

var scaleFunc = function.New(&function.Spec{
	Params: []function.Parameter{gridParam, num("sx"), num("sy")},
	Type:   function.StaticReturnType(GridType),
	Impl: gridImpl(func(args []cty.Value) (grid.Grid, error) {
		g, err := AsGrid(args[0])
		if err != nil {
			return grid.Grid{}, err
		}
		var sx, sy float64
		if err := decodeAll(args[1:], &sx, &sy); err != nil {
			return grid.Grid{}, err
		}
		return g.Scale(sx, sy), nil
	}),
})

var repeatFunc = function.New(&function.Spec{
	Params: []function.Parameter{gridParam, num("nx"), num("ny"), num("gap_x"), num("gap_y")},
	Type:   function.StaticReturnType(GridType),
	Impl: gridImpl(func(args []cty.Value) (grid.Grid, error) {
		g, err := AsGrid(args[0])
		if err != nil {
			return grid.Grid{}, err
		}
		var nx, ny int
		var gx, gy float64
		if err := decodeAll(args[1:], &nx, &ny, &gx, &gy); err != nil {
			return grid.Grid{}, err
		}
		return g.Repeat(nx, ny, gx, gy)
	}),
})

var viewFunc = function.New(&function.Spec{
	Params: []function.Parameter{gridParam, list("x_indices"), list("y_indices")},
	Type:   function.StaticReturnType(GridType),
	Impl: gridImpl(func(args []cty.Value) (grid.Grid, error) {
		g, err := AsGrid(args[0])
		if err != nil {
			return grid.Grid{}, err
		}
		var xi, yi []int
		if err := decodeAll(args[1:], &xi, &yi); err != nil {
			return grid.Grid{}, err
		}
		return g.View(xi, yi)
	}),
})

// slice(g, [start, stop, step], [start, stop, step]); step defaults to 1 and
// an empty list selects the whole axis.
var sliceFunc = function.New(&function.Spec{
	Params: []function.Parameter{gridParam, list("x_range"), list("y_range")},
	Type:   function.StaticReturnType(GridType),
	Impl: gridImpl(func(args []cty.Value) (grid.Grid, error) {
		g, err := AsGrid(args[0])
		if err != nil {
			return grid.Grid{}, err
		}
		var xr, yr []int
		if err := decodeAll(args[1:], &xr, &yr); err != nil {
			return grid.Grid{}, err
		}
		x, err := toRange(xr)
		if err != nil {
			return grid.Grid{}, err
		}
		y, err := toRange(yr)
		if err != nil {
			return grid.Grid{}, err
		}
		return g.Slice(x, y)
	}),
})

func toRange(v []int) (grid.Range, error) {
	switch len(v) {
	case 0:
		return grid.All(), nil
	case 2:
		return grid.Span(v[0], v[1], 1), nil
	case 3:
		return grid.Span(v[0], v[1], v[2]), nil
	}

	return grid.Range{}, fmt.Errorf("range needs 0, 2 or 3 numbers, got %d", len(v))
}

var widthFunc = function.New(&function.Spec{
	Params: []function.Parameter{gridParam},
	Type:   function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		g, err := AsGrid(args[0])
		if err != nil {
			return cty.NilVal, err
		}
		return cty.NumberIntVal(int64(g.Width())), nil
	},
})

var heightFunc = function.New(&function.Spec{
	Params: []function.Parameter{gridParam},
	Type:   function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		g, err := AsGrid(args[0])
		if err != nil {
			return cty.NilVal, err
		}
		return cty.NumberIntVal(int64(g.Height())), nil
	},
})

// decodeAll converts args[i] into the Go value dst[i] points to.
func decodeAll(args []cty.Value, dst ...any) error {
	for i, d := range dst {
		if err := gocty.FromCtyValue(args[i], d); err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
	}

	return nil
}
