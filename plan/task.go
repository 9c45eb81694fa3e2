package plan

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/katalvlaran/tweezer/action"
	"github.com/katalvlaran/tweezer/arch"
	"github.com/katalvlaran/tweezer/grid"
	"github.com/katalvlaran/tweezer/trace"
)

var ops = map[string]action.Kind{
	"set_location": action.KindSetLocation,
	"turn_on":      action.KindTurnOn,
	"turn_off":     action.KindTurnOff,
	"move":         action.KindMove,
}

// buildTask compiles a task block into a Script whose grid operands are
// evaluated against base at trace time.
func buildTask(b *taskBlock, base *hcl.EvalContext) (*trace.Script, error) {
	steps := make([]trace.Step, 0, len(b.Steps))
	for i, sb := range b.Steps {
		op, ok := ops[sb.Op]
		if !ok {
			return nil, fmt.Errorf("task %q step %d: %w: %q", b.Name, i, ErrUnknownOp, sb.Op)
		}
		st := trace.Step{Op: op, X: action.All(), Y: action.All()}
		switch op {
		case action.KindSetLocation, action.KindMove:
			if isNull(sb.Grid) {
				return nil, fmt.Errorf("task %q step %d: %w: %s needs grid", b.Name, i, ErrBadStep, sb.Op)
			}
			st.Grid = operand(sb.Grid, base, b.Params)
		case action.KindTurnOn, action.KindTurnOff:
			var err error
			if st.X, err = selector(sb.X, base); err != nil {
				return nil, fmt.Errorf("task %q step %d: x: %w", b.Name, i, err)
			}
			if st.Y, err = selector(sb.Y, base); err != nil {
				return nil, fmt.Errorf("task %q step %d: y: %w", b.Name, i, err)
			}
		}
		steps = append(steps, st)
	}

	return trace.NewScript(b.Name, b.Params, steps...), nil
}

// isNull reports an absent optional attribute.
func isNull(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	v, diags := expr.Value(nil)

	return !diags.HasErrors() && v.IsNull()
}

// operand evaluates expr with the call arguments bound to param.<name>.
func operand(expr hcl.Expression, base *hcl.EvalContext, params []string) trace.GridOperand {
	return func(args []any) (grid.Grid, error) {
		bound, err := paramObject(params, args)
		if err != nil {
			return grid.Grid{}, err
		}
		ctx := base.NewChild()
		ctx.Variables = map[string]cty.Value{"param": bound}
		v, diags := expr.Value(ctx)
		if diags.HasErrors() {
			return grid.Grid{}, diags
		}
		return arch.AsGrid(v)
	}
}

func paramObject(params []string, args []any) (cty.Value, error) {
	if len(params) == 0 {
		return cty.EmptyObjectVal, nil
	}
	vals := make(map[string]cty.Value, len(params))
	for i, name := range params {
		if i >= len(args) {
			return cty.NilVal, fmt.Errorf("%w: missing argument %q", trace.ErrBadArgument, name)
		}
		v, err := toCty(args[i])
		if err != nil {
			return cty.NilVal, fmt.Errorf("argument %q: %w", name, err)
		}
		vals[name] = v
	}

	return cty.ObjectVal(vals), nil
}

func toCty(a any) (cty.Value, error) {
	switch v := a.(type) {
	case grid.Grid:
		return arch.GridVal(v), nil
	case float64:
		return cty.NumberFloatVal(v), nil
	case int:
		return cty.NumberIntVal(int64(v)), nil
	}

	return cty.NilVal, fmt.Errorf("%w: unsupported %T", trace.ErrBadArgument, a)
}

func fromCty(v cty.Value) (any, error) {
	switch {
	case v.Type().Equals(arch.GridType):
		return arch.AsGrid(v)
	case v.Type() == cty.Number:
		var f float64
		err := gocty.FromCtyValue(v, &f)
		return f, err
	}

	return nil, fmt.Errorf("%w: unsupported %s", ErrBadPath, v.Type().FriendlyName())
}

// selector reads "all", a list of indices or {start, stop, step}.
func selector(expr hcl.Expression, ctx *hcl.EvalContext) (action.Selector, error) {
	if expr == nil {
		return action.All(), nil
	}
	v, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return action.Selector{}, diags
	}
	ty := v.Type()
	switch {
	case v.IsNull():
		return action.All(), nil
	case ty == cty.String:
		if v.AsString() != "all" {
			return action.Selector{}, fmt.Errorf("%w: selector %q", ErrBadStep, v.AsString())
		}
		return action.All(), nil
	case ty.IsObjectType():
		var r struct {
			Start int  `cty:"start"`
			Stop  *int `cty:"stop"`
			Step  *int `cty:"step"`
		}
		obj, err := convert.Convert(v, cty.ObjectWithOptionalAttrs(map[string]cty.Type{
			"start": cty.Number, "stop": cty.Number, "step": cty.Number,
		}, []string{"stop", "step"}))
		if err != nil {
			return action.Selector{}, fmt.Errorf("%w: %w", ErrBadStep, err)
		}
		if err := gocty.FromCtyValue(obj, &r); err != nil {
			return action.Selector{}, fmt.Errorf("%w: %w", ErrBadStep, err)
		}
		stop, step := action.End, 1
		if r.Stop != nil {
			stop = *r.Stop
		}
		if r.Step != nil {
			step = *r.Step
		}
		return action.Span(r.Start, stop, step), nil
	}

	idx, err := ints(v)
	if err != nil {
		return action.Selector{}, err
	}

	return action.Indices(idx...), nil
}

// ints converts a number tuple or list to []int.
func ints(v cty.Value) ([]int, error) {
	l, err := convert.Convert(v, cty.List(cty.Number))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadStep, err)
	}
	var out []int
	if err := gocty.FromCtyValue(l, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadStep, err)
	}

	return out, nil
}
