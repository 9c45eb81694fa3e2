package plan

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/katalvlaran/tweezer/arch"
	"github.com/katalvlaran/tweezer/internal/ctxlog"
	"github.com/katalvlaran/tweezer/ir"
	"github.com/katalvlaran/tweezer/trace"
)

// Load reads the plan file at path against spec.
func Load(ctx context.Context, path string, spec *arch.Spec) (*Plan, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}

	return Parse(ctx, src, path, spec)
}

// Parse compiles plan source against spec; filename is used in diagnostics.
// A nil spec means an empty architecture.
func Parse(ctx context.Context, src []byte, filename string, spec *arch.Spec) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)
	if spec == nil {
		spec = arch.NewSpec()
	}

	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse plan file %s: %w", filename, diags)
	}
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode plan file %s: %w", filename, diags)
	}

	evalCtx := spec.EvalContext()
	p := &Plan{Tasks: make(map[string]*trace.Script, len(root.Tasks))}
	for _, tb := range root.Tasks {
		if _, dup := p.Tasks[tb.Name]; dup {
			return nil, fmt.Errorf("%s: %w: task %q", filename, ErrDuplicate, tb.Name)
		}
		s, err := buildTask(tb, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		p.Tasks[tb.Name] = s
		logger.Debug("Loaded task.", "task", tb.Name, "params", len(tb.Params), "steps", len(tb.Steps))
	}

	c := &compiler{
		b:       ir.NewBuilder(),
		ctx:     evalCtx,
		tasks:   p.Tasks,
		blocks:  make(map[string]*pathBlock, len(root.Paths)),
		taskVal: make(map[string]ir.Value),
		pathVal: make(map[string]ir.Value),
	}
	for _, pb := range root.Paths {
		if _, dup := c.blocks[pb.Name]; dup {
			return nil, fmt.Errorf("%s: %w: path %q", filename, ErrDuplicate, pb.Name)
		}
		c.blocks[pb.Name] = pb
		p.Paths = append(p.Paths, pb.Name)
	}
	for i, play := range root.Plays {
		c.b.At(fmt.Sprintf("%s: play %d", filename, i))
		if err := c.play(play); err != nil {
			return nil, fmt.Errorf("%s: play %d: %w", filename, i, err)
		}
	}
	for _, name := range p.Paths {
		c.b.At(fmt.Sprintf("%s: path %s", filename, name))
		if _, err := c.path(name); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	}
	p.Values = c.pathVal
	p.Program = c.b.Program()

	logger.Debug("Plan loaded.",
		"file", filename,
		"tasks", len(p.Tasks),
		"paths", len(p.Paths),
		"statements", p.Program.Len(),
	)

	return p, nil
}

// compiler lowers paths and plays to IR, emitting every path once.
type compiler struct {
	b       *ir.Builder
	ctx     *hcl.EvalContext
	tasks   map[string]*trace.Script
	blocks  map[string]*pathBlock
	taskVal map[string]ir.Value
	pathVal map[string]ir.Value
}

func (c *compiler) play(pb *playBlock) error {
	paths := make([]ir.Value, len(pb.Paths))
	for i, name := range pb.Paths {
		v, err := c.path(name)
		if err != nil {
			return err
		}
		paths[i] = v
	}

	switch pb.Mode {
	case ModeSequential:
		for _, v := range paths {
			c.b.Play(v)
		}
	case ModeParallel:
		c.b.Play(c.b.Parallel(paths...))
	case ModeAuto:
		c.b.Play(c.b.Auto(paths...))
	default:
		return fmt.Errorf("%w: %q", ErrBadMode, pb.Mode)
	}

	return nil
}

func (c *compiler) path(name string) (ir.Value, error) {
	if v, ok := c.pathVal[name]; ok {
		return v, nil
	}
	pb, ok := c.blocks[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPath, name)
	}
	task, ok := c.tasks[pb.Task]
	if !ok {
		return 0, fmt.Errorf("path %q: %w: %q", name, ErrUnknownTask, pb.Task)
	}

	taskV, ok := c.taskVal[pb.Task]
	if !ok {
		taskV = c.b.Const(task)
		c.taskVal[pb.Task] = taskV
	}

	var fn ir.Value
	xNull, yNull := isNull(pb.XTones), isNull(pb.YTones)
	switch {
	case xNull && yNull:
		fn = c.b.TweezerTask(taskV)
	case xNull != yNull:
		return 0, fmt.Errorf("path %q: %w: x_tones and y_tones go together", name, ErrBadPath)
	default:
		xs, err := c.tones(pb.XTones)
		if err != nil {
			return 0, fmt.Errorf("path %q: x_tones: %w", name, err)
		}
		ys, err := c.tones(pb.YTones)
		if err != nil {
			return 0, fmt.Errorf("path %q: y_tones: %w", name, err)
		}
		fn = c.b.DeviceFunction(taskV, c.b.Const(xs), c.b.Const(ys))
	}
	if pb.Reverse {
		fn = c.b.Reverse(fn)
	}

	args, err := c.args(pb.Args)
	if err != nil {
		return 0, fmt.Errorf("path %q: args: %w", name, err)
	}
	inputs := make([]ir.Value, len(args))
	for i, a := range args {
		inputs[i] = c.b.Const(a)
	}
	v := c.b.Gen(fn, inputs...)
	c.pathVal[name] = v

	return v, nil
}

func (c *compiler) tones(expr hcl.Expression) ([]int, error) {
	v, diags := expr.Value(c.ctx)
	if diags.HasErrors() {
		return nil, diags
	}

	return ints(v)
}

func (c *compiler) args(expr hcl.Expression) ([]any, error) {
	if isNull(expr) {
		return nil, nil
	}
	v, diags := expr.Value(c.ctx)
	if diags.HasErrors() {
		return nil, diags
	}
	if !v.Type().IsTupleType() && !v.Type().IsListType() {
		return nil, fmt.Errorf("%w: args must be a list", ErrBadPath)
	}

	var out []any
	for _, e := range v.AsValueSlice() {
		a, err := fromCty(e)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, nil
}
