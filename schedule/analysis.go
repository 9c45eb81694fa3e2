package schedule

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/katalvlaran/tweezer/action"
	"github.com/katalvlaran/tweezer/ir"
	"github.com/katalvlaran/tweezer/trace"
)

// Diagnostic records why a statement's value widened to top.
type Diagnostic struct {
	Index int
	Stmt  *ir.Stmt
	Err   error
}

func (d Diagnostic) Error() string {
	if d.Stmt.Pos != "" {
		return fmt.Sprintf("%s: %s: %v", d.Stmt.Pos, d.Stmt.Op, d.Err)
	}

	return fmt.Sprintf("statement %d (%s): %v", d.Index, d.Stmt.Op, d.Err)
}

func (d Diagnostic) Unwrap() error { return d.Err }

// Result holds the lattice value of every program value.
type Result struct {
	Values      map[ir.Value]Lattice
	Diagnostics []Diagnostic
}

// Get returns the value of v, bottom when unknown.
func (r *Result) Get(v ir.Value) Lattice {
	if l, ok := r.Values[v]; ok {
		return l
	}

	return Bottom()
}

// Err joins all diagnostics, nil when there are none.
func (r *Result) Err() error {
	errs := make([]error, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		errs[i] = d
	}

	return errors.Join(errs...)
}

// Analyzer assigns a Lattice to every value of a program.
type Analyzer struct {
	opts Options
}

// NewAnalyzer returns an Analyzer configured by opts.
func NewAnalyzer(opts ...Option) *Analyzer {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.Scheduler == nil {
		o.Scheduler = GreedyScheduler{MaxXTones: o.MaxXTones, MaxYTones: o.MaxYTones}
	}

	return &Analyzer{opts: o}
}

// Run analyzes p in one forward pass; programs are straight-line so no
// fixpoint iteration is needed. The returned error reports malformed
// programs only; scheduling failures are Diagnostics.
func (a *Analyzer) Run(p *ir.Program) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	res := &Result{Values: make(map[ir.Value]Lattice, p.Len())}
	for i, s := range p.Stmts() {
		if s.Result == 0 {
			continue
		}
		l, err := a.eval(p, res, s)
		if err != nil {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{Index: i, Stmt: s, Err: err})
			l = Top()
		}
		a.opts.Logger.Debug("analyzed statement",
			slog.Int("index", i),
			slog.String("stmt", s.String()),
			slog.String("value", l.String()),
		)
		res.Values[s.Result] = l
	}

	return res, nil
}

// eval computes the value of one statement. A nil error with a top result
// means an operand was already top and the cause is recorded upstream.
func (a *Analyzer) eval(p *ir.Program, res *Result, s *ir.Stmt) (Lattice, error) {
	switch s.Op {
	case ir.OpConst, ir.OpOpaque:
		return Top(), nil

	case ir.OpTweezerTask:
		task, err := constTask(p, s.Args[0])
		if err != nil {
			return nil, err
		}
		return TweezerTask{Task: task}, nil

	case ir.OpDeviceFunction:
		return a.bind(p, s)

	case ir.OpReverse:
		switch inner := res.Get(s.Args[0]).(type) {
		case Reverse:
			return inner.Inner, nil
		case TweezerTask, DeviceFunction:
			return Reverse{Inner: inner}, nil
		case NoSchedule:
			return Top(), nil
		default:
			return nil, fmt.Errorf("%w: cannot reverse %v", ErrNotSchedulable, inner)
		}

	case ir.OpGen:
		return a.gen(p, res, s)

	case ir.OpParallel:
		members, err := operands(res, s.Args)
		if err != nil || members == nil {
			return Top(), err
		}
		if err := checkParallel(members); err != nil {
			return nil, err
		}
		return ParallelSchedule{Paths: members}, nil

	case ir.OpAuto:
		members, err := operands(res, s.Args)
		if err == nil && members == nil {
			err = fmt.Errorf("%w: a member is unscheduled", ErrNotSchedulable)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSchedulingConflict, err)
		}
		sched, err := a.opts.Scheduler.Schedule(members)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSchedulingConflict, err)
		}
		return sched, nil
	}

	return nil, fmt.Errorf("%w: unexpected %v", ErrNotSchedulable, s.Op)
}

func constTask(p *ir.Program, v ir.Value) (trace.Task, error) {
	c, ok := p.Const(v)
	if !ok {
		return nil, fmt.Errorf("%w: task %v", ErrNotConstant, v)
	}
	task, ok := c.(trace.Task)
	if !ok || task == nil {
		return nil, fmt.Errorf("%w: %v is %T, not a task", ErrNotSchedulable, v, c)
	}

	return task, nil
}

func constTones(p *ir.Program, v ir.Value) ([]int, error) {
	c, ok := p.Const(v)
	if !ok {
		return nil, fmt.Errorf("%w: %v is not constant", ErrUnboundTones, v)
	}
	tones, ok := c.([]int)
	if !ok {
		return nil, fmt.Errorf("%w: %v is %T, not []int", ErrUnboundTones, v, c)
	}

	return slices.Clone(tones), nil
}

func (a *Analyzer) bind(p *ir.Program, s *ir.Stmt) (Lattice, error) {
	task, err := constTask(p, s.Args[0])
	if err != nil {
		return nil, err
	}
	x, err := constTones(p, s.Args[1])
	if err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	y, err := constTones(p, s.Args[2])
	if err != nil {
		return nil, fmt.Errorf("y: %w", err)
	}
	if !inBudget(x, a.opts.MaxXTones) || !inBudget(y, a.opts.MaxYTones) {
		return nil, fmt.Errorf("%w: x=%v y=%v, budget %dx%d", ErrToneBudget, x, y, a.opts.MaxXTones, a.opts.MaxYTones)
	}

	return DeviceFunction{Task: task, XTones: x, YTones: y}, nil
}

func (a *Analyzer) gen(p *ir.Program, res *Result, s *ir.Stmt) (Lattice, error) {
	fn := res.Get(s.Args[0])
	reversed := false
	if r, ok := fn.(Reverse); ok {
		fn, reversed = r.Inner, true
	}

	var (
		task  trace.Task
		tones *ToneData
	)
	switch l := fn.(type) {
	case NoSchedule:
		return Top(), nil
	case TweezerTask:
		task = l.Task
	case DeviceFunction:
		task = l.Task
		tones = &ToneData{XTones: l.XTones, YTones: l.YTones}
	default:
		return nil, fmt.Errorf("%w: cannot generate from %v", ErrNotSchedulable, fn)
	}

	inputs := make([]any, len(s.Args)-1)
	for i, v := range s.Args[1:] {
		c, ok := p.Const(v)
		if !ok {
			return nil, fmt.Errorf("%w: input %d (%v)", ErrNotConstant, i, v)
		}
		inputs[i] = c
	}

	actions, err := trace.Run(task, inputs...)
	if err != nil {
		return nil, err
	}
	if reversed {
		if actions, err = action.Reverse(actions); err != nil {
			return nil, err
		}
	}
	if tones == nil {
		if _, _, _, err := action.TraceShape(actions); err != nil {
			return nil, err
		}
		return NeedsTones{Actions: actions}, nil
	}

	path, err := action.NewPath(tones.XTones, tones.YTones, actions)
	if err != nil {
		return nil, err
	}

	return ConcretePath{Path: path}, nil
}

// operands collects path-like argument values. Both results are nil when an
// argument is already top.
func operands(res *Result, args []ir.Value) ([]Lattice, error) {
	out := make([]Lattice, len(args))
	for i, v := range args {
		out[i] = res.Get(v)
		switch {
		case IsTop(out[i]):
			return nil, nil
		case !IsPathLike(out[i]):
			return nil, fmt.Errorf("%w: member %d is %v", ErrNotSchedulable, i, out[i])
		}
	}

	return out, nil
}

// checkParallel verifies that trace-bearing members can run in lockstep.
func checkParallel(members []Lattice) error {
	var (
		traces [][]action.Action
		bound  []action.Path
	)
	for _, m := range members {
		switch l := m.(type) {
		case ConcretePath:
			traces = append(traces, l.Path.Actions)
			bound = append(bound, l.Path)
		case NeedsTones:
			traces = append(traces, l.Actions)
		}
	}
	if _, err := Align(traces...); err != nil {
		return err
	}

	for i, p := range bound {
		for j, q := range bound[i+1:] {
			tp := ToneData{XTones: p.XTones, YTones: p.YTones}
			tq := ToneData{XTones: q.XTones, YTones: q.YTones}
			if !Coherent(p.Actions, q.Actions, tp, tq) {
				return fmt.Errorf("%w: paths %d and %d", ErrSharedTones, i, i+1+j)
			}
		}
	}

	return nil
}
