package schedule

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tweezer/action"
	"github.com/katalvlaran/tweezer/ir"
)

// Group is a set of paths executed in lockstep.
type Group struct {
	Paths []action.Path
}

// Schedule is the ordered list of groups a program plays.
type Schedule struct {
	Groups []Group
}

// Materialize collects the played values of p into a Schedule, in play order.
// A ParallelSchedule becomes one group; an AutoSchedule whose members are all
// concrete becomes one group per group id. Anything else played, including
// NeedsTones members that still wait for Rewrite, yields
// ErrScheduleIncomplete.
func Materialize(p *ir.Program, res *Result) (Schedule, error) {
	var (
		out  Schedule
		errs []error
	)
	for i, s := range p.Stmts() {
		if s.Op != ir.OpPlay {
			continue
		}
		groups, err := groupsOf(res.Get(s.Args[0]))
		if err != nil {
			errs = append(errs, Diagnostic{Index: i, Stmt: s, Err: err})
			continue
		}
		out.Groups = append(out.Groups, groups...)
	}

	return out, errors.Join(errs...)
}

func groupsOf(l Lattice) ([]Group, error) {
	switch v := l.(type) {
	case ConcretePath:
		return []Group{{Paths: []action.Path{v.Path}}}, nil
	case ParallelSchedule:
		paths, err := flatten(v)
		if err != nil {
			return nil, err
		}
		return []Group{{Paths: paths}}, nil
	case AutoSchedule:
		groups := make([]Group, len(v.Groups))
		for j, m := range v.Paths {
			cp, ok := m.(ConcretePath)
			if !ok {
				return nil, fmt.Errorf("%w: auto member %d is %v", ErrScheduleIncomplete, j, m)
			}
			g := v.GroupIDs[j]
			groups[g].Paths = append(groups[g].Paths, cp.Path)
		}
		return groups, nil
	}

	return nil, fmt.Errorf("%w: played value is %v", ErrScheduleIncomplete, l)
}

func flatten(l Lattice) ([]action.Path, error) {
	switch v := l.(type) {
	case ConcretePath:
		return []action.Path{v.Path}, nil
	case ParallelSchedule:
		var out []action.Path
		for _, m := range v.Paths {
			ps, err := flatten(m)
			if err != nil {
				return nil, err
			}
			out = append(out, ps...)
		}
		return out, nil
	}

	return nil, fmt.Errorf("%w: parallel member is %v", ErrScheduleIncomplete, l)
}

// Compile analyzes p, rewrites its auto groups, re-analyzes the result and
// materializes it. The rewritten program is returned alongside the schedule.
func Compile(p *ir.Program, opts ...Option) (Schedule, *ir.Program, error) {
	a := NewAnalyzer(opts...)
	res, err := a.Run(p)
	if err != nil {
		return Schedule{}, nil, err
	}
	if err := res.Err(); err != nil {
		return Schedule{}, nil, err
	}

	rewritten, err := AutoRewriter{Logger: a.opts.Logger}.Rewrite(p, res)
	if err != nil {
		return Schedule{}, nil, err
	}
	if res, err = a.Run(rewritten); err != nil {
		return Schedule{}, nil, err
	}
	if err := res.Err(); err != nil {
		return Schedule{}, nil, err
	}

	sched, err := Materialize(rewritten, res)
	if err != nil {
		return Schedule{}, nil, err
	}

	return sched, rewritten, nil
}
