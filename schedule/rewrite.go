package schedule

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/tweezer/ir"
)

// AutoRewriter replaces every Play of an Auto value by the groups the
// scheduler chose.
type AutoRewriter struct {
	// Logger receives one debug record per materialized group; nil discards.
	Logger *slog.Logger
}

// Rewrite returns a copy of p in which every Play(Auto) is expanded, in
// ascending group order, into Play(Parallel(members)) for groups with more
// than one member and Play(member) otherwise. Members that were generated
// without tones are re-bound to their allocated tones and regenerated; a
// reversal of the task is preserved. An Auto that res marks as unscheduled
// yields ErrScheduleIncomplete and its Play is kept as is.
func (rw AutoRewriter) Rewrite(p *ir.Program, res *Result) (*ir.Program, error) {
	log := rw.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	b := ir.Rebuild(p)
	var errs []error
	for i, s := range p.Stmts() {
		def, ok := playedAuto(p, s)
		if !ok {
			b.Append(s)
			continue
		}
		sched, ok := res.Get(def.Result).(AutoSchedule)
		if !ok {
			errs = append(errs, Diagnostic{Index: i, Stmt: s,
				Err: fmt.Errorf("%w: auto %v is %v", ErrScheduleIncomplete, def.Result, res.Get(def.Result))})
			b.Append(s)
			continue
		}

		b.At(s.Pos)
		for g := range sched.Groups {
			var members []ir.Value
			for j, id := range sched.GroupIDs {
				if id == g {
					members = append(members, rebind(p, b, def.Args[j], sched.Tones[j]))
				}
			}
			log.Debug("materialized auto group",
				slog.Int("group", g),
				slog.Int("members", len(members)),
				slog.Any("x_tones", sched.Groups[g].XTones),
				slog.Any("y_tones", sched.Groups[g].YTones),
			)
			if len(members) == 1 {
				b.Play(members[0])
			} else {
				b.Play(b.Parallel(members...))
			}
		}
	}

	return b.Program(), errors.Join(errs...)
}

func playedAuto(p *ir.Program, s *ir.Stmt) (*ir.Stmt, bool) {
	if s.Op != ir.OpPlay {
		return nil, false
	}
	def, ok := p.Def(s.Args[0])
	if !ok || def.Op != ir.OpAuto {
		return nil, false
	}

	return def, true
}

// rebind regenerates v on tones when v was generated from a tone-less task.
// Other values are returned unchanged.
func rebind(p *ir.Program, b *ir.Builder, v ir.Value, tones ToneData) ir.Value {
	gen, ok := p.Def(v)
	if !ok || gen.Op != ir.OpGen {
		return v
	}

	fn, reversals := gen.Args[0], 0
	def, ok := p.Def(fn)
	for ok && def.Op == ir.OpReverse {
		reversals++
		def, ok = p.Def(def.Args[0])
	}
	if !ok || def.Op != ir.OpTweezerTask {
		return v
	}

	bound := b.DeviceFunction(def.Args[0], b.Const(tones.XTones), b.Const(tones.YTones))
	if reversals%2 == 1 {
		bound = b.Reverse(bound)
	}

	return b.Gen(bound, gen.Args[1:]...)
}
