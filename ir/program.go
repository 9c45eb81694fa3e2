package ir

import (
	"fmt"
	"slices"
	"strings"
)

// Stmts returns the statements in program order.
func (p *Program) Stmts() []*Stmt {
	return slices.Clone(p.stmts)
}

// Len returns the number of statements.
func (p *Program) Len() int { return len(p.stmts) }

// Def returns the statement defining v.
func (p *Program) Def(v Value) (*Stmt, bool) {
	s, ok := p.defs[v]
	return s, ok
}

// Const returns the compile-time constant held by v, if any.
func (p *Program) Const(v Value) (any, bool) {
	s, ok := p.defs[v]
	if !ok || s.Op != OpConst {
		return nil, false
	}

	return s.Const, true
}

// Validate checks that every argument is defined before use.
func (p *Program) Validate() error {
	seen := make(map[Value]struct{}, len(p.stmts))
	for i, s := range p.stmts {
		for _, a := range s.Args {
			if _, ok := seen[a]; !ok {
				return fmt.Errorf("%w: %v used by statement %d (%s)", ErrUndefined, a, i, s.Op)
			}
		}
		if s.Result != 0 {
			seen[s.Result] = struct{}{}
		}
	}

	return nil
}

// String prints the program one statement per line.
func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.stmts {
		sb.WriteString(s.String())
		sb.WriteByte('\n')
	}

	return sb.String()
}

func (s *Stmt) String() string {
	var sb strings.Builder
	if s.Result != 0 {
		fmt.Fprintf(&sb, "%v = ", s.Result)
	}
	sb.WriteString(s.Op.String())
	switch s.Op {
	case OpConst:
		fmt.Fprintf(&sb, " %s", constString(s.Const))
	case OpOpaque:
		fmt.Fprintf(&sb, " %s", s.Name)
	default:
		for i, a := range s.Args {
			if i == 0 {
				sb.WriteByte(' ')
			} else {
				sb.WriteString(", ")
			}
			sb.WriteString(a.String())
		}
	}

	return sb.String()
}

type named interface{ Name() string }

func constString(v any) string {
	if n, ok := v.(named); ok {
		return "@" + n.Name()
	}

	return fmt.Sprintf("%v", v)
}
