package ir

import "slices"

// Builder appends statements to a new Program.
type Builder struct {
	prog *Program
	pos  string
}

// NewBuilder returns a Builder for an empty program.
func NewBuilder() *Builder {
	return &Builder{prog: &Program{defs: make(map[Value]*Stmt), next: 1}}
}

// Rebuild returns a Builder for an empty program whose fresh values are
// numbered after every value of p. Statements of p can be copied over with
// Append, keeping their ids.
func Rebuild(p *Program) *Builder {
	b := NewBuilder()
	b.prog.next = p.next

	return b
}

// At sets the source location recorded on subsequent statements.
func (b *Builder) At(pos string) *Builder {
	b.pos = pos
	return b
}

// Program returns the built program. The Builder must not be used afterwards.
func (b *Builder) Program() *Program {
	return b.prog
}

// Append copies s into the program, keeping its result id.
func (b *Builder) Append(s *Stmt) {
	c := *s
	c.Args = slices.Clone(s.Args)
	b.add(&c)
	if c.Result >= b.prog.next {
		b.prog.next = c.Result + 1
	}
}

func (b *Builder) add(s *Stmt) {
	b.prog.stmts = append(b.prog.stmts, s)
	if s.Result != 0 {
		b.prog.defs[s.Result] = s
	}
}

func (b *Builder) emit(op Op, args ...Value) *Stmt {
	s := &Stmt{Op: op, Args: args, Result: b.prog.next, Pos: b.pos}
	b.prog.next++
	b.add(s)

	return s
}

// Const emits a compile-time constant.
func (b *Builder) Const(v any) Value {
	s := b.emit(OpConst)
	s.Const = v

	return s.Result
}

// Opaque emits a value whose content is unknown at compile time.
func (b *Builder) Opaque(name string) Value {
	s := b.emit(OpOpaque)
	s.Name = name

	return s.Result
}

// TweezerTask emits an unbound task from a task-valued constant.
func (b *Builder) TweezerTask(task Value) Value {
	return b.emit(OpTweezerTask, task).Result
}

// DeviceFunction binds task to the x and y tone lists.
func (b *Builder) DeviceFunction(task, x, y Value) Value {
	return b.emit(OpDeviceFunction, task, x, y).Result
}

// Reverse emits the time reversal of a task or device function.
func (b *Builder) Reverse(fn Value) Value {
	return b.emit(OpReverse, fn).Result
}

// Gen emits the trace of fn on inputs.
func (b *Builder) Gen(fn Value, inputs ...Value) Value {
	return b.emit(OpGen, append([]Value{fn}, inputs...)...).Result
}

// Parallel emits an explicit parallel composition.
func (b *Builder) Parallel(paths ...Value) Value {
	return b.emit(OpParallel, slices.Clone(paths)...).Result
}

// Auto emits an auto-scheduled group.
func (b *Builder) Auto(paths ...Value) Value {
	return b.emit(OpAuto, slices.Clone(paths)...).Result
}

// Play emits the execution of a path or schedule.
func (b *Builder) Play(path Value) {
	b.add(&Stmt{Op: OpPlay, Args: []Value{path}, Pos: b.pos})
}
