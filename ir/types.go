package ir

import (
	"errors"
	"fmt"
)

// ErrUndefined indicates a statement argument with no defining statement.
var ErrUndefined = errors.New("ir: undefined value")

// Value identifies the result of a statement. The zero Value is "no value".
type Value int

func (v Value) String() string {
	if v == 0 {
		return "%_"
	}

	return fmt.Sprintf("%%%d", int(v))
}

// Op is a statement opcode.
type Op int

const (
	OpConst Op = iota
	OpOpaque
	OpTweezerTask
	OpDeviceFunction
	OpReverse
	OpGen
	OpParallel
	OpAuto
	OpPlay
)

var opNames = [...]string{
	OpConst:          "const",
	OpOpaque:         "opaque",
	OpTweezerTask:    "tweezer_task",
	OpDeviceFunction: "device_fn",
	OpReverse:        "reverse",
	OpGen:            "gen",
	OpParallel:       "parallel",
	OpAuto:           "auto",
	OpPlay:           "play",
}

func (o Op) String() string {
	if o >= 0 && int(o) < len(opNames) {
		return opNames[o]
	}

	return fmt.Sprintf("Op(%d)", int(o))
}

// Stmt is one statement. Result is zero for OpPlay.
type Stmt struct {
	Op     Op
	Args   []Value
	Result Value

	// Const is the payload of OpConst.
	Const any
	// Name labels OpOpaque values.
	Name string
	// Pos is an optional source location used in diagnostics.
	Pos string
}

// Program is an immutable straight-line statement list.
type Program struct {
	stmts []*Stmt
	defs  map[Value]*Stmt
	next  Value
}
