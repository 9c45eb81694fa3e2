package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tweezer/ir"
)

type fakeTask string

func (f fakeTask) Name() string { return string(f) }

// TestBuilder_ConstHints checks defining statements and constant lookup.
func TestBuilder_ConstHints(t *testing.T) {
	b := ir.NewBuilder()
	task := b.Const(fakeTask("hop"))
	xs := b.Const([]int{0, 1})
	ys := b.Opaque("ys")
	fn := b.DeviceFunction(task, xs, ys)
	b.Play(b.Gen(fn))
	p := b.Program()

	require.NoError(t, p.Validate())
	assert.Equal(t, 6, p.Len())

	v, ok := p.Const(xs)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1}, v)

	_, ok = p.Const(ys)
	assert.False(t, ok, "opaque values carry no constant hint")

	def, ok := p.Def(fn)
	require.True(t, ok)
	assert.Equal(t, ir.OpDeviceFunction, def.Op)

	assert.Contains(t, p.String(), "= const @hop")
	assert.Contains(t, p.String(), "play %5")
}

// TestRebuild_KeepsIDs copies statements and numbers fresh values after them.
func TestRebuild_KeepsIDs(t *testing.T) {
	b := ir.NewBuilder()
	a := b.Const(1)
	c := b.Const(2)
	p := b.Program()

	rb := ir.Rebuild(p)
	for _, s := range p.Stmts() {
		rb.Append(s)
	}
	fresh := rb.Const(3)
	q := rb.Program()

	assert.Greater(t, int(fresh), int(c))
	v, ok := q.Const(a)
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

// TestValidate_Undefined rejects use before definition.
func TestValidate_Undefined(t *testing.T) {
	b := ir.NewBuilder()
	b.Play(ir.Value(42))
	assert.ErrorIs(t, b.Program().Validate(), ir.ErrUndefined)
}
