package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kmap/internal/ir"
)

func TestReorderChildrenRoundTrips(t *testing.T) {
	nw := newTestNetwork(t)
	r := nw.Root()
	a := mustChild(t, nw, r, "a")
	b := mustChild(t, nw, r, "b")
	src := mustChild(t, nw, a, "src")
	x := mustAlias(t, nw, src, r)

	want := []ir.NodeID{x, b, a}
	require.NoError(t, nw.ReorderChildren(r, want))

	got, err := nw.FetchChildrenOrdered(r)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	pos, err := nw.FetchOrderingPosition(x)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)
}

func TestReorderChildrenRejectsNonPermutation(t *testing.T) {
	nw := newTestNetwork(t)
	r := nw.Root()
	a := mustChild(t, nw, r, "a")
	b := mustChild(t, nw, r, "b")

	assert.ErrorIs(t, nw.ReorderChildren(r, []ir.NodeID{a}), ir.ErrInvalidNode)
	assert.ErrorIs(t, nw.ReorderChildren(r, []ir.NodeID{a, a}), ir.ErrInvalidNode)
	assert.ErrorIs(t, nw.ReorderChildren(r, []ir.NodeID{a, r}), ir.ErrInvalidNode)
	require.NoError(t, nw.ReorderChildren(r, []ir.NodeID{b, a}))
}

func TestSetOrderingPosition(t *testing.T) {
	nw := newTestNetwork(t)
	r := nw.Root()
	a := mustChild(t, nw, r, "a")
	b := mustChild(t, nw, r, "b")
	c := mustChild(t, nw, r, "c")

	require.NoError(t, nw.SetOrderingPosition(c, 0))
	got, err := nw.FetchChildrenOrdered(r)
	require.NoError(t, err)
	assert.Equal(t, []ir.NodeID{c, a, b}, got)

	require.NoError(t, nw.SetOrderingPosition(c, 2))
	got, err = nw.FetchChildrenOrdered(r)
	require.NoError(t, err)
	assert.Equal(t, []ir.NodeID{a, b, c}, got)

	assert.ErrorIs(t, nw.SetOrderingPosition(a, 3), ir.ErrInvalidNode)
	_, err = nw.FetchOrderingPosition(r)
	assert.ErrorIs(t, err, ir.ErrInvalidNode)
}

func TestAliasParentSharesSourceOrder(t *testing.T) {
	nw := newTestNetwork(t)
	r := nw.Root()
	a := mustChild(t, nw, r, "a")
	c1 := mustChild(t, nw, a, "c1")
	c2 := mustChild(t, nw, a, "c2")
	d := mustChild(t, nw, r, "d")
	x := mustAlias(t, nw, a, d)

	require.NoError(t, nw.ReorderChildren(a, []ir.NodeID{c2, c1}))

	got, err := nw.FetchChildrenOrdered(x)
	require.NoError(t, err)
	assert.Equal(t, []ir.NodeID{ir.AliasID(c2, x), ir.AliasID(c1, x)}, got)
}

func TestSnapshotRestore(t *testing.T) {
	nw := newTestNetwork(t)
	r := nw.Root()
	a := mustChild(t, nw, r, "a")
	b := mustChild(t, nw, r, "b")
	c := mustChild(t, nw, a, "c")
	require.NoError(t, nw.UpdateBody(c, "hello"))
	attr, err := nw.CreateAttr(a)
	require.NoError(t, err)
	mustChild(t, nw, attr, "tag")
	x := mustAlias(t, nw, a, b)
	require.NoError(t, nw.ReorderChildren(r, []ir.NodeID{b, a}))

	snap := nw.Snapshot()
	restored, err := Restore(snap)
	require.NoError(t, err)

	assert.Equal(t, snap, restored.Snapshot())
	assert.True(t, restored.IsAlias(x))
	assert.True(t, restored.IsAlias(ir.AliasID(c, x)))

	body, err := restored.FetchBody(c)
	require.NoError(t, err)
	assert.Equal(t, "hello", body)

	ordered, err := restored.FetchChildrenOrdered(r)
	require.NoError(t, err)
	assert.Equal(t, []ir.NodeID{b, a}, ordered)
}

func TestRestoreRejectsEmptySnapshot(t *testing.T) {
	_, err := Restore(Snapshot{})
	assert.ErrorIs(t, err, ir.ErrCorruptStructure)
}
