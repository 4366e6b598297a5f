package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kmap/internal/ir"
)

func newTestNetwork(t *testing.T) *Network {
	t.Helper()
	return New(WithGenerator(ir.NewSequentialGenerator()))
}

func mustChild(t *testing.T, nw *Network, parent ir.NodeID, heading string) ir.NodeID {
	t.Helper()
	id, err := nw.CreateChild(parent, heading)
	require.NoError(t, err)
	return id
}

func mustAlias(t *testing.T, nw *Network, src, dst ir.NodeID) ir.NodeID {
	t.Helper()
	id, err := nw.CreateAlias(src, dst)
	require.NoError(t, err)
	return id
}

func TestNewHasRoot(t *testing.T) {
	nw := newTestNetwork(t)

	assert.True(t, nw.Exists(nw.Root()))
	h, err := nw.FetchHeading(nw.Root())
	require.NoError(t, err)
	assert.Equal(t, RootHeading, h)

	_, err = nw.FetchParent(nw.Root())
	assert.ErrorIs(t, err, ir.ErrInvalidNode)
}

func TestCreateChild(t *testing.T) {
	nw := newTestNetwork(t)
	root := nw.Root()

	c := mustChild(t, nw, root, "hello_world")

	parent, err := nw.FetchParent(c)
	require.NoError(t, err)
	assert.Equal(t, root, parent)

	title, err := nw.FetchTitle(c)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", title)

	assert.True(t, nw.IsChild(root, "hello_world"))
	kids, err := nw.FetchChildren(root)
	require.NoError(t, err)
	assert.Equal(t, []ir.NodeID{c}, kids.Sorted())

	rel, err := nw.FetchRelation(c)
	require.NoError(t, err)
	assert.Equal(t, RelChild, rel)
}

func TestCreateChildErrors(t *testing.T) {
	nw := newTestNetwork(t)
	root := nw.Root()
	mustChild(t, nw, root, "a")

	_, err := nw.CreateChild(root, "a")
	assert.ErrorIs(t, err, ir.ErrInvalidHeading, "duplicate heading")

	_, err = nw.CreateChild(root, "Bad Heading")
	assert.ErrorIs(t, err, ir.ErrInvalidHeading)

	_, err = nw.CreateChild(ir.MustParseNodeID("00000000-0000-4000-8000-0000000000ff"), "x")
	assert.ErrorIs(t, err, ir.ErrInvalidNode)
}

func TestCreateChildTitled(t *testing.T) {
	nw := newTestNetwork(t)
	c, err := nw.CreateChildTitled(nw.Root(), "a", "Custom")
	require.NoError(t, err)

	title, err := nw.FetchTitle(c)
	require.NoError(t, err)
	assert.Equal(t, "Custom", title)
}

func TestAttrIsNotAChild(t *testing.T) {
	nw := newTestNetwork(t)
	c := mustChild(t, nw, nw.Root(), "a")

	attr, err := nw.CreateAttr(c)
	require.NoError(t, err)
	again, err := nw.CreateAttr(c)
	require.NoError(t, err)
	assert.Equal(t, attr, again)

	got, ok := nw.FetchAttr(c)
	require.True(t, ok)
	assert.Equal(t, attr, got)

	kids, err := nw.FetchChildren(c)
	require.NoError(t, err)
	assert.Equal(t, 0, kids.Len())

	rel, err := nw.FetchRelation(attr)
	require.NoError(t, err)
	assert.Equal(t, RelAttr, rel)
}

func TestContentUpdates(t *testing.T) {
	nw := newTestNetwork(t)
	root := nw.Root()
	a := mustChild(t, nw, root, "a")
	mustChild(t, nw, root, "b")

	require.NoError(t, nw.UpdateBody(a, "body text"))
	body, err := nw.FetchBody(a)
	require.NoError(t, err)
	assert.Equal(t, "body text", body)

	require.NoError(t, nw.UpdateTitle(a, "Alpha"))
	title, err := nw.FetchTitle(a)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", title)

	require.NoError(t, nw.UpdateHeading(a, "c"))
	assert.True(t, nw.IsChild(root, "c"))
	assert.False(t, nw.IsChild(root, "a"))

	err = nw.UpdateHeading(a, "b")
	assert.ErrorIs(t, err, ir.ErrInvalidHeading)
}

func TestUpdateHeadingChecksAliasDestinations(t *testing.T) {
	nw := newTestNetwork(t)
	root := nw.Root()
	a := mustChild(t, nw, root, "a")
	dst := mustChild(t, nw, root, "dst")
	mustChild(t, nw, dst, "taken")
	mustAlias(t, nw, a, dst)

	err := nw.UpdateHeading(a, "taken")
	assert.ErrorIs(t, err, ir.ErrInvalidHeading)
}

func TestEraseNodeCascades(t *testing.T) {
	nw := newTestNetwork(t)
	root := nw.Root()
	a := mustChild(t, nw, root, "a")
	b := mustChild(t, nw, a, "b")
	c := mustChild(t, nw, b, "c")
	attr, err := nw.CreateAttr(b)
	require.NoError(t, err)

	require.NoError(t, nw.EraseNode(a))

	for _, id := range []ir.NodeID{a, b, c, attr} {
		assert.False(t, nw.Exists(id))
	}
	ordered, err := nw.FetchChildrenOrdered(root)
	require.NoError(t, err)
	assert.Empty(t, ordered)
	assert.Equal(t, 1, nw.Len())
}

func TestEraseRootFails(t *testing.T) {
	nw := newTestNetwork(t)
	assert.ErrorIs(t, nw.EraseNode(nw.Root()), ir.ErrInvalidNode)
}

func TestLineage(t *testing.T) {
	nw := newTestNetwork(t)
	root := nw.Root()
	a := mustChild(t, nw, root, "a")
	b := mustChild(t, nw, a, "b")
	d := mustChild(t, nw, root, "d")
	x := mustAlias(t, nw, a, d)
	xb := ir.AliasID(b, x)

	lineage, err := nw.FetchLineage(b)
	require.NoError(t, err)
	assert.Equal(t, []ir.NodeID{root, a, b}, lineage)

	lineage, err = nw.FetchLineage(xb)
	require.NoError(t, err)
	assert.Equal(t, []ir.NodeID{root, d, x, xb}, lineage)

	assert.True(t, nw.IsAncestor(root, b))
	assert.True(t, nw.IsAncestor(a, b))
	assert.False(t, nw.IsAncestor(b, b))
	assert.False(t, nw.IsAncestor(b, x), "an alias of a never has its source as ancestor")
	assert.True(t, nw.IsLineal(a, a))
	assert.True(t, nw.IsLineal(a, b))
	assert.False(t, nw.IsLineal(b, a))
}

func TestMoveNode(t *testing.T) {
	nw := newTestNetwork(t)
	root := nw.Root()
	a := mustChild(t, nw, root, "a")
	b := mustChild(t, nw, root, "b")
	c := mustChild(t, nw, a, "c")

	require.NoError(t, nw.MoveNode(c, b))
	parent, err := nw.FetchParent(c)
	require.NoError(t, err)
	assert.Equal(t, b, parent)
	assert.False(t, nw.IsChild(a, "c"))
	assert.True(t, nw.IsChild(b, "c"))

	err = nw.MoveNode(b, c)
	assert.ErrorIs(t, err, ir.ErrInvalidLineage, "cannot move under own descendant")

	err = nw.MoveNode(nw.Root(), a)
	assert.ErrorIs(t, err, ir.ErrInvalidNode)
}

func TestMoveNodeRejectsAttrSubtree(t *testing.T) {
	nw := newTestNetwork(t)
	p := mustChild(t, nw, nw.Root(), "p")
	c := mustChild(t, nw, p, "c")
	pAttr, err := nw.CreateAttr(p)
	require.NoError(t, err)
	cAttr, err := nw.CreateAttr(c)
	require.NoError(t, err)

	assert.ErrorIs(t, nw.MoveNode(p, pAttr), ir.ErrInvalidLineage)
	assert.ErrorIs(t, nw.MoveNode(p, cAttr), ir.ErrInvalidLineage)

	lineage, err := nw.FetchLineage(c)
	require.NoError(t, err)
	assert.Equal(t, []ir.NodeID{nw.Root(), p, c}, lineage)
}

func TestMoveNodeUpdatesAliasMirrors(t *testing.T) {
	nw := newTestNetwork(t)
	root := nw.Root()
	a := mustChild(t, nw, root, "a")
	b := mustChild(t, nw, root, "b")
	c := mustChild(t, nw, a, "c")
	d := mustChild(t, nw, root, "d")
	xa := mustAlias(t, nw, a, d)
	xb := mustAlias(t, nw, b, d)

	require.True(t, nw.IsAlias(ir.AliasID(c, xa)))
	require.NoError(t, nw.MoveNode(c, b))

	assert.False(t, nw.IsAlias(ir.AliasID(c, xa)))
	assert.True(t, nw.IsAlias(ir.AliasID(c, xb)))
}

func TestSubscribeReportsLineage(t *testing.T) {
	nw := newTestNetwork(t)
	root := nw.Root()
	a := mustChild(t, nw, root, "a")

	var got []ir.NodeSet
	cancel := nw.Subscribe(func(touched ir.NodeSet) {
		got = append(got, touched)
	})

	b := mustChild(t, nw, a, "b")
	require.Len(t, got, 1)
	assert.True(t, got[0].Has(b))
	assert.True(t, got[0].Has(a))
	assert.True(t, got[0].Has(root))

	cancel()
	mustChild(t, nw, a, "c")
	assert.Len(t, got, 1)
}
