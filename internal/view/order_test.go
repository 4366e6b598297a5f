package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kmap/internal/ir"
	"github.com/roach88/kmap/internal/view"
)

func (f fixture) vector(t *testing.T, tt *view.Tether) []ir.NodeID {
	t.Helper()
	v, err := view.ToVector(f.fetch(), tt)
	require.NoError(t, err)
	return v
}

func TestOrderIsDepthFirst(t *testing.T) {
	f := newFixture(t)
	xa1 := ir.AliasID(f.n["a.a1"], f.x)
	xa2 := ir.AliasID(f.n["a.a2"], f.x)
	everything := view.From(view.AbsRoot(), view.Desc(), view.Order())

	assert.Equal(t, ids(f.n["a"], f.n["a.a1"], f.n["a.a2"], f.n["b"], f.x, xa1, xa2, f.n["c"]), f.vector(t, everything))

	// Aliases share the order of their source.
	require.NoError(t, f.nw.ReorderChildren(f.n["a"], ids(f.n["a.a2"], f.n["a.a1"])))
	assert.Equal(t, ids(f.n["a"], f.n["a.a2"], f.n["a.a1"], f.n["b"], f.x, xa2, xa1, f.n["c"]), f.vector(t, everything))

	require.NoError(t, f.nw.ReorderChildren(f.n[""], ids(f.n["c"], f.n["b"], f.n["a"])))
	assert.Equal(t, ids(f.n["c"], f.n["b"], f.x, xa2, xa1, f.n["a"], f.n["a.a2"], f.n["a.a1"]), f.vector(t, everything))
}

func TestOrderRoundTripsThroughReorder(t *testing.T) {
	f := newFixture(t)
	kids := view.From(view.AbsRoot(), view.Child(), view.Order())

	before := f.vector(t, kids)
	require.NoError(t, f.nw.ReorderChildren(f.n[""], ids(f.n["b"], f.n["c"], f.n["a"])))
	require.NoError(t, f.nw.ReorderChildren(f.n[""], before))
	assert.Equal(t, before, f.vector(t, kids))
}

func TestOrderNodes(t *testing.T) {
	f := newFixture(t)
	attr, err := f.nw.CreateAttr(f.n["a"])
	require.NoError(t, err)

	got, err := view.OrderNodes(f.nw, ids(attr, f.n["c"], f.n["a.a1"], f.n[""], f.n["a"], f.n["a"]))
	require.NoError(t, err)
	assert.Equal(t, ids(f.n[""], f.n["a"], f.n["a.a1"], attr, f.n["c"]), got)
}

func TestOrderNodesSingle(t *testing.T) {
	f := newFixture(t)

	got, err := view.OrderNodes(f.nw, ids(f.n["a.a2"]))
	require.NoError(t, err)
	assert.Equal(t, ids(f.n["a.a2"]), got)

	got, err = view.OrderNodes(f.nw, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOrderNodesRejectsMissing(t *testing.T) {
	f := newFixture(t)

	_, err := view.OrderNodes(f.nw, ids(f.n["a"], ir.AliasID(f.n["c"], f.n["a"])))
	assert.True(t, ir.IsInvalidNode(err))
}
