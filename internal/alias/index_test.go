package alias

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kmap/internal/ir"
)

func ids(n int) []ir.NodeID {
	gen := ir.NewSequentialGenerator()
	out := make([]ir.NodeID, n)
	for i := range out {
		out[i] = gen.NewID()
	}
	return out
}

func TestPushIsIdempotent(t *testing.T) {
	n := ids(2)
	src, dst := n[0], n[1]
	x := New()

	a1, err := x.Push(src, src, dst)
	require.NoError(t, err)
	a2, err := x.Push(src, src, dst)
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.Equal(t, 1, x.Len())
	assert.Equal(t, []ir.NodeID{a1}, x.FetchAliasChildren(dst).Sorted())
}

func TestPushSetsUpLookups(t *testing.T) {
	n := ids(2)
	src, dst := n[0], n[1]
	x := New()

	a, err := x.Push(src, src, dst)
	require.NoError(t, err)

	assert.True(t, x.IsAlias(a))
	assert.False(t, x.IsAlias(src))
	assert.NotEqual(t, src, a)
	assert.Equal(t, src, x.Resolve(a))

	parent, err := x.FetchParent(a)
	require.NoError(t, err)
	assert.Equal(t, dst, parent)

	assert.True(t, x.FetchAliasesDsts(src).Has(dst))
	assert.True(t, x.FetchAliasesDsts(a).Has(dst), "lookup by alias resolves first")
	assert.True(t, x.FetchAliasesTo(src).Has(a))
	assert.True(t, x.FetchAliasesFrom(src).Has(a))

	rec, ok := x.Record(a)
	require.True(t, ok)
	assert.Equal(t, Record{ID: a, Source: src, Resolved: src, Destination: dst}, rec)
}

func TestResolveIsFixpoint(t *testing.T) {
	n := ids(3)
	x := New()
	a, err := x.Push(n[0], n[0], n[1])
	require.NoError(t, err)

	for _, id := range []ir.NodeID{n[0], n[1], n[2], a} {
		assert.Equal(t, x.Resolve(id), x.Resolve(x.Resolve(id)))
	}
}

func TestPushRejectsAliasAsResolved(t *testing.T) {
	n := ids(3)
	x := New()
	a, err := x.Push(n[0], n[0], n[1])
	require.NoError(t, err)

	_, err = x.Push(a, a, n[2])
	require.Error(t, err)
	assert.ErrorIs(t, err, ir.ErrCorruptStructure)
}

func TestPushRejectsSelfAlias(t *testing.T) {
	n := ids(1)
	_, err := New().Push(n[0], n[0], n[0])
	assert.ErrorIs(t, err, ir.ErrInvalidLineage)
}

func TestEraseRemovesFromEveryIndex(t *testing.T) {
	n := ids(3)
	src, d1, d2 := n[0], n[1], n[2]
	x := New()

	a1, err := x.Push(src, src, d1)
	require.NoError(t, err)
	a2, err := x.Push(src, src, d2)
	require.NoError(t, err)

	require.NoError(t, x.Erase(a1))

	assert.False(t, x.IsAlias(a1))
	assert.Equal(t, a1, x.Resolve(a1))
	assert.Equal(t, []ir.NodeID{d2}, x.FetchAliasesDsts(src).Sorted())
	assert.Equal(t, 0, x.FetchAliasChildren(d1).Len())
	assert.Equal(t, []ir.NodeID{a2}, x.FetchAliasesTo(src).Sorted())
	assert.Equal(t, 1, x.Len())

	_, err = x.FetchParent(a1)
	assert.ErrorIs(t, err, ir.ErrInvalidNode)
}

func TestEraseUnknown(t *testing.T) {
	err := New().Erase(ids(1)[0])
	assert.True(t, ir.IsInvalidNode(err))
}

func TestRecordsSorted(t *testing.T) {
	n := ids(4)
	x := New()
	_, err := x.Push(n[0], n[0], n[3])
	require.NoError(t, err)
	_, err = x.Push(n[1], n[1], n[2])
	require.NoError(t, err)
	_, err = x.Push(n[0], n[0], n[2])
	require.NoError(t, err)

	recs := x.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, n[2], recs[0].Destination)
	assert.Equal(t, n[0], recs[0].Resolved)
	assert.Equal(t, n[2], recs[1].Destination)
	assert.Equal(t, n[1], recs[1].Resolved)
	assert.Equal(t, n[3], recs[2].Destination)
}
