package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kmap/internal/ir"
	"github.com/roach88/kmap/internal/network"
	"github.com/roach88/kmap/internal/testutil"
)

func buildNetwork(t *testing.T) (*network.Network, testutil.Nodes) {
	t.Helper()
	nw := testutil.NewNetwork(t)
	n := testutil.Build(t, nw, "a.a1", "a.a2", "b", "c")
	testutil.Alias(t, nw, n["a"], n["b"])
	testutil.Alias(t, nw, n["c"], n["a.a1"])
	require.NoError(t, nw.ReorderChildren(n["a"], []ir.NodeID{n["a.a2"], n["a.a1"]}))
	require.NoError(t, nw.UpdateBody(n["c"], "body of c"))
	_, err := nw.CreateAttr(n["b"])
	require.NoError(t, err)
	return nw, n
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	nw, n := buildNetwork(t)

	require.NoError(t, s.Save(ctx, nw))
	loaded, err := s.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, nw.Snapshot(), loaded.Snapshot())
	assert.Equal(t, nw.Root(), loaded.Root())
	assert.True(t, loaded.IsAlias(ir.AliasID(n["a.a1"], ir.AliasID(n["a"], n["b"]))), "internal aliases are derived")

	body, err := loaded.FetchBody(n["c"])
	require.NoError(t, err)
	assert.Equal(t, "body of c", body)

	ordered, err := loaded.FetchChildrenOrdered(n["a"])
	require.NoError(t, err)
	assert.Equal(t, []ir.NodeID{n["a.a2"], n["a.a1"]}, ordered)
}

func TestSaveReplacesPreviousNetwork(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	nw, n := buildNetwork(t)
	require.NoError(t, s.Save(ctx, nw))

	require.NoError(t, nw.EraseNode(n["a"]))
	require.NoError(t, s.Save(ctx, nw))

	snap, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, nw.Snapshot(), snap)

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM nodes`).Scan(&count))
	assert.Equal(t, nw.Len(), count)
}

func TestLoadEmpty(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	ok, err := s.HasNetwork(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kmap.db")
	nw, _ := buildNetwork(t)

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, nw))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	ok, err := s.HasNetwork(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	loaded, err := s.Load(ctx, network.WithGenerator(ir.NewSequentialGenerator()))
	require.NoError(t, err)
	assert.Equal(t, nw.Snapshot(), loaded.Snapshot())
}

func TestLoadIsDeterministic(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	nw, _ := buildNetwork(t)
	require.NoError(t, s.Save(ctx, nw))

	first, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	second, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
