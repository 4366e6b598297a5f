package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kmap/internal/testutil"
	"github.com/roach88/kmap/internal/view"
)

func TestDump_Empty(t *testing.T) {
	nw := testutil.NewNetwork(t)
	out, err := Dump(nw)
	require.NoError(t, err)
	assert.Equal(t, "/\n", out)
}

func TestDump_AliasesAndTags(t *testing.T) {
	nw := testutil.NewNetwork(t)
	n := testutil.Build(t, nw, "a.x", "b")
	testutil.Alias(t, nw, n["a.x"], n["b"])

	_, err := view.Create(view.CreateContext{Net: nw}, view.From(view.Node(n["a.x"]), view.Tag(view.Heading("hot"))))
	require.NoError(t, err)

	out, err := Dump(nw)
	require.NoError(t, err)
	assert.Equal(t, "/\n"+
		"  a\n"+
		"    x #hot\n"+
		"  b\n"+
		"    x -> /a.x\n"+
		"  meta\n"+
		"    tag\n"+
		"      hot\n", out)
}

func TestDumpFrom_Subtree(t *testing.T) {
	nw := testutil.NewNetwork(t)
	n := testutil.Build(t, nw, "a.x.y", "a.z")

	out, err := DumpFrom(nw, n["a"])
	require.NoError(t, err)
	assert.Equal(t, "/a\n  x\n    y\n  z\n", out)
}
