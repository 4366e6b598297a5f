// Package testutil builds deterministic networks for tests.
package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/kmap/internal/ir"
	"github.com/roach88/kmap/internal/network"
)

// NewNetwork returns an empty network minting sequential ids, so the root
// is always 00000000-0000-4000-8000-000000000001.
func NewNetwork(t testing.TB, opts ...network.Option) *network.Network {
	t.Helper()
	opts = append([]network.Option{network.WithGenerator(ir.NewSequentialGenerator())}, opts...)
	return network.New(opts...)
}

// Nodes maps dotted heading paths to node ids. The root is "".
type Nodes map[string]ir.NodeID

// Build creates a real node for every dotted path, missing parents first,
// in argument order.
//
//	n := testutil.Build(t, nw, "a", "a.b", "c")
//	n["a.b"] // child b of a
func Build(t testing.TB, nw *network.Network, paths ...string) Nodes {
	t.Helper()
	nodes := Nodes{"": nw.Root()}
	for _, p := range paths {
		parent := nw.Root()
		for i, h := range strings.Split(p, ".") {
			key := strings.Join(strings.Split(p, ".")[:i+1], ".")
			if id, ok := nodes[key]; ok {
				parent = id
				continue
			}
			id, err := nw.CreateChild(parent, h)
			require.NoError(t, err, "create %s", key)
			nodes[key] = id
			parent = id
		}
	}
	return nodes
}

// Alias aliases src under dst and returns the alias id.
func Alias(t testing.TB, nw *network.Network, src, dst ir.NodeID) ir.NodeID {
	t.Helper()
	id, err := nw.CreateAlias(src, dst)
	require.NoError(t, err)
	return id
}
