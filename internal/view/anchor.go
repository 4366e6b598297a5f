package view

import (
	"cmp"
	"strings"

	"github.com/roach88/kmap/internal/ir"
)

type anchorKind int

const (
	anchorNode anchorKind = iota
	anchorRoot
	anchorAbsRoot
)

// Anchor is the starting point of a Tether.
type Anchor struct {
	kind anchorKind
	ids  []ir.NodeID
}

// Node anchors at fixed nodes.
func Node(ids ...ir.NodeID) Anchor {
	return Anchor{kind: anchorNode, ids: sortedIDs(ids)}
}

// Root anchors at fixed nodes that act as the root of the lineage being
// queried. It evaluates like Node.
func Root(ids ...ir.NodeID) Anchor {
	return Anchor{kind: anchorRoot, ids: sortedIDs(ids)}
}

// AbsRoot anchors at the network's root.
func AbsRoot() Anchor {
	return Anchor{kind: anchorAbsRoot}
}

// IDs returns the fixed ids of a Node or Root anchor.
func (a Anchor) IDs() []ir.NodeID {
	return sortedIDs(a.ids)
}

// Fetch returns the anchor's nodes that exist.
func (a Anchor) Fetch(ctx FetchContext) FetchSet {
	if a.kind == anchorAbsRoot {
		return NewFetchSet(Item{ID: ctx.Net.Root()})
	}
	var out FetchSet
	for _, id := range a.ids {
		if ctx.Net.Exists(id) {
			out.Add(Item{ID: id})
		}
	}
	return out
}

// Compare orders anchors by kind, then by ids.
func (a Anchor) Compare(b Anchor) int {
	if c := cmp.Compare(a.kind, b.kind); c != 0 {
		return c
	}
	return ir.CompareSorted(a.ids, b.ids)
}

// String implements fmt.Stringer.
func (a Anchor) String() string {
	if a.kind == anchorAbsRoot {
		return "abs_root"
	}
	name := "node"
	if a.kind == anchorRoot {
		name = "root"
	}
	parts := make([]string, len(a.ids))
	for i, id := range a.ids {
		parts[i] = id.String()
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}
