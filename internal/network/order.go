package network

import (
	"slices"

	"github.com/roach88/kmap/internal/ir"
)

// FetchChildrenOrdered returns the children of parent in their persisted
// order, real and alias interleaved.
func (nw *Network) FetchChildrenOrdered(parent ir.NodeID) ([]ir.NodeID, error) {
	if !nw.Exists(parent) {
		return nil, ir.NewInvalidNode(parent, "node does not exist")
	}
	order := nw.orders[nw.Resolve(parent)]
	out := make([]ir.NodeID, 0, len(order))
	for _, rid := range order {
		c, err := nw.childFor(parent, rid)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// childFor maps a resolved id in parent's order to the child id that
// represents it under parent.
func (nw *Network) childFor(parent, resolved ir.NodeID) (ir.NodeID, error) {
	if n, ok := nw.nodes[resolved]; ok && n.rel == RelChild && n.parent == parent {
		return resolved, nil
	}
	id := ir.AliasID(resolved, parent)
	if !nw.aliases.IsAlias(id) {
		return ir.Nil, ir.NewCorrupt(parent, "order entry %s has no child", resolved)
	}
	return id, nil
}

// FetchOrderingPosition returns the zero-based position of id among its
// parent's ordered children.
func (nw *Network) FetchOrderingPosition(id ir.NodeID) (int, error) {
	parent, err := nw.FetchParent(id)
	if err != nil {
		return 0, err
	}
	if rel, _ := nw.FetchRelation(id); rel == RelAttr {
		return 0, ir.NewInvalidNode(id, "attribute nodes are not ordered")
	}
	pos := slices.Index(nw.orders[nw.Resolve(parent)], nw.Resolve(id))
	if pos < 0 {
		return 0, ir.NewCorrupt(id, "child missing from parent order")
	}
	return pos, nil
}

// SetOrderingPosition moves id to position pos among its siblings.
func (nw *Network) SetOrderingPosition(id ir.NodeID, pos int) error {
	cur, err := nw.FetchOrderingPosition(id)
	if err != nil {
		return err
	}
	parent, _ := nw.FetchParent(id)
	rparent := nw.Resolve(parent)
	order := nw.orders[rparent]
	if pos < 0 || pos >= len(order) {
		return ir.NewInvalidNode(id, "position %d out of range [0,%d)", pos, len(order))
	}
	if pos == cur {
		return nil
	}

	rid := order[cur]
	order = slices.Delete(order, cur, cur+1)
	nw.orders[rparent] = slices.Insert(order, pos, rid)

	nw.logger.Debug("ordering position set", "node", id, "position", pos)
	nw.notify(nw.affected(rparent))
	return nil
}

// ReorderChildren replaces parent's order. ordered must hold every child of
// parent exactly once; ids may be given as the child ids or their resolved
// forms.
func (nw *Network) ReorderChildren(parent ir.NodeID, ordered []ir.NodeID) error {
	if !nw.Exists(parent) {
		return ir.NewInvalidNode(parent, "node does not exist")
	}
	rparent := nw.Resolve(parent)
	resolved := make([]ir.NodeID, len(ordered))
	for i, id := range ordered {
		resolved[i] = nw.Resolve(id)
	}
	if err := nw.setOrder(rparent, resolved); err != nil {
		return err
	}

	nw.logger.Debug("children reordered", "parent", rparent, "count", len(resolved))
	nw.notify(nw.affected(rparent))
	return nil
}

func (nw *Network) setOrder(parent ir.NodeID, resolved []ir.NodeID) error {
	current := nw.orders[parent]
	if len(resolved) != len(current) {
		return ir.NewInvalidNode(parent, "reorder lists %d ids, parent has %d children", len(resolved), len(current))
	}
	want := ir.NewNodeSet(current...)
	got := ir.NewNodeSet(resolved...)
	if got.Len() != len(resolved) {
		return ir.NewInvalidNode(parent, "reorder lists a child more than once")
	}
	if !want.Equal(got) {
		return ir.NewInvalidNode(parent, "reorder is not a permutation of the children")
	}
	nw.orders[parent] = slices.Clone(resolved)
	return nil
}
