package network

import (
	"slices"

	"github.com/roach88/kmap/internal/ir"
)

// FetchLineage returns the path from the root to id, both included. Aliases
// are walked through their destinations, so the lineage is the one a reader
// sees when navigating to id.
func (nw *Network) FetchLineage(id ir.NodeID) ([]ir.NodeID, error) {
	if !nw.Exists(id) {
		return nil, ir.NewInvalidNode(id, "node does not exist")
	}
	lineage := []ir.NodeID{id}
	for cur := id; cur != nw.root; {
		parent, err := nw.FetchParent(cur)
		if err != nil {
			return nil, err
		}
		if len(lineage) > len(nw.nodes)+nw.aliases.Len() {
			return nil, ir.NewCorrupt(id, "lineage does not reach the root")
		}
		lineage = append(lineage, parent)
		cur = parent
	}
	slices.Reverse(lineage)
	return lineage, nil
}

// IsAncestor reports whether ancestor lies on the real parent chain of
// Resolve(id). A node is never its own ancestor.
func (nw *Network) IsAncestor(ancestor, id ir.NodeID) bool {
	n, ok := nw.nodes[nw.Resolve(id)]
	for ok && !n.parent.IsNil() {
		if n.parent == ancestor {
			return true
		}
		n, ok = nw.nodes[n.parent]
	}
	return false
}

// IsLineal reports whether a and b are the same node or a is an ancestor
// of b.
func (nw *Network) IsLineal(a, b ir.NodeID) bool {
	return nw.Resolve(a) == nw.Resolve(b) || nw.IsAncestor(a, b)
}

// MoveNode reparents a real node under newParent, keeping its subtree and
// its aliases. Fails with InvalidLineage if newParent is reachable from node.
func (nw *Network) MoveNode(id, newParent ir.NodeID) error {
	if nw.aliases.IsAlias(id) {
		return ir.NewInvalidNode(id, "aliases cannot be moved")
	}
	n, ok := nw.nodes[id]
	if !ok {
		return ir.NewInvalidNode(id, "node does not exist")
	}
	if id == nw.root {
		return ir.NewInvalidNode(id, "root cannot be moved")
	}
	if n.rel == RelAttr {
		return ir.NewInvalidNode(id, "attribute nodes cannot be moved")
	}
	rparent := nw.Resolve(newParent)
	p, err := nw.real(rparent)
	if err != nil {
		return err
	}
	if rparent == n.parent {
		return nil
	}
	if nw.reaches(id, rparent) {
		return ir.NewInvalidLineage(id, "new parent %s is lineal to node", rparent)
	}
	if nw.IsChild(rparent, n.heading) {
		return ir.NewInvalidHeading(n.heading, "duplicate heading under %s", rparent)
	}

	touched := nw.affected(nw.subtree(id).Sorted()...)
	old := n.parent
	for _, a := range nw.aliases.FetchAliasesTo(old).Sorted() {
		if mirror := ir.AliasID(id, a); nw.aliases.IsAlias(mirror) {
			if err := nw.eraseAliasTree(mirror); err != nil {
				return err
			}
		}
	}
	nw.nodes[old].kids.Remove(id)
	nw.orders[old] = without(nw.orders[old], id)

	n.parent = rparent
	p.kids.Add(id)
	nw.orders[rparent] = append(nw.orders[rparent], id)
	if err := nw.exposeToAliasesOf(rparent, id); err != nil {
		return err
	}

	touched.Union(nw.affected(id))
	nw.logger.Debug("node moved", "node", id, "from", old, "to", rparent)
	nw.notify(touched)
	return nil
}
