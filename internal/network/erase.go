package network

import (
	"github.com/roach88/kmap/internal/ir"
)

// EraseNode removes id and everything that depends on it.
//
// Erasing a real node removes its children, its attribute subtree, every
// alias whose resolved source lies in the erased subtree and every alias
// beneath it. Erasing a top-level alias delegates to EraseAlias.
func (nw *Network) EraseNode(id ir.NodeID) error {
	if nw.aliases.IsAlias(id) {
		return nw.EraseAlias(id)
	}
	if !nw.isReal(id) {
		return ir.NewInvalidNode(id, "node does not exist")
	}
	if id == nw.root {
		return ir.NewInvalidNode(id, "root cannot be erased")
	}

	touched := nw.affected(nw.subtree(id).Sorted()...)
	if err := nw.eraseReal(id); err != nil {
		return err
	}

	nw.logger.Debug("node erased", "node", id, "affected", touched.Len())
	nw.notify(touched)
	return nil
}

func (nw *Network) eraseReal(id ir.NodeID) error {
	n := nw.nodes[id]

	for _, c := range nw.childrenOf(id).Sorted() {
		var err error
		if nw.aliases.IsAlias(c) {
			err = nw.eraseAliasTree(c)
		} else {
			err = nw.eraseReal(c)
		}
		if err != nil {
			return err
		}
	}
	if !n.attr.IsNil() {
		if err := nw.eraseReal(n.attr); err != nil {
			return err
		}
	}
	for _, a := range nw.aliases.FetchAliasesTo(id).Sorted() {
		if !nw.aliases.IsAlias(a) {
			continue
		}
		if err := nw.eraseAliasTree(a); err != nil {
			return err
		}
	}

	if p, ok := nw.nodes[n.parent]; ok {
		switch n.rel {
		case RelChild:
			p.kids.Remove(id)
			nw.orders[n.parent] = without(nw.orders[n.parent], id)
		case RelAttr:
			p.attr = ir.Nil
		}
	}
	delete(nw.nodes, id)
	delete(nw.orders, id)
	return nil
}

// subtree returns id and every node beneath it: real children, attribute
// nodes and aliases.
func (nw *Network) subtree(id ir.NodeID) ir.NodeSet {
	out := ir.NewNodeSet()
	stack := []ir.NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if out.Has(cur) {
			continue
		}
		out.Add(cur)
		for c := range nw.childrenOf(cur) {
			stack = append(stack, c)
		}
		if n, ok := nw.nodes[cur]; ok && !n.attr.IsNil() {
			stack = append(stack, n.attr)
		}
	}
	return out
}
