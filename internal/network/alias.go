package network

import (
	"slices"

	"github.com/roach88/kmap/internal/ir"
)

// CreateAlias exposes src under dst and returns the alias id.
//
// Both ends are resolved first. Repeating the call returns the same id.
// Fails with InvalidNode when either end is missing, src is the root or an
// attribute node; InvalidLineage when src equals dst or dst is reachable
// from src (through children and alias expansion); InvalidHeading when dst
// already has a child with src's heading.
func (nw *Network) CreateAlias(src, dst ir.NodeID) (ir.NodeID, error) {
	rsrc := nw.Resolve(src)
	rdst := nw.Resolve(dst)

	s, err := nw.real(rsrc)
	if err != nil {
		return ir.Nil, err
	}
	if _, err := nw.real(rdst); err != nil {
		return ir.Nil, err
	}
	if rsrc == nw.root {
		return ir.Nil, ir.NewInvalidNode(rsrc, "root cannot be aliased")
	}
	if s.rel == RelAttr {
		return ir.Nil, ir.NewInvalidNode(rsrc, "attribute node cannot be aliased")
	}
	if rsrc == rdst {
		return ir.Nil, ir.NewInvalidLineage(rsrc, "alias source equals destination")
	}

	id := ir.AliasID(rsrc, rdst)
	if nw.aliases.IsAlias(id) {
		return id, nil
	}
	if nw.reaches(rsrc, rdst) {
		return ir.Nil, ir.NewInvalidLineage(rsrc, "destination %s is lineal to source", rdst)
	}
	if nw.IsChild(rdst, s.heading) {
		return ir.Nil, ir.NewInvalidHeading(s.heading, "duplicate heading under %s", rdst)
	}

	if _, err := nw.exposeUnder(rsrc, rdst); err != nil {
		return ir.Nil, err
	}
	nw.orders[rdst] = append(nw.orders[rdst], rsrc)
	if err := nw.exposeToAliasesOf(rdst, id); err != nil {
		return ir.Nil, err
	}

	nw.logger.Debug("alias created", "alias", id, "source", rsrc, "destination", rdst)
	nw.notify(nw.affected(id))
	return id, nil
}

// EraseAlias removes a top-level alias along with the internal aliases it
// exposes. Internal aliases are removed by erasing their top alias, or the
// real node they mirror.
func (nw *Network) EraseAlias(id ir.NodeID) error {
	rec, ok := nw.aliases.Record(id)
	if !ok {
		return ir.NewInvalidNode(id, "not an alias")
	}
	if !nw.isReal(rec.Destination) {
		return ir.NewInvalidNode(id, "internal alias cannot be erased directly")
	}

	touched := nw.affected(id)
	for _, a := range nw.aliases.FetchAliasesTo(rec.Destination).Sorted() {
		if mirror := ir.AliasID(rec.Resolved, a); nw.aliases.IsAlias(mirror) {
			if err := nw.eraseAliasTree(mirror); err != nil {
				return err
			}
		}
	}
	if err := nw.eraseAliasTree(id); err != nil {
		return err
	}

	nw.logger.Debug("alias erased", "alias", id, "resolved", rec.Resolved, "destination", rec.Destination)
	nw.notify(touched)
	return nil
}

// FetchAliasesDsts returns every destination aliasing src.
func (nw *Network) FetchAliasesDsts(src ir.NodeID) ir.NodeSet {
	return nw.aliases.FetchAliasesDsts(src)
}

// FetchAliasChildren returns the aliases directly under parent.
func (nw *Network) FetchAliasChildren(parent ir.NodeID) ir.NodeSet {
	return nw.aliases.FetchAliasChildren(parent)
}

// exposeUnder pushes an alias of child under dst and mirrors child's
// children beneath it.
func (nw *Network) exposeUnder(child, dst ir.NodeID) (ir.NodeID, error) {
	resolved := nw.Resolve(child)
	id, err := nw.aliases.Push(child, resolved, dst)
	if err != nil {
		return ir.Nil, err
	}
	for _, c := range nw.childrenOf(resolved).Sorted() {
		if _, err := nw.exposeUnder(c, id); err != nil {
			return ir.Nil, err
		}
	}
	return id, nil
}

// exposeToAliasesOf mirrors a new child of parent under every alias of
// parent, at every depth.
func (nw *Network) exposeToAliasesOf(parent, child ir.NodeID) error {
	for _, a := range nw.aliases.FetchAliasesTo(parent).Sorted() {
		if _, err := nw.exposeUnder(child, a); err != nil {
			return err
		}
	}
	return nil
}

// eraseAliasTree removes an alias and everything mirrored beneath it.
func (nw *Network) eraseAliasTree(id ir.NodeID) error {
	for _, c := range nw.aliases.FetchAliasChildren(id).Sorted() {
		if err := nw.eraseAliasTree(c); err != nil {
			return err
		}
	}
	rec, ok := nw.aliases.Record(id)
	if !ok {
		return ir.NewInvalidNode(id, "not an alias")
	}
	if err := nw.aliases.Erase(id); err != nil {
		return err
	}
	if nw.isReal(rec.Destination) {
		nw.orders[rec.Destination] = without(nw.orders[rec.Destination], rec.Resolved)
	}
	return nil
}

// reaches reports whether target is from, or lies beneath from once
// aliases are expanded to the subtrees they expose. Attribute subtrees
// count as beneath their owner.
func (nw *Network) reaches(from, target ir.NodeID) bool {
	seen := ir.NewNodeSet()
	stack := []ir.NodeID{nw.Resolve(from)}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == target {
			return true
		}
		if seen.Has(cur) {
			continue
		}
		seen.Add(cur)
		for c := range nw.childrenOf(cur) {
			stack = append(stack, nw.Resolve(c))
		}
		if n, ok := nw.nodes[cur]; ok && !n.attr.IsNil() {
			stack = append(stack, n.attr)
		}
	}
	return false
}

func without(ids []ir.NodeID, id ir.NodeID) []ir.NodeID {
	i := slices.Index(ids, id)
	if i < 0 {
		return ids
	}
	return slices.Delete(ids, i, i+1)
}
