package view

import (
	"github.com/roach88/kmap/internal/ir"
)

// Order re-sequences a stage into canonical left-to-right order: depth
// first from the root, siblings in their persisted order. It is a stage
// over the whole result set rather than a per-node relation.
func Order() Link { return order{} }

type order struct{}

func (order) kind() linkKind          { return kindOrder }
func (order) predicates() []Predicate { return nil }
func (order) links() []Link           { return nil }
func (order) bare() Link              { return Order() }
func (order) String() string          { return kindOrder.String() }

// Fetch orders the single node; Order is meant to be used as a stage.
func (order) Fetch(_ FetchContext, node ir.NodeID) (FetchSet, error) {
	return NewFetchSet(Item{ID: node, From: node}), nil
}

func (l order) Create(CreateContext, ir.NodeID) (ir.NodeSet, error) {
	return nil, notCreatable(l)
}

func (order) fetchSet(ctx FetchContext, in FetchSet) (FetchSet, error) {
	ordered, err := OrderNodes(ctx.Net, in.IDs())
	if err != nil {
		return FetchSet{}, err
	}
	var out FetchSet
	for _, id := range ordered {
		it, _ := in.Item(id)
		out.Add(it)
	}
	return out, nil
}

// OrderNodes returns ids in canonical order.
//
// Each id's lineage from the root is grouped by its first element; groups
// are visited in the root's persisted child order (attribute node last),
// single-element lineages are emitted, and the rest recurse against the
// group's node with their first element stripped.
func OrderNodes(net Reader, ids []ir.NodeID) ([]ir.NodeID, error) {
	root := net.Root()
	seen := ir.NewNodeSet()
	var out []ir.NodeID
	var lineages [][]ir.NodeID
	for _, id := range ids {
		if seen.Has(id) {
			continue
		}
		seen.Add(id)
		if id == root {
			out = append(out, root)
			continue
		}
		lineage, err := net.FetchLineage(id)
		if err != nil {
			return nil, err
		}
		lineages = append(lineages, lineage[1:])
	}
	if err := orderLineages(net, root, lineages, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func orderLineages(net Reader, root ir.NodeID, lineages [][]ir.NodeID, out *[]ir.NodeID) error {
	switch len(lineages) {
	case 0:
		return nil
	case 1:
		*out = append(*out, lineages[0][len(lineages[0])-1])
		return nil
	}

	siblings, err := net.FetchChildrenOrdered(root)
	if err != nil {
		return err
	}
	if a, ok := net.FetchAttr(root); ok && !net.IsAlias(root) {
		siblings = append(siblings, a)
	}

	remaining := lineages
	for _, sib := range siblings {
		if len(remaining) == 0 {
			break
		}
		var group, rest, sub [][]ir.NodeID
		for _, lin := range remaining {
			if lin[0] == sib {
				group = append(group, lin)
			} else {
				rest = append(rest, lin)
			}
		}
		remaining = rest
		for _, lin := range group {
			if len(lin) == 1 {
				*out = append(*out, lin[0])
			} else {
				sub = append(sub, lin[1:])
			}
		}
		if err := orderLineages(net, sib, sub, out); err != nil {
			return err
		}
	}
	if len(remaining) > 0 {
		return ir.NewCorrupt(root, "%d lineages do not pass through its children", len(remaining))
	}
	return nil
}
