package network

import (
	"github.com/roach88/kmap/internal/ir"
)

// CreateChild creates a real child of parent with the given heading and a
// title derived from it. An alias parent creates under its resolved node.
func (nw *Network) CreateChild(parent ir.NodeID, heading string) (ir.NodeID, error) {
	return nw.createChild(nw.gen.NewID(), parent, heading, "")
}

// CreateChildTitled is CreateChild with an explicit title.
func (nw *Network) CreateChildTitled(parent ir.NodeID, heading, title string) (ir.NodeID, error) {
	return nw.createChild(nw.gen.NewID(), parent, heading, title)
}

func (nw *Network) createChild(id, parent ir.NodeID, heading, title string) (ir.NodeID, error) {
	rparent := nw.Resolve(parent)
	p, err := nw.real(rparent)
	if err != nil {
		return ir.Nil, err
	}
	h, err := ir.ValidateHeading(heading)
	if err != nil {
		return ir.Nil, err
	}
	if nw.IsChild(rparent, h) {
		return ir.Nil, ir.NewInvalidHeading(h, "duplicate heading under %s", rparent)
	}
	if nw.Exists(id) {
		return ir.Nil, ir.NewInvalidNode(id, "node already exists")
	}
	if title == "" {
		title = ir.FormatTitle(h)
	}

	nw.nodes[id] = &node{
		heading: h,
		title:   title,
		parent:  rparent,
		rel:     RelChild,
		kids:    ir.NewNodeSet(),
	}
	p.kids.Add(id)
	nw.orders[rparent] = append(nw.orders[rparent], id)

	if err := nw.exposeToAliasesOf(rparent, id); err != nil {
		return ir.Nil, err
	}

	nw.logger.Debug("child created", "node", id, "parent", rparent, "heading", h)
	nw.notify(nw.affected(id))
	return id, nil
}

// CreateAttr returns the attribute node of id's resolved node, creating it
// if missing.
func (nw *Network) CreateAttr(id ir.NodeID) (ir.NodeID, error) {
	rid := nw.Resolve(id)
	n, err := nw.real(rid)
	if err != nil {
		return ir.Nil, err
	}
	if !n.attr.IsNil() {
		return n.attr, nil
	}
	return nw.createAttr(nw.gen.NewID(), rid)
}

func (nw *Network) createAttr(id, owner ir.NodeID) (ir.NodeID, error) {
	n, err := nw.real(owner)
	if err != nil {
		return ir.Nil, err
	}
	if !n.attr.IsNil() {
		return ir.Nil, ir.NewInvalidLineage(owner, "node already has an attribute node")
	}
	if nw.Exists(id) {
		return ir.Nil, ir.NewInvalidNode(id, "node already exists")
	}

	nw.nodes[id] = &node{
		heading: ir.AttrHeading,
		title:   ir.AttrHeading,
		parent:  owner,
		rel:     RelAttr,
		kids:    ir.NewNodeSet(),
	}
	n.attr = id

	nw.logger.Debug("attribute created", "node", id, "owner", owner)
	nw.notify(nw.affected(id))
	return id, nil
}
