package view

import (
	"github.com/roach88/kmap/internal/ir"
)

// Reserved headings of the tag layout. Tags live under /meta.tag; a node's
// tags are aliases under the "tag" child of its attribute node.
const (
	MetaHeading = "meta"
	TagHeading  = "tag"
)

// TagRoot is the Tether naming the tag root, /meta.tag.
func TagRoot() *Tether {
	return From(AbsRoot(), ChildOf(MetaHeading), ChildOf(TagHeading))
}

// Tag yields the tag nodes a node carries, resolved to their place under
// the tag root.
//
// Create with a Heading ensures /meta.tag.<heading> exists and tags the
// input with it. Create with ID or IDs tags the input with existing tag
// nodes.
func Tag(preds ...Predicate) Link { return tag{filter{preds}} }

type tag struct{ filter }

func (tag) kind() linkKind   { return kindTag }
func (l tag) bare() Link     { return Tag() }
func (l tag) String() string { return l.render(kindTag) }

func (l tag) Fetch(ctx FetchContext, node ir.NodeID) (FetchSet, error) {
	root, ok := tagRoot(ctx.Net)
	if !ok {
		return FetchSet{}, nil
	}
	attrID, ok := ctx.Net.FetchAttr(node)
	if !ok {
		return FetchSet{}, nil
	}
	holder, ok := ctx.Net.FetchChild(attrID, TagHeading)
	if !ok {
		return FetchSet{}, nil
	}

	var tags []ir.NodeID
	for _, a := range ctx.Net.FetchAliasChildren(holder).Sorted() {
		if r := ctx.Net.Resolve(a); ctx.Net.IsAncestor(root, r) {
			tags = append(tags, r)
		}
	}
	return applyPredicates(ctx, fromIDs(node, tags), l.preds, selfKey)
}

func (l tag) Create(ctx CreateContext, node ir.NodeID) (ir.NodeSet, error) {
	p, err := concrete(l, l.preds)
	if err != nil {
		return nil, err
	}

	var tags []ir.NodeID
	switch p := p.(type) {
	case Heading:
		root, err := ensureTagRoot(ctx.Net)
		if err != nil {
			return nil, err
		}
		id, err := ensureChild(ctx.Net, root, string(p))
		if err != nil {
			return nil, err
		}
		tags = []ir.NodeID{id}
	case ID:
		tags = []ir.NodeID{ir.NodeID(p)}
	case IDs:
		tags = sortedIDs(p)
	}

	root, ok := tagRoot(ctx.Net)
	if !ok {
		return nil, ir.NewNotFound("tag root %s does not exist", TagRoot())
	}
	attrID, err := ctx.Net.CreateAttr(node)
	if err != nil {
		return nil, err
	}
	holder, err := ensureChild(ctx.Net, attrID, TagHeading)
	if err != nil {
		return nil, err
	}

	out := ir.NewNodeSet()
	for _, t := range tags {
		rt := ctx.Net.Resolve(t)
		if !ctx.Net.IsAncestor(root, rt) {
			return nil, ir.NewInvalidNode(t, "not a tag: outside %s", TagRoot())
		}
		if _, err := ctx.Net.CreateAlias(rt, holder); err != nil {
			return nil, err
		}
		out.Add(rt)
	}
	return out, nil
}

func tagRoot(net Reader) (ir.NodeID, bool) {
	meta, ok := net.FetchChild(net.Root(), MetaHeading)
	if !ok {
		return ir.Nil, false
	}
	return net.FetchChild(meta, TagHeading)
}

func ensureTagRoot(net Writer) (ir.NodeID, error) {
	meta, err := ensureChild(net, net.Root(), MetaHeading)
	if err != nil {
		return ir.Nil, err
	}
	return ensureChild(net, meta, TagHeading)
}

func ensureChild(net Writer, parent ir.NodeID, heading string) (ir.NodeID, error) {
	if id, ok := net.FetchChild(parent, heading); ok {
		return id, nil
	}
	return net.CreateChild(parent, heading)
}
