package view

import (
	"github.com/roach88/kmap/internal/ir"
)

// Child yields the children of a node, real and alias.
// Create with a Heading predicate creates the child if it is missing.
func Child(preds ...Predicate) Link { return child{filter{preds}} }

// ChildOf is Child(Heading(heading)).
func ChildOf(heading string) Link { return Child(Heading(heading)) }

// Parent yields the parent of a node: the structural parent of a real
// node, the destination of an alias. The root has none.
func Parent(preds ...Predicate) Link { return parent{filter{preds}} }

// Ancestor yields every node on the parent chain up to the root.
func Ancestor(preds ...Predicate) Link { return ancestor{filter{preds}} }

// Desc yields every descendant reachable through children, including the
// internal aliases beneath aliases. Attribute subtrees are excluded.
func Desc(preds ...Predicate) Link { return desc{filter{preds}} }

// Sibling yields the other children of a node's parent.
func Sibling(preds ...Predicate) Link { return sibling{filter{preds}} }

// Alias yields the alias children of a node. ID and IDs predicates match
// either the alias id or its resolved source. Create with ID or IDs aliases
// those nodes under the input.
func Alias(preds ...Predicate) Link { return aliasLink{filter{preds}} }

// AliasSrc yields the resolved sources of a node's alias children.
// Create with ID or IDs aliases those nodes under the input.
func AliasSrc(preds ...Predicate) Link { return aliasSrc{filter{preds}} }

// Attr yields the attribute node. Create makes it if missing.
func Attr() Link { return attr{} }

// Resolve maps a node to its canonical real node.
func Resolve(preds ...Predicate) Link { return resolveLink{filter{preds}} }

type child struct{ filter }

func (child) kind() linkKind   { return kindChild }
func (l child) bare() Link     { return Child() }
func (l child) String() string { return l.render(kindChild) }

func (l child) Fetch(ctx FetchContext, node ir.NodeID) (FetchSet, error) {
	kids, err := ctx.Net.FetchChildren(node)
	if err != nil {
		return FetchSet{}, err
	}
	return applyPredicates(ctx, fromIDs(node, kids.Sorted()), l.preds, selfKey)
}

func (l child) Create(ctx CreateContext, node ir.NodeID) (ir.NodeSet, error) {
	p, err := concrete(l, l.preds)
	if err != nil {
		return nil, err
	}
	h, ok := p.(Heading)
	if !ok {
		return nil, ir.NewAmbiguous("%s: child can only be created by heading", l)
	}
	if id, ok := ctx.Net.FetchChild(node, string(h)); ok {
		return ir.NewNodeSet(id), nil
	}
	id, err := ctx.Net.CreateChild(node, string(h))
	if err != nil {
		return nil, err
	}
	return ir.NewNodeSet(id), nil
}

type parent struct{ filter }

func (parent) kind() linkKind   { return kindParent }
func (l parent) bare() Link     { return Parent() }
func (l parent) String() string { return l.render(kindParent) }

func (l parent) Fetch(ctx FetchContext, node ir.NodeID) (FetchSet, error) {
	if node == ctx.Net.Root() {
		return FetchSet{}, nil
	}
	p, err := ctx.Net.FetchParent(node)
	if err != nil {
		return FetchSet{}, err
	}
	return applyPredicates(ctx, fromIDs(node, []ir.NodeID{p}), l.preds, selfKey)
}

func (l parent) Create(CreateContext, ir.NodeID) (ir.NodeSet, error) {
	return nil, notCreatable(l)
}

type ancestor struct{ filter }

func (ancestor) kind() linkKind   { return kindAncestor }
func (l ancestor) bare() Link     { return Ancestor() }
func (l ancestor) String() string { return l.render(kindAncestor) }

func (l ancestor) Fetch(ctx FetchContext, node ir.NodeID) (FetchSet, error) {
	var chain []ir.NodeID
	for cur := node; cur != ctx.Net.Root(); {
		p, err := ctx.Net.FetchParent(cur)
		if err != nil {
			return FetchSet{}, err
		}
		chain = append(chain, p)
		cur = p
	}
	return applyPredicates(ctx, fromIDs(node, chain), l.preds, selfKey)
}

func (l ancestor) Create(CreateContext, ir.NodeID) (ir.NodeSet, error) {
	return nil, notCreatable(l)
}

type desc struct{ filter }

func (desc) kind() linkKind   { return kindDesc }
func (l desc) bare() Link     { return Desc() }
func (l desc) String() string { return l.render(kindDesc) }

func (l desc) Fetch(ctx FetchContext, node ir.NodeID) (FetchSet, error) {
	var found []ir.NodeID
	stack := []ir.NodeID{node}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		kids, err := ctx.Net.FetchChildren(cur)
		if err != nil {
			return FetchSet{}, err
		}
		for _, k := range kids.Sorted() {
			found = append(found, k)
			stack = append(stack, k)
		}
	}
	return applyPredicates(ctx, fromIDs(node, found), l.preds, selfKey)
}

func (l desc) Create(CreateContext, ir.NodeID) (ir.NodeSet, error) {
	return nil, notCreatable(l)
}

type sibling struct{ filter }

func (sibling) kind() linkKind   { return kindSibling }
func (l sibling) bare() Link     { return Sibling() }
func (l sibling) String() string { return l.render(kindSibling) }

func (l sibling) Fetch(ctx FetchContext, node ir.NodeID) (FetchSet, error) {
	if node == ctx.Net.Root() {
		return FetchSet{}, nil
	}
	p, err := ctx.Net.FetchParent(node)
	if err != nil {
		return FetchSet{}, err
	}
	ctx.see(p)
	kids, err := ctx.Net.FetchChildren(p)
	if err != nil {
		return FetchSet{}, err
	}
	kids.Remove(node)
	return applyPredicates(ctx, fromIDs(node, kids.Sorted()), l.preds, selfKey)
}

func (l sibling) Create(CreateContext, ir.NodeID) (ir.NodeSet, error) {
	return nil, notCreatable(l)
}

type aliasLink struct{ filter }

func (aliasLink) kind() linkKind   { return kindAlias }
func (l aliasLink) bare() Link     { return Alias() }
func (l aliasLink) String() string { return l.render(kindAlias) }

func (l aliasLink) Fetch(ctx FetchContext, node ir.NodeID) (FetchSet, error) {
	aliases := ctx.Net.FetchAliasChildren(node)
	return applyPredicates(ctx, fromIDs(node, aliases.Sorted()), l.preds, selfOrResolvedKey)
}

func (l aliasLink) Create(ctx CreateContext, node ir.NodeID) (ir.NodeSet, error) {
	srcs, err := aliasSources(l, l.preds)
	if err != nil {
		return nil, err
	}
	out := ir.NewNodeSet()
	for _, src := range srcs {
		id, err := ctx.Net.CreateAlias(src, node)
		if err != nil {
			return nil, err
		}
		out.Add(id)
	}
	return out, nil
}

type aliasSrc struct{ filter }

func (aliasSrc) kind() linkKind   { return kindAliasSrc }
func (l aliasSrc) bare() Link     { return AliasSrc() }
func (l aliasSrc) String() string { return l.render(kindAliasSrc) }

func (l aliasSrc) Fetch(ctx FetchContext, node ir.NodeID) (FetchSet, error) {
	aliases := ctx.Net.FetchAliasChildren(node)
	srcs := make([]ir.NodeID, 0, aliases.Len())
	for _, a := range aliases.Sorted() {
		srcs = append(srcs, ctx.Net.Resolve(a))
	}
	return applyPredicates(ctx, fromIDs(node, srcs), l.preds, selfKey)
}

func (l aliasSrc) Create(ctx CreateContext, node ir.NodeID) (ir.NodeSet, error) {
	srcs, err := aliasSources(l, l.preds)
	if err != nil {
		return nil, err
	}
	out := ir.NewNodeSet()
	for _, src := range srcs {
		if _, err := ctx.Net.CreateAlias(src, node); err != nil {
			return nil, err
		}
		out.Add(ctx.Net.Resolve(src))
	}
	return out, nil
}

// aliasSources extracts the concrete ids an alias-creating Link names.
func aliasSources(l Link, preds []Predicate) ([]ir.NodeID, error) {
	p, err := concrete(l, preds)
	if err != nil {
		return nil, err
	}
	switch p := p.(type) {
	case ID:
		return []ir.NodeID{ir.NodeID(p)}, nil
	case IDs:
		return sortedIDs(p), nil
	default:
		return nil, ir.NewAmbiguous("%s: alias needs an id or id set", l)
	}
}

type attr struct{}

func (attr) kind() linkKind          { return kindAttr }
func (attr) predicates() []Predicate { return nil }
func (attr) links() []Link           { return nil }
func (attr) bare() Link              { return Attr() }
func (attr) String() string          { return kindAttr.String() }

func (attr) Fetch(ctx FetchContext, node ir.NodeID) (FetchSet, error) {
	id, ok := ctx.Net.FetchAttr(node)
	if !ok {
		return FetchSet{}, nil
	}
	return fromIDs(node, []ir.NodeID{id}), nil
}

func (attr) Create(ctx CreateContext, node ir.NodeID) (ir.NodeSet, error) {
	id, err := ctx.Net.CreateAttr(node)
	if err != nil {
		return nil, err
	}
	return ir.NewNodeSet(id), nil
}

type resolveLink struct{ filter }

func (resolveLink) kind() linkKind   { return kindResolve }
func (l resolveLink) bare() Link     { return Resolve() }
func (l resolveLink) String() string { return l.render(kindResolve) }

func (l resolveLink) Fetch(ctx FetchContext, node ir.NodeID) (FetchSet, error) {
	return applyPredicates(ctx, fromIDs(node, []ir.NodeID{ctx.Net.Resolve(node)}), l.preds, selfKey)
}

func (l resolveLink) Create(CreateContext, ir.NodeID) (ir.NodeSet, error) {
	return nil, notCreatable(l)
}
