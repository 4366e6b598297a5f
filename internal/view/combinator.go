package view

import (
	"github.com/roach88/kmap/internal/ir"
)

// Exactly yields the input node when the union of the members' predicated
// fetches equals the union of their unpredicated fetches. A member that
// matches nothing fails the whole test.
//
//	Exactly(ChildOf("a"), ChildOf("b"))
//
// matches a parent whose children are precisely a and b.
func Exactly(links ...Link) Link { return exactly{group{links}} }

// AllOf yields the union of the members' fetches, or nothing if any member
// matches nothing. Create creates every member.
func AllOf(links ...Link) Link { return allOf{group{links}} }

// AnyOf yields the union of the members' fetches.
func AnyOf(links ...Link) Link { return anyOf{group{links}} }

// NoneOf yields the nodes reachable through the members' relations that
// match none of the members' predicates.
func NoneOf(links ...Link) Link { return noneOf{group{links}} }

type exactly struct{ group }

func (exactly) kind() linkKind   { return kindExactly }
func (l exactly) bare() Link     { return Exactly() }
func (l exactly) String() string { return l.render(kindExactly) }

func (l exactly) Fetch(ctx FetchContext, node ir.NodeID) (FetchSet, error) {
	var predicated, unpredicated FetchSet
	for _, m := range l.members {
		fs, err := fetchFrom(ctx, node, m)
		if err != nil {
			return FetchSet{}, err
		}
		if fs.Empty() {
			return FetchSet{}, nil
		}
		predicated.Merge(fs)

		all, err := fetchFrom(ctx, node, m.bare())
		if err != nil {
			return FetchSet{}, err
		}
		unpredicated.Merge(all)
	}
	if predicated.Empty() || !predicated.SameNodes(unpredicated) {
		return FetchSet{}, nil
	}
	return NewFetchSet(Item{ID: node, From: node}), nil
}

func (l exactly) Create(CreateContext, ir.NodeID) (ir.NodeSet, error) {
	return nil, notCreatable(l)
}

type allOf struct{ group }

func (allOf) kind() linkKind   { return kindAllOf }
func (l allOf) bare() Link     { return AllOf() }
func (l allOf) String() string { return l.render(kindAllOf) }

func (l allOf) Fetch(ctx FetchContext, node ir.NodeID) (FetchSet, error) {
	var out FetchSet
	for _, m := range l.members {
		fs, err := fetchFrom(ctx, node, m)
		if err != nil {
			return FetchSet{}, err
		}
		if fs.Empty() {
			return FetchSet{}, nil
		}
		out.Merge(fs)
	}
	return out.Sorted(), nil
}

func (l allOf) Create(ctx CreateContext, node ir.NodeID) (ir.NodeSet, error) {
	if len(l.members) == 0 {
		return nil, ir.NewAmbiguous("%s: nothing to create", l)
	}
	out := ir.NewNodeSet()
	for _, m := range l.members {
		created, err := m.Create(ctx, node)
		if err != nil {
			return nil, err
		}
		out.Union(created)
	}
	return out, nil
}

type anyOf struct{ group }

func (anyOf) kind() linkKind   { return kindAnyOf }
func (l anyOf) bare() Link     { return AnyOf() }
func (l anyOf) String() string { return l.render(kindAnyOf) }

func (l anyOf) Fetch(ctx FetchContext, node ir.NodeID) (FetchSet, error) {
	var out FetchSet
	for _, m := range l.members {
		fs, err := fetchFrom(ctx, node, m)
		if err != nil {
			return FetchSet{}, err
		}
		out.Merge(fs)
	}
	return out.Sorted(), nil
}

func (l anyOf) Create(CreateContext, ir.NodeID) (ir.NodeSet, error) {
	return nil, notCreatable(l)
}

type noneOf struct{ group }

func (noneOf) kind() linkKind   { return kindNoneOf }
func (l noneOf) bare() Link     { return NoneOf() }
func (l noneOf) String() string { return l.render(kindNoneOf) }

func (l noneOf) Fetch(ctx FetchContext, node ir.NodeID) (FetchSet, error) {
	var all, excluded FetchSet
	for _, m := range l.members {
		fs, err := fetchFrom(ctx, node, m.bare())
		if err != nil {
			return FetchSet{}, err
		}
		all.Merge(fs)

		matched, err := fetchFrom(ctx, node, m)
		if err != nil {
			return FetchSet{}, err
		}
		excluded.Merge(matched)
	}
	out, _ := all.filterItems(func(it Item) (bool, error) {
		return !excluded.Has(it.ID), nil
	})
	return out.Sorted(), nil
}

func (l noneOf) Create(CreateContext, ir.NodeID) (ir.NodeSet, error) {
	return nil, notCreatable(l)
}
