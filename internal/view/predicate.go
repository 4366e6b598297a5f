package view

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/kmap/internal/ir"
)

// Predicate narrows the candidates of a Link. The five kinds are Heading,
// ID, IDs, Chain and *Tether; the set is closed.
type Predicate interface {
	String() string
	predicateRank() int
}

// Heading matches candidates whose (resolved) heading equals it.
type Heading string

// ID matches one node.
type ID ir.NodeID

// IDs matches any node of a concrete set.
type IDs []ir.NodeID

// Chain matches a candidate when the Links, evaluated from that candidate,
// yield at least one node.
type Chain []Link

// Where builds a Chain predicate.
func Where(links ...Link) Chain {
	return Chain(links)
}

func (Heading) predicateRank() int { return 0 }
func (ID) predicateRank() int      { return 1 }
func (IDs) predicateRank() int     { return 2 }
func (Chain) predicateRank() int   { return 3 }
func (*Tether) predicateRank() int { return 4 }

func (h Heading) String() string { return fmt.Sprintf("'%s'", string(h)) }
func (id ID) String() string     { return ir.NodeID(id).String() }

func (ids IDs) String() string {
	sorted := sortedIDs(ids)
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = id.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (c Chain) String() string {
	return joinLinks([]Link(c), " | ")
}

// comparePredicates orders predicates by kind, then by value.
func comparePredicates(a, b Predicate) int {
	if c := cmp.Compare(a.predicateRank(), b.predicateRank()); c != 0 {
		return c
	}
	switch a := a.(type) {
	case Heading:
		return strings.Compare(string(a), string(b.(Heading)))
	case ID:
		return ir.NodeID(a).Compare(ir.NodeID(b.(ID)))
	case IDs:
		return ir.CompareSorted(sortedIDs(a), sortedIDs(b.(IDs)))
	case Chain:
		return compareLinkLists(a, b.(Chain))
	case *Tether:
		return a.Compare(b.(*Tether))
	default:
		panic(fmt.Sprintf("view: unknown predicate %T", a))
	}
}

func comparePredicateLists(a, b []Predicate) int {
	return slices.CompareFunc(a, b, comparePredicates)
}

func sortedIDs(ids []ir.NodeID) []ir.NodeID {
	out := slices.Clone(ids)
	slices.SortFunc(out, ir.NodeID.Compare)
	return out
}

// keyFunc returns the ids a candidate answers to for ID and IDs predicates.
type keyFunc func(ctx FetchContext, candidate ir.NodeID) []ir.NodeID

func selfKey(_ FetchContext, candidate ir.NodeID) []ir.NodeID {
	return []ir.NodeID{candidate}
}

// selfOrResolvedKey lets an alias answer to its own id and to its source.
func selfOrResolvedKey(ctx FetchContext, candidate ir.NodeID) []ir.NodeID {
	return []ir.NodeID{candidate, ctx.Net.Resolve(candidate)}
}

// applyPredicates keeps the candidates matching every predicate. Rejected
// candidates still count as visited.
func applyPredicates(ctx FetchContext, candidates FetchSet, preds []Predicate, key keyFunc) (FetchSet, error) {
	ctx.see(candidates.IDs()...)
	out := candidates
	for _, p := range preds {
		var err error
		out, err = applyPredicate(ctx, out, p, key)
		if err != nil {
			return FetchSet{}, err
		}
		if out.Empty() {
			break
		}
	}
	return out, nil
}

func applyPredicate(ctx FetchContext, candidates FetchSet, p Predicate, key keyFunc) (FetchSet, error) {
	switch p := p.(type) {
	case Heading:
		return candidates.filterItems(func(it Item) (bool, error) {
			h, err := ctx.Net.FetchHeading(it.ID)
			if err != nil {
				return false, err
			}
			return h == string(p), nil
		})
	case ID:
		return candidates.filterItems(func(it Item) (bool, error) {
			return slices.Contains(key(ctx, it.ID), ir.NodeID(p)), nil
		})
	case IDs:
		want := ir.NewNodeSet(p...)
		return candidates.filterItems(func(it Item) (bool, error) {
			return slices.ContainsFunc(key(ctx, it.ID), want.Has), nil
		})
	case Chain:
		return candidates.filterItems(func(it Item) (bool, error) {
			fs, err := From(Node(it.ID), p...).eval(ctx)
			if err != nil {
				return false, err
			}
			return !fs.Empty(), nil
		})
	case *Tether:
		others, err := p.eval(ctx)
		if err != nil {
			return FetchSet{}, err
		}
		return intersectSorted(candidates, others), nil
	default:
		panic(fmt.Sprintf("view: unknown predicate %T", p))
	}
}

// intersectSorted keeps the candidates present in others. Both operands are
// sorted by id and merged, so the result is in ascending id order.
func intersectSorted(candidates, others FetchSet) FetchSet {
	a := candidates.Sorted().items
	b := sortedIDs(others.IDs())
	var out FetchSet
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch c := a[i].ID.Compare(b[j]); {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			out.Add(a[i])
			i++
			j++
		}
	}
	return out
}

// concrete returns the single creatable predicate of a Link.
func concrete(l Link, preds []Predicate) (Predicate, error) {
	if len(preds) != 1 {
		return nil, ir.NewAmbiguous("%s: create needs exactly one predicate, got %d", l, len(preds))
	}
	switch p := preds[0].(type) {
	case Heading, ID, IDs:
		return p, nil
	default:
		return nil, ir.NewAmbiguous("%s: cannot create through %T predicate", l, p)
	}
}
