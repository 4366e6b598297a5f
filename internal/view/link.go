package view

import (
	"cmp"
	"slices"
	"strings"

	"github.com/roach88/kmap/internal/ir"
)

// Link is one stage of a Tether.
//
// Fetch returns the nodes related to node, in ascending id order, filtered
// by the Link's predicates. Create makes the relation hold from node and
// returns the resulting nodes. Implementations live in this package only.
type Link interface {
	Fetch(ctx FetchContext, node ir.NodeID) (FetchSet, error)
	Create(ctx CreateContext, node ir.NodeID) (ir.NodeSet, error)
	String() string

	kind() linkKind
	predicates() []Predicate
	links() []Link

	// bare returns the same relation without predicates.
	bare() Link
}

// setStage is implemented by Links that transform a whole stage at once.
type setStage interface {
	fetchSet(ctx FetchContext, in FetchSet) (FetchSet, error)
}

// linkKind is the type rank used by CompareLinks.
type linkKind int

const (
	kindChild linkKind = iota
	kindParent
	kindAncestor
	kindDesc
	kindSibling
	kindAlias
	kindAliasSrc
	kindAttr
	kindTag
	kindResolve
	kindOrder
	kindExactly
	kindAllOf
	kindAnyOf
	kindNoneOf
)

var kindNames = [...]string{
	kindChild:    "child",
	kindParent:   "parent",
	kindAncestor: "ancestor",
	kindDesc:     "desc",
	kindSibling:  "sibling",
	kindAlias:    "alias",
	kindAliasSrc: "alias_src",
	kindAttr:     "attr",
	kindTag:      "tag",
	kindResolve:  "resolve",
	kindOrder:    "order",
	kindExactly:  "exactly",
	kindAllOf:    "all_of",
	kindAnyOf:    "any_of",
	kindNoneOf:   "none_of",
}

func (k linkKind) String() string {
	return kindNames[k]
}

// CompareLinks is a strict weak order over Links: type rank first, then
// predicates, then nested Links, each compared recursively.
func CompareLinks(a, b Link) int {
	if c := cmp.Compare(a.kind(), b.kind()); c != 0 {
		return c
	}
	if c := comparePredicateLists(a.predicates(), b.predicates()); c != 0 {
		return c
	}
	return compareLinkLists(a.links(), b.links())
}

func compareLinkLists(a, b []Link) int {
	return slices.CompareFunc(a, b, CompareLinks)
}

func joinLinks(links []Link, sep string) string {
	parts := make([]string, len(links))
	for i, l := range links {
		parts[i] = l.String()
	}
	return strings.Join(parts, sep)
}

// filter is embedded by Links that take predicates.
type filter struct {
	preds []Predicate
}

func (f filter) predicates() []Predicate { return f.preds }
func (filter) links() []Link             { return nil }

func (f filter) render(k linkKind) string {
	if len(f.preds) == 0 {
		return k.String()
	}
	parts := make([]string, len(f.preds))
	for i, p := range f.preds {
		parts[i] = p.String()
	}
	return k.String() + "(" + strings.Join(parts, ", ") + ")"
}

// group is embedded by Links composed of other Links.
type group struct {
	members []Link
}

func (group) predicates() []Predicate { return nil }
func (g group) links() []Link         { return g.members }

func (g group) render(k linkKind) string {
	if len(g.members) == 0 {
		return k.String()
	}
	return k.String() + "(" + joinLinks(g.members, ", ") + ")"
}

func notCreatable(l Link) error {
	return ir.NewAmbiguous("%s: relation cannot be created", l)
}

// fetchFrom evaluates one Link from node as its own Tether.
func fetchFrom(ctx FetchContext, node ir.NodeID, l Link) (FetchSet, error) {
	return From(Node(node), l).eval(ctx)
}
