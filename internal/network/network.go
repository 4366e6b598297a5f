package network

import (
	"io"
	"log/slog"

	"github.com/roach88/kmap/internal/alias"
	"github.com/roach88/kmap/internal/ir"
)

// RootHeading is the heading of every network's root node.
const RootHeading = "root"

// Relation is how a real node hangs off its parent.
type Relation int

const (
	// RelNone is the root's relation.
	RelNone Relation = iota

	// RelChild marks an ordinary child.
	RelChild

	// RelAttr marks an attribute node.
	RelAttr
)

// String implements fmt.Stringer.
func (r Relation) String() string {
	switch r {
	case RelChild:
		return "child"
	case RelAttr:
		return "attr"
	default:
		return "none"
	}
}

type node struct {
	heading string
	title   string
	body    string
	parent  ir.NodeID
	rel     Relation
	kids    ir.NodeSet
	attr    ir.NodeID
}

// Network is the node store plus alias overlay.
type Network struct {
	root    ir.NodeID
	nodes   map[ir.NodeID]*node
	aliases *alias.Index

	// orders maps a real parent to the resolved ids of its children.
	orders map[ir.NodeID][]ir.NodeID

	gen     ir.IDGenerator
	logger  *slog.Logger
	subs    map[int]func(ir.NodeSet)
	nextSub int
}

// Option configures a Network.
type Option func(*Network)

// WithGenerator sets the id generator for new real nodes.
//
// Default: ir.UUIDv7Generator.
func WithGenerator(gen ir.IDGenerator) Option {
	return func(nw *Network) {
		nw.gen = gen
	}
}

// WithLogger sets the logger. Mutations log at Debug.
func WithLogger(logger *slog.Logger) Option {
	return func(nw *Network) {
		nw.logger = logger
	}
}

// New creates a network holding only a root node.
func New(opts ...Option) *Network {
	nw := newNetwork(opts...)
	nw.initRoot(nw.gen.NewID())
	return nw
}

func newNetwork(opts ...Option) *Network {
	nw := &Network{
		nodes:   make(map[ir.NodeID]*node),
		aliases: alias.New(),
		orders:  make(map[ir.NodeID][]ir.NodeID),
		gen:     ir.UUIDv7Generator{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		subs:    make(map[int]func(ir.NodeSet)),
	}
	for _, opt := range opts {
		opt(nw)
	}
	return nw
}

func (nw *Network) initRoot(id ir.NodeID) {
	nw.root = id
	nw.nodes[id] = &node{
		heading: RootHeading,
		title:   ir.FormatTitle(RootHeading),
		kids:    ir.NewNodeSet(),
	}
}

// Root returns the root node id.
func (nw *Network) Root() ir.NodeID {
	return nw.root
}

// Aliases exposes the alias index for read-only inspection.
func (nw *Network) Aliases() *alias.Index {
	return nw.aliases
}

// Exists reports whether id names a real node or an alias.
func (nw *Network) Exists(id ir.NodeID) bool {
	return nw.isReal(id) || nw.aliases.IsAlias(id)
}

// IsAlias reports whether id names an alias.
func (nw *Network) IsAlias(id ir.NodeID) bool {
	return nw.aliases.IsAlias(id)
}

// IsTopAlias reports whether id is an alias whose destination is a real
// node, as opposed to an internal alias under another alias.
func (nw *Network) IsTopAlias(id ir.NodeID) bool {
	rec, ok := nw.aliases.Record(id)
	return ok && nw.isReal(rec.Destination)
}

// Resolve maps an alias to its real node. Other ids are returned unchanged.
func (nw *Network) Resolve(id ir.NodeID) ir.NodeID {
	return nw.aliases.Resolve(id)
}

// Len returns the number of real nodes, root included.
func (nw *Network) Len() int {
	return len(nw.nodes)
}

func (nw *Network) isReal(id ir.NodeID) bool {
	_, ok := nw.nodes[id]
	return ok
}

// real returns the real node behind id, resolving aliases.
func (nw *Network) real(id ir.NodeID) (*node, error) {
	rid := nw.aliases.Resolve(id)
	n, ok := nw.nodes[rid]
	if !ok {
		if rid != id {
			return nil, ir.NewCorrupt(id, "alias resolves to missing node %s", rid)
		}
		return nil, ir.NewInvalidNode(id, "node does not exist")
	}
	return n, nil
}

// FetchParent returns the structural parent of a real node or the
// destination of an alias.
func (nw *Network) FetchParent(id ir.NodeID) (ir.NodeID, error) {
	if nw.aliases.IsAlias(id) {
		return nw.aliases.FetchParent(id)
	}
	n, ok := nw.nodes[id]
	if !ok {
		return ir.Nil, ir.NewInvalidNode(id, "node does not exist")
	}
	if id == nw.root {
		return ir.Nil, ir.NewInvalidNode(id, "root has no parent")
	}
	return n.parent, nil
}

// FetchRelation reports how id hangs off its parent. Aliases are children.
func (nw *Network) FetchRelation(id ir.NodeID) (Relation, error) {
	if nw.aliases.IsAlias(id) {
		return RelChild, nil
	}
	n, ok := nw.nodes[id]
	if !ok {
		return RelNone, ir.NewInvalidNode(id, "node does not exist")
	}
	return n.rel, nil
}

// FetchChildren returns the real and alias children of parent. The
// attribute node is not a child.
func (nw *Network) FetchChildren(parent ir.NodeID) (ir.NodeSet, error) {
	if !nw.Exists(parent) {
		return nil, ir.NewInvalidNode(parent, "node does not exist")
	}
	return nw.childrenOf(parent), nil
}

func (nw *Network) childrenOf(parent ir.NodeID) ir.NodeSet {
	out := nw.aliases.FetchAliasChildren(parent)
	if n, ok := nw.nodes[parent]; ok {
		out.Union(n.kids)
	}
	return out
}

// FetchAttr returns the attribute node of id's resolved node, if any.
func (nw *Network) FetchAttr(id ir.NodeID) (ir.NodeID, bool) {
	n, err := nw.real(id)
	if err != nil || n.attr.IsNil() {
		return ir.Nil, false
	}
	return n.attr, true
}

// FetchChild returns the child of parent with the given heading.
func (nw *Network) FetchChild(parent ir.NodeID, heading string) (ir.NodeID, bool) {
	for _, c := range nw.childrenOf(parent).Sorted() {
		if n, err := nw.real(c); err == nil && n.heading == heading {
			return c, true
		}
	}
	return ir.Nil, false
}

// IsChild reports whether parent has a child with the given heading.
func (nw *Network) IsChild(parent ir.NodeID, heading string) bool {
	_, ok := nw.FetchChild(parent, heading)
	return ok
}
