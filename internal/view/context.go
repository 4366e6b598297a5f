package view

import (
	"github.com/roach88/kmap/internal/ir"
)

// Reader is the read-only network surface Fetch consumes.
// *network.Network implements it.
type Reader interface {
	Root() ir.NodeID
	Exists(id ir.NodeID) bool
	IsAlias(id ir.NodeID) bool
	IsTopAlias(id ir.NodeID) bool
	Resolve(id ir.NodeID) ir.NodeID
	FetchParent(id ir.NodeID) (ir.NodeID, error)
	FetchChildren(parent ir.NodeID) (ir.NodeSet, error)
	FetchChildrenOrdered(parent ir.NodeID) ([]ir.NodeID, error)
	FetchAliasChildren(parent ir.NodeID) ir.NodeSet
	FetchChild(parent ir.NodeID, heading string) (ir.NodeID, bool)
	FetchAttr(id ir.NodeID) (ir.NodeID, bool)
	FetchHeading(id ir.NodeID) (string, error)
	FetchTitle(id ir.NodeID) (string, error)
	FetchBody(id ir.NodeID) (string, error)
	FetchLineage(id ir.NodeID) ([]ir.NodeID, error)
	IsAncestor(ancestor, id ir.NodeID) bool
}

// Writer is the mutating surface Create consumes.
type Writer interface {
	Reader
	CreateChild(parent ir.NodeID, heading string) (ir.NodeID, error)
	CreateAttr(id ir.NodeID) (ir.NodeID, error)
	CreateAlias(src, dst ir.NodeID) (ir.NodeID, error)
	EraseNode(id ir.NodeID) error
	UpdateHeading(id ir.NodeID, heading string) error
	UpdateTitle(id ir.NodeID, title string) error
	UpdateBody(id ir.NodeID, body string) error
}

// Memo caches Tether results. Lookup returns the result together with the
// nodes visited while computing it, so enclosing evaluations inherit them.
type Memo interface {
	Lookup(t *Tether) (FetchSet, ir.NodeSet, bool)
	Store(t *Tether, result FetchSet, visited ir.NodeSet)
}

// FetchContext carries what a Fetch may read.
type FetchContext struct {
	// Net is the network being queried.
	Net Reader

	// Memo, when set, caches Tether evaluations.
	Memo Memo

	visited ir.NodeSet
}

func (c FetchContext) see(ids ...ir.NodeID) {
	if c.visited != nil {
		c.visited.Add(ids...)
	}
}

// CreateContext carries what a Create may mutate.
type CreateContext struct {
	// Net is the network being mutated.
	Net Writer

	// Memo, when set, serves the fetches a create performs.
	Memo Memo
}

// Fetch returns the read-only context over the same network.
func (c CreateContext) Fetch() FetchContext {
	return FetchContext{Net: c.Net, Memo: c.Memo}
}
