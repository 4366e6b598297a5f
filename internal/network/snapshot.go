package network

import (
	"fmt"
	"slices"

	"github.com/roach88/kmap/internal/ir"
)

// NodeRecord is the persisted form of a real node.
type NodeRecord struct {
	ID       ir.NodeID `json:"id"`
	Parent   ir.NodeID `json:"parent"`
	Relation Relation  `json:"relation"`
	Heading  string    `json:"heading"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
}

// AliasRecord is the persisted form of a top-level alias. Internal aliases
// are derived on restore.
type AliasRecord struct {
	Source      ir.NodeID `json:"source"`
	Destination ir.NodeID `json:"destination"`
}

// OrderRecord is the persisted child order of a real parent, as resolved ids.
type OrderRecord struct {
	Parent   ir.NodeID   `json:"parent"`
	Children []ir.NodeID `json:"children"`
}

// Snapshot is a complete, deterministic image of a network.
//
// Nodes are listed parents first, siblings in their persisted order. Aliases
// and orders are sorted by id.
type Snapshot struct {
	Root    ir.NodeID     `json:"root"`
	Nodes   []NodeRecord  `json:"nodes"`
	Aliases []AliasRecord `json:"aliases"`
	Orders  []OrderRecord `json:"orders"`
}

// Snapshot captures the network.
func (nw *Network) Snapshot() Snapshot {
	snap := Snapshot{Root: nw.root}

	queue := []ir.NodeID{nw.root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		n := nw.nodes[id]
		snap.Nodes = append(snap.Nodes, NodeRecord{
			ID:       id,
			Parent:   n.parent,
			Relation: n.rel,
			Heading:  n.heading,
			Title:    n.title,
			Body:     n.body,
		})
		for _, rid := range nw.orders[id] {
			if c, ok := nw.nodes[rid]; ok && c.parent == id && c.rel == RelChild {
				queue = append(queue, rid)
			}
		}
		if !n.attr.IsNil() {
			queue = append(queue, n.attr)
		}
	}

	for _, rec := range nw.aliases.Records() {
		if nw.isReal(rec.Destination) {
			snap.Aliases = append(snap.Aliases, AliasRecord{Source: rec.Resolved, Destination: rec.Destination})
		}
	}

	parents := make([]ir.NodeID, 0, len(nw.orders))
	for p, order := range nw.orders {
		if len(order) > 0 {
			parents = append(parents, p)
		}
	}
	slices.SortFunc(parents, ir.NodeID.Compare)
	for _, p := range parents {
		snap.Orders = append(snap.Orders, OrderRecord{Parent: p, Children: slices.Clone(nw.orders[p])})
	}
	return snap
}

// Restore rebuilds a network from a snapshot.
//
// Nodes must be listed parents first. Aliases are recreated through
// CreateAlias so that internal aliases are derived again, then orders are
// applied. Restore does not notify subscribers.
func Restore(snap Snapshot, opts ...Option) (*Network, error) {
	nw := newNetwork(opts...)
	if snap.Root.IsNil() {
		return nil, ir.NewCorrupt(ir.Nil, "snapshot has no root")
	}
	nw.initRoot(snap.Root)

	for _, rec := range snap.Nodes {
		if rec.ID == snap.Root {
			nw.nodes[rec.ID].title = rec.Title
			nw.nodes[rec.ID].body = rec.Body
			continue
		}
		var err error
		switch rec.Relation {
		case RelChild:
			_, err = nw.createChild(rec.ID, rec.Parent, rec.Heading, rec.Title)
		case RelAttr:
			_, err = nw.createAttr(rec.ID, rec.Parent)
		default:
			err = ir.NewCorrupt(rec.ID, "non-root node without relation")
		}
		if err != nil {
			return nil, fmt.Errorf("restore node %s: %w", rec.ID, err)
		}
		nw.nodes[rec.ID].body = rec.Body
	}

	for _, rec := range snap.Aliases {
		if _, err := nw.CreateAlias(rec.Source, rec.Destination); err != nil {
			return nil, fmt.Errorf("restore alias %s under %s: %w", rec.Source, rec.Destination, err)
		}
	}

	for _, rec := range snap.Orders {
		if err := nw.setOrder(rec.Parent, rec.Children); err != nil {
			return nil, fmt.Errorf("restore order of %s: %w", rec.Parent, err)
		}
	}

	nw.logger.Debug("network restored", "nodes", len(nw.nodes), "aliases", nw.aliases.Len())
	return nw, nil
}
