package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/kmap/internal/ir"
	"github.com/roach88/kmap/internal/network"
)

const metaRoot = "root"

// ErrEmpty is returned by Load when no network has been saved.
var ErrEmpty = errors.New("store holds no network")

// Save replaces the stored network with nw.
func (s *Store) Save(ctx context.Context, nw *network.Network) error {
	return s.SaveSnapshot(ctx, nw.Snapshot())
}

// SaveSnapshot replaces the stored network with snap in one transaction.
func (s *Store) SaveSnapshot(ctx context.Context, snap network.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"orders", "aliases", "nodes", "meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("save snapshot: clear %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, metaRoot, snap.Root.String()); err != nil {
		return fmt.Errorf("save snapshot: root: %w", err)
	}

	for seq, n := range snap.Nodes {
		var parent sql.NullString
		if !n.Parent.IsNil() {
			parent = sql.NullString{String: n.Parent.String(), Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO nodes (id, parent, relation, heading, title, body, seq)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, n.ID.String(), parent, int(n.Relation), n.Heading, n.Title, n.Body, seq)
		if err != nil {
			return fmt.Errorf("save snapshot: node %s: %w", n.ID, err)
		}
	}

	for seq, a := range snap.Aliases {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO aliases (source, destination, seq) VALUES (?, ?, ?)
		`, a.Source.String(), a.Destination.String(), seq)
		if err != nil {
			return fmt.Errorf("save snapshot: alias %s under %s: %w", a.Source, a.Destination, err)
		}
	}

	for _, o := range snap.Orders {
		for pos, child := range o.Children {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO orders (parent, position, child) VALUES (?, ?, ?)
			`, o.Parent.String(), pos, child.String())
			if err != nil {
				return fmt.Errorf("save snapshot: order of %s: %w", o.Parent, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save snapshot: commit: %w", err)
	}
	s.logger.Debug("snapshot saved", "nodes", len(snap.Nodes), "aliases", len(snap.Aliases), "orders", len(snap.Orders))
	return nil
}

// Load rebuilds the stored network. Returns ErrEmpty if nothing was saved.
func (s *Store) Load(ctx context.Context, opts ...network.Option) (*network.Network, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	nw, err := network.Restore(snap, opts...)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return nw, nil
}

// LoadSnapshot reads the stored snapshot.
func (s *Store) LoadSnapshot(ctx context.Context) (network.Snapshot, error) {
	var snap network.Snapshot

	var root string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, metaRoot).Scan(&root)
	if errors.Is(err, sql.ErrNoRows) {
		return snap, ErrEmpty
	}
	if err != nil {
		return snap, fmt.Errorf("load snapshot: root: %w", err)
	}
	if snap.Root, err = ir.ParseNodeID(root); err != nil {
		return snap, fmt.Errorf("load snapshot: %w", err)
	}

	if snap.Nodes, err = s.loadNodes(ctx); err != nil {
		return snap, fmt.Errorf("load snapshot: %w", err)
	}
	if snap.Aliases, err = s.loadAliases(ctx); err != nil {
		return snap, fmt.Errorf("load snapshot: %w", err)
	}
	if snap.Orders, err = s.loadOrders(ctx); err != nil {
		return snap, fmt.Errorf("load snapshot: %w", err)
	}

	s.logger.Debug("snapshot loaded", "nodes", len(snap.Nodes), "aliases", len(snap.Aliases), "orders", len(snap.Orders))
	return snap, nil
}

// HasNetwork reports whether a network has been saved.
func (s *Store) HasNetwork(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM meta WHERE key = ?`, metaRoot).Scan(&n); err != nil {
		return false, fmt.Errorf("has network: %w", err)
	}
	return n > 0, nil
}

func (s *Store) loadNodes(ctx context.Context) ([]network.NodeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, parent, relation, heading, title, body
		FROM nodes
		ORDER BY seq ASC, id ASC COLLATE BINARY
	`)
	if err != nil {
		return nil, fmt.Errorf("nodes: %w", err)
	}
	defer rows.Close()

	var out []network.NodeRecord
	for rows.Next() {
		var (
			rec      network.NodeRecord
			id       string
			parent   sql.NullString
			relation int
		)
		if err := rows.Scan(&id, &parent, &relation, &rec.Heading, &rec.Title, &rec.Body); err != nil {
			return nil, fmt.Errorf("nodes: %w", err)
		}
		if rec.ID, err = ir.ParseNodeID(id); err != nil {
			return nil, fmt.Errorf("nodes: %w", err)
		}
		if parent.Valid {
			if rec.Parent, err = ir.ParseNodeID(parent.String); err != nil {
				return nil, fmt.Errorf("nodes: parent of %s: %w", rec.ID, err)
			}
		}
		rec.Relation = network.Relation(relation)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("nodes: %w", err)
	}
	return out, nil
}

func (s *Store) loadAliases(ctx context.Context) ([]network.AliasRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source, destination
		FROM aliases
		ORDER BY seq ASC, source ASC COLLATE BINARY, destination ASC COLLATE BINARY
	`)
	if err != nil {
		return nil, fmt.Errorf("aliases: %w", err)
	}
	defer rows.Close()

	var out []network.AliasRecord
	for rows.Next() {
		var src, dst string
		if err := rows.Scan(&src, &dst); err != nil {
			return nil, fmt.Errorf("aliases: %w", err)
		}
		var rec network.AliasRecord
		if rec.Source, err = ir.ParseNodeID(src); err != nil {
			return nil, fmt.Errorf("aliases: %w", err)
		}
		if rec.Destination, err = ir.ParseNodeID(dst); err != nil {
			return nil, fmt.Errorf("aliases: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("aliases: %w", err)
	}
	return out, nil
}

func (s *Store) loadOrders(ctx context.Context) ([]network.OrderRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT parent, child
		FROM orders
		ORDER BY parent ASC COLLATE BINARY, position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("orders: %w", err)
	}
	defer rows.Close()

	var out []network.OrderRecord
	for rows.Next() {
		var p, c string
		if err := rows.Scan(&p, &c); err != nil {
			return nil, fmt.Errorf("orders: %w", err)
		}
		parent, err := ir.ParseNodeID(p)
		if err != nil {
			return nil, fmt.Errorf("orders: %w", err)
		}
		child, err := ir.ParseNodeID(c)
		if err != nil {
			return nil, fmt.Errorf("orders: %w", err)
		}
		if n := len(out); n == 0 || out[n-1].Parent != parent {
			out = append(out, network.OrderRecord{Parent: parent})
		}
		out[len(out)-1].Children = append(out[len(out)-1].Children, child)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders: %w", err)
	}
	return out, nil
}
