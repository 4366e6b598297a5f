// Package store persists network snapshots in SQLite.
//
// A database holds at most one network. Save replaces the stored image in
// a single transaction; Load rebuilds a network from it through
// network.Restore, so internal aliases are derived rather than stored.
//
// # Tables
//
//   - meta: key/value pairs, including the root id
//   - nodes: real nodes, parents first (seq)
//   - aliases: top-level alias records
//   - orders: persisted child order per real parent
//
// Every read carries an ORDER BY with a unique tiebreaker so identical
// databases load identical networks.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
