// Package network holds the canonical node tree of a map and the alias
// overlay laid over it.
//
// Real nodes own a heading, title and body and have exactly one structural
// parent (the root has none), reached through either the child or the
// attribute relation. Aliases are virtual nodes kept in an alias.Index. When
// a real node R is aliased under D the resulting alias A also exposes every
// child of R, recursively, as internal aliases beneath A. Creating a child of
// R extends those internal trees and erasing it prunes them.
//
// Each real parent keeps a total order over its children. The order lists
// resolved ids, so an alias child appears under its resolved source id. An
// alias parent shares the order of the node it resolves to.
//
// INVARIANTS:
//   - Resolve(Resolve(x)) == Resolve(x)
//   - an alias's resolved source is a real node
//   - no node reaches itself through children and alias expansion
//   - a parent holds at most one alias per resolved source
//   - headings are unique among a parent's children
//
// A Network is single-writer. Mutating methods must not run concurrently with
// each other or with reads.
package network
