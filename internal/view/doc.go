// Package view implements the path query and mutation algebra over a
// network.
//
// A Tether starts at an Anchor and threads a FetchSet through a chain of
// Links:
//
//	t := view.From(view.AbsRoot(), view.Child(view.Heading("meta")), view.Child())
//	ids, err := view.ToVector(view.FetchContext{Net: nw}, t.Then(view.Order()))
//
// Every Link supports two operations. Fetch is a pure query and never
// mutates the network; the FetchContext only carries a Reader. Create
// idempotently makes the relation hold, and is only meaningful when the
// Link's predicate names a concrete target: a heading, an id or a set of ids.
// Creating through a Chain or Tether predicate fails with AmbiguousPredicate.
//
// Links and Tethers are immutable values with a strict weak order
// (CompareLinks, Tether.Compare) so a Tether can key a result cache; see
// package pathcache.
package view
