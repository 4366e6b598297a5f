package alias

import (
	"slices"

	"github.com/roach88/kmap/internal/ir"
)

// Record is one alias edge.
type Record struct {
	// ID is ir.AliasID(Resolved, Destination).
	ID ir.NodeID `json:"id"`

	// Source is the node the caller asked to alias. It may itself be an alias
	// when the edge exposes an alias child under another alias.
	Source ir.NodeID `json:"source"`

	// Resolved is the real node whose content the alias exposes.
	Resolved ir.NodeID `json:"resolved"`

	// Destination is the parent the alias appears under.
	Destination ir.NodeID `json:"destination"`
}

// Index holds alias records keyed four ways.
type Index struct {
	byID       map[ir.NodeID]Record
	bySource   map[ir.NodeID]ir.NodeSet
	byResolved map[ir.NodeID]ir.NodeSet
	byDst      map[ir.NodeID]ir.NodeSet
}

// New returns an empty index.
func New() *Index {
	return &Index{
		byID:       make(map[ir.NodeID]Record),
		bySource:   make(map[ir.NodeID]ir.NodeSet),
		byResolved: make(map[ir.NodeID]ir.NodeSet),
		byDst:      make(map[ir.NodeID]ir.NodeSet),
	}
}

// IsAlias reports whether id names an alias.
func (x *Index) IsAlias(id ir.NodeID) bool {
	_, ok := x.byID[id]
	return ok
}

// Resolve returns the resolved source of an alias, or id unchanged.
// Resolve(Resolve(id)) == Resolve(id) for every id.
func (x *Index) Resolve(id ir.NodeID) ir.NodeID {
	if rec, ok := x.byID[id]; ok {
		return rec.Resolved
	}
	return id
}

// Record returns the record for an alias id.
func (x *Index) Record(id ir.NodeID) (Record, bool) {
	rec, ok := x.byID[id]
	return rec, ok
}

// FetchParent returns the destination of an alias.
func (x *Index) FetchParent(id ir.NodeID) (ir.NodeID, error) {
	rec, ok := x.byID[id]
	if !ok {
		return ir.Nil, ir.NewInvalidNode(id, "not an alias")
	}
	return rec.Destination, nil
}

// FetchAliasesDsts returns every destination currently aliasing source,
// looked up by resolved source.
func (x *Index) FetchAliasesDsts(source ir.NodeID) ir.NodeSet {
	out := ir.NewNodeSet()
	for id := range x.byResolved[x.Resolve(source)] {
		out.Add(x.byID[id].Destination)
	}
	return out
}

// FetchAliasesTo returns the ids of every alias whose resolved source is
// resolved.
func (x *Index) FetchAliasesTo(resolved ir.NodeID) ir.NodeSet {
	return x.byResolved[resolved].Clone()
}

// FetchAliasesFrom returns the ids of every alias pushed with source as its
// original source.
func (x *Index) FetchAliasesFrom(source ir.NodeID) ir.NodeSet {
	return x.bySource[source].Clone()
}

// FetchAliasChildren returns the aliases directly under parent.
func (x *Index) FetchAliasChildren(parent ir.NodeID) ir.NodeSet {
	return x.byDst[parent].Clone()
}

// Push records an alias of source under destination and returns its id.
//
// The id depends only on (resolved, destination). If an equivalent record
// already exists its id is returned and nothing changes, so a destination
// never holds two alias edges for the same resolved source.
// A resolved source that is itself an alias is a corrupt request.
func (x *Index) Push(source, resolved, destination ir.NodeID) (ir.NodeID, error) {
	if resolved.IsNil() || destination.IsNil() {
		return ir.Nil, ir.NewInvalidNode(ir.Nil, "alias endpoints must be non-nil")
	}
	if x.IsAlias(resolved) {
		return ir.Nil, ir.NewCorrupt(resolved, "resolved source is itself an alias")
	}
	if resolved == destination {
		return ir.Nil, ir.NewInvalidLineage(resolved, "alias source equals destination")
	}

	id := ir.AliasID(resolved, destination)
	if _, ok := x.byID[id]; ok {
		return id, nil
	}

	x.byID[id] = Record{ID: id, Source: source, Resolved: resolved, Destination: destination}
	add(x.bySource, source, id)
	add(x.byResolved, resolved, id)
	add(x.byDst, destination, id)
	return id, nil
}

// Erase removes the record for id from every index.
func (x *Index) Erase(id ir.NodeID) error {
	rec, ok := x.byID[id]
	if !ok {
		return ir.NewInvalidNode(id, "not an alias")
	}
	delete(x.byID, id)
	remove(x.bySource, rec.Source, id)
	remove(x.byResolved, rec.Resolved, id)
	remove(x.byDst, rec.Destination, id)
	return nil
}

// Len returns the number of records.
func (x *Index) Len() int {
	return len(x.byID)
}

// Records returns every record ordered by (Destination, Resolved).
func (x *Index) Records() []Record {
	out := make([]Record, 0, len(x.byID))
	for _, rec := range x.byID {
		out = append(out, rec)
	}
	slices.SortFunc(out, func(a, b Record) int {
		if c := a.Destination.Compare(b.Destination); c != 0 {
			return c
		}
		return a.Resolved.Compare(b.Resolved)
	})
	return out
}

func add(m map[ir.NodeID]ir.NodeSet, key, id ir.NodeID) {
	s, ok := m[key]
	if !ok {
		s = ir.NewNodeSet()
		m[key] = s
	}
	s.Add(id)
}

func remove(m map[ir.NodeID]ir.NodeSet, key, id ir.NodeID) {
	s, ok := m[key]
	if !ok {
		return
	}
	s.Remove(id)
	if s.Len() == 0 {
		delete(m, key)
	}
}
