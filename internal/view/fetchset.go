package view

import (
	"slices"

	"github.com/roach88/kmap/internal/ir"
)

// Item is one member of a FetchSet.
type Item struct {
	// ID is the matched node.
	ID ir.NodeID `json:"id"`

	// From is the stage input ID was reached from. Nil for anchor items.
	From ir.NodeID `json:"from"`
}

// FetchSet is the result of one stage: a deduplicated, insertion-ordered
// set of items. The zero value is an empty set ready for use.
type FetchSet struct {
	items []Item
	pos   map[ir.NodeID]int
}

// NewFetchSet returns a set holding items, dropping repeated ids.
func NewFetchSet(items ...Item) FetchSet {
	var s FetchSet
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Add appends it unless its id is already present. Reports whether it was
// added.
func (s *FetchSet) Add(it Item) bool {
	if _, ok := s.pos[it.ID]; ok {
		return false
	}
	if s.pos == nil {
		s.pos = make(map[ir.NodeID]int)
	}
	s.pos[it.ID] = len(s.items)
	s.items = append(s.items, it)
	return true
}

// Merge adds every item of other.
func (s *FetchSet) Merge(other FetchSet) {
	for _, it := range other.items {
		s.Add(it)
	}
}

// Len returns the number of items.
func (s FetchSet) Len() int {
	return len(s.items)
}

// Empty reports whether the set has no items.
func (s FetchSet) Empty() bool {
	return len(s.items) == 0
}

// Has reports whether id is a member.
func (s FetchSet) Has(id ir.NodeID) bool {
	_, ok := s.pos[id]
	return ok
}

// Item returns the item for id.
func (s FetchSet) Item(id ir.NodeID) (Item, bool) {
	i, ok := s.pos[id]
	if !ok {
		return Item{}, false
	}
	return s.items[i], true
}

// Items returns the items in set order.
func (s FetchSet) Items() []Item {
	return slices.Clone(s.items)
}

// IDs returns the member ids in set order.
func (s FetchSet) IDs() []ir.NodeID {
	out := make([]ir.NodeID, len(s.items))
	for i, it := range s.items {
		out[i] = it.ID
	}
	return out
}

// Set returns the member ids as a NodeSet.
func (s FetchSet) Set() ir.NodeSet {
	return ir.NewNodeSet(s.IDs()...)
}

// SameNodes reports whether both sets hold the same ids, ignoring order
// and provenance.
func (s FetchSet) SameNodes(other FetchSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, it := range s.items {
		if !other.Has(it.ID) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s FetchSet) Clone() FetchSet {
	return NewFetchSet(s.items...)
}

// Sorted returns a copy ordered by ascending id.
func (s FetchSet) Sorted() FetchSet {
	items := slices.Clone(s.items)
	slices.SortFunc(items, func(a, b Item) int {
		return a.ID.Compare(b.ID)
	})
	return NewFetchSet(items...)
}

// filterItems keeps the items for which keep returns true.
func (s FetchSet) filterItems(keep func(Item) (bool, error)) (FetchSet, error) {
	var out FetchSet
	for _, it := range s.items {
		ok, err := keep(it)
		if err != nil {
			return FetchSet{}, err
		}
		if ok {
			out.Add(it)
		}
	}
	return out, nil
}

// fromIDs builds a set of ids reached from node, in ascending id order.
func fromIDs(node ir.NodeID, ids []ir.NodeID) FetchSet {
	ids = slices.Clone(ids)
	slices.SortFunc(ids, ir.NodeID.Compare)
	var out FetchSet
	for _, id := range ids {
		out.Add(Item{ID: id, From: node})
	}
	return out
}
