package ir

import "slices"

// NodeSet is an unordered set of node ids.
//
// The zero value is not usable for writes; use NewNodeSet.
// Sorted returns a deterministic ordering whenever iteration order matters.
type NodeSet map[NodeID]struct{}

// NewNodeSet returns a set holding ids.
func NewNodeSet(ids ...NodeID) NodeSet {
	s := make(NodeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts ids into the set.
func (s NodeSet) Add(ids ...NodeID) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Remove deletes id from the set.
func (s NodeSet) Remove(id NodeID) {
	delete(s, id)
}

// Has reports membership.
func (s NodeSet) Has(id NodeID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of ids.
func (s NodeSet) Len() int {
	return len(s)
}

// Sorted returns the ids in ascending byte order.
func (s NodeSet) Sorted() []NodeID {
	out := make([]NodeID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.SortFunc(out, NodeID.Compare)
	return out
}

// Clone returns an independent copy.
func (s NodeSet) Clone() NodeSet {
	out := make(NodeSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Union adds every id of other into s.
func (s NodeSet) Union(other NodeSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Intersects reports whether s and other share at least one id.
func (s NodeSet) Intersects(other NodeSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for id := range small {
		if large.Has(id) {
			return true
		}
	}
	return false
}

// Equal reports whether both sets hold exactly the same ids.
func (s NodeSet) Equal(other NodeSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// CompareSorted orders two sorted id slices lexicographically.
// Shorter prefixes sort first.
func CompareSorted(a, b []NodeID) int {
	return slices.CompareFunc(a, b, NodeID.Compare)
}
