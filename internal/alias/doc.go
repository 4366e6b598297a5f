// Package alias implements the Alias Index: the multi-keyed association of
// alias ids to their source, resolved source and destination parent.
//
// An alias is a virtual node. Its id is ir.AliasID(resolved, destination), so
// pushing an equivalent record twice yields the same id and no duplicate.
// Every record is reachable by id, source, resolved source and destination.
// Push and Erase keep all four indices consistent with one another.
//
// Index is not safe for concurrent mutation. Callers serialize writes.
package alias
