package ir

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// IDGenerator mints ids for new real nodes.
type IDGenerator interface {
	NewID() NodeID
}

// UUIDv7Generator generates time-sortable UUIDv7 node ids.
//
// UUIDv7 embeds a timestamp in the most significant bits, so ids of nodes
// created later sort after earlier ones. Stateless and safe to share.
type UUIDv7Generator struct{}

// NewID creates a new UUIDv7.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) NewID() NodeID {
	return NodeID(uuid.Must(uuid.NewV7()))
}

// SequentialGenerator returns ids 00000000-0000-4000-8000-000000000001,
// ...0002 and so on. Deterministic ids make test failures and golden files
// reproducible.
type SequentialGenerator struct {
	next uint64
}

// NewSequentialGenerator creates a generator whose first id ends in 1.
func NewSequentialGenerator() *SequentialGenerator {
	return &SequentialGenerator{}
}

// NewID returns the next id in sequence.
func (g *SequentialGenerator) NewID() NodeID {
	g.next++
	var id NodeID
	id[6] = 0x40 // version 4 layout, so String() stays a valid UUID
	binary.BigEndian.PutUint64(id[8:], g.next)
	id[8] |= 0x80
	return id
}
