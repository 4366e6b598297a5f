package ir

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
)

// NodeID identifies a node: real or alias. It is globally unique and stable.
type NodeID uuid.UUID

// Nil is the zero NodeID. No node ever has this id.
var Nil NodeID

// ParseNodeID parses the canonical hyphenated UUID form.
func ParseNodeID(s string) (NodeID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("parse node id %q: %w", s, err)
	}
	return NodeID(u), nil
}

// MustParseNodeID is like ParseNodeID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustParseNodeID(s string) NodeID {
	id, err := ParseNodeID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the hyphenated UUID form.
func (id NodeID) String() string {
	return uuid.UUID(id).String()
}

// Short returns the first 8 hex characters, for logs and debugging output.
func (id NodeID) Short() string {
	return id.String()[:8]
}

// IsNil reports whether id is the zero id.
func (id NodeID) IsNil() bool {
	return id == Nil
}

// Compare orders ids bytewise. Returns -1, 0 or +1.
func (id NodeID) Compare(other NodeID) int {
	return bytes.Compare(id[:], other[:])
}

// Less reports whether id sorts before other.
func (id NodeID) Less(other NodeID) bool {
	return id.Compare(other) < 0
}

// MarshalText implements encoding.TextMarshaler so ids render as strings in JSON.
func (id NodeID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *NodeID) UnmarshalText(data []byte) error {
	parsed, err := ParseNodeID(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
