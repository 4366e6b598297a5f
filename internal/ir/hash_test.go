package ir

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAliasIDDeterminism(t *testing.T) {
	gen := NewSequentialGenerator()
	src, dst := gen.NewID(), gen.NewID()

	id1 := AliasID(src, dst)
	id2 := AliasID(src, dst)

	assert.Equal(t, id1, id2, "AliasID must be deterministic")
	assert.NotEqual(t, src, id1)
	assert.NotEqual(t, dst, id1)
}

func TestAliasIDIsNotSymmetric(t *testing.T) {
	gen := NewSequentialGenerator()
	a, b := gen.NewID(), gen.NewID()

	assert.NotEqual(t, AliasID(a, b), AliasID(b, a),
		"aliasing a under b must not collide with aliasing b under a")
}

func TestAliasIDChangesWithInput(t *testing.T) {
	gen := NewSequentialGenerator()
	a, b, c := gen.NewID(), gen.NewID(), gen.NewID()

	assert.NotEqual(t, AliasID(a, b), AliasID(a, c), "different destination")
	assert.NotEqual(t, AliasID(a, b), AliasID(c, b), "different source")
}

func TestAliasIDIsWellFormedUUID(t *testing.T) {
	gen := NewSequentialGenerator()
	id := AliasID(gen.NewID(), gen.NewID())

	u := uuid.UUID(id)
	assert.Equal(t, uuid.Version(8), u.Version())
	assert.Equal(t, uuid.RFC4122, u.Variant())

	parsed, err := ParseNodeID(id.String())
	assert.NoError(t, err)
	assert.Equal(t, id, parsed)
}
