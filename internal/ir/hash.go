package ir

import (
	"crypto/sha256"
)

// Domain prefixes for derived identity.
// Version suffix enables future algorithm migration.
const (
	DomainAlias = "kmap/alias/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data...)
// The null byte (0x00) separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data ...[]byte) [sha256.Size]byte {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	for _, d := range data {
		h.Write(d)
	}
	var sum [sha256.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// AliasID computes the identity of the alias exposing resolvedSrc under dst.
//
// The id is a pure function of its inputs: repeated requests to alias the same
// source under the same destination yield the same id. Argument order matters,
// so aliasing a under b never collides with aliasing b under a.
//
// The first 16 bytes of the digest are used with RFC 4122 variant bits and
// version 8 (custom) set, so the result is a well-formed UUID.
func AliasID(resolvedSrc, dst NodeID) NodeID {
	sum := hashWithDomain(DomainAlias, resolvedSrc[:], dst[:])

	var id NodeID
	copy(id[:], sum[:16])
	id[6] = (id[6] & 0x0f) | 0x80 // version 8
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant
	return id
}
