// Package ir provides the foundational types shared by every kmap package.
//
// This package contains node identity, node sets, deterministic alias
// identity, heading rules and the error taxonomy. All other internal packages
// import ir; ir imports nothing internal. This keeps ir the foundational
// layer with no circular dependencies.
//
// Key design constraints:
//   - Node identity is a 16-byte UUID; ordering over ids is bytewise
//   - Alias identity is a pure function of (resolved source, destination)
//   - Headings are NFC-normalized before validation
//   - Errors carry a string code so callers can branch with errors.Is
package ir
