package ir

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes graph errors.
type ErrorCode string

const (
	// CodeInvalidNode indicates a missing id or an id of the wrong kind
	// (e.g. "not an alias").
	CodeInvalidNode ErrorCode = "INVALID_NODE"

	// CodeInvalidHeading indicates a malformed or duplicate heading.
	CodeInvalidHeading ErrorCode = "INVALID_HEADING"

	// CodeInvalidLineage indicates the operation would violate single-parent
	// or cycle-freedom.
	CodeInvalidLineage ErrorCode = "INVALID_LINEAGE"

	// CodeAmbiguousPredicate indicates create was invoked on an unconstrained
	// or multi-valued predicate, or a single result was required but many matched.
	CodeAmbiguousPredicate ErrorCode = "AMBIGUOUS_PREDICATE"

	// CodeNotFound indicates a query yielded nothing where exactly one was required.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeCorruptStructure indicates a violated structural contract, such as an
	// alias whose resolved source is not a real node. Never auto-repaired.
	CodeCorruptStructure ErrorCode = "CORRUPT_STRUCTURE"
)

// Error is the typed failure returned by every graph operation.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Node identifies the offending node, when there is one.
	Node NodeID
}

// Error implements the error interface.
func (e *Error) Error() string {
	if !e.Node.IsNil() {
		return fmt.Sprintf("%s: %s (node=%s)", e.Code, e.Message, e.Node)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any *Error with the same code, so the sentinels below work with
// errors.Is regardless of message or node.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidNode        = &Error{Code: CodeInvalidNode, Message: "invalid node"}
	ErrInvalidHeading     = &Error{Code: CodeInvalidHeading, Message: "invalid heading"}
	ErrInvalidLineage     = &Error{Code: CodeInvalidLineage, Message: "invalid lineage"}
	ErrAmbiguousPredicate = &Error{Code: CodeAmbiguousPredicate, Message: "ambiguous predicate"}
	ErrNotFound           = &Error{Code: CodeNotFound, Message: "not found"}
	ErrCorruptStructure   = &Error{Code: CodeCorruptStructure, Message: "corrupt structure"}
)

// CodeOf extracts the code of the first *Error in err's chain.
// Returns "" if there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsNotFound returns true if the error is a NotFound error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// IsInvalidNode returns true if the error is an InvalidNode error.
func IsInvalidNode(err error) bool {
	return CodeOf(err) == CodeInvalidNode
}

// IsInvalidLineage returns true if the error is an InvalidLineage error.
func IsInvalidLineage(err error) bool {
	return CodeOf(err) == CodeInvalidLineage
}

// IsAmbiguous returns true if the error is an AmbiguousPredicate error.
func IsAmbiguous(err error) bool {
	return CodeOf(err) == CodeAmbiguousPredicate
}

// NewInvalidNode creates an InvalidNode error for node.
func NewInvalidNode(node NodeID, format string, args ...any) *Error {
	return &Error{Code: CodeInvalidNode, Message: fmt.Sprintf(format, args...), Node: node}
}

// NewInvalidHeading creates an InvalidHeading error quoting the heading.
func NewInvalidHeading(heading string, format string, args ...any) *Error {
	return &Error{
		Code:    CodeInvalidHeading,
		Message: fmt.Sprintf("%q: %s", heading, fmt.Sprintf(format, args...)),
	}
}

// NewInvalidLineage creates an InvalidLineage error for node.
func NewInvalidLineage(node NodeID, format string, args ...any) *Error {
	return &Error{Code: CodeInvalidLineage, Message: fmt.Sprintf(format, args...), Node: node}
}

// NewAmbiguous creates an AmbiguousPredicate error.
func NewAmbiguous(format string, args ...any) *Error {
	return &Error{Code: CodeAmbiguousPredicate, Message: fmt.Sprintf(format, args...)}
}

// NewNotFound creates a NotFound error.
func NewNotFound(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewCorrupt creates a CorruptStructure error for node.
func NewCorrupt(node NodeID, format string, args ...any) *Error {
	return &Error{Code: CodeCorruptStructure, Message: fmt.Sprintf(format, args...), Node: node}
}
