// Package errkit implements the core's error-kind taxonomy: every failure
// the core reports is one of a small fixed set of kinds, each optionally
// wrapping an underlying cause. It builds on github.com/pkg/errors for the
// wrap/cause chain and stack-trace capture.
package errkit

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates the error variants callers need to distinguish.
type Kind int

const (
	// ParseError indicates malformed file bytes: bad magic, wrong
	// endianness, a truncated record.
	ParseError Kind = iota
	// LookupMiss indicates a requested frame, identifier, or name is absent
	// from the currently loaded data.
	LookupMiss
	// Coverage indicates the requested epoch falls outside every segment
	// that covers the frame.
	Coverage
	// DisjointRoots indicates two frames do not share an ancestor in the
	// loaded graph — an integrity error.
	DisjointRoots
	// MaxTreeDepth indicates graph traversal exceeded MAX_TREE_DEPTH.
	MaxTreeDepth
	// Capacity indicates a fixed-size slot table is full.
	Capacity
	// Io indicates an underlying file operation failed.
	Io
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case LookupMiss:
		return "LookupMiss"
	case Coverage:
		return "Coverage"
	case DisjointRoots:
		return "DisjointRoots"
	case MaxTreeDepth:
		return "MaxTreeDepth"
	case Capacity:
		return "Capacity"
	case Io:
		return "Io"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned across the core's public
// surface: a Kind plus a message and, usually, a wrapped cause carrying a
// stack trace from github.com/pkg/errors.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// New builds a causeless Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds a causeless Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a stack-tracing cause (via pkg/errors) to an Error of the
// given kind. Returns nil if cause is nil, so it is safe to use in the
// common `if err := f(); err != nil { return errkit.Wrap(...) }` shape.
func Wrap(kind Kind, message string, cause error) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Cause: errors.WithStack(cause)}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(kind Kind, cause error, format string, args ...any) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: errors.WithStack(cause)}
}

// Is reports whether err is an *Error of the given kind, looking through
// any wrapping via errors.As.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
