// Package relerr defines the error taxonomy shared by every compiler
// phase: Precondition, NotImplemented, Internal, DeadlineExceeded, and
// Unsatisfiable.
package relerr

import (
	"errors"
	"fmt"
)

// Kind discriminates the five error categories the compiler can report.
type Kind int

const (
	// KindPrecondition means a caller passed an argument that violates a
	// documented precondition (wrong arity, malformed JoinOn, etc).
	KindPrecondition Kind = iota
	// KindNotImplemented means the operation is recognized but
	// intentionally unsupported (e.g. the Like predicate's concrete
	// matching semantics, or Map/top-level Not in the reference
	// interpreter).
	KindNotImplemented
	// KindInternal means an invariant the compiler itself is supposed to
	// maintain was violated (unknown Relation variant, missing
	// TypeEnv entry).
	KindInternal
	// KindDeadlineExceeded means the FHD solver ran out of its allotted
	// time budget before reaching a verdict.
	KindDeadlineExceeded
	// KindUnsatisfiable means the solver proved no decomposition of the
	// requested width (or better) exists.
	KindUnsatisfiable
)

func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindNotImplemented:
		return "not_implemented"
	case KindInternal:
		return "internal"
	case KindDeadlineExceeded:
		return "deadline_exceeded"
	case KindUnsatisfiable:
		return "unsatisfiable"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per Kind, so callers can use errors.Is without
// reaching for the Error type.
var (
	ErrPrecondition      = errors.New("relsynth: precondition violated")
	ErrNotImplemented    = errors.New("relsynth: not implemented")
	ErrInternal          = errors.New("relsynth: internal error")
	ErrDeadlineExceeded  = errors.New("relsynth: deadline exceeded")
	ErrUnsatisfiable     = errors.New("relsynth: unsatisfiable")
)

func sentinelFor(k Kind) error {
	switch k {
	case KindPrecondition:
		return ErrPrecondition
	case KindNotImplemented:
		return ErrNotImplemented
	case KindInternal:
		return ErrInternal
	case KindDeadlineExceeded:
		return ErrDeadlineExceeded
	case KindUnsatisfiable:
		return ErrUnsatisfiable
	default:
		return ErrInternal
	}
}

// Error is the typed error every compiler phase returns. Component
// names the subsystem that raised it (e.g. "fhd", "codegen").
type Error struct {
	Kind      Kind
	Component string
	Message   string
	Cause     error
}

// Error returns the error string.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("relsynth: %s: %s: %s: %v", e.Component, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("relsynth: %s: %s: %s", e.Component, e.Kind, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for e's Kind, so
// errors.Is(err, relerr.ErrInternal) works against a *Error too.
func (e *Error) Is(target error) bool {
	return target == sentinelFor(e.Kind)
}

// New returns a new *Error for the given kind.
func New(kind Kind, component, message string) *Error {
	return &Error{Kind: kind, Component: component, Message: message}
}

// Wrap returns a new *Error for the given kind, wrapping cause.
func Wrap(kind Kind, component, message string, cause error) *Error {
	return &Error{Kind: kind, Component: component, Message: message, Cause: cause}
}

// Precondition is a convenience constructor for KindPrecondition.
func Precondition(component, format string, args ...any) *Error {
	return New(KindPrecondition, component, fmt.Sprintf(format, args...))
}

// NotImplemented is a convenience constructor for KindNotImplemented.
func NotImplemented(component, format string, args ...any) *Error {
	return New(KindNotImplemented, component, fmt.Sprintf(format, args...))
}

// Internal is a convenience constructor for KindInternal.
func Internal(component, format string, args ...any) *Error {
	return New(KindInternal, component, fmt.Sprintf(format, args...))
}

// Unsatisfiable is a convenience constructor for KindUnsatisfiable.
func Unsatisfiable(component, format string, args ...any) *Error {
	return New(KindUnsatisfiable, component, fmt.Sprintf(format, args...))
}

// DeadlineExceeded is a convenience constructor for KindDeadlineExceeded.
func DeadlineExceeded(component, format string, args ...any) *Error {
	return New(KindDeadlineExceeded, component, fmt.Sprintf(format, args...))
}

// Is reports whether err is (or wraps) a *Error of the given kind.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return errors.Is(err, sentinelFor(kind))
}
