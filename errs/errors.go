// Package errs collects the error taxonomy shared across petrodb's storage
// and execution layers: invariant violations panic, everything else returns
// a *PetroError a caller can inspect with errors.Is/errors.As.
package errs

import (
	stderrors "errors"
	"fmt"

	"github.com/pingcap/errors"
)

type Kind int

const (
	KindInvariant Kind = iota
	KindNotFound
	KindExhausted
	KindIO
	KindDuplicate
)

func (k Kind) String() string {
	switch k {
	case KindInvariant:
		return "invariant"
	case KindNotFound:
		return "not_found"
	case KindExhausted:
		return "exhausted"
	case KindIO:
		return "io"
	case KindDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// PetroError is the concrete error type returned across package boundaries.
type PetroError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *PetroError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *PetroError) Unwrap() error { return e.Err }

func NotFound(format string, args ...any) error {
	return &PetroError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Duplicate(format string, args ...any) error {
	return &PetroError{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

func Exhausted(format string, args ...any) error {
	return &PetroError{Kind: KindExhausted, Message: fmt.Sprintf(format, args...)}
}

// IO wraps an underlying disk error, tracing it with pingcap/errors so a
// verbose CLI run can print the originating stack.
func IO(msg string, cause error) error {
	return &PetroError{Kind: KindIO, Message: msg, Err: errors.Trace(cause)}
}

// IsNotFound reports whether err (or something it wraps) is a not-found PetroError.
func IsNotFound(err error) bool {
	var pe *PetroError
	if ok := stderrors.As(err, &pe); ok {
		return pe.Kind == KindNotFound
	}
	return false
}

// Ensure panics with an invariant-violation PetroError when cond is false.
// Mirrors BUSTUB_ENSURE: reserved for conditions that indicate a bug, never
// for expected runtime outcomes like a missing key.
func Ensure(cond bool, format string, args ...any) {
	if !cond {
		panic(&PetroError{Kind: KindInvariant, Message: fmt.Sprintf(format, args...)})
	}
}

// Must panics on a non-nil error produced by a call site that this package
// considers unrecoverable (e.g. page allocation failure mid-split).
func Must(err error) {
	if err != nil {
		panic(&PetroError{Kind: KindInvariant, Message: "unrecoverable error", Err: err})
	}
}
