// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindState
	KindIntegrity
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindState:
		return "state"
	case KindIntegrity:
		return "integrity"
	case KindNotFound:
		return "not_found"
	}
	return "unknown"
}

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrState      = &Error{Kind: KindState}
	ErrIntegrity  = &Error{Kind: KindIntegrity}
	ErrNotFound   = &Error{Kind: KindNotFound}
)

// Error is a typed domain failure scoped to one request.
type Error struct {
	Kind    Kind
	Op      string
	Message string

	// Set when Kind is KindConflict
	Conflict *Conflict
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Op, e.Kind, e.Message)
}

// Is matches sentinels by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// KindOf returns the kind of a domain error, or 0 for anything else.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func validationErr(op, format string, args ...any) error {
	return &Error{Kind: KindValidation, Op: op, Message: fmt.Sprintf(format, args...)}
}

func stateErr(op, format string, args ...any) error {
	return &Error{Kind: KindState, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Validation returns a KindValidation error.
func Validation(op, format string, args ...any) error {
	return validationErr(op, format, args...)
}

// State returns a KindState error.
func State(op, format string, args ...any) error {
	return stateErr(op, format, args...)
}

// Integrity returns a KindIntegrity error.
func Integrity(op, format string, args ...any) error {
	return &Error{Kind: KindIntegrity, Op: op, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a KindNotFound error for the named entity.
func NotFound(op, entity string) error {
	return &Error{Kind: KindNotFound, Op: op, Message: entity + " not found"}
}
