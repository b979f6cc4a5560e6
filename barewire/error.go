// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package barewire holds the error taxonomy shared by every BAREWire
// subsystem (schema, wire, view) and the one human-readable rendering
// helper the core exposes (spec §7). No subsystem logs or recovers on
// its own behalf; failures are returned to the nearest caller that can
// diagnose them.
package barewire

import "fmt"

// Kind identifies one of the six error variants spec §7 requires.
type Kind int

const (
	// SchemaValidation wraps the batch of violations the validator
	// collects while walking a Schema.
	SchemaValidation Kind = iota
	// Decoding covers varint overflow, an invalid bool/optional/union
	// tag, invalid UTF-8, or a truncated read.
	Decoding
	// Encoding covers buffer overflow or an un-encodable value.
	Encoding
	// TypeMismatch is raised when a view access disagrees with the
	// declared schema type at that field path.
	TypeMismatch
	// OutOfBounds is raised by explicit index checks in region slicing
	// and view access.
	OutOfBounds
	// InvalidValue is the catch-all for structural errors, such as an
	// unresolved field path.
	InvalidValue
)

func (k Kind) String() string {
	switch k {
	case SchemaValidation:
		return "SchemaValidation"
	case Decoding:
		return "Decoding"
	case Encoding:
		return "Encoding"
	case TypeMismatch:
		return "TypeMismatch"
	case OutOfBounds:
		return "OutOfBounds"
	case InvalidValue:
		return "InvalidValue"
	default:
		return "Unknown"
	}
}

// Error is the single error type every BAREWire subsystem returns.
type Error struct {
	Kind Kind
	Msg  string

	// Expected and Actual are only populated for TypeMismatch.
	Expected string
	Actual   string

	// Offset and Length are only populated for OutOfBounds.
	Offset int
	Length int

	// Causes holds the individual violations a SchemaValidation error
	// wraps; empty for every other Kind.
	Causes []error
}

func (e *Error) Error() string {
	switch e.Kind {
	case TypeMismatch:
		return fmt.Sprintf("barewire: %s: expected %s, got %s", e.Kind, e.Expected, e.Actual)
	case OutOfBounds:
		return fmt.Sprintf("barewire: %s: offset %d, length %d: %s", e.Kind, e.Offset, e.Length, e.Msg)
	case SchemaValidation:
		if len(e.Causes) == 0 {
			return fmt.Sprintf("barewire: %s: %s", e.Kind, e.Msg)
		}
		s := fmt.Sprintf("barewire: %s: %d violation(s):", e.Kind, len(e.Causes))
		for _, c := range e.Causes {
			s += "\n  - " + c.Error()
		}
		return s
	default:
		return fmt.Sprintf("barewire: %s: %s", e.Kind, e.Msg)
	}
}

// Is lets errors.Is match on Kind alone against one of the sentinels
// below, e.g. errors.Is(err, barewire.ErrDecoding).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for use with errors.Is; only Kind is compared.
var (
	ErrSchemaValidation = &Error{Kind: SchemaValidation}
	ErrDecoding         = &Error{Kind: Decoding}
	ErrEncoding         = &Error{Kind: Encoding}
	ErrTypeMismatch     = &Error{Kind: TypeMismatch}
	ErrOutOfBounds      = &Error{Kind: OutOfBounds}
	ErrInvalidValue     = &Error{Kind: InvalidValue}
)

// Errorf builds a new *Error of the given kind with a formatted message.
func Errorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Mismatch builds a TypeMismatch error.
func Mismatch(expected, actual string) *Error {
	return &Error{Kind: TypeMismatch, Expected: expected, Actual: actual}
}

// Bounds builds an OutOfBounds error.
func Bounds(offset, length int, msg string) *Error {
	return &Error{Kind: OutOfBounds, Offset: offset, Length: length, Msg: msg}
}

// Validation builds a SchemaValidation error wrapping the batch of
// violations the validator collected.
func Validation(causes []error) *Error {
	return &Error{Kind: SchemaValidation, Msg: fmt.Sprintf("%d violation(s)", len(causes)), Causes: causes}
}

// Render converts any error to the one human-readable string the core
// is allowed to produce. It is the only user-visible channel out of
// the core (spec §7 propagation policy).
func Render(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
