package schema

import (
	"errors"
	"strings"
)

var (
	// ErrUnsupportedShape marks declarations the generator cannot handle:
	// field-less structs, embedded or blank fields, non-struct types.
	ErrUnsupportedShape = errors.New("unsupported shape")

	// ErrTypeNotFound is returned when a requested record is not declared in
	// the document.
	ErrTypeNotFound = errors.New("type not found")
)

// ShapeError describes why a declaration was rejected. It unwraps to
// ErrUnsupportedShape.
type ShapeError struct {
	Type   string
	Field  string
	Reason string
}

func (e *ShapeError) Error() string {
	var b strings.Builder
	b.WriteString("schema: unsupported shape")
	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(": field ")
		b.WriteString(e.Field)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

func (e *ShapeError) Unwrap() error {
	return ErrUnsupportedShape
}
