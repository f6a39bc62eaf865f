// Package errors provides structured error handling for the gauge packages.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrNotFound is matched by [NotFoundError] through errors.Is.
var ErrNotFound = stderrors.New("not found")

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindNotFound indicates a surface identifier that resolves to nothing.
	KindNotFound
	// KindRender indicates a drawing failure.
	KindRender
	// KindResize indicates a failure to resize a surface.
	KindResize
	// KindParsing indicates an input event that could not be interpreted.
	KindParsing
	// KindConfig indicates an invalid configuration value.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindRender:
		return "render"
	case KindResize:
		return "resize"
	case KindParsing:
		return "parsing"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// GaugeError represents a structured error raised by a gauge component.
type GaugeError struct {
	// Op is the operation that failed (e.g., "gauge.Render").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *GaugeError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *GaugeError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a surface identifier with no matching surface.
type NotFoundError struct {
	// ID is the identifier that was looked up.
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("surface %q not found", e.ID)
}

// Is reports whether target is [ErrNotFound].
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "animation.Loop").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError represents an input event whose payload had an unexpected type.
type ParseError struct {
	// Source names the input that produced the event.
	Source string
	// DataType is the expected type name.
	DataType string
	// Got is the actual data received.
	Got any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s from %s: got %T", e.DataType, e.Source, e.Got)
}

// ErrorHandler receives errors reported by gauge components.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *GaugeError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

