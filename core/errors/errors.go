// Package errors provides standardized error types and helpers for the pubtator codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrParse indicates malformed PubTator input
	ErrParse = errors.New("parse error")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported indicates an unsupported operation or format
	ErrUnsupported = errors.New("unsupported")
)

// ParseError represents a malformed line or structural violation in
// PubTator input. Line is the 1-based index of the offending line.
type ParseError struct {
	Line    int    // 1-based line index in the input stream
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrParse
}

// ValidationError represents an annotation payload that indicates a
// producer bug, such as a normalization field with no alphanumeric
// content. Unlike text/offset mismatches, these fail loudly.
type ValidationError struct {
	DocID   string // Document the failing annotation belongs to
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.DocID != "" {
		return fmt.Sprintf("validation failed in %s: %s", e.DocID, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// UnsupportedError represents an operation a serialization format has
// no representation for, such as document-level relation annotations
// in standoff output.
type UnsupportedError struct {
	Format  string // Output format (e.g., "standoff", "json")
	Feature string // Feature that is unsupported
}

func (e *UnsupportedError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("%s format does not support %s", e.Format, e.Feature)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper functions for creating common errors

// NewParse creates a ParseError for the given 1-based line index.
func NewParse(line int, message string) *ParseError {
	return &ParseError{
		Line:    line,
		Message: message,
	}
}

// NewParsef creates a ParseError with a formatted message.
func NewParsef(line int, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewValidation creates a ValidationError
func NewValidation(docID, message string) *ValidationError {
	return &ValidationError{
		DocID:   docID,
		Message: message,
	}
}

// NewUnsupported creates an UnsupportedError
func NewUnsupported(format, feature string) *UnsupportedError {
	return &UnsupportedError{
		Format:  format,
		Feature: feature,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
