package index

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is. The typed errors below unwrap
// to these.
var (
	// ErrNotFound indicates no record (or no requested representation)
	// matched a lookup.
	ErrNotFound = errors.New("reference not found")

	// ErrAmbiguousReference indicates a should-be-unique lookup matched
	// more than one record.
	ErrAmbiguousReference = errors.New("ambiguous reference")

	// ErrInvalidFormat indicates the caller requested an unsupported
	// citation format.
	ErrInvalidFormat = errors.New("unknown citation format requested")
)

// NotFoundError reports a lookup that matched no record, or a record
// missing the requested representation. Query carries a representation of
// the failed lookup for diagnostics.
type NotFoundError struct {
	Message string
	Query   string
}

func (e *NotFoundError) Error() string {
	if e.Query != "" {
		return fmt.Sprintf("%s (query: %s)", e.Message, e.Query)
	}
	return e.Message
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// AmbiguousReferenceError reports a lookup that matched multiple records
// where at most one was expected.
type AmbiguousReferenceError struct {
	Message string
	Query   string
}

func (e *AmbiguousReferenceError) Error() string {
	if e.Query != "" {
		return fmt.Sprintf("%s (query: %s)", e.Message, e.Query)
	}
	return e.Message
}

func (e *AmbiguousReferenceError) Unwrap() error { return ErrAmbiguousReference }

// InvalidFormatError reports an unsupported citation format request.
type InvalidFormatError struct {
	Format string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("unknown citation format requested: %q", e.Format)
}

func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

// IsNotFound returns true if the error indicates a missing reference or
// representation.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAmbiguous returns true if the error indicates an ambiguous lookup.
func IsAmbiguous(err error) bool {
	return errors.Is(err, ErrAmbiguousReference)
}
