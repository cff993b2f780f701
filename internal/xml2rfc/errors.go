package xml2rfc

import "errors"

// ErrValidation is the sentinel all serializer validation failures unwrap
// to, for use with errors.Is.
var ErrValidation = errors.New("bibliographic input failed validation")

// ValidationError reports a bibliographic item or contributor that does
// not satisfy the serializer's structural preconditions.
type ValidationError struct {
	Message string
	Err     error // underlying field-level validation detail, if any
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
