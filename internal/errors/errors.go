package gerr

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("product variant not found")
)

// UpstreamFetchError is a transport or HTTP level failure of an external
// source. Payload keeps whatever diagnostic body the source attached.
type UpstreamFetchError struct {
	Source  string
	Payload string
	Err     error
}

func (e *UpstreamFetchError) Error() string {
	if e.Payload != "" {
		return fmt.Sprintf("%s: upstream fetch failed: %v: %s", e.Source, e.Err, e.Payload)
	}
	return fmt.Sprintf("%s: upstream fetch failed: %v", e.Source, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error { return e.Err }

// UpstreamShapeError means a source answered but the response was missing the
// expected structure. Body holds the raw response for diagnostics.
type UpstreamShapeError struct {
	Source string
	Body   string
}

func (e *UpstreamShapeError) Error() string {
	return fmt.Sprintf("%s: response missing expected structure: %s", e.Source, e.Body)
}

// ValidationError is bad caller input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
