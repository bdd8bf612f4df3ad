package tvcontent

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrDocumentNotFound indicates the persisted document does not exist yet
	ErrDocumentNotFound = errors.New("content document not found")

	// ErrContentNotFound indicates no content item matched the requested id
	ErrContentNotFound = errors.New("content not found")

	// ErrUpdateNotSupported indicates an attempt to modify a content item in place
	ErrUpdateNotSupported = errors.New("update not supported")

	// ErrInvalidContentID indicates a content id that is not an integer
	ErrInvalidContentID = errors.New("invalid content id")
)

// Store operations reported by StoreError.
const (
	OpRead   = "read"
	OpDecode = "decode"
	OpEncode = "encode"
	OpWrite  = "write"
)

// StoreError represents a failure while loading or persisting the document
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("document %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreOp reports whether err is a StoreError for the given operation.
func IsStoreOp(err error, op string) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr) && storeErr.Op == op
}

// ValidationDetail describes one rejected field.
type ValidationDetail struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path"`
	Type    string        `json:"type"`
}

// ValidationError is returned when a request does not match the content schema.
// It is rendered to clients as-is.
type ValidationError struct {
	Name    string             `json:"name"`
	Message string             `json:"message"`
	Details []ValidationDetail `json:"details"`
}

// NewValidationError creates a validation error from field details.
func NewValidationError(details ...ValidationDetail) *ValidationError {
	ve := &ValidationError{
		Name:    "ValidationError",
		Details: details,
	}
	for i, d := range details {
		if i > 0 {
			ve.Message += ". "
		}
		ve.Message += d.Message
	}
	if ve.Details == nil {
		ve.Details = []ValidationDetail{}
	}
	return ve
}

// NewDecodeError wraps a request body that could not be decoded.
func NewDecodeError(err error) *ValidationError {
	return NewValidationError(ValidationDetail{
		Message: fmt.Sprintf("request body is invalid: %v", err),
		Path:    []interface{}{},
		Type:    "object.base",
	})
}

func (e *ValidationError) Error() string {
	return e.Message
}
