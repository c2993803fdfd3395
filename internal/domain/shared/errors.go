package shared

import (
	"errors"
	"fmt"
)

// Error codes shared by every bounded context
const (
	CodeNotFound                 = "NOT_FOUND"
	CodeValidation               = "VALIDATION_ERROR"
	CodeInsufficientStock        = "INSUFFICIENT_STOCK"
	CodeInvalidPrice             = "INVALID_PRICE"
	CodeReturnExceedsOutstanding = "RETURN_EXCEEDS_OUTSTANDING"
	CodeInvalidTransition        = "INVALID_TRANSITION"
	CodeConcurrencyConflict      = "CONCURRENCY_CONFLICT"
	CodeImportInUse              = "IMPORT_IN_USE"
	CodeProductInUse             = "PRODUCT_IN_USE"
	CodeDuplicateRequest         = "DUPLICATE_REQUEST"
	CodeAlreadyExists            = "ALREADY_EXISTS"
)

// DomainError represents a domain-level error.
// Details carries the context a caller needs to explain the rejection
// (entity id, requested vs. available quantity).
type DomainError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is(err, ErrInsufficientStock) matches any instance carrying details.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithDetail returns a copy of the error with an extra detail attached
func (e *DomainError) WithDetail(key string, value any) *DomainError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &DomainError{Code: e.Code, Message: e.Message, Details: details, Err: e.Err}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorWithDetails creates a new domain error with context details
func NewDomainErrorWithDetails(code, message string, details map[string]any) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// WrapDomainError wraps a cause with a domain error code
func WrapDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors
var (
	ErrNotFound                 = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists            = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrValidation               = NewDomainError(CodeValidation, "Invalid input provided")
	ErrConcurrencyConflict      = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrInsufficientStock        = NewDomainError(CodeInsufficientStock, "Insufficient stock available")
	ErrInvalidPrice             = NewDomainError(CodeInvalidPrice, "Product price must be greater than zero")
	ErrReturnExceedsOutstanding = NewDomainError(CodeReturnExceedsOutstanding, "Returned quantity exceeds outstanding containers")
	ErrInvalidTransition        = NewDomainError(CodeInvalidTransition, "Status transition is not allowed")
	ErrImportInUse              = NewDomainError(CodeImportInUse, "Import stock has already been consumed")
	ErrProductInUse             = NewDomainError(CodeProductInUse, "Product has stock or movement history")
	ErrDuplicateRequest         = NewDomainError(CodeDuplicateRequest, "Request has already been processed")
)

// NewNotFoundError builds a NOT_FOUND error for the given entity
func NewNotFoundError(entity string, id any) *DomainError {
	return NewDomainErrorWithDetails(CodeNotFound, fmt.Sprintf("%s not found", entity), map[string]any{
		"entity": entity,
		"id":     fmt.Sprint(id),
	})
}

// NewValidationError builds a VALIDATION_ERROR with a message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// AsDomainError extracts a DomainError from err, if present
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
