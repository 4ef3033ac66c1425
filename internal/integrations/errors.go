package integrations

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalized failure taxonomy for collaborator calls.
type ErrorCategory string

const (
	// ErrorTimeout indicates the collaborator took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates the collaborator returned malformed data
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorRejected indicates the collaborator understood the request and refused it
	ErrorRejected ErrorCategory = "rejected"

	// ErrorOutage indicates the collaborator is unavailable
	ErrorOutage ErrorCategory = "outage"

	// ErrorContractMismatch indicates an unexpected response shape or status
	ErrorContractMismatch ErrorCategory = "contract_mismatch"

	// ErrorNotFound indicates the requested record doesn't exist
	ErrorNotFound ErrorCategory = "not_found"

	// ErrorRateLimited indicates too many requests
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorInternal indicates an unexpected internal error
	ErrorInternal ErrorCategory = "internal"
)

// Error wraps collaborator failures with a normalized category.
type Error struct {
	Category     ErrorCategory
	Collaborator string
	Message      string
	Underlying   error
	Retryable    bool
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s [%s]: %s: %v", e.Collaborator, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Collaborator, e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewError creates a categorized error. Timeouts, outages and rate limits
// are retryable.
func NewError(category ErrorCategory, collaborator, message string, underlying error) *Error {
	retryable := category == ErrorTimeout ||
		category == ErrorOutage ||
		category == ErrorRateLimited

	return &Error{
		Category:     category,
		Collaborator: collaborator,
		Message:      message,
		Underlying:   underlying,
		Retryable:    retryable,
	}
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable
	}
	return false
}

// CategoryOf extracts the error category from an error.
func CategoryOf(err error) ErrorCategory {
	var e *Error
	if errors.As(err, &e) {
		return e.Category
	}
	return ErrorInternal
}

// MessageOf returns the collaborator-supplied message, if any.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
