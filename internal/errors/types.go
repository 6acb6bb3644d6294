// Package errors defines the structured error taxonomy shared by the bridge
// components and its mapping onto HTTP status codes.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies the class of a bridge failure.
type ErrorCode string

const (
	// ErrCodePolicyViolation means a shell command matched a blocked pattern.
	// The command was never executed.
	ErrCodePolicyViolation ErrorCode = "POLICY_VIOLATION"
	// ErrCodeValidation means the request body was malformed.
	ErrCodeValidation ErrorCode = "VALIDATION"
	// ErrCodeExecution means a subprocess or OS call failed after policy passed.
	ErrCodeExecution ErrorCode = "EXECUTION"
	// ErrCodeCapabilityUnavailable means a required OS feature or permission
	// is missing on this host.
	ErrCodeCapabilityUnavailable ErrorCode = "CAPABILITY_UNAVAILABLE"
	// ErrCodePanicCaptured means work on the affinity thread panicked.
	ErrCodePanicCaptured ErrorCode = "PANIC_CAPTURED"
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeInternal      ErrorCode = "INTERNAL"
)

// Error is a bridge error carrying a code and an optional cause.
type Error struct {
	Code       ErrorCode
	Message    string
	Underlying error
}

// New creates an error with the given code.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to err. Wrap(nil, ...) returns nil.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Underlying: err}
}

func (e *Error) Error() string {
	if e.Underlying == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Underlying.Error()
	}
	return e.Message + ": " + e.Underlying.Error()
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is reports whether target is a *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Message == ""
}

// Sentinel values usable with errors.Is to test for a code.
var (
	PolicyViolation       = &Error{Code: ErrCodePolicyViolation}
	Validation            = &Error{Code: ErrCodeValidation}
	Execution             = &Error{Code: ErrCodeExecution}
	CapabilityUnavailable = &Error{Code: ErrCodeCapabilityUnavailable}
	PanicCaptured         = &Error{Code: ErrCodePanicCaptured}
)

// CodeOf returns the code of the outermost *Error in err's chain,
// or ErrCodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// HTTPStatus maps err onto the status code the control server responds with.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodePolicyViolation:
		return http.StatusForbidden
	case ErrCodeCapabilityUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
