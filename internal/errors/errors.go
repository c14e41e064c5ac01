package errors

import "fmt"

// ErrorCode classifies a concierge error.
type ErrorCode string

const (
	ErrValidation       ErrorCode = "VALIDATION"        // 400
	ErrRateLimited      ErrorCode = "RATE_LIMITED"      // 429
	ErrBackendAuth      ErrorCode = "BACKEND_AUTH"      // 401
	ErrBackendCapacity  ErrorCode = "BACKEND_CAPACITY"  // 503
	ErrBackendTransient ErrorCode = "BACKEND_TRANSIENT" // 500
	ErrSinkWrite        ErrorCode = "SINK_WRITE"        // logged only, never surfaced
)

// ChatError is a structured error carrying an HTTP status and a short,
// non-technical message safe to show to the end user. The underlying
// cause stays server-side unless the service runs in dev mode.
type ChatError struct {
	Code    ErrorCode
	Status  int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause for errors.Is/As chains.
func (e *ChatError) Unwrap() error {
	return e.Cause
}

// NewValidation creates a 400 error for malformed or missing input.
func NewValidation(msg string) *ChatError {
	return &ChatError{
		Code:    ErrValidation,
		Status:  400,
		Message: msg,
	}
}

// NewRateLimited creates a 429 error for callers over their quota.
func NewRateLimited() *ChatError {
	return &ChatError{
		Code:    ErrRateLimited,
		Status:  429,
		Message: "Too many requests. Please slow down and try again in a minute.",
	}
}

// NewBackendAuth creates a 401 error for invalid backend credentials.
func NewBackendAuth(cause error) *ChatError {
	return &ChatError{
		Code:    ErrBackendAuth,
		Status:  401,
		Message: "Authentication error. Please contact support.",
		Cause:   cause,
	}
}

// NewBackendCapacity creates a 503 error for upstream quota exhaustion.
func NewBackendCapacity(cause error) *ChatError {
	return &ChatError{
		Code:    ErrBackendCapacity,
		Status:  503,
		Message: "Service temporarily unavailable. Please try again later.",
		Cause:   cause,
	}
}

// NewBackendTransient creates a 500 error for any other upstream failure.
func NewBackendTransient(cause error) *ChatError {
	return &ChatError{
		Code:    ErrBackendTransient,
		Status:  500,
		Message: "I apologize, but I encountered a technical issue. Please try again in a moment.",
		Cause:   cause,
	}
}

// NewSinkWrite wraps a lead persistence failure. It is logged and swallowed
// by the relay, never returned to the chat caller.
func NewSinkWrite(cause error) *ChatError {
	return &ChatError{
		Code:    ErrSinkWrite,
		Status:  500,
		Message: "Failed to save lead",
		Cause:   cause,
	}
}

// Is checks whether an error is a ChatError with the given code.
func Is(err error, code ErrorCode) bool {
	if cErr, ok := err.(*ChatError); ok {
		return cErr.Code == code
	}
	return false
}
