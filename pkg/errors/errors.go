package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ErrorType categorizes different error types
type ErrorType string

const (
	// Network errors
	ErrorTypeNetwork ErrorType = "network"
	ErrorTypeTimeout ErrorType = "timeout"

	// Authentication errors
	ErrorTypeAuthRequired   ErrorType = "auth_required"
	ErrorTypeUnauthorized   ErrorType = "unauthorized"
	ErrorTypeForbidden      ErrorType = "forbidden"
	ErrorTypeSessionExpired ErrorType = "session_expired"

	// Validation errors
	ErrorTypeValidation ErrorType = "validation"

	// Server errors
	ErrorTypeBadRequest ErrorType = "bad_request"
	ErrorTypeServer     ErrorType = "server"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeRateLimit  ErrorType = "rate_limit"

	ErrorTypeUnknown ErrorType = "unknown"
)

// CLIError represents a structured error with context
type CLIError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
	StatusCode int
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// WithSuggestion adds a helpful suggestion to the error
func (e *CLIError) WithSuggestion(suggestion string) *CLIError {
	e.Suggestion = suggestion
	return e
}

// HasSuggestion returns true if the error has a suggestion
func (e *CLIError) HasSuggestion() bool {
	return e.Suggestion != ""
}

// Unwrap returns the underlying error
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// Is matches CLIErrors by type so callers can test with errors.Is(err, errors.AuthRequired())
func (e *CLIError) Is(target error) bool {
	var t *CLIError
	if !errors.As(target, &t) {
		return false
	}
	return t.Type == e.Type
}

// NewCLIError creates a new CLI error
func NewCLIError(errorType ErrorType, message string, cause error) *CLIError {
	return &CLIError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NetworkError creates a network error
func NetworkError(message string, cause error) *CLIError {
	err := NewCLIError(ErrorTypeNetwork, message, cause)
	err.Suggestion = "Check your connection and the api.base_url setting, then try again."
	return err
}

// TimeoutError creates a timeout error
func TimeoutError(cause error) *CLIError {
	err := NewCLIError(ErrorTypeTimeout, "Request timed out", cause)
	err.Suggestion = "The server is taking too long to respond. Try again in a moment."
	return err
}

// AuthRequired is returned when an action needs a logged-in user
func AuthRequired() *CLIError {
	err := NewCLIError(ErrorTypeAuthRequired, "You need to be logged in to do that", nil)
	err.Suggestion = "Run 'meet-cli auth login' first."
	return err
}

// SessionExpiredError creates a session expired error
func SessionExpiredError() *CLIError {
	err := NewCLIError(ErrorTypeSessionExpired, "Your session has expired", nil)
	err.Suggestion = "Run 'meet-cli auth login' to start a new session."
	return err
}

// UnauthorizedError creates an unauthorized error
func UnauthorizedError(message string) *CLIError {
	if message == "" {
		message = "You don't have permission to perform this action"
	}
	err := NewCLIError(ErrorTypeUnauthorized, message, nil)
	err.StatusCode = 401
	err.Suggestion = "Your token may be invalid. Run 'meet-cli auth login' again."
	return err
}

// ForbiddenError creates a forbidden error
func ForbiddenError() *CLIError {
	err := NewCLIError(ErrorTypeForbidden, "Access denied", nil)
	err.StatusCode = 403
	return err
}

// ValidationError creates a validation error
func ValidationError(field, reason string) *CLIError {
	message := fmt.Sprintf("Validation error: %s - %s", field, reason)
	return NewCLIError(ErrorTypeValidation, message, nil)
}

// ServerError creates a server error
func ServerError(message string) *CLIError {
	if message == "" {
		message = "Server error"
	}
	err := NewCLIError(ErrorTypeServer, message, nil)
	err.Suggestion = "The server encountered an error. Try again in a few moments."
	return err
}

// NotFoundError creates a not found error
func NotFoundError(resourceType, identifier string) *CLIError {
	return NewCLIError(ErrorTypeNotFound,
		fmt.Sprintf("%s not found: %s", resourceType, identifier),
		nil)
}

// ConflictError creates a conflict error
func ConflictError(message string) *CLIError {
	err := NewCLIError(ErrorTypeConflict, message, nil)
	err.StatusCode = 409
	err.Suggestion = "This resource already exists. Try a different name."
	return err
}

// statusError is satisfied by API errors that carry an HTTP status
type statusError interface {
	error
	HTTPStatus() int
}

// CategorizeError converts any error into a CLIError
func CategorizeError(err error) *CLIError {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var se statusError
	if errors.As(err, &se) {
		return fromStatus(se)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return TimeoutError(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return TimeoutError(err)
		}
		return NetworkError("Could not reach the server", err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return NetworkError("Could not reach the server", err)
	}

	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "connection refused"):
		return NetworkError("Could not connect to server. Make sure it's running.", err)
	case strings.Contains(errMsg, "timeout"):
		return TimeoutError(err)
	default:
		return NewCLIError(ErrorTypeUnknown, errMsg, err)
	}
}

func fromStatus(se statusError) *CLIError {
	msg := se.Error()
	var out *CLIError
	switch code := se.HTTPStatus(); {
	case code == 400:
		out = NewCLIError(ErrorTypeBadRequest, msg, se)
	case code == 401:
		out = UnauthorizedError(msg)
		out.Cause = se
	case code == 403:
		out = ForbiddenError()
		out.Message = msg
		out.Cause = se
	case code == 404:
		out = NewCLIError(ErrorTypeNotFound, msg, se)
	case code == 409:
		out = ConflictError(msg)
		out.Cause = se
	case code == 429:
		out = NewCLIError(ErrorTypeRateLimit, msg, se)
		out.Suggestion = "Too many requests. Wait a moment and try again."
	case code >= 500:
		out = ServerError(msg)
		out.Cause = se
	default:
		out = NewCLIError(ErrorTypeUnknown, msg, se)
	}
	out.StatusCode = se.HTTPStatus()
	return out
}

// IsType reports whether err categorizes as the given type
func IsType(err error, t ErrorType) bool {
	if err == nil {
		return false
	}
	return CategorizeError(err).Type == t
}

// FormatError returns a user-friendly error message
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	cliErr := CategorizeError(err)
	var sb strings.Builder

	sb.WriteString("Error")
	if cliErr.Type != ErrorTypeUnknown {
		sb.WriteString(" (")
		sb.WriteString(string(cliErr.Type))
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(cliErr.Message)
	sb.WriteString("\n")

	if cliErr.HasSuggestion() {
		sb.WriteString("Suggestion: ")
		sb.WriteString(cliErr.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}
