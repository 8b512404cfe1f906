package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// ErrNoAPIKey is returned when a client is created without credentials
var ErrNoAPIKey = errors.New("API key is required")

// Error represents a failed call to the provider
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("llm error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// QuotaError reports that the provider rejected a call for rate or quota reasons
type QuotaError struct {
	Cause error
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("llm quota exceeded: %v", e.Cause)
}

func (e *QuotaError) Unwrap() error {
	return e.Cause
}

// IsQuotaError reports whether err is a rate limit or exhausted quota response, either
// as a typed 429 or by the provider's message text.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	var qe *QuotaError
	if errors.As(err, &qe) {
		return true
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "Resource has been exhausted") ||
		strings.Contains(msg, "ResourceExhausted")
}

// classify wraps a provider error as a QuotaError or an Error
func classify(message string, err error) error {
	if IsQuotaError(err) {
		return &QuotaError{Cause: err}
	}
	return &Error{Message: message, Cause: err}
}
