package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/portfolio-cv/internal/chat"
	"github.com/jonathan/portfolio-cv/internal/contact"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a feature the server was started without
type ErrUnavailable struct {
	Feature string
	Reason  string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s unavailable: %s", e.Feature, e.Reason)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		unavailable   *ErrUnavailable
		requestErr    *chat.RequestError
		inquiryErr    *contact.ValidationError
		replyErr      *chat.ReplyError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &requestErr), errors.As(err, &inquiryErr):
		return http.StatusBadRequest
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &replyErr):
		if replyErr.Quota {
			return http.StatusTooManyRequests
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
