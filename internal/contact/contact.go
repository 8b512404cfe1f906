// Package contact turns a contact form submission into a mail link addressed to the
// portfolio owner.
package contact

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Inquiry is a contact form submission
type Inquiry struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ValidationError represents an incomplete or malformed inquiry
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid inquiry: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid inquiry: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Validate validates the Inquiry using the validator. Fields are trimmed first.
func (i *Inquiry) Validate() error {
	i.Name = strings.TrimSpace(i.Name)
	i.Email = strings.TrimSpace(i.Email)
	i.Message = strings.TrimSpace(i.Message)

	validate := validator.New()
	if err := validate.Struct(i); err != nil {
		return &ValidationError{Message: "missing or malformed fields", Cause: err}
	}
	return nil
}

// Subject returns the mail subject line
func (i Inquiry) Subject() string {
	return "Portfolio Inquiry from " + i.Name
}

// Body returns the mail body
func (i Inquiry) Body() string {
	return fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", i.Name, i.Email, i.Message)
}

// MailtoLink validates the inquiry and returns a mailto: URL to the recipient with the
// subject and body percent-encoded
func MailtoLink(to string, i Inquiry) (string, error) {
	to = strings.TrimSpace(to)
	if err := ValidateRecipient(to); err != nil {
		return "", err
	}
	if err := i.Validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s", to, encodeComponent(i.Subject()), encodeComponent(i.Body())), nil
}

// ValidateRecipient checks that to is a usable mail address
func ValidateRecipient(to string) error {
	if err := validator.New().Var(strings.TrimSpace(to), "required,email"); err != nil {
		return &ValidationError{Message: "recipient address is invalid", Cause: err}
	}
	return nil
}

// encodeComponent escapes s the way mail clients expect query components: spaces as
// %20, not '+'
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
