// Package chat implements the portfolio assistant: a system prompt built from the
// portfolio data and a conversation relayed to the LLM.
package chat

import "fmt"

// Replies shown in place of a model answer
const (
	FallbackReply    = "I'm having trouble connecting right now."
	UnavailableReply = "Sorry, I can't access the AI brain right now. Please try again later."
	QuotaReply       = "⚠️ **System Update:** The AI is currently experiencing high traffic (Quota Limit Reached). Please try again in about a minute."
)

// RequestError represents a conversation that cannot be sent
type RequestError struct {
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid chat request: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid chat request: %s", e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// ReplyError represents a failed model call. Reply is the text to show the user instead.
type ReplyError struct {
	Reply string
	Quota bool
	Cause error
}

func (e *ReplyError) Error() string {
	if e.Quota {
		return fmt.Sprintf("assistant quota exceeded: %v", e.Cause)
	}
	return fmt.Sprintf("assistant unavailable: %v", e.Cause)
}

func (e *ReplyError) Unwrap() error {
	return e.Cause
}
