package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/portfolio-cv/internal/llm"
	"github.com/jonathan/portfolio-cv/internal/types"
)

// MaxMessages bounds the history a single request may carry. Sessions send only their
// most recent MaxMessages messages.
const MaxMessages = 50

// Request is a conversation as the client holds it, optionally starting with the
// assistant's greeting.
type Request struct {
	Messages []llm.Message `json:"messages" validate:"required,min=1,max=50,dive"`
}

// Assistant answers visitor questions about one portfolio
type Assistant struct {
	client llm.Client
	system string
	tier   llm.ModelTier
	logger *zap.Logger
}

// Option configures an Assistant
type Option func(*Assistant)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(a *Assistant) { a.logger = l }
}

// WithTier selects the model tier
func WithTier(t llm.ModelTier) Option {
	return func(a *Assistant) { a.tier = t }
}

// NewAssistant builds the system prompt for p and returns an Assistant using client
func NewAssistant(client llm.Client, p *types.Portfolio, opts ...Option) (*Assistant, error) {
	if client == nil {
		return nil, errors.New("llm client is required")
	}
	if p == nil {
		return nil, errors.New("portfolio is required")
	}
	system, err := SystemPrompt(p)
	if err != nil {
		return nil, err
	}

	a := &Assistant{client: client, system: system, tier: llm.TierStandard}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	return a, nil
}

// Reply sends the conversation and returns the model's answer. An empty answer becomes
// FallbackReply. Provider failures are returned as *ReplyError carrying the text to show
// instead.
func (a *Assistant) Reply(ctx context.Context, req Request) (string, error) {
	messages, err := prepareHistory(req)
	if err != nil {
		return "", err
	}

	last := &messages[len(messages)-1]
	check := CheckBasicHeuristics(last.Text)
	logInjectionWarning(a.logger, check, "chat message")
	if !check.IsSafe {
		last.Text = StripInjectionAttempts(last.Text)
	}

	text, err := a.client.Chat(ctx, llm.ChatRequest{
		SystemInstruction: a.system,
		Messages:          messages,
		Tier:              a.tier,
	})
	if err != nil {
		quota := llm.IsQuotaError(err)
		a.logger.Error("chat request failed",
			zap.Bool("quota", quota),
			zap.Int("messages", len(messages)),
			zap.Error(err))
		reply := UnavailableReply
		if quota {
			reply = QuotaReply
		}
		return "", &ReplyError{Reply: reply, Quota: quota, Cause: err}
	}

	if strings.TrimSpace(text) == "" {
		a.logger.Warn("empty chat reply", zap.String("model", a.client.GetModel(a.tier)))
		return FallbackReply, nil
	}
	return text, nil
}

// prepareHistory validates req and drops a leading assistant message so the
// conversation starts with the user
func prepareHistory(req Request) ([]llm.Message, error) {
	if err := validator.New().Struct(req); err != nil {
		return nil, &RequestError{Message: "malformed conversation", Cause: err}
	}

	messages := req.Messages
	if messages[0].Role == llm.RoleModel {
		messages = messages[1:]
	}
	if len(messages) == 0 {
		return nil, &RequestError{Message: "conversation has no user message"}
	}
	if messages[len(messages)-1].Role != llm.RoleUser {
		return nil, &RequestError{Message: "last message must be from the user"}
	}

	out := make([]llm.Message, len(messages))
	copy(out, messages)
	return out, nil
}

// Session is a conversation kept by a long-lived client such as the terminal chat
type Session struct {
	ID       string
	Messages []llm.Message
}

// NewSession starts a conversation with the assistant's greeting
func NewSession(greeting string) *Session {
	s := &Session{ID: uuid.NewString()}
	if greeting != "" {
		s.Messages = append(s.Messages, llm.Message{Role: llm.RoleModel, Text: greeting})
	}
	return s
}

// Send appends text as a user message and returns the assistant's reply. Only successful
// replies are kept in the history; on failure the user message is removed again.
func (a *Assistant) Send(ctx context.Context, s *Session, text string) (string, error) {
	s.Messages = append(s.Messages, llm.Message{Role: llm.RoleUser, Text: text})
	history := s.Messages
	if len(history) > MaxMessages {
		history = history[len(history)-MaxMessages:]
	}
	reply, err := a.Reply(ctx, Request{Messages: history})
	if err != nil {
		s.Messages = s.Messages[:len(s.Messages)-1]
		return "", err
	}
	s.Messages = append(s.Messages, llm.Message{Role: llm.RoleModel, Text: reply})
	a.logger.Debug("chat turn", zap.String("session", s.ID), zap.Int("messages", len(s.Messages)))
	return reply, nil
}
