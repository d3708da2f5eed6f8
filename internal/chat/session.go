package chat

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"gpt-cli/internal/llm"
	"gpt-cli/pkg/logging/logging"
)

// Session owns the conversation history for one process invocation. The
// history is append-only and resent in full on every turn because the
// backing service is stateless between calls. It grows without bound for
// the life of the process; nothing truncates, summarizes, or windows it.
// That is a known limitation carried over deliberately.
//
// A Session is not safe for concurrent use; the conversation loop is the
// sole caller on a single goroutine.
type Session struct {
	client  llm.Client
	builder *RequestBuilder
	history []llm.ChatMessage
}

func NewSession(client llm.Client, builder *RequestBuilder) *Session {
	return &Session{
		client:  client,
		builder: builder,
	}
}

// AddSystemPrompt appends a system-role instruction turn. Call it before the
// first user turn so the instructions lead the conversation.
func (s *Session) AddSystemPrompt(prompt string) {
	s.history = append(s.history, llm.ChatMessage{Role: llm.RoleSystem, Content: prompt})
}

// History returns a copy of the conversation so far.
func (s *Session) History() []llm.ChatMessage {
	out := make([]llm.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// Send appends text as a user turn, ships the entire accumulated history,
// appends the assistant's reply, and returns its content. On failure the
// user turn is rolled back so a retry of the same line re-sends the same
// conversation.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	logger := logging.L(ctx)

	s.history = append(s.history, llm.ChatMessage{Role: llm.RoleUser, Content: text})

	req, err := s.builder.Build(s.history)
	if err != nil {
		s.history = s.history[:len(s.history)-1]
		return "", err
	}

	logger.Debug("sending turn",
		zap.Int("history_len", len(s.history)),
		zap.Int("content_len", len(text)),
	)

	resp, err := s.client.ChatCompletion(ctx, req)
	if err != nil {
		s.history = s.history[:len(s.history)-1]
		return "", errors.Wrap(err, "send turn")
	}

	reply := resp.Choices[0].Message
	s.history = append(s.history, reply)

	logger.Debug("received turn",
		zap.String("finish_reason", resp.Choices[0].FinishReason),
		zap.Int("content_len", len(reply.Content)),
	)

	return reply.Content, nil
}
