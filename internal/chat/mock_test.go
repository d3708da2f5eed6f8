package chat

import (
	"context"

	"gpt-cli/internal/llm"
)

// scriptedClient is a mock transport that replays canned replies and records
// every request it sees, so tests can assert on call counts and on the exact
// history each turn shipped.
type scriptedClient struct {
	replies []string
	errs    map[int]error // call index (0-based) -> error to return
	reqs    []*llm.ChatRequest
}

func (c *scriptedClient) ChatCompletion(_ context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	call := len(c.reqs)
	c.reqs = append(c.reqs, req)

	if err, ok := c.errs[call]; ok {
		return nil, err
	}

	content := "ok"
	if call < len(c.replies) {
		content = c.replies[call]
	}

	return &llm.ChatResponse{
		Choices: []llm.ChatChoice{
			{
				Index:        0,
				Message:      llm.ChatMessage{Role: llm.RoleAssistant, Content: content},
				FinishReason: "stop",
			},
		},
		Usage: &llm.Usage{PromptTokens: 1, CompletionTokens: 1, TotalTokens: 2},
	}, nil
}

func (c *scriptedClient) calls() int { return len(c.reqs) }
