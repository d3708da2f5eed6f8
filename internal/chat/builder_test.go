package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpt-cli/internal/llm"
)

func TestBuildPopulatesDefaults(t *testing.T) {
	b := NewRequestBuilder(NewDefaults("gpt-3.5-turbo", "gpt-cli"))

	msgs := []llm.ChatMessage{
		{Role: llm.RoleSystem, Content: "be terse"},
		{Role: llm.RoleUser, Content: "hello"},
	}

	req, err := b.Build(msgs)
	require.NoError(t, err)

	assert.Equal(t, "gpt-3.5-turbo", req.Model)
	assert.Len(t, req.Messages, len(msgs))
	assert.Equal(t, msgs, req.Messages)
	assert.Equal(t, float32(1), req.Temperature)
	assert.Equal(t, float32(1), req.TopP)
	assert.Equal(t, 1, req.N)
	assert.False(t, req.Stream)
	assert.Zero(t, req.PresencePenalty)
	assert.Zero(t, req.FrequencyPenalty)
	assert.Equal(t, "gpt-cli", req.User)
}

func TestBuildCopiesMessages(t *testing.T) {
	b := NewRequestBuilder(NewDefaults("gpt-3.5-turbo", "gpt-cli"))

	msgs := make([]llm.ChatMessage, 1, 4)
	msgs[0] = llm.ChatMessage{Role: llm.RoleUser, Content: "first"}

	req, err := b.Build(msgs)
	require.NoError(t, err)

	// Growing the history must not leak into an already built request.
	msgs = append(msgs, llm.ChatMessage{Role: llm.RoleAssistant, Content: "second"})
	assert.Len(t, req.Messages, 1)
	assert.Equal(t, "first", req.Messages[0].Content)
}

func TestBuildEmptyConversation(t *testing.T) {
	b := NewRequestBuilder(NewDefaults("gpt-3.5-turbo", "gpt-cli"))

	_, err := b.Build(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty conversation")
}

func TestBuildRejectsOutOfRangeDefaults(t *testing.T) {
	d := NewDefaults("gpt-3.5-turbo", "gpt-cli")
	d.Temperature = 3
	b := NewRequestBuilder(d)

	_, err := b.Build([]llm.ChatMessage{{Role: llm.RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temperature")
}

func TestBuildRejectsUnknownRole(t *testing.T) {
	b := NewRequestBuilder(NewDefaults("gpt-3.5-turbo", "gpt-cli"))

	_, err := b.Build([]llm.ChatMessage{{Role: "narrator", Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid role")
}
