package chat

import (
	"github.com/pkg/errors"

	"gpt-cli/internal/llm"
)

// Defaults is the immutable per-process request configuration. It is built
// once at startup and injected into the builder; nothing reads these values
// from ambient globals.
type Defaults struct {
	Model            string
	User             string
	Temperature      float32
	TopP             float32
	N                int
	PresencePenalty  float32
	FrequencyPenalty float32
}

// NewDefaults returns the documented request defaults for a model and user:
// temperature=1, top_p=1, n=1, zero penalties, stream off.
func NewDefaults(model, user string) Defaults {
	return Defaults{
		Model:       model,
		User:        user,
		Temperature: 1,
		TopP:        1,
		N:           1,
	}
}

// RequestBuilder assembles validated chat completion requests from a message
// sequence and the injected defaults. It has no side effects.
type RequestBuilder struct {
	defaults Defaults
}

func NewRequestBuilder(defaults Defaults) *RequestBuilder {
	return &RequestBuilder{defaults: defaults}
}

// Build produces a request carrying the given messages with every unset
// sampling field populated from the defaults. An empty message sequence or
// an out-of-range parameter fails here, before anything reaches the
// transport.
func (b *RequestBuilder) Build(messages []llm.ChatMessage) (*llm.ChatRequest, error) {
	if len(messages) == 0 {
		return nil, errors.New("cannot build a request from an empty conversation")
	}

	// Copy so later history growth cannot mutate an in-flight request.
	msgs := make([]llm.ChatMessage, len(messages))
	copy(msgs, messages)

	req := &llm.ChatRequest{
		Model:            b.defaults.Model,
		Messages:         msgs,
		Temperature:      b.defaults.Temperature,
		TopP:             b.defaults.TopP,
		N:                b.defaults.N,
		Stream:           false,
		PresencePenalty:  b.defaults.PresencePenalty,
		FrequencyPenalty: b.defaults.FrequencyPenalty,
		User:             b.defaults.User,
	}

	if err := req.Validate(); err != nil {
		return nil, errors.Wrap(err, "build request")
	}

	return req, nil
}
