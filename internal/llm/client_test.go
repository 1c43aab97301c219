package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type generateCall struct {
	model  string
	prompt string
	config *genai.GenerateContentConfig
}

// fakeGenerator replays canned responses in order and records every call
type fakeGenerator struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     []generateCall
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var prompt string
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		prompt = contents[0].Parts[0].Text
	}
	f.calls = append(f.calls, generateCall{model: model, prompt: prompt, config: config})

	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return &genai.GenerateContentResponse{}, nil
	}
	text := f.responses[0]
	f.responses = f.responses[1:]
	return textResponse(text), nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: text}},
			},
		}},
	}
}

func newTestClient(gen *fakeGenerator) *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newClient(gen, &Config{Model: "gemini-test", Temperature: 0.2}, logger)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := NewClient(context.Background(), &Config{}, logger)
	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestNewClient_DefaultModel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := newClient(&fakeGenerator{}, &Config{}, logger)
	assert.Equal(t, DefaultModel, c.model)
}

func TestClient_Generate(t *testing.T) {
	t.Run("passes request settings", func(t *testing.T) {
		gen := &fakeGenerator{responses: []string{"  hello  "}}
		c := newTestClient(gen)

		text, err := c.generate(context.Background(), request{
			system:    "sys",
			prompt:    "prompt",
			maxTokens: 42,
			schema:    entitiesSchema,
		})
		require.NoError(t, err)
		assert.Equal(t, "hello", text)

		require.Len(t, gen.calls, 1)
		call := gen.calls[0]
		assert.Equal(t, "gemini-test", call.model)
		assert.Equal(t, "prompt", call.prompt)
		assert.Equal(t, int32(42), call.config.MaxOutputTokens)
		assert.Equal(t, "application/json", call.config.ResponseMIMEType)
		assert.Same(t, entitiesSchema, call.config.ResponseSchema)
		require.NotNil(t, call.config.Temperature)
		assert.InDelta(t, 0.2, *call.config.Temperature, 0.0001)
		require.NotNil(t, call.config.SystemInstruction)
		assert.Equal(t, "sys", call.config.SystemInstruction.Parts[0].Text)
	})

	t.Run("plain text request has no schema", func(t *testing.T) {
		gen := &fakeGenerator{responses: []string{"ok"}}
		c := newTestClient(gen)

		_, err := c.generate(context.Background(), request{prompt: "p", maxTokens: 10})
		require.NoError(t, err)
		assert.Empty(t, gen.calls[0].config.ResponseMIMEType)
		assert.Nil(t, gen.calls[0].config.ResponseSchema)
		assert.Nil(t, gen.calls[0].config.SystemInstruction)
	})

	t.Run("upstream error", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("quota exceeded")}
		c := newTestClient(gen)

		_, err := c.generate(context.Background(), request{prompt: "p"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("empty response", func(t *testing.T) {
		gen := &fakeGenerator{}
		c := newTestClient(gen)

		_, err := c.generate(context.Background(), request{prompt: "p"})
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})
}
