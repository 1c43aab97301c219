// Package llm talks to Gemini through google.golang.org/genai. Client serves
// both as the assistant's language model (entity extraction, reply writing)
// and as its semantic engine (row filtering, aggregation).
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	// DefaultModel is used when the configuration leaves the model empty
	DefaultModel = "gemini-2.0-flash"

	extractMaxTokens  = 100
	replyMaxTokens    = 150
	semanticMaxTokens = 512
)

// ErrEmptyResponse is returned when the model produced no text
var ErrEmptyResponse = errors.New("model returned an empty response")

// Config holds Gemini client configuration
type Config struct {
	APIKey      string
	Model       string
	Timeout     time.Duration
	Temperature float32
}

// generator is the slice of *genai.Models the client uses
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client is safe for concurrent use
type Client struct {
	models      generator
	model       string
	temperature float32
	logger      *slog.Logger
}

// NewClient creates a Gemini client
func NewClient(ctx context.Context, config *Config, logger *slog.Logger) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}
	}

	gc, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	c := newClient(gc.Models, config, logger)

	logger.Info("Gemini client initialized",
		slog.String("model", c.model),
		slog.Duration("timeout", config.Timeout),
	)

	return c, nil
}

func newClient(models generator, config *Config, logger *slog.Logger) *Client {
	model := config.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		models:      models,
		model:       model,
		temperature: config.Temperature,
		logger:      logger,
	}
}

// request holds one generateContent call
type request struct {
	system    string
	prompt    string
	maxTokens int32
	schema    *genai.Schema
}

// generate issues a single call. There is no retry: callers decide what a
// failure means.
func (c *Client) generate(ctx context.Context, req request) (string, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: req.maxTokens,
	}
	if c.temperature > 0 {
		config.Temperature = genai.Ptr(c.temperature)
	}
	if req.system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.system}},
		}
	}
	if req.schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = req.schema
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(req.prompt), config)
	if err != nil {
		c.logger.Error("Gemini request failed",
			slog.String("model", c.model),
			slog.Any("error", err),
		)
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())

	c.logger.Debug("Gemini response",
		slog.String("model", c.model),
		slog.Int("prompt_len", len(req.prompt)),
		slog.String("response", text),
		slog.Duration("latency", time.Since(start)),
	)

	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
