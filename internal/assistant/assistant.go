// Package assistant answers chat questions about job status.
//
// A message is either a greeting, answered with a canned reply, or an inquiry.
// An inquiry loads the job table, asks the language model for a job id or
// name, retrieves one fact by exactly one strategy (id, name, or semantic
// filter+aggregate over the table) and has the model phrase the reply.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Kind tells greetings and inquiries apart.
type Kind string

const (
	KindGreeting Kind = "greeting"
	KindInquiry  Kind = "inquiry"
)

// Reply is the outcome of one chat exchange.
type Reply struct {
	Text     string
	Kind     Kind
	Strategy Strategy
}

// InternalError wraps failures the assistant could not turn into a reply.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Err.Error()
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Dependencies holds the collaborators of an Assistant
type Dependencies struct {
	Store  JobStore
	Model  LanguageModel
	Engine SemanticEngine
	Logger *slog.Logger
}

// Assistant composes greeting detection, retrieval and reply generation.
// It holds no per-request state and is safe for concurrent use.
type Assistant struct {
	store  JobStore
	model  LanguageModel
	engine SemanticEngine
	logger *slog.Logger
}

// New creates a new Assistant
func New(deps *Dependencies) *Assistant {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Assistant{
		store:  deps.Store,
		model:  deps.Model,
		engine: deps.Engine,
		logger: logger,
	}
}

// Answer produces the bot reply for one user message. userName is optional.
//
// Not-found lookups and upstream model or engine failures come back as reply
// text. Only a failed entity extraction or an unexpected fault returns an
// error, always an *InternalError.
func (a *Assistant) Answer(ctx context.Context, userInput, userName string) (reply *Reply, err error) {
	userName = strings.TrimSpace(userName)

	if IsGreeting(userInput) {
		a.logger.Info("Greeting detected",
			slog.String("user_name", userName),
		)
		// already personalized, no further prefix
		return &Reply{Text: greetingFor(userName), Kind: KindGreeting}, nil
	}

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("Inquiry panicked",
				slog.String("user_input", userInput),
				slog.Any("panic", r),
			)
			reply = nil
			err = &InternalError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	text, strategy, err := a.handleInquiry(ctx, userInput)
	if err != nil {
		return nil, &InternalError{Err: err}
	}

	if userName != "" {
		text = personalize(text, userName)
	}

	return &Reply{Text: text, Kind: KindInquiry, Strategy: strategy}, nil
}

func (a *Assistant) handleInquiry(ctx context.Context, userInput string) (string, Strategy, error) {
	start := time.Now()

	snapshot := a.loadSnapshot(ctx)

	entities, err := a.model.ExtractEntities(ctx, userInput)
	if err != nil {
		a.logger.Error("Failed to extract entities",
			slog.String("user_input", userInput),
			slog.Any("error", err),
		)
		return "", StrategyNone, fmt.Errorf("failed to extract entities: %w", err)
	}
	entities = entities.Normalize()

	result := a.route(ctx, entities, snapshot, userInput)
	text := a.synthesize(ctx, userInput, result)

	a.logger.Info("Inquiry answered",
		slog.String("strategy", string(result.Strategy)),
		slog.String("outcome", string(result.Outcome)),
		slog.Duration("latency", time.Since(start)),
	)

	return text, result.Strategy, nil
}

// synthesize asks the model to phrase result as a reply to question. A model
// failure is returned as the reply text.
func (a *Assistant) synthesize(ctx context.Context, question string, result RetrievalResult) string {
	reply, err := a.model.GenerateReply(ctx, question, result.Text)
	if err != nil {
		a.logger.Error("Failed to generate final response",
			slog.Any("error", err),
		)
		return fmt.Sprintf("Error generating final response: %v", err)
	}
	return strings.TrimSpace(reply)
}
