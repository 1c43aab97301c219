package handler

import (
	"context"
	"log/slog"

	"github.com/cuongbtq/job-assistant/internal/api/model"
	"github.com/cuongbtq/job-assistant/internal/api/storage"
	"github.com/cuongbtq/job-assistant/internal/assistant"
	"github.com/cuongbtq/job-assistant/internal/audit"
)

// Answerer is implemented by *assistant.Assistant
type Answerer interface {
	Answer(ctx context.Context, userInput, userName string) (*assistant.Reply, error)
}

// JobReader is implemented by *storage.Storage
type JobReader interface {
	GetJob(ctx context.Context, jobID string) (*model.Job, error)
	ListJobsPage(ctx context.Context, filter storage.JobFilter) ([]model.Job, error)
}

// HealthChecker is implemented by *postgresql.Client
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger         *slog.Logger
	Assistant      Answerer
	Jobs           JobReader
	DB             HealthChecker
	Recorder       *audit.Recorder // nil disables the audit trail
	AllowedOrigins []string
}

// ChatHandler serves the chat endpoint
type ChatHandler struct {
	logger    *slog.Logger
	assistant Answerer
	recorder  *audit.Recorder
}

// NewChatHandler creates a new ChatHandler instance
func NewChatHandler(deps *Dependencies) *ChatHandler {
	return &ChatHandler{
		logger:    deps.Logger,
		assistant: deps.Assistant,
		recorder:  deps.Recorder,
	}
}

// JobHandler serves read-only job browsing
type JobHandler struct {
	logger *slog.Logger
	jobs   JobReader
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger: deps.Logger,
		jobs:   deps.Jobs,
	}
}

// HealthHandler reports service and database health
type HealthHandler struct {
	logger *slog.Logger
	db     HealthChecker
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(deps *Dependencies) *HealthHandler {
	return &HealthHandler{
		logger: deps.Logger,
		db:     deps.DB,
	}
}
