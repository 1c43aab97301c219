// Package worker consumes inquiry audit events from RabbitMQ and records them
// in the inquiry_log table.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cuongbtq/job-assistant/internal/audit"
	"github.com/cuongbtq/job-assistant/internal/worker/domain"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/errgroup"
)

// EventStore persists audit events; implemented by *storage.Storage
type EventStore interface {
	InsertInquiry(ctx context.Context, event *audit.InquiryEvent) error
}

// DeliverySource is implemented by *rabbitmq.Client
type DeliverySource interface {
	Consume(consumerTag string, prefetchCount int) (<-chan amqp.Delivery, error)
}

// Config holds worker configuration
type Config struct {
	Logger        *slog.Logger
	Store         EventStore
	Source        DeliverySource
	WorkerID      string
	Concurrency   int
	PrefetchCount int
	RecordTimeout time.Duration
}

// Worker represents the inquiry audit worker
type Worker struct {
	logger        *slog.Logger
	store         EventStore
	source        DeliverySource
	workerID      string
	concurrency   int
	prefetchCount int
	recordTimeout time.Duration
	eventsChan    chan *domain.EventMessage
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	workerID := cfg.WorkerID
	if workerID == "" {
		workerID = "audit-worker-" + uuid.NewString()[:8]
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	prefetch := cfg.PrefetchCount
	if prefetch <= 0 {
		prefetch = concurrency
	}

	recordTimeout := cfg.RecordTimeout
	if recordTimeout <= 0 {
		recordTimeout = 5 * time.Second
	}

	return &Worker{
		logger:        cfg.Logger,
		store:         cfg.Store,
		source:        cfg.Source,
		workerID:      workerID,
		concurrency:   concurrency,
		prefetchCount: prefetch,
		recordTimeout: recordTimeout,
		eventsChan:    make(chan *domain.EventMessage, concurrency),
	}
}

// Start consumes events until ctx is canceled or the broker closes the
// delivery channel. It returns once every worker goroutine has exited.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("record_timeout", w.recordTimeout),
	)

	deliveries, err := w.setupConsumer()
	if err != nil {
		return fmt.Errorf("failed to set up consumer: %w", err)
	}

	return w.run(ctx, deliveries)
}

func (w *Worker) run(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(w.eventsChan)
		return w.startMessageDispatcher(gctx, deliveries)
	})

	w.spawnWorkerPool(gctx, g)

	err := g.Wait()
	w.logger.Info("Worker stopped",
		slog.String("worker_id", w.workerID),
	)
	return err
}
