package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/job-assistant/internal/worker/domain"
	"golang.org/x/sync/errgroup"
)

// spawnWorkerPool starts concurrency worker goroutines in g
func (w *Worker) spawnWorkerPool(ctx context.Context, g *errgroup.Group) {
	w.logger.Info("Spawning worker pool",
		slog.Int("concurrency", w.concurrency),
		slog.String("worker_id", w.workerID),
	)

	for i := 0; i < w.concurrency; i++ {
		g.Go(func() error {
			w.workerLoop(ctx, i)
			return nil
		})
	}
}

// workerLoop processes events until the dispatcher closes eventsChan
func (w *Worker) workerLoop(ctx context.Context, workerNum int) {
	workerName := fmt.Sprintf("%s-%d", w.workerID, workerNum)
	w.logger.Debug("Worker goroutine started",
		slog.String("worker_name", workerName),
	)

	for msg := range w.eventsChan {
		err := w.processEvent(ctx, msg)
		w.settle(workerName, msg, err)
	}

	w.logger.Debug("Worker goroutine stopping - eventsChan closed",
		slog.String("worker_name", workerName),
	)
}

// settle acknowledges or rejects the delivery according to the processing result
func (w *Worker) settle(workerName string, msg *domain.EventMessage, err error) {
	eventID := msg.Event.EventID

	if err == nil {
		if ackErr := msg.Delivery.Ack(false); ackErr != nil {
			w.logger.Error("Failed to ACK message",
				slog.String("worker_name", workerName),
				slog.String("event_id", eventID),
				slog.String("error", ackErr.Error()),
			)
		}
		return
	}

	w.logger.Error("Event processing failed",
		slog.String("worker_name", workerName),
		slog.String("event_id", eventID),
		slog.String("error", err.Error()),
	)

	requeue := shouldRequeue(err)
	if nackErr := msg.Delivery.Nack(false, requeue); nackErr != nil {
		w.logger.Error("Failed to NACK message",
			slog.String("worker_name", workerName),
			slog.String("event_id", eventID),
			slog.String("error", nackErr.Error()),
		)
		return
	}

	w.logger.Info("Message NACKed",
		slog.String("worker_name", workerName),
		slog.String("event_id", eventID),
		slog.Bool("requeue", requeue),
	)
}

// shouldRequeue determines if a message should be requeued based on the error type
func shouldRequeue(err error) bool {
	if errors.Is(err, domain.ErrInvalidPayload) {
		return false
	}

	if errors.Is(err, domain.ErrMaxRetriesExceeded) {
		return false
	}

	var retryableErr *domain.RetryableError
	if errors.As(err, &retryableErr) {
		return true
	}

	// Default: don't requeue for unknown errors
	return false
}
