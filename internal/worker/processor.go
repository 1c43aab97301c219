package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/job-assistant/internal/worker/domain"
)

// processEvent stores one audit event. A store failure is retried once
// through a requeue; a second failure drops the message.
func (w *Worker) processEvent(ctx context.Context, msg *domain.EventMessage) error {
	event := msg.Event

	// finish the insert even when shutdown has begun
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.recordTimeout)
	defer cancel()

	err := w.store.InsertInquiry(recordCtx, event)
	switch {
	case err == nil:
		w.logger.Info("Inquiry recorded",
			slog.String("event_id", event.EventID),
			slog.String("kind", event.Kind),
			slog.String("strategy", event.Strategy),
			slog.Bool("failed", event.Failed),
		)
		return nil

	case errors.Is(err, domain.ErrDuplicateEvent):
		return nil

	case msg.Delivery.Redelivered:
		return fmt.Errorf("%w: %v", domain.ErrMaxRetriesExceeded, err)

	default:
		return domain.NewRetryableError(fmt.Errorf("failed to record inquiry: %w", err))
	}
}
