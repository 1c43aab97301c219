package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/job-assistant/internal/audit"
	"github.com/cuongbtq/job-assistant/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// setupConsumer starts consuming the audit queue with manual acknowledgement
func (w *Worker) setupConsumer() (<-chan amqp.Delivery, error) {
	deliveries, err := w.source.Consume(w.workerID, w.prefetchCount)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	w.logger.Info("RabbitMQ consumer started",
		slog.String("consumer_tag", w.workerID),
		slog.Int("prefetch_count", w.prefetchCount),
	)

	return deliveries, nil
}

// startMessageDispatcher decodes deliveries and hands them to the worker pool.
// Undecodable messages are dropped here and never reach the pool.
func (w *Worker) startMessageDispatcher(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	w.logger.Info("Message dispatcher started",
		slog.String("worker_id", w.workerID),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Message dispatcher stopped - context canceled")
			return nil

		case delivery, ok := <-deliveries:
			if !ok {
				w.logger.Warn("RabbitMQ delivery channel closed")
				return domain.ErrDeliveriesClosed
			}

			event, err := decodeEvent(delivery.Body)
			if err != nil {
				w.logger.Error("Dropping malformed inquiry event",
					slog.String("error", err.Error()),
					slog.String("body", string(delivery.Body)),
				)
				// malformed messages are never requeued
				if nackErr := delivery.Nack(false, false); nackErr != nil {
					w.logger.Error("Failed to NACK malformed message",
						slog.String("error", nackErr.Error()),
					)
				}
				continue
			}

			select {
			case w.eventsChan <- &domain.EventMessage{Event: event, Delivery: delivery}:
				w.logger.Debug("Event dispatched to worker pool",
					slog.String("event_id", event.EventID),
					slog.Uint64("delivery_tag", delivery.DeliveryTag),
				)
			case <-ctx.Done():
				w.logger.Info("Message dispatcher stopped while dispatching event")
				// NACK the message so it can be reprocessed
				if nackErr := delivery.Nack(false, true); nackErr != nil {
					w.logger.Error("Failed to NACK message on shutdown",
						slog.String("error", nackErr.Error()),
					)
				}
				return nil
			}
		}
	}
}

func decodeEvent(body []byte) (*audit.InquiryEvent, error) {
	var event audit.InquiryEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	return &event, nil
}
