package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Publisher delivers inquiry events to the audit queue
type Publisher interface {
	Publish(ctx context.Context, event *InquiryEvent) error
}

// messagePublisher is satisfied by *rabbitmq.Client
type messagePublisher interface {
	PublishWithRetry(ctx context.Context, body []byte, contentType string) error
}

// RabbitPublisher publishes events as persistent JSON messages
type RabbitPublisher struct {
	client messagePublisher
}

func NewRabbitPublisher(client messagePublisher) *RabbitPublisher {
	return &RabbitPublisher{client: client}
}

func (p *RabbitPublisher) Publish(ctx context.Context, event *InquiryEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal inquiry event: %w", err)
	}

	if err := p.client.PublishWithRetry(ctx, body, ContentType); err != nil {
		return fmt.Errorf("failed to publish inquiry event %s: %w", event.EventID, err)
	}

	return nil
}

// NopPublisher drops events; used when auditing is disabled
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *InquiryEvent) error { return nil }

// Recorder publishes events in the background so a slow or unavailable
// broker never delays or changes a chat reply
type Recorder struct {
	publisher Publisher
	timeout   time.Duration
	logger    *slog.Logger
	wg        sync.WaitGroup
}

func NewRecorder(publisher Publisher, timeout time.Duration, logger *slog.Logger) *Recorder {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Recorder{
		publisher: publisher,
		timeout:   timeout,
		logger:    logger,
	}
}

// Record publishes event asynchronously. Failures are only logged.
func (r *Recorder) Record(ctx context.Context, event *InquiryEvent) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		// the request context is canceled as soon as the reply is written
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()

		if err := r.publisher.Publish(ctx, event); err != nil {
			r.logger.Error("Failed to publish inquiry event",
				slog.String("event_id", event.EventID),
				slog.Any("error", err),
			)
			return
		}

		r.logger.Debug("Inquiry event published",
			slog.String("event_id", event.EventID),
			slog.String("kind", event.Kind),
		)
	}()
}

// Wait blocks until in-flight publishes finish or ctx is done
func (r *Recorder) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
