package domain

import "errors"

var (
	// ErrInvalidPayload is returned when an audit message cannot be decoded or validated
	ErrInvalidPayload = errors.New("invalid inquiry event payload")

	// ErrDuplicateEvent is returned when the event was already recorded
	ErrDuplicateEvent = errors.New("inquiry event already recorded")

	// ErrMaxRetriesExceeded is returned when a redelivered event still cannot be stored
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")

	// ErrDeliveriesClosed is returned when the broker closes the delivery channel
	ErrDeliveriesClosed = errors.New("rabbitmq delivery channel closed")
)

// RetryableError wraps transient errors that should trigger a requeue
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a new retryable error
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
