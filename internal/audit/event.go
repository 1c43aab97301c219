// Package audit records every chat exchange on the inquiry audit queue.
package audit

import (
	"errors"
	"time"

	"github.com/cuongbtq/job-assistant/internal/assistant"
	"github.com/google/uuid"
)

// ContentType of published audit messages
const ContentType = "application/json"

// InquiryEvent is the audit message for one chat exchange
type InquiryEvent struct {
	EventID     string    `json:"event_id"`
	UserName    string    `json:"user_name"`
	UserInput   string    `json:"user_input"`
	Kind        string    `json:"kind"`
	Strategy    string    `json:"strategy"`
	BotResponse string    `json:"bot_response"`
	Failed      bool      `json:"failed"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewInquiryEvent builds the event for an answered (reply != nil) or failed
// (err != nil) exchange
func NewInquiryEvent(userInput, userName string, reply *assistant.Reply, err error) *InquiryEvent {
	event := &InquiryEvent{
		EventID:   uuid.NewString(),
		UserName:  userName,
		UserInput: userInput,
		Kind:      string(assistant.KindInquiry),
		CreatedAt: time.Now().UTC(),
	}

	if reply != nil {
		event.Kind = string(reply.Kind)
		event.Strategy = string(reply.Strategy)
		event.BotResponse = reply.Text
	}
	if err != nil {
		event.Failed = true
		event.BotResponse = err.Error()
	}

	return event
}

// Validate checks the fields a stored event needs
func (e *InquiryEvent) Validate() error {
	if _, err := uuid.Parse(e.EventID); err != nil {
		return errors.New("event_id must be a valid UUID")
	}
	if e.Kind == "" {
		return errors.New("kind is required")
	}
	if e.CreatedAt.IsZero() {
		return errors.New("created_at is required")
	}
	return nil
}
