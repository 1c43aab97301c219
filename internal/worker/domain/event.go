package domain

import (
	"github.com/cuongbtq/job-assistant/internal/audit"
	amqp "github.com/rabbitmq/amqp091-go"
)

// EventMessage is a decoded audit message together with the delivery to settle
type EventMessage struct {
	Event    *audit.InquiryEvent
	Delivery amqp.Delivery
}
