package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventTypePaymentRecorded   = "ledger.payment.recorded"
	EventTypeReminderRequested = "ledger.reminder.requested"
)

// DomainEvent represents a domain event
type DomainEvent interface {
	GetEventID() string
	GetEventType() string
	GetAggregateID() string
	GetOccurredAt() time.Time
	GetPayload() interface{}
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	AggregateID string    `json:"aggregate_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (e BaseEvent) GetEventID() string       { return e.EventID }
func (e BaseEvent) GetEventType() string     { return e.EventType }
func (e BaseEvent) GetAggregateID() string   { return e.AggregateID }
func (e BaseEvent) GetOccurredAt() time.Time { return e.OccurredAt }

// PaymentRecordedEvent - a payment was applied to a customer's balance
type PaymentRecordedEvent struct {
	BaseEvent
	Payload PaymentRecordedPayload `json:"payload"`
}

func (e PaymentRecordedEvent) GetPayload() interface{} { return e.Payload }

type PaymentRecordedPayload struct {
	PaymentID     string `json:"payment_id"`
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	Amount        Money  `json:"amount"`
	PendingAmount Money  `json:"pending_amount"`
	Date          string `json:"date"`
	IsSettled     bool   `json:"is_settled"`
}

func NewPaymentRecordedEvent(customerID string, payload PaymentRecordedPayload) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseEvent: BaseEvent{
			EventID:     uuid.New().String(),
			EventType:   EventTypePaymentRecorded,
			AggregateID: customerID,
			OccurredAt:  time.Now(),
		},
		Payload: payload,
	}
}

// ReminderRequestedEvent - the operator asked for a due reminder to be sent
type ReminderRequestedEvent struct {
	BaseEvent
	Payload ReminderRequestedPayload `json:"payload"`
}

func (e ReminderRequestedEvent) GetPayload() interface{} { return e.Payload }

type ReminderRequestedPayload struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	Phone         string `json:"phone"`
	PendingAmount Money  `json:"pending_amount"`
	DueDate       string `json:"due_date"`
}

func NewReminderRequestedEvent(customerID string, payload ReminderRequestedPayload) *ReminderRequestedEvent {
	return &ReminderRequestedEvent{
		BaseEvent: BaseEvent{
			EventID:     uuid.New().String(),
			EventType:   EventTypeReminderRequested,
			AggregateID: customerID,
			OccurredAt:  time.Now(),
		},
		Payload: payload,
	}
}

// EventPublisher interface
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
}

// EventSubscriber interface
type EventSubscriber interface {
	Subscribe(ctx context.Context, eventType string, handler EventHandler) error
}

// EventHandler processes events
type EventHandler func(ctx context.Context, event DomainEvent) error
