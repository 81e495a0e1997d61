package service

import (
	"context"
	"fmt"

	"github.com/udhari/ledger-service/internal/domain"
	"go.uber.org/zap"
)

// NotificationService handles ledger events in the worker. Delivery is
// simulated: reminders and receipts are logged, never sent anywhere.
type NotificationService struct {
	logger *zap.Logger
}

func NewNotificationService(logger *zap.Logger) *NotificationService {
	return &NotificationService{
		logger: logger,
	}
}

// HandleReminderRequested handles reminder requested events
func (s *NotificationService) HandleReminderRequested(ctx context.Context, event domain.DomainEvent) error {
	reminderEvent, ok := event.(*domain.ReminderRequestedEvent)
	if !ok {
		return fmt.Errorf("invalid event type")
	}

	payload := reminderEvent.Payload

	s.logger.Info("(simulated) whatsapp reminder sent",
		zap.String("event_id", event.GetEventID()),
		zap.String("customer_id", payload.CustomerID),
		zap.String("name", payload.CustomerName),
		zap.String("phone", payload.Phone),
		zap.String("pending", payload.PendingAmount.String()),
		zap.String("due_date", payload.DueDate),
	)
	return nil
}

// HandlePaymentRecorded handles payment recorded events
func (s *NotificationService) HandlePaymentRecorded(ctx context.Context, event domain.DomainEvent) error {
	paymentEvent, ok := event.(*domain.PaymentRecordedEvent)
	if !ok {
		return fmt.Errorf("invalid event type")
	}

	payload := paymentEvent.Payload

	s.logger.Info("(simulated) payment receipt sent",
		zap.String("event_id", event.GetEventID()),
		zap.String("customer_id", payload.CustomerID),
		zap.String("name", payload.CustomerName),
		zap.String("amount", payload.Amount.String()),
		zap.Bool("is_settled", payload.IsSettled),
	)
	return nil
}
