package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/udhari/ledger-service/internal/domain"
	"github.com/udhari/ledger-service/internal/infrastructure/store"
	"go.uber.org/zap"
)

// Storage keys for the ledger collections and the presentation theme.
const (
	keyCustomers = "customers"
	keyPayments  = "payments"
	keyTheme     = "theme"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// LedgerService owns the customer and payment collections. All mutations go
// through it and serialize on a single mutex: delete and apply-payment touch
// both collections and must not interleave. Persistence failures never fail
// a mutation - the in-memory collections stay authoritative and the store
// adapter logs the problem.
type LedgerService struct {
	mu             sync.Mutex
	customers      []domain.Customer
	payments       []domain.Payment
	theme          string
	store          *store.Adapter
	eventPublisher domain.EventPublisher // Optional - can be nil
	logger         *zap.Logger
}

// NewLedgerService loads the collections from the store, seeding the fixed
// example dataset when nothing was stored before.
func NewLedgerService(
	ctx context.Context,
	adapter *store.Adapter,
	eventPublisher domain.EventPublisher,
	logger *zap.Logger,
) *LedgerService {
	s := &LedgerService{
		store:          adapter,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
	s.load(ctx)
	return s
}

func (s *LedgerService) load(ctx context.Context) {
	s.customers = store.Read(ctx, s.store, keyCustomers, seedCustomers())
	s.payments = store.Read(ctx, s.store, keyPayments, seedPayments())
	s.theme = store.Read(ctx, s.store, keyTheme, ThemeLight)

	// Safety net for a crash between the two delete writes: drop payments
	// whose customer no longer exists.
	ids := make(map[string]struct{}, len(s.customers))
	for _, c := range s.customers {
		ids[c.ID] = struct{}{}
	}
	kept := s.payments[:0]
	pruned := 0
	for _, p := range s.payments {
		if _, ok := ids[p.CustomerID]; ok {
			kept = append(kept, p)
		} else {
			pruned++
		}
	}
	s.payments = kept
	if pruned > 0 {
		s.logger.Warn("pruned orphaned payments on load", zap.Int("count", pruned))
	}

	// Write back so a first run persists the seed and a recovered run
	// persists the pruned collections.
	store.Write(ctx, s.store, keyCustomers, s.customers)
	store.Write(ctx, s.store, keyPayments, s.payments)

	s.logger.Info("ledger loaded",
		zap.Int("customers", len(s.customers)),
		zap.Int("payments", len(s.payments)),
	)
}

// CreateCustomer assigns a new id, appends the customer and persists the
// collection.
func (s *LedgerService) CreateCustomer(ctx context.Context, input domain.CustomerInput) (domain.Customer, error) {
	customer, err := domain.NewCustomer(uuid.NewString(), input)
	if err != nil {
		return domain.Customer{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.customers = append(s.customers, *customer)
	store.Write(ctx, s.store, keyCustomers, s.customers)

	s.logger.Info("customer created",
		zap.String("customer_id", customer.ID),
		zap.String("name", customer.Name),
	)
	return *customer, nil
}

// UpdateCustomer replaces every field except the id for the matching
// customer. An unknown id is an explicit domain.ErrCustomerNotFound.
func (s *LedgerService) UpdateCustomer(ctx context.Context, id string, input domain.CustomerInput) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}

	customer, err := domain.NewCustomer(id, input)
	if err != nil {
		return domain.Customer{}, err
	}

	s.customers[idx] = *customer
	store.Write(ctx, s.store, keyCustomers, s.customers)

	s.logger.Info("customer updated", zap.String("customer_id", id))
	return *customer, nil
}

// DeleteCustomer removes the customer and every payment referencing it in
// one logical transaction: both collections are mutated in memory first,
// then persisted in sequence. A repeated delete of the same id returns
// domain.ErrCustomerNotFound and changes nothing.
func (s *LedgerService) DeleteCustomer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.ErrCustomerNotFound
	}

	s.customers = append(s.customers[:idx], s.customers[idx+1:]...)

	kept := make([]domain.Payment, 0, len(s.payments))
	removed := 0
	for _, p := range s.payments {
		if p.CustomerID == id {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	s.payments = kept

	store.Write(ctx, s.store, keyCustomers, s.customers)
	store.Write(ctx, s.store, keyPayments, s.payments)

	s.logger.Info("customer deleted",
		zap.String("customer_id", id),
		zap.Int("payments_removed", removed),
	)
	return nil
}

// ApplyPayment records a payment dated today against the customer's balance.
// It rejects amounts that are not positive or exceed the pending amount with
// domain.ErrInvalidAmount, leaving both collections untouched. On success
// the new payment is prepended (most recent first), the customer's pending
// amount drops by the payment amount and the last payment date is set; both
// collections persist as one logical operation.
func (s *LedgerService) ApplyPayment(ctx context.Context, customerID string, amount domain.Money) (domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(customerID)
	if idx < 0 {
		return domain.Payment{}, domain.ErrCustomerNotFound
	}

	date := time.Now().Format(domain.DateLayout)

	// Work on a copy so a rejected payment observes no partial update.
	customer := s.customers[idx]
	if err := customer.ApplyPayment(amount, date); err != nil {
		return domain.Payment{}, err
	}

	payment, err := domain.NewPayment(uuid.NewString(), customerID, amount, date)
	if err != nil {
		return domain.Payment{}, err
	}

	s.customers[idx] = customer
	s.payments = append([]domain.Payment{*payment}, s.payments...)

	store.Write(ctx, s.store, keyCustomers, s.customers)
	store.Write(ctx, s.store, keyPayments, s.payments)

	s.logger.Info("payment applied",
		zap.String("customer_id", customerID),
		zap.String("payment_id", payment.ID),
		zap.String("amount", amount.String()),
		zap.String("new_pending", customer.PendingAmount.String()),
	)

	if s.eventPublisher != nil {
		go s.publishPaymentRecorded(customer, *payment)
	}

	return *payment, nil
}

// RequestReminder simulates sending a due reminder to the customer. The
// request is logged and, when eventing is configured, handed to the worker;
// nothing is actually delivered.
func (s *LedgerService) RequestReminder(ctx context.Context, customerID string) error {
	s.mu.Lock()
	idx := s.indexOf(customerID)
	if idx < 0 {
		s.mu.Unlock()
		return domain.ErrCustomerNotFound
	}
	customer := s.customers[idx]
	s.mu.Unlock()

	s.logger.Info("reminder requested",
		zap.String("customer_id", customer.ID),
		zap.String("name", customer.Name),
		zap.String("pending", customer.PendingAmount.String()),
	)

	if s.eventPublisher != nil {
		event := domain.NewReminderRequestedEvent(customer.ID, domain.ReminderRequestedPayload{
			CustomerID:    customer.ID,
			CustomerName:  customer.Name,
			Phone:         customer.Phone,
			PendingAmount: customer.PendingAmount,
			DueDate:       customer.DueDate,
		})
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish reminder event",
				zap.Error(err),
				zap.String("customer_id", customer.ID),
			)
		}
	}
	return nil
}

// Customer returns the customer with the given id.
func (s *LedgerService) Customer(id string) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return s.customers[idx], nil
}

// Customers returns a snapshot copy of the customer collection for the view
// engine. Display order is derived by callers, never stored.
func (s *LedgerService) Customers() []domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// Payments returns a snapshot copy of the payment collection, most recent
// first.
func (s *LedgerService) Payments() []domain.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Payment, len(s.payments))
	copy(out, s.payments)
	return out
}

// Theme returns the persisted presentation theme.
func (s *LedgerService) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme persists the presentation theme.
func (s *LedgerService) SetTheme(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return domain.ErrInvalidTheme
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = theme
	store.Write(ctx, s.store, keyTheme, theme)
	return nil
}

// indexOf must be called with the mutex held.
func (s *LedgerService) indexOf(id string) int {
	for i, c := range s.customers {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *LedgerService) publishPaymentRecorded(customer domain.Customer, payment domain.Payment) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	event := domain.NewPaymentRecordedEvent(customer.ID, domain.PaymentRecordedPayload{
		PaymentID:     payment.ID,
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		Amount:        payment.Amount,
		PendingAmount: customer.PendingAmount,
		Date:          payment.Date,
		IsSettled:     customer.IsSettled(),
	})

	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish payment recorded event",
			zap.Error(err),
			zap.String("customer_id", customer.ID),
			zap.String("event_id", event.GetEventID()),
		)
	}
}
