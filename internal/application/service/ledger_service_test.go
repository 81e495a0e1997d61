package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/udhari/ledger-service/internal/domain"
	"github.com/udhari/ledger-service/internal/infrastructure/store"
	"go.uber.org/zap"
)

func newTestLedger(t *testing.T) *LedgerService {
	t.Helper()
	adapter := store.NewAdapter(store.NewMemory(), zap.NewNop())
	return NewLedgerService(context.Background(), adapter, nil, zap.NewNop())
}

func TestNewLedgerService_SeedsEmptyStore(t *testing.T) {
	ledger := newTestLedger(t)

	customers := ledger.Customers()
	payments := ledger.Payments()

	assert.Len(t, customers, 4)
	assert.Len(t, payments, 4)
	assert.Equal(t, "Aarav Sharma", customers[0].Name)
	assert.Equal(t, "p1", payments[0].ID)
	assert.Equal(t, "light", ledger.Theme())
}

func TestNewLedgerService_LoadsPersistedStateNotSeed(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemory()
	adapter := store.NewAdapter(backend, zap.NewNop())

	first := NewLedgerService(ctx, adapter, nil, zap.NewNop())
	created, err := first.CreateCustomer(ctx, domain.CustomerInput{Name: "Kiran", Phone: "9000000000"})
	assert.NoError(t, err)

	// A second service over the same backend sees the mutated state, not a
	// fresh seed.
	second := NewLedgerService(ctx, adapter, nil, zap.NewNop())
	assert.Len(t, second.Customers(), 5)

	got, err := second.Customer(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestNewLedgerService_PrunesOrphanedPayments(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemory()
	adapter := store.NewAdapter(backend, zap.NewNop())

	// Simulate a crash between the two delete writes: customers persisted
	// without customer 3, payments still referencing it.
	store.Write(ctx, adapter, keyCustomers, []domain.Customer{
		{ID: "1", Name: "Aarav", Phone: "1", PendingAmount: 100},
	})
	store.Write(ctx, adapter, keyPayments, []domain.Payment{
		{ID: "p1", CustomerID: "1", Amount: 50, Date: "2024-07-25"},
		{ID: "p9", CustomerID: "3", Amount: 70, Date: "2024-07-26"},
	})

	ledger := NewLedgerService(ctx, adapter, nil, zap.NewNop())

	payments := ledger.Payments()
	assert.Len(t, payments, 1)
	assert.Equal(t, "p1", payments[0].ID)

	// The pruned collection is persisted.
	reloaded := NewLedgerService(ctx, adapter, nil, zap.NewNop())
	assert.Len(t, reloaded.Payments(), 1)
}

func TestNewLedgerService_MalformedStateFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemory()
	assert.NoError(t, backend.Set(ctx, keyCustomers, []byte("][ nope")))
	adapter := store.NewAdapter(backend, zap.NewNop())

	ledger := NewLedgerService(ctx, adapter, nil, zap.NewNop())
	assert.Len(t, ledger.Customers(), 4)
}

func TestCreateCustomer(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	created, err := ledger.CreateCustomer(ctx, domain.CustomerInput{
		Name:          "Kiran Rao",
		Phone:         "9000000000",
		PendingAmount: 120000,
		DueDate:       "2024-09-01",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.DefaultAvatar, created.PhotoURL)
	assert.Len(t, ledger.Customers(), 5)

	// Ids are unique across the collection.
	seen := map[string]bool{}
	for _, c := range ledger.Customers() {
		assert.False(t, seen[c.ID])
		seen[c.ID] = true
	}
}

func TestCreateCustomer_Validation(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	_, err := ledger.CreateCustomer(ctx, domain.CustomerInput{Phone: "1"})
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = ledger.CreateCustomer(ctx, domain.CustomerInput{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrPhoneRequired)

	assert.Len(t, ledger.Customers(), 4)
}

func TestUpdateCustomer(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	updated, err := ledger.UpdateCustomer(ctx, "1", domain.CustomerInput{
		Name:          "Aarav S.",
		Phone:         "9876543210",
		PendingAmount: 200000,
		Notes:         "Renegotiated",
	})
	assert.NoError(t, err)
	assert.Equal(t, "1", updated.ID)
	assert.Equal(t, "Aarav S.", updated.Name)
	assert.Equal(t, domain.Money(200000), updated.PendingAmount)

	got, err := ledger.Customer("1")
	assert.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateCustomer_UnknownID(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	_, err := ledger.UpdateCustomer(ctx, "missing", domain.CustomerInput{Name: "X", Phone: "1"})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestDeleteCustomer_RemovesCustomerAndPayments(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	// Seed customer 1 has payment p2; give it a second one.
	_, err := ledger.ApplyPayment(ctx, "1", 10000)
	assert.NoError(t, err)

	err = ledger.DeleteCustomer(ctx, "1")
	assert.NoError(t, err)

	_, err = ledger.Customer("1")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	for _, p := range ledger.Payments() {
		assert.NotEqual(t, "1", p.CustomerID)
	}
	// Other customers' payments are untouched.
	assert.Len(t, ledger.Payments(), 3)
	assert.Len(t, ledger.Customers(), 3)
}

func TestDeleteCustomer_SecondDeleteIsNotFound(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	assert.NoError(t, ledger.DeleteCustomer(ctx, "2"))

	err := ledger.DeleteCustomer(ctx, "2")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	assert.Len(t, ledger.Customers(), 3)
	assert.Len(t, ledger.Payments(), 3)
}

func TestApplyPayment(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	payment, err := ledger.ApplyPayment(ctx, "1", 100000)
	assert.NoError(t, err)
	assert.Equal(t, "1", payment.CustomerID)
	assert.Equal(t, domain.Money(100000), payment.Amount)
	assert.Equal(t, time.Now().Format(domain.DateLayout), payment.Date)

	customer, err := ledger.Customer("1")
	assert.NoError(t, err)
	assert.Equal(t, domain.Money(150000), customer.PendingAmount)
	assert.Equal(t, payment.Date, customer.LastPaymentDate)

	// New payment is prepended: most recent first.
	payments := ledger.Payments()
	assert.Len(t, payments, 5)
	assert.Equal(t, payment.ID, payments[0].ID)
}

func TestApplyPayment_RejectionsLeaveStateUnchanged(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	before, err := ledger.Customer("3") // pending 50000
	assert.NoError(t, err)
	paymentsBefore := ledger.Payments()

	for _, amount := range []domain.Money{0, -500, 50001} {
		_, err := ledger.ApplyPayment(ctx, "3", amount)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	}

	after, err := ledger.Customer("3")
	assert.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, paymentsBefore, ledger.Payments())
}

func TestApplyPayment_UnknownCustomer(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	_, err := ledger.ApplyPayment(ctx, "missing", 100)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	assert.Len(t, ledger.Payments(), 4)
}

func TestApplyPayment_SequenceNeverNegative(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	// Customer 4 owes 820000; pay it off in chunks.
	for _, amount := range []domain.Money{500000, 200000, 120000} {
		before, err := ledger.Customer("4")
		assert.NoError(t, err)

		_, err = ledger.ApplyPayment(ctx, "4", amount)
		assert.NoError(t, err)

		after, err := ledger.Customer("4")
		assert.NoError(t, err)
		assert.Equal(t, before.PendingAmount-amount, after.PendingAmount)
		assert.GreaterOrEqual(t, int64(after.PendingAmount), int64(0))
	}

	customer, err := ledger.Customer("4")
	assert.NoError(t, err)
	assert.True(t, customer.IsSettled())

	// Once settled, any further payment exceeds the pending amount.
	_, err = ledger.ApplyPayment(ctx, "4", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestSetTheme(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemory()
	adapter := store.NewAdapter(backend, zap.NewNop())

	ledger := NewLedgerService(ctx, adapter, nil, zap.NewNop())
	assert.NoError(t, ledger.SetTheme(ctx, ThemeDark))
	assert.Equal(t, ThemeDark, ledger.Theme())

	assert.ErrorIs(t, ledger.SetTheme(ctx, "sepia"), domain.ErrInvalidTheme)
	assert.Equal(t, ThemeDark, ledger.Theme())

	// Theme persists across restarts.
	reloaded := NewLedgerService(ctx, adapter, nil, zap.NewNop())
	assert.Equal(t, ThemeDark, reloaded.Theme())
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func TestRequestReminder_PublishesEvent(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemory()
	adapter := store.NewAdapter(backend, zap.NewNop())

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("*domain.ReminderRequestedEvent")).Return(nil)

	ledger := NewLedgerService(ctx, adapter, publisher, zap.NewNop())

	assert.NoError(t, ledger.RequestReminder(ctx, "1"))
	publisher.AssertExpectations(t)

	event := publisher.Calls[0].Arguments.Get(1).(*domain.ReminderRequestedEvent)
	assert.Equal(t, domain.EventTypeReminderRequested, event.GetEventType())
	assert.Equal(t, "Aarav Sharma", event.Payload.CustomerName)
}

func TestRequestReminder_UnknownCustomer(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	err := ledger.RequestReminder(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}
