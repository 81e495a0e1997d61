package domain

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrInvalidAmount    = errors.New("invalid payment amount")
	ErrNameRequired     = errors.New("customer name is required")
	ErrPhoneRequired    = errors.New("customer phone is required")
	ErrInvalidTheme     = errors.New("theme must be light or dark")
)

// DateLayout is the wire format for all ledger dates. Dates are kept as
// ISO strings so that an empty string can mean "not set" and chronological
// order matches lexicographic order.
const DateLayout = "2006-01-02"

// DefaultAvatar is the placeholder image used when a customer has no photo.
const DefaultAvatar = "data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHZpZXdCb3g9IjAgMCAyNCAyNCIgZmlsbD0iI0U1RTdFQiI+PHBhdGggZmlsbC1ydWxlPSJldmVub2RkIiBkPSJNMTguNjg1IDE5LjA5N0E5LjcyMyA5LjcyMyAwIDAwMjEuNzUgMTJjMC01LjM4NS00LjM2NS05Ljc1LTkuNzUtOS43NVMyLjI1IDYuNjE1IDIuMjUgMTJhOS43MjMgOS43MjMgMCAwMDMuMDY1IDcuMDk3QTkuNzE2IDkuNzE2IDAgMDAxMiAyMS43NWE5LjcxNiA5LjcxNiAwIDAwNi42ODUtMi42NTN6bS0xMi41NC0xLjI4NUE3LjQ4NiA3LjQ4NiAwIDAxMTIgMTVhNy40ODYgNy40ODYgMCAwMTUuODU1IDIuODEyQTguMjI0IDguMjI0IDAgMDExMiAyMC4yNWE4LjIyNCA4LjIyNCAwIDAxLTUuODU1LTIuNDM4ek0xNS43NSA5YTMuNzUgMy43NSAwIDExLTcuNSAwIDMuNzUgMy43NSAwIDAxNy41IDB6IiBjbGlwLXJ1bGU9ImV2ZW5vZGQiIC8+PC9zdmc+"

// Customer is the aggregate the ledger tracks: who owes what, since when,
// and until when. JSON tags match the persisted collection format.
type Customer struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	PendingAmount   Money  `json:"pendingAmount"`
	DueDate         string `json:"dueDate"`
	LastPaymentDate string `json:"lastPaymentDate"`
	Notes           string `json:"notes"`
	PhotoURL        string `json:"photoUrl"`
}

// CustomerInput carries every customer field except the id, which is
// assigned at creation and immutable thereafter.
type CustomerInput struct {
	Name            string
	Phone           string
	Address         string
	PendingAmount   Money
	DueDate         string
	LastPaymentDate string
	Notes           string
	PhotoURL        string
}

// NewCustomer creates a customer from the given input, validating the
// fields the ledger requires.
func NewCustomer(id string, input CustomerInput) (*Customer, error) {
	if id == "" {
		return nil, ErrCustomerNotFound
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(input.Phone) == "" {
		return nil, ErrPhoneRequired
	}
	if input.PendingAmount < 0 {
		return nil, ErrInvalidAmount
	}

	photoURL := input.PhotoURL
	if photoURL == "" {
		photoURL = DefaultAvatar
	}

	return &Customer{
		ID:              id,
		Name:            input.Name,
		Phone:           input.Phone,
		Address:         input.Address,
		PendingAmount:   input.PendingAmount,
		DueDate:         input.DueDate,
		LastPaymentDate: input.LastPaymentDate,
		Notes:           input.Notes,
		PhotoURL:        photoURL,
	}, nil
}

// ApplyPayment reduces the pending amount by the payment amount and records
// the payment date. Amounts that are not positive or exceed the current
// pending amount are rejected and leave the customer untouched.
func (c *Customer) ApplyPayment(amount Money, date string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > c.PendingAmount {
		return ErrInvalidAmount
	}

	c.PendingAmount -= amount
	if c.PendingAmount < 0 {
		c.PendingAmount = 0
	}
	c.LastPaymentDate = date

	return nil
}

// IsSettled reports whether the customer has no outstanding balance.
func (c *Customer) IsSettled() bool {
	return c.PendingAmount == 0
}
