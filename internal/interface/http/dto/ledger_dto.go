package dto

import (
	"errors"
	"time"

	"github.com/udhari/ledger-service/internal/domain"
)

// CustomerRequest is the create/update payload. Amounts travel as decimal
// rupee strings and dates as YYYY-MM-DD, matching the report format.
type CustomerRequest struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	PendingAmount   string `json:"pending_amount"`
	DueDate         string `json:"due_date"`
	LastPaymentDate string `json:"last_payment_date"`
	Notes           string `json:"notes"`
	PhotoURL        string `json:"photo_url"`
}

func (r *CustomerRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.Phone == "" {
		return errors.New("phone is required")
	}
	if r.PendingAmount != "" {
		if _, err := domain.ParseMoney(r.PendingAmount); err != nil {
			return errors.New("pending_amount must be a non-negative decimal")
		}
	}
	for _, date := range []string{r.DueDate, r.LastPaymentDate} {
		if date == "" {
			continue
		}
		if _, err := time.Parse(domain.DateLayout, date); err != nil {
			return errors.New("dates must be in format 'YYYY-MM-DD'")
		}
	}
	return nil
}

// ToInput converts the request to a domain input. Validate first.
func (r *CustomerRequest) ToInput() (domain.CustomerInput, error) {
	var pending domain.Money
	if r.PendingAmount != "" {
		var err error
		pending, err = domain.ParseMoney(r.PendingAmount)
		if err != nil {
			return domain.CustomerInput{}, err
		}
	}
	return domain.CustomerInput{
		Name:            r.Name,
		Phone:           r.Phone,
		Address:         r.Address,
		PendingAmount:   pending,
		DueDate:         r.DueDate,
		LastPaymentDate: r.LastPaymentDate,
		Notes:           r.Notes,
		PhotoURL:        r.PhotoURL,
	}, nil
}

type PaymentRequest struct {
	Amount string `json:"amount"`
}

func (r *PaymentRequest) Validate() error {
	if r.Amount == "" {
		return errors.New("amount is required")
	}
	if _, err := domain.ParseMoney(r.Amount); err != nil {
		return errors.New("amount must be a positive decimal")
	}
	return nil
}

func (r *PaymentRequest) GetAmount() (domain.Money, error) {
	return domain.ParseMoney(r.Amount)
}

type ThemeRequest struct {
	Theme string `json:"theme"`
}

type CustomerResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	PendingAmount   string `json:"pending_amount"`
	DueDate         string `json:"due_date,omitempty"`
	LastPaymentDate string `json:"last_payment_date,omitempty"`
	Notes           string `json:"notes,omitempty"`
	PhotoURL        string `json:"photo_url"`
	Status          string `json:"status"`
}

func NewCustomerResponse(c domain.Customer, today time.Time) CustomerResponse {
	return CustomerResponse{
		ID:              c.ID,
		Name:            c.Name,
		Phone:           c.Phone,
		Address:         c.Address,
		PendingAmount:   c.PendingAmount.String(),
		DueDate:         c.DueDate,
		LastPaymentDate: c.LastPaymentDate,
		Notes:           c.Notes,
		PhotoURL:        c.PhotoURL,
		Status:          string(domain.ClassifyStatus(c, today)),
	}
}

type PaymentResponse struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Amount     string `json:"amount"`
	Date       string `json:"date"`
}

func NewPaymentResponse(p domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		CustomerID: p.CustomerID,
		Amount:     p.Amount.String(),
		Date:       p.Date,
	}
}

type DashboardResponse struct {
	TotalPending   string            `json:"total_pending"`
	TotalCustomers int               `json:"total_customers"`
	UpcomingDues   int               `json:"upcoming_dues"`
	RecentPayments []PaymentResponse `json:"recent_payments"`
}

type ThemeResponse struct {
	Theme string `json:"theme"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
