package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/udhari/ledger-service/internal/application/report"
	"github.com/udhari/ledger-service/internal/application/service"
	"github.com/udhari/ledger-service/internal/domain"
	"github.com/udhari/ledger-service/internal/interface/http/dto"
	"go.uber.org/zap"
)

const defaultRecentPayments = 5

type LedgerHandler struct {
	ledger *service.LedgerService
	logger *zap.Logger
}

func NewLedgerHandler(ledger *service.LedgerService, logger *zap.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledger: ledger,
		logger: logger,
	}
}

// ListCustomers returns the filtered and sorted customer list.
// Query params: search, sort (field name or "none"), direction (asc|desc).
func (h *LedgerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	field := domain.SortNone
	if name := r.URL.Query().Get("sort"); name != "" {
		var ok bool
		field, ok = domain.ParseSortField(name)
		if !ok {
			h.respondError(w, http.StatusBadRequest, "unknown sort field", errors.New(name))
			return
		}
	}

	direction := domain.Ascending
	if r.URL.Query().Get("direction") == "desc" {
		direction = domain.Descending
	}

	customers := domain.FilterAndSortCustomers(h.ledger.Customers(), search, field, direction)

	today := time.Now()
	response := make([]dto.CustomerResponse, len(customers))
	for i, c := range customers {
		response[i] = dto.NewCustomerResponse(c, today)
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(response),
		"customers": response,
	})
}

func (h *LedgerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation failed", err)
		return
	}

	input, err := req.ToInput()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid pending amount", err)
		return
	}

	customer, err := h.ledger.CreateCustomer(r.Context(), input)
	if err != nil {
		h.respondDomainError(w, "failed to create customer", err)
		return
	}

	h.respondJSON(w, http.StatusCreated, dto.NewCustomerResponse(customer, time.Now()))
}

func (h *LedgerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customer_id")

	customer, err := h.ledger.Customer(customerID)
	if err != nil {
		h.respondDomainError(w, "failed to get customer", err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.NewCustomerResponse(customer, time.Now()))
}

func (h *LedgerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customer_id")

	var req dto.CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation failed", err)
		return
	}

	input, err := req.ToInput()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid pending amount", err)
		return
	}

	customer, err := h.ledger.UpdateCustomer(r.Context(), customerID, input)
	if err != nil {
		h.respondDomainError(w, "failed to update customer", err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.NewCustomerResponse(customer, time.Now()))
}

func (h *LedgerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customer_id")

	if err := h.ledger.DeleteCustomer(r.Context(), customerID); err != nil {
		h.respondDomainError(w, "failed to delete customer", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ApplyPayment records a payment against the customer in the URL.
func (h *LedgerHandler) ApplyPayment(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customer_id")

	var req dto.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation failed", err)
		return
	}

	amount, err := req.GetAmount()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid amount", err)
		return
	}

	payment, err := h.ledger.ApplyPayment(r.Context(), customerID, amount)
	if err != nil {
		h.respondDomainError(w, "failed to apply payment", err)
		return
	}

	h.respondJSON(w, http.StatusCreated, dto.NewPaymentResponse(payment))
}

func (h *LedgerHandler) RequestReminder(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customer_id")

	if err := h.ledger.RequestReminder(r.Context(), customerID); err != nil {
		h.respondDomainError(w, "failed to request reminder", err)
		return
	}

	h.respondJSON(w, http.StatusAccepted, map[string]string{
		"message": "reminder queued (simulated delivery)",
	})
}

// ListPayments returns payments most recent first, optionally limited.
func (h *LedgerHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments := h.ledger.Payments()

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			h.respondError(w, http.StatusBadRequest, "limit must be a non-negative integer", err)
			return
		}
		payments = domain.RecentPayments(payments, limit)
	}

	response := make([]dto.PaymentResponse, len(payments))
	for i, p := range payments {
		response[i] = dto.NewPaymentResponse(p)
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(response),
		"payments": response,
	})
}

// Dashboard returns the aggregate stats plus the most recent payments.
func (h *LedgerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats := domain.ComputeDashboardStats(h.ledger.Customers(), time.Now())
	recent := domain.RecentPayments(h.ledger.Payments(), defaultRecentPayments)

	recentResponse := make([]dto.PaymentResponse, len(recent))
	for i, p := range recent {
		recentResponse[i] = dto.NewPaymentResponse(p)
	}

	h.respondJSON(w, http.StatusOK, dto.DashboardResponse{
		TotalPending:   stats.TotalPending.String(),
		TotalCustomers: stats.TotalCustomers,
		UpcomingDues:   stats.UpcomingDues,
		RecentPayments: recentResponse,
	})
}

// CustomersReport serves the customer collection as a CSV download.
func (h *LedgerHandler) CustomersReport(w http.ResponseWriter, r *http.Request) {
	csv := report.CustomersCSV(h.ledger.Customers())
	h.respondCSV(w, report.CustomersFilename, csv)
}

// PaymentsReport serves the payment collection, joined with customer names,
// as a CSV download.
func (h *LedgerHandler) PaymentsReport(w http.ResponseWriter, r *http.Request) {
	rows := report.PaymentRows(h.ledger.Payments(), h.ledger.Customers())
	csv := report.PaymentsCSV(rows)
	h.respondCSV(w, report.PaymentsFilename, csv)
}

func (h *LedgerHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, dto.ThemeResponse{Theme: h.ledger.Theme()})
}

func (h *LedgerHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req dto.ThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.ledger.SetTheme(r.Context(), req.Theme); err != nil {
		h.respondDomainError(w, "failed to set theme", err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.ThemeResponse{Theme: req.Theme})
}

// HealthCheck handles health check endpoint
func (h *LedgerHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// respondDomainError maps the ledger's typed rejections to HTTP statuses.
func (h *LedgerHandler) respondDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		h.respondError(w, http.StatusNotFound, message, err)
	case errors.Is(err, domain.ErrInvalidAmount):
		h.respondError(w, http.StatusUnprocessableEntity, message, err)
	case errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrPhoneRequired),
		errors.Is(err, domain.ErrInvalidTheme):
		h.respondError(w, http.StatusBadRequest, message, err)
	default:
		h.logger.Error(message, zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, message, err)
	}
}

func (h *LedgerHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *LedgerHandler) respondCSV(w http.ResponseWriter, filename, body string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

func (h *LedgerHandler) respondError(w http.ResponseWriter, status int, message string, err error) {
	response := dto.ErrorResponse{
		Error: message,
	}
	if err != nil {
		response.Message = err.Error()
	}
	h.respondJSON(w, status, response)
}
