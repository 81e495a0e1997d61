package router

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/udhari/ledger-service/internal/interface/http/handler"
	"github.com/udhari/ledger-service/internal/interface/http/middleware"
	"go.uber.org/zap"
)

func NewRouter(handlers *handler.Handlers, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(30 * time.Second))

	// Routes
	r.Get("/health", handlers.Ledger.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", handlers.Ledger.ListCustomers)
			r.Post("/", handlers.Ledger.CreateCustomer)
			r.Route("/{customer_id}", func(r chi.Router) {
				r.Get("/", handlers.Ledger.GetCustomer)
				r.Put("/", handlers.Ledger.UpdateCustomer)
				r.Delete("/", handlers.Ledger.DeleteCustomer)
				r.Post("/payments", handlers.Ledger.ApplyPayment)
				r.Post("/reminder", handlers.Ledger.RequestReminder)
			})
		})

		r.Get("/payments", handlers.Ledger.ListPayments)
		r.Get("/dashboard", handlers.Ledger.Dashboard)

		r.Get("/reports/customers", handlers.Ledger.CustomersReport)
		r.Get("/reports/payments", handlers.Ledger.PaymentsReport)

		r.Get("/settings/theme", handlers.Ledger.GetTheme)
		r.Put("/settings/theme", handlers.Ledger.SetTheme)
	})

	return r
}
