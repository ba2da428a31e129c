package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/satheeshds/invoicetrack/config"
)

// NewRouter wires the API, metrics and swagger UI.
func NewRouter(h *Handler, metrics http.Handler, auth config.AuthConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	if metrics != nil {
		r.Handle("/metrics", metrics)
	}

	// API routes with basic auth
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(BasicAuth(auth, logger))

		r.Get("/invoices", h.ListInvoices)
		r.Post("/invoices", h.CreateInvoice)
		r.Get("/invoices/export", h.ExportInvoices)
		r.Post("/invoices/mark-paid", h.MarkPaid)
		r.Get("/invoices/{id}", h.GetInvoice)

		r.Get("/dashboard", h.GetDashboard)
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
