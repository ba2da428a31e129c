package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"cloud.google.com/go/civil"

	"github.com/satheeshds/invoicetrack/config"
	"github.com/satheeshds/invoicetrack/models"
	"github.com/satheeshds/invoicetrack/store"
)

// InvoiceStore is the part of store.Store the handlers use.
type InvoiceStore interface {
	Get() []models.Invoice
	Find(id string) (models.Invoice, error)
	Add(ctx context.Context, in models.InvoiceInput) (models.Invoice, error)
	MarkPaid(ctx context.Context, ids []string) (int, error)
	Today() civil.Date
	Loaded() bool
	Pending() bool
}

// Handler serves the invoice API.
type Handler struct {
	store  InvoiceStore
	table  config.TableConfig
	logger *slog.Logger
}

func New(s InvoiceStore, table config.TableConfig, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: s, table: table, logger: logger.With("component", "http")}
}

// Response is the standard JSON envelope for all API responses.
type Response struct {
	Data    any                 `json:"data"`
	Error   string              `json:"error,omitempty"`
	Details []models.FieldError `json:"details,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Data: data})
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Error: msg})
}

// writeStoreError maps domain errors onto status codes.
func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(Response{Error: "validation failed", Details: verr.Errors})
	case errors.Is(err, models.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, "invoice not found")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), errors.Is(err, store.ErrNotLoaded):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
