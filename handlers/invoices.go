package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"

	"github.com/satheeshds/invoicetrack/models"
	"github.com/satheeshds/invoicetrack/tracker"
)

// invoiceRow is an invoice with the values derived from it as of today.
type invoiceRow struct {
	models.Invoice
	Status     tracker.Status    `json:"status"`
	Days       string            `json:"days"`
	DaysOffset tracker.DayOffset `json:"days_offset"`
}

func newInvoiceRow(inv models.Invoice, today civil.Date) invoiceRow {
	offset := tracker.DayOffsetOf(inv, today)
	return invoiceRow{
		Invoice:    inv,
		Status:     tracker.Classify(inv, today),
		Days:       offset.String(),
		DaysOffset: offset,
	}
}

type invoicePage struct {
	Items      []invoiceRow `json:"items"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalCount int          `json:"total_count"`
	TotalPages int          `json:"total_pages"`
	From       int          `json:"from"`
	To         int          `json:"to"`
	Pages      []int        `json:"pages"`
}

type markPaidInput struct {
	IDs []string `json:"ids"`
}

type markPaidResult struct {
	Updated int `json:"updated"`
}

// parseQuery reads the status, search and sort parameters shared by the list
// and export endpoints.
func parseQuery(r *http.Request) (tracker.Query, error) {
	q := r.URL.Query()

	status, err := tracker.ParseStatusFilter(q.Get("status"))
	if err != nil {
		return tracker.Query{}, models.NewValidationError("status", err.Error())
	}
	sort, err := tracker.ParseSortKey(q.Get("sort"))
	if err != nil {
		return tracker.Query{}, models.NewValidationError("sort", err.Error())
	}
	return tracker.Query{Status: status, Search: q.Get("search"), Sort: sort}, nil
}

// MaxPageSize caps the page_size parameter.
const MaxPageSize = 100

// positiveIntParam reads a 1-based integer parameter, clamped to limit when
// limit is positive.
func positiveIntParam(r *http.Request, name string, fallback, limit int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, models.NewValidationError(name, "must be a positive integer")
	}
	if limit > 0 && n > limit {
		n = limit
	}
	return n, nil
}

// ListInvoices lists invoices
// @Summary      List invoices
// @Description  Filter, search, sort and paginate invoices. Each row carries its derived status and day offset.
// @Tags         invoices
// @Produce      json
// @Param        status     query     string  false  "all, paid, pending or overdue"
// @Param        search     query     string  false  "Case-insensitive match on invoice id or customer name"
// @Param        sort       query     string  false  "invoiceDate (default), dueDate or amount"
// @Param        page       query     int     false  "1-based page, clamped to the available pages"
// @Param        page_size  query     int     false  "Rows per page, at most 100"
// @Success      200        {object}  Response{data=invoicePage}
// @Failure      400        {object}  Response{error=string}
// @Router       /invoices [get]
// @Security     BasicAuth
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	query, err := parseQuery(r)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	page, err := positiveIntParam(r, "page", 1, 0)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	size, err := positiveIntParam(r, "page_size", h.table.PageSize, MaxPageSize)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}

	today := h.store.Today()
	rows := tracker.Apply(h.store.Get(), query, today)
	page = tracker.ClampPage(page, tracker.TotalPages(len(rows), size))
	p := tracker.Paginate(rows, page, size)

	out := invoicePage{
		Items:      make([]invoiceRow, 0, len(p.Items)),
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
		From:       p.From,
		To:         p.To,
		Pages:      tracker.PageWindow(p.Page, p.TotalPages, h.table.PagerWidth),
	}
	for _, inv := range p.Items {
		out.Items = append(out.Items, newInvoiceRow(inv, today))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetInvoice retrieves a single invoice by ID
// @Summary      Get invoice
// @Description  Get a single invoice with its derived status.
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  Response{data=invoiceRow}
// @Failure      404  {object}  Response{error=string}
// @Router       /invoices/{id} [get]
// @Security     BasicAuth
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.store.Find(chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newInvoiceRow(inv, h.store.Today()))
}

// CreateInvoice creates a new invoice
// @Summary      Create invoice
// @Description  Create an unpaid invoice. The due date is the invoice date plus the payment terms (30 days when omitted).
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        invoice  body      models.InvoiceInput  true  "Invoice contents"
// @Success      201      {object}  Response{data=invoiceRow}
// @Failure      400      {object}  Response{error=string}
// @Router       /invoices [post]
// @Security     BasicAuth
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var input models.InvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	inv, err := h.store.Add(r.Context(), input)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newInvoiceRow(inv, h.store.Today()))
}

// MarkPaid marks invoices as paid today
// @Summary      Mark invoices paid
// @Description  Set today's date as the payment date of every listed unpaid invoice. Paid invoices and unknown ids are skipped; an empty list updates nothing.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        ids  body      markPaidInput  true  "Invoice ids"
// @Success      200  {object}  Response{data=markPaidResult}
// @Failure      400  {object}  Response{error=string}
// @Router       /invoices/mark-paid [post]
// @Security     BasicAuth
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var input markPaidInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	n, err := h.store.MarkPaid(r.Context(), input.IDs)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, markPaidResult{Updated: n})
}

// ExportInvoices exports the filtered invoices as CSV
// @Summary      Export invoices
// @Description  Download every invoice matching the filter, search and sort as CSV. Pagination is ignored.
// @Tags         invoices
// @Produce      text/csv
// @Param        status  query     string  false  "all, paid, pending or overdue"
// @Param        search  query     string  false  "Case-insensitive match on invoice id or customer name"
// @Param        sort    query     string  false  "invoiceDate (default), dueDate or amount"
// @Success      200     {file}    file
// @Success      204     "No invoices to export"
// @Failure      400     {object}  Response{error=string}
// @Router       /invoices/export [get]
// @Security     BasicAuth
func (h *Handler) ExportInvoices(w http.ResponseWriter, r *http.Request) {
	query, err := parseQuery(r)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}

	today := h.store.Today()
	rows := tracker.Apply(h.store.Get(), query, today)

	var buf bytes.Buffer
	if err := tracker.WriteCSV(&buf, rows, today); err != nil {
		if errors.Is(err, tracker.ErrNothingToExport) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.writeStoreError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="invoices.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
