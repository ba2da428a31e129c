package handlers

import (
	"net/http"

	"github.com/satheeshds/invoicetrack/models"
	"github.com/satheeshds/invoicetrack/tracker"
)

type dashboardData struct {
	tracker.Summary
	TotalInvoices int             `json:"total_invoices"`
	Slices        []tracker.Slice `json:"slices"`
	PaymentTerms  []int           `json:"payment_terms"`
	Pending       bool            `json:"pending"`
}

// GetDashboard retrieves dashboard summary statistics
// @Summary      Get dashboard
// @Description  Outstanding and overdue totals, amount paid this month, average payment delay and the status distribution.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  Response{data=dashboardData}
// @Router       /dashboard [get]
// @Security     BasicAuth
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	invs := h.store.Get()
	sum := tracker.Summarize(invs, h.store.Today())

	writeJSON(w, http.StatusOK, dashboardData{
		Summary:       sum,
		TotalInvoices: len(invs),
		Slices:        sum.Distribution.Slices(h.table.MinLabelShare),
		PaymentTerms:  models.StandardPaymentTerms,
		Pending:       h.store.Pending(),
	})
}
