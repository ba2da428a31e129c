package handlers

import "net/http"

type healthStatus struct {
	Status   string `json:"status"`
	Invoices int    `json:"invoices"`
}

// Health reports whether the invoice collection has been loaded. It sits
// outside /api/v1 and basic auth so probes can reach it.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !h.store.Loaded() {
		writeError(w, http.StatusServiceUnavailable, "invoices not loaded")
		return
	}
	writeJSON(w, http.StatusOK, healthStatus{Status: "ok", Invoices: len(h.store.Get())})
}
