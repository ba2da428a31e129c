// Package tracker derives invoice state from stored records: status
// classification, day offsets, dashboard aggregates and the filter, sort and
// paginate pipeline behind the invoice table. Everything here is pure; "today"
// is always passed in by the caller and fixed for the whole computation.
package tracker

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/satheeshds/invoicetrack/models"
)

// Status is the derived state of an invoice.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
	StatusOverdue Status = "overdue"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPaid, StatusPending, StatusOverdue}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPaid, StatusPending, StatusOverdue:
		return true
	}
	return false
}

// Label is the capitalized form used in exports and chart legends.
func (s Status) Label() string {
	switch s {
	case StatusPaid:
		return "Paid"
	case StatusPending:
		return "Pending"
	case StatusOverdue:
		return "Overdue"
	}
	return string(s)
}

// Today returns the calendar date of now in loc. Callers compute it once per
// operation and pass the same value to every classification in that pass.
func Today(now time.Time, loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.Local
	}
	return civil.DateOf(now.In(loc))
}

// Classify derives the status of inv as of today. A recorded payment wins
// over any due-date comparison; an unpaid invoice is overdue only when its
// due date is strictly before today.
func Classify(inv models.Invoice, today civil.Date) Status {
	if inv.PaymentDate != nil {
		return StatusPaid
	}
	if inv.DueDate.Before(today) {
		return StatusOverdue
	}
	return StatusPending
}

// StatusFilter selects invoices by derived status. The zero value and
// FilterAll keep everything.
type StatusFilter string

const FilterAll StatusFilter = "all"

// ParseStatusFilter accepts "all", "" or any Status value, case-insensitively.
func ParseStatusFilter(s string) (StatusFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == string(FilterAll) {
		return FilterAll, nil
	}
	if !Status(s).IsValid() {
		return "", fmt.Errorf("unknown status filter %q (want all, paid, pending or overdue)", s)
	}
	return StatusFilter(s), nil
}

// Matches reports whether status passes the filter.
func (f StatusFilter) Matches(status Status) bool {
	return f == "" || f == FilterAll || Status(f) == status
}
