package tracker

import (
	"fmt"
	"slices"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/satheeshds/invoicetrack/models"
)

// DefaultPageSize is the number of rows the invoice table shows per page.
const DefaultPageSize = 10

// SortKey orders the invoice table.
type SortKey string

const (
	SortByInvoiceDate SortKey = "invoiceDate"
	SortByDueDate     SortKey = "dueDate"
	SortByAmount      SortKey = "amount"
)

// ParseSortKey accepts the three sort keys plus "date" and "" as aliases for
// the invoice-date default.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.TrimSpace(s) {
	case "", "date", string(SortByInvoiceDate):
		return SortByInvoiceDate, nil
	case string(SortByDueDate):
		return SortByDueDate, nil
	case string(SortByAmount):
		return SortByAmount, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want invoiceDate, dueDate or amount)", s)
}

// Query describes the filter, search and sort applied to the table.
type Query struct {
	Status StatusFilter
	Search string
	Sort   SortKey
}

// Apply runs the status filter, the text search and a stable sort over invs,
// in that order, and returns a new slice. invs itself is never reordered.
func Apply(invs []models.Invoice, q Query, today civil.Date) []models.Invoice {
	needle := strings.ToLower(q.Search)

	out := make([]models.Invoice, 0, len(invs))
	for _, inv := range invs {
		if !q.Status.Matches(Classify(inv, today)) {
			continue
		}
		if needle != "" && !matchesSearch(inv, needle) {
			continue
		}
		out = append(out, inv)
	}

	slices.SortStableFunc(out, compareFor(q.Sort))
	return out
}

func matchesSearch(inv models.Invoice, needle string) bool {
	return strings.Contains(strings.ToLower(inv.ID), needle) ||
		strings.Contains(strings.ToLower(inv.CustomerName), needle)
}

func compareFor(key SortKey) func(a, b models.Invoice) int {
	switch key {
	case SortByAmount:
		return func(a, b models.Invoice) int { return b.Amount.Cmp(a.Amount) }
	case SortByDueDate:
		return func(a, b models.Invoice) int { return compareDates(a.DueDate, b.DueDate) }
	default:
		return func(a, b models.Invoice) int { return compareDates(a.InvoiceDate, b.InvoiceDate) }
	}
}

func compareDates(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

// Page is one page of the filtered, sorted table.
type Page struct {
	Items      []models.Invoice
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
	// From and To are the 1-based positions of the first and last row shown,
	// both 0 when the page is empty.
	From int
	To   int
}

// TotalPages returns ceil(n/size).
func TotalPages(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	pages := n / size
	if n%size != 0 {
		pages++
	}
	return pages
}

// ClampPage moves page into [1, totalPages], or to 1 when there are no pages.
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate slices items[(page-1)*size : page*size]. page must already be
// clamped; an out-of-range page yields an empty Items slice.
func Paginate(items []models.Invoice, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	p := Page{
		Page:       page,
		PageSize:   size,
		TotalCount: len(items),
		TotalPages: TotalPages(len(items), size),
		Items:      []models.Invoice{},
	}

	if page < 1 || page > p.TotalPages {
		return p
	}
	start := (page - 1) * size
	end := start + min(size, len(items)-start)

	p.Items = items[start:end]
	p.From = start + 1
	p.To = end
	return p
}

// PageWindow returns at most width consecutive page numbers around page, the
// way the table's pager lays out its numbered buttons.
func PageWindow(page, totalPages, width int) []int {
	if totalPages <= 0 || width <= 0 {
		return []int{}
	}
	n := min(totalPages, width)
	half := width / 2

	var first int
	switch {
	case totalPages <= width || page <= half+1:
		first = 1
	case page >= totalPages-half:
		first = totalPages - width + 1
	default:
		first = page - half
	}

	out := make([]int, n)
	for i := range out {
		out[i] = first + i
	}
	return out
}
