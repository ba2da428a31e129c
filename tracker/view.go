package tracker

import (
	"slices"

	"cloud.google.com/go/civil"
	"github.com/satheeshds/invoicetrack/models"
)

// View is the state of one invoice table: the active query, the current page
// and the rows selected for bulk actions. Selection is keyed by invoice id and
// only makes sense for the visible set, so any change to the query sends the
// table back to page 1 and drops the selection.
type View struct {
	query    Query
	page     int
	selected map[string]struct{}
}

// NewView returns a view showing everything, sorted by invoice date, on page 1.
func NewView() *View {
	return &View{
		query:    Query{Status: FilterAll, Sort: SortByInvoiceDate},
		page:     1,
		selected: make(map[string]struct{}),
	}
}

func (v *View) Query() Query { return v.query }
func (v *View) Page() int { return v.page }

func (v *View) SetStatus(f StatusFilter) {
	if f == v.query.Status {
		return
	}
	v.query.Status = f
	v.reset()
}

func (v *View) SetSearch(s string) {
	if s == v.query.Search {
		return
	}
	v.query.Search = s
	v.reset()
}

func (v *View) SetSort(k SortKey) {
	if k == v.query.Sort {
		return
	}
	v.query.Sort = k
	v.reset()
}

// GoTo moves to page, clamped into the available range. The selection is kept.
func (v *View) GoTo(page, totalPages int) {
	v.page = ClampPage(page, totalPages)
}

// Toggle flips the selection of one row.
func (v *View) Toggle(id string) {
	if _, ok := v.selected[id]; ok {
		delete(v.selected, id)
		return
	}
	v.selected[id] = struct{}{}
}

// SelectPage selects exactly the rows of the current page, replacing any
// earlier selection.
func (v *View) SelectPage(items []models.Invoice) {
	clear(v.selected)
	for _, inv := range items {
		v.selected[inv.ID] = struct{}{}
	}
}

// AllSelected reports whether every row of a non-empty page is selected.
func (v *View) AllSelected(items []models.Invoice) bool {
	if len(items) == 0 {
		return false
	}
	for _, inv := range items {
		if !v.IsSelected(inv.ID) {
			return false
		}
	}
	return true
}

func (v *View) IsSelected(id string) bool {
	_, ok := v.selected[id]
	return ok
}

// Selected returns the selected ids in sorted order.
func (v *View) Selected() []string {
	out := make([]string, 0, len(v.selected))
	for id := range v.selected {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (v *View) ClearSelection() { clear(v.selected) }

// Render applies the view to invs: it runs the pipeline, clamps the current
// page against the result and returns that page.
func (v *View) Render(invs []models.Invoice, today civil.Date, pageSize int) Page {
	rows := Apply(invs, v.query, today)
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	v.page = ClampPage(v.page, TotalPages(len(rows), pageSize))
	return Paginate(rows, v.page, pageSize)
}

func (v *View) reset() {
	v.page = 1
	clear(v.selected)
}
