package metrics

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satheeshds/invoicetrack/models"
	"github.com/satheeshds/invoicetrack/store"
)

// fakeSource is a fixed collection whose calendar day can be moved.
type fakeSource struct {
	mu    sync.Mutex
	invs  []models.Invoice
	today civil.Date
}

func (f *fakeSource) Get() []models.Invoice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invs
}

func (f *fakeSource) Today() civil.Date {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.today
}

func (f *fakeSource) setToday(d civil.Date) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.today = d
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestWatch(t *testing.T) {
	t.Parallel()
	today := civil.Date{Year: 2024, Month: time.June, Day: 15}
	paidOn := today.AddDays(-8)

	src := &fakeSource{today: today, invs: []models.Invoice{
		{ID: "A", Amount: models.NewMoneyFromInt(1500), DueDate: today.AddDays(-1)},
		{ID: "B", Amount: models.NewMoneyFromInt(700), DueDate: today.AddDays(5)},
		{ID: "C", Amount: models.NewMoneyFromInt(300), DueDate: today.AddDays(-10), PaymentDate: &paidOn},
	}}

	m := New()
	m.Watch(src)

	body := scrape(t, m)
	assert.Contains(t, body, `invoicetrack_invoices{status="overdue"} 1`)
	assert.Contains(t, body, `invoicetrack_invoices{status="pending"} 1`)
	assert.Contains(t, body, `invoicetrack_invoices{status="paid"} 1`)
	assert.Contains(t, body, "invoicetrack_outstanding_amount 2200")
	assert.Contains(t, body, "invoicetrack_overdue_amount 1500")
	assert.Contains(t, body, "invoicetrack_paid_this_month_amount 300")
	assert.Contains(t, body, "invoicetrack_average_payment_delay_days 2")
	assert.Contains(t, body, "go_goroutines")
}

func TestWatch_StatusesRollOverWithoutChanges(t *testing.T) {
	t.Parallel()
	today := civil.Date{Year: 2024, Month: time.June, Day: 15}
	src := &fakeSource{today: today, invs: []models.Invoice{
		{ID: "A", Amount: models.NewMoneyFromInt(400), DueDate: today},
	}}

	m := New()
	m.Watch(src)

	body := scrape(t, m)
	assert.Contains(t, body, `invoicetrack_invoices{status="pending"} 1`)
	assert.Contains(t, body, `invoicetrack_invoices{status="overdue"} 0`)
	assert.Contains(t, body, "invoicetrack_overdue_amount 0")

	src.setToday(today.AddDays(1))

	body = scrape(t, m)
	assert.Contains(t, body, `invoicetrack_invoices{status="pending"} 0`)
	assert.Contains(t, body, `invoicetrack_invoices{status="overdue"} 1`)
	assert.Contains(t, body, "invoicetrack_overdue_amount 400")
}

func TestObserve(t *testing.T) {
	t.Parallel()
	m := New()
	m.Observe(store.Change{Kind: store.ChangeLoad})
	m.Observe(store.Change{Kind: store.ChangeMarkPaid})
	m.Observe(store.Change{Kind: store.ChangeMarkPaid})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutations.WithLabelValues("load")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.mutations.WithLabelValues("mark_paid")))
	assert.Contains(t, scrape(t, m), `invoicetrack_store_changes_total{kind="load"} 1`)
}
