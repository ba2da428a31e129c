// Package metrics exposes invoice collection metrics in Prometheus format.
// Collection figures are derived from the current snapshot on every scrape,
// so statuses roll over at midnight without a store change.
package metrics

import (
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/satheeshds/invoicetrack/models"
	"github.com/satheeshds/invoicetrack/store"
	"github.com/satheeshds/invoicetrack/tracker"
)

const namespace = "invoicetrack"

// Source is the read side of the invoice store.
type Source interface {
	Get() []models.Invoice
	Today() civil.Date
}

// Metrics owns a private registry so tests can create as many as they like.
type Metrics struct {
	registry  *prometheus.Registry
	mutations *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_changes_total",
			Help:      "Store changes by kind.",
		}, []string{"kind"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.mutations,
	)
	return m
}

// Watch registers the collection gauges for src. Call it once per source.
func (m *Metrics) Watch(src Source) {
	m.registry.MustRegister(newCollector(src))
}

// Observe counts a store change. Pass it to store.Subscribe.
func (m *Metrics) Observe(c store.Change) {
	m.mutations.WithLabelValues(string(c.Kind)).Inc()
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

type collector struct {
	src Source

	invoices      *prometheus.Desc
	outstanding   *prometheus.Desc
	overdue       *prometheus.Desc
	paidThisMonth *prometheus.Desc
	avgDelay      *prometheus.Desc
}

func newCollector(src Source) *collector {
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, labels, nil)
	}
	return &collector{
		src:           src,
		invoices:      desc("invoices", "Number of invoices by derived status.", "status"),
		outstanding:   desc("outstanding_amount", "Sum of amounts of unpaid invoices."),
		overdue:       desc("overdue_amount", "Sum of amounts of overdue invoices."),
		paidThisMonth: desc("paid_this_month_amount", "Sum of amounts paid in the current calendar month."),
		avgDelay:      desc("average_payment_delay_days", "Mean days between due date and payment date over paid invoices."),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.invoices
	ch <- c.outstanding
	ch <- c.overdue
	ch <- c.paidThisMonth
	ch <- c.avgDelay
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	sum := tracker.Summarize(c.src.Get(), c.src.Today())

	for _, st := range tracker.Statuses {
		ch <- prometheus.MustNewConstMetric(c.invoices, prometheus.GaugeValue, float64(sum.Distribution.Count(st)), st.String())
	}
	ch <- prometheus.MustNewConstMetric(c.outstanding, prometheus.GaugeValue, sum.Outstanding.Float64())
	ch <- prometheus.MustNewConstMetric(c.overdue, prometheus.GaugeValue, sum.Overdue.Float64())
	ch <- prometheus.MustNewConstMetric(c.paidThisMonth, prometheus.GaugeValue, sum.PaidThisMonth.Float64())
	ch <- prometheus.MustNewConstMetric(c.avgDelay, prometheus.GaugeValue, float64(sum.AvgDelayDays))
}
