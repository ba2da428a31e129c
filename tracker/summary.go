package tracker

import (
	"math"

	"cloud.google.com/go/civil"
	"github.com/satheeshds/invoicetrack/models"
)

// DefaultMinLabelShare is the smallest share of the total a chart slice needs
// before it gets a percentage label.
const DefaultMinLabelShare = 0.05

// Summary holds the dashboard totals for one pass over the collection.
type Summary struct {
	Outstanding   models.Money `json:"outstanding"`
	Overdue       models.Money `json:"overdue"`
	PaidThisMonth models.Money `json:"paid_this_month"`
	AvgDelayDays  int          `json:"avg_delay_days"`
	PaidCount     int          `json:"paid_count"`
	Distribution  Distribution `json:"distribution"`
}

// Distribution counts invoices per status.
type Distribution struct {
	Paid    int `json:"paid"`
	Pending int `json:"pending"`
	Overdue int `json:"overdue"`
	Total   int `json:"total"`
}

// Count returns the number of invoices with the given status.
func (d Distribution) Count(s Status) int {
	switch s {
	case StatusPaid:
		return d.Paid
	case StatusPending:
		return d.Pending
	case StatusOverdue:
		return d.Overdue
	}
	return 0
}

// Share is the fraction of all invoices with status s, 0 for an empty collection.
func (d Distribution) Share(s Status) float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(d.Count(s)) / float64(d.Total)
}

// Slice is one segment of the status chart.
type Slice struct {
	Status  Status  `json:"status"`
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Share   float64 `json:"share"`
	Percent int     `json:"percent"`
	Labeled bool    `json:"labeled"`
}

// Slices returns one slice per status. Slices below minLabelShare are kept but
// marked unlabeled.
func (d Distribution) Slices(minLabelShare float64) []Slice {
	out := make([]Slice, 0, len(Statuses))
	for _, s := range Statuses {
		share := d.Share(s)
		out = append(out, Slice{
			Status:  s,
			Label:   s.Label(),
			Count:   d.Count(s),
			Share:   share,
			Percent: int(math.Round(share * 100)),
			Labeled: d.Total > 0 && share >= minLabelShare,
		})
	}
	return out
}

func (d *Distribution) add(s Status) {
	switch s {
	case StatusPaid:
		d.Paid++
	case StatusPending:
		d.Pending++
	case StatusOverdue:
		d.Overdue++
	}
	d.Total++
}

// Summarize aggregates invs in a single traversal. Every invoice is
// classified against the same today.
func Summarize(invs []models.Invoice, today civil.Date) Summary {
	var (
		sum        Summary
		delayTotal int
	)

	for _, inv := range invs {
		status := Classify(inv, today)
		sum.Distribution.add(status)

		switch status {
		case StatusOverdue:
			sum.Overdue = sum.Overdue.Add(inv.Amount)
			sum.Outstanding = sum.Outstanding.Add(inv.Amount)
		case StatusPending:
			sum.Outstanding = sum.Outstanding.Add(inv.Amount)
		case StatusPaid:
			paid := *inv.PaymentDate
			if paid.Year == today.Year && paid.Month == today.Month {
				sum.PaidThisMonth = sum.PaidThisMonth.Add(inv.Amount)
			}
			delayTotal += paymentDelay(inv)
			sum.PaidCount++
		}
	}

	sum.AvgDelayDays = roundHalfUp(delayTotal, sum.PaidCount)
	return sum
}

// roundHalfUp divides total by n and rounds to the nearest integer with halves
// going toward positive infinity (-2.5 becomes -2). It returns 0 when n is 0.
func roundHalfUp(total, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Floor(float64(total)/float64(n) + 0.5))
}
