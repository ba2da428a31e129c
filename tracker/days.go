package tracker

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/satheeshds/invoicetrack/models"
)

// OffsetKind tells which side of the due date an invoice sits on.
type OffsetKind string

const (
	OffsetPaidLate   OffsetKind = "paid_late"
	OffsetPaidEarly  OffsetKind = "paid_early"
	OffsetPaidOnTime OffsetKind = "paid_on_time"
	OffsetDueIn      OffsetKind = "due_in"
	OffsetOverdueBy  OffsetKind = "overdue_by"
)

// DayOffset is the whole-day distance between an invoice's due date and
// either its payment date (paid) or today (unpaid). Days is never negative;
// the direction is carried by Kind.
type DayOffset struct {
	Kind OffsetKind `json:"kind"`
	Days int        `json:"days"`
}

// DayOffsetOf computes the offset for inv as of today.
func DayOffsetOf(inv models.Invoice, today civil.Date) DayOffset {
	if inv.PaymentDate != nil {
		diff := inv.PaymentDate.DaysSince(inv.DueDate)
		switch {
		case diff > 0:
			return DayOffset{Kind: OffsetPaidLate, Days: diff}
		case diff < 0:
			return DayOffset{Kind: OffsetPaidEarly, Days: -diff}
		default:
			return DayOffset{Kind: OffsetPaidOnTime}
		}
	}

	diff := inv.DueDate.DaysSince(today)
	if diff >= 0 {
		return DayOffset{Kind: OffsetDueIn, Days: diff}
	}
	return DayOffset{Kind: OffsetOverdueBy, Days: -diff}
}

func (o DayOffset) String() string {
	switch o.Kind {
	case OffsetPaidLate:
		return fmt.Sprintf("Paid %d days late", o.Days)
	case OffsetPaidEarly:
		return fmt.Sprintf("Paid %d days early", o.Days)
	case OffsetPaidOnTime:
		return "Paid on time"
	case OffsetDueIn:
		return fmt.Sprintf("Due in %d days", o.Days)
	case OffsetOverdueBy:
		return fmt.Sprintf("Overdue by %d days", o.Days)
	}
	return ""
}

// DescribeDays renders the day offset of inv for the table's "Days" column.
func DescribeDays(inv models.Invoice, today civil.Date) string {
	return DayOffsetOf(inv, today).String()
}

// paymentDelay is the signed number of days between due date and payment,
// negative when paid early. Only meaningful for paid invoices.
func paymentDelay(inv models.Invoice) int {
	return inv.PaymentDate.DaysSince(inv.DueDate)
}
