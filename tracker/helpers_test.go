package tracker

import (
	"cloud.google.com/go/civil"
	"github.com/satheeshds/invoicetrack/models"
)

var today = civil.Date{Year: 2024, Month: 6, Day: 15}

func day(offset int) civil.Date { return today.AddDays(offset) }

func ptr(d civil.Date) *civil.Date { return &d }

func unpaid(id string, due civil.Date, amount int64) models.Invoice {
	return models.Invoice{
		ID:           id,
		CustomerName: "Customer " + id,
		Amount:       models.NewMoneyFromInt(amount),
		InvoiceDate:  due.AddDays(-30),
		PaymentTerms: 30,
		DueDate:      due,
	}
}

func paid(id string, due, on civil.Date, amount int64) models.Invoice {
	inv := unpaid(id, due, amount)
	inv.PaymentDate = ptr(on)
	return inv
}

func ids(invs []models.Invoice) []string {
	out := make([]string, len(invs))
	for i, inv := range invs {
		out[i] = inv.ID
	}
	return out
}
