package store

import (
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/satheeshds/invoicetrack/models"
)

var seedTerms = [...]int{7, 15, 30, 45, 60}

// Seed generates n sample invoices spread over the 40 days before today.
// Every fourth invoice is paid two days after its due date.
func Seed(n int, today civil.Date) []models.Invoice {
	invs := make([]models.Invoice, 0, max(n, 0))
	for i := range max(n, 0) {
		terms := seedTerms[i%len(seedTerms)]
		issued := today.AddDays(-(i % 40))
		due := issued.AddDays(terms)

		inv := models.Invoice{
			ID:           fmt.Sprintf("INV-%04d", i+1),
			CustomerName: fmt.Sprintf("Customer %d", i+1),
			Amount:       models.NewMoneyFromInt(int64(10000 + (i%10)*5000)),
			InvoiceDate:  issued,
			PaymentTerms: terms,
			DueDate:      due,
		}
		if i%4 == 0 {
			paid := due.AddDays(2)
			inv.PaymentDate = &paid
		}
		invs = append(invs, inv)
	}
	return invs
}
