package tracker

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/civil"
	"github.com/satheeshds/invoicetrack/models"
)

// ErrNothingToExport is returned instead of writing a header-only file.
var ErrNothingToExport = errors.New("no invoices to export")

// ExportHeader is the column order of the CSV export.
var ExportHeader = []string{
	"Invoice ID",
	"Customer Name",
	"Amount",
	"Invoice Date",
	"Due Date",
	"Payment Date",
	"Status",
}

// WriteCSV writes invs as CSV, header first, classifying each row as of today.
func WriteCSV(w io.Writer, invs []models.Invoice, today civil.Date) error {
	if len(invs) == 0 {
		return ErrNothingToExport
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, inv := range invs {
		if err := cw.Write(exportRow(inv, today)); err != nil {
			return fmt.Errorf("write csv row %s: %w", inv.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportRow(inv models.Invoice, today civil.Date) []string {
	paid := ""
	if inv.PaymentDate != nil {
		paid = inv.PaymentDate.String()
	}
	return []string{
		inv.ID,
		inv.CustomerName,
		inv.Amount.String(),
		inv.InvoiceDate.String(),
		inv.DueDate.String(),
		paid,
		Classify(inv, today).Label(),
	}
}
