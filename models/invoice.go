package models

import (
	"strings"

	"cloud.google.com/go/civil"
)

// DefaultPaymentTerms is applied when an input leaves payment terms unset.
const DefaultPaymentTerms = 30

// StandardPaymentTerms are the term lengths offered by the creation form.
// Any positive day count is accepted.
var StandardPaymentTerms = []int{7, 15, 30, 45, 60, 90}

// Invoice is a receivable invoice. Dates are calendar dates without a time
// of day; PaymentDate is nil while the invoice is unpaid.
type Invoice struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customerName"`
	Amount       Money       `json:"amount"`
	InvoiceDate  civil.Date  `json:"invoiceDate"`
	PaymentTerms int         `json:"paymentTerms"`
	DueDate      civil.Date  `json:"dueDate"`
	PaymentDate  *civil.Date `json:"paymentDate"`
}

// IsPaid reports whether a payment date has been recorded.
func (i Invoice) IsPaid() bool { return i.PaymentDate != nil }

// InvoiceInput is used for creating invoices.
type InvoiceInput struct {
	CustomerName string `json:"customerName"`
	Amount       Money  `json:"amount"`
	InvoiceDate  string `json:"invoiceDate"`
	PaymentTerms int    `json:"paymentTerms"`
}

// Validate normalizes the input and reports every missing or invalid field.
func (in *InvoiceInput) Validate() error {
	var errs []FieldError

	in.CustomerName = strings.TrimSpace(in.CustomerName)
	if in.CustomerName == "" {
		errs = append(errs, FieldError{Field: "customerName", Message: "is required"})
	}
	if !in.Amount.IsPositive() {
		errs = append(errs, FieldError{Field: "amount", Message: "must be greater than zero"})
	}

	in.InvoiceDate = strings.TrimSpace(in.InvoiceDate)
	if in.InvoiceDate == "" {
		errs = append(errs, FieldError{Field: "invoiceDate", Message: "is required"})
	} else if d, err := civil.ParseDate(in.InvoiceDate); err != nil || !d.IsValid() {
		errs = append(errs, FieldError{Field: "invoiceDate", Message: "must be a date in YYYY-MM-DD format"})
	}

	switch {
	case in.PaymentTerms == 0:
		in.PaymentTerms = DefaultPaymentTerms
	case in.PaymentTerms < 0:
		errs = append(errs, FieldError{Field: "paymentTerms", Message: "must be a positive number of days"})
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// NewInvoice builds an unpaid invoice from a validated input. The due date
// is derived once here and stored; it is never recomputed on read.
func NewInvoice(id string, in InvoiceInput) (Invoice, error) {
	if err := in.Validate(); err != nil {
		return Invoice{}, err
	}
	issued, _ := civil.ParseDate(in.InvoiceDate)
	return Invoice{
		ID:           id,
		CustomerName: in.CustomerName,
		Amount:       in.Amount,
		InvoiceDate:  issued,
		PaymentTerms: in.PaymentTerms,
		DueDate:      issued.AddDays(in.PaymentTerms),
		PaymentDate:  nil,
	}, nil
}
