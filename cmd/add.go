package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satheeshds/invoicetrack/models"
	"github.com/satheeshds/invoicetrack/tracker"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		customer string
		amount   string
		date     string
		terms    int
	)

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Create an unpaid invoice",
		Example: `  invoicetrack add --customer "Acme Corp" --amount 1250.50 --date 2024-06-01 --terms 45`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := models.InvoiceInput{
				CustomerName: customer,
				InvoiceDate:  date,
				PaymentTerms: terms,
			}
			if amount != "" {
				m, err := models.ParseMoney(amount)
				if err != nil {
					return models.NewValidationError("amount", "must be a number")
				}
				in.Amount = m
			}

			s, closeStore, err := a.openStore(cmd.Context(), 0)
			if err != nil {
				return err
			}
			defer closeStore()

			if in.InvoiceDate == "" {
				in.InvoiceDate = s.Today().String()
			}
			inv, err := s.Add(cmd.Context(), in)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created %s for %s: %s due %s (%s)\n",
				inv.ID, inv.CustomerName, inv.Amount.StringFixed(2), inv.DueDate,
				tracker.DescribeDays(inv, s.Today()))
			return err
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "Customer name (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "Invoice amount, greater than zero (required)")
	cmd.Flags().StringVar(&date, "date", "", "Invoice date YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&terms, "terms", models.DefaultPaymentTerms, fmt.Sprintf("Payment terms in days, usually one of %v", models.StandardPaymentTerms))
	return cmd
}
