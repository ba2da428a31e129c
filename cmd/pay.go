package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pay ID...",
		Short: "Mark invoices as paid today",
		Long: `Mark the given invoices as paid with today's date. Invoices that are
already paid keep their payment date; unknown ids are ignored.`,
		Example: `  invoicetrack pay INV-0002 INV-0003`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := a.openStore(cmd.Context(), 0)
			if err != nil {
				return err
			}
			defer closeStore()

			n, err := s.MarkPaid(cmd.Context(), args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Marked %d of %d invoice(s) paid\n", n, len(args))
			return err
		},
	}
}
