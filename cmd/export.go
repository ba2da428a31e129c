package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/satheeshds/invoicetrack/tracker"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		q      queryFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export invoices as CSV",
		Example: `  # Overdue invoices to a file
  invoicetrack export --status overdue -o overdue.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := q.view()
			if err != nil {
				return err
			}

			s, closeStore, err := a.openStore(cmd.Context(), 0)
			if err != nil {
				return err
			}
			defer closeStore()

			today := s.Today()
			var buf bytes.Buffer
			err = tracker.WriteCSV(&buf, tracker.Apply(s.Get(), v.Query(), today), today)
			if errors.Is(err, tracker.ErrNothingToExport) {
				fmt.Fprintln(cmd.ErrOrStderr(), "No invoices to export")
				return nil
			}
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			a.logger.Info("invoices exported", "path", output, "bytes", buf.Len())
			return nil
		},
	}

	q.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}
