package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/satheeshds/invoicetrack/tracker"
)

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show outstanding and overdue totals and the status breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := a.openStore(cmd.Context(), 0)
			if err != nil {
				return err
			}
			defer closeStore()

			sum := tracker.Summarize(s.Get(), s.Today())

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Total outstanding\t%s\n", sum.Outstanding.StringFixed(2))
			fmt.Fprintf(tw, "Total overdue\t%s\n", sum.Overdue.StringFixed(2))
			fmt.Fprintf(tw, "Paid this month\t%s\n", sum.PaidThisMonth.StringFixed(2))
			fmt.Fprintf(tw, "Average payment delay\t%d days\n", sum.AvgDelayDays)
			fmt.Fprintln(tw)
			for _, sl := range sum.Distribution.Slices(a.cfg.Table.MinLabelShare) {
				fmt.Fprintf(tw, "%s\t%d\t%d%%\n", sl.Label, sl.Count, sl.Percent)
			}
			return tw.Flush()
		},
	}
}
