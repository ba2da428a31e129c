package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"github.com/satheeshds/invoicetrack/tracker"
)

type queryFlags struct {
	status string
	search string
	sort   string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.status, "status", "all", "Filter by status: all, paid, pending, overdue")
	cmd.Flags().StringVar(&f.search, "search", "", "Case-insensitive match on invoice id or customer name")
	cmd.Flags().StringVar(&f.sort, "sort", "invoiceDate", "Sort by invoiceDate, dueDate or amount (descending)")
}

func (f *queryFlags) view() (*tracker.View, error) {
	status, err := tracker.ParseStatusFilter(f.status)
	if err != nil {
		return nil, err
	}
	sort, err := tracker.ParseSortKey(f.sort)
	if err != nil {
		return nil, err
	}

	v := tracker.NewView()
	v.SetStatus(status)
	v.SetSearch(f.search)
	v.SetSort(sort)
	return v, nil
}

func newListCmd(a *app) *cobra.Command {
	var (
		q        queryFlags
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices with status and due information",
		Example: `  # Second page of overdue invoices
  invoicetrack list --status overdue --page 2

  # Largest amounts first
  invoicetrack list --sort amount`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := q.view()
			if err != nil {
				return err
			}
			if pageSize <= 0 {
				pageSize = a.cfg.Table.PageSize
			}

			s, closeStore, err := a.openStore(cmd.Context(), 0)
			if err != nil {
				return err
			}
			defer closeStore()

			invs := s.Get()
			today := s.Today()
			filtered := tracker.Apply(invs, v.Query(), today)
			v.GoTo(page, tracker.TotalPages(len(filtered), pageSize))

			p := v.Render(invs, today, pageSize)
			return printPage(cmd.OutOrStdout(), p, today, a.cfg.Table.PagerWidth)
		},
	}

	q.register(cmd)
	cmd.Flags().IntVar(&page, "page", 1, "Page number (clamped to the available pages)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Rows per page (default PAGE_SIZE)")
	return cmd
}

func printPage(w io.Writer, p tracker.Page, today civil.Date, pagerWidth int) error {
	if p.TotalCount == 0 {
		_, err := fmt.Fprintln(w, "No invoices found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCUSTOMER\tAMOUNT\tINVOICE DATE\tDUE DATE\tSTATUS\tDAYS")
	for _, inv := range p.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			inv.ID,
			inv.CustomerName,
			inv.Amount.StringFixed(2),
			inv.InvoiceDate,
			inv.DueDate,
			tracker.Classify(inv, today).Label(),
			tracker.DescribeDays(inv, today),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	pages := tracker.PageWindow(p.Page, p.TotalPages, pagerWidth)
	nums := make([]string, len(pages))
	for i, n := range pages {
		if n == p.Page {
			nums[i] = fmt.Sprintf("[%d]", n)
		} else {
			nums[i] = fmt.Sprint(n)
		}
	}
	_, err := fmt.Fprintf(w, "\nShowing %d-%d of %d  Page %d of %d  %s\n",
		p.From, p.To, p.TotalCount, p.Page, p.TotalPages, strings.Join(nums, " "))
	return err
}
