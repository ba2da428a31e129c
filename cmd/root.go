// Package cmd implements the invoicetrack command line.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/satheeshds/invoicetrack/config"
	"github.com/satheeshds/invoicetrack/db"
	"github.com/satheeshds/invoicetrack/store"
)

var version = "1.0.0"

// app carries what every subcommand needs once configuration is loaded.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	loc    *time.Location
}

// openStore opens the configured backend, subscribes observers and loads the
// collection. The returned close function releases the backend.
func (a *app) openStore(ctx context.Context, confirmDelay time.Duration, observers ...func(store.Change)) (*store.Store, func(), error) {
	kv, err := db.Open(ctx, a.cfg.Store, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	s := store.New(kv,
		store.WithKey(a.cfg.Store.Key),
		store.WithLocation(a.loc),
		store.WithLogger(a.logger),
		store.WithConfirmDelay(confirmDelay),
		store.WithSeedSize(a.cfg.Store.SeedSize),
	)
	for _, fn := range observers {
		s.Subscribe(fn)
	}
	if err := s.Load(ctx); err != nil {
		kv.Close()
		return nil, nil, err
	}
	return s, func() { kv.Close() }, nil
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "invoicetrack",
		Short: "Track receivable invoices, due dates and payments",
		Long: `invoicetrack keeps a collection of receivable invoices and derives
their status (paid, pending, overdue), payment delays and totals.

Run "invoicetrack serve" for the HTTP API or use the subcommands directly.

Configuration comes from environment variables (a .env file is loaded when
present) or a YAML file named by CONFIG_PATH.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.loc = loc
			a.logger = NewLogger(cfg.Log, cmd.ErrOrStderr()).With("command", cmd.Name())
			slog.SetDefault(a.logger)
			return nil
		},
	}

	root.AddCommand(
		newServeCmd(a),
		newListCmd(a),
		newAddCmd(a),
		newPayCmd(a),
		newSummaryCmd(a),
		newExportCmd(a),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
