package config

import (
	"fmt"
	"strings"
)

// Store drivers understood by db.Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Validate performs business-rule validation on the loaded configuration.
func (c *Config) Validate() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("store.database_url is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("store.driver must be one of sqlite, postgres, memory (got %q)", c.Store.Driver)
	}

	if strings.TrimSpace(c.Store.Key) == "" {
		return fmt.Errorf("store.key must not be empty")
	}
	if c.Store.SeedSize < 0 {
		return fmt.Errorf("store.seed_size must be >= 0 (got %d)", c.Store.SeedSize)
	}
	if c.Store.ConfirmDelay < 0 {
		return fmt.Errorf("store.confirm_delay must be >= 0 (got %s)", c.Store.ConfirmDelay)
	}
	if c.Table.PageSize <= 0 {
		return fmt.Errorf("table.page_size must be > 0 (got %d)", c.Table.PageSize)
	}
	if c.Table.PagerWidth <= 0 {
		return fmt.Errorf("table.pager_width must be > 0 (got %d)", c.Table.PagerWidth)
	}
	if c.Table.MinLabelShare < 0 || c.Table.MinLabelShare > 1 {
		return fmt.Errorf("table.min_label_share must be within [0, 1] (got %v)", c.Table.MinLabelShare)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}

	return nil
}
