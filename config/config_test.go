package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Store: StoreConfig{Driver: "sqlite", Path: "./data/invoices.db", Key: "invoices", SeedSize: 120},
		Table: TableConfig{PageSize: 10, PagerWidth: 7, MinLabelShare: 0.05},
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "./data/invoices.db", cfg.Store.Path)
	assert.Equal(t, "invoices", cfg.Store.Key)
	assert.Equal(t, 120, cfg.Store.SeedSize)
	assert.Equal(t, 500*time.Millisecond, cfg.Store.ConfirmDelay)
	assert.Equal(t, 10, cfg.Table.PageSize)
	assert.Equal(t, 7, cfg.Table.PagerWidth)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Auth.Enabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("STORE_SEED_SIZE", "0")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("AUTH_USER", "admin")
	t.Setenv("TIMEZONE", "UTC")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, 0, cfg.Store.SeedSize)
	assert.Equal(t, 25, cfg.Table.PageSize)
	assert.True(t, cfg.Auth.Enabled())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  driver: memory
  key: acme-invoices
table:
  page_size: 5
`), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "acme-invoices", cfg.Store.Key)
	assert.Equal(t, 5, cfg.Table.PageSize)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"driver is case-insensitive", func(c *Config) { c.Store.Driver = " SQLite " }, false},
		{"unknown driver", func(c *Config) { c.Store.Driver = "duckdb" }, true},
		{"postgres without url", func(c *Config) { c.Store.Driver = "postgres" }, true},
		{"postgres with url", func(c *Config) {
			c.Store.Driver = "postgres"
			c.Store.DatabaseURL = "postgres://localhost/invoices"
		}, false},
		{"empty key", func(c *Config) { c.Store.Key = " " }, true},
		{"negative seed", func(c *Config) { c.Store.SeedSize = -1 }, true},
		{"zero page size", func(c *Config) { c.Table.PageSize = 0 }, true},
		{"label share above one", func(c *Config) { c.Table.MinLabelShare = 2 }, true},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, true},
		{"named timezone", func(c *Config) { c.Timezone = "Europe/Berlin" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
