package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Table  TableConfig  `yaml:"table"`
	Auth   AuthConfig   `yaml:"auth"`
	Log    LogConfig    `yaml:"log"`

	// Timezone decides which calendar day "today" is. "Local" uses the host zone.
	Timezone string `yaml:"timezone" env:"TIMEZONE" env-default:"Local"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"HOST"                    env-default:""`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// StoreConfig selects the key-value backend and tunes the invoice store.
type StoreConfig struct {
	Driver       string        `yaml:"driver"        env:"STORE_DRIVER"        env-default:"sqlite"`
	Path         string        `yaml:"path"          env:"DB_PATH"             env-default:"./data/invoices.db"`
	DatabaseURL  string        `yaml:"database_url"  env:"DATABASE_URL"`
	MaxConns     int32         `yaml:"max_conns"     env:"DATABASE_MAX_CONNS"  env-default:"4"`
	Key          string        `yaml:"key"           env:"STORE_KEY"           env-default:"invoices"`
	SeedSize     int           `yaml:"seed_size"     env:"STORE_SEED_SIZE"     env-default:"120"`
	ConfirmDelay time.Duration `yaml:"confirm_delay" env:"STORE_CONFIRM_DELAY" env-default:"500ms"`
}

// TableConfig holds invoice table settings.
type TableConfig struct {
	PageSize      int     `yaml:"page_size"       env:"PAGE_SIZE"       env-default:"10"`
	PagerWidth    int     `yaml:"pager_width"     env:"PAGER_WIDTH"     env-default:"7"`
	MinLabelShare float64 `yaml:"min_label_share" env:"MIN_LABEL_SHARE" env-default:"0.05"`
}

// AuthConfig holds optional HTTP basic auth credentials. Leaving both empty
// disables authentication.
type AuthConfig struct {
	User string `yaml:"user" env:"AUTH_USER"`
	Pass string `yaml:"pass" env:"AUTH_PASS"`
}

// Enabled reports whether basic auth is configured.
func (a AuthConfig) Enabled() bool { return a.User != "" || a.Pass != "" }

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
