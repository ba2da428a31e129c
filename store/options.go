package store

import (
	"log/slog"
	"time"
)

// Option configures a Store.
type Option func(*Store)

// WithKey sets the persistence key the collection lives under.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithClock replaces time.Now. Tests use it to pin "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocation sets the time zone that decides the current calendar day.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) { s.loc = loc }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithConfirmDelay makes Add wait d before committing a new invoice.
func WithConfirmDelay(d time.Duration) Option {
	return func(s *Store) { s.confirmDelay = d }
}

// WithSeedSize sets how many sample invoices an empty key is seeded with.
func WithSeedSize(n int) Option {
	return func(s *Store) { s.seedSize = n }
}

// WithIDGenerator replaces the ULID based id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}
