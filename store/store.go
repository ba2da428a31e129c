// Package store owns the invoice collection. It loads the collection from a
// key-value backend, serializes mutations through a single slot and persists
// the whole collection as one JSON array after every change.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"cloud.google.com/go/civil"
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/semaphore"

	"github.com/satheeshds/invoicetrack/db"
	"github.com/satheeshds/invoicetrack/models"
	"github.com/satheeshds/invoicetrack/tracker"
)

const (
	DefaultKey      = "invoices"
	DefaultSeedSize = 120

	// maxIDAttempts bounds retries when a generated id already exists.
	maxIDAttempts = 5
)

// ErrNotLoaded is returned by mutations attempted before Load.
var ErrNotLoaded = errors.New("store not loaded")

// ChangeKind names the operation that produced a Change.
type ChangeKind string

const (
	ChangeLoad     ChangeKind = "load"
	ChangeAdd      ChangeKind = "add"
	ChangeMarkPaid ChangeKind = "mark_paid"
)

// Change is delivered to subscribers after the collection is replaced.
type Change struct {
	Kind ChangeKind
	// Version increases with every replacement. Concurrent mutations may
	// deliver their changes out of order; keep the highest version.
	Version  uint64
	Invoices []models.Invoice
	Today    civil.Date
	// Affected is the number of records the mutation added or updated.
	Affected int
}

// Store holds the current invoice collection.
type Store struct {
	kv           db.KV
	key          string
	now          func() time.Time
	loc          *time.Location
	logger       *slog.Logger
	confirmDelay time.Duration
	seedSize     int
	newID        func() string

	slot    *semaphore.Weighted
	pending atomic.Bool

	mu       sync.RWMutex
	invoices []models.Invoice
	loaded   bool
	version  uint64

	subMu   sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// New creates a store over kv. Call Load before use.
func New(kv db.KV, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		key:      DefaultKey,
		now:      time.Now,
		loc:      time.Local,
		logger:   slog.Default(),
		seedSize: DefaultSeedSize,
		newID:    func() string { return "INV-" + ulid.Make().String() },
		slot:     semaphore.NewWeighted(1),
		subs:     make(map[int]func(Change)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "store", "key", s.key)
	return s
}

// Today is the current calendar day in the store's time zone.
func (s *Store) Today() civil.Date {
	return tracker.Today(s.now(), s.loc)
}

// Load reads the collection from the backend. An absent key is seeded and
// persisted. Unreadable data is replaced by the seed in memory only, so the
// stored bytes stay available for inspection.
func (s *Store) Load(ctx context.Context) error {
	change, err := s.load(ctx)
	if err != nil {
		return err
	}
	s.notify(change)
	return nil
}

func (s *Store) load(ctx context.Context) (Change, error) {
	if err := s.slot.Acquire(ctx, 1); err != nil {
		return Change{}, err
	}
	defer s.slot.Release(1)

	today := s.Today()
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return Change{}, fmt.Errorf("load invoices: %w", err)
	}

	var invs []models.Invoice
	switch {
	case !ok:
		invs = Seed(s.seedSize, today)
		if err := s.persist(ctx, invs); err != nil {
			return Change{}, err
		}
		s.logger.Info("seeded invoice collection", "count", len(invs))
	default:
		if err := json.Unmarshal(raw, &invs); err != nil {
			s.logger.Warn("stored invoices are unreadable, using seed data", "error", err)
			invs = Seed(s.seedSize, today)
		}
	}
	if invs == nil {
		invs = []models.Invoice{}
	}

	version := s.swap(invs)
	s.logger.Info("invoices loaded", "count", len(invs))
	return Change{Kind: ChangeLoad, Version: version, Invoices: invs, Today: today, Affected: len(invs)}, nil
}

// Loaded reports whether Load has completed.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Get returns a copy of the collection, newest first.
func (s *Store) Get() []models.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneInvoices(s.invoices)
}

// Find returns the invoice with the given id.
func (s *Store) Find(id string) (models.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.invoices, func(inv models.Invoice) bool { return inv.ID == id })
	if i < 0 {
		return models.Invoice{}, fmt.Errorf("invoice %q: %w", id, models.ErrNotFound)
	}
	return cloneInvoice(s.invoices[i]), nil
}

// Pending reports whether a mutation currently holds the slot.
func (s *Store) Pending() bool { return s.pending.Load() }

// Add validates in, waits the confirm delay and prepends the new invoice.
// Invalid input and cancellation leave the collection unchanged.
func (s *Store) Add(ctx context.Context, in models.InvoiceInput) (models.Invoice, error) {
	if err := in.Validate(); err != nil {
		return models.Invoice{}, err
	}

	inv, change, err := s.add(ctx, in)
	if err != nil {
		return models.Invoice{}, err
	}
	s.notify(change)
	return inv, nil
}

func (s *Store) add(ctx context.Context, in models.InvoiceInput) (models.Invoice, Change, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return models.Invoice{}, Change{}, err
	}
	defer release()

	if err := sleep(ctx, s.confirmDelay); err != nil {
		return models.Invoice{}, Change{}, err
	}

	current := s.snapshot()
	id, err := s.uniqueID(current)
	if err != nil {
		return models.Invoice{}, Change{}, err
	}
	inv, err := models.NewInvoice(id, in)
	if err != nil {
		return models.Invoice{}, Change{}, err
	}

	next := make([]models.Invoice, 0, len(current)+1)
	next = append(next, inv)
	next = append(next, current...)
	if err := s.persist(ctx, next); err != nil {
		return models.Invoice{}, Change{}, err
	}

	version := s.swap(next)
	s.logger.Info("invoice added", "id", inv.ID, "customer", inv.CustomerName, "amount", inv.Amount.String())
	return cloneInvoice(inv), Change{Kind: ChangeAdd, Version: version, Invoices: next, Today: s.Today(), Affected: 1}, nil
}

// MarkPaid records today as the payment date of every listed unpaid
// invoice. Paid invoices and unknown ids are skipped. It returns the number
// of invoices changed; zero changes skip the write.
func (s *Store) MarkPaid(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	change, err := s.markPaid(ctx, ids)
	if err != nil || change.Affected == 0 {
		return 0, err
	}
	s.notify(change)
	return change.Affected, nil
}

func (s *Store) markPaid(ctx context.Context, ids []string) (Change, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return Change{}, err
	}
	defer release()

	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	today := s.Today()
	next := cloneInvoices(s.snapshot())
	changed := 0
	for i := range next {
		if _, ok := want[next[i].ID]; !ok || next[i].IsPaid() {
			continue
		}
		paid := today
		next[i].PaymentDate = &paid
		changed++
	}
	if changed == 0 {
		return Change{}, nil
	}

	if err := s.persist(ctx, next); err != nil {
		return Change{}, err
	}

	version := s.swap(next)
	s.logger.Info("invoices marked paid", "requested", len(ids), "updated", changed)
	return Change{Kind: ChangeMarkPaid, Version: version, Invoices: next, Today: today, Affected: changed}, nil
}

// Subscribe registers fn to run after every change. Callbacks run on the
// mutating goroutine once the mutation slot is free, so they may call back
// into the store. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) acquire(ctx context.Context) (func(), error) {
	if !s.Loaded() {
		return nil, ErrNotLoaded
	}
	if err := s.slot.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	s.pending.Store(true)
	return func() {
		s.pending.Store(false)
		s.slot.Release(1)
	}, nil
}

// snapshot returns the live slice. Only slot holders may call it, and they
// must not modify it in place.
func (s *Store) snapshot() []models.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.invoices
}

func (s *Store) swap(invs []models.Invoice) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = invs
	s.loaded = true
	s.version++
	return s.version
}

func (s *Store) persist(ctx context.Context, invs []models.Invoice) error {
	if invs == nil {
		invs = []models.Invoice{}
	}
	raw, err := json.Marshal(invs)
	if err != nil {
		return fmt.Errorf("encode invoices: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save invoices: %w", err)
	}
	return nil
}

func (s *Store) uniqueID(current []models.Invoice) (string, error) {
	for range maxIDAttempts {
		id := s.newID()
		if !slices.ContainsFunc(current, func(inv models.Invoice) bool { return inv.ID == id }) {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique invoice id after %d attempts", maxIDAttempts)
}

func (s *Store) notify(c Change) {
	s.subMu.Lock()
	subs := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(Change{Kind: c.Kind, Version: c.Version, Invoices: cloneInvoices(c.Invoices), Today: c.Today, Affected: c.Affected})
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func cloneInvoice(inv models.Invoice) models.Invoice {
	if inv.PaymentDate != nil {
		d := *inv.PaymentDate
		inv.PaymentDate = &d
	}
	return inv
}

func cloneInvoices(invs []models.Invoice) []models.Invoice {
	out := make([]models.Invoice, len(invs))
	for i, inv := range invs {
		out[i] = cloneInvoice(inv)
	}
	return out
}
