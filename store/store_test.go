package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satheeshds/invoicetrack/db"
	"github.com/satheeshds/invoicetrack/models"
)

var fixedNow = time.Date(2024, time.June, 15, 9, 30, 0, 0, time.UTC)

// countingKV wraps MemoryKV, counting writes and optionally failing them.
type countingKV struct {
	*db.MemoryKV
	sets    atomic.Int32
	failSet atomic.Bool
}

func newCountingKV() *countingKV { return &countingKV{MemoryKV: db.NewMemoryKV()} }

func (k *countingKV) Set(ctx context.Context, key string, value []byte) error {
	if k.failSet.Load() {
		return errors.New("disk full")
	}
	k.sets.Add(1)
	return k.MemoryKV.Set(ctx, key, value)
}

func sequentialIDs() func() string {
	var n atomic.Int32
	return func() string { return fmt.Sprintf("INV-NEW-%d", n.Add(1)) }
}

func newStore(t *testing.T, kv db.KV, opts ...Option) *Store {
	t.Helper()
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithLocation(time.UTC),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithIDGenerator(sequentialIDs()),
	}
	return New(kv, append(base, opts...)...)
}

func storeWith(t *testing.T, invs ...models.Invoice) (*Store, *countingKV) {
	t.Helper()
	kv := newCountingKV()
	raw, err := json.Marshal(invs)
	require.NoError(t, err)
	require.NoError(t, kv.MemoryKV.Set(context.Background(), DefaultKey, raw))

	s := newStore(t, kv)
	require.NoError(t, s.Load(context.Background()))
	return s, kv
}

func stored(t *testing.T, kv db.KV, key string) []models.Invoice {
	t.Helper()
	raw, ok, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok)
	var invs []models.Invoice
	require.NoError(t, json.Unmarshal(raw, &invs))
	return invs
}

func validInput() models.InvoiceInput {
	return models.InvoiceInput{
		CustomerName: "  Acme Corp ",
		Amount:       models.NewMoneyFromInt(1500),
		InvoiceDate:  "2024-06-01",
		PaymentTerms: 15,
	}
}

func unpaidInvoice(id string, due civil.Date) models.Invoice {
	return models.Invoice{
		ID:           id,
		CustomerName: "Customer " + id,
		Amount:       models.NewMoneyFromInt(100),
		InvoiceDate:  due.AddDays(-30),
		PaymentTerms: 30,
		DueDate:      due,
	}
}

func TestLoad_SeedsAbsentKey(t *testing.T) {
	t.Parallel()
	kv := newCountingKV()
	s := newStore(t, kv, WithSeedSize(12))

	require.NoError(t, s.Load(context.Background()))

	assert.True(t, s.Loaded())
	assert.Len(t, s.Get(), 12)
	assert.Len(t, stored(t, kv, DefaultKey), 12, "seed must be persisted")
}

func TestLoad_EmptySeed(t *testing.T) {
	t.Parallel()
	kv := newCountingKV()
	s := newStore(t, kv, WithSeedSize(0), WithKey("acme"))

	require.NoError(t, s.Load(context.Background()))

	assert.Empty(t, s.Get())
	raw, ok, err := kv.Get(context.Background(), "acme")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", string(raw))
}

func TestLoad_ExistingCollection(t *testing.T) {
	t.Parallel()
	due := civil.Date{Year: 2024, Month: time.June, Day: 20}
	s, kv := storeWith(t, unpaidInvoice("INV-0001", due), unpaidInvoice("INV-0002", due))

	ids := []string{}
	for _, inv := range s.Get() {
		ids = append(ids, inv.ID)
	}
	assert.Equal(t, []string{"INV-0001", "INV-0002"}, ids)
	assert.Zero(t, kv.sets.Load())
}

func TestLoad_MalformedFallsBackWithoutOverwriting(t *testing.T) {
	t.Parallel()
	kv := newCountingKV()
	require.NoError(t, kv.MemoryKV.Set(context.Background(), DefaultKey, []byte(`{not json`)))
	s := newStore(t, kv, WithSeedSize(5))

	require.NoError(t, s.Load(context.Background()))

	assert.Len(t, s.Get(), 5)
	assert.Zero(t, kv.sets.Load())
	raw, _, err := kv.Get(context.Background(), DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(raw))
}

func TestLoad_BackendError(t *testing.T) {
	t.Parallel()
	kv := newCountingKV()
	kv.failSet.Store(true)
	s := newStore(t, kv)

	err := s.Load(context.Background())
	require.Error(t, err)
	assert.False(t, s.Loaded())
}

func TestMutationsRequireLoad(t *testing.T) {
	t.Parallel()
	s := newStore(t, newCountingKV())

	_, err := s.Add(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrNotLoaded)

	_, err = s.MarkPaid(context.Background(), []string{"INV-0001"})
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestGet_ReturnsCopy(t *testing.T) {
	t.Parallel()
	paidOn := civil.Date{Year: 2024, Month: time.June, Day: 1}
	inv := unpaidInvoice("INV-0001", paidOn)
	inv.PaymentDate = &paidOn
	s, _ := storeWith(t, inv)

	got := s.Get()
	got[0].CustomerName = "changed"
	*got[0].PaymentDate = paidOn.AddDays(10)

	again := s.Get()
	assert.Equal(t, "Customer INV-0001", again[0].CustomerName)
	assert.Equal(t, paidOn, *again[0].PaymentDate)
}

func TestFind(t *testing.T) {
	t.Parallel()
	due := civil.Date{Year: 2024, Month: time.June, Day: 20}
	s, _ := storeWith(t, unpaidInvoice("INV-0001", due))

	inv, err := s.Find("INV-0001")
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", inv.ID)

	_, err = s.Find("INV-9999")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAdd(t *testing.T) {
	t.Parallel()
	due := civil.Date{Year: 2024, Month: time.June, Day: 20}
	s, kv := storeWith(t, unpaidInvoice("INV-0001", due))

	inv, err := s.Add(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "INV-NEW-1", inv.ID)
	assert.Equal(t, "Acme Corp", inv.CustomerName)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.June, Day: 16}, inv.DueDate)
	assert.Nil(t, inv.PaymentDate)

	all := s.Get()
	require.Len(t, all, 2)
	assert.Equal(t, "INV-NEW-1", all[0].ID, "new invoices are prepended")
	assert.Equal(t, "INV-0001", all[1].ID)

	persisted := stored(t, kv, DefaultKey)
	require.Len(t, persisted, 2)
	assert.Equal(t, "INV-NEW-1", persisted[0].ID)
}

func TestAdd_DefaultID(t *testing.T) {
	t.Parallel()
	kv := newCountingKV()
	s := New(kv, WithSeedSize(0), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, s.Load(context.Background()))

	a, err := s.Add(context.Background(), validInput())
	require.NoError(t, err)
	b, err := s.Add(context.Background(), validInput())
	require.NoError(t, err)

	assert.Regexp(t, `^INV-[0-9A-HJKMNP-TV-Z]{26}$`, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestAdd_ValidationLeavesCollectionUntouched(t *testing.T) {
	t.Parallel()
	s, kv := storeWith(t)

	_, err := s.Add(context.Background(), models.InvoiceInput{CustomerName: " ", InvoiceDate: "2024-06-01"})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, s.Get())
	assert.Zero(t, kv.sets.Load())
}

func TestAdd_RetriesIDCollision(t *testing.T) {
	t.Parallel()
	due := civil.Date{Year: 2024, Month: time.June, Day: 20}
	kv := newCountingKV()
	raw, err := json.Marshal([]models.Invoice{unpaidInvoice("INV-DUP", due)})
	require.NoError(t, err)
	require.NoError(t, kv.MemoryKV.Set(context.Background(), DefaultKey, raw))

	ids := []string{"INV-DUP", "INV-DUP", "INV-FRESH"}
	var calls int
	s := newStore(t, kv, WithIDGenerator(func() string {
		id := ids[calls]
		calls++
		return id
	}))
	require.NoError(t, s.Load(context.Background()))

	inv, err := s.Add(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "INV-FRESH", inv.ID)
}

func TestAdd_GivesUpOnPersistentCollision(t *testing.T) {
	t.Parallel()
	due := civil.Date{Year: 2024, Month: time.June, Day: 20}
	kv := newCountingKV()
	raw, err := json.Marshal([]models.Invoice{unpaidInvoice("INV-DUP", due)})
	require.NoError(t, err)
	require.NoError(t, kv.MemoryKV.Set(context.Background(), DefaultKey, raw))

	s := newStore(t, kv, WithIDGenerator(func() string { return "INV-DUP" }))
	require.NoError(t, s.Load(context.Background()))

	_, err = s.Add(context.Background(), validInput())
	require.Error(t, err)
	assert.Len(t, s.Get(), 1)
}

func TestAdd_CancelledDuringDelay(t *testing.T) {
	t.Parallel()
	kv := newCountingKV()
	s := newStore(t, kv, WithSeedSize(0), WithConfirmDelay(time.Hour))
	require.NoError(t, s.Load(context.Background()))
	setsAfterLoad := kv.sets.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.Add(ctx, validInput())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, s.Get())
	assert.Equal(t, setsAfterLoad, kv.sets.Load())
	assert.False(t, s.Pending(), "slot must be released")
}

func TestAdd_PersistFailureKeepsMemory(t *testing.T) {
	t.Parallel()
	s, kv := storeWith(t)
	kv.failSet.Store(true)

	_, err := s.Add(context.Background(), validInput())
	require.Error(t, err)
	assert.Empty(t, s.Get())
}

func TestPending_DuringConfirmDelay(t *testing.T) {
	t.Parallel()
	kv := newCountingKV()
	s := newStore(t, kv, WithSeedSize(0), WithConfirmDelay(100*time.Millisecond))
	require.NoError(t, s.Load(context.Background()))
	assert.False(t, s.Pending())

	done := make(chan error, 1)
	go func() {
		_, err := s.Add(context.Background(), validInput())
		done <- err
	}()

	assert.Eventually(t, s.Pending, time.Second, 5*time.Millisecond)
	require.NoError(t, <-done)
	assert.False(t, s.Pending())
	assert.Len(t, s.Get(), 1)
}

func TestMarkPaid(t *testing.T) {
	t.Parallel()
	due := civil.Date{Year: 2024, Month: time.June, Day: 10}
	earlier := civil.Date{Year: 2024, Month: time.June, Day: 1}
	paid := unpaidInvoice("INV-0003", due)
	paid.PaymentDate = &earlier

	s, kv := storeWith(t, unpaidInvoice("INV-0001", due), unpaidInvoice("INV-0002", due), paid)

	n, err := s.MarkPaid(context.Background(), []string{"INV-0001", "INV-0003", "INV-GONE"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	today := civil.Date{Year: 2024, Month: time.June, Day: 15}
	all := s.Get()
	require.NotNil(t, all[0].PaymentDate)
	assert.Equal(t, today, *all[0].PaymentDate)
	assert.Nil(t, all[1].PaymentDate)
	assert.Equal(t, earlier, *all[2].PaymentDate, "already paid invoices keep their date")

	persisted := stored(t, kv, DefaultKey)
	require.NotNil(t, persisted[0].PaymentDate)
	assert.Equal(t, today, *persisted[0].PaymentDate)
}

func TestMarkPaid_NoMatchSkipsWrite(t *testing.T) {
	t.Parallel()
	due := civil.Date{Year: 2024, Month: time.June, Day: 10}
	s, kv := storeWith(t, unpaidInvoice("INV-0001", due))

	n, err := s.MarkPaid(context.Background(), []string{"INV-9999"})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.MarkPaid(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, kv.sets.Load())
}

func TestMarkPaid_UsesConfiguredZone(t *testing.T) {
	t.Parallel()
	due := civil.Date{Year: 2024, Month: time.June, Day: 10}
	kv := newCountingKV()
	raw, err := json.Marshal([]models.Invoice{unpaidInvoice("INV-0001", due)})
	require.NoError(t, err)
	require.NoError(t, kv.MemoryKV.Set(context.Background(), DefaultKey, raw))

	// 23:30 UTC on the 15th is already the 16th in UTC+2.
	late := time.Date(2024, time.June, 15, 23, 30, 0, 0, time.UTC)
	s := newStore(t, kv, WithClock(func() time.Time { return late }), WithLocation(time.FixedZone("UTC+2", 2*3600)))
	require.NoError(t, s.Load(context.Background()))

	_, err = s.MarkPaid(context.Background(), []string{"INV-0001"})
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.June, Day: 16}, *s.Get()[0].PaymentDate)
}

func TestConcurrentMutationsAreSerialized(t *testing.T) {
	t.Parallel()
	kv := newCountingKV()
	s := New(kv, WithSeedSize(0), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, s.Load(context.Background()))

	const n = 20
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Add(context.Background(), validInput())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, s.Get(), n)
	assert.Len(t, stored(t, kv, DefaultKey), n, "no add may be lost to a concurrent write")
}

func TestSubscribe(t *testing.T) {
	t.Parallel()
	due := civil.Date{Year: 2024, Month: time.June, Day: 10}
	s, _ := storeWith(t, unpaidInvoice("INV-0001", due))

	var changes []Change
	unsubscribe := s.Subscribe(func(c Change) { changes = append(changes, c) })

	_, err := s.Add(context.Background(), validInput())
	require.NoError(t, err)
	_, err = s.MarkPaid(context.Background(), []string{"INV-0001"})
	require.NoError(t, err)
	_, err = s.MarkPaid(context.Background(), []string{"INV-0001"})
	require.NoError(t, err)

	require.Len(t, changes, 2, "a no-op mark-paid must not notify")
	assert.Equal(t, ChangeAdd, changes[0].Kind)
	assert.Len(t, changes[0].Invoices, 2)
	assert.Equal(t, ChangeMarkPaid, changes[1].Kind)
	assert.Equal(t, 1, changes[1].Affected)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.June, Day: 15}, changes[1].Today)

	unsubscribe()
	_, err = s.Add(context.Background(), validInput())
	require.NoError(t, err)
	assert.Len(t, changes, 2)
}

func TestSubscribe_LoadNotifies(t *testing.T) {
	t.Parallel()
	s := newStore(t, newCountingKV(), WithSeedSize(3))

	var got Change
	s.Subscribe(func(c Change) { got = c })
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, ChangeLoad, got.Kind)
	assert.Len(t, got.Invoices, 3)
}

func TestSubscribe_CallbackMayMutate(t *testing.T) {
	t.Parallel()
	s, kv := storeWith(t)

	var versions []uint64
	s.Subscribe(func(c Change) {
		versions = append(versions, c.Version)
		if c.Kind != ChangeAdd {
			return
		}
		n, err := s.MarkPaid(context.Background(), []string{c.Invoices[0].ID})
		assert.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	done := make(chan error, 1)
	go func() {
		_, err := s.Add(context.Background(), validInput())
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Add did not return while a subscriber was mutating the store")
	}

	got := s.Get()
	require.Len(t, got, 1)
	assert.True(t, got[0].IsPaid())
	assert.True(t, stored(t, kv, DefaultKey)[0].IsPaid())
	assert.Equal(t, []uint64{2, 3}, versions, "load is version 1")
	assert.False(t, s.Pending())
}
