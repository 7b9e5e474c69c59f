package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumicea/lumicea/app/inventory"
	"github.com/lumicea/lumicea/pkg/event"
)

// stubStore is an in-memory authoritative store. failNext forces the next
// ApplyDelta to error without touching stock.
type stubStore struct {
	rows       map[uint]inventory.Record
	applyCalls int
	failNext   error
}

func newStubStore(rows ...inventory.Record) *stubStore {
	s := &stubStore{rows: make(map[uint]inventory.Record)}
	for _, r := range rows {
		s.rows[r.ID] = r
	}
	return s
}

func (s *stubStore) List(context.Context) ([]inventory.Record, error) {
	out := make([]inventory.Record, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, r)
	}
	return out, nil
}

func (s *stubStore) ApplyDelta(_ context.Context, id uint, delta int, _ inventory.Reason, _ string, _ uint) (int, error) {
	s.applyCalls++
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return 0, err
	}
	rec, ok := s.rows[id]
	if !ok {
		return 0, inventory.ErrRecordNotFound
	}
	rec.Stock += delta
	s.rows[id] = rec
	return rec.Stock, nil
}

func sapphireHoop() inventory.Record {
	return inventory.Record{
		ID: 7, ProductID: 1, SKU: "LUM-HOOP-GF14-SAP-8",
		ProductName: "Signature Hoop", VariantName: "14k Gold Filled / Sapphire / 8mm",
		Stock: 10, Threshold: 5, CostPrice: 31.50, RetailPrice: 83,
	}
}

func newReconciler(t *testing.T, store inventory.Store) *inventory.Reconciler {
	t.Helper()
	t.Cleanup(event.Flush)

	r := inventory.NewReconciler(store)
	require.NoError(t, r.Refresh(context.Background()))
	return r
}

func TestReconciler_AppliedAdjustmentUpdatesCache(t *testing.T) {
	store := newStubStore(sapphireHoop())
	r := newReconciler(t, store)

	rec, err := r.AdjustStock(context.Background(), 7, +5, inventory.ReasonRestock, "spring restock", 1)
	require.NoError(t, err)
	assert.Equal(t, 15, rec.Stock)

	cached, ok := r.Record(7)
	require.True(t, ok)
	assert.Equal(t, 15, cached.Stock)
}

func TestReconciler_FailedAdjustmentLeavesCacheUntouched(t *testing.T) {
	store := newStubStore(sapphireHoop())
	store.failNext = errors.New("connection reset")
	r := newReconciler(t, store)

	_, err := r.AdjustStock(context.Background(), 7, -3, inventory.ReasonAdjustment, "damaged pair", 1)
	require.Error(t, err)

	cached, ok := r.Record(7)
	require.True(t, ok)
	assert.Equal(t, 10, cached.Stock)

	// The operation is retryable: the next attempt succeeds and lands on
	// the authoritative value.
	rec, err := r.AdjustStock(context.Background(), 7, -3, inventory.ReasonAdjustment, "damaged pair", 1)
	require.NoError(t, err)
	assert.Equal(t, 7, rec.Stock)
}

func TestReconciler_ZeroDeltaNeverReachesStore(t *testing.T) {
	store := newStubStore(sapphireHoop())
	r := newReconciler(t, store)

	_, err := r.AdjustStock(context.Background(), 7, 0, inventory.ReasonRestock, "", 1)
	assert.ErrorIs(t, err, inventory.ErrZeroDelta)
	assert.Zero(t, store.applyCalls)
}

func TestReconciler_InvalidReasonRejected(t *testing.T) {
	store := newStubStore(sapphireHoop())
	r := newReconciler(t, store)

	_, err := r.AdjustStock(context.Background(), 7, 1, inventory.Reason("sale"), "", 1)
	assert.ErrorIs(t, err, inventory.ErrInvalidReason)
	assert.Zero(t, store.applyCalls)
}

func TestReconciler_FiresStockAdjustedEvent(t *testing.T) {
	store := newStubStore(sapphireHoop())
	r := newReconciler(t, store)

	var got inventory.Adjusted
	event.Listen(inventory.EventStockAdjusted, func(payload interface{}) {
		got = payload.(inventory.Adjusted)
	})

	_, err := r.AdjustStock(context.Background(), 7, +2, inventory.ReasonReturn, "customer return", 1)
	require.NoError(t, err)
	assert.Equal(t, +2, got.Delta)
	assert.Equal(t, inventory.ReasonReturn, got.Reason)
	assert.Equal(t, 12, got.Record.Stock)
}

func TestReconciler_CacheMissStillCarriesAuthoritativeRecord(t *testing.T) {
	store := newStubStore(sapphireHoop())
	t.Cleanup(event.Flush)

	// Cache never refreshed: the row exists in the store only.
	r := inventory.NewReconciler(store)

	var got inventory.Adjusted
	event.Listen(inventory.EventStockAdjusted, func(payload interface{}) {
		got = payload.(inventory.Adjusted)
	})

	rec, err := r.AdjustStock(context.Background(), 7, +5, inventory.ReasonRestock, "spring restock", 1)
	require.NoError(t, err)
	assert.Equal(t, uint(7), rec.ID)
	assert.Equal(t, 15, rec.Stock)

	// Listeners see the same ID and quantity, never a zero record.
	assert.Equal(t, uint(7), got.Record.ID)
	assert.Equal(t, 15, got.Record.Stock)
}

func TestStatusOf_Boundaries(t *testing.T) {
	assert.Equal(t, inventory.StatusOutOfStock, inventory.StatusOf(0, 5))
	assert.Equal(t, inventory.StatusLowStock, inventory.StatusOf(1, 5))
	assert.Equal(t, inventory.StatusLowStock, inventory.StatusOf(5, 5))
	assert.Equal(t, inventory.StatusInStock, inventory.StatusOf(6, 5))
}
