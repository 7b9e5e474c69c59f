// Package inventory implements the stock adjustment reconciler: signed
// stock deltas applied atomically by the authoritative store, mirrored into
// a locally cached projection used by the admin inventory screen.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lumicea/lumicea/pkg/event"
	"github.com/lumicea/lumicea/pkg/metrics"
)

// Reason classifies a manual stock adjustment.
type Reason string

const (
	ReasonRestock    Reason = "restock"
	ReasonAdjustment Reason = "adjustment"
	ReasonReturn     Reason = "return"
)

// Valid reports whether r is one of the accepted reason codes.
func (r Reason) Valid() bool {
	switch r {
	case ReasonRestock, ReasonAdjustment, ReasonReturn:
		return true
	}
	return false
}

var (
	// ErrZeroDelta is returned before the store is ever contacted: a zero
	// delta is an explicit validation rule, not an oversight.
	ErrZeroDelta = errors.New("inventory: adjustment delta must be non-zero")

	// ErrInvalidReason is returned for reason codes outside the enum.
	ErrInvalidReason = errors.New("inventory: invalid adjustment reason")

	// ErrRecordNotFound is returned by stores when the variant is unknown.
	ErrRecordNotFound = errors.New("inventory: record not found")
)

// Status is the derived stock classification. Always computed from current
// values, never cached.
type Status string

const (
	StatusOutOfStock Status = "out_of_stock"
	StatusLowStock   Status = "low_stock"
	StatusInStock    Status = "in_stock"
)

// StatusOf classifies stock against its threshold. A quantity exactly at
// the threshold is low stock.
func StatusOf(stock, threshold int) Status {
	switch {
	case stock <= 0:
		return StatusOutOfStock
	case stock <= threshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// Record is the cached projection of one authoritative inventory row.
type Record struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	SKU         string  `json:"sku"`
	ProductName string  `json:"product_name"`
	VariantName string  `json:"variant_name"`
	Stock       int     `json:"stock"`
	Threshold   int     `json:"threshold"`
	CostPrice   float64 `json:"cost_price"`
	RetailPrice float64 `json:"retail_price"`
}

// Status classifies the record's current stock.
func (r Record) Status() Status { return StatusOf(r.Stock, r.Threshold) }

// Store is the authoritative inventory backend. ApplyDelta must apply the
// delta atomically with respect to concurrent adjustments of the same row
// and return the new authoritative quantity.
type Store interface {
	List(ctx context.Context) ([]Record, error)
	ApplyDelta(ctx context.Context, recordID uint, delta int, reason Reason, note string, actorID uint) (newStock int, err error)
}

// Adjusted is the payload fired on the "stock.adjusted" event.
type Adjusted struct {
	Record Record `json:"record"`
	Delta  int    `json:"delta"`
	Reason Reason `json:"reason"`
	Note   string `json:"note"`
}

// EventStockAdjusted is fired after every successfully applied adjustment.
const EventStockAdjusted = "stock.adjusted"

// Reconciler applies stock deltas through the Store and keeps a cached
// list consistent with the acknowledged outcome. The cache is advisory and
// read-mostly; only acknowledged adjustments mutate it, and always with the
// store's returned value rather than a second local delta application.
type Reconciler struct {
	store Store

	mu      sync.RWMutex
	records map[uint]Record
	order   []uint
}

// NewReconciler creates a Reconciler with an empty cache; call Refresh to
// populate it.
func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store, records: make(map[uint]Record)}
}

// Refresh replaces the cached list with the store's current rows.
func (r *Reconciler) Refresh(ctx context.Context) error {
	rows, err := r.store.List(ctx)
	if err != nil {
		return fmt.Errorf("inventory: refresh: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make(map[uint]Record, len(rows))
	r.order = r.order[:0]
	for _, rec := range rows {
		r.records[rec.ID] = rec
		r.order = append(r.order, rec.ID)
	}
	return nil
}

// Records returns the cached projection in listing order.
func (r *Reconciler) Records() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Record, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id])
	}
	return out
}

// Record returns one cached row by ID.
func (r *Reconciler) Record(id uint) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	return rec, ok
}

// AdjustStock applies a signed delta for one variant. Zero deltas and
// invalid reasons are rejected before the store is contacted. On success
// the cache adopts the store's returned quantity; on failure the cache is
// untouched and the error is returned for the caller to surface, making the
// operation safely retryable.
func (r *Reconciler) AdjustStock(ctx context.Context, recordID uint, delta int, reason Reason, note string, actorID uint) (Record, error) {
	if delta == 0 {
		return Record{}, ErrZeroDelta
	}
	if !reason.Valid() {
		return Record{}, fmt.Errorf("%w: %q", ErrInvalidReason, reason)
	}

	newStock, err := r.store.ApplyDelta(ctx, recordID, delta, reason, note, actorID)
	if err != nil {
		metrics.StockAdjustments.WithLabelValues(string(reason), "failed").Inc()
		return Record{}, fmt.Errorf("inventory: adjust %d by %+d: %w", recordID, delta, err)
	}

	r.mu.Lock()
	rec, ok := r.records[recordID]
	if ok {
		rec.Stock = newStock
		r.records[recordID] = rec
	}
	r.mu.Unlock()

	if !ok {
		// Row exists in the store but was missing from the cache (cache
		// never refreshed or row created since). Use a minimal record so
		// listeners still see the right ID and quantity.
		rec = Record{ID: recordID, Stock: newStock}
	}

	metrics.StockAdjustments.WithLabelValues(string(reason), "applied").Inc()
	event.Fire(EventStockAdjusted, Adjusted{Record: rec, Delta: delta, Reason: reason, Note: note})

	return rec, nil
}
