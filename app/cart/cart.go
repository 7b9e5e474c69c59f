// Package cart implements the server-side shopping cart. Carts are keyed
// by an opaque cart ID issued to the storefront and persisted through a
// pluggable Backend (Redis in production, memory in tests).
//
// Line unit prices are snapshots captured when the line is added. Catalogue
// price changes never rewrite existing lines.
package cart

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrLineNotFound is returned when a line ID is not present in the cart.
	ErrLineNotFound = errors.New("cart: line not found")

	// ErrInsufficientStock is returned when the availability check rejects
	// a quantity increase.
	ErrInsufficientStock = errors.New("cart: insufficient stock")
)

// Line is one cart entry. UnitPrice and Attributes are point-in-time
// snapshots of the composed variant.
type Line struct {
	ID         string            `json:"id"`
	ProductID  uint              `json:"product_id"`
	SKU        string            `json:"sku"`
	Name       string            `json:"name"`
	UnitPrice  float64           `json:"unit_price"`
	Quantity   int               `json:"quantity"`
	ImageURL   string            `json:"image_url"`
	Attributes map[string]string `json:"attributes"`
}

// Cart is the full cart document persisted per cart ID.
type Cart struct {
	ID        string    `json:"id"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemCount is the total quantity across all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Subtotal sums unit price × quantity across all lines.
func (c *Cart) Subtotal() float64 {
	total := 0.0
	for _, l := range c.Lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}

// Backend persists cart documents. Load returns an empty cart when the ID
// has no stored document.
type Backend interface {
	Load(ctx context.Context, cartID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, cartID string) error
}

// Availability answers whether qty units of a SKU can currently be sold.
// The cart consults it before accepting quantity increases; it is the
// explicit stock check the storefront add-to-cart path needs.
type Availability interface {
	Available(ctx context.Context, sku string, qty int) (bool, error)
}

// Store coordinates cart mutations against a Backend.
type Store struct {
	backend Backend
	avail   Availability // nil disables availability checks
}

// NewStore creates a Store. avail may be nil.
func NewStore(backend Backend, avail Availability) *Store {
	return &Store{backend: backend, avail: avail}
}

// Get loads the cart for cartID, returning an empty cart if none exists.
func (s *Store) Get(ctx context.Context, cartID string) (*Cart, error) {
	return s.backend.Load(ctx, cartID)
}

// AddLine appends line to the cart. A line with the same SKU and identical
// attribute snapshot is merged by incrementing its quantity instead; the
// existing price snapshot wins, mirroring add-time capture semantics.
func (s *Store) AddLine(ctx context.Context, cartID string, line Line) (*Cart, error) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}

	c, err := s.backend.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range c.Lines {
		if c.Lines[i].SKU == line.SKU && sameAttributes(c.Lines[i].Attributes, line.Attributes) {
			wanted := c.Lines[i].Quantity + line.Quantity
			if err := s.checkAvailability(ctx, line.SKU, wanted); err != nil {
				return nil, err
			}
			c.Lines[i].Quantity = wanted
			merged = true
			break
		}
	}

	if !merged {
		if err := s.checkAvailability(ctx, line.SKU, line.Quantity); err != nil {
			return nil, err
		}
		if line.ID == "" {
			line.ID = newLineID()
		}
		c.Lines = append(c.Lines, line)
	}

	return c, s.save(ctx, c)
}

// UpdateQuantity sets a line's quantity. A target of zero or below removes
// the line. Increases are subject to the availability check; decreases are
// always allowed.
func (s *Store) UpdateQuantity(ctx context.Context, cartID, lineID string, qty int) (*Cart, error) {
	c, err := s.backend.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("%w: %q", ErrLineNotFound, lineID)
	}

	if qty <= 0 {
		c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
		return c, s.save(ctx, c)
	}

	if qty > c.Lines[idx].Quantity {
		if err := s.checkAvailability(ctx, c.Lines[idx].SKU, qty); err != nil {
			return nil, err
		}
	}

	c.Lines[idx].Quantity = qty
	return c, s.save(ctx, c)
}

// RemoveLine deletes a line outright.
func (s *Store) RemoveLine(ctx context.Context, cartID, lineID string) (*Cart, error) {
	return s.UpdateQuantity(ctx, cartID, lineID, 0)
}

// Clear destroys the cart document.
func (s *Store) Clear(ctx context.Context, cartID string) error {
	return s.backend.Delete(ctx, cartID)
}

func (s *Store) checkAvailability(ctx context.Context, sku string, qty int) error {
	if s.avail == nil || sku == "" {
		return nil
	}
	ok, err := s.avail.Available(ctx, sku, qty)
	if err != nil {
		return fmt.Errorf("cart: availability check: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s × %d", ErrInsufficientStock, sku, qty)
	}
	return nil
}

func (s *Store) save(ctx context.Context, c *Cart) error {
	c.UpdatedAt = time.Now()
	return s.backend.Save(ctx, c)
}

func sameAttributes(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func newLineID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
