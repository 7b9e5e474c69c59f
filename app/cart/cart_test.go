package cart_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumicea/lumicea/app/cart"
)

// stubAvailability approves any quantity up to the configured stock per SKU.
type stubAvailability struct {
	stock map[string]int
	calls int
}

func (a *stubAvailability) Available(_ context.Context, sku string, qty int) (bool, error) {
	a.calls++
	return qty <= a.stock[sku], nil
}

func goldHoopLine(qty int) cart.Line {
	return cart.Line{
		ProductID: 1,
		SKU:       "LUM-HOOP-GF14",
		Name:      "Signature Hoop",
		UnitPrice: 83,
		Quantity:  qty,
		Attributes: map[string]string{
			"material": "14k Gold Filled",
			"gemstone": "Sapphire",
			"size":     "8mm",
		},
	}
}

func TestStore_AddLineSnapshotsPrice(t *testing.T) {
	s := cart.NewStore(cart.NewMemoryBackend(), nil)
	ctx := context.Background()

	c, err := s.AddLine(ctx, "c1", goldHoopLine(2))
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 83.0, c.Lines[0].UnitPrice)
	assert.Equal(t, 166.0, c.Subtotal())

	// A later catalogue price change must not rewrite the stored line.
	cheaper := goldHoopLine(1)
	cheaper.UnitPrice = 70
	cheaper.SKU = "LUM-HOOP-SS"
	cheaper.Attributes = map[string]string{"material": "Sterling Silver"}
	c, err = s.AddLine(ctx, "c1", cheaper)
	require.NoError(t, err)
	assert.Equal(t, 83.0, c.Lines[0].UnitPrice)
}

func TestStore_AddLineMergesIdenticalVariants(t *testing.T) {
	s := cart.NewStore(cart.NewMemoryBackend(), nil)
	ctx := context.Background()

	_, err := s.AddLine(ctx, "c1", goldHoopLine(1))
	require.NoError(t, err)
	c, err := s.AddLine(ctx, "c1", goldHoopLine(2))
	require.NoError(t, err)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 3, c.Lines[0].Quantity)
	assert.Equal(t, 3, c.ItemCount())
}

func TestStore_UpdateQuantityRemovesAtZeroOrBelow(t *testing.T) {
	s := cart.NewStore(cart.NewMemoryBackend(), nil)
	ctx := context.Background()

	c, err := s.AddLine(ctx, "c1", goldHoopLine(2))
	require.NoError(t, err)
	lineID := c.Lines[0].ID

	c, err = s.UpdateQuantity(ctx, "c1", lineID, 0)
	require.NoError(t, err)
	assert.Empty(t, c.Lines)

	// Removed lines stay removed on reload.
	c, err = s.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
}

func TestStore_UpdateQuantityUnknownLine(t *testing.T) {
	s := cart.NewStore(cart.NewMemoryBackend(), nil)

	_, err := s.UpdateQuantity(context.Background(), "c1", "missing", 2)
	assert.ErrorIs(t, err, cart.ErrLineNotFound)
}

func TestStore_AvailabilityGatesQuantityIncreases(t *testing.T) {
	avail := &stubAvailability{stock: map[string]int{"LUM-HOOP-GF14": 3}}
	s := cart.NewStore(cart.NewMemoryBackend(), avail)
	ctx := context.Background()

	c, err := s.AddLine(ctx, "c1", goldHoopLine(2))
	require.NoError(t, err)
	lineID := c.Lines[0].ID

	_, err = s.UpdateQuantity(ctx, "c1", lineID, 5)
	assert.ErrorIs(t, err, cart.ErrInsufficientStock)

	// Decreases never consult availability.
	before := avail.calls
	c, err = s.UpdateQuantity(ctx, "c1", lineID, 1)
	require.NoError(t, err)
	assert.Equal(t, before, avail.calls)
	assert.Equal(t, 1, c.Lines[0].Quantity)
}

func TestStore_Clear(t *testing.T) {
	s := cart.NewStore(cart.NewMemoryBackend(), nil)
	ctx := context.Background()

	_, err := s.AddLine(ctx, "c1", goldHoopLine(1))
	require.NoError(t, err)
	require.NoError(t, s.Clear(ctx, "c1"))

	c, err := s.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
	assert.Zero(t, c.Subtotal())
}
