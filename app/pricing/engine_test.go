package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumicea/lumicea/app/pricing"
)

// hoopGroups builds the option catalogue documented for the signature hoop:
// base £20, materials up to +£25, gemstones up to +£35, sizes up to +£3.
func hoopGroups() []pricing.Group {
	return []pricing.Group{
		{
			ID: "material", Name: "Material", Required: true,
			Options: []pricing.Option{
				{ID: "sterling-silver", Name: "Sterling Silver", PriceAdjustment: 0},
				{ID: "gold-filled-14k", Name: "14k Gold Filled", PriceAdjustment: 25},
				{ID: "rose-gold-filled", Name: "Rose Gold Filled", PriceAdjustment: 25, SoldOut: true},
			},
		},
		{
			ID: "gemstone", Name: "Gemstone", Required: false,
			Options: []pricing.Option{
				{ID: "moonstone", Name: "Moonstone", PriceAdjustment: 18},
				{ID: "sapphire", Name: "Sapphire", PriceAdjustment: 35},
			},
		},
		{
			ID: "size", Name: "Size", Required: true,
			Options: []pricing.Option{
				{ID: "6mm", Name: "6mm", PriceAdjustment: 0, DiameterMM: 6},
				{ID: "7mm", Name: "7mm", PriceAdjustment: 1.5, DiameterMM: 7},
				{ID: "8mm", Name: "8mm", PriceAdjustment: 3, DiameterMM: 8},
			},
		},
	}
}

func TestEngine_DefaultsToFirstOptionPerRequiredGroup(t *testing.T) {
	e := pricing.New(20, hoopGroups())

	// Sterling silver + 6mm, gemstone defaults to none.
	assert.Equal(t, 20.0, e.Total())
	assert.Equal(t, 1, e.Quantity())

	sel := e.Selection()
	assert.Contains(t, sel.Options, "material")
	assert.Contains(t, sel.Options, "size")
	assert.NotContains(t, sel.Options, "gemstone")
}

func TestEngine_TotalIsIndependentOfSelectionOrder(t *testing.T) {
	first := pricing.New(20, hoopGroups())
	require.NoError(t, first.SelectOption("material", "gold-filled-14k"))
	require.NoError(t, first.SelectOption("gemstone", "sapphire"))
	require.NoError(t, first.SelectOption("size", "8mm"))

	second := pricing.New(20, hoopGroups())
	require.NoError(t, second.SelectOption("size", "8mm"))
	require.NoError(t, second.SelectOption("gemstone", "sapphire"))
	require.NoError(t, second.SelectOption("material", "gold-filled-14k"))

	assert.Equal(t, first.Total(), second.Total())
	assert.Equal(t, 20.0+25+35+3, first.Total())
}

func TestEngine_NoneGemstoneContributesZero(t *testing.T) {
	e := pricing.New(20, hoopGroups())
	require.NoError(t, e.SelectOption("material", "gold-filled-14k"))
	require.NoError(t, e.SelectOption("gemstone", "sapphire"))
	require.NoError(t, e.SelectOption("size", "7mm"))
	withStone := e.Total()

	require.NoError(t, e.SelectOption("gemstone", pricing.NoneOptionID))
	assert.Equal(t, withStone-35, e.Total())
	assert.Equal(t, 20.0+25+1.5, e.Total())
}

func TestEngine_NoneRejectedOnRequiredGroup(t *testing.T) {
	e := pricing.New(20, hoopGroups())
	err := e.SelectOption("material", pricing.NoneOptionID)
	assert.ErrorIs(t, err, pricing.ErrRequiredGroup)
}

func TestEngine_UnknownSelectionsAreRejected(t *testing.T) {
	e := pricing.New(20, hoopGroups())

	assert.ErrorIs(t, e.SelectOption("clasp", "lobster"), pricing.ErrUnknownGroup)
	assert.ErrorIs(t, e.SelectOption("material", "titanium"), pricing.ErrUnknownOption)

	// Rejected selections leave the prior state untouched.
	assert.Equal(t, 20.0, e.Total())
}

func TestEngine_SoldOutOptionIsRejected(t *testing.T) {
	e := pricing.New(20, hoopGroups())
	err := e.SelectOption("material", "rose-gold-filled")
	assert.ErrorIs(t, err, pricing.ErrSoldOut)
	assert.Equal(t, 20.0, e.Total())
}

func TestEngine_SetQuantityClampsToOne(t *testing.T) {
	e := pricing.New(20, hoopGroups())

	e.SetQuantity(3)
	assert.Equal(t, 3, e.Quantity())

	e.SetQuantity(0)
	assert.Equal(t, 3, e.Quantity())

	e.SetQuantity(-5)
	assert.Equal(t, 3, e.Quantity())

	e.SetQuantity(1)
	assert.Equal(t, 1, e.Quantity())
}

func TestEngine_CallbacksFireOnEveryMutation(t *testing.T) {
	e := pricing.New(20, hoopGroups())

	var totals []float64
	var selections []pricing.Selection
	e.OnTotal(func(total float64) { totals = append(totals, total) })
	e.OnSelection(func(sel pricing.Selection) { selections = append(selections, sel) })

	require.NoError(t, e.SelectOption("material", "gold-filled-14k"))
	require.NoError(t, e.SelectOption("size", "8mm"))
	e.SetQuantity(2)

	require.Len(t, totals, 3)
	require.Len(t, selections, 3)

	// Callback N reflects all mutations up to and including N.
	assert.Equal(t, 45.0, totals[0])
	assert.Equal(t, 48.0, totals[1])
	assert.Equal(t, 48.0, totals[2])
	assert.Equal(t, 2, selections[2].Quantity)
	assert.Equal(t, 96.0, selections[2].LineTotal)
}

func TestEngine_DocumentedCheckoutScenario(t *testing.T) {
	// base £20, 14k Gold Filled +£25, Sapphire +£35, 8mm +£3, qty 2.
	e := pricing.New(20, hoopGroups())
	require.NoError(t, e.SelectOption("material", "gold-filled-14k"))
	require.NoError(t, e.SelectOption("gemstone", "sapphire"))
	require.NoError(t, e.SelectOption("size", "8mm"))
	e.SetQuantity(2)

	sel := e.Selection()
	assert.Equal(t, 83.0, sel.UnitPrice)
	assert.Equal(t, 166.0, sel.LineTotal)

	labels := sel.Labels()
	assert.Equal(t, "14k Gold Filled", labels["material"])
	assert.Equal(t, "Sapphire", labels["gemstone"])
	assert.Equal(t, "8mm", labels["size"])
}

func TestFormatDiameter(t *testing.T) {
	assert.Equal(t, "6mm", pricing.FormatDiameter(6, pricing.Millimeters))
	assert.Equal(t, `0.236"`, pricing.FormatDiameter(6, pricing.Inches))
	assert.Equal(t, `0.315"`, pricing.FormatDiameter(8, pricing.Inches))
	assert.Equal(t, "7.5mm", pricing.FormatDiameter(7.5, pricing.Millimeters))
}
