package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumicea/lumicea/app/models"
	"github.com/lumicea/lumicea/app/pricing"
)

func hoopProduct() models.Product {
	return models.Product{
		Name:      "Signature Hoop Earrings",
		Slug:      "signature-hoops",
		SKUPrefix: "LUM-HOOP",
		BasePrice: 20.00,
		OptionGroups: []models.OptionGroup{
			{
				Code: "size", Name: "Hoop diameter", Required: true, Position: 2,
				Options: []models.Option{
					{Code: "6", Name: "6mm", DiameterMM: 6, Position: 0},
					{Code: "7", Name: "7mm", DiameterMM: 7, Position: 1},
					{Code: "8", Name: "8mm", PriceAdjustment: 3.00, DiameterMM: 8, Position: 2},
				},
			},
			{
				Code: "material", Name: "Wire material", Required: true, Position: 0,
				Options: []models.Option{
					{Code: "ss", Name: "Sterling Silver", Position: 0},
					{Code: "gf14", Name: "14k Gold Filled", PriceAdjustment: 25.00, Position: 1},
				},
			},
			{
				Code: "gemstone", Name: "Gemstone", Required: false, Position: 1,
				Options: []models.Option{
					{Code: "sap", Name: "Sapphire", PriceAdjustment: 35.00, Position: 0},
					{Code: "moonstone", Name: "Moonstone", PriceAdjustment: 15.00, Position: 1, SoldOut: true},
				},
			},
		},
	}
}

func TestComposeFullSelection(t *testing.T) {
	svc := NewVariantService()

	sel, err := svc.Compose(hoopProduct(), map[string]string{
		"material": "gf14",
		"gemstone": "sap",
		"size":     "8",
	}, 2)
	require.NoError(t, err)

	assert.InDelta(t, 83.00, sel.UnitPrice, 1e-9)
	assert.InDelta(t, 166.00, sel.LineTotal, 1e-9)
	assert.Equal(t, 2, sel.Quantity)
	assert.Equal(t, "Sapphire", sel.Labels()["gemstone"])
}

func TestComposeDefaults(t *testing.T) {
	svc := NewVariantService()

	// No selections: first option of each required group, no gemstone.
	sel, err := svc.Compose(hoopProduct(), nil, 1)
	require.NoError(t, err)

	assert.InDelta(t, 20.00, sel.UnitPrice, 1e-9)
	_, hasGem := sel.Options["gemstone"]
	assert.False(t, hasGem)
}

func TestComposeRejectsBadSelections(t *testing.T) {
	svc := NewVariantService()
	product := hoopProduct()

	_, err := svc.Compose(product, map[string]string{"engraving": "initials"}, 1)
	assert.ErrorIs(t, err, pricing.ErrUnknownGroup)

	_, err = svc.Compose(product, map[string]string{"material": "platinum"}, 1)
	assert.ErrorIs(t, err, pricing.ErrUnknownOption)

	_, err = svc.Compose(product, map[string]string{"gemstone": "moonstone"}, 1)
	assert.ErrorIs(t, err, pricing.ErrSoldOut)

	_, err = svc.Compose(product, map[string]string{"size": "none"}, 1)
	assert.ErrorIs(t, err, pricing.ErrRequiredGroup)
}

func TestSKUFollowsGroupDisplayOrder(t *testing.T) {
	svc := NewVariantService()
	product := hoopProduct()

	sel, err := svc.Compose(product, map[string]string{
		"material": "gf14",
		"gemstone": "sap",
		"size":     "8",
	}, 1)
	require.NoError(t, err)

	// Groups are declared out of order above; the SKU follows Position.
	assert.Equal(t, "LUM-HOOP-GF14-SAP-8", svc.SKU(product, sel))
}

func TestSKUSkipsNoneAndFallsBackToSlug(t *testing.T) {
	svc := NewVariantService()
	product := hoopProduct()

	sel, err := svc.Compose(product, map[string]string{"material": "ss", "size": "7"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "LUM-HOOP-SS-7", svc.SKU(product, sel))

	product.SKUPrefix = ""
	assert.Equal(t, "SIGNATURE-HOOPS-SS-7", svc.SKU(product, sel))
}
