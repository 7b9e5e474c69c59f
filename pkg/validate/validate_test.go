package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type adjustPayload struct {
	SKU    string `json:"sku"    validate:"required,alpha_dash,max=64"`
	Delta  int    `json:"delta"  validate:"required,integer"`
	Reason string `json:"reason" validate:"required,in=restock,adjustment,return"`
	Note   string `json:"note"   validate:"nullable,max=10"`
}

func TestStructPasses(t *testing.T) {
	errs := Struct(adjustPayload{SKU: "LUM-HOOP-GF14-SAP-8", Delta: 5, Reason: "restock"})
	assert.Empty(t, errs)
}

func TestRequiredFields(t *testing.T) {
	errs := Struct(adjustPayload{})
	assert.Equal(t, "The sku field is required.", errs["sku"])
	assert.Contains(t, errs, "delta")
	assert.Contains(t, errs, "reason")
	assert.NotContains(t, errs, "note")
}

func TestInRuleKeepsMultiValueParam(t *testing.T) {
	errs := Struct(adjustPayload{SKU: "LUM-1", Delta: 1, Reason: "sale"})
	assert.Equal(t, "The selected reason is invalid.", errs["reason"])

	errs = Struct(adjustPayload{SKU: "LUM-1", Delta: 1, Reason: "return"})
	assert.Empty(t, errs)
}

func TestNullableSkipsRemainingRules(t *testing.T) {
	errs := Struct(adjustPayload{SKU: "LUM-1", Delta: 1, Reason: "restock", Note: ""})
	assert.Empty(t, errs)

	errs = Struct(adjustPayload{SKU: "LUM-1", Delta: 1, Reason: "restock", Note: "this note is far too long"})
	assert.Contains(t, errs, "note")
}

func TestAlphaDash(t *testing.T) {
	errs := Struct(adjustPayload{SKU: "LUM HOOP", Delta: 1, Reason: "restock"})
	assert.Contains(t, errs, "sku")
}

func TestNumericBounds(t *testing.T) {
	type payload struct {
		Price float64 `json:"price" validate:"required,numeric,gte=0.01,lte=10000"`
	}
	assert.Empty(t, Struct(payload{Price: 20}))
	assert.Contains(t, Struct(payload{Price: 20000}), "price")
}

func TestEmail(t *testing.T) {
	type payload struct {
		Email string `json:"email" validate:"required,email"`
	}
	assert.Empty(t, Struct(payload{Email: "ana@lumicea.co.uk"}))
	assert.Contains(t, Struct(payload{Email: "not-an-email"}), "email")
}
