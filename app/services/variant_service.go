package services

import (
	"sort"
	"strings"

	"github.com/lumicea/lumicea/app/models"
	"github.com/lumicea/lumicea/app/pricing"
)

// VariantService turns persisted products into pricing engines and
// composes concrete variants from customer selections.
type VariantService struct{}

func NewVariantService() *VariantService {
	return &VariantService{}
}

// Engine builds a pricing engine for the product, with groups and options
// in display order and defaults applied.
func (s *VariantService) Engine(product models.Product) *pricing.Engine {
	groups := make([]models.OptionGroup, len(product.OptionGroups))
	copy(groups, product.OptionGroups)
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Position < groups[j].Position })

	out := make([]pricing.Group, 0, len(groups))
	for _, g := range groups {
		opts := make([]models.Option, len(g.Options))
		copy(opts, g.Options)
		sort.SliceStable(opts, func(i, j int) bool { return opts[i].Position < opts[j].Position })

		pg := pricing.Group{ID: g.Code, Name: g.Name, Required: g.Required}
		for _, o := range opts {
			pg.Options = append(pg.Options, pricing.Option{
				ID:              o.Code,
				Name:            o.Name,
				PriceAdjustment: o.PriceAdjustment,
				Detail:          o.Detail,
				DiameterMM:      o.DiameterMM,
				SoldOut:         o.SoldOut,
			})
		}
		out = append(out, pg)
	}

	return pricing.New(product.BasePrice, out)
}

// Compose applies the given group → option selections and quantity to a
// fresh engine and returns the resulting selection. Selection errors from
// the engine pass through unchanged so callers can map them to responses.
func (s *VariantService) Compose(product models.Product, selections map[string]string, quantity int) (pricing.Selection, error) {
	engine := s.Engine(product)
	for groupID, optionID := range selections {
		if err := engine.SelectOption(groupID, optionID); err != nil {
			return pricing.Selection{}, err
		}
	}
	engine.SetQuantity(quantity)
	return engine.Selection(), nil
}

// SKU derives the variant SKU from the product prefix and the selected
// option codes in group display order. "none" selections contribute no
// segment.
func (s *VariantService) SKU(product models.Product, sel pricing.Selection) string {
	prefix := product.SKUPrefix
	if prefix == "" {
		prefix = strings.ToUpper(product.Slug)
	}

	groups := make([]models.OptionGroup, len(product.OptionGroups))
	copy(groups, product.OptionGroups)
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Position < groups[j].Position })

	parts := []string{prefix}
	for _, g := range groups {
		if opt, ok := sel.Options[g.Code]; ok {
			parts = append(parts, strings.ToUpper(opt.ID))
		}
	}
	return strings.Join(parts, "-")
}
