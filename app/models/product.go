package models

import "gorm.io/gorm"

// Product is a catalogue entry. The customer-facing price of a concrete
// variant is BasePrice plus the adjustments of the selected options.
type Product struct {
	gorm.Model
	Name        string  `gorm:"size:255;not null;index" json:"name"`
	Slug        string  `gorm:"size:255;uniqueIndex"    json:"slug"`
	SKUPrefix   string  `gorm:"size:50"                 json:"sku_prefix"`
	Description string  `gorm:"type:text"               json:"description"`
	BasePrice   float64 `gorm:"not null;default:0"      json:"base_price"`
	Category    string  `gorm:"size:100;index"          json:"category"`
	ImageURL    string  `gorm:"size:512"                json:"image_url"`
	Published   bool    `gorm:"not null;default:true"   json:"published"`

	OptionGroups []OptionGroup `gorm:"foreignKey:ProductID" json:"option_groups,omitempty"`
}

// OptionGroup is one axis of customisation (material, gemstone, size).
// Required groups always have exactly one option selected; optional groups
// additionally accept the explicit "none" selection.
type OptionGroup struct {
	gorm.Model
	ProductID uint   `gorm:"not null;index"        json:"product_id"`
	Code      string `gorm:"size:50;not null"      json:"code"`
	Name      string `gorm:"size:100;not null"     json:"name"`
	Required  bool   `gorm:"not null;default:true" json:"required"`
	Position  int    `gorm:"not null;default:0"    json:"position"`

	Options []Option `gorm:"foreignKey:GroupID" json:"options,omitempty"`
}

// Option is one selectable value within a group. PriceAdjustment is signed;
// zero means included at base price. DiameterMM is set for size-like options
// and is the canonical stored dimension (inches are a display concern).
type Option struct {
	gorm.Model
	GroupID         uint    `gorm:"not null;index"         json:"group_id"`
	Code            string  `gorm:"size:50;not null"       json:"code"`
	Name            string  `gorm:"size:100;not null"      json:"name"`
	PriceAdjustment float64 `gorm:"not null;default:0"     json:"price_adjustment"`
	Detail          string  `gorm:"type:text"              json:"detail"`
	DiameterMM      float64 `gorm:"not null;default:0"     json:"diameter_mm"`
	SoldOut         bool    `gorm:"not null;default:false" json:"sold_out"`
	Position        int     `gorm:"not null;default:0"     json:"position"`
}
