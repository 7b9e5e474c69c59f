package models

import "gorm.io/gorm"

// InventoryRecord is the authoritative stock row for one sellable variant.
// StockQuantity is never written directly by callers; every change goes
// through a signed delta recorded as a StockMovement.
type InventoryRecord struct {
	gorm.Model
	ProductID         uint    `gorm:"not null;index"       json:"product_id"`
	SKU               string  `gorm:"size:100;uniqueIndex" json:"sku"`
	VariantName       string  `gorm:"size:255;not null"    json:"variant_name"`
	StockQuantity     int     `gorm:"not null;default:0"   json:"stock_quantity"`
	LowStockThreshold int     `gorm:"not null;default:5"   json:"low_stock_threshold"`
	CostPrice         float64 `gorm:"not null;default:0"   json:"cost_price"`
	RetailPrice       float64 `gorm:"not null;default:0"   json:"retail_price"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// StockMovement is the append-only audit trail of stock changes.
// StockAfter is the authoritative quantity as of this movement.
type StockMovement struct {
	gorm.Model
	InventoryRecordID uint   `gorm:"not null;index"    json:"inventory_record_id"`
	Delta             int    `gorm:"not null"          json:"delta"`
	Reason            string `gorm:"size:50;not null"  json:"reason"`
	Note              string `gorm:"type:text"         json:"note"`
	StockAfter        int    `gorm:"not null"          json:"stock_after"`
	ActorID           uint   `gorm:"index"             json:"actor_id"`
}
