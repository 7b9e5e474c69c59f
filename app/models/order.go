package models

import "gorm.io/gorm"

// Order statuses. Transitions are linear except for "cancelled", which is
// reachable from pending and paid only.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Order is a placed checkout. Total is the sum of line totals at the time
// the order was placed; like cart lines, it is never recomputed from the
// current catalogue.
type Order struct {
	gorm.Model
	UserID    uint    `gorm:"not null;index"         json:"user_id"`
	Reference string  `gorm:"size:64;uniqueIndex"    json:"reference"`
	Status    string  `gorm:"size:50;default:pending" json:"status"`
	Currency  string  `gorm:"size:3;not null"        json:"currency"`
	Total     float64 `gorm:"not null;default:0"     json:"total"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// OrderItem snapshots one cart line: unit price and attribute labels are
// captured at order time.
type OrderItem struct {
	gorm.Model
	OrderID    uint    `gorm:"not null;index"     json:"order_id"`
	ProductID  uint    `gorm:"not null;index"     json:"product_id"`
	SKU        string  `gorm:"size:100;not null"  json:"sku"`
	Name       string  `gorm:"size:255;not null"  json:"name"`
	UnitPrice  float64 `gorm:"not null"           json:"unit_price"`
	Quantity   int     `gorm:"not null;default:1" json:"quantity"`
	Attributes string  `gorm:"type:text"          json:"attributes"` // JSON map of group → option label
}
