package repositories

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/lumicea/lumicea/app/cart"
	"github.com/lumicea/lumicea/app/models"
	"github.com/lumicea/lumicea/pkg/database"
	"github.com/lumicea/lumicea/pkg/orm"
)

// OrderRepository handles database operations for orders.
type OrderRepository struct {
	inventory *InventoryRepository
}

func NewOrderRepository(inv *InventoryRepository) *OrderRepository {
	return &OrderRepository{inventory: inv}
}

// CreateFromCart persists an order with items snapshotted from the cart
// and deducts stock for every tracked SKU, all in one transaction. The
// order total is the cart subtotal; cart prices are trusted because they
// were themselves snapshots at add time.
func (r *OrderRepository) CreateFromCart(userID uint, reference, currency string, c *cart.Cart) (models.Order, error) {
	order := models.Order{
		UserID:    userID,
		Reference: reference,
		Status:    models.OrderPending,
		Currency:  currency,
		Total:     c.Subtotal(),
	}

	for _, line := range c.Lines {
		attrs, err := json.Marshal(line.Attributes)
		if err != nil {
			return models.Order{}, fmt.Errorf("orders: marshal attributes: %w", err)
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID:  line.ProductID,
			SKU:        line.SKU,
			Name:       line.Name,
			UnitPrice:  line.UnitPrice,
			Quantity:   line.Quantity,
			Attributes: string(attrs),
		})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, item := range order.Items {
			note := "order " + reference
			if err := r.inventory.DeductForSale(tx, item.SKU, item.Quantity, note); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// FindByReference loads one order with its items.
func (r *OrderRepository) FindByReference(reference string) (models.Order, error) {
	var order models.Order
	err := orm.DB().
		Model(&models.Order{}).
		Where("reference = ?", reference).
		Preload("Items").
		First(&order)
	return order, err
}

// ForUser returns a customer's own orders, newest first.
func (r *OrderRepository) ForUser(userID uint, page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	pagination, err := orm.DB().
		Model(&models.Order{}).
		Where("user_id = ?", userID).
		Order("id desc").
		Preload("Items").
		GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

// All returns every order for the back-office, newest first.
func (r *OrderRepository) All(page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	pagination, err := orm.DB().
		Model(&models.Order{}).
		Order("id desc").
		Preload("Items").
		GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

// UpdateStatus moves an order to a new status.
func (r *OrderRepository) UpdateStatus(order *models.Order, status string) error {
	order.Status = status
	return database.DB.Model(order).Update("status", status).Error
}
