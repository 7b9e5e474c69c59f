package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lumicea/lumicea/app/inventory"
	"github.com/lumicea/lumicea/app/models"
	"github.com/lumicea/lumicea/pkg/database"
	"github.com/lumicea/lumicea/pkg/orm"
)

// InventoryRepository is the authoritative inventory store. Stock changes
// are applied as atomic relative updates and every change is recorded as a
// StockMovement in the same transaction.
type InventoryRepository struct{}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{}
}

// List returns every inventory row joined with its product name, in the
// shape the reconciler caches.
func (r *InventoryRepository) List(ctx context.Context) ([]inventory.Record, error) {
	var rows []models.InventoryRecord
	err := database.DB.WithContext(ctx).
		Preload("Product").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]inventory.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, inventory.Record{
			ID:          row.ID,
			ProductID:   row.ProductID,
			SKU:         row.SKU,
			ProductName: row.Product.Name,
			VariantName: row.VariantName,
			Stock:       row.StockQuantity,
			Threshold:   row.LowStockThreshold,
			CostPrice:   row.CostPrice,
			RetailPrice: row.RetailPrice,
		})
	}
	return out, nil
}

// ApplyDelta applies a signed stock delta atomically and records the
// movement. The relative update makes concurrent adjustments of the same
// row serialize at the database rather than last-write-wins in Go.
func (r *InventoryRepository) ApplyDelta(ctx context.Context, recordID uint, delta int, reason inventory.Reason, note string, actorID uint) (int, error) {
	var newStock int

	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.InventoryRecord{}).
			Where("id = ?", recordID).
			UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: id %d", inventory.ErrRecordNotFound, recordID)
		}

		var row models.InventoryRecord
		if err := tx.Select("stock_quantity").First(&row, recordID).Error; err != nil {
			return err
		}
		newStock = row.StockQuantity

		movement := models.StockMovement{
			InventoryRecordID: recordID,
			Delta:             delta,
			Reason:            string(reason),
			Note:              note,
			StockAfter:        newStock,
			ActorID:           actorID,
		}
		return tx.Create(&movement).Error
	})
	if err != nil {
		return 0, err
	}
	return newStock, nil
}

// Available reports whether qty units of sku can currently be sold.
// SKUs with no inventory row are untracked and always available.
func (r *InventoryRepository) Available(ctx context.Context, sku string, qty int) (bool, error) {
	var row models.InventoryRecord
	err := database.DB.WithContext(ctx).
		Select("stock_quantity").
		Where("sku = ?", sku).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return row.StockQuantity >= qty, nil
}

// DeductForSale decrements stock for a sold SKU, guarded so it cannot go
// negative, and records a "sale" movement. Runs inside the caller's
// checkout transaction.
func (r *InventoryRepository) DeductForSale(tx *gorm.DB, sku string, qty int, note string) error {
	var row models.InventoryRecord
	err := tx.Where("sku = ?", sku).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil // untracked SKU
	}
	if err != nil {
		return err
	}

	res := tx.Model(&models.InventoryRecord{}).
		Where("id = ? AND stock_quantity >= ?", row.ID, qty).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("inventory: insufficient stock for %s", sku)
	}

	var after models.InventoryRecord
	if err := tx.Select("stock_quantity").First(&after, row.ID).Error; err != nil {
		return err
	}

	movement := models.StockMovement{
		InventoryRecordID: row.ID,
		Delta:             -qty,
		Reason:            "sale",
		Note:              note,
		StockAfter:        after.StockQuantity,
	}
	return tx.Create(&movement).Error
}

// FindByID returns one inventory row.
func (r *InventoryRepository) FindByID(id uint) (models.InventoryRecord, error) {
	var row models.InventoryRecord
	err := orm.DB().Model(&models.InventoryRecord{}).Where("id = ?", id).First(&row)
	return row, err
}

// FindBySKU returns one inventory row by SKU.
func (r *InventoryRepository) FindBySKU(sku string) (models.InventoryRecord, error) {
	var row models.InventoryRecord
	err := orm.DB().Model(&models.InventoryRecord{}).Where("sku = ?", sku).First(&row)
	return row, err
}

// Create persists a new inventory row.
func (r *InventoryRepository) Create(row *models.InventoryRecord) error {
	return orm.DB().Create(row)
}

// Update persists changes to thresholds and prices. Stock quantity changes
// must go through ApplyDelta instead.
func (r *InventoryRepository) Update(row *models.InventoryRecord) error {
	return database.DB.Model(row).
		Select("VariantName", "LowStockThreshold", "CostPrice", "RetailPrice").
		Updates(row).Error
}

// Movements returns the audit trail for one inventory row, newest first.
func (r *InventoryRepository) Movements(recordID uint, page, limit int) ([]models.StockMovement, orm.Pagination, error) {
	var out []models.StockMovement
	pagination, err := orm.DB().
		Model(&models.StockMovement{}).
		Where("inventory_record_id = ?", recordID).
		Order("id desc").
		GetWithPagination(&out, page, limit)
	return out, pagination, err
}
