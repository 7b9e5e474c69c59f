package migrations

import (
	"gorm.io/gorm"

	"github.com/lumicea/lumicea/app/models"
	"github.com/lumicea/lumicea/pkg/migration"
)

func init() {
	migration.Register("20260110000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260110000001_create_products_tables", &CreateProductsTables{})
	migration.Register("20260110000002_create_inventory_tables", &CreateInventoryTables{})
	migration.Register("20260110000003_create_orders_tables", &CreateOrdersTables{})
	migration.Register("20260110000004_create_blog_posts_table", &CreateBlogPostsTable{})
	migration.Register("20260110000005_create_settings_table", &CreateSettingsTable{})
}

// -------- 0000: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0001: catalogue --------

type CreateProductsTables struct{}

func (m *CreateProductsTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{}, &models.OptionGroup{}, &models.Option{})
}

func (m *CreateProductsTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("options", "option_groups", "products")
}

// -------- 0002: inventory --------

type CreateInventoryTables struct{}

func (m *CreateInventoryTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.InventoryRecord{}, &models.StockMovement{})
}

func (m *CreateInventoryTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("stock_movements", "inventory_records")
}

// -------- 0003: orders --------

type CreateOrdersTables struct{}

func (m *CreateOrdersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *CreateOrdersTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items", "orders")
}

// -------- 0004: blog --------

type CreateBlogPostsTable struct{}

func (m *CreateBlogPostsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.BlogPost{})
}

func (m *CreateBlogPostsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("blog_posts")
}

// -------- 0005: settings --------

type CreateSettingsTable struct{}

func (m *CreateSettingsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Setting{})
}

func (m *CreateSettingsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("settings")
}
