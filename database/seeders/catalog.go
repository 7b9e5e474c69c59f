package seeders

import (
	"time"

	"gorm.io/gorm"

	"github.com/lumicea/lumicea/app/models"
	"github.com/lumicea/lumicea/pkg/auth"
)

func init() {
	Register("users", SeedUsers)
	Register("catalog", SeedCatalog)
	Register("inventory", SeedInventory)
	Register("settings", SeedSettings)
	Register("blog", SeedBlog)
}

// SeedUsers creates the shop owner and a demo customer.
func SeedUsers(db *gorm.DB) error {
	hash, err := auth.HashPassword("password")
	if err != nil {
		return err
	}

	users := []models.User{
		{Name: "Lumicea Admin", Email: "admin@lumicea.com", Password: hash, Role: models.RoleAdmin},
		{Name: "Demo Customer", Email: "customer@example.com", Password: hash, Role: models.RoleCustomer},
	}
	for i := range users {
		if err := db.Where("email = ?", users[i].Email).FirstOrCreate(&users[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedCatalog creates the signature hoop with its three option groups.
func SeedCatalog(db *gorm.DB) error {
	product := models.Product{
		Name:        "Signature Hoop Earrings",
		Slug:        "signature-hoops",
		SKUPrefix:   "LUM-HOOP",
		Description: "Hand-wrapped hoop earrings made to order. Choose your wire, gemstone, and diameter.",
		BasePrice:   20.00,
		Category:    "earrings",
		Published:   true,
		OptionGroups: []models.OptionGroup{
			{
				Code:     "material",
				Name:     "Wire material",
				Required: true,
				Position: 0,
				Options: []models.Option{
					{Code: "ss", Name: "Sterling Silver", PriceAdjustment: 0, Position: 0},
					{Code: "gf14", Name: "14k Gold Filled", PriceAdjustment: 25.00, Position: 1},
					{Code: "rgf", Name: "Rose Gold Filled", PriceAdjustment: 25.00, Position: 2},
				},
			},
			{
				Code:     "gemstone",
				Name:     "Gemstone",
				Required: false,
				Position: 1,
				Options: []models.Option{
					{Code: "moonstone", Name: "Moonstone", PriceAdjustment: 15.00, Detail: "June birthstone", Position: 0},
					{Code: "sap", Name: "Sapphire", PriceAdjustment: 35.00, Detail: "September birthstone", Position: 1},
				},
			},
			{
				Code:     "size",
				Name:     "Hoop diameter",
				Required: true,
				Position: 2,
				Options: []models.Option{
					{Code: "6", Name: "6mm", DiameterMM: 6, Position: 0},
					{Code: "7", Name: "7mm", DiameterMM: 7, Position: 1},
					{Code: "8", Name: "8mm", PriceAdjustment: 3.00, DiameterMM: 8, Position: 2},
				},
			},
		},
	}
	return db.Where("slug = ?", product.Slug).FirstOrCreate(&product).Error
}

// SeedInventory tracks stock for the most popular hoop variants.
func SeedInventory(db *gorm.DB) error {
	var product models.Product
	if err := db.Where("slug = ?", "signature-hoops").First(&product).Error; err != nil {
		return err
	}

	rows := []models.InventoryRecord{
		{ProductID: product.ID, SKU: "LUM-HOOP-SS-7", VariantName: "Sterling Silver 7mm", StockQuantity: 24, LowStockThreshold: 5, CostPrice: 6.50, RetailPrice: 20.00},
		{ProductID: product.ID, SKU: "LUM-HOOP-GF14-7", VariantName: "14k Gold Filled 7mm", StockQuantity: 12, LowStockThreshold: 5, CostPrice: 14.00, RetailPrice: 45.00},
		{ProductID: product.ID, SKU: "LUM-HOOP-GF14-SAP-8", VariantName: "14k Gold Filled Sapphire 8mm", StockQuantity: 4, LowStockThreshold: 5, CostPrice: 24.00, RetailPrice: 83.00},
		{ProductID: product.ID, SKU: "LUM-HOOP-RGF-MOONSTONE-6", VariantName: "Rose Gold Filled Moonstone 6mm", StockQuantity: 0, LowStockThreshold: 3, CostPrice: 18.00, RetailPrice: 60.00},
	}
	for i := range rows {
		if err := db.Where("sku = ?", rows[i].SKU).FirstOrCreate(&rows[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedSettings writes the storefront defaults.
func SeedSettings(db *gorm.DB) error {
	defaults := map[string]string{
		"shop_name":           "Lumicea",
		"announcement_banner": "Free UK shipping on orders over £50",
		"shipping_copy":       "Every piece is made to order and dispatched within 3 working days.",
		"display_unit":        "mm",
	}
	for key, value := range defaults {
		setting := models.Setting{Key: key, Value: value}
		if err := db.Where("key = ?", key).FirstOrCreate(&setting).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedBlog publishes a welcome post.
func SeedBlog(db *gorm.DB) error {
	var author models.User
	if err := db.Where("email = ?", "admin@lumicea.com").First(&author).Error; err != nil {
		return err
	}

	now := time.Now()
	post := models.BlogPost{
		Title:       "Welcome to the Lumicea studio journal",
		Slug:        "welcome",
		Body:        "Notes from the bench: new gemstones, restocks, and the occasional behind-the-scenes look at how the hoops are made.",
		AuthorID:    author.ID,
		PublishedAt: &now,
	}
	return db.Where("slug = ?", post.Slug).FirstOrCreate(&post).Error
}
