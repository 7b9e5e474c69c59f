package repositories

import (
	"time"

	"github.com/lumicea/lumicea/app/models"
	"github.com/lumicea/lumicea/pkg/cache"
	"github.com/lumicea/lumicea/pkg/orm"
)

// ProductRepository handles database operations for the catalogue.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

const catalogCacheKey = "lumicea:catalog:categories"

// Published returns the published catalogue page for the storefront,
// optionally filtered by category.
func (r *ProductRepository) Published(category string, page, limit int) ([]models.Product, orm.Pagination, error) {
	q := orm.DB().Model(&models.Product{}).Where("published = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var products []models.Product
	pagination, err := q.GetWithPagination(&products, page, limit)
	return products, pagination, err
}

// FindBySlug loads one product with its option groups and options, both in
// display order.
func (r *ProductRepository) FindBySlug(slug string) (models.Product, error) {
	var product models.Product
	err := orm.DB().
		Model(&models.Product{}).
		Where("slug = ?", slug).
		Preload("OptionGroups").
		Preload("OptionGroups.Options").
		First(&product)
	return product, err
}

// FindByID loads one product with its option groups and options.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().
		Model(&models.Product{}).
		Where("id = ?", id).
		Preload("OptionGroups").
		Preload("OptionGroups.Options").
		First(&product)
	return product, err
}

// All returns every product for the back-office, including unpublished.
func (r *ProductRepository) All(page, limit int) ([]models.Product, orm.Pagination, error) {
	var products []models.Product
	pagination, err := orm.DB().Model(&models.Product{}).GetWithPagination(&products, page, limit)
	return products, pagination, err
}

// Categories returns the distinct category names, cached for five minutes.
func (r *ProductRepository) Categories() ([]string, error) {
	var categories []string
	if cache.Get(catalogCacheKey, &categories) {
		return categories, nil
	}

	var products []models.Product
	if err := orm.DB().Model(&models.Product{}).Where("published = ?", true).Get(&products); err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	for _, p := range products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}

	cache.Set(catalogCacheKey, categories, 5*time.Minute) //nolint:errcheck
	return categories, nil
}

// Create persists a new product with its nested option groups.
func (r *ProductRepository) Create(product *models.Product) error {
	if err := orm.DB().Create(product); err != nil {
		return err
	}
	cache.Forget(catalogCacheKey) //nolint:errcheck
	return nil
}

// Update persists changes to a product.
func (r *ProductRepository) Update(product *models.Product) error {
	if err := orm.DB().Save(product); err != nil {
		return err
	}
	cache.Forget(catalogCacheKey) //nolint:errcheck
	return nil
}

// Delete soft-deletes a product.
func (r *ProductRepository) Delete(product *models.Product) error {
	if err := orm.DB().Delete(product); err != nil {
		return err
	}
	cache.Forget(catalogCacheKey) //nolint:errcheck
	return nil
}
