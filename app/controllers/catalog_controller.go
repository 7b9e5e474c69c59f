package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/lumicea/lumicea/app/models"
	"github.com/lumicea/lumicea/app/pricing"
	"github.com/lumicea/lumicea/app/repositories"
	"github.com/lumicea/lumicea/app/services"
	"github.com/lumicea/lumicea/pkg/bind"
	"github.com/lumicea/lumicea/pkg/response"
)

// CatalogController serves the public storefront catalogue plus the admin
// product CRUD.
type CatalogController struct {
	products *repositories.ProductRepository
	variants *services.VariantService
}

func NewCatalogController(products *repositories.ProductRepository, variants *services.VariantService) *CatalogController {
	return &CatalogController{products: products, variants: variants}
}

// List returns the published catalogue page for the storefront.
func (c *CatalogController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	products, pagination, err := c.products.Published(r.URL.Query().Get("category"), page, limit)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load catalogue")
		return
	}
	response.Paginated(w, products, pagination)
}

// Show returns one product with its option groups.
func (c *CatalogController) Show(w http.ResponseWriter, r *http.Request) {
	product, err := c.products.FindBySlug(chi.URLParam(r, "slug"))
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !product.Published) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load product")
		return
	}
	response.Success(w, product)
}

// Categories returns the distinct published category names.
func (c *CatalogController) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.products.Categories()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load categories")
		return
	}
	response.Success(w, categories)
}

// Quote composes a variant from the posted selections and returns the
// derived pricing without touching the cart. The storefront calls this as
// the customer toggles options.
func (c *CatalogController) Quote(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Selections map[string]string `json:"selections"`
		Quantity   int               `json:"quantity"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.FindBySlug(chi.URLParam(r, "slug"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load product")
		return
	}

	sel, err := c.variants.Compose(product, body.Selections, body.Quantity)
	if err != nil {
		quoteError(w, err)
		return
	}

	response.Success(w, quotePayload(product, sel, c.variants.SKU(product, sel)))
}

// quoteError maps pricing engine rejections to a 422 with the reason.
func quoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pricing.ErrUnknownGroup),
		errors.Is(err, pricing.ErrUnknownOption),
		errors.Is(err, pricing.ErrRequiredGroup),
		errors.Is(err, pricing.ErrSoldOut):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "Could not price variant")
	}
}

func quotePayload(product models.Product, sel pricing.Selection, sku string) map[string]interface{} {
	sizes := map[string]string{}
	for groupID, opt := range sel.Options {
		if opt.DiameterMM > 0 {
			sizes[groupID] = pricing.FormatDiameter(opt.DiameterMM, pricing.Millimeters) +
				" / " + pricing.FormatDiameter(opt.DiameterMM, pricing.Inches)
		}
	}
	return map[string]interface{}{
		"product_id": product.ID,
		"sku":        sku,
		"unit_price": sel.UnitPrice,
		"line_total": sel.LineTotal,
		"quantity":   sel.Quantity,
		"labels":     sel.Labels(),
		"sizes":      sizes,
	}
}

// AdminList returns every product including unpublished drafts.
func (c *CatalogController) AdminList(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	products, pagination, err := c.products.All(page, limit)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load products")
		return
	}
	response.Paginated(w, products, pagination)
}

type productPayload struct {
	Name        string  `json:"name"        validate:"required,max=255"`
	Slug        string  `json:"slug"        validate:"required,alpha_dash,max=255"`
	SKUPrefix   string  `json:"sku_prefix"  validate:"nullable,alpha_dash,max=50"`
	Description string  `json:"description" validate:"nullable"`
	BasePrice   float64 `json:"base_price"  validate:"required,numeric,gte=0"`
	Category    string  `json:"category"    validate:"nullable,max=100"`
	ImageURL    string  `json:"image_url"   validate:"nullable,url,max=512"`
	Published   bool    `json:"published"`
}

// Create persists a new product.
func (c *CatalogController) Create(w http.ResponseWriter, r *http.Request) {
	var body productPayload
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product := models.Product{
		Name:        body.Name,
		Slug:        body.Slug,
		SKUPrefix:   body.SKUPrefix,
		Description: body.Description,
		BasePrice:   body.BasePrice,
		Category:    body.Category,
		ImageURL:    body.ImageURL,
		Published:   body.Published,
	}
	if err := c.products.Create(&product); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not create product")
		return
	}
	response.Created(w, product)
}

// Update applies changes to an existing product.
func (c *CatalogController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := c.products.FindByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load product")
		return
	}

	var body productPayload
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product.Name = body.Name
	product.Slug = body.Slug
	product.SKUPrefix = body.SKUPrefix
	product.Description = body.Description
	product.BasePrice = body.BasePrice
	product.Category = body.Category
	product.ImageURL = body.ImageURL
	product.Published = body.Published

	if err := c.products.Update(&product); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not update product")
		return
	}
	response.Success(w, product)
}

// Delete soft-deletes a product.
func (c *CatalogController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := c.products.FindByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load product")
		return
	}

	if err := c.products.Delete(&product); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not delete product")
		return
	}
	response.Success(w, map[string]string{"deleted": product.Slug})
}

// pageParams extracts ?page= and ?limit= with repository-side clamping.
func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}
