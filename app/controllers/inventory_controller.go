package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/lumicea/lumicea/app/inventory"
	"github.com/lumicea/lumicea/app/models"
	"github.com/lumicea/lumicea/app/repositories"
	"github.com/lumicea/lumicea/pkg/bind"
	"github.com/lumicea/lumicea/pkg/middleware"
	"github.com/lumicea/lumicea/pkg/response"
)

// InventoryController is the admin inventory screen: the cached stock list,
// manual adjustments, and the per-row movement audit trail.
type InventoryController struct {
	reconciler *inventory.Reconciler
	repo       *repositories.InventoryRepository
}

func NewInventoryController(reconciler *inventory.Reconciler, repo *repositories.InventoryRepository) *InventoryController {
	return &InventoryController{reconciler: reconciler, repo: repo}
}

type stockRow struct {
	inventory.Record
	Status inventory.Status `json:"status"`
}

// List returns the cached stock projection with derived statuses.
func (c *InventoryController) List(w http.ResponseWriter, r *http.Request) {
	records := c.reconciler.Records()
	rows := make([]stockRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, stockRow{Record: rec, Status: rec.Status()})
	}
	response.Success(w, rows)
}

// Refresh reloads the cached projection from the database.
func (c *InventoryController) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := c.reconciler.Refresh(r.Context()); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not refresh inventory")
		return
	}
	c.List(w, r)
}

// Adjust applies a signed stock delta to one row.
func (c *InventoryController) Adjust(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	var body struct {
		Delta  int    `json:"delta"  validate:"integer"`
		Reason string `json:"reason" validate:"required,in=restock,adjustment,return"`
		Note   string `json:"note"   validate:"nullable,max=255"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	actorID := middleware.UserIDFromCtx(r.Context())
	rec, err := c.reconciler.AdjustStock(r.Context(), uint(id), body.Delta, inventory.Reason(body.Reason), body.Note, actorID)
	switch {
	case errors.Is(err, inventory.ErrZeroDelta), errors.Is(err, inventory.ErrInvalidReason):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, inventory.ErrRecordNotFound):
		response.NotFound(w)
		return
	case err != nil:
		response.Error(w, http.StatusInternalServerError, "Could not adjust stock")
		return
	}

	response.Success(w, stockRow{Record: rec, Status: rec.Status()})
}

// Movements returns the audit trail for one row, newest first.
func (c *InventoryController) Movements(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	page, limit := pageParams(r)
	movements, pagination, err := c.repo.Movements(uint(id), page, limit)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load movements")
		return
	}
	response.Paginated(w, movements, pagination)
}

type inventoryPayload struct {
	ProductID         uint    `json:"product_id"          validate:"required"`
	SKU               string  `json:"sku"                 validate:"required,max=100"`
	VariantName       string  `json:"variant_name"        validate:"required,max=255"`
	StockQuantity     int     `json:"stock_quantity"      validate:"integer,gte=0"`
	LowStockThreshold int     `json:"low_stock_threshold" validate:"integer,gte=0"`
	CostPrice         float64 `json:"cost_price"          validate:"numeric,gte=0"`
	RetailPrice       float64 `json:"retail_price"        validate:"numeric,gte=0"`
}

// Create registers a new tracked variant with its opening stock.
func (c *InventoryController) Create(w http.ResponseWriter, r *http.Request) {
	var body inventoryPayload
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	row := models.InventoryRecord{
		ProductID:         body.ProductID,
		SKU:               body.SKU,
		VariantName:       body.VariantName,
		StockQuantity:     body.StockQuantity,
		LowStockThreshold: body.LowStockThreshold,
		CostPrice:         body.CostPrice,
		RetailPrice:       body.RetailPrice,
	}
	if err := c.repo.Create(&row); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not create inventory record")
		return
	}

	if err := c.reconciler.Refresh(r.Context()); err != nil {
		response.Error(w, http.StatusInternalServerError, "Record saved but cache refresh failed")
		return
	}
	response.Created(w, row)
}

// Update changes thresholds, prices, and the variant label. Stock changes
// go through Adjust.
func (c *InventoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	row, err := c.repo.FindByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load record")
		return
	}

	var body struct {
		VariantName       string  `json:"variant_name"        validate:"required,max=255"`
		LowStockThreshold int     `json:"low_stock_threshold" validate:"integer,gte=0"`
		CostPrice         float64 `json:"cost_price"          validate:"numeric,gte=0"`
		RetailPrice       float64 `json:"retail_price"        validate:"numeric,gte=0"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	row.VariantName = body.VariantName
	row.LowStockThreshold = body.LowStockThreshold
	row.CostPrice = body.CostPrice
	row.RetailPrice = body.RetailPrice

	if err := c.repo.Update(&row); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not update record")
		return
	}

	if err := c.reconciler.Refresh(r.Context()); err != nil {
		response.Error(w, http.StatusInternalServerError, "Record saved but cache refresh failed")
		return
	}
	response.Success(w, row)
}
