package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/lumicea/lumicea/app/cart"
	"github.com/lumicea/lumicea/app/pricing"
	"github.com/lumicea/lumicea/app/repositories"
	"github.com/lumicea/lumicea/app/services"
	"github.com/lumicea/lumicea/pkg/bind"
	"github.com/lumicea/lumicea/pkg/metrics"
	"github.com/lumicea/lumicea/pkg/response"
)

// CartIDHeader carries the opaque cart ID between storefront and server.
// The server issues one on the first cart mutation and echoes it back on
// every cart response.
const CartIDHeader = "X-Cart-ID"

// CartController exposes the server-side cart. Line prices are composed
// server-side from the posted selections; the storefront never submits a
// price.
type CartController struct {
	carts    *cart.Store
	products *repositories.ProductRepository
	variants *services.VariantService
}

func NewCartController(carts *cart.Store, products *repositories.ProductRepository, variants *services.VariantService) *CartController {
	return &CartController{carts: carts, products: products, variants: variants}
}

// Show returns the current cart. An unknown or absent cart ID yields an
// empty cart.
func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	cartID := c.cartID(r)
	crt, err := c.carts.Get(r.Context(), cartID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load cart")
		return
	}
	c.respond(w, cartID, crt)
}

// AddLine composes a variant from the posted selections, snapshots its
// price, and appends it to the cart.
func (c *CartController) AddLine(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID  uint              `json:"product_id" validate:"required"`
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

	product, err := c.products.FindByID(body.ProductID)
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

	line := cart.Line{
		ProductID:  product.ID,
		SKU:        c.variants.SKU(product, sel),
		Name:       product.Name,
		UnitPrice:  sel.UnitPrice,
		Quantity:   sel.Quantity,
		ImageURL:   product.ImageURL,
		Attributes: sel.Labels(),
	}

	cartID := c.cartID(r)
	crt, err := c.carts.AddLine(r.Context(), cartID, line)
	if err != nil {
		cartError(w, err)
		return
	}

	metrics.CartOperations.WithLabelValues("add").Inc()
	c.respond(w, cartID, crt)
}

// UpdateLine sets a line's quantity. Zero removes the line.
func (c *CartController) UpdateLine(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity int `json:"quantity" validate:"integer,gte=0"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	cartID := c.cartID(r)
	crt, err := c.carts.UpdateQuantity(r.Context(), cartID, chi.URLParam(r, "line"), body.Quantity)
	if err != nil {
		cartError(w, err)
		return
	}

	metrics.CartOperations.WithLabelValues("update").Inc()
	c.respond(w, cartID, crt)
}

// RemoveLine deletes a line outright.
func (c *CartController) RemoveLine(w http.ResponseWriter, r *http.Request) {
	cartID := c.cartID(r)
	crt, err := c.carts.RemoveLine(r.Context(), cartID, chi.URLParam(r, "line"))
	if err != nil {
		cartError(w, err)
		return
	}

	metrics.CartOperations.WithLabelValues("remove").Inc()
	c.respond(w, cartID, crt)
}

// Clear destroys the cart document.
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	cartID := c.cartID(r)
	if err := c.carts.Clear(r.Context(), cartID); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not clear cart")
		return
	}

	metrics.CartOperations.WithLabelValues("clear").Inc()
	c.respond(w, cartID, &cart.Cart{ID: cartID})
}

func cartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrLineNotFound):
		response.NotFound(w)
	case errors.Is(err, cart.ErrInsufficientStock):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, pricing.ErrUnknownGroup),
		errors.Is(err, pricing.ErrUnknownOption),
		errors.Is(err, pricing.ErrRequiredGroup),
		errors.Is(err, pricing.ErrSoldOut):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "Cart operation failed")
	}
}

// cartID reads the cart ID header, minting a new one when absent.
func (c *CartController) cartID(r *http.Request) string {
	if id := r.Header.Get(CartIDHeader); id != "" {
		return id
	}
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func (c *CartController) respond(w http.ResponseWriter, cartID string, crt *cart.Cart) {
	w.Header().Set(CartIDHeader, cartID)
	response.Success(w, map[string]interface{}{
		"cart":       crt,
		"item_count": crt.ItemCount(),
		"subtotal":   crt.Subtotal(),
	})
}
