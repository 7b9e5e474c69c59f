package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/lumicea/lumicea/app/repositories"
	"github.com/lumicea/lumicea/app/services"
	"github.com/lumicea/lumicea/pkg/bind"
	"github.com/lumicea/lumicea/pkg/middleware"
	"github.com/lumicea/lumicea/pkg/response"
)

// OrderController handles checkout for customers and order management for
// the back-office.
type OrderController struct {
	checkout *services.CheckoutService
	orders   *repositories.OrderRepository
}

func NewOrderController(checkout *services.CheckoutService, orders *repositories.OrderRepository) *OrderController {
	return &OrderController{checkout: checkout, orders: orders}
}

// Checkout converts the caller's cart into an order.
func (c *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	cartID := r.Header.Get(CartIDHeader)
	if cartID == "" {
		response.Error(w, http.StatusBadRequest, "Missing cart ID")
		return
	}

	userID := middleware.UserIDFromCtx(r.Context())
	order, err := c.checkout.PlaceOrder(r.Context(), userID, cartID)
	if errors.Is(err, services.ErrEmptyCart) {
		response.Error(w, http.StatusUnprocessableEntity, "Cart is empty")
		return
	}
	if err != nil {
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	response.Created(w, order)
}

// Mine returns the authenticated customer's own orders.
func (c *OrderController) Mine(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	orders, pagination, err := c.orders.ForUser(middleware.UserIDFromCtx(r.Context()), page, limit)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load orders")
		return
	}
	response.Paginated(w, orders, pagination)
}

// Show returns one of the customer's own orders by reference.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	order, err := c.orders.FindByReference(chi.URLParam(r, "reference"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load order")
		return
	}
	if order.UserID != middleware.UserIDFromCtx(r.Context()) {
		response.NotFound(w)
		return
	}
	response.Success(w, order)
}

// AdminList returns every order for the back-office.
func (c *OrderController) AdminList(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	orders, pagination, err := c.orders.All(page, limit)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load orders")
		return
	}
	response.Paginated(w, orders, pagination)
}

// AdminShow returns any order by reference.
func (c *OrderController) AdminShow(w http.ResponseWriter, r *http.Request) {
	order, err := c.orders.FindByReference(chi.URLParam(r, "reference"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load order")
		return
	}
	response.Success(w, order)
}

// UpdateStatus moves an order through its lifecycle.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status" validate:"required,in=pending,paid,shipped,delivered,cancelled"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.FindByReference(chi.URLParam(r, "reference"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load order")
		return
	}

	if err := c.orders.UpdateStatus(&order, body.Status); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not update order")
		return
	}
	response.Success(w, order)
}
