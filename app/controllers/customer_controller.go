package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/lumicea/lumicea/app/models"
	"github.com/lumicea/lumicea/app/repositories"
	"github.com/lumicea/lumicea/pkg/response"
)

// CustomerController is the admin customer list.
type CustomerController struct {
	users  *repositories.UserRepository
	orders *repositories.OrderRepository
}

func NewCustomerController(users *repositories.UserRepository, orders *repositories.OrderRepository) *CustomerController {
	return &CustomerController{users: users, orders: orders}
}

// List returns registered customers.
func (c *CustomerController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	customers, pagination, err := c.users.Customers(page, limit)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load customers")
		return
	}
	response.Paginated(w, customers, pagination)
}

// Show returns one customer with their order history.
func (c *CustomerController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	user, err := c.users.FindByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && user.Role != models.RoleCustomer) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load customer")
		return
	}

	orders, _, err := c.orders.ForUser(user.ID, 1, 20)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load customer orders")
		return
	}

	response.Success(w, map[string]interface{}{
		"customer": user,
		"orders":   orders,
	})
}
