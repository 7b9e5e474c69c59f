package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/lumicea/lumicea/app/cart"
	"github.com/lumicea/lumicea/app/jobs"
	"github.com/lumicea/lumicea/app/models"
	"github.com/lumicea/lumicea/app/repositories"
	"github.com/lumicea/lumicea/config"
	"github.com/lumicea/lumicea/pkg/event"
	"github.com/lumicea/lumicea/pkg/logger"
	"github.com/lumicea/lumicea/pkg/metrics"
	"github.com/lumicea/lumicea/pkg/queue"
)

// ErrEmptyCart is returned when checking out a cart with no lines.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// EventOrderPlaced is fired after an order is committed.
const EventOrderPlaced = "order.placed"

// CheckoutService turns a cart into an order.
type CheckoutService struct {
	carts  *cart.Store
	orders *repositories.OrderRepository
	users  *repositories.UserRepository
}

func NewCheckoutService(carts *cart.Store, orders *repositories.OrderRepository, users *repositories.UserRepository) *CheckoutService {
	return &CheckoutService{carts: carts, orders: orders, users: users}
}

// PlaceOrder commits the cart as an order for userID. On success the cart
// is cleared, a confirmation email is queued and the order.placed event is
// fired.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID uint, cartID string) (models.Order, error) {
	c, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return models.Order{}, err
	}
	if len(c.Lines) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	order, err := s.orders.CreateFromCart(userID, newOrderReference(), config.Currency(), c)
	if err != nil {
		return models.Order{}, err
	}

	if err := s.carts.Clear(ctx, cartID); err != nil {
		// The order is committed; a stale cart is an annoyance, not a failure.
		logger.Warn("checkout: clear cart after order", "cart_id", cartID, "error", err)
	}

	metrics.OrdersPlaced.Inc()
	event.FireAsync(EventOrderPlaced, order)

	if user, err := s.users.FindByID(userID); err == nil {
		if err := queue.Dispatch(&jobs.OrderConfirmationJob{
			Email:     user.Email,
			Name:      user.Name,
			Reference: order.Reference,
			Total:     order.Total,
			Currency:  order.Currency,
		}); err != nil {
			logger.Error("checkout: queue confirmation", "reference", order.Reference, "error", err)
		}
	}

	return order, nil
}

// newOrderReference generates an order reference like "LUM-4F2A9C01".
func newOrderReference() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return "LUM-" + strings.ToUpper(hex.EncodeToString(b))
}
