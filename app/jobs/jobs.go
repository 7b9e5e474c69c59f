// Package jobs defines the background jobs dispatched by the shop.
package jobs

import (
	"fmt"

	"github.com/lumicea/lumicea/config"
	"github.com/lumicea/lumicea/pkg/mail"
	"github.com/lumicea/lumicea/pkg/queue"
)

// Register makes every job type known to the queue. Call once at boot,
// before workers start.
func Register() {
	queue.Register("*jobs.OrderConfirmationJob", func() queue.Job { return &OrderConfirmationJob{} })
	queue.Register("*jobs.LowStockAlertJob", func() queue.Job { return &LowStockAlertJob{} })
}

// OrderConfirmationJob emails the customer after checkout.
type OrderConfirmationJob struct {
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Reference string  `json:"reference"`
	Total     float64 `json:"total"`
	Currency  string  `json:"currency"`
}

func (j *OrderConfirmationJob) Handle() error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Thank you for your order <strong>%s</strong>. "+
			"We have received your payment of %s%.2f and will be in touch when it ships.</p>",
		j.Name, j.Reference, symbol(j.Currency), j.Total,
	)
	return mail.To(j.Email).
		Subject("Your Lumicea order " + j.Reference).
		Body(body).
		Send()
}

// LowStockAlertJob emails the shop owner when a variant crosses its low
// stock threshold.
type LowStockAlertJob struct {
	SKU         string `json:"sku"`
	VariantName string `json:"variant_name"`
	Stock       int    `json:"stock"`
	Threshold   int    `json:"threshold"`
}

func (j *LowStockAlertJob) Handle() error {
	body := fmt.Sprintf(
		"<p><strong>%s</strong> (%s) is down to %d units (threshold %d).</p>",
		j.VariantName, j.SKU, j.Stock, j.Threshold,
	)
	return mail.To(config.OwnerEmail()).
		Subject("Low stock: " + j.SKU).
		Body(body).
		Send()
}

func symbol(currency string) string {
	switch currency {
	case "GBP":
		return "£"
	case "USD":
		return "$"
	case "EUR":
		return "€"
	}
	return currency + " "
}
