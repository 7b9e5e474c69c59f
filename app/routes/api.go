// Package routes declares the HTTP surface: public storefront endpoints,
// authenticated customer endpoints, and the admin back-office under
// /api/admin.
package routes

import (
	"net/http"
	"time"

	"github.com/lumicea/lumicea/app/controllers"
	"github.com/lumicea/lumicea/pkg/metrics"
	"github.com/lumicea/lumicea/pkg/middleware"
	"github.com/lumicea/lumicea/pkg/rbac"
	"github.com/lumicea/lumicea/pkg/router"
	"github.com/lumicea/lumicea/pkg/ws"
)

// Deps carries everything the route table needs.
type Deps struct {
	Auth      *controllers.AuthController
	Catalog   *controllers.CatalogController
	Cart      *controllers.CartController
	Inventory *controllers.InventoryController
	Orders    *controllers.OrderController
	Customers *controllers.CustomerController
	Blog      *controllers.BlogController
	Settings  *controllers.SettingsController
	Media     *controllers.MediaController
	GraphQL   http.Handler
	Hub       *ws.Hub
}

// RegisterAPI mounts the full route table on r.
func RegisterAPI(r *router.Router, d Deps) {
	api := r.Group("/api")

	// Public storefront.
	api.Get("/products", "products.index", d.Catalog.List)
	api.Get("/products/categories", "products.categories", d.Catalog.Categories)
	api.Get("/products/{slug}", "products.show", d.Catalog.Show)
	api.Post("/products/{slug}/quote", "products.quote", d.Catalog.Quote)

	api.Get("/cart", "cart.show", d.Cart.Show)
	api.Post("/cart/lines", "cart.add", d.Cart.AddLine)
	api.Put("/cart/lines/{line}", "cart.update", d.Cart.UpdateLine)
	api.Delete("/cart/lines/{line}", "cart.remove", d.Cart.RemoveLine)
	api.Delete("/cart", "cart.clear", d.Cart.Clear)

	api.Get("/blog", "blog.index", d.Blog.List)
	api.Get("/blog/{slug}", "blog.show", d.Blog.Show)
	api.Get("/settings", "settings.index", d.Settings.Index)

	// Auth, rate limited against credential stuffing.
	authLimit := middleware.RateLimit(20, time.Minute)
	api.Post("/auth/register", "auth.register", d.Auth.Register, authLimit)
	api.Post("/auth/login", "auth.login", d.Auth.Login, authLimit)
	api.Post("/auth/refresh", "auth.refresh", d.Auth.Refresh, authLimit)

	// Authenticated customers.
	account := api.Group("", middleware.Auth)
	account.Get("/auth/profile", "auth.profile", d.Auth.Profile)
	account.Post("/checkout", "checkout", d.Orders.Checkout)
	account.Get("/orders", "orders.mine", d.Orders.Mine)
	account.Get("/orders/{reference}", "orders.show", d.Orders.Show)

	// Back-office.
	admin := api.Group("/admin", middleware.Auth, rbac.RequireAdmin)
	admin.Get("/products", "admin.products.index", d.Catalog.AdminList)
	admin.Post("/products", "admin.products.create", d.Catalog.Create)
	admin.Put("/products/{id}", "admin.products.update", d.Catalog.Update)
	admin.Delete("/products/{id}", "admin.products.delete", d.Catalog.Delete)

	admin.Get("/inventory", "admin.inventory.index", d.Inventory.List)
	admin.Post("/inventory", "admin.inventory.create", d.Inventory.Create)
	admin.Post("/inventory/refresh", "admin.inventory.refresh", d.Inventory.Refresh)
	admin.Put("/inventory/{id}", "admin.inventory.update", d.Inventory.Update)
	admin.Post("/inventory/{id}/adjust", "admin.inventory.adjust", d.Inventory.Adjust)
	admin.Get("/inventory/{id}/movements", "admin.inventory.movements", d.Inventory.Movements)

	admin.Get("/orders", "admin.orders.index", d.Orders.AdminList)
	admin.Get("/orders/{reference}", "admin.orders.show", d.Orders.AdminShow)
	admin.Patch("/orders/{reference}/status", "admin.orders.status", d.Orders.UpdateStatus)

	admin.Get("/customers", "admin.customers.index", d.Customers.List)
	admin.Get("/customers/{id}", "admin.customers.show", d.Customers.Show)

	admin.Get("/blog", "admin.blog.index", d.Blog.AdminList)
	admin.Post("/blog", "admin.blog.create", d.Blog.Create)
	admin.Put("/blog/{id}", "admin.blog.update", d.Blog.Update)
	admin.Delete("/blog/{id}", "admin.blog.delete", d.Blog.Delete)

	admin.Put("/settings", "admin.settings.update", d.Settings.Update)
	admin.Post("/media", "admin.media.upload", d.Media.Upload)
	admin.Delete("/media", "admin.media.delete", d.Media.Delete)

	// GraphQL catalogue queries.
	if d.GraphQL != nil {
		r.Mount("/api/graphql", d.GraphQL)
	}

	// Admin live updates (stock adjustments, new orders).
	if d.Hub != nil {
		r.Get("/ws/admin", "ws.admin", func(w http.ResponseWriter, req *http.Request) {
			ws.Upgrade(w, req, d.Hub)
		}, middleware.Auth, rbac.RequireAdmin)
	}

	r.Mount("/metrics", metrics.Handler())
}
