// Package server boots the full application: configuration, storage
// backends, the domain wiring, background workers, and the HTTP server
// with graceful shutdown.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lumicea/lumicea/app/cart"
	"github.com/lumicea/lumicea/app/controllers"
	"github.com/lumicea/lumicea/app/graphql"
	"github.com/lumicea/lumicea/app/inventory"
	"github.com/lumicea/lumicea/app/jobs"
	"github.com/lumicea/lumicea/app/models"
	"github.com/lumicea/lumicea/app/repositories"
	"github.com/lumicea/lumicea/app/routes"
	"github.com/lumicea/lumicea/app/services"
	"github.com/lumicea/lumicea/config"
	"github.com/lumicea/lumicea/pkg/cache"
	"github.com/lumicea/lumicea/pkg/database"
	"github.com/lumicea/lumicea/pkg/event"
	"github.com/lumicea/lumicea/pkg/logger"
	"github.com/lumicea/lumicea/pkg/metrics"
	"github.com/lumicea/lumicea/pkg/middleware"
	"github.com/lumicea/lumicea/pkg/queue"
	"github.com/lumicea/lumicea/pkg/reqid"
	"github.com/lumicea/lumicea/pkg/router"
	"github.com/lumicea/lumicea/pkg/schedule"
	"github.com/lumicea/lumicea/pkg/storage"
	"github.com/lumicea/lumicea/pkg/ws"
)

// Run boots everything and blocks until SIGINT/SIGTERM.
func Run() error {
	if err := config.Load(); err != nil {
		return err
	}

	if uri := config.MongoLogURI(); uri != "" {
		inner := slog.NewJSONHandler(os.Stdout, nil)
		h, err := logger.NewMongoHandler(inner, uri, config.MongoLogDatabase(), config.MongoLogCollection())
		if err != nil {
			logger.Warn("mongo audit log unavailable", "error", err)
		} else {
			logger.SetHandler(h)
			defer h.Close()
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, falling back to degraded mode", "error", err)
	}
	storage.Connect()

	// Domain wiring.
	inventoryRepo := repositories.NewInventoryRepository()
	productRepo := repositories.NewProductRepository()
	orderRepo := repositories.NewOrderRepository(inventoryRepo)
	userRepo := repositories.NewUserRepository()
	blogRepo := repositories.NewBlogRepository()
	settingsRepo := repositories.NewSettingsRepository()

	variantService := services.NewVariantService()
	authService := services.NewAuthService(userRepo)

	cartStore := cart.NewStore(cart.NewRedisBackend(), inventoryRepo)
	checkoutService := services.NewCheckoutService(cartStore, orderRepo, userRepo)

	reconciler := inventory.NewReconciler(inventoryRepo)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := reconciler.Refresh(ctx); err != nil {
		logger.Warn("inventory cache refresh failed", "error", err)
	}

	// Live admin feed plus background jobs.
	hub := ws.NewHub()
	go hub.Run()
	registerListeners(hub)

	jobs.Register()
	queue.UseDB(database.DB)
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.StartWorkers(ctx, 4)

	registerSchedules(reconciler)
	schedule.Start(ctx)

	// HTTP surface.
	schema, err := graphql.NewSchema(productRepo, variantService)
	if err != nil {
		return err
	}

	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	routes.RegisterAPI(r, routes.Deps{
		Auth:      controllers.NewAuthController(authService, userRepo),
		Catalog:   controllers.NewCatalogController(productRepo, variantService),
		Cart:      controllers.NewCartController(cartStore, productRepo, variantService),
		Inventory: controllers.NewInventoryController(reconciler, inventoryRepo),
		Orders:    controllers.NewOrderController(checkoutService, orderRepo),
		Customers: controllers.NewCustomerController(userRepo, orderRepo),
		Blog:      controllers.NewBlogController(blogRepo),
		Settings:  controllers.NewSettingsController(settingsRepo),
		Media:     controllers.NewMediaController(),
		GraphQL:   graphql.NewHandler(schema),
		Hub:       hub,
	})

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// registerListeners connects domain events to the admin websocket feed and
// the low stock alert job.
func registerListeners(hub *ws.Hub) {
	event.Listen(inventory.EventStockAdjusted, func(payload interface{}) {
		adj, ok := payload.(inventory.Adjusted)
		if !ok {
			return
		}

		broadcast(hub, "stock.adjusted", adj)

		rec := adj.Record
		if rec.Status() != inventory.StatusInStock {
			err := queue.Dispatch(&jobs.LowStockAlertJob{
				SKU:         rec.SKU,
				VariantName: rec.VariantName,
				Stock:       rec.Stock,
				Threshold:   rec.Threshold,
			})
			if err != nil {
				logger.Warn("low stock alert dispatch failed", "sku", rec.SKU, "error", err)
			}
		}
	})

	event.Listen(services.EventOrderPlaced, func(payload interface{}) {
		order, ok := payload.(models.Order)
		if !ok {
			return
		}
		broadcast(hub, "order.placed", map[string]interface{}{
			"reference": order.Reference,
			"total":     order.Total,
			"currency":  order.Currency,
		})
	})
}

func broadcast(hub *ws.Hub, kind string, payload interface{}) {
	msg, err := json.Marshal(map[string]interface{}{"type": kind, "payload": payload})
	if err != nil {
		return
	}
	hub.Broadcast <- msg
}

// BootSchedules wires the recurring background work for a standalone
// scheduler process: it opens the shared backends, builds the inventory
// cache, and registers the schedule entries.
func BootSchedules(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		return err
	}

	jobs.Register()
	queue.UseDB(database.DB)
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}

	reconciler := inventory.NewReconciler(repositories.NewInventoryRepository())
	if err := reconciler.Refresh(ctx); err != nil {
		return err
	}
	registerSchedules(reconciler)
	return nil
}

// registerSchedules sets up the recurring background work.
func registerSchedules(reconciler *inventory.Reconciler) {
	schedule.Every(5).Minutes().Name("inventory:refresh").WithoutOverlapping().Run(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := reconciler.Refresh(ctx); err != nil {
			logger.Warn("scheduled inventory refresh failed", "error", err)
		}
	})

	schedule.Daily().Name("inventory:low-stock-sweep").WithoutOverlapping().Run(func() {
		for _, rec := range reconciler.Records() {
			if rec.Status() == inventory.StatusInStock {
				continue
			}
			err := queue.Dispatch(&jobs.LowStockAlertJob{
				SKU:         rec.SKU,
				VariantName: rec.VariantName,
				Stock:       rec.Stock,
				Threshold:   rec.Threshold,
			})
			if err != nil {
				logger.Warn("low stock sweep dispatch failed", "sku", rec.SKU, "error", err)
			}
		}
	})
}
