package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crestviewems/supplyline-backend/api/controllers"
	"github.com/crestviewems/supplyline-backend/api/middleware"
	"github.com/crestviewems/supplyline-backend/internal/catalog"
	"github.com/crestviewems/supplyline-backend/internal/inventory"
	"github.com/crestviewems/supplyline-backend/internal/requests"
	"github.com/crestviewems/supplyline-backend/internal/users"
	"github.com/crestviewems/supplyline-backend/pkg/config"
	"github.com/crestviewems/supplyline-backend/pkg/db"
	"github.com/crestviewems/supplyline-backend/pkg/enums"
	"github.com/crestviewems/supplyline-backend/pkg/logger"
	"github.com/crestviewems/supplyline-backend/pkg/metrics"
	"github.com/crestviewems/supplyline-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	HTTPMetrics *metrics.HTTPMetrics

	DBPinger    db.Pinger
	RedisPinger redis.Pinger
	Sessions    middleware.SessionToucher

	Live       controllers.LiveView
	Users      *users.Service
	Catalog    *catalog.Service
	Requests   *requests.Service
	Inventory  *inventory.Service
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, d.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DBPinger, d.RedisPinger, d.Live))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/api/v1/auth/login", controllers.AuthLogin(d.Users, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, cfg.Auth, d.Sessions, logg))

		r.Post("/auth/logout", controllers.AuthLogout(d.Users, logg))

		// Catalog, vendor and reference mutations are admin-only; staff
		// can read everything and work the request board.
		admin := middleware.RequireRole(string(enums.UserRoleAdmin), logg)

		r.Route("/catalog/items", func(r chi.Router) {
			r.Get("/", controllers.CatalogItemsList(d.Catalog, logg))
			r.With(admin).Post("/", controllers.CatalogItemCreate(d.Catalog, d.Live, logg))
			r.With(admin).Patch("/{itemId}", controllers.CatalogItemUpdate(d.Catalog, d.Live, logg))
			r.With(admin).Put("/{itemId}/active", controllers.CatalogItemSetActive(d.Catalog, d.Live, logg))
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", controllers.VendorsList(d.Catalog, logg))
			r.With(admin).Post("/", controllers.VendorCreate(d.Catalog, d.Live, logg))
			r.With(admin).Patch("/{vendorId}", controllers.VendorUpdate(d.Catalog, d.Live, logg))
			r.With(admin).Delete("/{vendorId}", controllers.VendorDelete(d.Catalog, d.Live, logg))
		})

		r.Route("/vendor-prices", func(r chi.Router) {
			r.Get("/", controllers.VendorPricesList(d.Catalog, logg))
			r.With(admin).Post("/", controllers.VendorPriceCreate(d.Catalog, d.Live, logg))
			r.With(admin).Patch("/{priceId}", controllers.VendorPriceUpdate(d.Catalog, d.Live, logg))
			r.With(admin).Delete("/{priceId}", controllers.VendorPriceDelete(d.Catalog, d.Live, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoriesList(d.Catalog, logg))
			r.With(admin).Post("/", controllers.CategoryCreate(d.Catalog, d.Live, logg))
			r.With(admin).Delete("/{categoryId}", controllers.CategoryDelete(d.Catalog, d.Live, logg))
		})
		r.Route("/units", func(r chi.Router) {
			r.Get("/", controllers.UnitsList(d.Catalog, logg))
			r.With(admin).Post("/", controllers.UnitCreate(d.Catalog, d.Live, logg))
			r.With(admin).Delete("/{unitId}", controllers.UnitDelete(d.Catalog, d.Live, logg))
		})
		r.Route("/compartments", func(r chi.Router) {
			r.Get("/", controllers.CompartmentsList(d.Catalog, logg))
			r.With(admin).Post("/", controllers.CompartmentCreate(d.Catalog, d.Live, logg))
			r.With(admin).Delete("/{compartmentId}", controllers.CompartmentDelete(d.Catalog, d.Live, logg))
		})

		r.Route("/requests", func(r chi.Router) {
			r.Get("/", controllers.RequestsView(d.Live, logg))
			r.Post("/", controllers.RequestCreate(d.Requests, d.Live, logg))
			r.Patch("/{requestId}", controllers.RequestUpdate(d.Requests, d.Live, logg))
			r.Delete("/{requestId}", controllers.RequestDelete(d.Requests, d.Live, logg))
			r.Put("/{requestId}/status", controllers.RequestUpdateStatus(d.Requests, d.Live, logg))
			r.Put("/{requestId}/override", controllers.RequestSetOverride(d.Requests, d.Live, logg))
		})

		r.Post("/orders/batch", controllers.OrderBatchBuild(d.Requests, d.Live, logg))

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(d.Inventory, logg))
			r.Get("/expiring", controllers.InventoryExpiring(d.Inventory, logg))
			r.Post("/", controllers.InventoryCreate(d.Inventory, logg))
			r.Patch("/{inventoryId}", controllers.InventoryUpdate(d.Inventory, logg))
			r.Delete("/{inventoryId}", controllers.InventoryDelete(d.Inventory, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(admin)
			r.Get("/", controllers.UsersList(d.Users, logg))
			r.Put("/{userId}/role", controllers.UserUpdateRole(d.Users, logg))
			r.Put("/{userId}/active", controllers.UserSetActive(d.Users, logg))
		})
	})

	return r
}
