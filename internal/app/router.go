package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/atelier-erp/atelier-erp/internal/analytics"
	audithttp "github.com/atelier-erp/atelier-erp/internal/audit/http"
	"github.com/atelier-erp/atelier-erp/internal/auth"
	"github.com/atelier-erp/atelier-erp/internal/catalog"
	"github.com/atelier-erp/atelier-erp/internal/inventory"
	"github.com/atelier-erp/atelier-erp/internal/procurement"
	"github.com/atelier-erp/atelier-erp/internal/routines"
	"github.com/atelier-erp/atelier-erp/internal/sales"
	"github.com/atelier-erp/atelier-erp/internal/shared"
	"github.com/atelier-erp/atelier-erp/internal/supply"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	SessionManager     *shared.SessionManager
	AuthHandler        *auth.Handler
	AuditHandler       *audithttp.Handler
	RoutinesHandler    *routines.Handler
	CatalogHandler     *catalog.Handler
	SupplyHandler      *supply.Handler
	InventoryHandler   *inventory.Handler
	ProcurementHandler *procurement.Handler
	SalesHandler       *sales.Handler
	AnalyticsHandler   *analytics.Handler
}

// NewRouter constructs the chi.Router with Atelier defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuthenticated())

		r.Route("/items", params.CatalogHandler.MountItemRoutes)
		r.Route("/collections", params.CatalogHandler.MountCollectionRoutes)
		r.Route("/designers", params.CatalogHandler.MountDesignerRoutes)
		r.Route("/stores", params.CatalogHandler.MountStoreRoutes)
		r.Route("/suppliers", params.SupplyHandler.MountSupplierRoutes)
		r.Route("/fabrics", params.SupplyHandler.MountFabricRoutes)
		r.Route("/inventory", params.InventoryHandler.MountRoutes)
		r.Route("/purchase-orders", params.ProcurementHandler.MountRoutes)
		r.Route("/sales", params.SalesHandler.MountRoutes)
		r.Route("/dashboard", params.AnalyticsHandler.MountRoutes)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(auth.RoleAdmin, auth.RoleManager, auth.RoleAnalyst))
			r.Route("/audit", params.AuditHandler.MountRoutes)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(auth.RoleAdmin))
			r.Route("/users", params.AuthHandler.MountUserRoutes)
			r.Route("/routines", params.RoutinesHandler.MountRoutes)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondJSON(w, http.StatusNotFound, shared.ErrorBody{Error: "not found"})
	})

	return r
}
