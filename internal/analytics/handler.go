package analytics

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/atelier-erp/atelier-erp/internal/shared"
)

// Handler wires the read-only dashboard and report endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the analytics handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers dashboard and report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/summary", h.handleSummary)
	r.Get("/trend", h.handleTrend)
	r.Get("/reports/above-average", h.handleAboveAverage)
	r.Get("/reports/catalog", h.handleCatalog)
	r.Get("/reports/top-sellers", h.handleTopSellers)
	r.Get("/reports/by-store", h.handleByStore)
	r.Post("/invalidate", h.handleInvalidate)
}

func (h *Handler) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Invalidate(r.Context()); err != nil {
		h.logger.Error("invalidate dashboard cache", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.Error("dashboard summary", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleTrend(w http.ResponseWriter, r *http.Request) {
	points, err := h.service.RevenueTrend(r.Context())
	if err != nil {
		h.logger.Error("revenue trend", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, points)
}

func (h *Handler) handleAboveAverage(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ItemsAboveCollectionAverage(r.Context())
	if err != nil {
		h.logger.Error("above average report", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ProductCatalog(r.Context())
	if err != nil {
		h.logger.Error("catalog report", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, products)
}

func (h *Handler) handleTopSellers(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	sellers, err := h.service.TopSellers(r.Context(), limit)
	if err != nil {
		h.logger.Error("top sellers report", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, sellers)
}

func (h *Handler) handleByStore(w http.ResponseWriter, r *http.Request) {
	stores, err := h.service.SalesByStore(r.Context())
	if err != nil {
		h.logger.Error("store performance report", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, stores)
}
