package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/atelier-erp/atelier-erp/internal/auth"
	"github.com/atelier-erp/atelier-erp/internal/shared"
)

// RoutinesPort exposes the stored routines the catalog surfaces.
type RoutinesPort interface {
	GetItemFabricCost(ctx context.Context, itemID int64) (float64, error)
	GetProfitMargin(ctx context.Context, itemID int64) (float64, error)
	GetDesignerRevenue(ctx context.Context, designerID int64) (float64, error)
	GetDesignerPortfolio(ctx context.Context, designerID int64) ([]map[string]any, error)
}

// Handler wires HTTP endpoints for the catalog module.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	routines  RoutinesPort
	validator *validator.Validate
}

// NewHandler constructs the catalog handler.
func NewHandler(logger *slog.Logger, service *Service, routines RoutinesPort) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, routines: routines, validator: validator.New()}
}

// MountItemRoutes registers item routes. The legacy UI let any logged-in
// role browse; only admin creates/deletes and manager also updates.
func (h *Handler) MountItemRoutes(r chi.Router) {
	r.Get("/", h.handleListItems)
	r.Get("/{id}/fabric-cost", h.handleFabricCost)
	r.Get("/{id}/margin", h.handleMargin)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleAdmin))
		r.Post("/", h.handleCreateItem)
		r.Delete("/{id}", h.handleDeleteItem)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleAdmin, auth.RoleManager))
		r.Put("/{id}", h.handleUpdateItem)
	})
}

// MountCollectionRoutes registers collection routes.
func (h *Handler) MountCollectionRoutes(r chi.Router) {
	r.Get("/", h.handleListCollections)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleAdmin, auth.RoleManager))
		r.Post("/", h.handleCreateCollection)
	})
}

// MountDesignerRoutes registers designer routes.
func (h *Handler) MountDesignerRoutes(r chi.Router) {
	r.Get("/", h.handleListDesigners)
	r.Get("/{id}/portfolio", h.handlePortfolio)
	r.Get("/{id}/revenue", h.handleRevenue)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleAdmin))
		r.Post("/", h.handleCreateDesigner)
	})
}

// MountStoreRoutes registers store routes.
func (h *Handler) MountStoreRoutes(r chi.Router) {
	r.Get("/", h.handleListStores)
}

type itemRequest struct {
	Name         string  `json:"name" validate:"required"`
	Size         string  `json:"size"`
	Color        string  `json:"color"`
	Price        float64 `json:"price" validate:"gte=0"`
	CollectionID int64   `json:"collection_id"`
}

type itemUpdateRequest struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

type collectionRequest struct {
	Name       string `json:"name" validate:"required"`
	Season     string `json:"season"`
	Year       int    `json:"year" validate:"gte=2000,lte=2100"`
	DesignerID int64  `json:"designer_id" validate:"required"`
}

type designerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
	Style string `json:"style"`
}

func (h *Handler) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		h.logger.Error("list items", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if !h.decode(w, r, &req) {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	item, err := h.service.CreateItem(r.Context(), *actor, ItemInput{
		Name: req.Name, Size: req.Size, Color: req.Color,
		Price: req.Price, CollectionID: req.CollectionID,
	})
	if err != nil {
		h.logger.Error("create item", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, item)
}

func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req itemUpdateRequest
	if !h.decode(w, r, &req) {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	if err := h.service.UpdateItem(r.Context(), *actor, id, ItemUpdate{Name: req.Name, Price: req.Price}); err != nil {
		h.logger.Error("update item", slog.Int64("item_id", id), slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	if err := h.service.DeleteItem(r.Context(), *actor, id); err != nil {
		h.logger.Error("delete item", slog.Int64("item_id", id), slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) handleFabricCost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	cost, err := h.routines.GetItemFabricCost(r.Context(), id)
	if err != nil {
		h.logger.Error("fabric cost", slog.Int64("item_id", id), slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, map[string]any{"item_id": id, "fabric_cost": cost})
}

func (h *Handler) handleMargin(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	margin, err := h.routines.GetProfitMargin(r.Context(), id)
	if err != nil {
		h.logger.Error("profit margin", slog.Int64("item_id", id), slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, map[string]any{"item_id": id, "profit_margin": margin})
}

func (h *Handler) handleListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.service.ListCollections(r.Context())
	if err != nil {
		h.logger.Error("list collections", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, collections)
}

func (h *Handler) handleCreateCollection(w http.ResponseWriter, r *http.Request) {
	var req collectionRequest
	if !h.decode(w, r, &req) {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	col, err := h.service.CreateCollection(r.Context(), *actor, CollectionInput{
		Name: req.Name, Season: req.Season, Year: req.Year, DesignerID: req.DesignerID,
	})
	if err != nil {
		h.logger.Error("create collection", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, col)
}

func (h *Handler) handleListDesigners(w http.ResponseWriter, r *http.Request) {
	designers, err := h.service.ListDesigners(r.Context())
	if err != nil {
		h.logger.Error("list designers", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, designers)
}

func (h *Handler) handleCreateDesigner(w http.ResponseWriter, r *http.Request) {
	var req designerRequest
	if !h.decode(w, r, &req) {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	d, err := h.service.CreateDesigner(r.Context(), *actor, DesignerInput{
		Name: req.Name, Email: req.Email, Phone: req.Phone, Style: req.Style,
	})
	if err != nil {
		h.logger.Error("create designer", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, d)
}

func (h *Handler) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	rows, err := h.routines.GetDesignerPortfolio(r.Context(), id)
	if err != nil {
		h.logger.Error("designer portfolio", slog.Int64("designer_id", id), slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, map[string]any{"designer_id": id, "portfolio": rows})
}

func (h *Handler) handleRevenue(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	revenue, err := h.routines.GetDesignerRevenue(r.Context(), id)
	if err != nil {
		h.logger.Error("designer revenue", slog.Int64("designer_id", id), slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, map[string]any{"designer_id": id, "revenue": revenue})
}

func (h *Handler) handleListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.service.ListStores(r.Context())
	if err != nil {
		h.logger.Error("list stores", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, stores)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		shared.RespondJSON(w, http.StatusBadRequest, shared.ErrorBody{Error: "malformed request body"})
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		shared.RespondJSON(w, http.StatusBadRequest, shared.ErrorBody{Error: "request failed validation"})
		return false
	}
	return true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		shared.RespondJSON(w, http.StatusBadRequest, shared.ErrorBody{Error: "invalid id"})
		return 0, false
	}
	return id, true
}
