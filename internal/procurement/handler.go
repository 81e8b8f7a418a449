package procurement

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/atelier-erp/atelier-erp/internal/auth"
	"github.com/atelier-erp/atelier-erp/internal/shared"
)

// Handler wires HTTP endpoints for purchase orders.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the procurement handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers purchase order routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleAdmin, auth.RoleProcurement))
		r.Post("/from-alert/{id}", h.handleCreateFromAlert)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list purchase orders", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, orders)
}

func (h *Handler) handleCreateFromAlert(w http.ResponseWriter, r *http.Request) {
	alertID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || alertID < 1 {
		shared.RespondJSON(w, http.StatusBadRequest, shared.ErrorBody{Error: "invalid alert id"})
		return
	}
	actor := shared.ActorFromContext(r.Context())
	po, err := h.service.CreateFromAlert(r.Context(), *actor, alertID)
	if err != nil {
		if errors.Is(err, ErrNoSupplier) {
			shared.RespondJSON(w, http.StatusUnprocessableEntity, shared.ErrorBody{Error: "no supplier mapped to item"})
			return
		}
		h.logger.Error("create purchase order", slog.Int64("alert_id", alertID), slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, po)
}
