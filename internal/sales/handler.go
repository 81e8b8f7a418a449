package sales

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/atelier-erp/atelier-erp/internal/auth"
	"github.com/atelier-erp/atelier-erp/internal/shared"
)

// Handler wires HTTP endpoints for sales.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the sales handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers sales routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleRecent)
	r.Get("/report", h.handleMonthlyReport)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleAdmin, auth.RoleManager, auth.RoleCashier))
		r.Post("/", h.handleProcess)
	})
}

type processRequest struct {
	ItemID   int64  `json:"item_id" validate:"required,min=1"`
	StoreID  int64  `json:"store_id" validate:"required,min=1"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Payment  string `json:"payment" validate:"required"`
}

func (h *Handler) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	list, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("list sales", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	storeID, err := strconv.ParseInt(q.Get("store_id"), 10, 64)
	if err != nil || storeID < 1 {
		shared.RespondJSON(w, http.StatusBadRequest, shared.ErrorBody{Error: "invalid store_id"})
		return
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil || month < 1 || month > 12 {
		shared.RespondJSON(w, http.StatusBadRequest, shared.ErrorBody{Error: "invalid month"})
		return
	}
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil || year < 2000 || year > 2100 {
		shared.RespondJSON(w, http.StatusBadRequest, shared.ErrorBody{Error: "invalid year"})
		return
	}
	rows, err := h.service.MonthlyReport(r.Context(), storeID, time.Month(month), year)
	if err != nil {
		h.logger.Error("monthly sales report", slog.Int64("store_id", storeID), slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, rows)
}

func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondJSON(w, http.StatusBadRequest, shared.ErrorBody{Error: "malformed request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondJSON(w, http.StatusBadRequest, shared.ErrorBody{Error: "invalid sale payload"})
		return
	}
	actor := shared.ActorFromContext(r.Context())
	err := h.service.Process(r.Context(), *actor, req.ItemID, req.StoreID, req.Quantity, req.Payment)
	if err != nil {
		if errors.Is(err, ErrInvalidQuantity) {
			shared.RespondJSON(w, http.StatusBadRequest, shared.ErrorBody{Error: err.Error()})
			return
		}
		h.logger.Error("process sale", slog.Int64("item_id", req.ItemID), slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
}
