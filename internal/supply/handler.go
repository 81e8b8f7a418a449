package supply

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/atelier-erp/atelier-erp/internal/auth"
	"github.com/atelier-erp/atelier-erp/internal/shared"
)

// Handler wires HTTP endpoints for suppliers and fabrics.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs the supply handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountSupplierRoutes registers supplier routes.
func (h *Handler) MountSupplierRoutes(r chi.Router) {
	r.Get("/", h.handleListSuppliers)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleAdmin, auth.RoleProcurement))
		r.Post("/", h.handleCreateSupplier)
	})
}

// MountFabricRoutes registers fabric routes.
func (h *Handler) MountFabricRoutes(r chi.Router) {
	r.Get("/", h.handleListFabrics)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleAdmin, auth.RoleProcurement))
		r.Post("/", h.handleCreateFabric)
	})
}

type supplierRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type fabricRequest struct {
	Material     string  `json:"material" validate:"required"`
	SupplierID   int64   `json:"supplier_id" validate:"required"`
	CostPerMeter float64 `json:"cost_per_meter" validate:"gte=0"`
}

func (h *Handler) handleListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.service.ListSuppliers(r.Context())
	if err != nil {
		h.logger.Error("list suppliers", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, suppliers)
}

func (h *Handler) handleCreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if !h.decode(w, r, &req) {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	sup, err := h.service.CreateSupplier(r.Context(), *actor, SupplierInput{
		Name: req.Name, Email: req.Email, Phone: req.Phone, Address: req.Address,
	})
	if err != nil {
		h.logger.Error("create supplier", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, sup)
}

func (h *Handler) handleListFabrics(w http.ResponseWriter, r *http.Request) {
	fabrics, err := h.service.ListFabrics(r.Context())
	if err != nil {
		h.logger.Error("list fabrics", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, fabrics)
}

func (h *Handler) handleCreateFabric(w http.ResponseWriter, r *http.Request) {
	var req fabricRequest
	if !h.decode(w, r, &req) {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	f, err := h.service.CreateFabric(r.Context(), *actor, FabricInput{
		Material: req.Material, SupplierID: req.SupplierID, CostPerMeter: req.CostPerMeter,
	})
	if err != nil {
		h.logger.Error("create fabric", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, f)
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
