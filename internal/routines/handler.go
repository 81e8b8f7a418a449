package routines

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atelier-erp/atelier-erp/internal/shared"
)

// Handler exposes routine diagnostics over HTTP.
type Handler struct {
	logger *slog.Logger
	client *Client
}

// NewHandler builds the diagnostics handler.
func NewHandler(logger *slog.Logger, client *Client) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, client: client}
}

// MountRoutes registers routine diagnostic routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{name}/arity", h.handleArity)
}

type arityResponse struct {
	Routine    string `json:"routine"`
	ParamCount int    `json:"param_count"`
}

func (h *Handler) handleArity(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	count, err := h.client.ParamCount(r.Context(), name)
	if err != nil {
		if errors.Is(err, ErrUnknownArity) {
			shared.RespondJSON(w, http.StatusNotFound, shared.ErrorBody{Error: "routine not catalogued"})
			return
		}
		h.logger.Error("probe arity", slog.String("routine", name), slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, arityResponse{Routine: name, ParamCount: count})
}
