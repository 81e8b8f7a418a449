package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/atelier-erp/atelier-erp/internal/audit"
	"github.com/atelier-erp/atelier-erp/internal/shared"
)

// AuditPort abstracts best-effort audit recording.
type AuditPort interface {
	Record(ctx context.Context, entry audit.Entry) error
}

// Handler wires HTTP endpoints for authentication and operator management.
type Handler struct {
	logger    *slog.Logger
	auditWarn *slog.Logger
	service   *Service
	sessions  *shared.SessionManager
	audit     AuditPort
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger, auditWarn *slog.Logger, service *Service, sessions *shared.SessionManager, auditPort AuditPort) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if auditWarn == nil {
		auditWarn = logger
	}
	return &Handler{
		logger:    logger,
		auditWarn: auditWarn,
		service:   service,
		sessions:  sessions,
		audit:     auditPort,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
}

// MountUserRoutes registers admin-only operator management routes.
func (h *Handler) MountUserRoutes(r chi.Router) {
	r.Get("/", h.handleListUsers)
	r.Post("/", h.handleCreateUser)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=4"`
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin manager cashier procurement analyst"`
	Password string `json:"password" validate:"required,min=4"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondJSON(w, http.StatusBadRequest, shared.ErrorBody{Error: "malformed request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		// A short password fails the same way a wrong one does.
		shared.RespondError(w, shared.ErrInvalidCredentials)
		return
	}

	cred, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Info("login rejected", slog.String("username", req.Username))
		shared.RespondError(w, err)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("session missing during login")
		shared.RespondJSON(w, http.StatusInternalServerError, shared.ErrorBody{Error: "internal error"})
		return
	}
	sess.SetActor(shared.Actor{ID: cred.ID, Username: cred.Username, Role: string(cred.Role)})
	shared.RespondJSON(w, http.StatusOK, cred)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess != nil {
		h.sessions.Destroy(sess)
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	creds, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list app users", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, creds)
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondJSON(w, http.StatusBadRequest, shared.ErrorBody{Error: "malformed request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondJSON(w, http.StatusBadRequest, shared.ErrorBody{Error: "username, a valid role and a password of at least 4 characters are required"})
		return
	}

	cred, err := h.service.Register(r.Context(), req.Username, Role(req.Role), req.Password)
	if err != nil {
		h.logger.Error("create app user", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}

	if actor := shared.ActorFromContext(r.Context()); actor != nil {
		if err := h.audit.Record(r.Context(), audit.Entry{
			ActorID:       actor.ID,
			ActorUsername: actor.Username,
			Action:        "CREATE_APP_USER",
			EntityType:    "app_users",
			EntityID:      strconv.FormatInt(cred.ID, 10),
			Detail:        cred.Username,
		}); err != nil {
			h.auditWarn.Warn("audit write failed", slog.Any("error", err))
		}
	}
	shared.RespondJSON(w, http.StatusCreated, cred)
}
