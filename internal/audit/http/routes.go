package audithttp

import "github.com/go-chi/chi/v5"

// MountRoutes registers audit endpoints on the provided router. Role
// gating happens on the parent router group.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
}
