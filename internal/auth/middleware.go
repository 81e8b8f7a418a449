package auth

import (
	"net/http"

	"github.com/atelier-erp/atelier-erp/internal/shared"
)

// RequireAuthenticated rejects anonymous requests.
func RequireAuthenticated() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shared.ActorFromContext(r.Context()) == nil {
				shared.RespondJSON(w, http.StatusUnauthorized, shared.ErrorBody{Error: "login required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole admits only operators holding one of the given roles. The
// legacy UI hid buttons per role; here the same gate lives on the route.
func RequireRole(roles ...Role) func(http.Handler) http.Handler {
	allowed := make(map[Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := shared.ActorFromContext(r.Context())
			if actor == nil {
				shared.RespondJSON(w, http.StatusUnauthorized, shared.ErrorBody{Error: "login required"})
				return
			}
			if _, ok := allowed[Role(actor.Role)]; !ok {
				shared.RespondError(w, shared.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
