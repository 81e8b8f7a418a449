package shared

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrorBody is the JSON shape for failed requests.
type ErrorBody struct {
	Error string `json:"error"`
}

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError writes a sanitized error response for err.
func RespondError(w http.ResponseWriter, err error) {
	RespondJSON(w, StatusForError(err), ErrorBody{Error: UserSafeMessage(err)})
}

// StatusForError maps the failure taxonomy onto HTTP status codes.
func StatusForError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUsernameTaken):
		return http.StatusConflict
	}
	switch ClassifyDBError(err) {
	case FailureConnection:
		return http.StatusServiceUnavailable
	case FailureConstraint:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
