package shared

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestClassifyDBError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"nil", nil, FailureUnknown},
		{"network", &net.OpError{Op: "dial", Err: errors.New("refused")}, FailureConnection},
		{"unique violation", &pgconn.PgError{Code: "23505"}, FailureConstraint},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, FailureConstraint},
		{"undefined function", &pgconn.PgError{Code: "42883"}, FailureQuery},
		{"wrapped pg error", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505"}), FailureConstraint},
		{"plain error", errors.New("boom"), FailureQuery},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ClassifyDBError(tc.err))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	require.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	require.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	require.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	require.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestStatusForError(t *testing.T) {
	require.Equal(t, http.StatusUnauthorized, StatusForError(ErrInvalidCredentials))
	require.Equal(t, http.StatusForbidden, StatusForError(ErrForbidden))
	require.Equal(t, http.StatusNotFound, StatusForError(ErrNotFound))
	require.Equal(t, http.StatusConflict, StatusForError(ErrUsernameTaken))
	require.Equal(t, http.StatusServiceUnavailable,
		StatusForError(&net.OpError{Op: "dial", Err: errors.New("refused")}))
	require.Equal(t, http.StatusConflict, StatusForError(&pgconn.PgError{Code: "23514"}))
	require.Equal(t, http.StatusInternalServerError, StatusForError(errors.New("boom")))
}

func TestUserSafeMessageNeverLeaksInternals(t *testing.T) {
	internal := fmt.Errorf("pq: password authentication failed for user %q", "postgres")
	msg := UserSafeMessage(internal)
	require.NotContains(t, msg, "postgres")
	require.Equal(t, "internal error", msg)

	require.Equal(t, "invalid username or password", UserSafeMessage(ErrInvalidCredentials))
}
