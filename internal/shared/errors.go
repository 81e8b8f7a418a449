package shared

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken indicates a duplicate username on registration.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrForbidden indicates the acting role may not perform the operation.
	ErrForbidden = errors.New("forbidden")
)

// FailureKind classifies database-boundary failures for reporting.
type FailureKind int

const (
	// FailureUnknown covers anything the classifier cannot place.
	FailureUnknown FailureKind = iota
	// FailureConnection means the database was unreachable.
	FailureConnection
	// FailureConstraint means a constraint rejected the statement.
	FailureConstraint
	// FailureQuery means the statement or routine itself failed.
	FailureQuery
)

const pgUniqueViolation = "23505"

// ClassifyDBError maps a pgx error onto the failure taxonomy.
func ClassifyDBError(err error) FailureKind {
	if err == nil {
		return FailureUnknown
	}
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return FailureConnection
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// SQLSTATE class 23 covers integrity constraint violations.
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == "23" {
			return FailureConstraint
		}
		return FailureQuery
	}
	return FailureQuery
}

// IsUniqueViolation reports whether err is a unique constraint rejection.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// UserSafeMessage converts an internal error to text safe for API clients.
func UserSafeMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid username or password"
	case errors.Is(err, ErrUsernameTaken):
		return "username already taken"
	case errors.Is(err, ErrNotFound):
		return "resource not found"
	case errors.Is(err, ErrForbidden):
		return "operation not permitted for your role"
	}
	switch ClassifyDBError(err) {
	case FailureConnection:
		return "database unreachable, try again later"
	case FailureConstraint:
		return "request conflicts with existing data"
	default:
		return "internal error"
	}
}
