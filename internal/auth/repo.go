package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelier-erp/atelier-erp/internal/shared"
)

// StoredCredential is a credential including its secret material. Only the
// authenticator consumes it.
type StoredCredential struct {
	Credential
	Digest string
	Salt   string
}

// Repository defines persistence operations for the credential store.
type Repository interface {
	Insert(ctx context.Context, username string, role Role, digest, salt string) (Credential, error)
	FindByUsername(ctx context.Context, username string) (StoredCredential, error)
	FindByID(ctx context.Context, id int64) (Credential, error)
	List(ctx context.Context) ([]Credential, error)
}

// PGRepository implements Repository against the app_users table.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// EnsureSchema creates the app_users table when absent, mirroring the
// legacy application's startup behaviour.
func (r *PGRepository) EnsureSchema(ctx context.Context) error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS app_users (
		app_user_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		username VARCHAR(100) UNIQUE NOT NULL,
		role VARCHAR(50) NOT NULL,
		password_hash VARCHAR(128) NOT NULL,
		salt VARCHAR(64) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	_, err := r.pool.Exec(ctx, ddl)
	return err
}

// Insert persists a new credential. A duplicate username surfaces as
// shared.ErrUsernameTaken.
func (r *PGRepository) Insert(ctx context.Context, username string, role Role, digest, salt string) (Credential, error) {
	const query = `
	INSERT INTO app_users (username, role, password_hash, salt)
	VALUES ($1, $2, $3, $4)
	RETURNING app_user_id, created_at`
	cred := Credential{Username: username, Role: role}
	err := r.pool.QueryRow(ctx, query, username, string(role), digest, salt).Scan(&cred.ID, &cred.CreatedAt)
	if err != nil {
		if shared.IsUniqueViolation(err) {
			return Credential{}, shared.ErrUsernameTaken
		}
		return Credential{}, err
	}
	return cred, nil
}

// FindByUsername fetches a credential with its secret material.
func (r *PGRepository) FindByUsername(ctx context.Context, username string) (StoredCredential, error) {
	const query = `
	SELECT app_user_id, username, role, password_hash, salt, created_at
	FROM app_users WHERE username = $1`
	var stored StoredCredential
	var role string
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&stored.ID, &stored.Username, &role, &stored.Digest, &stored.Salt, &stored.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StoredCredential{}, shared.ErrNotFound
		}
		return StoredCredential{}, err
	}
	stored.Role = Role(role)
	return stored, nil
}

// FindByID fetches a credential without secret material.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (Credential, error) {
	const query = `
	SELECT app_user_id, username, role, created_at FROM app_users WHERE app_user_id = $1`
	var cred Credential
	var role string
	err := r.pool.QueryRow(ctx, query, id).Scan(&cred.ID, &cred.Username, &role, &cred.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Credential{}, shared.ErrNotFound
		}
		return Credential{}, err
	}
	cred.Role = Role(role)
	return cred, nil
}

// List returns every credential, newest first.
func (r *PGRepository) List(ctx context.Context) ([]Credential, error) {
	const query = `
	SELECT app_user_id, username, role, created_at FROM app_users ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var creds []Credential
	for rows.Next() {
		var cred Credential
		var role string
		if err := rows.Scan(&cred.ID, &cred.Username, &role, &cred.CreatedAt); err != nil {
			return nil, err
		}
		cred.Role = Role(role)
		creds = append(creds, cred)
	}
	return creds, rows.Err()
}

var _ Repository = (*PGRepository)(nil)
