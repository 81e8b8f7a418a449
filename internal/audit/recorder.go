package audit

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Recorder appends records to audit_log. Writes are best-effort by policy:
// callers log a failure on the audit warn channel and carry on, the
// triggering mutation is never rolled back.
type Recorder struct {
	pool *pgxpool.Pool
}

// NewRecorder returns a new Recorder.
func NewRecorder(pool *pgxpool.Pool) *Recorder {
	return &Recorder{pool: pool}
}

// EnsureSchema creates the audit_log table when absent.
func (r *Recorder) EnsureSchema(ctx context.Context) error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS audit_log (
		audit_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		app_user_id BIGINT,
		username VARCHAR(100),
		action VARCHAR(100) NOT NULL,
		table_name VARCHAR(100) NOT NULL,
		row_id VARCHAR(100),
		details TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	_, err := r.pool.Exec(ctx, ddl)
	return err
}

// Record persists one entry.
func (r *Recorder) Record(ctx context.Context, entry Entry) error {
	if entry.Action == "" || entry.EntityType == "" {
		return errors.New("audit: entry requires action and entity type")
	}
	if r == nil || r.pool == nil {
		return errors.New("audit: recorder not initialised")
	}
	const query = `
	INSERT INTO audit_log (app_user_id, username, action, table_name, row_id, details)
	VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		entry.ActorID, entry.ActorUsername, entry.Action, entry.EntityType, entry.EntityID, entry.Detail)
	return err
}
