package audit

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository reads audit_log rows.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the listing repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// ListWindow fetches a window of records, newest first, applying whatever
// filters are set.
func (r *PGRepository) ListWindow(ctx context.Context, filters Filters, offset, limit int) ([]Record, error) {
	const query = `
	SELECT audit_id, COALESCE(app_user_id, 0), COALESCE(username, ''), action,
	       table_name, COALESCE(row_id, ''), COALESCE(details, ''), created_at
	FROM audit_log
	WHERE ($1::timestamptz IS NULL OR created_at >= $1)
	  AND ($2::timestamptz IS NULL OR created_at <= $2)
	  AND ($3::text IS NULL OR username = $3)
	  AND ($4::text IS NULL OR action = $4)
	  AND ($5::text IS NULL OR table_name = $5)
	ORDER BY created_at DESC, audit_id DESC
	OFFSET $6 LIMIT $7`

	rows, err := r.pool.Query(ctx, query,
		toPgTime(filters.From), toPgTime(filters.To),
		optionalText(filters.Actor), optionalText(filters.Action), optionalText(filters.EntityType),
		offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.ActorID, &rec.ActorUsername, &rec.Action,
			&rec.EntityType, &rec.EntityID, &rec.Detail, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func toPgTime(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func optionalText(value string) pgtype.Text {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: trimmed, Valid: true}
}

var _ Repository = (*PGRepository)(nil)
