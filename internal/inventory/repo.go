package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelier-erp/atelier-erp/internal/shared"
)

// Repository persists inventory rows and reads alerts.
type Repository interface {
	List(ctx context.Context) ([]Row, error)
	Get(ctx context.Context, id int64) (Row, error)
	ApplyDelta(ctx context.Context, id int64, delta int) error
	SetQuantity(ctx context.Context, id int64, quantity int) error
	Delete(ctx context.Context, id int64) error
	ListAlerts(ctx context.Context, limit int) ([]Alert, error)
}

type repo struct {
	db *pgxpool.Pool
}

// NewRepository creates the inventory repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repo{db: db}
}

func (r *repo) List(ctx context.Context) ([]Row, error) {
	const query = `
	SELECT i.inventory_id, i.item_id, ci.name, i.quantity_in_stock, i.reorder_level
	FROM inventory i
	JOIN clothing_items ci ON i.item_id = ci.item_id
	ORDER BY i.inventory_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.ItemID, &row.ItemName, &row.QuantityInStock, &row.ReorderLevel); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *repo) Get(ctx context.Context, id int64) (Row, error) {
	const query = `
	SELECT i.inventory_id, i.item_id, ci.name, i.quantity_in_stock, i.reorder_level
	FROM inventory i
	JOIN clothing_items ci ON i.item_id = ci.item_id
	WHERE i.inventory_id = $1`
	var row Row
	err := r.db.QueryRow(ctx, query, id).Scan(&row.ID, &row.ItemID, &row.ItemName,
		&row.QuantityInStock, &row.ReorderLevel)
	if errors.Is(err, pgx.ErrNoRows) {
		return Row{}, shared.ErrNotFound
	}
	return row, err
}

func (r *repo) ApplyDelta(ctx context.Context, id int64, delta int) error {
	const query = `UPDATE inventory SET quantity_in_stock = quantity_in_stock + $1 WHERE inventory_id = $2`
	tag, err := r.db.Exec(ctx, query, delta, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repo) SetQuantity(ctx context.Context, id int64, quantity int) error {
	const query = `UPDATE inventory SET quantity_in_stock = $1 WHERE inventory_id = $2`
	tag, err := r.db.Exec(ctx, query, quantity, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM inventory WHERE inventory_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repo) ListAlerts(ctx context.Context, limit int) ([]Alert, error) {
	if limit <= 0 {
		limit = 200
	}
	const query = `
	SELECT alert_id, item_id, COALESCE(message, ''), alert_date
	FROM inventory_alerts ORDER BY alert_date DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []Alert
	for rows.Next() {
		var a Alert
		if err := rows.Scan(&a.ID, &a.ItemID, &a.Message, &a.AlertDate); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
