package sales

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const recentLimit = 50

// Repository reads sales rows. Writes happen inside the ProcessSale routine.
type Repository interface {
	Recent(ctx context.Context, limit int) ([]Sale, error)
}

type repo struct {
	db *pgxpool.Pool
}

// NewRepository creates the sales repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repo{db: db}
}

func (r *repo) Recent(ctx context.Context, limit int) ([]Sale, error) {
	if limit <= 0 || limit > recentLimit {
		limit = recentLimit
	}
	const query = `
	SELECT s.sale_id, s.item_id, COALESCE(ci.name, ''), s.store_id, COALESCE(st.name, ''),
	       s.quantity_sold, COALESCE(s.total_amount, 0), COALESCE(s.payment, ''), s.sale_date
	FROM sales s
	LEFT JOIN clothing_items ci ON s.item_id = ci.item_id
	LEFT JOIN stores st ON s.store_id = st.store_id
	ORDER BY s.sale_date DESC, s.sale_id DESC
	LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Sale
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.ItemID, &s.ItemName, &s.StoreID, &s.StoreName,
			&s.QuantitySold, &s.TotalAmount, &s.Payment, &s.SaleDate); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
