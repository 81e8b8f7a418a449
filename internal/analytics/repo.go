package analytics

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository runs the read-only aggregate queries behind the dashboard.
type Repository interface {
	TotalItems(ctx context.Context) (int, error)
	TotalRevenue(ctx context.Context) (float64, error)
	LowStockCount(ctx context.Context) (int, error)
	MonthlyRevenue(ctx context.Context, since time.Time) (map[string]float64, error)
	ItemsAboveCollectionAverage(ctx context.Context) ([]PricedItem, error)
	ProductCatalog(ctx context.Context) ([]ProductInfo, error)
	TopSellers(ctx context.Context, limit int) ([]TopSeller, error)
	SalesByStore(ctx context.Context) ([]StorePerformance, error)
}

type repo struct {
	db *pgxpool.Pool
}

// NewRepository creates the analytics repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repo{db: db}
}

func (r *repo) TotalItems(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clothing_items`).Scan(&n)
	return n, err
}

func (r *repo) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount), 0) FROM sales`).Scan(&total)
	return total, err
}

func (r *repo) LowStockCount(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM inventory WHERE quantity_in_stock <= reorder_level`).Scan(&n)
	return n, err
}

func (r *repo) MonthlyRevenue(ctx context.Context, since time.Time) (map[string]float64, error) {
	const query = `
	SELECT to_char(sale_date, 'YYYY-MM') AS month, COALESCE(SUM(total_amount), 0)
	FROM sales
	WHERE sale_date >= $1
	GROUP BY month`
	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := make(map[string]float64)
	for rows.Next() {
		var month string
		var revenue float64
		if err := rows.Scan(&month, &revenue); err != nil {
			return nil, err
		}
		buckets[month] = revenue
	}
	return buckets, rows.Err()
}

func (r *repo) ItemsAboveCollectionAverage(ctx context.Context) ([]PricedItem, error) {
	const query = `
	SELECT ci.item_id, ci.name, COALESCE(c.name, ''), ci.price, avg_price.avg
	FROM clothing_items ci
	LEFT JOIN collections c ON ci.collection_id = c.collection_id
	JOIN (
		SELECT collection_id, AVG(price) AS avg
		FROM clothing_items
		GROUP BY collection_id
	) avg_price ON ci.collection_id = avg_price.collection_id
	WHERE ci.price > avg_price.avg
	ORDER BY ci.price DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PricedItem
	for rows.Next() {
		var item PricedItem
		if err := rows.Scan(&item.ID, &item.Name, &item.CollectionName, &item.Price, &item.CollectionAvg); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *repo) ProductCatalog(ctx context.Context) ([]ProductInfo, error) {
	const query = `
	SELECT ci.item_id, ci.name, ci.price,
	       COALESCE(c.name, ''), COALESCE(d.name, ''),
	       COALESCE(f.material, ''), COALESCE(s.name, '')
	FROM clothing_items ci
	LEFT JOIN collections c ON ci.collection_id = c.collection_id
	LEFT JOIN designers d ON c.designer_id = d.designer_id
	LEFT JOIN clothing_item_fabrics cif ON ci.item_id = cif.item_id
	LEFT JOIN fabrics f ON cif.fabric_id = f.fabric_id
	LEFT JOIN suppliers s ON f.supplier_id = s.supplier_id
	ORDER BY ci.item_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ProductInfo
	for rows.Next() {
		var p ProductInfo
		if err := rows.Scan(&p.ID, &p.Name, &p.Price,
			&p.CollectionName, &p.DesignerName, &p.Fabric, &p.SupplierName); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

const defaultTopSellers = 10

func (r *repo) TopSellers(ctx context.Context, limit int) ([]TopSeller, error) {
	if limit <= 0 {
		limit = defaultTopSellers
	}
	const query = `
	SELECT s.item_id, COALESCE(ci.name, ''), SUM(s.quantity_sold), COALESCE(SUM(s.total_amount), 0)
	FROM sales s
	LEFT JOIN clothing_items ci ON s.item_id = ci.item_id
	GROUP BY s.item_id, ci.name
	ORDER BY SUM(s.quantity_sold) DESC
	LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TopSeller
	for rows.Next() {
		var t TopSeller
		if err := rows.Scan(&t.ItemID, &t.ItemName, &t.UnitsSold, &t.TotalRevenue); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (r *repo) SalesByStore(ctx context.Context) ([]StorePerformance, error) {
	const query = `
	SELECT s.store_id, COALESCE(st.name, ''), COUNT(*), COALESCE(SUM(s.total_amount), 0)
	FROM sales s
	LEFT JOIN stores st ON s.store_id = st.store_id
	GROUP BY s.store_id, st.name
	ORDER BY SUM(s.total_amount) DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []StorePerformance
	for rows.Next() {
		var s StorePerformance
		if err := rows.Scan(&s.StoreID, &s.StoreName, &s.SalesCount, &s.TotalRevenue); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
