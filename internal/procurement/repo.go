package procurement

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelier-erp/atelier-erp/internal/shared"
)

// Repository persists purchase orders and resolves supplier candidates.
type Repository interface {
	List(ctx context.Context) ([]PurchaseOrder, error)
	Get(ctx context.Context, id int64) (PurchaseOrder, error)
	Insert(ctx context.Context, po PurchaseOrder) (int64, error)
	AlertItem(ctx context.Context, alertID int64) (int64, error)
	CheapestSupplier(ctx context.Context, itemID int64) (int64, error)
	ReorderLevel(ctx context.Context, itemID int64) (int, error)
	AnnotateAlert(ctx context.Context, alertID, poID int64) error
}

type repo struct {
	db *pgxpool.Pool
}

// NewRepository creates the procurement repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repo{db: db}
}

// EnsureSchema creates the purchase_orders table when it does not exist.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS purchase_orders (
		po_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		item_id BIGINT REFERENCES clothing_items(item_id),
		supplier_id BIGINT REFERENCES suppliers(supplier_id),
		quantity_ordered INT NOT NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'OPEN',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		expected_delivery DATE,
		notes TEXT
	)`
	_, err := db.Exec(ctx, ddl)
	return err
}

const poColumns = `
	po.po_id, po.item_id, COALESCE(ci.name, ''), po.supplier_id, COALESCE(s.name, ''),
	po.quantity_ordered, po.status, po.created_at,
	COALESCE(po.expected_delivery, po.created_at), COALESCE(po.notes, '')`

func (r *repo) List(ctx context.Context) ([]PurchaseOrder, error) {
	const query = `
	SELECT ` + poColumns + `
	FROM purchase_orders po
	LEFT JOIN clothing_items ci ON po.item_id = ci.item_id
	LEFT JOIN suppliers s ON po.supplier_id = s.supplier_id
	ORDER BY po.created_at DESC, po.po_id DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PurchaseOrder
	for rows.Next() {
		po, err := scanPO(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, po)
	}
	return result, rows.Err()
}

func (r *repo) Get(ctx context.Context, id int64) (PurchaseOrder, error) {
	const query = `
	SELECT ` + poColumns + `
	FROM purchase_orders po
	LEFT JOIN clothing_items ci ON po.item_id = ci.item_id
	LEFT JOIN suppliers s ON po.supplier_id = s.supplier_id
	WHERE po.po_id = $1`
	po, err := scanPO(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return PurchaseOrder{}, shared.ErrNotFound
	}
	return po, err
}

func (r *repo) Insert(ctx context.Context, po PurchaseOrder) (int64, error) {
	const query = `
	INSERT INTO purchase_orders (item_id, supplier_id, quantity_ordered, expected_delivery, status, notes)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING po_id`
	var id int64
	err := r.db.QueryRow(ctx, query, po.ItemID, po.SupplierID, po.QuantityOrdered,
		po.ExpectedDelivery, po.Status, po.Notes).Scan(&id)
	return id, err
}

func (r *repo) AlertItem(ctx context.Context, alertID int64) (int64, error) {
	var itemID int64
	err := r.db.QueryRow(ctx,
		`SELECT item_id FROM inventory_alerts WHERE alert_id = $1`, alertID).Scan(&itemID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, shared.ErrNotFound
	}
	return itemID, err
}

// CheapestSupplier picks the supplier of the lowest-cost fabric mapped to the
// item. Ties break on supplier id for a stable choice.
func (r *repo) CheapestSupplier(ctx context.Context, itemID int64) (int64, error) {
	const query = `
	SELECT f.supplier_id
	FROM clothing_item_fabrics cif
	JOIN fabrics f ON cif.fabric_id = f.fabric_id
	WHERE cif.item_id = $1
	ORDER BY f.cost_per_meter ASC, f.supplier_id ASC
	LIMIT 1`
	var supplierID int64
	err := r.db.QueryRow(ctx, query, itemID).Scan(&supplierID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNoSupplier
	}
	return supplierID, err
}

func (r *repo) ReorderLevel(ctx context.Context, itemID int64) (int, error) {
	var level int
	err := r.db.QueryRow(ctx,
		`SELECT reorder_level FROM inventory WHERE item_id = $1`, itemID).Scan(&level)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return level, err
}

func (r *repo) AnnotateAlert(ctx context.Context, alertID, poID int64) error {
	const query = `
	UPDATE inventory_alerts
	SET message = COALESCE(message, '') || ' | PO_CREATED:' || $1
	WHERE alert_id = $2`
	_, err := r.db.Exec(ctx, query, poID, alertID)
	return err
}

func scanPO(row pgx.Row) (PurchaseOrder, error) {
	var po PurchaseOrder
	err := row.Scan(&po.ID, &po.ItemID, &po.ItemName, &po.SupplierID, &po.SupplierName,
		&po.QuantityOrdered, &po.Status, &po.CreatedAt, &po.ExpectedDelivery, &po.Notes)
	return po, err
}
