package supply

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists supplier and fabric data.
type Repository interface {
	ListSuppliers(ctx context.Context) ([]Supplier, error)
	CreateSupplier(ctx context.Context, input SupplierInput) (Supplier, error)
	ListFabrics(ctx context.Context) ([]Fabric, error)
	CreateFabric(ctx context.Context, input FabricInput) (Fabric, error)
}

type repo struct {
	db *pgxpool.Pool
}

// NewRepository creates the supply repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repo{db: db}
}

func (r *repo) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	const query = `
	SELECT supplier_id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(address, '')
	FROM suppliers ORDER BY supplier_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []Supplier
	for rows.Next() {
		var s Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

func (r *repo) CreateSupplier(ctx context.Context, input SupplierInput) (Supplier, error) {
	const query = `
	INSERT INTO suppliers (name, email, phone, address)
	VALUES ($1, $2, $3, $4) RETURNING supplier_id`
	s := Supplier{Name: input.Name, Email: input.Email, Phone: input.Phone, Address: input.Address}
	err := r.db.QueryRow(ctx, query, input.Name, input.Email, input.Phone, input.Address).Scan(&s.ID)
	if err != nil {
		return Supplier{}, err
	}
	return s, nil
}

func (r *repo) ListFabrics(ctx context.Context) ([]Fabric, error) {
	const query = `
	SELECT f.fabric_id, f.material, f.cost_per_meter, COALESCE(f.supplier_id, 0), COALESCE(s.name, '')
	FROM fabrics f
	LEFT JOIN suppliers s ON f.supplier_id = s.supplier_id
	ORDER BY f.fabric_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fabrics []Fabric
	for rows.Next() {
		var f Fabric
		if err := rows.Scan(&f.ID, &f.Material, &f.CostPerMeter, &f.SupplierID, &f.SupplierName); err != nil {
			return nil, err
		}
		fabrics = append(fabrics, f)
	}
	return fabrics, rows.Err()
}

func (r *repo) CreateFabric(ctx context.Context, input FabricInput) (Fabric, error) {
	const query = `
	INSERT INTO fabrics (material, supplier_id, cost_per_meter)
	VALUES ($1, $2, $3) RETURNING fabric_id`
	f := Fabric{Material: input.Material, SupplierID: input.SupplierID, CostPerMeter: input.CostPerMeter}
	err := r.db.QueryRow(ctx, query, input.Material, input.SupplierID, input.CostPerMeter).Scan(&f.ID)
	if err != nil {
		return Fabric{}, err
	}
	return f, nil
}
