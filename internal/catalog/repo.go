package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelier-erp/atelier-erp/internal/shared"
)

// Repository persists catalog data.
type Repository interface {
	ListItems(ctx context.Context) ([]Item, error)
	GetItem(ctx context.Context, id int64) (Item, error)
	CreateItem(ctx context.Context, input ItemInput) (Item, error)
	UpdateItem(ctx context.Context, id int64, update ItemUpdate) error
	DeleteItem(ctx context.Context, id int64) error

	ListCollections(ctx context.Context) ([]Collection, error)
	CreateCollection(ctx context.Context, input CollectionInput) (Collection, error)

	ListDesigners(ctx context.Context) ([]Designer, error)
	CreateDesigner(ctx context.Context, input DesignerInput) (Designer, error)

	ListStores(ctx context.Context) ([]Store, error)
}

type repo struct {
	db *pgxpool.Pool
}

// NewRepository creates the catalog repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repo{db: db}
}

func (r *repo) ListItems(ctx context.Context) ([]Item, error) {
	const query = `
	SELECT ci.item_id, ci.name, COALESCE(ci.size, ''), COALESCE(ci.color, ''), ci.price,
	       COALESCE(ci.collection_id, 0), COALESCE(c.name, '')
	FROM clothing_items ci
	LEFT JOIN collections c ON ci.collection_id = c.collection_id
	ORDER BY ci.item_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Size, &item.Color, &item.Price,
			&item.CollectionID, &item.CollectionName); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *repo) GetItem(ctx context.Context, id int64) (Item, error) {
	const query = `
	SELECT ci.item_id, ci.name, COALESCE(ci.size, ''), COALESCE(ci.color, ''), ci.price,
	       COALESCE(ci.collection_id, 0), COALESCE(c.name, '')
	FROM clothing_items ci
	LEFT JOIN collections c ON ci.collection_id = c.collection_id
	WHERE ci.item_id = $1`
	var item Item
	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.Name, &item.Size, &item.Color,
		&item.Price, &item.CollectionID, &item.CollectionName)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, shared.ErrNotFound
	}
	return item, err
}

func (r *repo) CreateItem(ctx context.Context, input ItemInput) (Item, error) {
	const query = `
	INSERT INTO clothing_items (name, size, color, price, collection_id)
	VALUES ($1, $2, $3, $4, NULLIF($5, 0)) RETURNING item_id`
	item := Item{Name: input.Name, Size: input.Size, Color: input.Color,
		Price: input.Price, CollectionID: input.CollectionID}
	err := r.db.QueryRow(ctx, query, input.Name, input.Size, input.Color, input.Price, input.CollectionID).Scan(&item.ID)
	if err != nil {
		return Item{}, err
	}
	return item, nil
}

func (r *repo) UpdateItem(ctx context.Context, id int64, update ItemUpdate) error {
	const query = `UPDATE clothing_items SET name = $1, price = $2 WHERE item_id = $3`
	tag, err := r.db.Exec(ctx, query, update.Name, update.Price, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repo) DeleteItem(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clothing_items WHERE item_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repo) ListCollections(ctx context.Context) ([]Collection, error) {
	const query = `
	SELECT c.collection_id, c.name, COALESCE(c.season, ''), COALESCE(c.year, 0),
	       COALESCE(c.designer_id, 0), COALESCE(d.name, '')
	FROM collections c
	LEFT JOIN designers d ON c.designer_id = d.designer_id
	ORDER BY c.collection_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collections []Collection
	for rows.Next() {
		var col Collection
		if err := rows.Scan(&col.ID, &col.Name, &col.Season, &col.Year,
			&col.DesignerID, &col.DesignerName); err != nil {
			return nil, err
		}
		collections = append(collections, col)
	}
	return collections, rows.Err()
}

func (r *repo) CreateCollection(ctx context.Context, input CollectionInput) (Collection, error) {
	const query = `
	INSERT INTO collections (name, season, year, designer_id)
	VALUES ($1, $2, $3, $4) RETURNING collection_id`
	col := Collection{Name: input.Name, Season: input.Season, Year: input.Year, DesignerID: input.DesignerID}
	err := r.db.QueryRow(ctx, query, input.Name, input.Season, input.Year, input.DesignerID).Scan(&col.ID)
	if err != nil {
		return Collection{}, err
	}
	return col, nil
}

func (r *repo) ListDesigners(ctx context.Context) ([]Designer, error) {
	const query = `
	SELECT designer_id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(style, '')
	FROM designers ORDER BY designer_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var designers []Designer
	for rows.Next() {
		var d Designer
		if err := rows.Scan(&d.ID, &d.Name, &d.Email, &d.Phone, &d.Style); err != nil {
			return nil, err
		}
		designers = append(designers, d)
	}
	return designers, rows.Err()
}

func (r *repo) CreateDesigner(ctx context.Context, input DesignerInput) (Designer, error) {
	const query = `
	INSERT INTO designers (name, email, phone, style)
	VALUES ($1, $2, $3, $4) RETURNING designer_id`
	d := Designer{Name: input.Name, Email: input.Email, Phone: input.Phone, Style: input.Style}
	err := r.db.QueryRow(ctx, query, input.Name, input.Email, input.Phone, input.Style).Scan(&d.ID)
	if err != nil {
		return Designer{}, err
	}
	return d, nil
}

func (r *repo) ListStores(ctx context.Context) ([]Store, error) {
	rows, err := r.db.Query(ctx, `SELECT store_id, name FROM stores ORDER BY store_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []Store
	for rows.Next() {
		var s Store
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}
