// Package routines wraps the stored procedures and functions living inside
// the fashion_business database. Each routine gets its own typed wrapper
// with a hard-coded parameter list; the database decides everything else.
package routines

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the slice of pgxpool.Pool the client needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Client invokes the database routines the application depends on.
type Client struct {
	db Querier
}

// NewClient builds a routine client on top of a pgx pool.
func NewClient(db Querier) *Client {
	return &Client{db: db}
}

// ProcessSale records one sale. The routine adjusts inventory and writes
// the sales row itself.
func (c *Client) ProcessSale(ctx context.Context, itemID, storeID int64, quantity int, payment string) error {
	_, err := c.db.Exec(ctx, `CALL ProcessSale($1, $2, $3, $4)`, itemID, storeID, quantity, payment)
	return err
}

// GetItemFabricCost returns the total fabric cost for one item.
func (c *Client) GetItemFabricCost(ctx context.Context, itemID int64) (float64, error) {
	var cost float64
	err := c.db.QueryRow(ctx, `SELECT GetItemFabricCost($1)`, itemID).Scan(&cost)
	return cost, err
}

// GetProfitMargin returns the profit margin percentage for one item.
func (c *Client) GetProfitMargin(ctx context.Context, itemID int64) (float64, error) {
	var margin float64
	err := c.db.QueryRow(ctx, `SELECT GetProfitMargin($1)`, itemID).Scan(&margin)
	return margin, err
}

// GetDesignerRevenue returns total revenue attributed to a designer.
func (c *Client) GetDesignerRevenue(ctx context.Context, designerID int64) (float64, error) {
	var revenue float64
	err := c.db.QueryRow(ctx, `SELECT GetDesignerRevenue($1)`, designerID).Scan(&revenue)
	return revenue, err
}

// GetDesignerPortfolio returns the portfolio rows for a designer. The row
// shape belongs to the routine, so rows pass through as generic maps.
func (c *Client) GetDesignerPortfolio(ctx context.Context, designerID int64) ([]map[string]any, error) {
	rows, err := c.db.Query(ctx, `SELECT * FROM GetDesignerPortfolio($1)`, designerID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToMap)
}

// MonthlySalesReport returns the canned per-store monthly report rows.
func (c *Client) MonthlySalesReport(ctx context.Context, storeID int64, month time.Month, year int) ([]map[string]any, error) {
	rows, err := c.db.Query(ctx, `SELECT * FROM MonthlySalesReport($1, $2, $3)`, storeID, int(month), year)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToMap)
}
