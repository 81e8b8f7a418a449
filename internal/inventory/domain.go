package inventory

import (
	"errors"
	"time"
)

// Row is one inventory row joined with its item name.
type Row struct {
	ID              int64  `json:"id"`
	ItemID          int64  `json:"item_id"`
	ItemName        string `json:"item_name"`
	QuantityInStock int    `json:"quantity_in_stock"`
	ReorderLevel    int    `json:"reorder_level"`
}

// Alert is one reorder alert. Rows are inserted by a database trigger
// when stock falls to or below the reorder level; the application only
// reads and annotates them.
type Alert struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	Message   string    `json:"message"`
	AlertDate time.Time `json:"alert_date"`
}

// ErrZeroDelta indicates a stock change of zero.
var ErrZeroDelta = errors.New("inventory: delta must be non zero")
