package sales

import "time"

// Sale is one recorded sale joined with item and store names.
type Sale struct {
	ID           int64     `json:"id"`
	ItemID       int64     `json:"item_id"`
	ItemName     string    `json:"item_name"`
	StoreID      int64     `json:"store_id"`
	StoreName    string    `json:"store_name"`
	QuantitySold int       `json:"quantity_sold"`
	TotalAmount  float64   `json:"total_amount"`
	Payment      string    `json:"payment"`
	SaleDate     time.Time `json:"sale_date"`
}
