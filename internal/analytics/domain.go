package analytics

// Summary carries the dashboard headline figures.
type Summary struct {
	TotalItems          int     `json:"total_items"`
	TotalRevenue        float64 `json:"total_revenue"`
	TotalRevenueDisplay string  `json:"total_revenue_display"`
	LowStockCount       int     `json:"low_stock_count"`
}

// TrendPoint is one month of revenue, zero when no sales landed in it.
type TrendPoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// PricedItem is one item compared against its collection's average price.
type PricedItem struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	CollectionName string  `json:"collection_name"`
	Price          float64 `json:"price"`
	CollectionAvg  float64 `json:"collection_avg"`
}

// ProductInfo is one row of the full product join: item, collection,
// designer, fabric and supplier. Items mapped to several fabrics repeat.
type ProductInfo struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	CollectionName string  `json:"collection_name"`
	DesignerName   string  `json:"designer_name"`
	Fabric         string  `json:"fabric"`
	SupplierName   string  `json:"supplier_name"`
}

// TopSeller aggregates sold quantity and revenue per item.
type TopSeller struct {
	ItemID       int64   `json:"item_id"`
	ItemName     string  `json:"item_name"`
	UnitsSold    int     `json:"units_sold"`
	TotalRevenue float64 `json:"total_revenue"`
}

// StorePerformance aggregates sales per store.
type StorePerformance struct {
	StoreID      int64   `json:"store_id"`
	StoreName    string  `json:"store_name"`
	SalesCount   int     `json:"sales_count"`
	TotalRevenue float64 `json:"total_revenue"`
}
