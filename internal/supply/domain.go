package supply

import "errors"

// Supplier is one supplier row.
type Supplier struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Fabric is one fabric row joined with its supplier name.
type Fabric struct {
	ID           int64   `json:"id"`
	Material     string  `json:"material"`
	CostPerMeter float64 `json:"cost_per_meter"`
	SupplierID   int64   `json:"supplier_id"`
	SupplierName string  `json:"supplier_name,omitempty"`
}

// SupplierInput carries fields for creating a supplier.
type SupplierInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// FabricInput carries fields for creating a fabric.
type FabricInput struct {
	Material     string
	SupplierID   int64
	CostPerMeter float64
}

var (
	ErrNameRequired     = errors.New("supply: name is required")
	ErrSupplierRequired = errors.New("supply: supplier is required")
	ErrInvalidCost      = errors.New("supply: cost per meter must be >= 0")
)
