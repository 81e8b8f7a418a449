package procurement

import (
	"errors"
	"time"
)

// PurchaseOrder is one purchase order joined with item and supplier names.
type PurchaseOrder struct {
	ID               int64     `json:"id"`
	ItemID           int64     `json:"item_id"`
	ItemName         string    `json:"item_name"`
	SupplierID       int64     `json:"supplier_id"`
	SupplierName     string    `json:"supplier_name"`
	QuantityOrdered  int       `json:"quantity_ordered"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	ExpectedDelivery time.Time `json:"expected_delivery"`
	Notes            string    `json:"notes"`
}

// ErrNoSupplier indicates the item has no fabric-to-supplier mapping, so no
// supplier can be chosen for an automatic order.
var ErrNoSupplier = errors.New("procurement: no supplier mapped to item")
