package model

import "time"

// InventoryRow is one physical lot of a product. Several rows may reference
// the same product (different lots or locations); readiness sums them all
// after unit normalization.
type InventoryRow struct {
	ID        string  `json:"id,omitempty" example:"inv-0041"`
	ProductID string  `json:"product_id" example:"prod-glyphosate"`
	Quantity  float64 `json:"quantity" example:"150"`
	// Unit may be empty. An empty unit means the row is already expressed
	// in the planned unit of whatever usage it is matched against.
	Unit       Unit       `json:"unit,omitempty" example:"gal"`
	Location   string     `json:"location,omitempty" example:"north shed"`
	Lot        string     `json:"lot,omitempty" example:"L-2209"`
	ReceivedAt *time.Time `json:"received_at,omitempty"`
}
