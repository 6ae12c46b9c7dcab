package model

// ReadinessStatus classifies whether a planned usage's requirement is
// currently satisfiable. The set is closed: exactly one value per item,
// no partial or hybrid states. A deficit covered in any part by open
// orders is ON_ORDER, never BLOCKING.
type ReadinessStatus string

const (
	// StatusReady means on-hand inventory alone covers the requirement.
	StatusReady ReadinessStatus = "READY"
	// StatusOnOrder means open orders cover the on-hand shortfall.
	StatusOnOrder ReadinessStatus = "ON_ORDER"
	// StatusBlocking means neither inventory nor open orders cover it.
	StatusBlocking ReadinessStatus = "BLOCKING"
)

// IsValid reports whether s is one of the declared statuses.
func (s ReadinessStatus) IsValid() bool {
	return s == StatusReady || s == StatusOnOrder || s == StatusBlocking
}

// InventoryContribution records how much one inventory row added to an
// item's on-hand total, already converted into the planned unit.
type InventoryContribution struct {
	RowID    string  `json:"row_id,omitempty" example:"inv-0041"`
	Location string  `json:"location,omitempty" example:"north shed"`
	Lot      string  `json:"lot,omitempty" example:"L-2209"`
	Quantity float64 `json:"quantity" example:"150"`
}

// OrderContribution records how much one open order added to an item's
// on-order total, already converted into the planned unit.
type OrderContribution struct {
	OrderID  string  `json:"order_id" example:"po-1180"`
	Vendor   string  `json:"vendor,omitempty" example:"Heartland Ag Supply"`
	Quantity float64 `json:"quantity" example:"80"`
}

// ReadinessExplain is the audit trace behind one item's classification:
// every contributing row and order with its converted quantity, plus the
// final arithmetic. It is produced in the same pass as the totals, so the
// reported quantities are always the sums of the listed contributions.
type ReadinessExplain struct {
	RequiredQty float64                 `json:"required_qty" example:"100"`
	OnHandQty   float64                 `json:"on_hand_qty" example:"40"`
	OnOrderQty  float64                 `json:"on_order_qty" example:"80"`
	Deficit     float64                 `json:"deficit" example:"60"`
	Inventory   []InventoryContribution `json:"inventory,omitempty"`
	Orders      []OrderContribution     `json:"orders,omitempty"`
}

// ReadinessItem is one evaluated planned usage. Quantities are reported in
// the usage's own planned unit.
type ReadinessItem struct {
	UsageID     string           `json:"usage_id" example:"usage-001"`
	Label       string           `json:"label,omitempty" example:"Burndown herbicide"`
	ProductID   string           `json:"product_id" example:"prod-glyphosate"`
	Crop        string           `json:"crop,omitempty" example:"corn"`
	Pass        string           `json:"pass,omitempty" example:"burndown"`
	RequiredQty float64          `json:"required_qty" example:"100"`
	Unit        Unit             `json:"unit" example:"gal"`
	OnHandQty   float64          `json:"on_hand_qty" example:"40"`
	OnOrderQty  float64          `json:"on_order_qty" example:"80"`
	Status      ReadinessStatus  `json:"status" example:"ON_ORDER"`
	Explain     ReadinessExplain `json:"explain"`
}

// ReadinessResult is the output of one readiness evaluation. Items appear
// in exactly the order the planned usages were given, so callers can zip
// the result back against their own rows without re-keying.
type ReadinessResult struct {
	Items         []ReadinessItem `json:"items"`
	ReadyCount    int             `json:"ready_count" example:"4"`
	OnOrderCount  int             `json:"on_order_count" example:"2"`
	BlockingCount int             `json:"blocking_count" example:"1"`
	TotalCount    int             `json:"total_count" example:"7"`
}

// Summary returns only the counts, for dashboard views that do not need
// the per-item breakdown.
func (r ReadinessResult) Summary() ReadinessSummary {
	return ReadinessSummary{
		ReadyCount:    r.ReadyCount,
		OnOrderCount:  r.OnOrderCount,
		BlockingCount: r.BlockingCount,
		TotalCount:    r.TotalCount,
	}
}

// ReadinessSummary is the counts-only view of a readiness evaluation.
type ReadinessSummary struct {
	ReadyCount    int `json:"ready_count" example:"4"`
	OnOrderCount  int `json:"on_order_count" example:"2"`
	BlockingCount int `json:"blocking_count" example:"1"`
	TotalCount    int `json:"total_count" example:"7"`
}
