package model

import "github.com/shopspring/decimal"

// VarianceCaveat is attached to every variance report. The allocation is a
// proportional estimate, not a traced ledger: the method cannot say which
// invoice line paid for which pass, only how cost splits if consumption
// followed planned proportions. Callers must surface this, not hide it.
const VarianceCaveat = "Actual costs are allocated across passes in proportion to planned quantities. " +
	"They are an estimate, not a record of which invoice paid for which pass."

// VarianceFlags marks the no-data conditions of a variance row. These are
// ordinary results, not errors.
type VarianceFlags struct {
	// MissingPlannedPrice is set when no price-book entry priced some part
	// of the bucket, leaving the planned cost null or incomplete.
	MissingPlannedPrice bool `json:"missing_planned_price"`
	// NoInvoices is set when the owning crop matched no invoice lines at
	// all, so every allocation for that crop is zero.
	NoInvoices bool `json:"no_invoices"`
}

// VarianceRow is one crop/pass bucket of the variance report. PlannedCost,
// Variance, and VariancePct are null when no price-book entry exists for
// the bucket; null is preserved at row level even though the report totals
// treat it as zero.
type VarianceRow struct {
	Crop string `json:"crop" example:"corn"`
	Pass string `json:"pass" example:"burndown"`
	// Products lists the product names (ids when unnamed) planned in this
	// bucket, for display.
	Products []string `json:"products,omitempty"`
	// PlannedQtyBase is the bucket's planned quantity in family base
	// units, the weight used for the proportional allocation.
	PlannedQtyBase      float64          `json:"planned_qty_base" example:"60"`
	PlannedCost         *decimal.Decimal `json:"planned_cost" example:"600.00"`
	ActualCostAllocated decimal.Decimal  `json:"actual_cost_allocated" example:"720.00"`
	Variance            *decimal.Decimal `json:"variance" example:"120.00"`
	VariancePct         *decimal.Decimal `json:"variance_pct" example:"20"`
	Flags               VarianceFlags    `json:"flags"`
}

// VarianceReport is the output of one variance computation. Totals are
// straight sums over the rows, with null planned costs counted as zero.
type VarianceReport struct {
	Season               string          `json:"season,omitempty" example:"2024"`
	Rows                 []VarianceRow   `json:"rows"`
	PlannedTotal         decimal.Decimal `json:"planned_total" example:"1000.00"`
	ActualTotalAllocated decimal.Decimal `json:"actual_total_allocated" example:"1200.00"`
	VarianceTotal        decimal.Decimal `json:"variance_total" example:"200.00"`
	Caveat               string          `json:"caveat"`
}
