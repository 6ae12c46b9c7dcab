package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is an actually-incurred bill from a vendor, carrying the line
// items whose totals get allocated back onto plan buckets.
type Invoice struct {
	ID     string        `json:"id" example:"inv-2024-118"`
	Vendor string        `json:"vendor,omitempty" example:"Heartland Ag Supply"`
	Date   *time.Time    `json:"date,omitempty"`
	Lines  []InvoiceLine `json:"lines"`
}

// InvoiceLine is one billed line. LineTotal is the money amount used for
// allocation; quantity and unit are descriptive and not re-priced here.
type InvoiceLine struct {
	ProductID   string          `json:"product_id" example:"prod-glyphosate"`
	Description string          `json:"description,omitempty" example:"Glyphosate 41% tote"`
	Quantity    float64         `json:"quantity,omitempty" example:"250"`
	Unit        Unit            `json:"unit,omitempty" example:"gal"`
	LineTotal   decimal.Decimal `json:"line_total" example:"1200.00"`
}
