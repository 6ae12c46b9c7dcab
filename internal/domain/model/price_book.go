package model

import "github.com/shopspring/decimal"

// PriceBookEntry is one budgeted unit price. Crop and Pass narrow the entry:
// an entry with both set prices exactly one bucket, an entry with neither is
// the product's default price. Lookup picks the most specific match.
type PriceBookEntry struct {
	ProductID string `json:"product_id" example:"prod-glyphosate"`
	Crop      string `json:"crop,omitempty" example:"corn"`
	Pass      string `json:"pass,omitempty" example:"burndown"`
	// Unit is the unit UnitPrice is quoted in. Planned quantities are
	// converted into this unit before pricing.
	Unit      Unit            `json:"unit" example:"gal"`
	UnitPrice decimal.Decimal `json:"unit_price" example:"6.00"`
}

// PriceBook is an ordered list of entries forming one budget version.
type PriceBook []PriceBookEntry

// Lookup returns the most specific entry for a product in a bucket:
// product+crop+pass beats product+crop beats product-only. The second
// return is false when no entry matches at any specificity.
func (pb PriceBook) Lookup(productID, crop, pass string) (PriceBookEntry, bool) {
	var (
		best      PriceBookEntry
		bestScore = -1
	)
	for _, e := range pb {
		if e.ProductID != productID {
			continue
		}
		if e.Crop != "" && e.Crop != crop {
			continue
		}
		if e.Pass != "" && e.Pass != pass {
			continue
		}
		score := 0
		if e.Crop != "" {
			score += 2
		}
		if e.Pass != "" {
			score++
		}
		if score > bestScore {
			best = e
			bestScore = score
		}
	}
	return best, bestScore >= 0
}
