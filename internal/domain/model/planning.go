// Package model defines the domain entities for plan readiness and cost allocation.
package model

// Product is the catalog entry a planned usage points at. The form decides
// which unit family every quantity for this product is measured in.
type Product struct {
	ID   string     `json:"id" example:"prod-glyphosate"`
	Name string     `json:"name" example:"Glyphosate 41%"`
	Form UnitFamily `json:"form" example:"liquid"`
}

// PlannedUsage is one row of required input: a product a crop plan intends to
// apply, with the quantity and unit it was planned in. Immutable input to a
// readiness or variance run; produced upstream by the crop planner.
type PlannedUsage struct {
	ID        string `json:"id" example:"usage-001"`
	Label     string `json:"label" example:"Burndown herbicide"`
	ProductID string `json:"product_id" example:"prod-glyphosate"`
	// RequiredQty is expressed in Unit. Results are reported back in the
	// same unit so callers never re-convert.
	RequiredQty float64    `json:"required_qty" example:"100"`
	Unit        Unit       `json:"unit" example:"gal"`
	Form        UnitFamily `json:"form" example:"liquid"`
	// Crop and Pass name the bucket this usage belongs to in variance
	// reports. Window is free-form timing context ("early June").
	Crop   string `json:"crop,omitempty" example:"corn"`
	Pass   string `json:"pass,omitempty" example:"burndown"`
	Window string `json:"window,omitempty" example:"early June"`
}

// Bucket returns the (crop, pass) key this usage is aggregated under.
func (u PlannedUsage) Bucket() BucketKey {
	return BucketKey{Crop: u.Crop, Pass: u.Pass}
}

// BucketKey identifies one crop/pass allocation bucket.
type BucketKey struct {
	Crop string `json:"crop"`
	Pass string `json:"pass"`
}
