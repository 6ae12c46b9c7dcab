// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"github.com/agroplan/plan-service/internal/domain/model"
	"github.com/agroplan/plan-service/internal/ingest"
)

// EvaluateReadinessRequest represents the JSON request body for the readiness endpoints.
//
// Planned usages are fully typed; inventory and orders arrive as loose rows
// the way the upstream farm systems export them and are decoded through the
// ingest field maps. FieldMap overrides let an odd source be mapped per
// request without losing the default fallbacks.
//
// @Description Request to evaluate plan readiness against an inventory/order snapshot
type EvaluateReadinessRequest struct {
	// Planned is the list of planned usages to evaluate. Required and non-empty.
	Planned []model.PlannedUsage `json:"planned" binding:"required,min=1"`
	// Inventory is the loose on-hand inventory snapshot.
	Inventory []map[string]any `json:"inventory"`
	// Orders is the loose purchase-order snapshot, lines embedded.
	Orders []map[string]any `json:"orders"`
	// FieldMap optionally overrides the field-name candidates used to decode
	// the loose rows.
	FieldMap *ingest.FieldOverrides `json:"field_map,omitempty"`
} // @name EvaluateReadinessRequest

// VarianceReportRequest represents the JSON request body for the variance endpoint.
//
// @Description Request to build a cost variance report for one season's plan
type VarianceReportRequest struct {
	// Season labels the report ("2024"). Also selects the stored price book
	// when no inline price book is given.
	Season string `json:"season,omitempty" example:"2024"`
	// Planned is the season's planned usages. Required and non-empty.
	Planned []model.PlannedUsage `json:"planned" binding:"required,min=1"`
	// Products names the products referenced by the plan, for display.
	Products []model.Product `json:"products,omitempty"`
	// Invoices is the loose invoice snapshot, lines embedded.
	Invoices []map[string]any `json:"invoices"`
	// PriceBook optionally supplies planned unit prices inline, overriding
	// the stored active version for the season.
	PriceBook []PriceBookEntryRequest `json:"price_book,omitempty"`
	// FieldMap optionally overrides the field-name candidates used to decode
	// the loose rows.
	FieldMap *ingest.FieldOverrides `json:"field_map,omitempty"`
} // @name VarianceReportRequest

// PriceBookEntryRequest is one budgeted unit price as submitted.
type PriceBookEntryRequest struct {
	ProductID string `json:"product_id" binding:"required" example:"prod-glyphosate"`
	Crop      string `json:"crop,omitempty" example:"corn"`
	Pass      string `json:"pass,omitempty" example:"burndown"`
	// Unit is the unit the price is quoted in, from the closed unit set.
	Unit string `json:"unit" binding:"required" example:"gal"`
	// UnitPrice is a decimal string, never a float, so submitted money
	// survives exactly.
	UnitPrice string `json:"unit_price" binding:"required" example:"6.00"`
} // @name PriceBookEntryRequest

// PublishPriceBookRequest represents the JSON request body for publishing a
// new active price book version.
type PublishPriceBookRequest struct {
	Season string `json:"season,omitempty" example:"2024"`
	// Entries is the full entry list of the new version. Required and non-empty.
	Entries []PriceBookEntryRequest `json:"entries" binding:"required,min=1"`
	// Notes is free-form context for the history view.
	Notes string `json:"notes,omitempty"`
} // @name PublishPriceBookRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

var (
	// ErrMissingPlanned is returned when a request carries no planned usages.
	ErrMissingPlanned = &ValidationError{
		Field:   "planned",
		Message: "must contain at least one planned usage",
	}
)

// Validate performs custom validation on the request.
// Returns an error if validation fails, nil otherwise.
func (r *EvaluateReadinessRequest) Validate() error {
	if len(r.Planned) == 0 {
		return ErrMissingPlanned
	}
	return nil
}

// Validate performs custom validation on the request.
func (r *VarianceReportRequest) Validate() error {
	if len(r.Planned) == 0 {
		return ErrMissingPlanned
	}
	return nil
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
