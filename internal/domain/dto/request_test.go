package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/agroplan/plan-service/internal/domain/model"
)

func TestEvaluateReadinessRequest_Validate(t *testing.T) {
	tests := []struct {
		name          string
		request       EvaluateReadinessRequest
		expectedError bool
	}{
		{
			name: "valid request",
			request: EvaluateReadinessRequest{
				Planned: []model.PlannedUsage{
					{ID: "usage-001", ProductID: "prod-glyphosate", RequiredQty: 100, Unit: model.UnitGallon, Form: model.FamilyLiquid},
				},
			},
			expectedError: false,
		},
		{
			name:          "nil planned",
			request:       EvaluateReadinessRequest{},
			expectedError: true,
		},
		{
			name: "empty planned",
			request: EvaluateReadinessRequest{
				Planned: []model.PlannedUsage{},
			},
			expectedError: true,
		},
		{
			name: "planned with loose snapshots",
			request: EvaluateReadinessRequest{
				Planned: []model.PlannedUsage{
					{ID: "usage-001", ProductID: "prod-glyphosate", RequiredQty: 100, Unit: model.UnitGallon, Form: model.FamilyLiquid},
				},
				Inventory: []map[string]any{{"productId": "prod-glyphosate", "qty": 150.0}},
				Orders:    []map[string]any{{"id": "po-1180", "status": "submitted"}},
			},
			expectedError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.expectedError {
				assert.Error(t, err)
				assert.Equal(t, ErrMissingPlanned, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVarianceReportRequest_Validate(t *testing.T) {
	tests := []struct {
		name          string
		request       VarianceReportRequest
		expectedError bool
	}{
		{
			name: "valid request",
			request: VarianceReportRequest{
				Season: "2024",
				Planned: []model.PlannedUsage{
					{ID: "usage-001", ProductID: "prod-glyphosate", RequiredQty: 60, Unit: model.UnitGallon, Form: model.FamilyLiquid},
				},
			},
			expectedError: false,
		},
		{
			name: "missing planned",
			request: VarianceReportRequest{
				Season:   "2024",
				Invoices: []map[string]any{{"vendor": "Heartland Ag Supply"}},
			},
			expectedError: true,
		},
		{
			name: "inline price book without season",
			request: VarianceReportRequest{
				Planned: []model.PlannedUsage{
					{ID: "usage-001", ProductID: "prod-glyphosate", RequiredQty: 60, Unit: model.UnitGallon, Form: model.FamilyLiquid},
				},
				PriceBook: []PriceBookEntryRequest{
					{ProductID: "prod-glyphosate", Unit: "gal", UnitPrice: "10.00"},
				},
			},
			expectedError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.expectedError {
				assert.Error(t, err)
				assert.Equal(t, ErrMissingPlanned, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name          string
		validationErr *ValidationError
		expected      string
	}{
		{
			name: "validation error message format",
			validationErr: &ValidationError{
				Field:   "planned",
				Message: "must contain at least one planned usage",
			},
			expected: "planned: must contain at least one planned usage",
		},
		{
			name: "validation error with different field",
			validationErr: &ValidationError{
				Field:   "email",
				Message: "invalid format",
			},
			expected: "email: invalid format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.validationErr.Error())
		})
	}
}
