package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/agroplan/plan-service/internal/domain/dto"
	"github.com/agroplan/plan-service/internal/domain/model"
	"github.com/agroplan/plan-service/internal/mocks"
	"github.com/agroplan/plan-service/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter() *gin.Engine {
	evaluator := service.NewReadinessService()
	variance := service.NewVarianceService()
	handler := NewHandler(evaluator, variance, nil) // nil means the stored price book is disabled
	healthHandler := NewHealthHandler()
	return NewRouter(handler, healthHandler, DefaultRouterConfig())
}

func setupRouterWithMocks() (*gin.Engine, *mocks.MockReadinessEvaluator, *mocks.MockVarianceReporter) {
	evaluator := &mocks.MockReadinessEvaluator{}
	variance := &mocks.MockVarianceReporter{}
	handler := NewHandler(evaluator, variance, nil)
	healthHandler := NewHealthHandler()
	return NewRouter(handler, healthHandler, DefaultRouterConfig()), evaluator, variance
}

func TestEvaluateReadiness(t *testing.T) {
	router := setupRouter()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "covered by inventory",
			body: `{
				"planned": [{"id": "usage-001", "product_id": "prod-glyphosate", "required_qty": 100, "unit": "gal", "form": "liquid", "crop": "corn", "pass": "burndown"}],
				"inventory": [{"product_id": "prod-glyphosate", "qty": 150, "unit": "gal"}]
			}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp dto.SuccessResponse
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				assert.NoError(t, err)
				assert.NotEmpty(t, resp.RequestID)
				assert.NotZero(t, resp.Timestamp)

				// Unmarshal data field
				dataBytes, _ := json.Marshal(resp.Data)
				var result dto.ReadinessResponse
				err = json.Unmarshal(dataBytes, &result)
				assert.NoError(t, err)
				assert.Len(t, result.Items, 1)
				assert.Equal(t, model.StatusReady, result.Items[0].Status)
				assert.Equal(t, float64(150), result.Items[0].OnHandQty)
				assert.Equal(t, 1, result.ReadyCount)
				assert.Equal(t, 1, result.TotalCount)
				assert.Zero(t, result.DroppedInventoryRows)
			},
		},
		{
			name: "deficit covered by open order",
			body: `{
				"planned": [{"id": "usage-001", "product_id": "prod-glyphosate", "required_qty": 100, "unit": "gal", "form": "liquid"}],
				"inventory": [{"product_id": "prod-glyphosate", "quantity": 40, "unit": "gal"}],
				"orders": [{"order_id": "po-1180", "status": "submitted", "lines": [{"product_id": "prod-glyphosate", "remaining_qty": 80, "unit": "gal"}]}]
			}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp dto.SuccessResponse
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				assert.NoError(t, err)

				dataBytes, _ := json.Marshal(resp.Data)
				var result dto.ReadinessResponse
				err = json.Unmarshal(dataBytes, &result)
				assert.NoError(t, err)
				assert.Len(t, result.Items, 1)
				assert.Equal(t, model.StatusOnOrder, result.Items[0].Status)
				assert.Equal(t, float64(80), result.Items[0].OnOrderQty)
				assert.Equal(t, float64(60), result.Items[0].Explain.Deficit)
				assert.Len(t, result.Items[0].Explain.Orders, 1)
				assert.Equal(t, "po-1180", result.Items[0].Explain.Orders[0].OrderID)
			},
		},
		{
			name: "inventory in a different unit of the same family",
			body: `{
				"planned": [{"id": "usage-001", "product_id": "prod-glyphosate", "required_qty": 100, "unit": "gal", "form": "liquid"}],
				"inventory": [{"product_id": "prod-glyphosate", "qty": 400, "unit": "qt"}]
			}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp dto.SuccessResponse
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				assert.NoError(t, err)

				dataBytes, _ := json.Marshal(resp.Data)
				var result dto.ReadinessResponse
				err = json.Unmarshal(dataBytes, &result)
				assert.NoError(t, err)
				assert.Equal(t, model.StatusReady, result.Items[0].Status)
				assert.InDelta(t, 100, result.Items[0].OnHandQty, 1e-9)
			},
		},
		{
			name: "malformed inventory rows are dropped and counted",
			body: `{
				"planned": [{"id": "usage-001", "product_id": "prod-glyphosate", "required_qty": 100, "unit": "gal", "form": "liquid"}],
				"inventory": [
					{"product_id": "prod-glyphosate", "qty": 150, "unit": "gal"},
					{"qty": 75, "unit": "gal"},
					{"product_id": "prod-glyphosate", "qty": 10, "unit": "crates"}
				]
			}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp dto.SuccessResponse
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				assert.NoError(t, err)

				dataBytes, _ := json.Marshal(resp.Data)
				var result dto.ReadinessResponse
				err = json.Unmarshal(dataBytes, &result)
				assert.NoError(t, err)
				assert.Equal(t, 2, result.DroppedInventoryRows)
				assert.Equal(t, float64(150), result.Items[0].OnHandQty)
			},
		},
		{
			name: "field map override for an odd source schema",
			body: `{
				"planned": [{"id": "usage-001", "product_id": "prod-glyphosate", "required_qty": 100, "unit": "gal", "form": "liquid"}],
				"inventory": [{"sku": "prod-glyphosate", "on_hand": 120, "unit": "gal"}],
				"field_map": {"inventory": {"product_id": ["sku"], "quantity": ["on_hand"]}}
			}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp dto.SuccessResponse
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				assert.NoError(t, err)

				dataBytes, _ := json.Marshal(resp.Data)
				var result dto.ReadinessResponse
				err = json.Unmarshal(dataBytes, &result)
				assert.NoError(t, err)
				assert.Equal(t, model.StatusReady, result.Items[0].Status)
				assert.Equal(t, float64(120), result.Items[0].OnHandQty)
			},
		},
		{
			name: "no inventory or orders is blocking not an error",
			body: `{
				"planned": [{"id": "usage-001", "product_id": "prod-glyphosate", "required_qty": 100, "unit": "gal", "form": "liquid"}]
			}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp dto.SuccessResponse
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				assert.NoError(t, err)

				dataBytes, _ := json.Marshal(resp.Data)
				var result dto.ReadinessResponse
				err = json.Unmarshal(dataBytes, &result)
				assert.NoError(t, err)
				assert.Equal(t, model.StatusBlocking, result.Items[0].Status)
				assert.Equal(t, 1, result.BlockingCount)
			},
		},
		{
			name:           "invalid JSON",
			body:           `invalid`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing planned",
			body:           `{"inventory": []}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty planned",
			body:           `{"planned": []}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "planned unit outside the product's family",
			body: `{
				"planned": [{"id": "usage-001", "product_id": "prod-glyphosate", "required_qty": 100, "unit": "lbs", "form": "liquid"}]
			}`,
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp dto.ErrorResponse
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				assert.NoError(t, err)
				assert.Equal(t, dto.ErrCodeInvalidRequest, resp.Error)
			},
		},
		{
			name: "unknown unit family",
			body: `{
				"planned": [{"id": "usage-001", "product_id": "prod-lime", "required_qty": 1, "unit": "ton", "form": "gaseous"}]
			}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/readiness", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestReadinessSummary(t *testing.T) {
	router := setupRouter()

	body := `{
		"planned": [
			{"id": "usage-a", "product_id": "prod-glyphosate", "required_qty": 100, "unit": "gal", "form": "liquid"},
			{"id": "usage-b", "product_id": "prod-urea", "required_qty": 2, "unit": "ton", "form": "dry"}
		],
		"inventory": [{"product_id": "prod-glyphosate", "qty": 150, "unit": "gal"}]
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/readiness/summary", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.SuccessResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)

	dataBytes, _ := json.Marshal(resp.Data)
	var summary model.ReadinessSummary
	err = json.Unmarshal(dataBytes, &summary)
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.ReadyCount)
	assert.Equal(t, 1, summary.BlockingCount)
	assert.Equal(t, 2, summary.TotalCount)

	// The summary payload carries counts only, never the item list.
	data, ok := resp.Data.(map[string]interface{})
	assert.True(t, ok)
	assert.NotContains(t, data, "items")
}

func TestBuildVariance(t *testing.T) {
	router := setupRouter()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "proportional allocation with inline price book",
			body: `{
				"season": "2024",
				"planned": [
					{"id": "usage-a", "product_id": "prod-glyphosate", "required_qty": 60, "unit": "gal", "form": "liquid", "crop": "corn", "pass": "burndown"},
					{"id": "usage-b", "product_id": "prod-glyphosate", "required_qty": 40, "unit": "gal", "form": "liquid", "crop": "corn", "pass": "post-emerge"}
				],
				"invoices": [{"invoice_id": "inv-1", "lines": [{"product_id": "prod-glyphosate", "total": "1200.00"}]}],
				"price_book": [{"product_id": "prod-glyphosate", "unit": "gal", "unit_price": "10.00"}]
			}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp dto.SuccessResponse
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				assert.NoError(t, err)

				dataBytes, _ := json.Marshal(resp.Data)
				var report dto.VarianceResponse
				err = json.Unmarshal(dataBytes, &report)
				assert.NoError(t, err)
				assert.Equal(t, "2024", report.Season)
				assert.Len(t, report.Rows, 2)

				first := report.Rows[0]
				assert.Equal(t, "corn", first.Crop)
				assert.Equal(t, "burndown", first.Pass)
				assert.True(t, first.ActualCostAllocated.Equal(decimal.RequireFromString("720")))
				assert.NotNil(t, first.PlannedCost)
				assert.True(t, first.PlannedCost.Equal(decimal.RequireFromString("600")))
				assert.NotNil(t, first.Variance)
				assert.True(t, first.Variance.Equal(decimal.RequireFromString("120")))

				second := report.Rows[1]
				assert.True(t, second.ActualCostAllocated.Equal(decimal.RequireFromString("480")))

				assert.True(t, report.PlannedTotal.Equal(decimal.RequireFromString("1000")))
				assert.True(t, report.ActualTotalAllocated.Equal(decimal.RequireFromString("1200")))
				assert.True(t, report.VarianceTotal.Equal(decimal.RequireFromString("200")))
				assert.Equal(t, model.VarianceCaveat, report.Caveat)
				assert.Zero(t, report.DroppedInvoiceLines)
			},
		},
		{
			name: "no price book flags rows instead of failing",
			body: `{
				"season": "2024",
				"planned": [{"id": "usage-a", "product_id": "prod-glyphosate", "required_qty": 60, "unit": "gal", "form": "liquid", "crop": "corn", "pass": "burndown"}],
				"invoices": [{"invoice_id": "inv-1", "lines": [{"product_id": "prod-glyphosate", "total": 1200}]}]
			}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp dto.SuccessResponse
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				assert.NoError(t, err)

				dataBytes, _ := json.Marshal(resp.Data)
				var report dto.VarianceResponse
				err = json.Unmarshal(dataBytes, &report)
				assert.NoError(t, err)
				assert.Len(t, report.Rows, 1)
				assert.Nil(t, report.Rows[0].PlannedCost)
				assert.Nil(t, report.Rows[0].Variance)
				assert.True(t, report.Rows[0].Flags.MissingPlannedPrice)
				assert.True(t, report.VarianceTotal.Equal(decimal.RequireFromString("1200")))
			},
		},
		{
			name: "no invoices flags rows",
			body: `{
				"planned": [{"id": "usage-a", "product_id": "prod-glyphosate", "required_qty": 60, "unit": "gal", "form": "liquid", "crop": "corn", "pass": "burndown"}],
				"price_book": [{"product_id": "prod-glyphosate", "unit": "gal", "unit_price": "10.00"}]
			}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp dto.SuccessResponse
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				assert.NoError(t, err)

				dataBytes, _ := json.Marshal(resp.Data)
				var report dto.VarianceResponse
				err = json.Unmarshal(dataBytes, &report)
				assert.NoError(t, err)
				assert.True(t, report.Rows[0].Flags.NoInvoices)
				assert.True(t, report.Rows[0].ActualCostAllocated.IsZero())
			},
		},
		{
			name: "malformed invoice lines are dropped and counted",
			body: `{
				"planned": [{"id": "usage-a", "product_id": "prod-glyphosate", "required_qty": 60, "unit": "gal", "form": "liquid", "crop": "corn", "pass": "burndown"}],
				"invoices": [{"invoice_id": "inv-1", "lines": [
					{"product_id": "prod-glyphosate", "total": "600.00"},
					{"product_id": "prod-glyphosate", "total": "about a thousand"}
				]}]
			}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp dto.SuccessResponse
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				assert.NoError(t, err)

				dataBytes, _ := json.Marshal(resp.Data)
				var report dto.VarianceResponse
				err = json.Unmarshal(dataBytes, &report)
				assert.NoError(t, err)
				assert.Equal(t, 1, report.DroppedInvoiceLines)
				assert.True(t, report.ActualTotalAllocated.Equal(decimal.RequireFromString("600")))
			},
		},
		{
			name:           "invalid JSON",
			body:           `invalid`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing planned",
			body:           `{"season": "2024", "invoices": []}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "price book entry with a malformed price",
			body: `{
				"planned": [{"id": "usage-a", "product_id": "prod-glyphosate", "required_qty": 60, "unit": "gal", "form": "liquid"}],
				"price_book": [{"product_id": "prod-glyphosate", "unit": "gal", "unit_price": "ten dollars"}]
			}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "price book unit outside the product's family",
			body: `{
				"planned": [{"id": "usage-a", "product_id": "prod-glyphosate", "required_qty": 60, "unit": "gal", "form": "liquid", "crop": "corn", "pass": "burndown"}],
				"invoices": [{"invoice_id": "inv-1", "lines": [{"product_id": "prod-glyphosate", "total": 600}]}],
				"price_book": [{"product_id": "prod-glyphosate", "unit": "ton", "unit_price": "10.00"}]
			}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/variance", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestEvaluateReadiness_WithMock(t *testing.T) {
	router, evaluator, _ := setupRouterWithMocks()

	result := model.ReadinessResult{
		Items: []model.ReadinessItem{
			{UsageID: "usage-001", ProductID: "prod-glyphosate", Status: model.StatusReady},
		},
		ReadyCount: 1,
		TotalCount: 1,
	}
	evaluator.On("Evaluate", mock.Anything, mock.Anything, mock.Anything).Return(result, nil)

	body := `{"planned": [{"id": "usage-001", "product_id": "prod-glyphosate", "required_qty": 100, "unit": "gal", "form": "liquid"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/readiness", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	evaluator.AssertExpectations(t)
}

func TestEvaluateReadiness_EvaluatorError(t *testing.T) {
	router, evaluator, _ := setupRouterWithMocks()

	evaluator.On("Evaluate", mock.Anything, mock.Anything, mock.Anything).
		Return(model.ReadinessResult{}, errors.New("snapshot store unavailable"))

	body := `{"planned": [{"id": "usage-001", "product_id": "prod-glyphosate", "required_qty": 100, "unit": "gal", "form": "liquid"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/readiness", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, dto.ErrCodeInternal, resp.Error)
}

func TestBuildVariance_WithMock(t *testing.T) {
	router, _, variance := setupRouterWithMocks()

	report := model.VarianceReport{
		Season: "2024",
		Rows:   []model.VarianceRow{},
		Caveat: model.VarianceCaveat,
	}
	variance.On("BuildVarianceByPass", mock.MatchedBy(func(in service.VarianceInput) bool {
		return in.Season == "2024" && len(in.Planned) == 1
	})).Return(report, nil)

	body := `{"season": "2024", "planned": [{"id": "usage-a", "product_id": "prod-glyphosate", "required_qty": 60, "unit": "gal", "form": "liquid"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/variance", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	variance.AssertExpectations(t)
}

func TestHealthEndpoints(t *testing.T) {
	router := setupRouter()

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "liveness probe",
			path:           "/healthz",
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"ok"`,
		},
		{
			name:           "readiness probe",
			path:           "/readyz",
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"ok"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func BenchmarkHandler(b *testing.B) {
	router := setupRouter()
	body := []byte(`{
		"planned": [{"id": "usage-001", "product_id": "prod-glyphosate", "required_qty": 100, "unit": "gal", "form": "liquid"}],
		"inventory": [{"product_id": "prod-glyphosate", "qty": 40, "unit": "gal"}],
		"orders": [{"order_id": "po-1180", "status": "submitted", "lines": [{"product_id": "prod-glyphosate", "remaining_qty": 80, "unit": "gal"}]}]
	}`)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/readiness", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}
