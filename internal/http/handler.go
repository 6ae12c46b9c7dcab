package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agroplan/plan-service/internal/domain/dto"
	"github.com/agroplan/plan-service/internal/domain/model"
	"github.com/agroplan/plan-service/internal/i18n"
	"github.com/agroplan/plan-service/internal/ingest"
	"github.com/agroplan/plan-service/internal/metrics"
	"github.com/agroplan/plan-service/internal/middleware"
	"github.com/agroplan/plan-service/internal/service"
)

// priceBookCache provides thread-safe, per-season caching of the stored
// active price book, so variance requests without an inline book do not hit
// the database on every call.
type priceBookCache struct {
	mu      sync.Mutex
	entries map[string]priceBookCacheEntry
	ttl     time.Duration
}

type priceBookCacheEntry struct {
	book      model.PriceBook
	expiresAt time.Time
}

// newPriceBookCache creates a new price book cache with the given TTL.
func newPriceBookCache(ttl time.Duration) *priceBookCache {
	return &priceBookCache{
		entries: make(map[string]priceBookCacheEntry),
		ttl:     ttl,
	}
}

// get returns the cached book for a season, or (nil, false) when expired or
// absent. A cached nil book is a valid hit: "no stored price book" is
// itself worth caching.
func (c *priceBookCache) get(season string) (model.PriceBook, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[season]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.book, true
}

// set stores a season's book with TTL.
func (c *priceBookCache) set(season string, book model.PriceBook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[season] = priceBookCacheEntry{
		book:      book,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// invalidate clears the cache.
func (c *priceBookCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]priceBookCacheEntry)
}

// Handler provides HTTP handlers for the readiness and variance routes.
type Handler struct {
	evaluator        service.ReadinessEvaluator
	variance         service.VarianceReporter
	priceBookService service.PriceBookService
	priceBookCache   *priceBookCache
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithPriceBookCacheTTL sets the TTL for stored price book caching.
func WithPriceBookCacheTTL(ttl time.Duration) HandlerOption {
	return func(h *Handler) {
		h.priceBookCache = newPriceBookCache(ttl)
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(evaluator service.ReadinessEvaluator, variance service.VarianceReporter, priceBookService service.PriceBookService, opts ...HandlerOption) *Handler {
	h := &Handler{
		evaluator:        evaluator,
		variance:         variance,
		priceBookService: priceBookService,
		priceBookCache:   newPriceBookCache(30 * time.Second), // Default 30s cache
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// storedPriceBook retrieves the season's active price book from cache or
// database. Returns nil when no stored book exists; the variance rows then
// carry the missing-price flag.
func (h *Handler) storedPriceBook(ctx context.Context, season string) model.PriceBook {
	if book, ok := h.priceBookCache.get(season); ok {
		return book
	}

	if h.priceBookService == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	version, err := h.priceBookService.GetActive(ctx, season)
	if err != nil {
		return nil
	}

	var book model.PriceBook
	if version != nil {
		book = version.PriceBook()
	}
	h.priceBookCache.set(season, book)
	return book
}

// InvalidatePriceBookCache invalidates the stored price book cache.
// Call this when a new price book version is published.
func (h *Handler) InvalidatePriceBookCache() {
	h.priceBookCache.invalidate()
}

// decoderFor builds the loose-row decoder, honoring per-request field map
// overrides when present.
func decoderFor(overrides *ingest.FieldOverrides) ingest.Decoder {
	if overrides == nil {
		return ingest.NewDecoder()
	}
	return ingest.NewDecoderWithOverrides(*overrides)
}

// EvaluateReadiness handles POST /api/readiness requests.
//
// @Summary      Evaluate plan readiness
// @Description  Nets every planned usage against on-hand inventory and open order quantity, in the usage's own unit, and classifies each one as READY, ON_ORDER, or BLOCKING with a full contribution trace. Items come back in input order. Supports idempotency via Idempotency-Key header.
// @Tags         Readiness
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.EvaluateReadinessRequest true "Plan and snapshot"
// @Success      200 {object} dto.SuccessResponse "Readiness result"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input or unit family mismatch"
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/readiness [post]
func (h *Handler) EvaluateReadiness(c *gin.Context) {
	h.evaluateReadiness(c, false)
}

// ReadinessSummary handles POST /api/readiness/summary requests.
//
// @Summary      Evaluate plan readiness (counts only)
// @Description  Runs the same evaluation as /api/readiness but returns only the status counts, for dashboard tiles that do not need the per-item breakdown.
// @Tags         Readiness
// @Accept       json
// @Produce      json
// @Param        request body dto.EvaluateReadinessRequest true "Plan and snapshot"
// @Success      200 {object} dto.SuccessResponse "Readiness summary"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input or unit family mismatch"
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/readiness/summary [post]
func (h *Handler) ReadinessSummary(c *gin.Context) {
	h.evaluateReadiness(c, true)
}

func (h *Handler) evaluateReadiness(c *gin.Context, summaryOnly bool) {
	builder := NewResponseBuilder(c)

	var req dto.EvaluateReadinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	if err := req.Validate(); err != nil {
		if _, ok := err.(*dto.ValidationError); ok {
			metrics.RecordReadinessEvaluation(0, "validation_error", 0, 0, 0)
			builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationPlanned, err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	// Audit log (async)
	if loggingService, exists := c.Get("logging_service"); exists {
		if ls, ok := loggingService.(service.LoggingService); ok {
			middleware.AuditLog(ls, c, "evaluate_readiness", "Readiness evaluation requested", map[string]interface{}{
				"planned_count":   len(req.Planned),
				"inventory_count": len(req.Inventory),
				"order_count":     len(req.Orders),
			})
		}
	}

	decoder := decoderFor(req.FieldMap)
	inventory, droppedInv := decoder.InventoryRows(req.Inventory)
	orders, droppedLines := decoder.Orders(req.Orders)

	start := time.Now()
	result, err := h.evaluator.Evaluate(req.Planned, inventory, orders)
	duration := time.Since(start)

	if err != nil {
		// Unit family mismatches are caller errors: the plan asked for a
		// conversion the product's form does not allow.
		if errors.Is(err, service.ErrUnitFamilyMismatch) || errors.Is(err, service.ErrUnknownUnit) || errors.Is(err, service.ErrUnknownUnitFamily) {
			metrics.RecordReadinessEvaluation(duration, "unit_error", 0, 0, 0)
			builder.Error(http.StatusBadRequest, i18n.ErrKeyUnitFamilyMismatch, err)
			return
		}
		metrics.RecordReadinessEvaluation(duration, "error", 0, 0, 0)
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	metrics.RecordReadinessEvaluation(duration, "success", result.ReadyCount, result.OnOrderCount, result.BlockingCount)

	if summaryOnly {
		builder.SuccessOK(result.Summary())
		return
	}

	builder.SuccessOK(dto.ReadinessResponse{
		ReadinessResult:      result,
		DroppedInventoryRows: droppedInv,
		DroppedOrderLines:    droppedLines,
	})
}

// BuildVariance handles POST /api/variance requests.
//
// @Summary      Build cost variance report
// @Description  Allocates each crop's actual invoice cost across its crop/pass buckets in proportion to planned quantity and compares the result to price-book planned cost. The allocation is a proportional estimate, not a traced ledger; the report carries that caveat. Without an inline price book the stored active version for the season is used.
// @Tags         Variance
// @Accept       json
// @Produce      json
// @Param        request body dto.VarianceReportRequest true "Season plan, invoices, and optional price book"
// @Success      200 {object} dto.SuccessResponse "Variance report"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input or unit family mismatch"
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/variance [post]
func (h *Handler) BuildVariance(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.VarianceReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	if err := req.Validate(); err != nil {
		if _, ok := err.(*dto.ValidationError); ok {
			metrics.RecordVarianceReport(0, "validation_error")
			builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationPlanned, err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	priceBook, err := priceBookFromRequest(req.PriceBook)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	if priceBook == nil {
		priceBook = h.storedPriceBook(c.Request.Context(), req.Season)
	}

	if loggingService, exists := c.Get("logging_service"); exists {
		if ls, ok := loggingService.(service.LoggingService); ok {
			middleware.AuditLog(ls, c, "build_variance", "Variance report requested", map[string]interface{}{
				"season":         req.Season,
				"planned_count":  len(req.Planned),
				"invoice_count":  len(req.Invoices),
				"inline_pricing": len(req.PriceBook) > 0,
			})
		}
	}

	decoder := decoderFor(req.FieldMap)
	invoices, droppedLines := decoder.Invoices(req.Invoices)

	start := time.Now()
	report, err := h.variance.BuildVarianceByPass(service.VarianceInput{
		Season:    req.Season,
		Planned:   req.Planned,
		Products:  req.Products,
		Invoices:  invoices,
		PriceBook: priceBook,
	})
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, service.ErrUnitFamilyMismatch) || errors.Is(err, service.ErrUnknownUnit) || errors.Is(err, service.ErrUnknownUnitFamily) {
			metrics.RecordVarianceReport(duration, "unit_error")
			builder.Error(http.StatusBadRequest, i18n.ErrKeyUnitFamilyMismatch, err)
			return
		}
		metrics.RecordVarianceReport(duration, "error")
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	metrics.RecordVarianceReport(duration, "success")
	builder.SuccessOK(dto.VarianceResponse{
		VarianceReport:      report,
		DroppedInvoiceLines: droppedLines,
	})
}
