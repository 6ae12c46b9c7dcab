package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/agroplan/plan-service/internal/domain/dto"
	"github.com/agroplan/plan-service/internal/domain/model"
	"github.com/agroplan/plan-service/internal/middleware"
	"github.com/agroplan/plan-service/internal/repository"
	"github.com/agroplan/plan-service/internal/service"
)

// PriceBookHandler provides HTTP handlers for price book routes.
type PriceBookHandler struct {
	priceBookService service.PriceBookService
	handler          *Handler
}

// NewPriceBookHandler creates a new PriceBookHandler instance. The main
// handler is passed so publishing a new version can drop its cached book.
func NewPriceBookHandler(priceBookService service.PriceBookService, handler *Handler) *PriceBookHandler {
	return &PriceBookHandler{
		priceBookService: priceBookService,
		handler:          handler,
	}
}

// priceBookFromRequest converts submitted entries into the engine's price
// book shape, validating units and prices. A nil slice maps to a nil book.
func priceBookFromRequest(entries []dto.PriceBookEntryRequest) (model.PriceBook, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	book := make(model.PriceBook, 0, len(entries))
	for i, e := range entries {
		unit, err := model.ParseUnit(e.Unit)
		if err != nil {
			return nil, fmt.Errorf("price book entry %d: %w", i, err)
		}
		price, err := decimal.NewFromString(e.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("price book entry %d: invalid unit_price %q", i, e.UnitPrice)
		}
		book = append(book, model.PriceBookEntry{
			ProductID: e.ProductID,
			Crop:      e.Crop,
			Pass:      e.Pass,
			Unit:      unit,
			UnitPrice: price,
		})
	}
	return book, nil
}

// GetActivePriceBook handles GET /api/price-book requests.
//
// @Summary      Get active price book
// @Description  Returns the currently active price book version for a season
// @Tags         Price Book
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        season query string false "Season the price book covers"
// @Success      200 {object} dto.SuccessResponse "Active price book version"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "No active price book found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/price-book [get]
func (h *PriceBookHandler) GetActivePriceBook(c *gin.Context) {
	builder := NewResponseBuilder(c)

	version, err := h.priceBookService.GetActive(c.Request.Context(), c.Query("season"))
	if err != nil {
		builder.Error(http.StatusInternalServerError, dto.ErrCodeInternal, err)
		return
	}

	if version == nil {
		builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, nil)
		return
	}

	builder.SuccessOK(version)
}

// PublishPriceBook handles PUT /api/price-book requests.
//
// @Summary      Publish price book version
// @Description  Publishes a new active price book version for a season, deactivating the previous one. History is kept.
// @Tags         Price Book
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request body dto.PublishPriceBookRequest true "New price book entries"
// @Success      200 {object} dto.SuccessResponse "Published price book version"
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/price-book [put]
func (h *PriceBookHandler) PublishPriceBook(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.PublishPriceBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, err)
		return
	}

	// Validate entries before anything is written.
	book, err := priceBookFromRequest(req.Entries)
	if err != nil {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, err)
		return
	}
	if len(book) == 0 {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, nil)
		return
	}

	createdBy := ""
	if email, exists := c.Get("user_email"); exists {
		createdBy, _ = email.(string)
	}

	version, err := h.priceBookService.Publish(c.Request.Context(), req.Season, repository.EntryDocuments(book), createdBy, req.Notes)
	if err != nil {
		builder.Error(http.StatusInternalServerError, dto.ErrCodeInternal, err)
		return
	}

	if h.handler != nil {
		h.handler.InvalidatePriceBookCache()
	}

	if loggingService, exists := c.Get("logging_service"); exists {
		if ls, ok := loggingService.(service.LoggingService); ok {
			middleware.AuditLog(ls, c, "publish_price_book", "Price book version published", map[string]interface{}{
				"season":      req.Season,
				"entry_count": len(req.Entries),
				"version":     version.Version,
			})
		}
	}

	builder.SuccessOK(version)
}

// PriceBookHistory handles GET /api/price-book/history requests.
//
// @Summary      List price book history
// @Description  Returns the season's price book versions, newest first
// @Tags         Price Book
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        season query string false "Season the price books cover"
// @Param        limit query int false "Limit number of results"
// @Success      200 {object} dto.SuccessResponse "Price book history"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/price-book/history [get]
func (h *PriceBookHandler) PriceBookHistory(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	versions, err := h.priceBookService.History(c.Request.Context(), c.Query("season"), limit)
	if err != nil {
		builder.Error(http.StatusInternalServerError, dto.ErrCodeInternal, err)
		return
	}

	builder.SuccessOK(versions)
}
