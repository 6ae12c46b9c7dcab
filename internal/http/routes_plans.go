package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agroplan/plan-service/internal/middleware"
	"github.com/agroplan/plan-service/internal/service"
)

// PlanRoutes handles readiness, variance, and price book route registration.
type PlanRoutes struct {
	handler          *Handler
	priceBookHandler *PriceBookHandler
}

// NewPlanRoutes creates a new PlanRoutes instance.
func NewPlanRoutes(handler *Handler, priceBookService service.PriceBookService) *PlanRoutes {
	var priceBookHandler *PriceBookHandler
	if priceBookService != nil {
		priceBookHandler = NewPriceBookHandler(priceBookService, handler)
	}

	return &PlanRoutes{
		handler:          handler,
		priceBookHandler: priceBookHandler,
	}
}

// RegisterPublicRoutes registers public plan routes (when auth is disabled).
func (r *PlanRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/readiness", r.handler.EvaluateReadiness)
	rg.POST("/readiness/summary", r.handler.ReadinessSummary)
	rg.POST("/variance", r.handler.BuildVariance)

	if r.priceBookHandler != nil {
		rg.GET("/price-book", r.priceBookHandler.GetActivePriceBook)
		rg.PUT("/price-book", r.priceBookHandler.PublishPriceBook)
		rg.GET("/price-book/history", r.priceBookHandler.PriceBookHistory)
	}
}

// RegisterProtectedRoutes registers protected plan routes (when auth is enabled).
func (r *PlanRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup, cfg *RouterConfig) {
	// Get permission IDs for authorization
	perms := r.getPermissionIDs(cfg)

	// Helper to create authorization middleware
	authMiddleware := func(permID string) []gin.HandlerFunc {
		if permID != "" && cfg.RoleService != nil && cfg.PermissionService != nil {
			return []gin.HandlerFunc{
				middleware.RequireAuthorization(middleware.AuthorizationConfig{
					RequiredPermissions: []string{permID},
				}, cfg.RoleService, cfg.PermissionService),
			}
		}
		return nil
	}

	// Readiness and variance are read-level plan operations: they compute
	// over snapshots and never write.
	if readAuth := authMiddleware(perms.plansRead); readAuth != nil {
		protected.POST("/readiness", append(readAuth, r.handler.EvaluateReadiness)...)
		protected.POST("/readiness/summary", append(readAuth, r.handler.ReadinessSummary)...)
		protected.POST("/variance", append(readAuth, r.handler.BuildVariance)...)
	} else {
		protected.POST("/readiness", r.handler.EvaluateReadiness)
		protected.POST("/readiness/summary", r.handler.ReadinessSummary)
		protected.POST("/variance", r.handler.BuildVariance)
	}

	// Register price book endpoints if service is available
	if r.priceBookHandler != nil {
		r.registerPriceBookRoutes(protected, authMiddleware, perms)
	}
}

// planPermissionIDs holds the resolved permission document IDs.
type planPermissionIDs struct {
	plansRead      string
	priceBookRead  string
	priceBookWrite string
}

// registerPriceBookRoutes registers price book endpoints with optional authorization.
func (r *PlanRoutes) registerPriceBookRoutes(
	protected *gin.RouterGroup,
	authMiddleware func(string) []gin.HandlerFunc,
	perms planPermissionIDs,
) {
	// GET /price-book
	if readAuth := authMiddleware(perms.priceBookRead); readAuth != nil {
		protected.GET("/price-book", append(readAuth, r.priceBookHandler.GetActivePriceBook)...)
		protected.GET("/price-book/history", append(readAuth, r.priceBookHandler.PriceBookHistory)...)
	} else {
		protected.GET("/price-book", r.priceBookHandler.GetActivePriceBook)
		protected.GET("/price-book/history", r.priceBookHandler.PriceBookHistory)
	}

	// PUT /price-book
	if writeAuth := authMiddleware(perms.priceBookWrite); writeAuth != nil {
		protected.PUT("/price-book", append(writeAuth, r.priceBookHandler.PublishPriceBook)...)
	} else {
		protected.PUT("/price-book", r.priceBookHandler.PublishPriceBook)
	}
}

// getPermissionIDs fetches permission IDs from the permission service.
func (r *PlanRoutes) getPermissionIDs(cfg *RouterConfig) planPermissionIDs {
	if cfg.PermissionService == nil {
		return planPermissionIDs{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return planPermissionIDs{
		plansRead:      cfg.PermissionService.GetPermissionIDByResourceAndAction(ctx, "plans", "read"),
		priceBookRead:  cfg.PermissionService.GetPermissionIDByResourceAndAction(ctx, "price_book", "read"),
		priceBookWrite: cfg.PermissionService.GetPermissionIDByResourceAndAction(ctx, "price_book", "write"),
	}
}

// GetHandler returns the underlying plan handler.
func (r *PlanRoutes) GetHandler() *Handler {
	return r.handler
}
