// Package app provides router configuration.
package app

import (
	"github.com/agroplan/plan-service/config"
	"github.com/agroplan/plan-service/internal/http"
	"github.com/agroplan/plan-service/internal/repository"
	"github.com/agroplan/plan-service/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(
	engines *ServiceComponents,
	dbComponents *DatabaseComponents,
	cfg config.Config,
) *RouterComponents {
	var priceBookRepo repository.PriceBookRepositoryInterface
	var loggingService service.LoggingService
	if dbComponents != nil {
		priceBookRepo = dbComponents.PriceBookRepo
		loggingService = dbComponents.LoggingService
	}

	// Initialize price book service
	var priceBookService service.PriceBookService
	if priceBookRepo != nil {
		priceBookService = service.NewPriceBookService(priceBookRepo)
	}

	handler := http.NewHandler(engines.Evaluator, engines.Variance, priceBookService)
	healthHandler := http.NewHealthHandler()

	// Register circuit breakers for health monitoring
	if dbComponents != nil {
		if dbComponents.PriceBookCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_price_book", dbComponents.PriceBookCircuitBreaker)
		}
		if dbComponents.LogsCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_logs", dbComponents.LogsCircuitBreaker)
		}
	}

	// Initialize authentication service
	var authService service.AuthService
	if dbComponents != nil && dbComponents.UserRepo != nil {
		authService = service.NewAuthService(
			dbComponents.UserRepo,
			dbComponents.RoleRepo,
			dbComponents.TokenRepo,
			cfg.Auth,
		)
	}

	// Initialize permission service
	var permissionService service.PermissionService
	if dbComponents != nil && dbComponents.PermissionRepo != nil {
		permissionService = service.NewPermissionService(dbComponents.PermissionRepo)
	}

	// Initialize role service
	var roleService service.RoleService
	if dbComponents != nil && dbComponents.RoleRepo != nil {
		roleService = service.NewRoleService(dbComponents.RoleRepo)
	}

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		EnableAuth:        cfg.Auth.Enabled,
		APIKeys:           cfg.Auth.APIKeys,
		EnableIdempotency: true,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		LoggingService:    loggingService,
		PriceBookService:  priceBookService,
		AuthService:       authService,
		RoleService:       roleService,
		PermissionService: permissionService,
		Evaluator:         engines.Evaluator,
		Variance:          engines.Variance,
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
