//go:build !integration

package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/agroplan/plan-service/config"
	"github.com/agroplan/plan-service/internal/mocks"
	"github.com/agroplan/plan-service/internal/service"
)

func testEngines() *ServiceComponents {
	return &ServiceComponents{
		Evaluator: service.NewReadinessService(),
		Variance:  service.NewVarianceService(),
	}
}

func TestInitializeRouter(t *testing.T) {
	tests := []struct {
		name         string
		engines      *ServiceComponents
		dbComponents *DatabaseComponents
		cfg          config.Config
		validate     func(*testing.T, *RouterComponents)
	}{
		{
			name:    "creates router with engines only",
			engines: testEngines(),
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:  100,
					RateWindow: time.Minute,
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components)
				assert.NotNil(t, components.Handler)
				assert.NotNil(t, components.HealthHandler)
				assert.False(t, components.Config.EnableAuth)
				assert.True(t, components.Config.EnableIdempotency)
				assert.Equal(t, 100, components.Config.RateLimit)
			},
		},
		{
			name:    "creates router with auth enabled",
			engines: testEngines(),
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:  50,
					RateWindow: 30 * time.Second,
				},
				Auth: config.AuthConfig{
					Enabled: true,
					APIKeys: map[string]bool{"test-key": true},
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components)
				assert.True(t, components.Config.EnableAuth)
				assert.Equal(t, map[string]bool{"test-key": true}, components.Config.APIKeys)
			},
		},
		{
			name:    "creates router with database components",
			engines: testEngines(),
			dbComponents: &DatabaseComponents{
				PriceBookRepo:           new(mocks.MockPriceBookRepositoryInterface),
				LoggingService:          new(mocks.MockLoggingService),
				PriceBookCircuitBreaker: nil,
				LogsCircuitBreaker:      nil,
			},
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:  10,
					RateWindow: time.Second,
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components)
				assert.NotNil(t, components.Config.PriceBookService)
				assert.NotNil(t, components.Config.LoggingService)
			},
		},
		{
			name:    "creates router with circuit breakers registered",
			engines: testEngines(),
			dbComponents: &DatabaseComponents{
				PriceBookRepo:           new(mocks.MockPriceBookRepositoryInterface),
				LoggingService:          new(mocks.MockLoggingService),
				PriceBookCircuitBreaker: nil, // Using nil since circuit breaker is tested in integration tests
				LogsCircuitBreaker:      nil,
			},
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:  10,
					RateWindow: time.Second,
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components)
				assert.NotNil(t, components.HealthHandler)
			},
		},
		{
			name:         "creates router with nil dbComponents",
			engines:      testEngines(),
			dbComponents: nil,
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:  10,
					RateWindow: time.Second,
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components)
				assert.Nil(t, components.Config.PriceBookService)
				assert.Nil(t, components.Config.LoggingService)
				assert.Nil(t, components.Config.AuthService)
			},
		},
		{
			name:    "creates router with auth service when user repo exists",
			engines: testEngines(),
			dbComponents: &DatabaseComponents{
				UserRepo:      new(mocks.MockUserRepositoryInterface),
				RoleRepo:      new(mocks.MockRoleRepositoryInterface),
				TokenRepo:     new(mocks.MockTokenRepositoryInterface),
				PriceBookRepo: new(mocks.MockPriceBookRepositoryInterface),
			},
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:  10,
					RateWindow: time.Second,
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components)
				assert.NotNil(t, components.Config.AuthService)
			},
		},
		{
			name:    "creates router without auth service when user repo is nil",
			engines: testEngines(),
			dbComponents: &DatabaseComponents{
				UserRepo:      nil,
				PriceBookRepo: new(mocks.MockPriceBookRepositoryInterface),
			},
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:  10,
					RateWindow: time.Second,
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components)
				assert.Nil(t, components.Config.AuthService)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			components := InitializeRouter(tt.engines, tt.dbComponents, tt.cfg)
			if tt.validate != nil {
				tt.validate(t, components)
			}
		})
	}
}
