// Package app provides service initialization.
package app

import (
	"github.com/agroplan/plan-service/config"
	"github.com/agroplan/plan-service/internal/service"
)

// ServiceComponents holds the engine services.
type ServiceComponents struct {
	Evaluator service.ReadinessEvaluator
	Variance  service.VarianceReporter
}

// InitializeServices initializes the readiness and variance engines.
func InitializeServices(cfg config.CacheConfig) *ServiceComponents {
	var opts []service.ReadinessOption

	if cfg.Size > 0 {
		opts = append(opts, service.WithReadinessCache(cfg.Size, cfg.TTL, cfg.Shards))
	}

	return &ServiceComponents{
		Evaluator: service.NewReadinessService(opts...),
		Variance:  service.NewVarianceService(),
	}
}
