// Package repository provides circuit breaker wrappers for MongoDB operations.
package repository

import (
	"context"

	"github.com/agroplan/plan-service/internal/circuitbreaker"
)

// PriceBookRepositoryWithCircuitBreaker wraps PriceBookRepository with circuit breaker protection.
type PriceBookRepositoryWithCircuitBreaker struct {
	repo           *PriceBookRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewPriceBookRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewPriceBookRepositoryWithCircuitBreaker(repo *PriceBookRepository, cb *circuitbreaker.CircuitBreaker) *PriceBookRepositoryWithCircuitBreaker {
	return &PriceBookRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// GetActive returns the active price book version with circuit breaker protection.
func (r *PriceBookRepositoryWithCircuitBreaker) GetActive(ctx context.Context, season string) (*PriceBookVersion, error) {
	var result *PriceBookVersion
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.GetActive(ctx, season)
		return cbErr
	})
	if err == circuitbreaker.ErrCircuitOpen {
		// Circuit is open - report no stored price book; variance rows then
		// carry the missing-price flag instead of failing the report
		return nil, nil
	}
	return result, err
}

// Create publishes a new price book version with circuit breaker protection.
func (r *PriceBookRepositoryWithCircuitBreaker) Create(ctx context.Context, season string, entries []PriceBookEntryDocument, createdBy, notes string) (*PriceBookVersion, error) {
	var result *PriceBookVersion
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Create(ctx, season, entries, createdBy, notes)
		return cbErr
	})
	return result, err
}

// History returns price book versions with circuit breaker protection.
func (r *PriceBookRepositoryWithCircuitBreaker) History(ctx context.Context, season string, limit int) ([]PriceBookVersion, error) {
	var result []PriceBookVersion
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.History(ctx, season, limit)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *PriceBookRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps LogsRepository with circuit breaker protection.
type LogsRepositoryWithCircuitBreaker struct {
	repo           *LogsRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo *LogsRepository, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a single log entry with circuit breaker protection.
// If circuit is open, silently fails (logging is non-critical).
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		// Circuit is open - silently fail (logging is non-critical)
		return nil
	}
	return err
}

// CreateMany stores multiple log entries with circuit breaker protection.
// If circuit is open, silently fails (logging is non-critical).
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		// Circuit is open - silently fail (logging is non-critical)
		return nil
	}
	return err
}

// Query retrieves log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	var result []*LogEntryDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns the count of log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
