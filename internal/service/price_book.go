package service

import (
	"context"
	"errors"

	"github.com/agroplan/plan-service/internal/repository"
)

// ErrRepositoryNotConfigured is returned when the repository is not configured.
var ErrRepositoryNotConfigured = errors.New("repository not configured")

// PriceBookService provides price book versioning operations.
type PriceBookService interface {
	GetActive(ctx context.Context, season string) (*repository.PriceBookVersion, error)
	Publish(ctx context.Context, season string, entries []repository.PriceBookEntryDocument, createdBy, notes string) (*repository.PriceBookVersion, error)
	History(ctx context.Context, season string, limit int) ([]repository.PriceBookVersion, error)
}

// PriceBookServiceImpl implements PriceBookService.
type PriceBookServiceImpl struct {
	priceBookRepo repository.PriceBookRepositoryInterface
}

// NewPriceBookService creates a new price book service.
func NewPriceBookService(priceBookRepo repository.PriceBookRepositoryInterface) PriceBookService {
	if priceBookRepo == nil {
		return &PriceBookServiceImpl{}
	}
	return &PriceBookServiceImpl{
		priceBookRepo: priceBookRepo,
	}
}

func (s *PriceBookServiceImpl) GetActive(ctx context.Context, season string) (*repository.PriceBookVersion, error) {
	if s.priceBookRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.priceBookRepo.GetActive(ctx, season)
}

func (s *PriceBookServiceImpl) Publish(ctx context.Context, season string, entries []repository.PriceBookEntryDocument, createdBy, notes string) (*repository.PriceBookVersion, error) {
	if s.priceBookRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.priceBookRepo.Create(ctx, season, entries, createdBy, notes)
}

func (s *PriceBookServiceImpl) History(ctx context.Context, season string, limit int) ([]repository.PriceBookVersion, error) {
	if s.priceBookRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.priceBookRepo.History(ctx, season, limit)
}
