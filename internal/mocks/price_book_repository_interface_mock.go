// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/agroplan/plan-service/internal/repository"
)

type MockPriceBookRepositoryInterface struct {
	mock.Mock
}

func (m *MockPriceBookRepositoryInterface) GetActive(ctx context.Context, season string) (*repository.PriceBookVersion, error) {
	args := m.Called(ctx, season)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PriceBookVersion), args.Error(1)
}

func (m *MockPriceBookRepositoryInterface) Create(ctx context.Context, season string, entries []repository.PriceBookEntryDocument, createdBy, notes string) (*repository.PriceBookVersion, error) {
	args := m.Called(ctx, season, entries, createdBy, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PriceBookVersion), args.Error(1)
}

func (m *MockPriceBookRepositoryInterface) History(ctx context.Context, season string, limit int) ([]repository.PriceBookVersion, error) {
	args := m.Called(ctx, season, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PriceBookVersion), args.Error(1)
}
