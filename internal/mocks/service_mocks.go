// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/agroplan/plan-service/internal/domain/dto"
	"github.com/agroplan/plan-service/internal/domain/model"
	"github.com/agroplan/plan-service/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*dto.TokenPair, *model.User, error) {
	args := m.Called(ctx, email, password)
	var pair *dto.TokenPair
	if args.Get(0) != nil {
		pair = args.Get(0).(*dto.TokenPair)
	}
	var user *model.User
	if args.Get(1) != nil {
		user = args.Get(1).(*model.User)
	}
	return pair, user, args.Error(2)
}

func (m *MockAuthService) Register(ctx context.Context, email, username, password, name string) (*dto.TokenPair, *model.User, error) {
	args := m.Called(ctx, email, username, password, name)
	var pair *dto.TokenPair
	if args.Get(0) != nil {
		pair = args.Get(0).(*dto.TokenPair)
	}
	var user *model.User
	if args.Get(1) != nil {
		user = args.Get(1).(*model.User)
	}
	return pair, user, args.Error(2)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenPair), args.Error(1)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Claims), args.Error(1)
}

func (m *MockAuthService) InvalidateToken(ctx context.Context, tokenString string) error {
	args := m.Called(ctx, tokenString)
	return args.Error(0)
}

func (m *MockAuthService) InvalidateUserTokens(ctx context.Context, userID primitive.ObjectID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	args := m.Called(ctx, accessToken, refreshToken)
	return args.Error(0)
}

type MockLoggingService struct {
	mock.Mock
}

func (m *MockLoggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLoggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLoggingService) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LogEntry), args.Error(1)
}

func (m *MockLoggingService) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}

type MockPermissionService struct {
	mock.Mock
}

func (m *MockPermissionService) GetPermissionIDByResourceAndAction(ctx context.Context, resource, action string) string {
	args := m.Called(ctx, resource, action)
	return args.String(0)
}

type MockRoleService struct {
	mock.Mock
}

func (m *MockRoleService) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleService) FindByIDs(ctx context.Context, ids []string) ([]*model.Role, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Role), args.Error(1)
}

type MockReadinessEvaluator struct {
	mock.Mock
}

func (m *MockReadinessEvaluator) Evaluate(planned []model.PlannedUsage, inventory []model.InventoryRow, orders []model.Order) (model.ReadinessResult, error) {
	args := m.Called(planned, inventory, orders)
	return args.Get(0).(model.ReadinessResult), args.Error(1)
}

type MockVarianceReporter struct {
	mock.Mock
}

func (m *MockVarianceReporter) BuildVarianceByPass(in service.VarianceInput) (model.VarianceReport, error) {
	args := m.Called(in)
	return args.Get(0).(model.VarianceReport), args.Error(1)
}
