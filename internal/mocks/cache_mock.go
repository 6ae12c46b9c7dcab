// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/agroplan/plan-service/internal/domain/model"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key int) (model.ReadinessResult, bool) {
	args := m.Called(key)
	return args.Get(0).(model.ReadinessResult), args.Bool(1)
}

func (m *MockCache) Set(key int, value model.ReadinessResult) {
	m.Called(key, value)
}

func (m *MockCache) Invalidate(key int) {
	m.Called(key)
}

func (m *MockCache) Clear() {
	m.Called()
}

func (m *MockCache) Stop() {
	m.Called()
}
