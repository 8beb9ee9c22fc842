package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"carte/internal/domain"
)

// MockMenuCache is a mock implementation of port.MenuCache.
type MockMenuCache struct {
	mock.Mock
}

func (m *MockMenuCache) Get(ctx context.Context, key string) (*domain.ParsedMenu, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.ParsedMenu), args.Bool(1), args.Error(2)
}

func (m *MockMenuCache) Set(ctx context.Context, key string, menu *domain.ParsedMenu) error {
	args := m.Called(ctx, key, menu)
	return args.Error(0)
}

func (m *MockMenuCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
