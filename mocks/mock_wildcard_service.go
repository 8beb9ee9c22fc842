package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"carte/internal/service"
)

// MockWildcardService is a mock implementation of service.WildcardService.
type MockWildcardService struct {
	mock.Mock
}

func (m *MockWildcardService) Recommend(ctx context.Context, req service.WildcardRequest) (*service.WildcardResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WildcardResult), args.Error(1)
}
