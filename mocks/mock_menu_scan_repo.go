package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carte/internal/domain"
)

// MockMenuScanRepo is a mock implementation of port.MenuScanRepository.
type MockMenuScanRepo struct {
	mock.Mock
}

func (m *MockMenuScanRepo) Create(ctx context.Context, scan *domain.MenuScan) error {
	args := m.Called(ctx, scan)
	return args.Error(0)
}

func (m *MockMenuScanRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuScan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuScan), args.Error(1)
}

func (m *MockMenuScanRepo) List(ctx context.Context, offset, limit int) ([]domain.MenuScan, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.MenuScan), args.Int(1), args.Error(2)
}
