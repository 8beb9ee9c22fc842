package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carte/internal/domain"
	"carte/internal/service"
)

// MockScanService is a mock implementation of service.ScanService.
type MockScanService struct {
	mock.Mock
}

func (m *MockScanService) Archive(ctx context.Context, pages []domain.ImagePayload, menu *domain.ParsedMenu, language string) (*domain.MenuScan, error) {
	args := m.Called(ctx, pages, menu, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuScan), args.Error(1)
}

func (m *MockScanService) GetByID(ctx context.Context, id uuid.UUID) (*service.ScanView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScanView), args.Error(1)
}

func (m *MockScanService) List(ctx context.Context, offset, limit int) ([]domain.MenuScan, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.MenuScan), args.Int(1), args.Error(2)
}

func (m *MockScanService) Retranslate(ctx context.Context, id uuid.UUID, language string) (*domain.MenuScan, *domain.ParsedMenu, error) {
	args := m.Called(ctx, id, language)
	var scan *domain.MenuScan
	if v := args.Get(0); v != nil {
		scan = v.(*domain.MenuScan)
	}
	var menu *domain.ParsedMenu
	if v := args.Get(1); v != nil {
		menu = v.(*domain.ParsedMenu)
	}
	return scan, menu, args.Error(2)
}
