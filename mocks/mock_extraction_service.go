package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"carte/internal/domain"
)

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) Extract(ctx context.Context, page domain.ImagePayload, language string) (*domain.ParsedMenu, error) {
	args := m.Called(ctx, page, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedMenu), args.Error(1)
}

func (m *MockExtractionService) ExtractPages(ctx context.Context, pages []domain.ImagePayload, language string) (*domain.ParsedMenu, error) {
	args := m.Called(ctx, pages, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedMenu), args.Error(1)
}
