package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"carte/internal/domain"
	"carte/internal/port"
)

// MockImageArchive is a mock implementation of port.ImageArchive.
type MockImageArchive struct {
	mock.Mock
}

func (m *MockImageArchive) Put(ctx context.Context, key string, img domain.ImagePayload) (*port.StoredObject, error) {
	args := m.Called(ctx, key, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.StoredObject), args.Error(1)
}

func (m *MockImageArchive) Get(ctx context.Context, key string) (*domain.ImagePayload, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImagePayload), args.Error(1)
}

func (m *MockImageArchive) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockImageArchive) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}
