package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"carte/internal/port"
)

// MockLanguageModel is a mock implementation of port.LanguageModel.
type MockLanguageModel struct {
	mock.Mock
	ModelName string
}

func (m *MockLanguageModel) Generate(ctx context.Context, input port.GenerateInput) (*port.GenerateOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.GenerateOutput), args.Error(1)
}

func (m *MockLanguageModel) Name() string {
	if m.ModelName == "" {
		return "mock"
	}
	return m.ModelName
}
