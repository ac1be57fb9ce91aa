package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/takerupon/ai-ocr-test/internal/domain"
	"github.com/takerupon/ai-ocr-test/internal/port"
)

// MockOrderExtractor is a mock implementation of port.OrderExtractor.
type MockOrderExtractor struct {
	mock.Mock
}

func (m *MockOrderExtractor) Extract(ctx context.Context, input port.ExtractInput) (*domain.OrderData, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderData), args.Error(1)
}

func (m *MockOrderExtractor) DemoMode() bool {
	args := m.Called()
	return args.Bool(0)
}
