package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/takerupon/ai-ocr-test/internal/domain"
	"github.com/takerupon/ai-ocr-test/internal/port"
)

// MockOrderExporter is a mock implementation of port.OrderExporter.
type MockOrderExporter struct {
	mock.Mock
}

func (m *MockOrderExporter) Export(data *domain.OrderData) (*port.ExportOutput, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ExportOutput), args.Error(1)
}
