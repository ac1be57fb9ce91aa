package port

import (
	"context"

	"github.com/takerupon/ai-ocr-test/internal/domain"
)

// ExtractInput carries the uploaded document for field extraction.
type ExtractInput struct {
	FileBytes   []byte
	ContentType string
	FileName    string
}

// OrderExtractor abstracts LLM-based purchase order extraction.
type OrderExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*domain.OrderData, error)
	// DemoMode reports whether the extractor runs without a service
	// credential and returns canned data.
	DemoMode() bool
}
