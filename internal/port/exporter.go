package port

import "github.com/takerupon/ai-ocr-test/internal/domain"

// ExportOutput is a fully materialized spreadsheet ready for download.
type ExportOutput struct {
	Content     []byte
	Filename    string
	ContentType string
}

// OrderExporter renders an extraction record into a downloadable document.
type OrderExporter interface {
	Export(data *domain.OrderData) (*ExportOutput, error)
}
