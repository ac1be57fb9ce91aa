// Package excel renders extraction records into styled XLSX workbooks.
package excel

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/takerupon/ai-ocr-test/internal/domain"
	"github.com/takerupon/ai-ocr-test/internal/port"
)

const (
	sheetName = "Purchase Order"

	// ContentType is the standard OOXML spreadsheet media type.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// moneyFormat renders amounts as currency with no decimal places.
	moneyFormat = "¥#,##0"

	minColWidth = 10
	colPadding  = 2
)

// Exporter implements port.OrderExporter with excelize.
type Exporter struct{}

// NewExporter creates an XLSX order exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export builds the workbook fully in memory and returns its bytes together
// with a filename derived from the order number (or today's date when the
// order number is absent). Exporting the same record twice yields
// byte-identical documents.
func (e *Exporter) Export(data *domain.OrderData) (*port.ExportOutput, error) {
	content, err := buildWorkbook(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}
	return &port.ExportOutput{
		Content:     content,
		Filename:    BuildFilename(data.OrderNumber),
		ContentType: ContentType,
	}, nil
}

func buildWorkbook(data *domain.OrderData) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Border: []excelize.Border{
			{Type: "top", Style: 1, Color: "000000"},
			{Type: "left", Style: 1, Color: "000000"},
			{Type: "bottom", Style: 1, Color: "000000"},
			{Type: "right", Style: 1, Color: "000000"},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	moneyFmt := moneyFormat
	moneyStyle, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &moneyFmt,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, err
	}
	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}
	boldMoneyStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &moneyFmt,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, err
	}

	// Track rendered cell text per column for width auto-sizing.
	widths := newColumnWidths(4)
	setCell := func(col, row int, v interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		widths.observe(col, v)
		return f.SetCellValue(sheetName, cell, v)
	}
	setStyle := func(col, row, style int) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellStyle(sheetName, cell, cell, style)
	}

	// Order summary section
	if err := setCell(1, 1, "Order Information"); err != nil {
		return nil, err
	}
	summary := [][2]interface{}{
		{"Order Number", data.OrderNumber},
		{"Order Date", data.OrderDate},
		{"Supplier", data.Supplier},
	}
	for i, pair := range summary {
		row := i + 2
		if err := setCell(1, row, pair[0]); err != nil {
			return nil, err
		}
		if err := setCell(2, row, pair[1]); err != nil {
			return nil, err
		}
	}

	// Row 5 stays blank as a separator.
	if err := setCell(1, 6, "Items"); err != nil {
		return nil, err
	}

	itemHeaders := []string{"Item", "Quantity", "Unit Price", "Amount"}
	for col, h := range itemHeaders {
		if err := setCell(col+1, 7, h); err != nil {
			return nil, err
		}
		if err := setStyle(col+1, 7, headerStyle); err != nil {
			return nil, err
		}
	}

	row := 8
	for _, item := range data.Items {
		if err := setCell(1, row, item.Name); err != nil {
			return nil, err
		}
		if !item.Quantity.IsZero() {
			if err := setCell(2, row, item.Quantity.Value()); err != nil {
				return nil, err
			}
		}
		if item.UnitPrice != nil {
			if err := setCell(3, row, *item.UnitPrice); err != nil {
				return nil, err
			}
			if err := setStyle(3, row, moneyStyle); err != nil {
				return nil, err
			}
		}
		if item.Amount != nil {
			if err := setCell(4, row, *item.Amount); err != nil {
				return nil, err
			}
			if err := setStyle(4, row, moneyStyle); err != nil {
				return nil, err
			}
		}
		row++
	}

	// Totals row
	if err := setCell(3, row, "Total"); err != nil {
		return nil, err
	}
	if err := setStyle(3, row, boldStyle); err != nil {
		return nil, err
	}
	if data.TotalAmount != nil {
		if err := setCell(4, row, *data.TotalAmount); err != nil {
			return nil, err
		}
		if err := setStyle(4, row, boldMoneyStyle); err != nil {
			return nil, err
		}
	}

	for col, width := range widths.resolve() {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, name, name, width); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// columnWidths accumulates the longest rendered value per column.
type columnWidths struct {
	max []int
}

func newColumnWidths(cols int) *columnWidths {
	return &columnWidths{max: make([]int, cols)}
}

func (w *columnWidths) observe(col int, v interface{}) {
	if col < 1 || col > len(w.max) {
		return
	}
	n := len([]rune(renderValue(v)))
	if n > w.max[col-1] {
		w.max[col-1] = n
	}
}

// resolve returns per-column widths floored at a minimum plus padding.
func (w *columnWidths) resolve() []float64 {
	out := make([]float64, len(w.max))
	for i, m := range w.max {
		if m < minColWidth {
			m = minColWidth
		}
		out[i] = float64(m + colPadding)
	}
	return out
}

func renderValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans an order number for use in a download filename.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns the download filename for an export. The order
// number is used when present, today's date (ISO date portion) otherwise.
// Format: purchase_order_{order_number|YYYY-MM-DD}.xlsx
func BuildFilename(orderNumber string) string {
	suffix := SanitizeFilename(orderNumber)
	if suffix == "" {
		suffix = time.Now().Format("2006-01-02")
	}
	return fmt.Sprintf("purchase_order_%s.xlsx", suffix)
}
