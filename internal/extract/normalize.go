package extract

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/takerupon/ai-ocr-test/internal/domain"
)

// ExtractJSONObject returns the first brace-delimited JSON object embedded in
// text. Models sometimes wrap the JSON in prose or markdown fences; the span
// from the first '{' to the last '}' is taken as the candidate object.
func ExtractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// rawItem mirrors an OrderItem with loosely typed numeric fields, as models
// may return numbers as quoted strings with varying quality.
type rawItem struct {
	Name      string          `json:"name"`
	Quantity  domain.Quantity `json:"quantity"`
	UnitPrice json.RawMessage `json:"unitPrice"`
	Amount    json.RawMessage `json:"amount"`
}

type rawOrder struct {
	OrderNumber string          `json:"orderNumber"`
	OrderDate   string          `json:"orderDate"`
	Supplier    string          `json:"supplier"`
	Items       []rawItem       `json:"items"`
	TotalAmount json.RawMessage `json:"totalAmount"`
}

// UnmarshalOrder decodes model output into a normalized OrderData. Quantity
// keeps unparseable text verbatim; unitPrice, amount, and totalAmount that
// fail integer parsing are dropped. Items is never nil on success.
func UnmarshalOrder(data []byte) (*domain.OrderData, error) {
	var raw rawOrder
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding order JSON: %w", err)
	}

	order := &domain.OrderData{
		OrderNumber: raw.OrderNumber,
		OrderDate:   raw.OrderDate,
		Supplier:    raw.Supplier,
		Items:       make([]domain.OrderItem, 0, len(raw.Items)),
		TotalAmount: coerceNumber(raw.TotalAmount),
	}
	for _, it := range raw.Items {
		order.Items = append(order.Items, domain.OrderItem{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: coerceNumber(it.UnitPrice),
			Amount:    coerceNumber(it.Amount),
		})
	}
	return order, nil
}

// coerceNumber turns a loosely typed JSON value into an optional number.
// Numbers pass through; strings are accepted when they are integer literals;
// everything else (null, objects, unparseable text) is treated as absent.
func coerceNumber(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil
		}
		v := float64(n)
		return &v
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil
	}
	return &n
}
