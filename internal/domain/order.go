package domain

import (
	"encoding/json"
	"strconv"
)

// Quantity is a line item quantity as it appears on a document. Extraction
// models return it either as a JSON number or as text; numeric text is
// coerced to a number, anything else is kept verbatim.
type Quantity struct {
	Number  float64
	Text    string
	Numeric bool
}

// QuantityFromNumber returns a numeric Quantity.
func QuantityFromNumber(n float64) Quantity {
	return Quantity{Number: n, Numeric: true}
}

// QuantityFromText coerces a textual quantity. Valid integer literals become
// numeric; any other text is retained unchanged.
func QuantityFromText(s string) Quantity {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Quantity{Number: float64(n), Numeric: true}
	}
	return Quantity{Text: s}
}

// IsZero reports whether the quantity carries no value at all.
func (q Quantity) IsZero() bool {
	return !q.Numeric && q.Text == ""
}

// Value returns the native representation: float64 when numeric, string
// otherwise.
func (q Quantity) Value() interface{} {
	if q.Numeric {
		return q.Number
	}
	return q.Text
}

func (q Quantity) String() string {
	if q.Numeric {
		return strconv.FormatFloat(q.Number, 'f', -1, 64)
	}
	return q.Text
}

// MarshalJSON emits a JSON number when numeric, a JSON string otherwise.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.Numeric {
		return json.Marshal(q.Number)
	}
	return json.Marshal(q.Text)
}

// UnmarshalJSON accepts a JSON number, a string (coerced when it is an
// integer literal), or null.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*q = Quantity{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = QuantityFromText(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*q = QuantityFromNumber(n)
	return nil
}

// OrderItem is a single line item of a purchase order. Items have no
// identity beyond their position in the owning list.
type OrderItem struct {
	Name      string   `json:"name"`
	Quantity  Quantity `json:"quantity"`
	UnitPrice *float64 `json:"unitPrice,omitempty"`
	Amount    *float64 `json:"amount,omitempty"`
}

// OrderData is the normalized extraction record for one purchase order.
// It is created fresh per extraction, held only in workflow state, and
// never persisted. Items is never nil after extraction completes.
type OrderData struct {
	OrderNumber string      `json:"orderNumber,omitempty"`
	OrderDate   string      `json:"orderDate,omitempty"`
	Supplier    string      `json:"supplier,omitempty"`
	Items       []OrderItem `json:"items"`
	TotalAmount *float64    `json:"totalAmount,omitempty"`
}
