package extract

import "github.com/takerupon/ai-ocr-test/internal/domain"

func f64(v float64) *float64 { return &v }

// DemoOrder returns the canned purchase order served when no API key is
// configured, or when the model replies with something that is not JSON.
// A fresh value is built per call so callers can never share state.
func DemoOrder() *domain.OrderData {
	return &domain.OrderData{
		OrderNumber: "PO-2023-0001",
		OrderDate:   "2023-03-15",
		Supplier:    "Sample Trading Co., Ltd.",
		Items: []domain.OrderItem{
			{
				Name:      "Laptop",
				Quantity:  domain.QuantityFromNumber(2),
				UnitPrice: f64(120000),
				Amount:    f64(240000),
			},
			{
				Name:      "24-inch Monitor",
				Quantity:  domain.QuantityFromNumber(3),
				UnitPrice: f64(25000),
				Amount:    f64(75000),
			},
			{
				Name:      "Wireless Mouse",
				Quantity:  domain.QuantityFromNumber(5),
				UnitPrice: f64(3000),
				Amount:    f64(15000),
			},
		},
		TotalAmount: f64(330000),
	}
}
