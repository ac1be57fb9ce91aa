package extract

// BuildOrderPrompt returns the extraction prompt for purchase order documents.
func BuildOrderPrompt() string {
	return `You are a high-accuracy OCR assistant. The attached document is a purchase order. Extract the following information and return it as JSON.

Information to extract:
1. Order number (orderNumber) - usually near labels like "PO No.", "Order No."
2. Order date (orderDate) - in whatever date format the document uses
3. Supplier name (supplier) - the company the order is addressed to
4. Item list (items) - usually laid out as a table
   - item name (name)
   - quantity (quantity) - digits only
   - unit price (unitPrice) - digits only, no currency symbols or thousands separators
   - amount (amount) - digits only, no currency symbols or thousands separators
5. Total amount (totalAmount) - the figure near "Total" or "Grand Total", digits only

Rules:
- Numeric fields must contain digits only; strip commas and currency symbols.
- Use null for any field not present in the document.
- Keep table rows and columns correctly aligned.
- Return ONLY the JSON object, no explanation, no markdown fences.

Expected JSON shape:
{
  "orderNumber": "...",
  "orderDate": "...",
  "supplier": "...",
  "items": [
    {
      "name": "...",
      "quantity": 0,
      "unitPrice": 0,
      "amount": 0
    }
  ],
  "totalAmount": 0
}`
}
