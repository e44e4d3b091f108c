package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is a derived per-product cart row. It is never persisted;
// it is recomputed from the cart and the catalog after every mutation.
type LineItem struct {
	Product  Product         `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// ReceiptLine is a single "Nx Title" entry on the checkout receipt.
type ReceiptLine struct {
	ProductID ProductID       `json:"product_id"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Receipt is produced once per completed checkout, after which the cart
// slot is cleared.
type Receipt struct {
	Number       string          `json:"number"`
	CustomerName string          `json:"customer_name"`
	Lines        []ReceiptLine   `json:"lines"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
}
