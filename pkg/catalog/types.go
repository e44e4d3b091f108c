package catalog

import "github.com/shopspring/decimal"

// Product represents a single catalog record as served by the remote API.
// Only ID, Title, Price and Image are contractual; the remaining fields are
// passed through for callers that want them.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
}
