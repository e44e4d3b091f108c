package model

import "github.com/shopspring/decimal"

// ProductID identifies a catalog entry. Ids are assigned by the remote
// catalog and are stable for the lifetime of the product.
type ProductID int64

// Product is an immutable catalog record. Instances are owned by the
// catalog cache; callers must not mutate them.
type Product struct {
	ID    ProductID       `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}
