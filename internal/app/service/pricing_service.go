package service

import (
	"context"

	"github.com/mkarlsson/storefront-backend/internal/app/model"
	"github.com/mkarlsson/storefront-backend/internal/app/repository"
	"github.com/mkarlsson/storefront-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// PricingService joins cart contents against catalog records. Totals keep
// the full decimal precision of the source prices; rounding to two places
// happens only at the rendering edge.
type PricingService interface {
	LineItemFor(ctx context.Context, cart model.Cart, id model.ProductID) (*model.LineItem, error)

	// CartTotal sums the subtotals of the distinct ids in the cart. Ids
	// whose lookup fails are excluded from the sum and returned so callers
	// can flag the total as incomplete; the computation itself never fails.
	CartTotal(ctx context.Context, cart model.Cart) (decimal.Decimal, []model.ProductID)
}

type pricingService struct {
	catalog repository.ProductCatalog
}

func NewPricingService(catalog repository.ProductCatalog) PricingService {
	return &pricingService{catalog: catalog}
}

func (s *pricingService) LineItemFor(ctx context.Context, cart model.Cart, id model.ProductID) (*model.LineItem, error) {
	product, err := s.catalog.FetchProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	quantity := cart.Count(id)
	return &model.LineItem{
		Product:  *product,
		Quantity: quantity,
		Subtotal: product.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

func (s *pricingService) CartTotal(ctx context.Context, cart model.Cart) (decimal.Decimal, []model.ProductID) {
	total := decimal.Zero
	var failed []model.ProductID

	for _, id := range cart.Distinct() {
		item, err := s.LineItemFor(ctx, cart, id)
		if err != nil {
			logger.Warn("Excluding product from cart total after failed lookup", map[string]interface{}{
				"product_id": id,
				"error":      err.Error(),
			})
			failed = append(failed, id)
			continue
		}
		total = total.Add(item.Subtotal)
	}

	return total, failed
}
