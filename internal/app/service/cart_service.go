package service

import (
	"context"
	"errors"

	"github.com/mkarlsson/storefront-backend/internal/app/model"
	"github.com/mkarlsson/storefront-backend/internal/app/repository"
	"github.com/mkarlsson/storefront-backend/pkg/catalog"
	"github.com/mkarlsson/storefront-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// CartView is the derived display state recomputed after every command:
// line items, count badge value and grand total. TotalIncomplete is set
// when at least one catalog lookup failed, so a zero total is
// distinguishable from an empty cart.
type CartView struct {
	Items           []model.LineItem
	Count           int
	Total           decimal.Decimal
	TotalIncomplete bool
}

// CartService is the only mutator of the persisted cart. Every command
// re-reads the slot fresh, applies one mutation and saves, then rebuilds
// the view from the stored state rather than from any pre-command snapshot.
type CartService interface {
	ViewCart(ctx context.Context, sessionID string) (*CartView, error)
	ItemCount(ctx context.Context, sessionID string) (int, error)
	AddItem(ctx context.Context, sessionID string, id model.ProductID) (*CartView, error)
	IncrementItem(ctx context.Context, sessionID string, id model.ProductID) (*CartView, error)
	DecrementItem(ctx context.Context, sessionID string, id model.ProductID) (*CartView, error)
	RemoveItem(ctx context.Context, sessionID string, id model.ProductID) (*CartView, error)
	EmptyCart(ctx context.Context, sessionID string) error
}

type cartService struct {
	cartRepo repository.CartRepository
	catalog  repository.ProductCatalog
	pricing  PricingService
}

func NewCartService(cartRepo repository.CartRepository, productCatalog repository.ProductCatalog, pricing PricingService) CartService {
	return &cartService{
		cartRepo: cartRepo,
		catalog:  productCatalog,
		pricing:  pricing,
	}
}

func (s *cartService) ViewCart(ctx context.Context, sessionID string) (*CartView, error) {
	cart, err := s.cartRepo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	view := &CartView{
		Items: []model.LineItem{},
		Count: cart.Len(),
		Total: decimal.Zero,
	}

	for _, id := range cart.Distinct() {
		item, err := s.pricing.LineItemFor(ctx, cart, id)
		if err != nil {
			// The id stays in the cart; the next recompute retries it.
			logger.Warn("Excluding cart line after failed catalog lookup", map[string]interface{}{
				"session_id": sessionID,
				"product_id": id,
				"error":      err.Error(),
			})
			view.TotalIncomplete = true
			continue
		}
		view.Items = append(view.Items, *item)
		view.Total = view.Total.Add(item.Subtotal)
	}

	return view, nil
}

func (s *cartService) ItemCount(ctx context.Context, sessionID string) (int, error) {
	cart, err := s.cartRepo.Load(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return cart.Len(), nil
}

func (s *cartService) AddItem(ctx context.Context, sessionID string, id model.ProductID) (*CartView, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"session_id": sessionID,
		"product_id": id,
	})

	// Resolve before mutating so unknown ids never enter the cart.
	if _, err := s.catalog.FetchProduct(ctx, id); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"session_id": sessionID,
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := s.cartRepo.Add(ctx, sessionID, id); err != nil {
		return nil, err
	}
	return s.ViewCart(ctx, sessionID)
}

func (s *cartService) IncrementItem(ctx context.Context, sessionID string, id model.ProductID) (*CartView, error) {
	logger.Debug("Incrementing cart item", map[string]interface{}{
		"session_id": sessionID,
		"product_id": id,
	})

	if err := s.cartRepo.Add(ctx, sessionID, id); err != nil {
		return nil, err
	}
	return s.ViewCart(ctx, sessionID)
}

func (s *cartService) DecrementItem(ctx context.Context, sessionID string, id model.ProductID) (*CartView, error) {
	logger.Debug("Decrementing cart item", map[string]interface{}{
		"session_id": sessionID,
		"product_id": id,
	})

	if err := s.cartRepo.DecrementOne(ctx, sessionID, id); err != nil {
		return nil, err
	}
	return s.ViewCart(ctx, sessionID)
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID string, id model.ProductID) (*CartView, error) {
	logger.Info("Removing cart item", map[string]interface{}{
		"session_id": sessionID,
		"product_id": id,
	})

	if err := s.cartRepo.RemoveAllOccurrences(ctx, sessionID, id); err != nil {
		return nil, err
	}
	return s.ViewCart(ctx, sessionID)
}

func (s *cartService) EmptyCart(ctx context.Context, sessionID string) error {
	logger.Info("Emptying cart", map[string]interface{}{
		"session_id": sessionID,
	})

	return s.cartRepo.Clear(ctx, sessionID)
}
