package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/mkarlsson/storefront-backend/internal/app/model"
	"github.com/mkarlsson/storefront-backend/pkg/catalog"
	"github.com/shopspring/decimal"
)

// stubCatalog is an in-memory ProductCatalog with per-id failure injection.
type stubCatalog struct {
	mu       sync.Mutex
	products map[model.ProductID]model.Product
	failing  map[model.ProductID]error
}

func newStubCatalog(products ...model.Product) *stubCatalog {
	s := &stubCatalog{
		products: make(map[model.ProductID]model.Product),
		failing:  make(map[model.ProductID]error),
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *stubCatalog) fail(id model.ProductID, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[id] = err
}

func (s *stubCatalog) FetchProduct(_ context.Context, id model.ProductID) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.failing[id]; ok {
		return nil, err
	}
	product, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", catalog.ErrProductNotFound, id)
	}
	return &product, nil
}

func (s *stubCatalog) FetchAllProducts(_ context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	return products, nil
}

func testProduct(id model.ProductID, title, price string) model.Product {
	return model.Product{
		ID:    id,
		Title: title,
		Price: decimal.RequireFromString(price),
		Image: fmt.Sprintf("http://img/%d.jpg", id),
	}
}
