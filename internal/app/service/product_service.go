package service

import (
	"context"
	"errors"

	"github.com/mkarlsson/storefront-backend/internal/app/model"
	"github.com/mkarlsson/storefront-backend/internal/app/repository"
	"github.com/mkarlsson/storefront-backend/pkg/catalog"
	"github.com/mkarlsson/storefront-backend/pkg/logger"
)

// ProductService serves the browse/grid view from the remote catalog.
type ProductService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id model.ProductID) (*model.Product, error)
}

type productService struct {
	catalog repository.ProductCatalog
}

func NewProductService(productCatalog repository.ProductCatalog) ProductService {
	return &productService{catalog: productCatalog}
}

func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.catalog.FetchAllProducts(ctx)
	if err != nil {
		logger.Error("Failed to list products", err, nil)
		return nil, err
	}

	logger.Debug("Products listed", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id model.ProductID) (*model.Product, error) {
	product, err := s.catalog.FetchProduct(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}
