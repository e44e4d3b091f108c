package service

import (
	"context"
	"testing"

	"github.com/mkarlsson/storefront-backend/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_ListProducts(t *testing.T) {
	stub := newStubCatalog(
		testProduct(1, "Backpack", "10.00"),
		testProduct(2, "T-Shirt", "5.00"),
	)
	productService := NewProductService(stub)

	products, err := productService.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestProductService_GetProduct(t *testing.T) {
	stub := newStubCatalog(testProduct(1, "Backpack", "10.00"))
	productService := NewProductService(stub)

	product, err := productService.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Backpack", product.Title)
	assert.Equal(t, "10.00", product.Price.StringFixed(2))
}

func TestProductService_GetProduct_NotFound(t *testing.T) {
	productService := NewProductService(newStubCatalog())

	_, err := productService.GetProduct(context.Background(), 99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_GetProduct_Unavailable(t *testing.T) {
	stub := newStubCatalog()
	stub.fail(1, catalog.ErrUnavailable)
	productService := NewProductService(stub)

	_, err := productService.GetProduct(context.Background(), 1)
	assert.ErrorIs(t, err, catalog.ErrUnavailable)
}
