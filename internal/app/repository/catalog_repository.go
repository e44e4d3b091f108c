package repository

import (
	"context"
	"strconv"
	"sync"

	"github.com/mkarlsson/storefront-backend/internal/app/model"
	"github.com/mkarlsson/storefront-backend/pkg/catalog"
	"github.com/mkarlsson/storefront-backend/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// ProductCatalog resolves product ids against the remote catalog through a
// session-scoped memoizing cache. The cache never evicts; the catalog is
// small and records are immutable once fetched.
type ProductCatalog interface {
	FetchProduct(ctx context.Context, id model.ProductID) (*model.Product, error)
	FetchAllProducts(ctx context.Context) ([]model.Product, error)
}

type cachedCatalog struct {
	client *catalog.Client

	mu       sync.RWMutex
	products map[model.ProductID]*model.Product

	// Coalesces concurrent lookups for the same uncached id into a single
	// remote request.
	sfg singleflight.Group
}

func NewCachedCatalog(client *catalog.Client) ProductCatalog {
	return &cachedCatalog{
		client:   client,
		products: make(map[model.ProductID]*model.Product),
	}
}

func (c *cachedCatalog) cached(id model.ProductID) (*model.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	product, ok := c.products[id]
	return product, ok
}

func (c *cachedCatalog) store(product *model.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[product.ID] = product
}

func (c *cachedCatalog) FetchProduct(ctx context.Context, id model.ProductID) (*model.Product, error) {
	if product, ok := c.cached(id); ok {
		return product, nil
	}

	v, err, shared := c.sfg.Do(strconv.FormatInt(int64(id), 10), func() (interface{}, error) {
		// Re-check under the flight: a bulk listing may have landed while
		// this call was queued.
		if product, ok := c.cached(id); ok {
			return product, nil
		}

		record, err := c.client.GetProduct(ctx, int64(id))
		if err != nil {
			return nil, err
		}

		product := toModel(record)
		c.store(product)
		return product, nil
	})
	if err != nil {
		logger.Warn("Catalog lookup failed", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		return nil, err
	}

	if shared {
		logger.Debug("Catalog lookup coalesced with in-flight request", map[string]interface{}{
			"product_id": id,
		})
	}
	return v.(*model.Product), nil
}

// FetchAllProducts lists the full catalog and warms the per-id cache with
// the result.
func (c *cachedCatalog) FetchAllProducts(ctx context.Context) ([]model.Product, error) {
	records, err := c.client.ListProducts(ctx)
	if err != nil {
		logger.Warn("Catalog listing failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	products := make([]model.Product, 0, len(records))
	for i := range records {
		product := toModel(&records[i])
		c.store(product)
		products = append(products, *product)
	}

	logger.Debug("Catalog listing fetched", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func toModel(record *catalog.Product) *model.Product {
	return &model.Product{
		ID:    model.ProductID(record.ID),
		Title: record.Title,
		Price: record.Price,
		Image: record.Image,
	}
}
