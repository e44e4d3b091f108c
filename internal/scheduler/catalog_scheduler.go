package scheduler

import (
	"context"
	"time"

	"github.com/mkarlsson/storefront-backend/internal/app/repository"
	"github.com/mkarlsson/storefront-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CatalogScheduler periodically re-lists the remote catalog to keep the
// per-id cache warm for the cart and receipt views. Warmup only adds
// entries; the cache never evicts.
type CatalogScheduler struct {
	cron     *cron.Cron
	catalog  repository.ProductCatalog
	schedule string
}

func NewCatalogScheduler(productCatalog repository.ProductCatalog, schedule string) *CatalogScheduler {
	return &CatalogScheduler{
		cron:     cron.New(),
		catalog:  productCatalog,
		schedule: schedule,
	}
}

// Start registers the warmup job and begins the schedule
func (s *CatalogScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		logger.Info("Starting scheduled catalog warmup", nil)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		products, err := s.catalog.FetchAllProducts(ctx)
		if err != nil {
			logger.Error("Failed to warm catalog cache", err)
			return
		}

		logger.Info("Catalog cache warmed", map[string]interface{}{
			"count": len(products),
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for catalog warmup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Catalog scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

// Stop halts the schedule
func (s *CatalogScheduler) Stop() {
	logger.Info("Stopping catalog scheduler...", nil)
	s.cron.Stop()
	logger.Info("Catalog scheduler stopped", nil)
}
