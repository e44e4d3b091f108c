package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mkarlsson/storefront-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// CustomerRepository owns the persisted customer-name slot, written on
// successful checkout and read back by the confirmation view.
type CustomerRepository interface {
	SaveName(ctx context.Context, sessionID, name string) error
	LoadName(ctx context.Context, sessionID string) (string, error)
}

type customerRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCustomerRepository(client *redis.Client, ttl time.Duration) CustomerRepository {
	return &customerRepository{client: client, ttl: ttl}
}

func customerKey(sessionID string) string {
	return fmt.Sprintf("customer:%s", sessionID)
}

func (r *customerRepository) SaveName(ctx context.Context, sessionID, name string) error {
	if err := r.client.Set(ctx, customerKey(sessionID), name, r.ttl).Err(); err != nil {
		logger.Error("Failed to write customer name slot", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return err
	}
	return nil
}

// LoadName returns an empty string when no name has been stored.
func (r *customerRepository) LoadName(ctx context.Context, sessionID string) (string, error) {
	name, err := r.client.Get(ctx, customerKey(sessionID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		logger.Error("Failed to read customer name slot", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return "", err
	}
	return name, nil
}
