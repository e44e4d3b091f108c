package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mkarlsson/storefront-backend/internal/app/model"
	"github.com/mkarlsson/storefront-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// CartRepository owns the persisted cart slot: a serialized list of product
// ids where duplicates encode quantity. Every mutation is a fresh
// load-modify-save against the slot; nothing is cached in between, so
// concurrent writers degrade to last-writer-wins, never to a crash.
type CartRepository interface {
	Load(ctx context.Context, sessionID string) (model.Cart, error)
	Save(ctx context.Context, sessionID string, cart model.Cart) error
	Add(ctx context.Context, sessionID string, id model.ProductID) error
	RemoveAllOccurrences(ctx context.Context, sessionID string, id model.ProductID) error
	DecrementOne(ctx context.Context, sessionID string, id model.ProductID) error
	Clear(ctx context.Context, sessionID string) error
}

type cartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartRepository(client *redis.Client, ttl time.Duration) CartRepository {
	return &cartRepository{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

// decodeCart deserializes a cart slot payload. An unparsable payload
// degrades to an empty cart rather than surfacing an error.
func decodeCart(raw []byte) model.Cart {
	var ids []model.ProductID
	if err := json.Unmarshal(raw, &ids); err != nil {
		logger.Warn("Cart slot unparsable, treating as empty", map[string]interface{}{
			"error": err.Error(),
		})
		return model.Cart{}
	}
	return model.Cart(ids)
}

func encodeCart(cart model.Cart) ([]byte, error) {
	if cart == nil {
		cart = model.Cart{}
	}
	return json.Marshal([]model.ProductID(cart))
}

func (r *cartRepository) Load(ctx context.Context, sessionID string) (model.Cart, error) {
	raw, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err == redis.Nil {
		return model.Cart{}, nil
	}
	if err != nil {
		logger.Error("Failed to read cart slot", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	return decodeCart(raw), nil
}

func (r *cartRepository) Save(ctx context.Context, sessionID string, cart model.Cart) error {
	raw, err := encodeCart(cart)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, cartKey(sessionID), raw, r.ttl).Err(); err != nil {
		logger.Error("Failed to write cart slot", err, map[string]interface{}{
			"session_id": sessionID,
			"size":       cart.Len(),
		})
		return err
	}
	return nil
}

func (r *cartRepository) Add(ctx context.Context, sessionID string, id model.ProductID) error {
	cart, err := r.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	return r.Save(ctx, sessionID, cart.Append(id))
}

func (r *cartRepository) RemoveAllOccurrences(ctx context.Context, sessionID string, id model.ProductID) error {
	cart, err := r.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	return r.Save(ctx, sessionID, cart.RemoveAll(id))
}

func (r *cartRepository) DecrementOne(ctx context.Context, sessionID string, id model.ProductID) error {
	cart, err := r.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	if !cart.Contains(id) {
		return nil
	}
	return r.Save(ctx, sessionID, cart.RemoveOne(id))
}

func (r *cartRepository) Clear(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		logger.Error("Failed to clear cart slot", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return err
	}
	return nil
}
