package repository

import (
	"context"
	"sync"

	"github.com/mkarlsson/storefront-backend/internal/app/model"
)

// MemoryCartRepository is an in-memory CartRepository used by tests. It
// stores the serialized slot payload, so it exercises the same codec and
// corruption handling as the Redis-backed implementation.
type MemoryCartRepository struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{slots: make(map[string][]byte)}
}

// SetRaw overwrites the raw slot payload, bypassing the codec. Tests use it
// to simulate a corrupted persisted slot.
func (r *MemoryCartRepository) SetRaw(sessionID string, raw []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[cartKey(sessionID)] = raw
}

func (r *MemoryCartRepository) Load(_ context.Context, sessionID string) (model.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	raw, ok := r.slots[cartKey(sessionID)]
	if !ok {
		return model.Cart{}, nil
	}
	return decodeCart(raw), nil
}

func (r *MemoryCartRepository) Save(_ context.Context, sessionID string, cart model.Cart) error {
	raw, err := encodeCart(cart)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[cartKey(sessionID)] = raw
	return nil
}

func (r *MemoryCartRepository) Add(ctx context.Context, sessionID string, id model.ProductID) error {
	cart, err := r.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	return r.Save(ctx, sessionID, cart.Append(id))
}

func (r *MemoryCartRepository) RemoveAllOccurrences(ctx context.Context, sessionID string, id model.ProductID) error {
	cart, err := r.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	return r.Save(ctx, sessionID, cart.RemoveAll(id))
}

func (r *MemoryCartRepository) DecrementOne(ctx context.Context, sessionID string, id model.ProductID) error {
	cart, err := r.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	if !cart.Contains(id) {
		return nil
	}
	return r.Save(ctx, sessionID, cart.RemoveOne(id))
}

func (r *MemoryCartRepository) Clear(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slots, cartKey(sessionID))
	return nil
}

// MemoryCustomerRepository is the in-memory counterpart of the customer
// name slot.
type MemoryCustomerRepository struct {
	mu    sync.Mutex
	names map[string]string
}

func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{names: make(map[string]string)}
}

func (r *MemoryCustomerRepository) SaveName(_ context.Context, sessionID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[customerKey(sessionID)] = name
	return nil
}

func (r *MemoryCustomerRepository) LoadName(_ context.Context, sessionID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.names[customerKey(sessionID)], nil
}
