package service

import (
	"context"
	"testing"

	"github.com/mkarlsson/storefront-backend/internal/app/model"
	"github.com/mkarlsson/storefront-backend/internal/app/repository"
	"github.com/mkarlsson/storefront-backend/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSession = "test-session"

func setupCartServiceTest(t *testing.T) (CartService, *repository.MemoryCartRepository, *stubCatalog) {
	t.Helper()

	stub := newStubCatalog(
		testProduct(1, "Backpack", "10.00"),
		testProduct(2, "T-Shirt", "5.00"),
		testProduct(3, "Jacket", "7.00"),
	)
	cartRepo := repository.NewMemoryCartRepository()
	pricing := NewPricingService(stub)
	cartService := NewCartService(cartRepo, stub, pricing)

	return cartService, cartRepo, stub
}

func TestCartService_ViewCart_Empty(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	view, err := cartService.ViewCart(context.Background(), testSession)
	require.NoError(t, err)

	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.Count)
	assert.Equal(t, "0.00", view.Total.StringFixed(2))
	assert.False(t, view.TotalIncomplete)
}

func TestCartService_ViewCart_DuplicatesEncodeQuantity(t *testing.T) {
	cartService, cartRepo, _ := setupCartServiceTest(t)
	ctx := context.Background()

	require.NoError(t, cartRepo.Save(ctx, testSession, model.Cart{1, 1, 2}))

	view, err := cartService.ViewCart(ctx, testSession)
	require.NoError(t, err)

	assert.Equal(t, 3, view.Count)
	assert.Equal(t, "25.00", view.Total.StringFixed(2))
	require.Len(t, view.Items, 2)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, "20.00", view.Items[0].Subtotal.StringFixed(2))
	assert.Equal(t, 1, view.Items[1].Quantity)
	assert.Equal(t, "5.00", view.Items[1].Subtotal.StringFixed(2))
}

func TestCartService_AddItem_AppendsOneUnit(t *testing.T) {
	cartService, cartRepo, _ := setupCartServiceTest(t)
	ctx := context.Background()

	require.NoError(t, cartRepo.Save(ctx, testSession, model.Cart{1, 1, 2}))

	view, err := cartService.AddItem(ctx, testSession, 3)
	require.NoError(t, err)

	assert.Equal(t, 4, view.Count)
	assert.Equal(t, "32.00", view.Total.StringFixed(2))

	cart, err := cartRepo.Load(ctx, testSession)
	require.NoError(t, err)
	assert.Equal(t, model.Cart{1, 1, 2, 3}, cart)
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	cartService, cartRepo, _ := setupCartServiceTest(t)
	ctx := context.Background()

	_, err := cartService.AddItem(ctx, testSession, 99)
	assert.ErrorIs(t, err, ErrProductNotFound)

	// The unknown id never entered the cart
	cart, err := cartRepo.Load(ctx, testSession)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartService_DecrementItem_RemovesOneUnit(t *testing.T) {
	cartService, cartRepo, _ := setupCartServiceTest(t)
	ctx := context.Background()

	require.NoError(t, cartRepo.Save(ctx, testSession, model.Cart{1, 1, 2, 3}))

	view, err := cartService.DecrementItem(ctx, testSession, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, view.Count)
	assert.Equal(t, "22.00", view.Total.StringFixed(2))

	cart, err := cartRepo.Load(ctx, testSession)
	require.NoError(t, err)
	assert.Equal(t, model.Cart{1, 2, 3}, cart)
}

func TestCartService_DecrementItem_AbsentIsNoop(t *testing.T) {
	cartService, cartRepo, _ := setupCartServiceTest(t)
	ctx := context.Background()

	require.NoError(t, cartRepo.Save(ctx, testSession, model.Cart{1}))

	view, err := cartService.DecrementItem(ctx, testSession, 3)
	require.NoError(t, err)

	assert.Equal(t, 1, view.Count)
	assert.Equal(t, "10.00", view.Total.StringFixed(2))
}

func TestCartService_RemoveItem_DropsEveryUnit(t *testing.T) {
	cartService, cartRepo, _ := setupCartServiceTest(t)
	ctx := context.Background()

	require.NoError(t, cartRepo.Save(ctx, testSession, model.Cart{1, 2, 2, 3}))

	view, err := cartService.RemoveItem(ctx, testSession, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, view.Count)

	cart, err := cartRepo.Load(ctx, testSession)
	require.NoError(t, err)
	assert.Equal(t, model.Cart{1, 3}, cart)
}

func TestCartService_EmptyCart(t *testing.T) {
	cartService, cartRepo, _ := setupCartServiceTest(t)
	ctx := context.Background()

	require.NoError(t, cartRepo.Save(ctx, testSession, model.Cart{1, 2, 3}))
	require.NoError(t, cartService.EmptyCart(ctx, testSession))

	view, err := cartService.ViewCart(ctx, testSession)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.Count)
}

func TestCartService_ItemCount_MatchesCartLength(t *testing.T) {
	cartService, cartRepo, _ := setupCartServiceTest(t)
	ctx := context.Background()

	count, err := cartService.ItemCount(ctx, testSession)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, cartRepo.Save(ctx, testSession, model.Cart{1, 1, 2}))

	count, err = cartService.ItemCount(ctx, testSession)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestCartService_ViewCart_PartialLookupFailure(t *testing.T) {
	cartService, cartRepo, stub := setupCartServiceTest(t)
	ctx := context.Background()

	require.NoError(t, cartRepo.Save(ctx, testSession, model.Cart{1, 2, 3}))
	stub.fail(2, catalog.ErrUnavailable)

	view, err := cartService.ViewCart(ctx, testSession)
	require.NoError(t, err)

	// The failing id is excluded from the view but stays in the cart
	assert.Len(t, view.Items, 2)
	assert.Equal(t, "17.00", view.Total.StringFixed(2))
	assert.True(t, view.TotalIncomplete)
	assert.Equal(t, 3, view.Count)

	cart, err := cartRepo.Load(ctx, testSession)
	require.NoError(t, err)
	assert.True(t, cart.Contains(2))
}

func TestCartService_ViewCart_LookupRecoveryOnNextRecompute(t *testing.T) {
	cartService, cartRepo, stub := setupCartServiceTest(t)
	ctx := context.Background()

	require.NoError(t, cartRepo.Save(ctx, testSession, model.Cart{2}))
	stub.fail(2, catalog.ErrUnavailable)

	view, err := cartService.ViewCart(ctx, testSession)
	require.NoError(t, err)
	assert.True(t, view.TotalIncomplete)
	assert.Equal(t, "0.00", view.Total.StringFixed(2))

	// Once the catalog recovers, the next recompute picks the item back up
	stub.mu.Lock()
	delete(stub.failing, 2)
	stub.mu.Unlock()

	view, err = cartService.ViewCart(ctx, testSession)
	require.NoError(t, err)
	assert.False(t, view.TotalIncomplete)
	assert.Equal(t, "5.00", view.Total.StringFixed(2))
}
