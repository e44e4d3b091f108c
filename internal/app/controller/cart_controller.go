package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkarlsson/storefront-backend/internal/app/model"
	"github.com/mkarlsson/storefront-backend/internal/app/service"
	apperrors "github.com/mkarlsson/storefront-backend/internal/errors"
	"github.com/mkarlsson/storefront-backend/internal/middleware"
	"github.com/mkarlsson/storefront-backend/pkg/catalog"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID model.ProductID `json:"product_id" binding:"required"`
}

func lineItemJSON(item model.LineItem) gin.H {
	return gin.H{
		"product":  productJSON(item.Product),
		"quantity": item.Quantity,
		"subtotal": item.Subtotal.StringFixed(2),
	}
}

func cartViewJSON(view *service.CartView) gin.H {
	items := make([]gin.H, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, lineItemJSON(item))
	}
	return gin.H{
		"items":            items,
		"count":            view.Count,
		"total":            view.Total.StringFixed(2),
		"total_incomplete": view.TotalIncomplete,
	}
}

func (ctrl *CartController) respondWithView(c *gin.Context, status int, view *service.CartView) {
	c.JSON(status, cartViewJSON(view))
}

// GetCart returns the line items, count badge value and grand total
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		apperrors.InternalError(c, "Missing session")
		return
	}

	view, err := ctrl.cartService.ViewCart(c.Request.Context(), sessionID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to fetch cart")
		return
	}

	log.Info("Cart fetched successfully", map[string]interface{}{
		"session_id": sessionID,
		"count":      view.Count,
		"total":      view.Total.StringFixed(2),
	})

	ctrl.respondWithView(c, http.StatusOK, view)
}

// GetItemCount returns the count badge value
// GET /api/v1/cart/count
func (ctrl *CartController) GetItemCount(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		apperrors.InternalError(c, "Missing session")
		return
	}

	count, err := ctrl.cartService.ItemCount(c.Request.Context(), sessionID)
	if err != nil {
		log.Error("Failed to fetch cart count", err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to fetch cart count")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": count,
	})
}

// AddToCart appends one unit of a product to the cart
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		apperrors.InternalError(c, "Missing session")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	view, err := ctrl.cartService.AddItem(c.Request.Context(), sessionID, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for cart", map[string]interface{}{
				"session_id": sessionID,
				"product_id": req.ProductID,
			})
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		if errors.Is(err, catalog.ErrUnavailable) {
			apperrors.ServiceUnavailable(c, apperrors.CatalogUnavailable, "Product catalog is unavailable")
			return
		}
		log.Error("Failed to add item to cart", err, map[string]interface{}{
			"session_id": sessionID,
			"product_id": req.ProductID,
		})
		apperrors.InternalError(c, "Failed to add item to cart")
		return
	}

	log.Info("Item added to cart successfully", map[string]interface{}{
		"session_id": sessionID,
		"product_id": req.ProductID,
		"count":      view.Count,
	})

	ctrl.respondWithView(c, http.StatusCreated, view)
}

// IncrementItem adds one more unit of a product already shown in the cart
// POST /api/v1/cart/:id/increment
func (ctrl *CartController) IncrementItem(c *gin.Context) {
	ctrl.mutateByID(c, "increment", ctrl.cartService.IncrementItem)
}

// DecrementItem removes a single unit of a product; absent ids are a no-op
// POST /api/v1/cart/:id/decrement
func (ctrl *CartController) DecrementItem(c *gin.Context) {
	ctrl.mutateByID(c, "decrement", ctrl.cartService.DecrementItem)
}

// RemoveFromCart removes every unit of a product
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	ctrl.mutateByID(c, "remove", ctrl.cartService.RemoveItem)
}

// mutateByID runs a per-product cart command and responds with the
// recomputed view.
func (ctrl *CartController) mutateByID(
	c *gin.Context,
	command string,
	mutate func(ctx context.Context, sessionID string, id model.ProductID) (*service.CartView, error),
) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		apperrors.InternalError(c, "Missing session")
		return
	}

	id, ok := parseProductID(c)
	if !ok {
		return
	}

	view, err := mutate(c.Request.Context(), sessionID, id)
	if err != nil {
		log.Error("Cart command failed", err, map[string]interface{}{
			"session_id": sessionID,
			"product_id": id,
			"command":    command,
		})
		apperrors.InternalError(c, "Failed to update cart")
		return
	}

	log.Info("Cart command applied", map[string]interface{}{
		"session_id": sessionID,
		"product_id": id,
		"command":    command,
		"count":      view.Count,
	})

	ctrl.respondWithView(c, http.StatusOK, view)
}

// ClearCart empties the cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		apperrors.InternalError(c, "Missing session")
		return
	}

	if err := ctrl.cartService.EmptyCart(c.Request.Context(), sessionID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to clear cart")
		return
	}

	log.Info("Cart cleared successfully", map[string]interface{}{
		"session_id": sessionID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"count":   0,
	})
}
