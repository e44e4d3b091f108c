package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkarlsson/storefront-backend/internal/app/model"
	"github.com/mkarlsson/storefront-backend/internal/app/service"
	apperrors "github.com/mkarlsson/storefront-backend/internal/errors"
	"github.com/mkarlsson/storefront-backend/internal/middleware"
)

type CheckoutController struct {
	checkoutService service.CheckoutService
}

func NewCheckoutController(checkoutService service.CheckoutService) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
	}
}

func receiptJSON(receipt *model.Receipt) gin.H {
	lines := make([]gin.H, 0, len(receipt.Lines))
	for _, line := range receipt.Lines {
		lines = append(lines, gin.H{
			"product_id": line.ProductID,
			"title":      line.Title,
			"quantity":   line.Quantity,
			"line_total": line.LineTotal.StringFixed(2),
		})
	}
	return gin.H{
		"number":        receipt.Number,
		"customer_name": receipt.CustomerName,
		"lines":         lines,
		"total":         receipt.Total.StringFixed(2),
		"created_at":    receipt.CreatedAt,
	}
}

// SubmitOrder validates the delivery form and, if the cart is non-empty,
// produces the receipt and clears the cart
// POST /api/v1/checkout
func (ctrl *CheckoutController) SubmitOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		apperrors.InternalError(c, "Missing session")
		return
	}

	var form service.DeliveryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	receipt, err := ctrl.checkoutService.Checkout(c.Request.Context(), sessionID, form)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			log.Warn("Checkout rejected: invalid delivery form", map[string]interface{}{
				"session_id": sessionID,
				"fields":     len(validationErr.Fields),
			})
			apperrors.RespondWithValidationError(c, validationErr.Fields)
			return
		}
		if errors.Is(err, service.ErrCartEmpty) {
			log.Warn("Checkout rejected: cart is empty", map[string]interface{}{
				"session_id": sessionID,
			})
			apperrors.BadRequest(c, apperrors.CartEmpty, "Cart is empty")
			return
		}
		log.Error("Failed to process checkout", err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to process checkout")
		return
	}

	log.Info("Checkout completed successfully", map[string]interface{}{
		"session_id": sessionID,
		"receipt":    receipt.Number,
		"total":      receipt.Total.StringFixed(2),
	})

	c.JSON(http.StatusCreated, gin.H{
		"receipt": receiptJSON(receipt),
	})
}

// GetConfirmation renders the post-checkout confirmation message
// GET /api/v1/checkout/confirmation
func (ctrl *CheckoutController) GetConfirmation(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		apperrors.InternalError(c, "Missing session")
		return
	}

	name, err := ctrl.checkoutService.ConfirmationName(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrNoConfirmation) {
			apperrors.NotFound(c, apperrors.CheckoutNotConfirmed, "No completed order for this session")
			return
		}
		log.Error("Failed to load confirmation", err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to load confirmation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer_name": name,
		"message":       fmt.Sprintf("Thank you for your order %s!", name),
	})
}
