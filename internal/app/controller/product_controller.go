package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mkarlsson/storefront-backend/internal/app/model"
	"github.com/mkarlsson/storefront-backend/internal/app/service"
	apperrors "github.com/mkarlsson/storefront-backend/internal/errors"
	"github.com/mkarlsson/storefront-backend/internal/middleware"
	"github.com/mkarlsson/storefront-backend/pkg/catalog"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

func productJSON(p model.Product) gin.H {
	return gin.H{
		"id":    p.ID,
		"title": p.Title,
		"price": p.Price.StringFixed(2),
		"image": p.Image,
	}
}

// GetAllProducts returns the product grid listing
// GET /api/v1/products
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.ListProducts(c.Request.Context())
	if err != nil {
		if errors.Is(err, catalog.ErrUnavailable) {
			log.Warn("Catalog unavailable for product listing", map[string]interface{}{
				"error": err.Error(),
			})
			apperrors.ServiceUnavailable(c, apperrors.CatalogUnavailable, "Product catalog is unavailable")
			return
		}
		log.Error("Failed to fetch products", err, nil)
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	items := make([]gin.H, 0, len(products))
	for _, p := range products {
		items = append(items, productJSON(p))
	}

	log.Info("Products fetched successfully", map[string]interface{}{
		"count": len(items),
	})

	c.JSON(http.StatusOK, gin.H{
		"products": items,
		"count":    len(items),
	})
}

// GetProductByID returns a single product card
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseProductID(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		if errors.Is(err, catalog.ErrUnavailable) {
			apperrors.ServiceUnavailable(c, apperrors.CatalogUnavailable, "Product catalog is unavailable")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": productJSON(*product),
	})
}

func parseProductID(c *gin.Context) (model.ProductID, bool) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"product_id": idStr,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return 0, false
	}
	return model.ProductID(id), true
}
