package errors

// Error code constants returned in API responses.
// Format: CATEGORY_SPECIFIC_DETAIL
// The page maps these codes to user-facing behaviour.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed or failing form input
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // non-numeric product id

	// ==================== Cart (CART_) ====================
	CartEmpty = "CART_EMPTY" // checkout attempted with an empty cart

	// ==================== Catalog (CATALOG_) ====================
	CatalogProductNotFound = "CATALOG_PRODUCT_NOT_FOUND" // unknown product id
	CatalogUnavailable     = "CATALOG_UNAVAILABLE"       // remote catalog unreachable or malformed

	// ==================== Checkout (CHECKOUT_) ====================
	CheckoutNotConfirmed = "CHECKOUT_NOT_CONFIRMED" // no completed order for this session

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
)
