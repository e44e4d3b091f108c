package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mkarlsson/storefront-backend/internal/app/model"
	"github.com/mkarlsson/storefront-backend/internal/app/repository"
	"github.com/mkarlsson/storefront-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

var (
	ErrCartEmpty      = errors.New("cart is empty")
	ErrNoConfirmation = errors.New("no completed order for session")
)

// FieldErrors maps a delivery-form field to its failure reason.
type FieldErrors map[string]string

// ValidationError carries per-field failures from the delivery-form gate.
// The transition is rejected without mutating any state.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "delivery form validation failed"
}

// DeliveryForm is the checkout form submitted from the cart review page.
type DeliveryForm struct {
	Name    string `json:"name" validate:"required,min=2,max=50,fullname"`
	Phone   string `json:"phone" validate:"required,max=50,phonechars"`
	Email   string `json:"email" validate:"required,email"`
	Street  string `json:"street" validate:"required,min=2,max=50"`
	ZipCode string `json:"zip_code" validate:"required,len=5,numeric"`
	City    string `json:"city" validate:"required,min=2,max=50"`
}

// CheckoutService drives the tail of the shopping flow: the delivery-form
// gate (form must validate and the cart must be non-empty) and the one-shot
// confirmation that produces a receipt and clears the cart.
type CheckoutService interface {
	ValidateForm(form DeliveryForm) FieldErrors
	Checkout(ctx context.Context, sessionID string, form DeliveryForm) (*model.Receipt, error)
	ConfirmationName(ctx context.Context, sessionID string) (string, error)
}

type checkoutService struct {
	cartRepo     repository.CartRepository
	customerRepo repository.CustomerRepository
	catalog      repository.ProductCatalog
	validate     *validator.Validate
}

var (
	fullNamePattern   = regexp.MustCompile(`^[a-zA-Z]+(?:\s[a-zA-Z]+)+$`)
	phoneCharsPattern = regexp.MustCompile(`^[\d()-]+$`)
)

func NewCheckoutService(
	cartRepo repository.CartRepository,
	customerRepo repository.CustomerRepository,
	productCatalog repository.ProductCatalog,
) CheckoutService {
	validate := validator.New()

	// First and last name, letters only.
	validate.RegisterValidation("fullname", func(fl validator.FieldLevel) bool {
		return fullNamePattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	validate.RegisterValidation("phonechars", func(fl validator.FieldLevel) bool {
		return phoneCharsPattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})

	return &checkoutService{
		cartRepo:     cartRepo,
		customerRepo: customerRepo,
		catalog:      productCatalog,
		validate:     validate,
	}
}

var fieldMessages = map[string]string{
	"Name":    "Please enter first and last name",
	"Phone":   "Please enter correct phone number",
	"Email":   "Please enter correct Email",
	"Street":  "Please enter a valid street name",
	"ZipCode": "Please enter a valid zipcode (5 digits)",
	"City":    "Please enter a city",
}

var fieldJSONNames = map[string]string{
	"Name":    "name",
	"Phone":   "phone",
	"Email":   "email",
	"Street":  "street",
	"ZipCode": "zip_code",
	"City":    "city",
}

// ValidateForm returns a field-to-reason map; an empty map means the form
// passed.
func (s *checkoutService) ValidateForm(form DeliveryForm) FieldErrors {
	fields := FieldErrors{}

	err := s.validate.Struct(form)
	if err == nil {
		return fields
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		fields["form"] = "Invalid form submission"
		return fields
	}

	for _, fieldErr := range validationErrs {
		name := fieldJSONNames[fieldErr.StructField()]
		if name == "" {
			name = fieldErr.StructField()
		}
		if _, seen := fields[name]; seen {
			continue
		}
		message := fieldMessages[fieldErr.StructField()]
		if message == "" {
			message = "Invalid value"
		}
		fields[name] = message
	}

	return fields
}

func (s *checkoutService) Checkout(ctx context.Context, sessionID string, form DeliveryForm) (*model.Receipt, error) {
	logger.Info("Processing checkout", map[string]interface{}{
		"session_id": sessionID,
	})

	if fields := s.ValidateForm(form); len(fields) > 0 {
		logger.Warn("Checkout rejected: invalid delivery form", map[string]interface{}{
			"session_id": sessionID,
			"fields":     len(fields),
		})
		return nil, &ValidationError{Fields: fields}
	}

	// Re-read the cart fresh; a stale snapshot could resurrect items
	// mutated away while the form was being filled in.
	cart, err := s.cartRepo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		logger.Warn("Checkout rejected: cart is empty", map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, ErrCartEmpty
	}

	customerName := strings.TrimSpace(form.Name)
	if err := s.customerRepo.SaveName(ctx, sessionID, customerName); err != nil {
		return nil, err
	}

	receipt := &model.Receipt{
		Number:       uuid.NewString(),
		CustomerName: customerName,
		Lines:        []model.ReceiptLine{},
		Total:        decimal.Zero,
		CreatedAt:    time.Now(),
	}

	for _, id := range cart.Distinct() {
		product, err := s.catalog.FetchProduct(ctx, id)
		if err != nil {
			logger.Warn("Excluding receipt line after failed catalog lookup", map[string]interface{}{
				"session_id": sessionID,
				"product_id": id,
				"error":      err.Error(),
			})
			continue
		}

		quantity := cart.Count(id)
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(quantity)))
		receipt.Lines = append(receipt.Lines, model.ReceiptLine{
			ProductID: id,
			Title:     product.Title,
			Quantity:  quantity,
			LineTotal: lineTotal,
		})
		receipt.Total = receipt.Total.Add(lineTotal)
	}

	// Checkout completion destroys the cart; the badge drops to zero and a
	// second submission is rejected by the empty-cart gate above.
	if err := s.cartRepo.Clear(ctx, sessionID); err != nil {
		return nil, err
	}

	logger.Info("Checkout completed", map[string]interface{}{
		"session_id": sessionID,
		"receipt":    receipt.Number,
		"lines":      len(receipt.Lines),
		"total":      receipt.Total.StringFixed(2),
	})
	return receipt, nil
}

func (s *checkoutService) ConfirmationName(ctx context.Context, sessionID string) (string, error) {
	name, err := s.customerRepo.LoadName(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", ErrNoConfirmation
	}
	return name, nil
}
