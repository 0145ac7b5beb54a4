package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"productapi/internal/models"
	"productapi/internal/services"
)

// EnvelopeVersion is reported in every V2 response body.
const EnvelopeVersion = "2.0"

// Error codes used in V2 error envelopes.
const (
	ErrorCodeNotFound   = "NotFound"
	ErrorCodeValidation = "ValidationError"
	ErrorCodeBadRequest = "BadRequest"
)

// ListEnvelope wraps a product list. Count always equals len(Data).
type ListEnvelope struct {
	Version string           `json:"version"`
	Count   int              `json:"count"`
	Data    []models.Product `json:"data"`
}

// ItemEnvelope wraps a single product.
type ItemEnvelope struct {
	Version string          `json:"version"`
	Message string          `json:"message,omitempty"`
	Data    *models.Product `json:"data"`
}

// ErrorEnvelope is the V2 error body.
type ErrorEnvelope struct {
	Version string            `json:"version"`
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

func newListEnvelope(products []models.Product) ListEnvelope {
	if products == nil {
		products = []models.Product{}
	}
	return ListEnvelope{Version: EnvelopeVersion, Count: len(products), Data: products}
}

// ProductHandlerV2 serves products wrapped in version envelopes and applies
// stricter create validation.
type ProductHandlerV2 struct {
	service  services.ProductService
	creator  services.ProductCreator
	validate *validator.Validate
}

// NewProductHandlerV2 creates a ProductHandlerV2. The create route is only
// offered when service also implements services.ProductCreator.
func NewProductHandlerV2(service services.ProductService) *ProductHandlerV2 {
	creator, _ := service.(services.ProductCreator)
	return &ProductHandlerV2{
		service:  service,
		creator:  creator,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes on router.
func (h *ProductHandlerV2) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	if h.creator != nil {
		productRoutes.Post("/", h.HandleCreateProduct)
	}
}

// HandleGetProducts returns {version, count, data}.
func (h *ProductHandlerV2) HandleGetProducts(c *fiber.Ctx) error {
	log.Info("V2: Getting all products with enhanced response")
	return c.JSON(newListEnvelope(h.service.ListProducts()))
}

// HandleGetProductByID returns {version, data} or a NotFound envelope.
func (h *ProductHandlerV2) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorEnvelope{
			Version: EnvelopeVersion,
			Error:   ErrorCodeBadRequest,
			Message: "Invalid product ID",
		})
	}

	log.Infof("V2: Getting product with ID: %d", id)
	product, ok := h.service.GetProductByID(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorEnvelope{
			Version: EnvelopeVersion,
			Error:   ErrorCodeNotFound,
			Message: fmt.Sprintf("Product with ID %d not found", id),
		})
	}
	return c.JSON(ItemEnvelope{Version: EnvelopeVersion, Data: product})
}

// HandleCreateProduct runs the generic field rules, then requires a strictly
// positive price.
func (h *ProductHandlerV2) HandleCreateProduct(c *fiber.Ctx) error {
	req, fieldErrs, bodyErr := parseCreateRequest(c, h.validate)
	if bodyErr != nil {
		log.Warnf("V2: Error parsing create product body: %v", bodyErr)
		return c.Status(fiber.StatusBadRequest).JSON(ErrorEnvelope{
			Version: EnvelopeVersion,
			Error:   ErrorCodeBadRequest,
			Message: "Invalid request body",
		})
	}
	if fieldErrs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorEnvelope{
			Version: EnvelopeVersion,
			Error:   ErrorCodeValidation,
			Details: fieldErrs,
		})
	}
	if !req.Price.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorEnvelope{
			Version: EnvelopeVersion,
			Error:   ErrorCodeValidation,
			Message: "Price must be greater than zero",
		})
	}

	log.Info("V2: Creating new product with enhanced validation")
	product := h.creator.CreateProduct(req.ToProduct())

	c.Location(createdLocation(c, product.ID))
	return c.Status(fiber.StatusCreated).JSON(ItemEnvelope{
		Version: EnvelopeVersion,
		Message: "Product created successfully",
		Data:    &product,
	})
}
