package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"productapi/internal/services"
)

// ProductHandlerV1 serves products as plain JSON values.
type ProductHandlerV1 struct {
	service  services.ProductService
	creator  services.ProductCreator
	validate *validator.Validate
}

// NewProductHandlerV1 creates a ProductHandlerV1. The create route is only
// offered when service also implements services.ProductCreator.
func NewProductHandlerV1(service services.ProductService) *ProductHandlerV1 {
	creator, _ := service.(services.ProductCreator)
	return &ProductHandlerV1{
		service:  service,
		creator:  creator,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes on router.
func (h *ProductHandlerV1) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	if h.creator != nil {
		productRoutes.Post("/", h.HandleCreateProduct)
	}
}

// HandleGetProducts returns every product in insertion order.
func (h *ProductHandlerV1) HandleGetProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.ListProducts())
}

// HandleGetProductByID returns one product or a 404 message.
func (h *ProductHandlerV1) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product ID",
			"error":   err.Error(),
		})
	}

	log.Infof("V1: Getting product with ID: %d", id)
	product, ok := h.service.GetProductByID(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Product with ID %d not found", id),
		})
	}
	return c.JSON(product)
}

// HandleCreateProduct validates the body and stores a new product.
func (h *ProductHandlerV1) HandleCreateProduct(c *fiber.Ctx) error {
	req, fieldErrs, bodyErr := parseCreateRequest(c, h.validate)
	if bodyErr != nil {
		log.Warnf("V1: Error parsing create product body: %v", bodyErr)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   bodyErr.Error(),
		})
	}
	if fieldErrs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  fieldErrs,
		})
	}

	log.Info("V1: Creating new product")
	product := h.creator.CreateProduct(req.ToProduct())

	c.Location(createdLocation(c, product.ID))
	return c.Status(fiber.StatusCreated).JSON(product)
}
