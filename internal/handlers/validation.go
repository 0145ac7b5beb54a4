package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"productapi/internal/models"
)

// parseCreateRequest decodes and validates a create body. A non-nil error
// means the body could not be decoded; a non-nil map lists the generic field
// rules that failed.
func parseCreateRequest(c *fiber.Ctx, validate *validator.Validate) (models.CreateProductRequest, map[string]string, error) {
	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return req, nil, err
	}
	if err := validate.Struct(req); err != nil {
		return req, validationMessages(err), nil
	}
	return req, nil, nil
}

func validationMessages(err error) map[string]string {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errorMessages["request"] = err.Error()
		return errorMessages
	}
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return errorMessages
}

// createdLocation builds the URL of a new product from the collection path.
func createdLocation(c *fiber.Ctx, id int) string {
	path := c.Path()
	for len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	return fmt.Sprintf("%s/%d", path, id)
}
