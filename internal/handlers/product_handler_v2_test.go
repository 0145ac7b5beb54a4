package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productapi/internal/handlers"
	"productapi/internal/models"
	"productapi/internal/services"
)

func newV2App(service services.ProductService) *fiber.App {
	return setupApp("/api/v2", handlers.NewProductHandlerV2(service).RegisterRoutes)
}

func TestProductHandlerV2_GetProducts(t *testing.T) {
	app := newV2App(newHardwareService())

	resp := doRequest(t, app, http.MethodGet, "/api/v2/products", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope handlers.ListEnvelope
	decode(t, resp, &envelope)
	assert.Equal(t, "2.0", envelope.Version)
	assert.Equal(t, 3, envelope.Count)
	assert.Len(t, envelope.Data, envelope.Count)
	assert.Equal(t, "Laptop", envelope.Data[0].Name)
}

func TestProductHandlerV2_CountMatchesDataAfterCreates(t *testing.T) {
	app := newV2App(newHardwareService())

	for _, name := range []string{"Monitor", "Dock"} {
		resp := doRequest(t, app, http.MethodPost, "/api/v2/products", map[string]interface{}{"name": name, "price": 10})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doRequest(t, app, http.MethodGet, "/api/v2/products", nil)
	var envelope handlers.ListEnvelope
	decode(t, resp, &envelope)
	assert.Equal(t, 5, envelope.Count)
	assert.Len(t, envelope.Data, envelope.Count)
}

func TestProductHandlerV2_EmptyListIsArray(t *testing.T) {
	mockService := new(MockProductService)
	mockService.On("ListProducts").Return([]models.Product(nil)).Once()
	app := newV2App(mockService)

	resp := doRequest(t, app, http.MethodGet, "/api/v2/products", nil)
	var raw map[string]interface{}
	decode(t, resp, &raw)
	assert.Equal(t, float64(0), raw["count"])
	assert.Equal(t, []interface{}{}, raw["data"])
	mockService.AssertExpectations(t)
}

func TestProductHandlerV2_GetProductByID(t *testing.T) {
	app := newV2App(newHardwareService())

	resp := doRequest(t, app, http.MethodGet, "/api/v2/products/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope handlers.ItemEnvelope
	decode(t, resp, &envelope)
	assert.Equal(t, "2.0", envelope.Version)
	require.NotNil(t, envelope.Data)
	assert.Equal(t, "Laptop", envelope.Data.Name)
}

func TestProductHandlerV2_GetProductByIDNotFound(t *testing.T) {
	app := newV2App(newHardwareService())

	resp := doRequest(t, app, http.MethodGet, "/api/v2/products/99", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var envelope handlers.ErrorEnvelope
	decode(t, resp, &envelope)
	assert.Equal(t, handlers.ErrorEnvelope{
		Version: "2.0",
		Error:   "NotFound",
		Message: "Product with ID 99 not found",
	}, envelope)
}

func TestProductHandlerV2_CreateProduct(t *testing.T) {
	app := newV2App(newHardwareService())

	resp := doRequest(t, app, http.MethodPost, "/api/v2/products", map[string]interface{}{
		"name":        "Monitor",
		"price":       199.99,
		"description": "4K",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/api/v2/products/4", resp.Header.Get("Location"))

	var envelope handlers.ItemEnvelope
	decode(t, resp, &envelope)
	assert.Equal(t, "2.0", envelope.Version)
	assert.Equal(t, "Product created successfully", envelope.Message)
	require.NotNil(t, envelope.Data)
	assert.Equal(t, 4, envelope.Data.ID)
}

func TestProductHandlerV2_CreateRejectsNonPositivePrice(t *testing.T) {
	for _, price := range []interface{}{0, -5.5} {
		app := newV2App(newHardwareService())

		resp := doRequest(t, app, http.MethodPost, "/api/v2/products", map[string]interface{}{
			"name":  "Freebie",
			"price": price,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var envelope handlers.ErrorEnvelope
		decode(t, resp, &envelope)
		assert.Equal(t, "ValidationError", envelope.Error)
		assert.Equal(t, "Price must be greater than zero", envelope.Message)
		assert.Empty(t, envelope.Details)
	}
}

func TestProductHandlerV2_CreateMissingFieldIsDistinctFromPriceError(t *testing.T) {
	app := newV2App(newHardwareService())

	resp := doRequest(t, app, http.MethodPost, "/api/v2/products", map[string]interface{}{
		"price": 0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var envelope handlers.ErrorEnvelope
	decode(t, resp, &envelope)
	assert.Equal(t, "ValidationError", envelope.Error)
	assert.Empty(t, envelope.Message)
	assert.Contains(t, envelope.Details, "Name")
}

func TestProductHandlerV2_CreateInvalidBody(t *testing.T) {
	app := newV2App(newHardwareService())

	resp := doRequest(t, app, http.MethodPost, "/api/v2/products", map[string]interface{}{
		"name":  "Monitor",
		"price": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var envelope handlers.ErrorEnvelope
	decode(t, resp, &envelope)
	assert.Equal(t, "2.0", envelope.Version)
	assert.Equal(t, "BadRequest", envelope.Error)
}
