// Package server assembles the Fiber application.
package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"productapi/internal/config"
	"productapi/internal/handlers"
	"productapi/internal/middleware"
	"productapi/internal/router"
	"productapi/internal/services"
)

// New builds the application: middleware, health check and the versioned
// /api surface backed by products.
func New(store *config.Store, products services.ProductService) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      store.Application().ApplicationName,
		ErrorHandler: ErrorHandler(store.Application().EnableDetailedErrors),
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${locals:" + middleware.RequestIDKey + "} | ${status} | ${latency} | ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	// --- API Routes ---
	api := router.New(app, "/api", router.V1)
	api.Register(router.V1, handlers.NewProductHandlerV1(products).RegisterRoutes)
	api.Register(router.V1, handlers.NewConfigurationHandler(store).RegisterRoutes)
	api.Register(router.V2, handlers.NewProductHandlerV2(products).RegisterRoutes)
	api.Mount()

	return app
}

// ErrorHandler renders routing failures as plain text and anything else as
// a 500 JSON body. Error details are only exposed when detailed is true.
func ErrorHandler(detailed bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var unsupported *router.UnsupportedVersionError
		if errors.As(err, &unsupported) {
			log.Warnf("Rejected request for %s", unsupported.Path)
			c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
			return c.Status(fiber.StatusNotFound).SendString(err.Error())
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
			return c.Status(fe.Code).SendString(fe.Message)
		}

		log.Errorf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
		body := fiber.Map{"message": "Internal server error"}
		if detailed {
			body["error"] = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}
}
