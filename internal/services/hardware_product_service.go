package services

import (
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/shopspring/decimal"

	"productapi/internal/models"
	"productapi/internal/repositories"
)

const day = 24 * time.Hour

// HardwareCatalog is the seed data of the hardware variant.
func HardwareCatalog() []repositories.SeedProduct {
	return []repositories.SeedProduct{
		{Product: models.Product{Name: "Laptop", Price: decimal.RequireFromString("999.99"), Description: "High-performance laptop"}, Age: 10 * day},
		{Product: models.Product{Name: "Mouse", Price: decimal.RequireFromString("29.99"), Description: "Wireless mouse"}, Age: 5 * day},
		{Product: models.Product{Name: "Keyboard", Price: decimal.RequireFromString("79.99"), Description: "Mechanical keyboard"}, Age: 3 * day},
	}
}

// HardwareProductService lists, fetches and creates hardware products.
type HardwareProductService struct {
	catalog
	publisher EventPublisher
}

// NewHardwareProductService seeds repo with HardwareCatalog and returns the
// service. publisher may be nil.
func NewHardwareProductService(repo repositories.SeedableProductRepository, settings models.ApplicationSettings, publisher EventPublisher) *HardwareProductService {
	repo.Seed(HardwareCatalog())
	return &HardwareProductService{
		catalog:   catalog{name: CatalogHardware, repo: repo, settings: settings},
		publisher: publisher,
	}
}

// CreateProduct stores draft and announces it. A failed publish is logged
// and does not undo the create.
func (s *HardwareProductService) CreateProduct(draft models.Product) models.Product {
	product := s.repo.Create(draft)
	log.Infof("Created new product with ID: %d", product.ID)

	if s.publisher == nil {
		return product
	}

	event := map[string]interface{}{
		"productID": product.ID,
		"name":      product.Name,
		"price":     product.Price.String(),
		"createdAt": product.CreatedAt.Format(time.RFC3339Nano),
	}
	if err := s.publisher.PublishProductCreated(event); err != nil {
		log.Warnf("Failed to publish product created event for product %d: %v", product.ID, err)
	} else {
		log.Infof("Published product created event for product %d", product.ID)
	}
	return product
}
