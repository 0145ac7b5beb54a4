package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"productapi/internal/models"
	"productapi/internal/repositories"
)

// Catalog kinds selectable at startup.
const (
	CatalogHardware = "hardware"
	CatalogSoftware = "software"
)

// ErrUnknownCatalog is returned by NewCatalog for an unsupported kind.
var ErrUnknownCatalog = errors.New("unknown product catalog")

// ProductService is the read capability every catalog offers.
type ProductService interface {
	ListProducts() []models.Product
	// GetProductByID reports a miss through the boolean.
	GetProductByID(id int) (*models.Product, bool)
}

// ProductCreator is implemented by catalogs that accept new products.
type ProductCreator interface {
	CreateProduct(draft models.Product) models.Product
}

// EventPublisher receives product lifecycle events.
type EventPublisher interface {
	PublishProductCreated(event map[string]interface{}) error
}

// NewCatalog builds the catalog named by kind on top of its own repository.
// publisher may be nil.
func NewCatalog(kind string, settings models.ApplicationSettings, publisher EventPublisher) (ProductService, error) {
	repo := repositories.NewMemoryProductRepository()
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case CatalogHardware:
		return NewHardwareProductService(repo, settings, publisher), nil
	case CatalogSoftware:
		return NewSoftwareProductService(repo, settings), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCatalog, kind)
	}
}

// catalog holds the read path shared by both variants.
type catalog struct {
	name     string
	repo     repositories.ProductRepository
	settings models.ApplicationSettings
}

func (c *catalog) ListProducts() []models.Product {
	// MaxItemsPerPage is reported, not applied.
	log.Infof("Getting all %s products. Max items per page: %d", c.name, c.settings.MaxItemsPerPage)
	return c.repo.GetAll()
}

func (c *catalog) GetProductByID(id int) (*models.Product, bool) {
	log.Infof("Getting %s product with ID: %d", c.name, id)
	return c.repo.GetByID(id)
}
