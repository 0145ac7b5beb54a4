package services

import (
	"github.com/shopspring/decimal"

	"productapi/internal/models"
	"productapi/internal/repositories"
)

// SoftwareCatalog is the seed data of the software variant.
func SoftwareCatalog() []repositories.SeedProduct {
	return []repositories.SeedProduct{
		{Product: models.Product{Name: "Chrome", Price: decimal.RequireFromString("999.99"), Description: "Chrome Browser"}, Age: 10 * day},
		{Product: models.Product{Name: "Firefox", Price: decimal.RequireFromString("299.99"), Description: "Firefox Browser"}, Age: 5 * day},
		{Product: models.Product{Name: "Opera", Price: decimal.RequireFromString("799.99"), Description: "Opera Browser"}, Age: 3 * day},
	}
}

// SoftwareProductService is read-only: it does not implement ProductCreator.
type SoftwareProductService struct {
	catalog
}

// NewSoftwareProductService seeds repo with SoftwareCatalog.
func NewSoftwareProductService(repo repositories.SeedableProductRepository, settings models.ApplicationSettings) *SoftwareProductService {
	repo.Seed(SoftwareCatalog())
	return &SoftwareProductService{
		catalog: catalog{name: CatalogSoftware, repo: repo, settings: settings},
	}
}
