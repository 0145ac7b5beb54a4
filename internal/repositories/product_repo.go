package repositories

import (
	"productapi/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() []models.Product
	// GetByID reports absence through the boolean, never through an error.
	GetByID(id int) (*models.Product, bool)
	Create(draft models.Product) models.Product
}

// SeedableProductRepository is a ProductRepository that can be populated
// with a sample catalog once at startup.
type SeedableProductRepository interface {
	ProductRepository
	Seed(seed []SeedProduct)
}
