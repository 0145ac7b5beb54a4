package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog entry. Records are owned by a repository;
// callers receive copies.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// MarshalJSON writes the price as a JSON number without touching the
// package-wide decimal setting.
func (p Product) MarshalJSON() ([]byte, error) {
	type product Product
	return json.Marshal(struct {
		product
		Price json.RawMessage `json:"price"`
	}{product: product(p), Price: json.RawMessage(p.Price.String())})
}

// CreateProductRequest is the body accepted by the create endpoints.
// Price carries no generic rule; stricter checks belong to the API version.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// ToProduct converts the request into a draft for the repository.
func (r CreateProductRequest) ToProduct() Product {
	return Product{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
	}
}
