package repositories

import (
	"sync"
	"time"

	"productapi/internal/models"
)

// SeedProduct describes a sample record and how long ago it was created.
type SeedProduct struct {
	Product models.Product
	Age     time.Duration
}

// MemoryProductRepository keeps products in insertion order. Identifiers are
// assigned sequentially from 1 under the write lock.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	nextID   int
	now      func() time.Time
	seedOnce sync.Once
}

// Option configures a MemoryProductRepository.
type Option func(*MemoryProductRepository)

// WithClock overrides the time source used for CreatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(r *MemoryProductRepository) {
		r.now = now
	}
}

// NewMemoryProductRepository creates an empty repository.
func NewMemoryProductRepository(opts ...Option) *MemoryProductRepository {
	r := &MemoryProductRepository{
		products: make([]models.Product, 0),
		nextID:   1,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Seed appends the sample catalog. Only the first call has any effect.
func (r *MemoryProductRepository) Seed(seed []SeedProduct) {
	r.seedOnce.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		now := r.now().UTC()
		for _, s := range seed {
			p := s.Product
			p.ID = r.nextID
			r.nextID++
			p.CreatedAt = now.Add(-s.Age)
			r.products = append(r.products, p)
		}
	})
}

// GetAll returns a snapshot of all products in insertion order.
func (r *MemoryProductRepository) GetAll() []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, len(r.products))
	copy(productList, r.products)
	return productList
}

// GetByID returns the first product with the given ID.
func (r *MemoryProductRepository) GetByID(id int) (*models.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.products {
		if r.products[i].ID == id {
			product := r.products[i]
			return &product, true
		}
	}
	return nil, false
}

// Create assigns the next ID, stamps the current UTC time and appends the
// product. Any ID or timestamp on the draft is overwritten.
func (r *MemoryProductRepository) Create(draft models.Product) models.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	draft.ID = r.nextID
	r.nextID++
	draft.CreatedAt = r.now().UTC()
	r.products = append(r.products, draft)
	return draft
}
