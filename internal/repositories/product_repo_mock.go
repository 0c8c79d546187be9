package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"catalog/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

var _ ProductRepository = (*MockProductRepository)(nil)

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products ordered by creation time, newest first.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool {
		return productList[i].CreatedAt.After(productList[j].CreatedAt)
	})
	return productList, nil
}

// GetByID returns a product by its ID, (nil, nil) when absent.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

// Create adds a new product, stamping ID and timestamps like the store would.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	r.products[product.ID] = *product
	return nil
}

// Update applies a partial update and refreshes UpdatedAt.
func (r *MockProductRepository) Update(product *models.Product, changes ProductUpdate) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.products[product.ID]
	if !ok {
		return nil, fmt.Errorf("product with ID %s not found for update", product.ID)
	}
	if changes.Name != nil {
		stored.Name = *changes.Name
	}
	if changes.Description != nil {
		stored.Description = *changes.Description
	}
	if changes.Price != nil {
		stored.Price = *changes.Price
	}
	if changes.Quantity != nil {
		stored.Quantity = *changes.Quantity
	}
	stored.UpdatedAt = time.Now()
	r.products[product.ID] = stored
	return &stored, nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product with ID %s not found for deletion", product.ID)
	}
	delete(r.products, product.ID)
	return nil
}
