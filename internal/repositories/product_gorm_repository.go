package repositories

import (
	"errors"
	"fmt"

	"catalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

var _ ProductRepository = (*GORMProductRepository)(nil)

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products ordered by creation time, newest first.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID, (nil, nil) when absent.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product, generating its ID when absent. The stored
// entity, including server-set timestamps, is written back into product.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update applies a partial update: only set fields of changes are written,
// and updated_at is refreshed on every call. The row is re-read afterwards
// so the result reflects any server-computed columns.
func (r *GORMProductRepository) Update(product *models.Product, changes ProductUpdate) (*models.Product, error) {
	values := map[string]interface{}{}
	if changes.Name != nil {
		values["name"] = *changes.Name
	}
	if changes.Description != nil {
		values["description"] = *changes.Description
	}
	if changes.Price != nil {
		values["price"] = *changes.Price
	}
	if changes.Quantity != nil {
		values["quantity"] = *changes.Quantity
	}

	res := r.db.Model(&models.Product{}).Where("id = ?", product.ID).Updates(values)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("product with ID %s not found for update", product.ID)
	}

	var updated models.Product
	if err := r.db.First(&updated, "id = ?", product.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload product %s: %w", product.ID, err)
	}
	return &updated, nil
}

// Delete removes a product.
func (r *GORMProductRepository) Delete(product *models.Product) error {
	res := r.db.Delete(&models.Product{}, "id = ?", product.ID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for deletion", product.ID)
	}
	return nil
}
