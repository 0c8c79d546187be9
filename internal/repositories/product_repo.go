package repositories

import (
	"catalog/internal/models"

	"github.com/shopspring/decimal"
)

// ProductUpdate carries the fields of a partial product update. Nil fields
// keep their stored values.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Quantity    *int
}

// Empty reports whether no field is set at all.
func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil && u.Quantity == nil
}

// ProductRepository defines the interface for product data access.
// GetAll returns products newest-first; GetByID returns (nil, nil) when
// absent. Update and Delete assume the given product already exists.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product, changes ProductUpdate) (*models.Product, error)
	Delete(product *models.Product) error
}
