package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog. Price is a 2-digit decimal
// stored and compared exactly; the check constraints mirror the
// application-level validation as a last line of defense.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string          `json:"name" gorm:"type:varchar(120);check:products_name_min_len,length(name) >= 2" validate:"required,min=2,max=120"`
	Description string          `json:"description" gorm:"type:varchar(1000)" validate:"omitempty,max=1000"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);check:products_price_nonneg,price >= 0"`
	Quantity    int             `json:"quantity" gorm:"check:products_quantity_nonneg,quantity >= 0" validate:"gte=0"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
