package resolvers

import (
	"time"

	"catalog/internal/models"
)

// UserView is the public shape of a user; the password hash and email are
// never exposed.
type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResult pairs a freshly issued token with the public user view.
type LoginResult struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// ProductView is the public shape of a product. Price is rendered as an
// exact decimal string so callers never observe binary floating-point
// drift; timestamps are RFC 3339.
type ProductView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func newUserView(user *models.User) UserView {
	return UserView{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}

func newProductView(product *models.Product) ProductView {
	return ProductView{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price.StringFixed(2),
		Quantity:    product.Quantity,
		CreatedAt:   product.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   product.UpdatedAt.Format(time.RFC3339),
	}
}
