package repositories

import "catalog/internal/models"

// UserRepository defines the interface for user data access.
// Lookups return (nil, nil) when no matching user exists; a non-nil error
// means the store itself failed.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}
