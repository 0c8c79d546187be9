package models

import "time"

// Roles a user can hold. The role is fixed at creation time; the public
// API has no role-change operation.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User represents an account of the store.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username     string    `json:"username" gorm:"uniqueIndex;type:varchar(100);check:users_username_min_len,length(username) >= 3" validate:"required,min=3,max=100"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)"` // Never exposed to API callers
	Role         string    `json:"role" gorm:"type:varchar(10);default:USER" validate:"omitempty,oneof=ADMIN USER"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
