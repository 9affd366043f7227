package dto

import (
	"github.com/SscSPs/life_management_app/internal/core/domain"
)

// CreateUserRequest is the local registration payload.
type CreateUserRequest struct {
	Username        string           `json:"username" binding:"required,min=3,max=50"`
	Email           string           `json:"email" binding:"required,email"`
	Name            string           `json:"name" binding:"required,max=100"`
	Password        string           `json:"password" binding:"required,min=8,max=72"`
	DefaultCurrency *domain.Currency `json:"defaultCurrency" binding:"omitempty,currency"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name            *string          `json:"name" binding:"omitempty,max=100"`
	DefaultCurrency *domain.Currency `json:"defaultCurrency" binding:"omitempty,currency"`
}
