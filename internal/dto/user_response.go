package dto

import (
	"time"

	"github.com/SscSPs/life_management_app/internal/core/domain"
)

type UserResponse struct {
	UserID          string              `json:"userID"`
	Username        string              `json:"username"`
	Email           string              `json:"email"`
	Name            string              `json:"name"`
	AuthProvider    domain.AuthProvider `json:"authProvider"`
	DefaultCurrency *domain.Currency    `json:"defaultCurrency,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:          user.UserID,
		Username:        user.Username,
		Email:           user.Email,
		Name:            user.Name,
		AuthProvider:    user.AuthProvider,
		DefaultCurrency: user.DefaultCurrency,
		CreatedAt:       user.CreatedAt,
	}
}
