package services

import (
	"context"
	"time"

	"github.com/SscSPs/life_management_app/internal/core/domain"
)

// TokenSvcFacade issues access tokens for authenticated users.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// GoogleOAuthSvcFacade defines the interface for Google sign-in.
type GoogleOAuthSvcFacade interface {
	// GenerateStateString creates a random CSRF token for the OAuth round trip.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCode trades an authorization code for tokens and returns the
	// verified identity carried by the ID token.
	ExchangeCode(ctx context.Context, code string) (*domain.GoogleUserInfo, error)
}
