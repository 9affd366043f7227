package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/life_management_app/internal/apperrors"
	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/platform/config"
	"github.com/SscSPs/life_management_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func TestTokenService_GenerateAccessToken(t *testing.T) {
	svc := NewTokenService(&config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: 30 * time.Minute,
		JWTIssuer:         "lma-test",
	})

	token, expiresAt, err := svc.GenerateAccessToken(context.Background(), &domain.User{UserID: "user-1"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)

	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "lma-test", claims.Issuer)
}

func TestGoogleOAuthService_LoginURLCarriesState(t *testing.T) {
	svc := NewGoogleOAuthService(&config.Config{
		GoogleClientID:    "client-id",
		GoogleRedirectURL: "http://localhost:3000/auth/callback",
	})

	state, err := svc.GenerateStateString(context.Background())
	require.NoError(t, err)
	url := svc.GetGoogleLoginURL(context.Background(), state)

	assert.Contains(t, url, "state="+state)
	assert.Contains(t, url, "client_id=client-id")
}

func TestGoogleOAuthService_ExchangeWithoutClientID(t *testing.T) {
	svc := NewGoogleOAuthService(&config.Config{})

	_, err := svc.ExchangeCode(context.Background(), "code")

	assert.Error(t, err)
}

func TestUserInfoFromPayload(t *testing.T) {
	info := userInfoFromPayload(&idtoken.Payload{
		Subject: "sub-9",
		Claims: map[string]interface{}{
			"email":          "carol@example.com",
			"email_verified": true,
			"name":           "Carol",
		},
	})

	assert.Equal(t, domain.GoogleUserInfo{
		Subject: "sub-9", Email: "carol@example.com", EmailVerified: true, Name: "Carol",
	}, *info)
}

func TestUserInfoFromPayload_MissingClaims(t *testing.T) {
	info := userInfoFromPayload(&idtoken.Payload{Subject: "sub-10", Claims: map[string]interface{}{}})

	assert.Equal(t, "sub-10", info.Subject)
	assert.False(t, info.EmailVerified)
}

func TestAuthorizeOwner(t *testing.T) {
	var base BaseService
	assert.NoError(t, base.AuthorizeOwner(context.Background(), "expense", "e1", "u1", "u1"))
	err := base.AuthorizeOwner(context.Background(), "expense", "e1", "u1", "u2")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
