package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/life_management_app/internal/apperrors"
	"github.com/SscSPs/life_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/life_management_app/internal/core/ports/services"
	"github.com/SscSPs/life_management_app/internal/platform/config"
	"github.com/SscSPs/life_management_app/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// tokenService issues HS256 access tokens from the configured secret.
type tokenService struct {
	BaseService
	secret string
	expiry time.Duration
	issuer string
}

func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{
		secret: cfg.JWTSecret,
		expiry: cfg.JWTExpiryDuration,
		issuer: cfg.JWTIssuer,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	token, expiresAt, err := utils.GenerateJWT(user.UserID, s.secret, s.expiry, s.issuer, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// idTokenValidator matches idtoken.Validate.
type idTokenValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// googleOAuthService implements GoogleOAuthSvcFacade.
type googleOAuthService struct {
	BaseService
	oauth2Config *oauth2.Config
	validate     idTokenValidator
}

func NewGoogleOAuthService(cfg *config.Config) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthService{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		validate: idtoken.Validate,
	}
}

var _ portssvc.GoogleOAuthSvcFacade = (*googleOAuthService)(nil)

// GenerateStateString creates a random CSRF token for the OAuth round trip.
func (s *googleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

func (s *googleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// ExchangeCode trades the authorization code for tokens and validates the
// returned ID token against our client ID.
func (s *googleOAuthService) ExchangeCode(ctx context.Context, code string) (*domain.GoogleUserInfo, error) {
	if s.oauth2Config.ClientID == "" {
		return nil, errors.New("google client ID is not configured")
	}
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "Google code exchange failed")
		return nil, fmt.Errorf("%w: google code exchange failed", apperrors.ErrUnauthorized)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("%w: google response carried no id_token", apperrors.ErrUnauthorized)
	}
	payload, err := s.validate(ctx, rawIDToken, s.oauth2Config.ClientID)
	if err != nil {
		s.LogError(ctx, err, "Google ID token rejected")
		return nil, fmt.Errorf("%w: google ID token validation failed", apperrors.ErrUnauthorized)
	}
	return userInfoFromPayload(payload), nil
}

func userInfoFromPayload(p *idtoken.Payload) *domain.GoogleUserInfo {
	info := &domain.GoogleUserInfo{Subject: p.Subject}
	if email, ok := p.Claims["email"].(string); ok {
		info.Email = email
	}
	if verified, ok := p.Claims["email_verified"].(bool); ok {
		info.EmailVerified = verified
	}
	if name, ok := p.Claims["name"].(string); ok {
		info.Name = name
	}
	return info
}
