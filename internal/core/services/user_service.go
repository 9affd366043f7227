package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/life_management_app/internal/apperrors"
	"github.com/SscSPs/life_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/life_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/life_management_app/internal/core/ports/services"
	"github.com/SscSPs/life_management_app/internal/dto"
	"github.com/SscSPs/life_management_app/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// UserServiceOption is a functional option for configuring the user service
type UserServiceOption func(*userService)

func WithUserClock(now func() time.Time) UserServiceOption {
	return func(s *userService) {
		s.now = now
	}
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade, options ...UserServiceOption) portssvc.UserSvcFacade {
	svc := &userService{userRepo: userRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user", slog.String("user_id", userID))
		}
		return nil, err
	}
	if user.DeletedAt != nil {
		return nil, apperrors.NewNotFoundError("user", userID)
	}
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return nil, apperrors.NewValidationError("password is too long")
		}
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:          userID,
		Username:        strings.TrimSpace(req.Username),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Name:            req.Name,
		PasswordHash:    hash,
		AuthProvider:    domain.ProviderLocal,
		DefaultCurrency: req.DefaultCurrency,
		AuditFields:     domain.NewAuditFields(userID, now),
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("username", user.Username))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.LogInfo(ctx, "User registered", slog.String("user_id", userID))
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.DefaultCurrency != nil {
		if !req.DefaultCurrency.IsValid() {
			return nil, apperrors.NewValidationError("unsupported currency %q", *req.DefaultCurrency)
		}
		user.DefaultCurrency = req.DefaultCurrency
	}
	user.Touch(userID, s.Now())

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, s.Now(), userID); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}

// AuthenticateUser looks the identifier up as an email when it contains an
// "@", otherwise as a username. Unknown users and bad passwords both report
// ErrUnauthorized.
func (s *userService) AuthenticateUser(ctx context.Context, identifier, password string) (*domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	var (
		user *domain.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.userRepo.FindUserByEmail(ctx, strings.ToLower(identifier))
	} else {
		user, err = s.userRepo.FindUserByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}
	if user.DeletedAt != nil || user.AuthProvider != domain.ProviderLocal {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// FindOrCreateGoogleUser returns the user linked to the Google subject. An
// existing account with the same verified email is reused; otherwise a new
// Google user is created.
func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	if info.Subject == "" {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindUserByProviderID(ctx, domain.ProviderGoogle, info.Subject)
	switch {
	case err == nil:
		if user.DeletedAt != nil {
			return nil, apperrors.ErrUnauthorized
		}
		return user, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to look up Google user")
		return nil, err
	}

	if !info.EmailVerified || info.Email == "" {
		return nil, apperrors.NewForbiddenError("google account email is not verified")
	}
	email := strings.ToLower(info.Email)

	user, err = s.userRepo.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		if user.DeletedAt != nil {
			return nil, apperrors.ErrUnauthorized
		}
		return user, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to look up user by email")
		return nil, err
	}

	now := s.Now()
	userID := uuid.NewString()
	name := info.Name
	if name == "" {
		name = email
	}
	newUser := domain.User{
		UserID:         userID,
		Username:       googleUsername(email, userID),
		Email:          email,
		Name:           name,
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: info.Subject,
		AuditFields:    domain.NewAuditFields(userID, now),
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "Failed to save Google user")
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}
	s.LogInfo(ctx, "Google user registered", slog.String("user_id", userID))
	return &newUser, nil
}

// googleUsername is the email local part plus a slice of the user ID.
func googleUsername(email, userID string) string {
	local, _, _ := strings.Cut(email, "@")
	return local + "-" + userID[:8]
}
