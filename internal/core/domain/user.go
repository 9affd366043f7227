package domain

import "time"

// AuthProvider identifies how a user signs in.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User represents a user of the application in the domain.
type User struct {
	UserID          string       `json:"userID"` // Primary Key (UUID)
	Username        string       `json:"username"`
	Email           string       `json:"email"`
	Name            string       `json:"name"`
	PasswordHash    string       `json:"-"`
	AuthProvider    AuthProvider `json:"authProvider"`
	ProviderUserID  string       `json:"-"` // Subject claim from the external provider
	DefaultCurrency *Currency    `json:"defaultCurrency,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// GoogleUserInfo is the subset of the Google ID token payload we keep.
type GoogleUserInfo struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}
