package models

import "time"

// User is a row of the users table. Nullable columns are pointers.
type User struct {
	UserID          string  `db:"user_id"`
	Username        string  `db:"username"`
	Email           string  `db:"email"`
	Name            string  `db:"name"`
	PasswordHash    *string `db:"password_hash"` // NULL for external sign-in
	AuthProvider    string  `db:"auth_provider"`
	ProviderUserID  *string `db:"provider_user_id"`
	DefaultCurrency *string `db:"default_currency"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
