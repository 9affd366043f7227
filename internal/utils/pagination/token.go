// Package pagination encodes keyset cursors as opaque page tokens.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/life_management_app/internal/apperrors"
)

const timeFormat = time.RFC3339Nano

// Cursor identifies the last row of a page ordered by (date, created_at, id) descending.
type Cursor struct {
	Date      time.Time
	CreatedAt time.Time
	ID        string
}

// EncodeToken turns a cursor into a URL-safe token.
func EncodeToken(c Cursor) string {
	raw := strings.Join([]string{
		c.Date.UTC().Format(timeFormat),
		c.CreatedAt.UTC().Format(timeFormat),
		c.ID,
	}, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeToken parses a token produced by EncodeToken. Malformed tokens yield
// an error matching apperrors.ErrValidation.
func DecodeToken(token string) (Cursor, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: invalid page token (base64 decode): %v", apperrors.ErrValidation, err)
	}

	parts := strings.SplitN(string(decoded), "|", 3)
	if len(parts) != 3 || parts[2] == "" {
		return Cursor{}, fmt.Errorf("%w: invalid page token (split)", apperrors.ErrValidation)
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: invalid page token (date parse): %v", apperrors.ErrValidation, err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: invalid page token (created_at parse): %v", apperrors.ErrValidation, err)
	}

	return Cursor{Date: date, CreatedAt: createdAt, ID: parts[2]}, nil
}
