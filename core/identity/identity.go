// Package identity defines the user model and the principal attached to
// authenticated requests.
package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a registered account. The email is the identifying attribute:
// unique, stored lowercased, and embedded in issued tokens.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the resolved identity the auth gate attaches to a request.
type Principal struct {
	ID    uuid.UUID `json:"user_id"`
	Email string    `json:"email"`
}

// NormalizeEmail canonicalizes an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
