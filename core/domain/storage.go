// Package domain defines the storage contracts implemented by persistence
// adapters (see the mbgorm package for the GORM implementation).
package domain

import (
	"context"

	"github.com/google/uuid"

	"github.com/markbase/markbase/core/identity"
	"github.com/markbase/markbase/core/notes"
)

// Storage aggregates every persistence concern of the application.
type Storage interface {
	UserStorage
	notes.Storage
}

// UserStorage persists registered users.
type UserStorage interface {
	CreateUser(ctx context.Context, u *identity.User) error
	// GetUserByEmail looks a user up by normalized email. A miss is an error.
	GetUserByEmail(ctx context.Context, email string) (*identity.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*identity.User, error)
}

// Hasher defines the interface for password hashing and verification.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(password, hash string) bool
}
