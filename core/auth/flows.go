package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/markbase/markbase/core/audit"
	"github.com/markbase/markbase/core/domain"
	"github.com/markbase/markbase/core/identity"
	"github.com/markbase/markbase/core/token"
)

var (
	// ErrEmailTaken is returned when registering an email that already has
	// an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on login when the email is unknown
	// or the password does not match. The two cases are indistinguishable
	// to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Authenticator implements the register/login/logout flows. Login issues a
// fresh token and replaces the stored one, so each user has at most one live
// session at a time.
type Authenticator struct {
	users    domain.UserStorage
	tokens   token.Store
	codec    *token.Codec
	hasher   domain.Hasher
	recorder *audit.Recorder
}

func NewAuthenticator(users domain.UserStorage, tokens token.Store, codec *token.Codec, hasher domain.Hasher, recorder *audit.Recorder) *Authenticator {
	return &Authenticator{
		users:    users,
		tokens:   tokens,
		codec:    codec,
		hasher:   hasher,
		recorder: recorder,
	}
}

// Register creates a new account with a bcrypt-hashed password. The email is
// normalized before storage.
func (a *Authenticator) Register(ctx context.Context, email, password string) (*identity.User, error) {
	email = identity.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("auth: email and password are required")
	}

	if _, err := a.users.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	user := &identity.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := a.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("auth: create user: %w", err)
	}

	a.recorder.Record(ctx, audit.TypeRegister, email, audit.StatusSuccess, "account created")
	return user, nil
}

// Login verifies the credentials and issues a new bearer token. Storing the
// token replaces any previous one for the same email, revoking earlier
// sessions.
func (a *Authenticator) Login(ctx context.Context, email, password string) (string, *identity.User, error) {
	email = identity.NormalizeEmail(email)

	user, err := a.users.GetUserByEmail(ctx, email)
	if err != nil {
		a.recorder.Record(ctx, audit.TypeLogin, email, audit.StatusFailure, "unknown email")
		return "", nil, ErrInvalidCredentials
	}

	if !a.hasher.Compare(password, user.PasswordHash) {
		a.recorder.Record(ctx, audit.TypeLogin, email, audit.StatusFailure, "wrong password")
		return "", nil, ErrInvalidCredentials
	}

	tok, err := a.codec.Issue(email)
	if err != nil {
		return "", nil, err
	}
	if err := a.tokens.Put(ctx, email, tok); err != nil {
		return "", nil, fmt.Errorf("auth: store token: %w", err)
	}

	a.recorder.Record(ctx, audit.TypeLogin, email, audit.StatusSuccess, "logged in")
	return tok, user, nil
}

// Logout revokes the given token. It reports whether a live token was
// actually revoked, and is safe to call with an already-revoked or garbage
// token.
func (a *Authenticator) Logout(ctx context.Context, tokenString string) (bool, error) {
	revoked, err := a.tokens.DeleteByToken(ctx, tokenString)
	if err != nil {
		return false, err
	}
	if revoked {
		a.recorder.Record(ctx, audit.TypeLogout, "", audit.StatusSuccess, "token revoked")
	}
	return revoked, nil
}
