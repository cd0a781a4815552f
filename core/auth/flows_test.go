package auth

import (
	"context"
	"errors"
	"testing"
)

func newTestAuthenticator() (*Authenticator, *memTokenStore, *memUserStore) {
	tokens := newMemTokenStore()
	users := newMemUserStore()
	// Low cost keeps the test fast; production cost comes from config.
	a := NewAuthenticator(users, tokens, newTestCodec(), NewBcryptHasher(4), nil)
	return a, tokens, users
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	a, tokens, _ := newTestAuthenticator()

	user, err := a.Register(ctx, "Alice@Example.com", "password123")
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "password123" || user.PasswordHash == "" {
		t.Error("expected password to be hashed")
	}

	tok, logged, err := a.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	if logged.ID != user.ID {
		t.Error("expected login to resolve the registered user")
	}
	if !tokens.Exists(ctx, tok, "alice@example.com") {
		t.Error("expected issued token to be stored as the live token")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestAuthenticator()

	if _, err := a.Register(ctx, "alice@example.com", "password123"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if _, err := a.Register(ctx, "ALICE@example.com", "other"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestAuthenticator()

	if _, err := a.Register(ctx, "alice@example.com", "password123"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	if _, _, err := a.Login(ctx, "alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := a.Login(ctx, "nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestReloginInvalidatesPreviousToken(t *testing.T) {
	ctx := context.Background()
	a, tokens, _ := newTestAuthenticator()

	if _, err := a.Register(ctx, "alice@example.com", "password123"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	t1, _, err := a.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	t2, _, err := a.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}

	if t1 == t2 {
		t.Fatal("expected each login to issue a distinct token")
	}
	if tokens.Exists(ctx, t1, "alice@example.com") {
		t.Error("expected first token to be superseded")
	}
	if !tokens.Exists(ctx, t2, "alice@example.com") {
		t.Error("expected second token to be live")
	}
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	a, tokens, _ := newTestAuthenticator()

	if _, err := a.Register(ctx, "alice@example.com", "password123"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	tok, _, err := a.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	revoked, err := a.Logout(ctx, tok)
	if err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if !revoked {
		t.Error("expected logout to revoke the live token")
	}
	if tokens.Exists(ctx, tok, "alice@example.com") {
		t.Error("expected token to be gone after logout")
	}

	// Second logout with the same token is a no-op.
	revoked, err = a.Logout(ctx, tok)
	if err != nil {
		t.Fatalf("second logout failed: %v", err)
	}
	if revoked {
		t.Error("expected second logout to report false")
	}
}
