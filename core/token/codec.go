// Package token implements the bearer token lifecycle: a Codec that issues
// and verifies signed, time-limited tokens, and a Store that tracks the
// single live token per principal so tokens can be revoked before expiry.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned by Verify for any token that fails signature,
// structural, or expiry checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload embedded in issued tokens. The subject carries the
// principal's normalized email.
type Claims struct {
	jwt.RegisteredClaims
}

// Email returns the identifying attribute embedded in the token.
func (c *Claims) Email() string {
	return c.Subject
}

// Codec issues and verifies HS256-signed bearer tokens. It is stateless and
// safe for concurrent use; revocation is the Store's job.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a Codec signing with the given HMAC secret. Issued tokens
// expire after ttl.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token embedding the email and an expiry timestamp.
// Each token carries a random ID so two issuances within the same second
// still differ.
func (c *Codec) Issue(email string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign failed: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string. It fails with ErrInvalidToken
// if the signature does not match, the structure is malformed, or the current
// time is at or after the embedded expiry. On success it returns the embedded
// claims.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
