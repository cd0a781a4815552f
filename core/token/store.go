package token

import "context"

// Store persists the single currently-valid token per principal. Issuing a
// new token for an email replaces the old record, which is how earlier
// tokens for the same principal are revoked.
//
// Implementations swallow storage errors on the read path: Exists logs
// locally and reports false rather than surfacing a 5xx through the auth
// gate.
type Store interface {
	// Put atomically replaces any existing record for email with the new
	// (email, token) pair. Concurrent logins for the same email must never
	// leave two live records; last writer wins.
	Put(ctx context.Context, email, token string) error

	// Exists reports whether token currently equals the stored record for
	// email. A superseded or deleted token reports false even if it is
	// structurally valid and unexpired.
	Exists(ctx context.Context, token, email string) bool

	// DeleteByToken removes the record holding token, regardless of which
	// principal it belongs to, and reports whether a record was removed.
	// It is idempotent.
	DeleteByToken(ctx context.Context, token string) (bool, error)
}
