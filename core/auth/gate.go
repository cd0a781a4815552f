// Package auth implements the request gate and the register/login/logout
// flows built on the token codec and store.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/markbase/markbase/core/domain"
	"github.com/markbase/markbase/core/identity"
	"github.com/markbase/markbase/core/token"
)

// Reason classifies why the gate rejected a request. ReasonNone means the
// request was allowed.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonInvalidHeader
	ReasonInvalidToken
	ReasonTokenRevoked
	ReasonUserNotFound
)

// Message returns the client-facing rejection message.
func (r Reason) Message() string {
	switch r {
	case ReasonInvalidHeader:
		return "Missing or invalid authorization header"
	case ReasonInvalidToken:
		return "Invalid or expired token"
	case ReasonTokenRevoked:
		return "Token has been revoked"
	case ReasonUserNotFound:
		return "User not found"
	default:
		return ""
	}
}

// Result is the gate's decision for a single request. Either the request is
// allowed (Reason == ReasonNone, Principal set for authenticated routes) or
// rejected with a reason.
type Result struct {
	Principal *identity.Principal
	Reason    Reason
}

// Allowed reports whether the request may proceed.
func (r Result) Allowed() bool { return r.Reason == ReasonNone }

type routeKey struct {
	method string
	path   string
}

const bearerPrefix = "Bearer "

// principalContextKey is the echo context key the middleware stores the
// resolved principal under.
const principalContextKey = "principal"

// Gate decides whether a request may pass. Requests outside the protected
// namespace and exact matches on the public allowlist pass untouched; all
// other requests must present a live bearer token for an existing user.
type Gate struct {
	codec     *token.Codec
	store     token.Store
	users     domain.UserStorage
	protected string
	public    map[routeKey]struct{}
}

// NewGate creates a Gate protecting the /api namespace with the standard
// public allowlist (register, login, logout).
func NewGate(codec *token.Codec, store token.Store, users domain.UserStorage) *Gate {
	return &Gate{
		codec:     codec,
		store:     store,
		users:     users,
		protected: "/api",
		public: map[routeKey]struct{}{
			{http.MethodPost, "/api/auth/register"}: {},
			{http.MethodPost, "/api/auth/login"}:    {},
			{http.MethodDelete, "/api/auth/logout"}: {},
		},
	}
}

// Check runs the per-request state machine. Token verification strictly
// precedes the store liveness check, which strictly precedes the user
// lookup; the first failure short-circuits. Check never mutates state.
func (g *Gate) Check(ctx context.Context, method, path, authHeader string) Result {
	if !strings.HasPrefix(path, g.protected) {
		return Result{}
	}
	if _, ok := g.public[routeKey{method, path}]; ok {
		return Result{}
	}

	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return Result{Reason: ReasonInvalidHeader}
	}
	tokenString := authHeader[len(bearerPrefix):]

	claims, err := g.codec.Verify(tokenString)
	if err != nil {
		return Result{Reason: ReasonInvalidToken}
	}

	if !g.store.Exists(ctx, tokenString, claims.Email()) {
		return Result{Reason: ReasonTokenRevoked}
	}

	user, err := g.users.GetUserByEmail(ctx, claims.Email())
	if err != nil {
		return Result{Reason: ReasonUserNotFound}
	}

	return Result{Principal: &identity.Principal{ID: user.ID, Email: user.Email}}
}

// Middleware adapts the gate to echo. Rejections become 401 responses with
// the reason message; allowed authenticated requests carry the principal in
// the request context.
func (g *Gate) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			result := g.Check(req.Context(), req.Method, req.URL.Path, req.Header.Get(echo.HeaderAuthorization))
			if !result.Allowed() {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"status": result.Reason.Message(),
					"code":   http.StatusUnauthorized,
				})
			}
			if result.Principal != nil {
				c.Set(principalContextKey, result.Principal)
			}
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal the middleware attached to the request,
// if any.
func PrincipalFrom(c echo.Context) (*identity.Principal, bool) {
	p, ok := c.Get(principalContextKey).(*identity.Principal)
	return p, ok
}
