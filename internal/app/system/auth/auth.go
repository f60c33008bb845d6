// internal/app/system/auth/auth.go

// Package auth verifies Bearer identity tokens and injects the requesting
// user into the request context. Every protected route goes through
// RequireSignedIn; role-gated routes additionally use RequireRole.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/brainhive/brainhive/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// Identity is the authenticated caller derived from a verified token.
type Identity struct {
	ID   string
	Role string
}

// IsAdmin reports whether the identity carries the admin role claim.
func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == "admin"
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the identity placed in the context by RequireSignedIn,
// or nil when the request is unauthenticated.
func CurrentUser(r *http.Request) *Identity {
	u, _ := r.Context().Value(currentUserKey).(*Identity)
	return u
}

func withUser(r *http.Request, u *Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects an identity directly into the request context,
// bypassing token verification. For handler tests only.
func WithTestUser(r *http.Request, u *Identity) *http.Request {
	return withUser(r, u)
}

// UserFetcher loads fresh account state for a verified token subject.
// A nil return means the account is unknown or suspended and the request
// must be rejected even though the token itself is valid.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *Identity
}

// Authenticator holds the token manager and the optional per-request user
// fetcher. It is constructed once at startup in bootstrap.
type Authenticator struct {
	tokens  *TokenManager
	fetcher UserFetcher
	log     *zap.Logger
}

// NewAuthenticator builds an Authenticator around the given token manager.
func NewAuthenticator(tokens *TokenManager, logger *zap.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, log: logger}
}

// SetUserFetcher enables fresh account-state checks on every authenticated
// request, so suspensions take effect immediately regardless of token
// validity.
func (a *Authenticator) SetUserFetcher(f UserFetcher) {
	a.fetcher = f
}

// Tokens returns the underlying token manager for login/register handlers.
func (a *Authenticator) Tokens() *TokenManager {
	return a.tokens
}

// RequireSignedIn verifies the Bearer token and puts the caller's Identity
// into the request context.
//
//   - missing/malformed Authorization header: 401
//   - invalid or expired token: 403
//   - suspended or unknown account (when a fetcher is set): 403
func (a *Authenticator) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := ExtractBearer(r.Header.Get("Authorization"))
		if err != nil {
			httpjson.Unauthorized(w, "authorization header missing or malformed")
			return
		}

		claims, err := a.tokens.Verify(token)
		if err != nil {
			httpjson.Forbidden(w, "invalid or expired token")
			return
		}

		ident := &Identity{ID: claims.UserID, Role: claims.Role}

		if a.fetcher != nil {
			fresh := a.fetcher.FetchUser(r.Context(), claims.UserID)
			if fresh == nil {
				httpjson.Forbidden(w, "account is suspended")
				return
			}
			// Role changes take effect immediately as well.
			ident = fresh
		}

		next.ServeHTTP(w, withUser(r, ident))
	})
}

// RequireRole ensures the signed-in user's role is one of allowed.
// It must be mounted after RequireSignedIn.
func (a *Authenticator) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := CurrentUser(r)
			if u == nil {
				httpjson.Unauthorized(w, "authorization required")
				return
			}
			if _, allowed := set[strings.ToLower(u.Role)]; !allowed {
				httpjson.Forbidden(w, "access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
