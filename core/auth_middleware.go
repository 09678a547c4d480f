package core

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/kmarval/bookstore-inventory/pkg/router"
)

type identityKey struct{}

// Identity is the authenticated identity of a single request. It is strictly
// request-scoped: populated by BearerMiddleware, carried on the request
// context and discarded when the request completes.
type Identity struct {
	Username string
	Roles    []string
}

func (id Identity) HasRole(role string) bool {
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func contextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity attached by BearerMiddleware, if
// any. The second return value reports whether the request is authenticated.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// IdentityFromRequest extracts the identity from the request context.
// It must only be called in handlers behind RequireAuth or RequireRole.
// It panics if the request carries no identity.
func IdentityFromRequest(r *http.Request) Identity {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		panic("identity not found in request context: call this function in handlers protected by RequireAuth")
	}
	return id
}

var (
	errExpiredToken     = router.NewJsonError(http.StatusUnauthorized, "Expired token")
	errInvalidToken     = router.NewJsonError(http.StatusUnauthorized, "Invalid token")
	errNotAuthenticated = router.NewJsonError(http.StatusUnauthorized, "Not authenticated")
	errAccessDenied     = router.NewJsonError(http.StatusForbidden, "Unauthorized to view this resource")
)

// BearerMiddleware is the per-request gate. Requests without an Authorization
// header pass through unauthenticated; a downstream RequireAuth or
// RequireRole rejects them if the route needs an identity. Requests with a
// bearer token are verified against the signing secret and, on success, the
// token subject's roles are looked up and attached to the request context.
// Token failures terminate the request before any routing or business logic.
func BearerMiddleware(users UserStore, secret []byte) router.Middleware {
	return func(next http.Handler) router.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return nil
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return errInvalidToken
			}

			claims, err := VerifyToken(raw, secret)
			if err != nil {
				if errors.Is(err, ErrTokenExpired) {
					return errExpiredToken
				}
				return errInvalidToken
			}

			// The subject comes from a verified token; the lookup only
			// resolves its roles. Any store failure surfaces as an
			// authentication failure, never a retry.
			user, err := users.GetUserByUsername(r.Context(), claims.Subject)
			if err != nil || user == nil {
				return errNotAuthenticated
			}

			id := Identity{
				Username: user.Username,
				Roles:    user.Roles,
			}
			next.ServeHTTP(w, r.WithContext(contextWithIdentity(r.Context(), id)))
			return nil
		}
	}
}

// RequireAuth rejects requests that reached a protected route without an
// authenticated identity.
func RequireAuth() router.Middleware {
	return func(next http.Handler) router.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			if _, ok := IdentityFromContext(r.Context()); !ok {
				return errNotAuthenticated
			}
			next.ServeHTTP(w, r)
			return nil
		}
	}
}

// RequireRole rejects requests whose identity lacks role. An unauthenticated
// request is rejected as not authenticated, not as denied.
func RequireRole(role string) router.Middleware {
	return func(next http.Handler) router.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				return errNotAuthenticated
			}
			if !id.HasRole(role) {
				return errAccessDenied
			}
			next.ServeHTTP(w, r)
			return nil
		}
	}
}
