// Package identity lifts the caller identity resolved by the upstream
// auth gateway out of trusted request headers and into the request context.
// Authentication itself happens upstream; this service only consumes the
// already-verified identity.
package identity

import (
	"context"
	"net/http"
	"strconv"

	"roombooker/internal/models"
)

type ctxKey struct{}

const (
	headerUserID   = "X-User-Id"
	headerUserName = "X-User-Name"
	headerUserRole = "X-User-Role"
)

// New returns a middleware that parses the gateway identity headers. Requests
// without a valid X-User-Id pass through anonymously; handlers that need a
// caller identity reject those via FromContext.
func New() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			id, err := strconv.ParseInt(r.Header.Get(headerUserID), 10, 64)
			if err == nil && id > 0 {
				ident := models.Identity{
					ID:   id,
					Name: r.Header.Get(headerUserName),
					Role: r.Header.Get(headerUserRole),
				}
				r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, ident))
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

// FromContext returns the caller identity stored by the middleware, or
// false when the request is anonymous.
func FromContext(ctx context.Context) (models.Identity, bool) {
	ident, ok := ctx.Value(ctxKey{}).(models.Identity)
	return ident, ok
}

// WithIdentity returns a context carrying ident. Intended for tests and
// internal callers that bypass the HTTP middleware.
func WithIdentity(ctx context.Context, ident models.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, ident)
}
