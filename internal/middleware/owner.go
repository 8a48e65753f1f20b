package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/hivoyage/backend/internal/domain"
)

// Header names set by the external authentication layer in front of this API.
// This core never validates credentials; it trusts the identity the auth
// proxy attaches to each request.
const (
	OwnerIDHeader    = "X-Owner-Id"
	OwnerEmailHeader = "X-Owner-Email"
)

type ctxKey int

const ownerKey ctxKey = iota

// NewOwnerContext returns a middleware that extracts the caller's identity
// from the auth-layer headers and stores it in the request context.
// Requests without a parseable identity are rejected with 401 before any
// handler runs.
func NewOwnerContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(r.Header.Get(OwnerIDHeader))
			email := r.Header.Get(OwnerEmailHeader)
			if err != nil || email == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":{"code":"unauthorized","message":"missing or invalid owner identity"}}`))
				return
			}

			owner := domain.Owner{ID: id, Email: email}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ownerKey, owner)))
		})
	}
}

// OwnerFromContext returns the owner stored by NewOwnerContext.
// The boolean is false when the middleware did not run for this request.
func OwnerFromContext(ctx context.Context) (domain.Owner, bool) {
	owner, ok := ctx.Value(ownerKey).(domain.Owner)
	return owner, ok
}
