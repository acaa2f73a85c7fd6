package authmw

import (
	"context"
	"net/http"
	"strings"

	"github.com/kittiBank/order-manage-web/internal/service/services/authsvc"
	"github.com/kittiBank/order-manage-web/internal/transport/http/respond"
)

// verifier is the part of the auth service the middleware needs.
type verifier interface {
	VerifyAccessToken(token string) (*authsvc.Claims, error)
}

type ctxKey struct{}

// FromContext returns the claims of the authenticated request, if any.
func FromContext(ctx context.Context) (*authsvc.Claims, bool) {
	claims, ok := ctx.Value(ctxKey{}).(*authsvc.Claims)

	return claims, ok
}

// NewAuthMiddleware rejects requests without a valid bearer token and puts
// the token claims on the request context.
func NewAuthMiddleware(v verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respond.Error(w, http.StatusUnauthorized, "Missing Authorization header")

				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				respond.Error(w, http.StatusUnauthorized, "Invalid Authorization header format")

				return
			}

			claims, err := v.VerifyAccessToken(parts[1])
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "Invalid or expired token")

				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims)))
		})
	}
}
