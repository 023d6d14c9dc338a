package middleware

import (
	"context"
	"net/http"
	"strings"

	"compeval/internal/domain/auth"
)

type ctxKey int

const ctxKeyUser ctxKey = iota

// Auth parses a bearer token when present. Requests without a valid token
// pass through anonymously; route guards decide what requires identity.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, auth.Identity{
				EmployeeID:  claims.EmployeeID,
				Name:        claims.Name,
				AccessLevel: claims.AccessLevel,
				Area:        claims.Area,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (auth.Identity, bool) {
	user, ok := ctx.Value(ctxKeyUser).(auth.Identity)
	return user, ok
}
