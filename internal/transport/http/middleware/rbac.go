package middleware

import (
	"net/http"

	"compeval/internal/domain/auth"
	"compeval/internal/transport/http/api"
)

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireReviewer guards the amendment, status, deletion and report routes:
// supervisors and evaluators only.
func RequireReviewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		if !auth.Reviewer(user.AccessLevel) {
			api.Fail(w, http.StatusForbidden, "forbidden", "reviewer access required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}
