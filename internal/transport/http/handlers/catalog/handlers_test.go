package cataloghandler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestCatalogRoutesRequireAuthentication(t *testing.T) {
	router := chi.NewRouter()
	router.Route("/api/v1", NewHandler(nil).RegisterRoutes)

	paths := []string{
		"/api/v1/categories",
		"/api/v1/categories/1",
		"/api/v1/categories/1/processes",
		"/api/v1/categories/1/questions",
		"/api/v1/processes/1",
		"/api/v1/processes/1/questions",
		"/api/v1/employees/EMP001",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("GET %s: expected 401 without token, got %d", path, rec.Code)
		}
	}
}
