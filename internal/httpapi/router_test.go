package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AfyaLink-Health/health-records-service/internal/auth"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	tokens := auth.NewTokenStore(nil)
	return SetupRouter(nil, tokens, auth.DefaultPermissions(), nil, nil)
}

func TestHealthEndpointIsPublic(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "health-records-service") {
		t.Errorf("unexpected health body: %s", rec.Body.String())
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	r := newTestRouter(t)

	routes := []struct {
		method string
		path   string
	}{
		{"GET", "/api/clients"},
		{"POST", "/api/clients/register"},
		{"GET", "/api/programs"},
		{"POST", "/api/enrollments"},
		{"GET", "/api/prescriptions"},
		{"POST", "/api/metrics"},
		{"GET", "/api/encounters"},
		{"GET", "/api/reports"},
		{"GET", "/api/resource-utilization"},
		{"GET", "/api/auth/user"},
		{"POST", "/api/change-password"},
	}

	for _, rt := range routes {
		req := httptest.NewRequest(rt.method, rt.path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", rt.method, rt.path, rec.Code)
		}
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/nothing-here", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
