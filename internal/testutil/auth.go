package testutil

import (
	"net/http"
	"testing"

	"github.com/AfyaLink-Health/health-records-service/internal/auth"
)

// DoctorPrincipal returns an authenticated doctor for service tests.
func DoctorPrincipal(userID string) *auth.Principal {
	return &auth.Principal{UserID: userID, Username: "dr-" + userID, IsDoctor: true}
}

// NursePrincipal returns an authenticated nurse for service tests.
func NursePrincipal(userID string) *auth.Principal {
	return &auth.Principal{UserID: userID, Username: "nurse-" + userID, IsNurse: true}
}

// BasicPrincipal returns an authenticated non-clinical user.
func BasicPrincipal(userID string) *auth.Principal {
	return &auth.Principal{UserID: userID, Username: "user-" + userID}
}

// WithPrincipal attaches a principal to the request context, bypassing the
// token middleware.
func WithPrincipal(t *testing.T, r *http.Request, pr *auth.Principal) *http.Request {
	t.Helper()
	return r.WithContext(auth.ContextWithPrincipal(r.Context(), pr))
}
