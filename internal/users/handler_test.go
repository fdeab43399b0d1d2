package users

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
	"github.com/AfyaLink-Health/health-records-service/internal/auth"
)

type mockService struct {
	registerFunc       func(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	loginFunc          func(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	getProfileFunc     func(ctx context.Context, userID string) (*Profile, error)
	updateProfileFunc  func(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error)
	getSettingsFunc    func(ctx context.Context, userID string) (*Settings, error)
	updateSettingsFunc func(ctx context.Context, userID string, req *UpdateSettingsRequest) (*Settings, error)
	changePasswordFunc func(ctx context.Context, userID string, req *ChangePasswordRequest) error
}

func (m *mockService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, req)
	}
	return &AuthResponse{Token: "tok", UserID: "user-1", Username: req.Username}, nil
}

func (m *mockService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, req)
	}
	return &AuthResponse{Token: "tok", UserID: "user-1", Username: req.Username}, nil
}

func (m *mockService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	if m.getProfileFunc != nil {
		return m.getProfileFunc(ctx, userID)
	}
	return &Profile{UserID: userID}, nil
}

func (m *mockService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error) {
	if m.updateProfileFunc != nil {
		return m.updateProfileFunc(ctx, userID, req)
	}
	return &Profile{UserID: userID}, nil
}

func (m *mockService) GetSettings(ctx context.Context, userID string) (*Settings, error) {
	if m.getSettingsFunc != nil {
		return m.getSettingsFunc(ctx, userID)
	}
	s := DefaultSettings()
	return &s, nil
}

func (m *mockService) UpdateSettings(ctx context.Context, userID string, req *UpdateSettingsRequest) (*Settings, error) {
	if m.updateSettingsFunc != nil {
		return m.updateSettingsFunc(ctx, userID, req)
	}
	s := DefaultSettings()
	return &s, nil
}

func (m *mockService) ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error {
	if m.changePasswordFunc != nil {
		return m.changePasswordFunc(ctx, userID, req)
	}
	return nil
}

func authenticatedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	pr := &auth.Principal{UserID: "user-1", Username: "asha"}
	return req.WithContext(auth.ContextWithPrincipal(req.Context(), pr))
}

func TestRegisterHandler(t *testing.T) {
	handler := NewHandler(&mockService{})
	body, _ := json.Marshal(validRegisterRequest())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.Register(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp AuthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token != "tok" {
		t.Errorf("expected token tok, got %s", resp.Token)
	}
}

func TestRegisterHandlerConflict(t *testing.T) {
	handler := NewHandler(&mockService{
		registerFunc: func(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
			return nil, apperr.Conflict("username is already taken")
		},
	})
	body, _ := json.Marshal(validRegisterRequest())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.Register(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
}

func TestRegisterHandlerInvalidBody(t *testing.T) {
	handler := NewHandler(&mockService{})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	handler.Register(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	handler := NewHandler(&mockService{
		loginFunc: func(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
			return nil, apperr.Validationf("invalid credentials")
		},
	})
	body, _ := json.Marshal(&LoginRequest{Username: "asha", Password: "wrong"})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.Login(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestProfileHandlerRequiresAuth(t *testing.T) {
	handler := NewHandler(&mockService{})
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rr := httptest.NewRecorder()
	handler.GetProfile(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestGetSettingsHandlerDefaults(t *testing.T) {
	handler := NewHandler(&mockService{})
	rr := httptest.NewRecorder()
	handler.GetSettings(rr, authenticatedRequest(http.MethodGet, "/api/settings", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var s Settings
	if err := json.Unmarshal(rr.Body.Bytes(), &s); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !s.Notifications || s.Language != "en" || s.DateFormat != "YYYY-MM-DD" {
		t.Errorf("unexpected defaults: %+v", s)
	}
}

func TestChangePasswordHandler(t *testing.T) {
	handler := NewHandler(&mockService{})
	body, _ := json.Marshal(&ChangePasswordRequest{
		CurrentPassword: "old", NewPassword: "new", ConfirmPassword: "new",
	})
	rr := httptest.NewRecorder()
	handler.ChangePassword(rr, authenticatedRequest(http.MethodPost, "/api/settings/change-password", body))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
}
