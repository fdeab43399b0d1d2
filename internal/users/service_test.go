package users

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
)

type mockRepository struct {
	createUserFunc          func(ctx context.Context, u *User) error
	getByIDFunc             func(ctx context.Context, id string) (*User, error)
	getByUsernameFunc       func(ctx context.Context, username string) (*User, error)
	usernameExistsFunc      func(ctx context.Context, username string) (bool, error)
	workEmailExistsFunc     func(ctx context.Context, workEmail string) (bool, error)
	employerIDExistsFunc    func(ctx context.Context, employerID string) (bool, error)
	updatePasswordFunc      func(ctx context.Context, userID, passwordHash string) error
	getOrCreateProfileFunc  func(ctx context.Context, userID string) (*Profile, error)
	updateProfileFunc       func(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error)
	getOrCreateSettingsFunc func(ctx context.Context, userID string) (*Settings, error)
	updateSettingsFunc      func(ctx context.Context, userID string, req *UpdateSettingsRequest) (*Settings, error)
}

func (m *mockRepository) CreateUser(ctx context.Context, u *User) error {
	if m.createUserFunc != nil {
		return m.createUserFunc(ctx, u)
	}
	u.ID = "user-1"
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, apperr.NotFoundf("user not found")
}

func (m *mockRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	if m.getByUsernameFunc != nil {
		return m.getByUsernameFunc(ctx, username)
	}
	return nil, apperr.NotFoundf("user not found")
}

func (m *mockRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	if m.usernameExistsFunc != nil {
		return m.usernameExistsFunc(ctx, username)
	}
	return false, nil
}

func (m *mockRepository) WorkEmailExists(ctx context.Context, workEmail string) (bool, error) {
	if m.workEmailExistsFunc != nil {
		return m.workEmailExistsFunc(ctx, workEmail)
	}
	return false, nil
}

func (m *mockRepository) EmployerIDExists(ctx context.Context, employerID string) (bool, error) {
	if m.employerIDExistsFunc != nil {
		return m.employerIDExistsFunc(ctx, employerID)
	}
	return false, nil
}

func (m *mockRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	if m.updatePasswordFunc != nil {
		return m.updatePasswordFunc(ctx, userID, passwordHash)
	}
	return nil
}

func (m *mockRepository) GetOrCreateProfile(ctx context.Context, userID string) (*Profile, error) {
	if m.getOrCreateProfileFunc != nil {
		return m.getOrCreateProfileFunc(ctx, userID)
	}
	return &Profile{UserID: userID}, nil
}

func (m *mockRepository) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error) {
	if m.updateProfileFunc != nil {
		return m.updateProfileFunc(ctx, userID, req)
	}
	return &Profile{UserID: userID}, nil
}

func (m *mockRepository) GetOrCreateSettings(ctx context.Context, userID string) (*Settings, error) {
	if m.getOrCreateSettingsFunc != nil {
		return m.getOrCreateSettingsFunc(ctx, userID)
	}
	s := DefaultSettings()
	return &s, nil
}

func (m *mockRepository) UpdateSettings(ctx context.Context, userID string, req *UpdateSettingsRequest) (*Settings, error) {
	if m.updateSettingsFunc != nil {
		return m.updateSettingsFunc(ctx, userID, req)
	}
	s := DefaultSettings()
	return &s, nil
}

type mockTokenIssuer struct {
	getOrCreateFunc func(ctx context.Context, userID string) (string, error)
}

func (m *mockTokenIssuer) GetOrCreate(ctx context.Context, userID string) (string, error) {
	if m.getOrCreateFunc != nil {
		return m.getOrCreateFunc(ctx, userID)
	}
	return "test-token", nil
}

type mockPublisher struct {
	published []string
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, eventData interface{}) error {
	m.published = append(m.published, routingKey)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func validRegisterRequest() *RegisterRequest {
	return &RegisterRequest{
		Username:   "asha.wanjiru",
		Password:   "s3cret-pass",
		EmployerID: "EMP-1001",
		WorkEmail:  "asha.wanjiru@afyalink.example",
		IsDoctor:   true,
	}
}

func TestRegisterSuccess(t *testing.T) {
	pub := &mockPublisher{}
	svc := NewService(&mockRepository{}, &mockTokenIssuer{}, pub)

	resp, err := svc.Register(context.Background(), validRegisterRequest())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if resp.Token != "test-token" {
		t.Errorf("expected token test-token, got %s", resp.Token)
	}
	if resp.UserID != "user-1" {
		t.Errorf("expected user id user-1, got %s", resp.UserID)
	}
	if !resp.IsDoctor {
		t.Error("expected is_doctor to carry through")
	}
	if len(pub.published) != 1 || pub.published[0] != "user.registered" {
		t.Errorf("expected user.registered event, got %v", pub.published)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(&mockRepository{}, &mockTokenIssuer{}, nil)

	tests := []struct {
		name    string
		mutate  func(*RegisterRequest)
		message string
	}{
		{"missing username", func(r *RegisterRequest) { r.Username = "" }, "username is required"},
		{"missing password", func(r *RegisterRequest) { r.Password = "" }, "password is required"},
		{"missing employer id", func(r *RegisterRequest) { r.EmployerID = "" }, "employer_id is required"},
		{"missing work email", func(r *RegisterRequest) { r.WorkEmail = "" }, "work_email is required"},
		{"bad work email", func(r *RegisterRequest) { r.WorkEmail = "not-an-email" }, "invalid work email format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(req)
			_, err := svc.Register(context.Background(), req)
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if err.Error() != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, err.Error())
			}
		})
	}
}

func TestRegisterUniquenessConflicts(t *testing.T) {
	tests := []struct {
		name    string
		repo    *mockRepository
		message string
	}{
		{
			"username taken",
			&mockRepository{usernameExistsFunc: func(ctx context.Context, u string) (bool, error) { return true, nil }},
			"username is already taken",
		},
		{
			"work email taken",
			&mockRepository{workEmailExistsFunc: func(ctx context.Context, e string) (bool, error) { return true, nil }},
			"work email is already registered",
		},
		{
			"employer id taken",
			&mockRepository{employerIDExistsFunc: func(ctx context.Context, e string) (bool, error) { return true, nil }},
			"employer id is already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.repo, &mockTokenIssuer{}, nil)
			_, err := svc.Register(context.Background(), validRegisterRequest())
			if apperr.KindOf(err) != apperr.KindConflict {
				t.Fatalf("expected conflict, got %v", err)
			}
			if err.Error() != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, err.Error())
			}
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	repo := &mockRepository{
		getByUsernameFunc: func(ctx context.Context, username string) (*User, error) {
			return &User{ID: "user-1", Username: username, PasswordHash: string(hash), IsActive: true, IsNurse: true}, nil
		},
	}
	svc := NewService(repo, &mockTokenIssuer{}, nil)

	resp, err := svc.Login(context.Background(), &LoginRequest{Username: "asha", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.Token != "test-token" {
		t.Errorf("expected token test-token, got %s", resp.Token)
	}
	if !resp.IsNurse {
		t.Error("expected is_nurse to carry through")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	repo := &mockRepository{
		getByUsernameFunc: func(ctx context.Context, username string) (*User, error) {
			return &User{ID: "user-1", Username: username, PasswordHash: string(hash), IsActive: true}, nil
		},
	}
	svc := NewService(repo, &mockTokenIssuer{}, nil)

	_, err := svc.Login(context.Background(), &LoginRequest{Username: "asha", Password: "wrong"})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for wrong password, got %v", err)
	}

	// Unknown usernames get the same error, not a not-found leak.
	svc = NewService(&mockRepository{}, &mockTokenIssuer{}, nil)
	_, err = svc.Login(context.Background(), &LoginRequest{Username: "ghost", Password: "whatever"})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for unknown user, got %v", err)
	}
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	repo := &mockRepository{
		getByUsernameFunc: func(ctx context.Context, username string) (*User, error) {
			return &User{ID: "user-1", Username: username, PasswordHash: string(hash), IsActive: false}, nil
		},
	}
	svc := NewService(repo, &mockTokenIssuer{}, nil)

	_, err := svc.Login(context.Background(), &LoginRequest{Username: "asha", Password: "correct-horse"})
	if apperr.KindOf(err) != apperr.KindPermissionDenied {
		t.Fatalf("expected permission denied for inactive user, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.MinCost)
	var storedHash string
	repo := &mockRepository{
		getByIDFunc: func(ctx context.Context, id string) (*User, error) {
			return &User{ID: id, PasswordHash: string(hash), IsActive: true}, nil
		},
		updatePasswordFunc: func(ctx context.Context, userID, passwordHash string) error {
			storedHash = passwordHash
			return nil
		},
	}
	svc := NewService(repo, &mockTokenIssuer{}, nil)

	err := svc.ChangePassword(context.Background(), "user-1", &ChangePasswordRequest{
		CurrentPassword: "old-pass",
		NewPassword:     "new-pass",
		ConfirmPassword: "new-pass",
	})
	if err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("new-pass")) != nil {
		t.Error("stored hash does not match new password")
	}
}

func TestChangePasswordRejections(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.MinCost)
	repo := &mockRepository{
		getByIDFunc: func(ctx context.Context, id string) (*User, error) {
			return &User{ID: id, PasswordHash: string(hash), IsActive: true}, nil
		},
	}
	svc := NewService(repo, &mockTokenIssuer{}, nil)

	tests := []struct {
		name    string
		req     *ChangePasswordRequest
		message string
	}{
		{
			"mismatched confirmation",
			&ChangePasswordRequest{CurrentPassword: "old-pass", NewPassword: "a", ConfirmPassword: "b"},
			"new passwords do not match",
		},
		{
			"wrong current password",
			&ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "a", ConfirmPassword: "a"},
			"current password is incorrect",
		},
		{
			"missing fields",
			&ChangePasswordRequest{NewPassword: "a", ConfirmPassword: "a"},
			"all password fields are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ChangePassword(context.Background(), "user-1", tt.req)
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if err.Error() != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, err.Error())
			}
		})
	}
}
