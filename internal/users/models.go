package users

import (
	"net/mail"
	"time"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
)

// User represents a staff account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	EmployerID   string    `json:"employer_id"`
	WorkEmail    string    `json:"work_email"`
	IsDoctor     bool      `json:"is_doctor"`
	IsNurse      bool      `json:"is_nurse"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest represents the request to register a new staff account
type RegisterRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	EmployerID string `json:"employer_id"`
	WorkEmail  string `json:"work_email"`
	IsDoctor   bool   `json:"is_doctor"`
	IsNurse    bool   `json:"is_nurse"`
}

// Validate checks required fields and the work email format.
func (r *RegisterRequest) Validate() error {
	if r.Username == "" {
		return apperr.Validationf("username is required")
	}
	if r.Password == "" {
		return apperr.Validationf("password is required")
	}
	if r.EmployerID == "" {
		return apperr.Validationf("employer_id is required")
	}
	if r.WorkEmail == "" {
		return apperr.Validationf("work_email is required")
	}
	if _, err := mail.ParseAddress(r.WorkEmail); err != nil {
		return apperr.Validationf("invalid work email format")
	}
	return nil
}

// LoginRequest represents the credential exchange request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	IsDoctor bool   `json:"is_doctor"`
	IsNurse  bool   `json:"is_nurse"`
}

// Profile is the 1:1 extension record of a user, created lazily.
type Profile struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	WorkEmail  string     `json:"work_email"`
	EmployerID string     `json:"employer_id"`
	IsDoctor   bool       `json:"is_doctor"`
	IsNurse    bool       `json:"is_nurse"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	WorkEmail  *string `json:"work_email,omitempty"`
	EmployerID *string `json:"employer_id,omitempty"`
}

// Settings holds per-user preferences, created lazily with defaults.
type Settings struct {
	Notifications bool   `json:"notifications"`
	EmailAlerts   bool   `json:"email_alerts"`
	DarkMode      bool   `json:"dark_mode"`
	Language      string `json:"language"`
	Timezone      string `json:"timezone"`
	DateFormat    string `json:"date_format"`
}

// DefaultSettings returns the preferences a fresh settings row starts with.
func DefaultSettings() Settings {
	return Settings{
		Notifications: true,
		EmailAlerts:   true,
		DarkMode:      false,
		Language:      "en",
		Timezone:      "UTC",
		DateFormat:    "YYYY-MM-DD",
	}
}

// UpdateSettingsRequest represents a partial settings update. Only the six
// preference fields can change.
type UpdateSettingsRequest struct {
	Notifications *bool   `json:"notifications,omitempty"`
	EmailAlerts   *bool   `json:"email_alerts,omitempty"`
	DarkMode      *bool   `json:"dark_mode,omitempty"`
	Language      *string `json:"language,omitempty"`
	Timezone      *string `json:"timezone,omitempty"`
	DateFormat    *string `json:"date_format,omitempty"`
}

// ChangePasswordRequest represents a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Validate checks the password change preconditions.
func (r *ChangePasswordRequest) Validate() error {
	if r.CurrentPassword == "" || r.NewPassword == "" || r.ConfirmPassword == "" {
		return apperr.Validationf("all password fields are required")
	}
	if r.NewPassword != r.ConfirmPassword {
		return apperr.Validationf("new passwords do not match")
	}
	return nil
}
