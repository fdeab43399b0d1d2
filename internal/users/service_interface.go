package users

import "context"

// ServiceInterface defines the contract for account operations
type ServiceInterface interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error)
	GetSettings(ctx context.Context, userID string) (*Settings, error)
	UpdateSettings(ctx context.Context, userID string, req *UpdateSettingsRequest) (*Settings, error)
	ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error
}
