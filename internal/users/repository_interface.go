package users

import "context"

// RepositoryInterface defines the contract for user persistence
type RepositoryInterface interface {
	CreateUser(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	WorkEmailExists(ctx context.Context, workEmail string) (bool, error)
	EmployerIDExists(ctx context.Context, employerID string) (bool, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	GetOrCreateProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error)
	GetOrCreateSettings(ctx context.Context, userID string) (*Settings, error)
	UpdateSettings(ctx context.Context, userID string, req *UpdateSettingsRequest) (*Settings, error)
}
