package users

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
	"github.com/AfyaLink-Health/health-records-service/internal/messaging"
)

// TokenIssuer hands out the persistent API token for a user. Issuing is
// idempotent, repeated calls return the same key.
type TokenIssuer interface {
	GetOrCreate(ctx context.Context, userID string) (string, error)
}

// Service handles account business logic
type Service struct {
	repo      RepositoryInterface
	tokens    TokenIssuer
	publisher messaging.PublisherInterface
}

// NewService creates a new user service
func NewService(repo RepositoryInterface, tokens TokenIssuer, publisher messaging.PublisherInterface) *Service {
	return &Service{repo: repo, tokens: tokens, publisher: publisher}
}

// Register creates a staff account and returns its API token. Uniqueness is
// checked per field so the caller learns which one collided.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.repo.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("username is already taken")
	}

	taken, err = s.repo.WorkEmailExists(ctx, req.WorkEmail)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("work email is already registered")
	}

	taken, err = s.repo.EmployerIDExists(ctx, req.EmployerID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("employer id is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Username:     req.Username,
		PasswordHash: string(hash),
		EmployerID:   req.EmployerID,
		WorkEmail:    req.WorkEmail,
		IsDoctor:     req.IsDoctor,
		IsNurse:      req.IsNurse,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.tokens.GetOrCreate(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.publishRegistered(ctx, u)

	return &AuthResponse{
		Token:    token,
		UserID:   u.ID,
		Username: u.Username,
		IsDoctor: u.IsDoctor,
		IsNurse:  u.IsNurse,
	}, nil
}

// Login verifies credentials and returns the user's persistent token.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperr.Validationf("username and password are required")
	}

	// Unknown username and wrong password yield the same error so the
	// endpoint does not reveal which accounts exist.
	u, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.Validationf("invalid credentials")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Validationf("invalid credentials")
	}
	if !u.IsActive {
		return nil, apperr.PermissionDenied("account is inactive")
	}

	token, err := s.tokens.GetOrCreate(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResponse{
		Token:    token,
		UserID:   u.ID,
		Username: u.Username,
		IsDoctor: u.IsDoctor,
		IsNurse:  u.IsNurse,
	}, nil
}

// GetProfile returns the caller's profile, creating it on first access.
func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetOrCreateProfile(ctx, userID)
}

// UpdateProfile applies a partial update to the caller's profile.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error) {
	return s.repo.UpdateProfile(ctx, userID, req)
}

// GetSettings returns the caller's preferences, creating defaults on first
// access.
func (s *Service) GetSettings(ctx context.Context, userID string) (*Settings, error) {
	return s.repo.GetOrCreateSettings(ctx, userID)
}

// UpdateSettings applies a partial update to the caller's preferences.
func (s *Service) UpdateSettings(ctx context.Context, userID string, req *UpdateSettingsRequest) (*Settings, error) {
	return s.repo.UpdateSettings(ctx, userID, req)
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return apperr.Validationf("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

func (s *Service) publishRegistered(ctx context.Context, u *User) {
	if s.publisher == nil {
		return
	}
	event := messaging.UserRegisteredEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventUserRegistered),
		Data: messaging.UserRegisteredData{
			UserID:    u.ID,
			Username:  u.Username,
			WorkEmail: u.WorkEmail,
			IsDoctor:  u.IsDoctor,
			IsNurse:   u.IsNurse,
			CreatedAt: u.CreatedAt,
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventUserRegistered, event); err != nil {
		log.Printf("Warning: failed to publish user registered event: %v", err)
	}
}
