package users

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
)

// Repository handles user persistence in PostgreSQL
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new user repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser inserts a new user row. Uniqueness races that slip past the
// service-level checks surface as conflicts via the unique constraints.
func (r *Repository) CreateUser(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.IsActive = true
	u.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO users (id, username, password_hash, employer_id, work_email, is_doctor, is_nurse, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Username, u.PasswordHash, u.EmployerID, u.WorkEmail,
		u.IsDoctor, u.IsNurse, u.IsActive, u.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			switch pqErr.Constraint {
			case "users_username_key":
				return apperr.Conflict("username is already taken")
			case "users_work_email_key":
				return apperr.Conflict("work email is already registered")
			case "users_employer_id_key":
				return apperr.Conflict("employer id is already registered")
			}
			return apperr.Conflict("user already exists")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID fetches a user by primary key
func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	return r.getOne(ctx, "id", id)
}

// GetByUsername fetches a user by username
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.getOne(ctx, "username", username)
}

func (r *Repository) getOne(ctx context.Context, column, value string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, password_hash, employer_id, work_email, is_doctor, is_nurse, is_active, created_at
		FROM users WHERE %s = $1`, column)

	var u User
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.EmployerID, &u.WorkEmail,
		&u.IsDoctor, &u.IsNurse, &u.IsActive, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// UsernameExists reports whether a user with the given username exists
func (r *Repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username", username)
}

// WorkEmailExists reports whether a user with the given work email exists
func (r *Repository) WorkEmailExists(ctx context.Context, workEmail string) (bool, error) {
	return r.exists(ctx, "work_email", workEmail)
}

// EmployerIDExists reports whether a user with the given employer id exists
func (r *Repository) EmployerIDExists(ctx context.Context, employerID string) (bool, error) {
	return r.exists(ctx, "employer_id", employerID)
}

func (r *Repository) exists(ctx context.Context, column, value string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM users WHERE %s = $1)`, column)
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s: %w", column, err)
	}
	return exists, nil
}

// UpdatePassword replaces the stored password hash
func (r *Repository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.NotFoundf("user not found")
	}
	return nil
}

// GetOrCreateProfile fetches the user's profile, creating it from the user
// row on first access.
func (r *Repository) GetOrCreateProfile(ctx context.Context, userID string) (*Profile, error) {
	u, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	insert := `
		INSERT INTO user_profiles (id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, insert, uuid.New().String(), userID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return r.scanProfile(ctx, u)
}

// UpdateProfile applies a partial update to the profile's mutable fields.
// Changes write through to the user row so role and contact data stay in
// one place.
func (r *Repository) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error) {
	if _, err := r.GetOrCreateProfile(ctx, userID); err != nil {
		return nil, err
	}

	if req.WorkEmail != nil {
		if _, err := r.db.ExecContext(ctx,
			`UPDATE users SET work_email = $1 WHERE id = $2`, *req.WorkEmail, userID); err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				return nil, apperr.Conflict("work email is already registered")
			}
			return nil, fmt.Errorf("failed to update work email: %w", err)
		}
	}
	if req.EmployerID != nil {
		if _, err := r.db.ExecContext(ctx,
			`UPDATE users SET employer_id = $1 WHERE id = $2`, *req.EmployerID, userID); err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				return nil, apperr.Conflict("employer id is already registered")
			}
			return nil, fmt.Errorf("failed to update employer id: %w", err)
		}
	}

	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx,
		`UPDATE user_profiles SET updated_at = $1 WHERE user_id = $2`, now, userID); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	u, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return r.scanProfile(ctx, u)
}

func (r *Repository) scanProfile(ctx context.Context, u *User) (*Profile, error) {
	var p Profile
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, updated_at FROM user_profiles WHERE user_id = $1`,
		u.ID).Scan(&p.ID, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	p.WorkEmail = u.WorkEmail
	p.EmployerID = u.EmployerID
	p.IsDoctor = u.IsDoctor
	p.IsNurse = u.IsNurse
	return &p, nil
}

// GetOrCreateSettings fetches the user's settings, creating a defaults row
// on first access.
func (r *Repository) GetOrCreateSettings(ctx context.Context, userID string) (*Settings, error) {
	if _, err := r.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	defaults := DefaultSettings()
	insert := `
		INSERT INTO user_settings (id, user_id, notifications, email_alerts, dark_mode, language, timezone, date_format, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, insert,
		uuid.New().String(), userID,
		defaults.Notifications, defaults.EmailAlerts, defaults.DarkMode,
		defaults.Language, defaults.Timezone, defaults.DateFormat,
		time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to create settings: %w", err)
	}

	return r.scanSettings(ctx, userID)
}

// UpdateSettings applies a partial update to the six preference fields.
func (r *Repository) UpdateSettings(ctx context.Context, userID string, req *UpdateSettingsRequest) (*Settings, error) {
	current, err := r.GetOrCreateSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Notifications != nil {
		current.Notifications = *req.Notifications
	}
	if req.EmailAlerts != nil {
		current.EmailAlerts = *req.EmailAlerts
	}
	if req.DarkMode != nil {
		current.DarkMode = *req.DarkMode
	}
	if req.Language != nil {
		current.Language = *req.Language
	}
	if req.Timezone != nil {
		current.Timezone = *req.Timezone
	}
	if req.DateFormat != nil {
		current.DateFormat = *req.DateFormat
	}

	query := `
		UPDATE user_settings
		SET notifications = $1, email_alerts = $2, dark_mode = $3, language = $4, timezone = $5, date_format = $6
		WHERE user_id = $7`
	_, err = r.db.ExecContext(ctx, query,
		current.Notifications, current.EmailAlerts, current.DarkMode,
		current.Language, current.Timezone, current.DateFormat, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return current, nil
}

func (r *Repository) scanSettings(ctx context.Context, userID string) (*Settings, error) {
	var s Settings
	err := r.db.QueryRowContext(ctx,
		`SELECT notifications, email_alerts, dark_mode, language, timezone, date_format
		 FROM user_settings WHERE user_id = $1`,
		userID).Scan(&s.Notifications, &s.EmailAlerts, &s.DarkMode, &s.Language, &s.Timezone, &s.DateFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &s, nil
}
