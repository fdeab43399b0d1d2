package auth

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoToken      = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
	ErrUserInactive = errors.New("user account is inactive")
)

// TokenStore persists the opaque bearer tokens. Each user has at most one
// token, created lazily on first issue and removed to revoke access.
type TokenStore struct {
	db *sql.DB
}

func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db}
}

func generateKey() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GetOrCreate returns the user's token, issuing one if none exists. The
// upsert keeps the existing key under concurrent issue attempts, so the
// token stays 1:1 with the user.
func (s *TokenStore) GetOrCreate(ctx context.Context, userID string) (string, error) {
	key, err := generateKey()
	if err != nil {
		return "", err
	}

	query := `
		INSERT INTO auth_tokens (key, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET user_id = auth_tokens.user_id
		RETURNING key
	`

	var issued string
	err = s.db.QueryRowContext(ctx, query, key, userID, time.Now().UTC()).Scan(&issued)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return issued, nil
}

// Lookup resolves a token key to a Principal. Unknown keys and tokens of
// deactivated users are rejected.
func (s *TokenStore) Lookup(ctx context.Context, key string) (*Principal, error) {
	if key == "" {
		return nil, ErrNoToken
	}

	query := `
		SELECT u.id, u.username, u.is_doctor, u.is_nurse, u.is_active
		FROM auth_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.key = $1
	`

	var pr Principal
	var active bool
	err := s.db.QueryRowContext(ctx, query, key).Scan(
		&pr.UserID,
		&pr.Username,
		&pr.IsDoctor,
		&pr.IsNurse,
		&active,
	)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}
	if !active {
		return nil, ErrUserInactive
	}
	return &pr, nil
}

// Revoke deletes the user's token, if any.
func (s *TokenStore) Revoke(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// CountStale counts tokens belonging to deactivated users.
func (s *TokenStore) CountStale(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM auth_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE u.is_active = false
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count stale tokens: %w", err)
	}
	return count, nil
}

// PurgeStale deletes tokens belonging to deactivated users and reports how
// many were removed.
func (s *TokenStore) PurgeStale(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM auth_tokens t
		USING users u
		WHERE u.id = t.user_id AND u.is_active = false
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge stale tokens: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(rows), nil
}
