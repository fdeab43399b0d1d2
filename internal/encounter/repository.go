package encounter

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
)

// Repository handles encounter persistence in PostgreSQL
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new encounter repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const encounterColumns = `id, client_id, provider_id, scheduled_for, status, reason, notes, created_at`

// Create inserts a new encounter row
func (r *Repository) Create(ctx context.Context, e *Encounter) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Status == "" {
		e.Status = StatusScheduled
	}
	e.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO encounters (id, client_id, provider_id, scheduled_for, status, reason, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.ClientID, nullableString(e.ProviderID), e.ScheduledFor,
		e.Status, e.Reason, e.Notes, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create encounter: %w", err)
	}
	return nil
}

// List returns all encounters, soonest scheduled first.
func (r *Repository) List(ctx context.Context) ([]Encounter, error) {
	query := fmt.Sprintf(`SELECT %s FROM encounters ORDER BY scheduled_for DESC`, encounterColumns)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list encounters: %w", err)
	}
	defer rows.Close()

	encounters := []Encounter{}
	for rows.Next() {
		e, err := scanEncounter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan encounter: %w", err)
		}
		encounters = append(encounters, *e)
	}
	return encounters, rows.Err()
}

// GetByID fetches a single encounter
func (r *Repository) GetByID(ctx context.Context, id string) (*Encounter, error) {
	query := fmt.Sprintf(`SELECT %s FROM encounters WHERE id = $1`, encounterColumns)
	e, err := scanEncounter(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("encounter not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get encounter: %w", err)
	}
	return e, nil
}

// UpdateStatus transitions the encounter and returns the fresh row.
func (r *Repository) UpdateStatus(ctx context.Context, id, status string) (*Encounter, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE encounters SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update encounter status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, apperr.NotFoundf("encounter not found")
	}
	return r.GetByID(ctx, id)
}

// Delete removes an encounter
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM encounters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete encounter: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.NotFoundf("encounter not found")
	}
	return nil
}

// ClientExists reports whether the client record exists
func (r *Repository) ClientExists(ctx context.Context, clientID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1)`, clientID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check client: %w", err)
	}
	return exists, nil
}

// ProviderIsStaff reports whether the user exists and is a doctor or nurse
func (r *Repository) ProviderIsStaff(ctx context.Context, userID string) (bool, error) {
	var isStaff bool
	err := r.db.QueryRowContext(ctx,
		`SELECT is_doctor OR is_nurse FROM users WHERE id = $1`, userID).Scan(&isStaff)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check provider: %w", err)
	}
	return isStaff, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEncounter(row rowScanner) (*Encounter, error) {
	var e Encounter
	var providerID sql.NullString
	var reason, notes sql.NullString
	err := row.Scan(&e.ID, &e.ClientID, &providerID, &e.ScheduledFor,
		&e.Status, &reason, &notes, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.ProviderID = providerID.String
	e.Reason = reason.String
	e.Notes = notes.String
	return &e, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
