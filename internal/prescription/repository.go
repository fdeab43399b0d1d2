package prescription

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
)

// Repository handles prescription persistence in PostgreSQL
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new prescription repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const prescriptionColumns = `id, client_id, medication_name, dosage, frequency, duration, start_date, end_date, notes, prescribed_by, created_at`

// Create inserts a new prescription
func (r *Repository) Create(ctx context.Context, p *Prescription) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO prescriptions (id, client_id, medication_name, dosage, frequency, duration, start_date, end_date, notes, prescribed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	var endDate interface{}
	if p.EndDate != nil {
		endDate = *p.EndDate
	}
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.ClientID, p.MedicationName, p.Dosage, p.Frequency, p.Duration,
		p.StartDate, endDate, p.Notes, nullableString(p.PrescribedBy), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

// List returns all prescriptions, newest first.
func (r *Repository) List(ctx context.Context) ([]Prescription, error) {
	query := fmt.Sprintf(`SELECT %s FROM prescriptions ORDER BY created_at DESC`, prescriptionColumns)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	defer rows.Close()

	prescriptions := []Prescription{}
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prescription: %w", err)
		}
		prescriptions = append(prescriptions, *p)
	}
	return prescriptions, rows.Err()
}

// GetByID fetches a single prescription
func (r *Repository) GetByID(ctx context.Context, id string) (*Prescription, error) {
	query := fmt.Sprintf(`SELECT %s FROM prescriptions WHERE id = $1`, prescriptionColumns)
	p, err := scanPrescription(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("prescription not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return p, nil
}

// Update applies a partial update and returns the fresh row.
func (r *Repository) Update(ctx context.Context, id string, req *UpdateRequest) (*Prescription, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.MedicationName != nil {
		current.MedicationName = *req.MedicationName
	}
	if req.Dosage != nil {
		current.Dosage = *req.Dosage
	}
	if req.Frequency != nil {
		current.Frequency = *req.Frequency
	}
	if req.Duration != nil {
		current.Duration = *req.Duration
	}
	if req.EndDate != nil {
		current.EndDate = req.EndDate
	}
	if req.Notes != nil {
		current.Notes = *req.Notes
	}

	var endDate interface{}
	if current.EndDate != nil && *current.EndDate != "" {
		endDate = *current.EndDate
	}
	query := `
		UPDATE prescriptions
		SET medication_name = $1, dosage = $2, frequency = $3, duration = $4, end_date = $5, notes = $6
		WHERE id = $7`
	_, err = r.db.ExecContext(ctx, query,
		current.MedicationName, current.Dosage, current.Frequency,
		current.Duration, endDate, current.Notes, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update prescription: %w", err)
	}
	return current, nil
}

// Delete removes a prescription
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM prescriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prescription: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.NotFoundf("prescription not found")
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPrescription(row rowScanner) (*Prescription, error) {
	var p Prescription
	var start time.Time
	var end sql.NullTime
	var duration, notes sql.NullString
	var prescribedBy sql.NullString
	err := row.Scan(&p.ID, &p.ClientID, &p.MedicationName, &p.Dosage, &p.Frequency,
		&duration, &start, &end, &notes, &prescribedBy, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.StartDate = start.Format("2006-01-02")
	if end.Valid {
		formatted := end.Time.Format("2006-01-02")
		p.EndDate = &formatted
	}
	p.Duration = duration.String
	p.Notes = notes.String
	p.PrescribedBy = prescribedBy.String
	return &p, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
