package enrollment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
)

// Repository handles enrollment persistence in PostgreSQL
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new enrollment repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new enrollment. The UNIQUE(client_id, program_id)
// constraint is the real guard against double enrollment under races.
func (r *Repository) Create(ctx context.Context, e *Enrollment) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.IsActive = true
	e.EnrollmentDate = time.Now().UTC()

	query := `
		INSERT INTO enrollments (id, client_id, program_id, enrolled_by, is_active, enrollment_date)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.ClientID, e.ProgramID, nullableString(e.EnrolledBy), e.IsActive, e.EnrollmentDate)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return apperr.Conflict("client is already enrolled in this program")
		}
		return fmt.Errorf("failed to create enrollment: %w", err)
	}
	return nil
}

const enrollmentSelect = `
	SELECT e.id, e.client_id, e.program_id, p.name, e.enrolled_by, e.is_active, e.enrollment_date
	FROM enrollments e
	JOIN health_programs p ON p.id = e.program_id`

// List returns all enrollments with program names, newest first.
func (r *Repository) List(ctx context.Context) ([]Enrollment, error) {
	rows, err := r.db.QueryContext(ctx, enrollmentSelect+` ORDER BY e.enrollment_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []Enrollment{}
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, *e)
	}
	return enrollments, rows.Err()
}

// GetByID fetches a single enrollment
func (r *Repository) GetByID(ctx context.Context, id string) (*Enrollment, error) {
	e, err := scanEnrollment(r.db.QueryRowContext(ctx, enrollmentSelect+` WHERE e.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("enrollment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	return e, nil
}

// Exists reports whether the client is already enrolled in the program
func (r *Repository) Exists(ctx context.Context, clientID, programID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE client_id = $1 AND program_id = $2)`,
		clientID, programID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return exists, nil
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

// ProgramName returns the program's name, or a not found error.
func (r *Repository) ProgramName(ctx context.Context, programID string) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx,
		`SELECT name FROM health_programs WHERE id = $1`, programID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", apperr.NotFoundf("program not found")
	}
	if err != nil {
		return "", fmt.Errorf("failed to get program: %w", err)
	}
	return name, nil
}

// Deactivate marks an enrollment as completed
func (r *Repository) Deactivate(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE enrollments SET is_active = FALSE WHERE id = $1`, id)
}

// Delete removes an enrollment
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
}

func (r *Repository) exec(ctx context.Context, query, id string) error {
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to update enrollment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.NotFoundf("enrollment not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEnrollment(row rowScanner) (*Enrollment, error) {
	var e Enrollment
	var enrolledBy sql.NullString
	err := row.Scan(&e.ID, &e.ClientID, &e.ProgramID, &e.ProgramName,
		&enrolledBy, &e.IsActive, &e.EnrollmentDate)
	if err != nil {
		return nil, err
	}
	if enrolledBy.Valid {
		e.EnrolledBy = enrolledBy.String
	}
	return &e, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
