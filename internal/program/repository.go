package program

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
)

// Repository handles program persistence in PostgreSQL
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new program repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new program. The unique index on name maps duplicate
// submissions to a conflict.
func (r *Repository) Create(ctx context.Context, p *Program) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO health_programs (id, name, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, nullableString(p.CreatedBy), p.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return apperr.Conflict("a program with this name already exists")
		}
		return fmt.Errorf("failed to create program: %w", err)
	}
	return nil
}

const programSelect = `
	SELECT p.id, p.name, p.description, p.created_by, p.created_at,
	       COUNT(e.id) AS enrollment_count,
	       COUNT(e.id) FILTER (WHERE e.is_active) AS active_enrollment_count
	FROM health_programs p
	LEFT JOIN enrollments e ON e.program_id = p.id`

// List returns all programs with their enrollment counts, newest first.
func (r *Repository) List(ctx context.Context) ([]Program, error) {
	query := programSelect + `
	GROUP BY p.id
	ORDER BY p.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	defer rows.Close()

	programs := []Program{}
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan program: %w", err)
		}
		programs = append(programs, *p)
	}
	return programs, rows.Err()
}

// GetByID fetches a single program with its enrollment counts
func (r *Repository) GetByID(ctx context.Context, id string) (*Program, error) {
	query := programSelect + `
	WHERE p.id = $1
	GROUP BY p.id`

	p, err := scanProgram(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("program not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get program: %w", err)
	}
	return p, nil
}

// Delete removes a program. Enrollments cascade.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM health_programs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete program: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.NotFoundf("program not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProgram(row rowScanner) (*Program, error) {
	var p Program
	var createdBy sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Description, &createdBy, &p.CreatedAt,
		&p.EnrollmentCount, &p.ActiveEnrollmentCount)
	if err != nil {
		return nil, err
	}
	if createdBy.Valid {
		p.CreatedBy = createdBy.String
	}
	return &p, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
