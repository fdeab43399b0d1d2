package metric

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
)

// Repository handles metric persistence in PostgreSQL
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new metric repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const metricColumns = `id, client_id, name, value, unit, recorded_by, recorded_at`

// Create inserts a new metric row
func (r *Repository) Create(ctx context.Context, m *Metric) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.RecordedAt = time.Now().UTC()

	query := `
		INSERT INTO metrics (id, client_id, name, value, unit, recorded_by, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.ClientID, m.Name, m.Value, m.Unit, nullableString(m.RecordedBy), m.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to create metric: %w", err)
	}
	return nil
}

// List returns all metrics, newest first.
func (r *Repository) List(ctx context.Context) ([]Metric, error) {
	query := fmt.Sprintf(`SELECT %s FROM metrics ORDER BY recorded_at DESC`, metricColumns)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list metrics: %w", err)
	}
	defer rows.Close()

	metrics := []Metric{}
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan metric: %w", err)
		}
		metrics = append(metrics, *m)
	}
	return metrics, rows.Err()
}

// GetByID fetches a single metric
func (r *Repository) GetByID(ctx context.Context, id string) (*Metric, error) {
	query := fmt.Sprintf(`SELECT %s FROM metrics WHERE id = $1`, metricColumns)
	m, err := scanMetric(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("metric not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metric: %w", err)
	}
	return m, nil
}

// Delete removes a metric
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM metrics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete metric: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.NotFoundf("metric not found")
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

func scanMetric(row rowScanner) (*Metric, error) {
	var m Metric
	var recordedBy sql.NullString
	err := row.Scan(&m.ID, &m.ClientID, &m.Name, &m.Value, &m.Unit, &recordedBy, &m.RecordedAt)
	if err != nil {
		return nil, err
	}
	m.RecordedBy = recordedBy.String
	return &m, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
