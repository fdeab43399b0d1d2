package report

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository reads the raw rows reports aggregate over
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new report repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// rangeClause appends a half-open window on the given timestamp column.
func rangeClause(column string, dr DateRange, args []interface{}) (string, []interface{}) {
	if dr.Start == nil || dr.End == nil {
		return "", args
	}
	clause := fmt.Sprintf(" WHERE %s >= $%d AND %s < $%d", column, len(args)+1, column, len(args)+2)
	return clause, append(args, *dr.Start, *dr.End)
}

// Encounters returns status and provider for encounters created in range
func (r *Repository) Encounters(ctx context.Context, dr DateRange) ([]EncounterRow, error) {
	clause, args := rangeClause("created_at", dr, nil)
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COALESCE(provider_id::text, '') FROM encounters`+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch encounters: %w", err)
	}
	defer rows.Close()

	out := []EncounterRow{}
	for rows.Next() {
		var row EncounterRow
		if err := rows.Scan(&row.Status, &row.ProviderID); err != nil {
			return nil, fmt.Errorf("failed to scan encounter row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Enrollments returns program membership rows enrolled in range
func (r *Repository) Enrollments(ctx context.Context, dr DateRange) ([]EnrollmentRow, error) {
	clause, args := rangeClause("enrollment_date", dr, nil)
	rows, err := r.db.QueryContext(ctx,
		`SELECT program_id, is_active, COALESCE(enrolled_by::text, '') FROM enrollments`+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch enrollments: %w", err)
	}
	defer rows.Close()

	out := []EnrollmentRow{}
	for rows.Next() {
		var row EnrollmentRow
		if err := rows.Scan(&row.ProgramID, &row.IsActive, &row.EnrolledBy); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Prescriptions returns medication rows created in range
func (r *Repository) Prescriptions(ctx context.Context, dr DateRange) ([]PrescriptionRow, error) {
	clause, args := rangeClause("created_at", dr, nil)
	rows, err := r.db.QueryContext(ctx,
		`SELECT medication_name, end_date IS NOT NULL, COALESCE(prescribed_by::text, '') FROM prescriptions`+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prescriptions: %w", err)
	}
	defer rows.Close()

	out := []PrescriptionRow{}
	for rows.Next() {
		var row PrescriptionRow
		if err := rows.Scan(&row.MedicationName, &row.HasEndDate, &row.PrescribedBy); err != nil {
			return nil, fmt.Errorf("failed to scan prescription row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Metrics returns attribution rows for measurements recorded in range
func (r *Repository) Metrics(ctx context.Context, dr DateRange) ([]MetricRow, error) {
	clause, args := rangeClause("recorded_at", dr, nil)
	rows, err := r.db.QueryContext(ctx,
		`SELECT COALESCE(recorded_by::text, '') FROM metrics`+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metrics: %w", err)
	}
	defer rows.Close()

	out := []MetricRow{}
	for rows.Next() {
		var row MetricRow
		if err := rows.Scan(&row.RecordedBy); err != nil {
			return nil, fmt.Errorf("failed to scan metric row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Programs returns every health program, ordered by name.
func (r *Repository) Programs(ctx context.Context) ([]ProgramRow, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM health_programs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch programs: %w", err)
	}
	defer rows.Close()

	out := []ProgramRow{}
	for rows.Next() {
		var row ProgramRow
		if err := rows.Scan(&row.ID, &row.Name); err != nil {
			return nil, fmt.Errorf("failed to scan program row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Staff returns every medical-staff user, ordered by username.
func (r *Repository) Staff(ctx context.Context) ([]StaffRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, is_active FROM users WHERE is_doctor OR is_nurse ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}
	defer rows.Close()

	out := []StaffRow{}
	for rows.Next() {
		var row StaffRow
		if err := rows.Scan(&row.ID, &row.Username, &row.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan staff row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
