package client

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
)

// Repository handles client persistence in PostgreSQL
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new client repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const clientColumns = `id, first_name, last_name, date_of_birth, gender, address, phone_number, email, registered_by, created_at`

// Create inserts a new client row
func (r *Repository) Create(ctx context.Context, c *Client) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO clients (id, first_name, last_name, date_of_birth, gender, address, phone_number, email, registered_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.FirstName, c.LastName, c.DateOfBirth, c.Gender,
		c.Address, c.PhoneNumber, c.Email, nullableString(c.RegisteredBy), c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// List returns a page of clients, newest first, with the total row count.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Client, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM clients ORDER BY created_at DESC LIMIT $1 OFFSET $2`, clientColumns)
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients, err := scanClients(rows)
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

// Search matches every term against first and last name, case-insensitive.
func (r *Repository) Search(ctx context.Context, terms []string) ([]Client, error) {
	conditions := make([]string, 0, len(terms))
	args := make([]interface{}, 0, len(terms))
	for i, term := range terms {
		conditions = append(conditions, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d)", i+1, i+1))
		args = append(args, "%"+term+"%")
	}

	query := fmt.Sprintf(`SELECT %s FROM clients WHERE %s ORDER BY last_name, first_name`,
		clientColumns, strings.Join(conditions, " AND "))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search clients: %w", err)
	}
	defer rows.Close()

	return scanClients(rows)
}

// GetByID fetches a single client
func (r *Repository) GetByID(ctx context.Context, id string) (*Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE id = $1`, clientColumns)
	row := r.db.QueryRowContext(ctx, query, id)

	c, err := scanClient(row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("client not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}

// GetProfile fans out over the clinical tables for one client.
func (r *Repository) GetProfile(ctx context.Context, id string) (*Profile, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		Client:        *c,
		Enrollments:   []ProfileEnrollment{},
		Prescriptions: []ProfilePrescription{},
		Metrics:       []ProfileMetric{},
		Encounters:    []ProfileEncounter{},
	}

	if p.Enrollments, err = r.enrollmentsFor(ctx, id, false); err != nil {
		return nil, err
	}
	if p.Prescriptions, err = r.prescriptionsFor(ctx, id); err != nil {
		return nil, err
	}
	if p.Metrics, err = r.metricsFor(ctx, id); err != nil {
		return nil, err
	}
	if p.Encounters, err = r.encountersFor(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

// GetComprehensive returns the condensed care view: active enrollments
// with program details, prescriptions and encounters.
func (r *Repository) GetComprehensive(ctx context.Context, id string) (*Comprehensive, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &Comprehensive{
		Client:            *c,
		ActiveEnrollments: []ProfileEnrollment{},
		Prescriptions:     []ProfilePrescription{},
		Encounters:        []ProfileEncounter{},
	}

	if view.ActiveEnrollments, err = r.enrollmentsFor(ctx, id, true); err != nil {
		return nil, err
	}
	if view.Prescriptions, err = r.prescriptionsFor(ctx, id); err != nil {
		return nil, err
	}
	if view.Encounters, err = r.encountersFor(ctx, id); err != nil {
		return nil, err
	}
	return view, nil
}

// Delete removes a client. Enrollments, prescriptions, metrics and
// encounters go with it via ON DELETE CASCADE.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.NotFoundf("client not found")
	}
	return nil
}

func (r *Repository) enrollmentsFor(ctx context.Context, clientID string, activeOnly bool) ([]ProfileEnrollment, error) {
	query := `
		SELECT e.id, e.program_id, p.name, e.is_active, e.enrollment_date
		FROM enrollments e
		JOIN health_programs p ON p.id = e.program_id
		WHERE e.client_id = $1`
	if activeOnly {
		query += ` AND e.is_active`
	}
	query += ` ORDER BY e.enrollment_date DESC`

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollments: %w", err)
	}
	defer rows.Close()

	out := []ProfileEnrollment{}
	for rows.Next() {
		var e ProfileEnrollment
		if err := rows.Scan(&e.ID, &e.ProgramID, &e.ProgramName, &e.IsActive, &e.EnrollmentDate); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repository) prescriptionsFor(ctx context.Context, clientID string) ([]ProfilePrescription, error) {
	query := `
		SELECT id, medication_name, dosage, frequency, start_date, end_date
		FROM prescriptions WHERE client_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get prescriptions: %w", err)
	}
	defer rows.Close()

	out := []ProfilePrescription{}
	for rows.Next() {
		var p ProfilePrescription
		var start time.Time
		var end *time.Time
		if err := rows.Scan(&p.ID, &p.MedicationName, &p.Dosage, &p.Frequency, &start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan prescription: %w", err)
		}
		p.StartDate = start.Format("2006-01-02")
		if end != nil {
			formatted := end.Format("2006-01-02")
			p.EndDate = &formatted
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) metricsFor(ctx context.Context, clientID string) ([]ProfileMetric, error) {
	query := `
		SELECT id, name, value, unit, recorded_at
		FROM metrics WHERE client_id = $1 ORDER BY recorded_at DESC`

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics: %w", err)
	}
	defer rows.Close()

	out := []ProfileMetric{}
	for rows.Next() {
		var m ProfileMetric
		if err := rows.Scan(&m.ID, &m.Name, &m.Value, &m.Unit, &m.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan metric: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repository) encountersFor(ctx context.Context, clientID string) ([]ProfileEncounter, error) {
	query := `
		SELECT id, provider_id, scheduled_for, status, reason
		FROM encounters WHERE client_id = $1 ORDER BY scheduled_for DESC`

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get encounters: %w", err)
	}
	defer rows.Close()

	out := []ProfileEncounter{}
	for rows.Next() {
		var e ProfileEncounter
		if err := rows.Scan(&e.ID, &e.ProviderID, &e.ScheduledFor, &e.Status, &e.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan encounter: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanClients(rows *sql.Rows) ([]Client, error) {
	clients := []Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClient(row rowScanner) (*Client, error) {
	var c Client
	var dob time.Time
	var registeredBy sql.NullString
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &dob, &c.Gender,
		&c.Address, &c.PhoneNumber, &c.Email, &registeredBy, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.DateOfBirth = dob.Format("2006-01-02")
	if registeredBy.Valid {
		c.RegisteredBy = registeredBy.String
	}
	return &c, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
