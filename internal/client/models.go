package client

import (
	"time"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
)

// Client represents a person receiving care.
type Client struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	DateOfBirth  string    `json:"date_of_birth"` // Format: YYYY-MM-DD
	Gender       string    `json:"gender"`
	Address      string    `json:"address,omitempty"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	Email        string    `json:"email,omitempty"`
	RegisteredBy string    `json:"registered_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest represents the request to register a new client
type RegisterRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"` // Format: YYYY-MM-DD
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

// Validate checks required fields, the date format and the gender code.
func (r *RegisterRequest) Validate() error {
	if r.FirstName == "" {
		return apperr.Validationf("first_name is required")
	}
	if r.LastName == "" {
		return apperr.Validationf("last_name is required")
	}
	if r.DateOfBirth == "" {
		return apperr.Validationf("date_of_birth is required")
	}
	if _, err := time.Parse("2006-01-02", r.DateOfBirth); err != nil {
		return apperr.Validationf("date_of_birth must be in YYYY-MM-DD format")
	}
	switch r.Gender {
	case "M", "F", "O":
	case "":
		return apperr.Validationf("gender is required")
	default:
		return apperr.Validationf("gender must be one of M, F, O")
	}
	return nil
}

// ProfileEnrollment is the enrollment summary embedded in a client profile.
type ProfileEnrollment struct {
	ID             string    `json:"id"`
	ProgramID      string    `json:"program_id"`
	ProgramName    string    `json:"program_name"`
	IsActive       bool      `json:"is_active"`
	EnrollmentDate time.Time `json:"enrollment_date"`
}

// ProfilePrescription is the prescription summary embedded in a client profile.
type ProfilePrescription struct {
	ID             string  `json:"id"`
	MedicationName string  `json:"medication_name"`
	Dosage         string  `json:"dosage"`
	Frequency      string  `json:"frequency"`
	StartDate      string  `json:"start_date"`
	EndDate        *string `json:"end_date,omitempty"`
}

// ProfileMetric is the measurement summary embedded in a client profile.
type ProfileMetric struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ProfileEncounter is the visit summary embedded in a client profile.
type ProfileEncounter struct {
	ID           string    `json:"id"`
	ProviderID   *string   `json:"provider_id,omitempty"`
	ScheduledFor time.Time `json:"scheduled_for"`
	Status       string    `json:"status"`
	Reason       string    `json:"reason,omitempty"`
}

// Profile bundles a client with their clinical history. Served from cache
// with a short TTL since it fans out over five tables.
type Profile struct {
	Client        Client                `json:"client"`
	Enrollments   []ProfileEnrollment   `json:"enrollments"`
	Prescriptions []ProfilePrescription `json:"prescriptions"`
	Metrics       []ProfileMetric       `json:"metrics"`
	Encounters    []ProfileEncounter    `json:"encounters"`
}

// Comprehensive is the condensed care view: active program memberships plus
// current prescriptions and encounters.
type Comprehensive struct {
	Client            Client                `json:"client"`
	ActiveEnrollments []ProfileEnrollment   `json:"active_enrollments"`
	Prescriptions     []ProfilePrescription `json:"prescriptions"`
	Encounters        []ProfileEncounter    `json:"encounters"`
}
