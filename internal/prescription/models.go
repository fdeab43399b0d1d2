package prescription

import (
	"time"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
)

// Prescription represents a medication order for a client.
type Prescription struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"client_id"`
	MedicationName string    `json:"medication_name"`
	Dosage         string    `json:"dosage"`
	Frequency      string    `json:"frequency"`
	Duration       string    `json:"duration,omitempty"`
	StartDate      string    `json:"start_date"` // Format: YYYY-MM-DD
	EndDate        *string   `json:"end_date,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	PrescribedBy   string    `json:"prescribed_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// OwnedBy returns the prescribing doctor for visibility filtering.
func (p Prescription) OwnedBy() string {
	return p.PrescribedBy
}

// CreateRequest represents the request to create a prescription
type CreateRequest struct {
	ClientID       string  `json:"client_id"`
	MedicationName string  `json:"medication_name"`
	Dosage         string  `json:"dosage"`
	Frequency      string  `json:"frequency"`
	Duration       string  `json:"duration"`
	StartDate      string  `json:"start_date"` // Format: YYYY-MM-DD
	EndDate        *string `json:"end_date"`
	Notes          string  `json:"notes"`
}

// Validate checks the required fields, naming each one in its error.
func (r *CreateRequest) Validate() error {
	if r.ClientID == "" {
		return apperr.Validationf("client_id is required")
	}
	if r.MedicationName == "" {
		return apperr.Validationf("medication_name is required")
	}
	if r.Dosage == "" {
		return apperr.Validationf("dosage is required")
	}
	if r.Frequency == "" {
		return apperr.Validationf("frequency is required")
	}
	if r.StartDate == "" {
		return apperr.Validationf("start_date is required")
	}
	if _, err := time.Parse("2006-01-02", r.StartDate); err != nil {
		return apperr.Validationf("start_date must be in YYYY-MM-DD format")
	}
	if r.EndDate != nil {
		if _, err := time.Parse("2006-01-02", *r.EndDate); err != nil {
			return apperr.Validationf("end_date must be in YYYY-MM-DD format")
		}
	}
	return nil
}

// UpdateRequest represents a partial prescription update
type UpdateRequest struct {
	MedicationName *string `json:"medication_name,omitempty"`
	Dosage         *string `json:"dosage,omitempty"`
	Frequency      *string `json:"frequency,omitempty"`
	Duration       *string `json:"duration,omitempty"`
	EndDate        *string `json:"end_date,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	if r.EndDate != nil && *r.EndDate != "" {
		if _, err := time.Parse("2006-01-02", *r.EndDate); err != nil {
			return apperr.Validationf("end_date must be in YYYY-MM-DD format")
		}
	}
	return nil
}
