package program

import (
	"time"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
)

// Program represents a health program clients can enroll in.
type Program struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// Enrollment counts, populated on list and detail reads.
	EnrollmentCount       int `json:"enrollment_count"`
	ActiveEnrollmentCount int `json:"active_enrollment_count"`
}

// OwnedBy returns the creating user for visibility filtering.
func (p Program) OwnedBy() string {
	return p.CreatedBy
}

// CreateRequest represents the request to create a program
type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *CreateRequest) Validate() error {
	if r.Name == "" {
		return apperr.Validationf("name is required")
	}
	return nil
}
