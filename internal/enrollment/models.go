package enrollment

import (
	"time"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
)

// Enrollment links a client to a health program. The (client, program) pair
// is unique for the lifetime of the record.
type Enrollment struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"client_id"`
	ProgramID      string    `json:"program_id"`
	ProgramName    string    `json:"program_name,omitempty"`
	EnrolledBy     string    `json:"enrolled_by,omitempty"`
	IsActive       bool      `json:"is_active"`
	EnrollmentDate time.Time `json:"enrollment_date"`
}

// OwnedBy returns the enrolling user for visibility filtering.
func (e Enrollment) OwnedBy() string {
	return e.EnrolledBy
}

// CreateRequest represents the request to enroll a client in a program
type CreateRequest struct {
	ClientID  string `json:"client_id"`
	ProgramID string `json:"program_id"`
}

func (r *CreateRequest) Validate() error {
	if r.ClientID == "" {
		return apperr.Validationf("client_id is required")
	}
	if r.ProgramID == "" {
		return apperr.Validationf("program_id is required")
	}
	return nil
}
