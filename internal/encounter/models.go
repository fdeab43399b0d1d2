package encounter

import (
	"time"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
)

// Encounter statuses.
const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
	StatusNoShow    = "No Show"
)

// ValidStatus reports whether s is one of the four encounter statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Encounter represents a scheduled clinical visit.
type Encounter struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"client_id"`
	ProviderID   string    `json:"provider_id,omitempty"`
	ScheduledFor time.Time `json:"scheduled_for"`
	Status       string    `json:"status"`
	Reason       string    `json:"reason,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// OwnedBy returns the provider for visibility filtering.
func (e Encounter) OwnedBy() string {
	return e.ProviderID
}

// CreateRequest represents the request to schedule an encounter
type CreateRequest struct {
	ClientID     string `json:"client_id"`
	ProviderID   string `json:"provider_id"`
	ScheduledFor string `json:"scheduled_for"`
	Reason       string `json:"reason"`
	Notes        string `json:"notes"`
}

// Validate checks the required fields and parses the schedule time, which
// is accepted as RFC 3339 or "2006-01-02 15:04".
func (r *CreateRequest) Validate() (time.Time, error) {
	if r.ClientID == "" {
		return time.Time{}, apperr.Validationf("client_id is required")
	}
	if r.ScheduledFor == "" {
		return time.Time{}, apperr.Validationf("scheduled_for is required")
	}
	if t, err := time.Parse(time.RFC3339, r.ScheduledFor); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02 15:04", r.ScheduledFor); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.Validationf("scheduled_for must be an RFC 3339 or YYYY-MM-DD HH:MM timestamp")
}

// UpdateStatusRequest represents an encounter status transition
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	if r.Status == "" {
		return apperr.Validationf("status is required")
	}
	if !ValidStatus(r.Status) {
		return apperr.Validationf("status must be one of Scheduled, Completed, Cancelled, No Show")
	}
	return nil
}
