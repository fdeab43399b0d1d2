package metric

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
)

// Metric represents a recorded health measurement.
type Metric struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"client_id"`
	Name       string    `json:"name"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	RecordedBy string    `json:"recorded_by,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// OwnedBy returns the recording user for visibility filtering.
func (m Metric) OwnedBy() string {
	return m.RecordedBy
}

// CreateRequest represents the request to record a measurement. Value is
// untyped because blood pressure arrives as "120/80" while everything else
// is numeric.
type CreateRequest struct {
	ClientID string      `json:"client_id"`
	Name     string      `json:"name"`
	Value    interface{} `json:"value"`
	Unit     string      `json:"unit"`
}

func (r *CreateRequest) Validate() error {
	if r.ClientID == "" {
		return apperr.Validationf("client_id is required")
	}
	if r.Name == "" {
		return apperr.Validationf("name is required")
	}
	if r.Value == nil {
		return apperr.Validationf("value is required")
	}
	if r.Unit == "" {
		return apperr.Validationf("unit is required")
	}
	return nil
}

// CoerceValue normalizes the submitted value to a float plus the unit to
// store. Compound blood pressure readings keep the systolic number as the
// value and carry both components in the unit annotation.
func CoerceValue(raw interface{}, unit string) (float64, string, error) {
	switch v := raw.(type) {
	case float64:
		return v, unit, nil
	case string:
		s := strings.TrimSpace(v)
		if strings.Contains(s, "/") {
			parts := strings.SplitN(s, "/", 2)
			systolic, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
			if err != nil {
				return 0, "", apperr.Validationf("invalid blood pressure value format")
			}
			annotated := fmt.Sprintf("%s (systolic/diastolic: %s)", unit, s)
			return systolic, annotated, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, "", apperr.Validationf("value must be a number")
		}
		return f, unit, nil
	default:
		return 0, "", apperr.Validationf("value must be a number")
	}
}
