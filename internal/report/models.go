package report

import (
	"time"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
)

// Report types accepted by the reports endpoint.
const (
	TypeClientAttendance  = "client_attendance"
	TypeProgramEnrollment = "program_enrollment"
	TypePrescriptionUsage = "prescription_usage"
	TypeStaffPerformance  = "staff_performance"
)

// DateRange is an optional reporting window. Both bounds are set or neither
// is. End is exclusive; the parser widens the submitted end date to the
// following midnight so the whole day counts.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// ParseDateRange validates the optional start/end query parameters.
func ParseDateRange(startStr, endStr string) (DateRange, error) {
	if startStr == "" && endStr == "" {
		return DateRange{}, nil
	}
	if startStr == "" || endStr == "" {
		return DateRange{}, apperr.Validationf("start_date and end_date must be provided together")
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return DateRange{}, apperr.Validationf("start_date must be in YYYY-MM-DD format")
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return DateRange{}, apperr.Validationf("end_date must be in YYYY-MM-DD format")
	}
	if end.Before(start) {
		return DateRange{}, apperr.Validationf("end_date must not be before start_date")
	}

	endExclusive := end.AddDate(0, 0, 1)
	return DateRange{Start: &start, End: &endExclusive}, nil
}

// Raw rows fetched for aggregation.

type EncounterRow struct {
	Status     string
	ProviderID string
}

type EnrollmentRow struct {
	ProgramID  string
	IsActive   bool
	EnrolledBy string
}

type PrescriptionRow struct {
	MedicationName string
	HasEndDate     bool
	PrescribedBy   string
}

type MetricRow struct {
	RecordedBy string
}

type ProgramRow struct {
	ID   string
	Name string
}

type StaffRow struct {
	ID       string
	Username string
	IsActive bool
}

// Aggregated report shapes.

type ClientAttendanceReport struct {
	ReportType      string  `json:"report_type"`
	TotalEncounters int     `json:"total_encounters"`
	Completed       int     `json:"completed"`
	Cancelled       int     `json:"cancelled"`
	Scheduled       int     `json:"scheduled"`
	NoShow          int     `json:"no_show"`
	CompletionRate  float64 `json:"completion_rate"`
}

type ProgramBreakdown struct {
	ProgramID   string `json:"program_id"`
	ProgramName string `json:"program_name"`
	Total       int    `json:"total"`
	Active      int    `json:"active"`
}

type ProgramEnrollmentReport struct {
	ReportType       string             `json:"report_type"`
	TotalEnrollments int                `json:"total_enrollments"`
	Active           int                `json:"active"`
	Completed        int                `json:"completed"`
	Breakdown        []ProgramBreakdown `json:"breakdown"`
}

type MedicationCount struct {
	MedicationName string `json:"medication_name"`
	Count          int    `json:"count"`
}

type PrescriptionUsageReport struct {
	ReportType   string            `json:"report_type"`
	Total        int               `json:"total"`
	Active       int               `json:"active"`
	Completed    int               `json:"completed"`
	ByMedication []MedicationCount `json:"by_medication"`
}

type StaffPerformance struct {
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	Encounters    int    `json:"encounters"`
	Prescriptions int    `json:"prescriptions"`
	Metrics       int    `json:"metrics"`
}

type StaffPerformanceReport struct {
	ReportType string             `json:"report_type"`
	Staff      []StaffPerformance `json:"staff"`
}

type ProgramMetricsSummary struct {
	ProgramID      string  `json:"program_id"`
	ProgramName    string  `json:"program_name"`
	Total          int     `json:"total_enrollments"`
	Active         int     `json:"active_enrollments"`
	CompletionRate float64 `json:"completion_rate"`
}

type ResourceUtilizationReport struct {
	TotalEncounters      int     `json:"total_encounters"`
	CompletedEncounters  int     `json:"completed_encounters"`
	EncounterUtilization float64 `json:"encounter_utilization"`
	TotalStaff           int     `json:"total_staff"`
	ActiveStaff          int     `json:"active_staff"`
	StaffUtilization     float64 `json:"staff_utilization"`
}
