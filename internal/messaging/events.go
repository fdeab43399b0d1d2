package messaging

import (
	"fmt"
	"time"
)

// Event routing keys as constants
const (
	// Client events
	EventClientRegistered = "client.registered"
	EventClientDeleted    = "client.deleted"

	// Program events
	EventProgramCreated = "program.created"
	EventProgramDeleted = "program.deleted"

	// Enrollment events
	EventEnrollmentCreated     = "enrollment.created"
	EventEnrollmentDeactivated = "enrollment.deactivated"
	EventEnrollmentDeleted     = "enrollment.deleted"

	// Clinical record events
	EventPrescriptionCreated    = "prescription.created"
	EventPrescriptionDeleted    = "prescription.deleted"
	EventMetricRecorded         = "metric.recorded"
	EventEncounterScheduled     = "encounter.scheduled"
	EventEncounterStatusChanged = "encounter.status_changed"

	// User events
	EventUserRegistered = "user.registered"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// ClientRegisteredEvent announces a new client record.
type ClientRegisteredEvent struct {
	BaseEvent
	Data ClientRegisteredData `json:"data"`
}

type ClientRegisteredData struct {
	ClientID  string    `json:"client_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// ClientDeletedEvent announces a client removal.
type ClientDeletedEvent struct {
	BaseEvent
	Data ClientDeletedData `json:"data"`
}

type ClientDeletedData struct {
	ClientID  string    `json:"client_id"`
	DeletedBy string    `json:"deleted_by"`
	DeletedAt time.Time `json:"deleted_at"`
}

// EnrollmentCreatedEvent announces a client joining a program.
type EnrollmentCreatedEvent struct {
	BaseEvent
	Data EnrollmentCreatedData `json:"data"`
}

type EnrollmentCreatedData struct {
	EnrollmentID   string    `json:"enrollment_id"`
	ClientID       string    `json:"client_id"`
	ProgramID      string    `json:"program_id"`
	ProgramName    string    `json:"program_name"`
	EnrolledBy     string    `json:"enrolled_by"`
	EnrollmentDate time.Time `json:"enrollment_date"`
}

// PrescriptionCreatedEvent announces a new medication order.
type PrescriptionCreatedEvent struct {
	BaseEvent
	Data PrescriptionCreatedData `json:"data"`
}

type PrescriptionCreatedData struct {
	PrescriptionID string `json:"prescription_id"`
	ClientID       string `json:"client_id"`
	MedicationName string `json:"medication_name"`
	PrescribedBy   string `json:"prescribed_by"`
	StartDate      string `json:"start_date"`
}

// MetricRecordedEvent announces a recorded health measurement.
type MetricRecordedEvent struct {
	BaseEvent
	Data MetricRecordedData `json:"data"`
}

type MetricRecordedData struct {
	MetricID   string  `json:"metric_id"`
	ClientID   string  `json:"client_id"`
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	RecordedBy string  `json:"recorded_by"`
}

// EncounterScheduledEvent announces a scheduled clinical visit.
type EncounterScheduledEvent struct {
	BaseEvent
	Data EncounterScheduledData `json:"data"`
}

type EncounterScheduledData struct {
	EncounterID  string    `json:"encounter_id"`
	ClientID     string    `json:"client_id"`
	ProviderID   string    `json:"provider_id"`
	ScheduledFor time.Time `json:"scheduled_for"`
}

// EncounterStatusChangedEvent announces an encounter status transition.
type EncounterStatusChangedEvent struct {
	BaseEvent
	Data EncounterStatusChangedData `json:"data"`
}

type EncounterStatusChangedData struct {
	EncounterID string    `json:"encounter_id"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	ChangedAt   time.Time `json:"changed_at"`
}

// ProgramCreatedEvent announces a new health program.
type ProgramCreatedEvent struct {
	BaseEvent
	Data ProgramCreatedData `json:"data"`
}

type ProgramCreatedData struct {
	ProgramID string    `json:"program_id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordDeletedEvent is the shared shape for removal events. The routing
// key identifies the entity kind.
type RecordDeletedEvent struct {
	BaseEvent
	Data RecordDeletedData `json:"data"`
}

type RecordDeletedData struct {
	RecordID  string    `json:"record_id"`
	DeletedBy string    `json:"deleted_by"`
	DeletedAt time.Time `json:"deleted_at"`
}

// EnrollmentDeactivatedEvent announces an enrollment being completed.
type EnrollmentDeactivatedEvent struct {
	BaseEvent
	Data EnrollmentDeactivatedData `json:"data"`
}

type EnrollmentDeactivatedData struct {
	EnrollmentID  string    `json:"enrollment_id"`
	DeactivatedBy string    `json:"deactivated_by"`
	DeactivatedAt time.Time `json:"deactivated_at"`
}

// UserRegisteredEvent announces a new staff account.
type UserRegisteredEvent struct {
	BaseEvent
	Data UserRegisteredData `json:"data"`
}

type UserRegisteredData struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	WorkEmail string    `json:"work_email"`
	IsDoctor  bool      `json:"is_doctor"`
	IsNurse   bool      `json:"is_nurse"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     fmt.Sprintf("%d", time.Now().UnixNano()),
		Timestamp:   time.Now().UTC(),
		ServiceName: "health-records-service",
	}
}
