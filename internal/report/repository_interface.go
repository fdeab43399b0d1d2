package report

import "context"

// RepositoryInterface defines the raw fetches the aggregations run over
type RepositoryInterface interface {
	Encounters(ctx context.Context, dr DateRange) ([]EncounterRow, error)
	Enrollments(ctx context.Context, dr DateRange) ([]EnrollmentRow, error)
	Prescriptions(ctx context.Context, dr DateRange) ([]PrescriptionRow, error)
	Metrics(ctx context.Context, dr DateRange) ([]MetricRow, error)
	Programs(ctx context.Context) ([]ProgramRow, error)
	Staff(ctx context.Context) ([]StaffRow, error)
}
