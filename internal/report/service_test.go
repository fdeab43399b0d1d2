package report

import (
	"context"
	"testing"
	"time"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
)

type mockRepository struct {
	encounters    []EncounterRow
	enrollments   []EnrollmentRow
	prescriptions []PrescriptionRow
	metrics       []MetricRow
	programs      []ProgramRow
	staff         []StaffRow

	lastRange DateRange
}

func (m *mockRepository) Encounters(ctx context.Context, dr DateRange) ([]EncounterRow, error) {
	m.lastRange = dr
	return m.encounters, nil
}

func (m *mockRepository) Enrollments(ctx context.Context, dr DateRange) ([]EnrollmentRow, error) {
	m.lastRange = dr
	return m.enrollments, nil
}

func (m *mockRepository) Prescriptions(ctx context.Context, dr DateRange) ([]PrescriptionRow, error) {
	m.lastRange = dr
	return m.prescriptions, nil
}

func (m *mockRepository) Metrics(ctx context.Context, dr DateRange) ([]MetricRow, error) {
	m.lastRange = dr
	return m.metrics, nil
}

func (m *mockRepository) Programs(ctx context.Context) ([]ProgramRow, error) {
	return m.programs, nil
}

func (m *mockRepository) Staff(ctx context.Context) ([]StaffRow, error) {
	return m.staff, nil
}

func TestGenerateRejectsUnknownType(t *testing.T) {
	svc := NewService(&mockRepository{})

	_, err := svc.Generate(context.Background(), "everything", "", "")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "invalid report type" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestParseDateRange(t *testing.T) {
	dr, err := ParseDateRange("", "")
	if err != nil || dr.Start != nil || dr.End != nil {
		t.Errorf("empty range: got %v, %v", dr, err)
	}

	if _, err := ParseDateRange("2026-01-01", ""); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected validation error for unpaired start, got %v", err)
	}

	if _, err := ParseDateRange("2026-02-01", "2026-01-01"); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected validation error for inverted range, got %v", err)
	}

	dr, err = ParseDateRange("2026-01-01", "2026-01-31")
	if err != nil {
		t.Fatalf("ParseDateRange returned error: %v", err)
	}
	// End is widened to the following midnight so the last day is inclusive.
	wantEnd := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if !dr.End.Equal(wantEnd) {
		t.Errorf("expected exclusive end %v, got %v", wantEnd, *dr.End)
	}
}

func TestClientAttendance(t *testing.T) {
	repo := &mockRepository{
		encounters: []EncounterRow{
			{Status: "Completed"}, {Status: "Completed"}, {Status: "Cancelled"},
			{Status: "Scheduled"}, {Status: "No Show"},
		},
	}
	svc := NewService(repo)

	result, err := svc.Generate(context.Background(), TypeClientAttendance, "", "")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	report := result.(*ClientAttendanceReport)

	if report.TotalEncounters != 5 || report.Completed != 2 || report.Cancelled != 1 ||
		report.Scheduled != 1 || report.NoShow != 1 {
		t.Errorf("unexpected counts: %+v", report)
	}
	if report.CompletionRate != 0.4 {
		t.Errorf("expected completion rate 0.4, got %v", report.CompletionRate)
	}
}

func TestClientAttendanceEmpty(t *testing.T) {
	svc := NewService(&mockRepository{})

	result, err := svc.Generate(context.Background(), TypeClientAttendance, "", "")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	report := result.(*ClientAttendanceReport)
	if report.CompletionRate != 0 {
		t.Errorf("zero encounters must give completion rate 0, got %v", report.CompletionRate)
	}
}

func TestProgramEnrollmentCoversEveryProgram(t *testing.T) {
	repo := &mockRepository{
		programs: []ProgramRow{
			{ID: "p1", Name: "HIV Care"},
			{ID: "p2", Name: "Malaria Prevention"},
			{ID: "p3", Name: "TB Care"},
		},
		enrollments: []EnrollmentRow{
			{ProgramID: "p1", IsActive: true},
			{ProgramID: "p1", IsActive: false},
			{ProgramID: "p3", IsActive: true},
		},
	}
	svc := NewService(repo)

	result, err := svc.Generate(context.Background(), TypeProgramEnrollment, "", "")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	report := result.(*ProgramEnrollmentReport)

	if report.TotalEnrollments != 3 || report.Active != 2 || report.Completed != 1 {
		t.Errorf("unexpected totals: %+v", report)
	}
	if len(report.Breakdown) != 3 {
		t.Fatalf("expected every program in the breakdown, got %d", len(report.Breakdown))
	}
	// Zero-enrollment program still shows up.
	var malaria *ProgramBreakdown
	for i := range report.Breakdown {
		if report.Breakdown[i].ProgramID == "p2" {
			malaria = &report.Breakdown[i]
		}
	}
	if malaria == nil || malaria.Total != 0 {
		t.Errorf("expected zero-row program in breakdown, got %+v", report.Breakdown)
	}
}

func TestPrescriptionUsage(t *testing.T) {
	repo := &mockRepository{
		prescriptions: []PrescriptionRow{
			{MedicationName: "Rifampicin", HasEndDate: false},
			{MedicationName: "Rifampicin", HasEndDate: true},
			{MedicationName: "Artemether", HasEndDate: false},
		},
	}
	svc := NewService(repo)

	result, err := svc.Generate(context.Background(), TypePrescriptionUsage, "", "")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	report := result.(*PrescriptionUsageReport)

	if report.Total != 3 || report.Active != 2 || report.Completed != 1 {
		t.Errorf("unexpected totals: %+v", report)
	}
	if len(report.ByMedication) != 2 {
		t.Fatalf("expected 2 medications, got %d", len(report.ByMedication))
	}
	// Sorted by name.
	if report.ByMedication[0].MedicationName != "Artemether" || report.ByMedication[1].Count != 2 {
		t.Errorf("unexpected medication counts: %+v", report.ByMedication)
	}
}

func TestStaffPerformance(t *testing.T) {
	repo := &mockRepository{
		staff: []StaffRow{
			{ID: "doc-1", Username: "dr.okafor", IsActive: true},
			{ID: "nurse-1", Username: "n.achieng", IsActive: true},
		},
		encounters: []EncounterRow{
			{Status: "Completed", ProviderID: "doc-1"},
			{Status: "Scheduled", ProviderID: "doc-1"},
			{Status: "Completed", ProviderID: "unknown"},
		},
		prescriptions: []PrescriptionRow{
			{MedicationName: "Rifampicin", PrescribedBy: "doc-1"},
		},
		metrics: []MetricRow{
			{RecordedBy: "nurse-1"},
			{RecordedBy: "nurse-1"},
		},
	}
	svc := NewService(repo)

	result, err := svc.Generate(context.Background(), TypeStaffPerformance, "", "")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	report := result.(*StaffPerformanceReport)

	if len(report.Staff) != 2 {
		t.Fatalf("expected 2 staff rows, got %d", len(report.Staff))
	}
	doc := report.Staff[0]
	if doc.Encounters != 2 || doc.Prescriptions != 1 || doc.Metrics != 0 {
		t.Errorf("unexpected doctor row: %+v", doc)
	}
	nurse := report.Staff[1]
	if nurse.Encounters != 0 || nurse.Metrics != 2 {
		t.Errorf("unexpected nurse row: %+v", nurse)
	}
}

func TestProgramMetricsCompletionRate(t *testing.T) {
	repo := &mockRepository{
		programs: []ProgramRow{{ID: "p1", Name: "TB Care"}, {ID: "p2", Name: "HIV Care"}},
		enrollments: []EnrollmentRow{
			{ProgramID: "p1", IsActive: true},
			{ProgramID: "p1", IsActive: false},
			{ProgramID: "p1", IsActive: false},
		},
	}
	svc := NewService(repo)

	summaries, err := svc.ProgramMetrics(context.Background())
	if err != nil {
		t.Fatalf("ProgramMetrics returned error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	for _, s := range summaries {
		switch s.ProgramID {
		case "p1":
			if s.Total != 3 || s.Active != 1 || s.CompletionRate != 2.0/3.0 {
				t.Errorf("unexpected p1 summary: %+v", s)
			}
		case "p2":
			if s.Total != 0 || s.CompletionRate != 0 {
				t.Errorf("empty program must have zero rate, got %+v", s)
			}
		}
	}
}

func TestResourceUtilizationZeroDenominators(t *testing.T) {
	svc := NewService(&mockRepository{})

	report, err := svc.ResourceUtilization(context.Background())
	if err != nil {
		t.Fatalf("ResourceUtilization returned error: %v", err)
	}
	if report.EncounterUtilization != 0 || report.StaffUtilization != 0 {
		t.Errorf("expected zero utilization on empty data, got %+v", report)
	}
}

func TestResourceUtilization(t *testing.T) {
	repo := &mockRepository{
		encounters: []EncounterRow{
			{Status: "Completed"}, {Status: "Completed"}, {Status: "Cancelled"}, {Status: "Scheduled"},
		},
		staff: []StaffRow{
			{ID: "doc-1", IsActive: true},
			{ID: "nurse-1", IsActive: false},
		},
	}
	svc := NewService(repo)

	report, err := svc.ResourceUtilization(context.Background())
	if err != nil {
		t.Fatalf("ResourceUtilization returned error: %v", err)
	}
	if report.EncounterUtilization != 0.5 {
		t.Errorf("expected encounter utilization 0.5, got %v", report.EncounterUtilization)
	}
	if report.StaffUtilization != 0.5 {
		t.Errorf("expected staff utilization 0.5, got %v", report.StaffUtilization)
	}
}
