package report

import (
	"context"
	"sort"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
)

// Service aggregates raw rows into reports. All the arithmetic lives here,
// pure and testable; ratios with a zero denominator come out as 0.
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new report service
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// Generate dispatches on the report type.
func (s *Service) Generate(ctx context.Context, reportType, startDate, endDate string) (interface{}, error) {
	dr, err := ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	switch reportType {
	case TypeClientAttendance:
		return s.clientAttendance(ctx, dr)
	case TypeProgramEnrollment:
		return s.programEnrollment(ctx, dr)
	case TypePrescriptionUsage:
		return s.prescriptionUsage(ctx, dr)
	case TypeStaffPerformance:
		return s.staffPerformance(ctx, dr)
	default:
		return nil, apperr.Validationf("invalid report type")
	}
}

func (s *Service) clientAttendance(ctx context.Context, dr DateRange) (*ClientAttendanceReport, error) {
	encounters, err := s.repo.Encounters(ctx, dr)
	if err != nil {
		return nil, err
	}

	report := &ClientAttendanceReport{ReportType: TypeClientAttendance}
	for _, e := range encounters {
		report.TotalEncounters++
		switch e.Status {
		case "Completed":
			report.Completed++
		case "Cancelled":
			report.Cancelled++
		case "Scheduled":
			report.Scheduled++
		case "No Show":
			report.NoShow++
		}
	}
	report.CompletionRate = ratio(report.Completed, report.TotalEncounters)
	return report, nil
}

func (s *Service) programEnrollment(ctx context.Context, dr DateRange) (*ProgramEnrollmentReport, error) {
	enrollments, err := s.repo.Enrollments(ctx, dr)
	if err != nil {
		return nil, err
	}
	programs, err := s.repo.Programs(ctx)
	if err != nil {
		return nil, err
	}

	report := &ProgramEnrollmentReport{ReportType: TypeProgramEnrollment}
	totals := map[string]*ProgramBreakdown{}
	// Seed the breakdown with every program so zero rows show up.
	for _, p := range programs {
		totals[p.ID] = &ProgramBreakdown{ProgramID: p.ID, ProgramName: p.Name}
	}

	for _, e := range enrollments {
		report.TotalEnrollments++
		if e.IsActive {
			report.Active++
		} else {
			report.Completed++
		}
		if b, ok := totals[e.ProgramID]; ok {
			b.Total++
			if e.IsActive {
				b.Active++
			}
		}
	}

	report.Breakdown = make([]ProgramBreakdown, 0, len(programs))
	for _, p := range programs {
		report.Breakdown = append(report.Breakdown, *totals[p.ID])
	}
	return report, nil
}

func (s *Service) prescriptionUsage(ctx context.Context, dr DateRange) (*PrescriptionUsageReport, error) {
	prescriptions, err := s.repo.Prescriptions(ctx, dr)
	if err != nil {
		return nil, err
	}

	report := &PrescriptionUsageReport{ReportType: TypePrescriptionUsage}
	counts := map[string]int{}
	for _, p := range prescriptions {
		report.Total++
		if p.HasEndDate {
			report.Completed++
		} else {
			report.Active++
		}
		counts[p.MedicationName]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	report.ByMedication = make([]MedicationCount, 0, len(names))
	for _, name := range names {
		report.ByMedication = append(report.ByMedication, MedicationCount{MedicationName: name, Count: counts[name]})
	}
	return report, nil
}

func (s *Service) staffPerformance(ctx context.Context, dr DateRange) (*StaffPerformanceReport, error) {
	staff, err := s.repo.Staff(ctx)
	if err != nil {
		return nil, err
	}
	encounters, err := s.repo.Encounters(ctx, dr)
	if err != nil {
		return nil, err
	}
	prescriptions, err := s.repo.Prescriptions(ctx, dr)
	if err != nil {
		return nil, err
	}
	metrics, err := s.repo.Metrics(ctx, dr)
	if err != nil {
		return nil, err
	}

	byUser := map[string]*StaffPerformance{}
	report := &StaffPerformanceReport{ReportType: TypeStaffPerformance, Staff: make([]StaffPerformance, 0, len(staff))}
	for _, u := range staff {
		byUser[u.ID] = &StaffPerformance{UserID: u.ID, Username: u.Username}
	}

	for _, e := range encounters {
		if p, ok := byUser[e.ProviderID]; ok {
			p.Encounters++
		}
	}
	for _, rx := range prescriptions {
		if p, ok := byUser[rx.PrescribedBy]; ok {
			p.Prescriptions++
		}
	}
	for _, m := range metrics {
		if p, ok := byUser[m.RecordedBy]; ok {
			p.Metrics++
		}
	}

	for _, u := range staff {
		report.Staff = append(report.Staff, *byUser[u.ID])
	}
	return report, nil
}

// ProgramMetrics builds the per-program summary with completion rates.
func (s *Service) ProgramMetrics(ctx context.Context) ([]ProgramMetricsSummary, error) {
	programs, err := s.repo.Programs(ctx)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.repo.Enrollments(ctx, DateRange{})
	if err != nil {
		return nil, err
	}

	byProgram := map[string]*ProgramMetricsSummary{}
	for _, p := range programs {
		byProgram[p.ID] = &ProgramMetricsSummary{ProgramID: p.ID, ProgramName: p.Name}
	}
	for _, e := range enrollments {
		if summary, ok := byProgram[e.ProgramID]; ok {
			summary.Total++
			if e.IsActive {
				summary.Active++
			}
		}
	}

	out := make([]ProgramMetricsSummary, 0, len(programs))
	for _, p := range programs {
		summary := byProgram[p.ID]
		summary.CompletionRate = ratio(summary.Total-summary.Active, summary.Total)
		out = append(out, *summary)
	}
	return out, nil
}

// ResourceUtilization reports encounter completion and staff activity rates.
func (s *Service) ResourceUtilization(ctx context.Context) (*ResourceUtilizationReport, error) {
	encounters, err := s.repo.Encounters(ctx, DateRange{})
	if err != nil {
		return nil, err
	}
	staff, err := s.repo.Staff(ctx)
	if err != nil {
		return nil, err
	}

	report := &ResourceUtilizationReport{TotalEncounters: len(encounters), TotalStaff: len(staff)}
	for _, e := range encounters {
		if e.Status == "Completed" {
			report.CompletedEncounters++
		}
	}
	for _, u := range staff {
		if u.IsActive {
			report.ActiveStaff++
		}
	}
	report.EncounterUtilization = ratio(report.CompletedEncounters, report.TotalEncounters)
	report.StaffUtilization = ratio(report.ActiveStaff, report.TotalStaff)
	return report, nil
}

func ratio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}
