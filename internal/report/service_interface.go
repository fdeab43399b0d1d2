package report

import "context"

// ServiceInterface defines the contract for report generation
type ServiceInterface interface {
	Generate(ctx context.Context, reportType, startDate, endDate string) (interface{}, error)
	ProgramMetrics(ctx context.Context) ([]ProgramMetricsSummary, error)
	ResourceUtilization(ctx context.Context) (*ResourceUtilizationReport, error)
}
