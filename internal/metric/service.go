package metric

import (
	"context"
	"log"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
	"github.com/AfyaLink-Health/health-records-service/internal/auth"
	"github.com/AfyaLink-Health/health-records-service/internal/messaging"
	"github.com/AfyaLink-Health/health-records-service/internal/visibility"
)

// Service handles metric business logic
type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
}

// NewService creates a new metric service
func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// Record stores a measurement for a client. Medical staff only.
func (s *Service) Record(ctx context.Context, pr *auth.Principal, req *CreateRequest) (*Metric, error) {
	if !pr.IsStaff() {
		return nil, apperr.PermissionDenied("only medical staff can record metrics")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	value, unit, err := CoerceValue(req.Value, req.Unit)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ClientExists(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFoundf("client not found")
	}

	m := &Metric{
		ClientID:   req.ClientID,
		Name:       req.Name,
		Value:      value,
		Unit:       unit,
		RecordedBy: pr.UserID,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.publish(ctx, messaging.EventMetricRecorded, messaging.MetricRecordedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventMetricRecorded),
		Data: messaging.MetricRecordedData{
			MetricID:   m.ID,
			ClientID:   m.ClientID,
			Name:       m.Name,
			Value:      m.Value,
			Unit:       m.Unit,
			RecordedBy: m.RecordedBy,
		},
	})
	return m, nil
}

// List returns metrics visible to the principal.
func (s *Service) List(ctx context.Context, pr *auth.Principal) ([]Metric, error) {
	metrics, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return visibility.Filter(visibility.KindMetric, metrics, pr), nil
}

// Get fetches a single metric
func (s *Service) Get(ctx context.Context, id string) (*Metric, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes a metric. Medical staff only.
func (s *Service) Delete(ctx context.Context, pr *auth.Principal, id string) error {
	if !pr.IsStaff() {
		return apperr.PermissionDenied("only medical staff can delete metrics")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) publish(ctx context.Context, routingKey string, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
