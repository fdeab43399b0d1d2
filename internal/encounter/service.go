package encounter

import (
	"context"
	"log"
	"time"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
	"github.com/AfyaLink-Health/health-records-service/internal/auth"
	"github.com/AfyaLink-Health/health-records-service/internal/messaging"
	"github.com/AfyaLink-Health/health-records-service/internal/visibility"
)

// Service handles encounter business logic
type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
}

// NewService creates a new encounter service
func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// Schedule creates a new encounter. The provider defaults to the acting
// user and must be medical staff either way.
func (s *Service) Schedule(ctx context.Context, pr *auth.Principal, req *CreateRequest) (*Encounter, error) {
	scheduledFor, err := req.Validate()
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

	providerID := req.ProviderID
	if providerID == "" {
		providerID = pr.UserID
	}
	isStaff, err := s.repo.ProviderIsStaff(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if !isStaff {
		return nil, apperr.Validationf("appointments can only be scheduled with medical staff")
	}

	e := &Encounter{
		ClientID:     req.ClientID,
		ProviderID:   providerID,
		ScheduledFor: scheduledFor,
		Status:       StatusScheduled,
		Reason:       req.Reason,
		Notes:        req.Notes,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.publish(ctx, messaging.EventEncounterScheduled, messaging.EncounterScheduledEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventEncounterScheduled),
		Data: messaging.EncounterScheduledData{
			EncounterID:  e.ID,
			ClientID:     e.ClientID,
			ProviderID:   e.ProviderID,
			ScheduledFor: e.ScheduledFor,
		},
	})
	return e, nil
}

// List returns encounters visible to the principal.
func (s *Service) List(ctx context.Context, pr *auth.Principal) ([]Encounter, error) {
	encounters, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return visibility.Filter(visibility.KindEncounter, encounters, pr), nil
}

// Get fetches a single encounter
func (s *Service) Get(ctx context.Context, id string) (*Encounter, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus transitions an encounter. Medical staff only.
func (s *Service) UpdateStatus(ctx context.Context, pr *auth.Principal, id string, req *UpdateStatusRequest) (*Encounter, error) {
	if !pr.IsStaff() {
		return nil, apperr.PermissionDenied("only medical staff can update encounters")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, messaging.EventEncounterStatusChanged, messaging.EncounterStatusChangedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventEncounterStatusChanged),
		Data: messaging.EncounterStatusChangedData{
			EncounterID: id,
			OldStatus:   current.Status,
			NewStatus:   updated.Status,
			ChangedAt:   time.Now().UTC(),
		},
	})
	return updated, nil
}

// Delete removes an encounter. Medical staff only.
func (s *Service) Delete(ctx context.Context, pr *auth.Principal, id string) error {
	if !pr.IsStaff() {
		return apperr.PermissionDenied("only medical staff can delete encounters")
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
