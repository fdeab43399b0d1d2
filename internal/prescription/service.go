package prescription

import (
	"context"
	"log"
	"time"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
	"github.com/AfyaLink-Health/health-records-service/internal/auth"
	"github.com/AfyaLink-Health/health-records-service/internal/messaging"
	"github.com/AfyaLink-Health/health-records-service/internal/visibility"
)

// Service handles prescription business logic
type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
}

// NewService creates a new prescription service
func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// Create adds a medication order. Doctors only.
func (s *Service) Create(ctx context.Context, pr *auth.Principal, req *CreateRequest) (*Prescription, error) {
	if !pr.IsDoctor {
		return nil, apperr.PermissionDenied("only doctors can create prescriptions")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ClientExists(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFoundf("client not found")
	}

	p := &Prescription{
		ClientID:       req.ClientID,
		MedicationName: req.MedicationName,
		Dosage:         req.Dosage,
		Frequency:      req.Frequency,
		Duration:       req.Duration,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Notes:          req.Notes,
		PrescribedBy:   pr.UserID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.publish(ctx, messaging.EventPrescriptionCreated, messaging.PrescriptionCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPrescriptionCreated),
		Data: messaging.PrescriptionCreatedData{
			PrescriptionID: p.ID,
			ClientID:       p.ClientID,
			MedicationName: p.MedicationName,
			PrescribedBy:   p.PrescribedBy,
			StartDate:      p.StartDate,
		},
	})
	return p, nil
}

// List returns prescriptions visible to the principal.
func (s *Service) List(ctx context.Context, pr *auth.Principal) ([]Prescription, error) {
	prescriptions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return visibility.Filter(visibility.KindPrescription, prescriptions, pr), nil
}

// Get fetches a single prescription
func (s *Service) Get(ctx context.Context, id string) (*Prescription, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial update. Doctors only.
func (s *Service) Update(ctx context.Context, pr *auth.Principal, id string, req *UpdateRequest) (*Prescription, error) {
	if !pr.IsDoctor {
		return nil, apperr.PermissionDenied("only doctors can update prescriptions")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req)
}

// Delete removes a prescription. Doctors only.
func (s *Service) Delete(ctx context.Context, pr *auth.Principal, id string) error {
	if !pr.IsDoctor {
		return apperr.PermissionDenied("only doctors can delete prescriptions")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, messaging.EventPrescriptionDeleted, messaging.RecordDeletedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPrescriptionDeleted),
		Data: messaging.RecordDeletedData{
			RecordID:  id,
			DeletedBy: pr.UserID,
			DeletedAt: time.Now().UTC(),
		},
	})
	return nil
}

func (s *Service) publish(ctx context.Context, routingKey string, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
