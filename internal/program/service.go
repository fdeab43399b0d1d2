package program

import (
	"context"
	"log"
	"time"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
	"github.com/AfyaLink-Health/health-records-service/internal/auth"
	"github.com/AfyaLink-Health/health-records-service/internal/messaging"
	"github.com/AfyaLink-Health/health-records-service/internal/visibility"
)

// Service handles program business logic
type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
}

// NewService creates a new program service
func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// Create adds a new program attributed to the acting user. Medical staff only.
func (s *Service) Create(ctx context.Context, pr *auth.Principal, req *CreateRequest) (*Program, error) {
	if !pr.IsStaff() {
		return nil, apperr.PermissionDenied("only medical staff can create programs")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := &Program{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   pr.UserID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.publish(ctx, messaging.EventProgramCreated, messaging.ProgramCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventProgramCreated),
		Data: messaging.ProgramCreatedData{
			ProgramID: p.ID,
			Name:      p.Name,
			CreatedBy: p.CreatedBy,
			CreatedAt: p.CreatedAt,
		},
	})
	return p, nil
}

// List returns programs visible to the principal with enrollment counts.
func (s *Service) List(ctx context.Context, pr *auth.Principal) ([]Program, error) {
	programs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return visibility.Filter(visibility.KindProgram, programs, pr), nil
}

// Get fetches a single program
func (s *Service) Get(ctx context.Context, id string) (*Program, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes a program and its enrollments. Doctors only.
func (s *Service) Delete(ctx context.Context, pr *auth.Principal, id string) error {
	if !pr.IsDoctor {
		return apperr.PermissionDenied("only doctors can delete programs")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, messaging.EventProgramDeleted, messaging.RecordDeletedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventProgramDeleted),
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
