package enrollment

import (
	"context"
	"log"
	"time"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
	"github.com/AfyaLink-Health/health-records-service/internal/auth"
	"github.com/AfyaLink-Health/health-records-service/internal/messaging"
	"github.com/AfyaLink-Health/health-records-service/internal/visibility"
)

// Service handles enrollment business logic
type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
}

// NewService creates a new enrollment service
func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// Enroll adds a client to a program. The pre-check gives a clean conflict
// message; the storage constraint catches concurrent submissions and maps
// to the same conflict.
func (s *Service) Enroll(ctx context.Context, pr *auth.Principal, req *CreateRequest) (*Enrollment, error) {
	if !pr.IsStaff() {
		return nil, apperr.PermissionDenied("only medical staff can enroll clients")
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

	programName, err := s.repo.ProgramName(ctx, req.ProgramID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.repo.Exists(ctx, req.ClientID, req.ProgramID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, apperr.Conflict("client is already enrolled in this program")
	}

	e := &Enrollment{
		ClientID:    req.ClientID,
		ProgramID:   req.ProgramID,
		ProgramName: programName,
		EnrolledBy:  pr.UserID,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.publish(ctx, messaging.EventEnrollmentCreated, messaging.EnrollmentCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventEnrollmentCreated),
		Data: messaging.EnrollmentCreatedData{
			EnrollmentID:   e.ID,
			ClientID:       e.ClientID,
			ProgramID:      e.ProgramID,
			ProgramName:    e.ProgramName,
			EnrolledBy:     e.EnrolledBy,
			EnrollmentDate: e.EnrollmentDate,
		},
	})
	return e, nil
}

// List returns enrollments visible to the principal.
func (s *Service) List(ctx context.Context, pr *auth.Principal) ([]Enrollment, error) {
	enrollments, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return visibility.Filter(visibility.KindEnrollment, enrollments, pr), nil
}

// Get fetches a single enrollment
func (s *Service) Get(ctx context.Context, id string) (*Enrollment, error) {
	return s.repo.GetByID(ctx, id)
}

// Deactivate marks an enrollment completed. Medical staff only.
func (s *Service) Deactivate(ctx context.Context, pr *auth.Principal, id string) error {
	if !pr.IsStaff() {
		return apperr.PermissionDenied("only medical staff can deactivate enrollments")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, messaging.EventEnrollmentDeactivated, messaging.EnrollmentDeactivatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventEnrollmentDeactivated),
		Data: messaging.EnrollmentDeactivatedData{
			EnrollmentID:  id,
			DeactivatedBy: pr.UserID,
			DeactivatedAt: time.Now().UTC(),
		},
	})
	return nil
}

// Delete removes an enrollment. Medical staff only.
func (s *Service) Delete(ctx context.Context, pr *auth.Principal, id string) error {
	if !pr.IsStaff() {
		return apperr.PermissionDenied("only medical staff can delete enrollments")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, messaging.EventEnrollmentDeleted, messaging.RecordDeletedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventEnrollmentDeleted),
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
