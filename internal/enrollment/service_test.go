package enrollment

import (
	"context"
	"testing"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
	"github.com/AfyaLink-Health/health-records-service/internal/auth"
)

type mockRepository struct {
	createFunc       func(ctx context.Context, e *Enrollment) error
	listFunc         func(ctx context.Context) ([]Enrollment, error)
	getByIDFunc      func(ctx context.Context, id string) (*Enrollment, error)
	existsFunc       func(ctx context.Context, clientID, programID string) (bool, error)
	clientExistsFunc func(ctx context.Context, clientID string) (bool, error)
	programNameFunc  func(ctx context.Context, programID string) (string, error)
	deactivateFunc   func(ctx context.Context, id string) error
	deleteFunc       func(ctx context.Context, id string) error
}

func (m *mockRepository) Create(ctx context.Context, e *Enrollment) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, e)
	}
	e.ID = "enrollment-1"
	e.IsActive = true
	return nil
}

func (m *mockRepository) List(ctx context.Context) ([]Enrollment, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []Enrollment{}, nil
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*Enrollment, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &Enrollment{ID: id}, nil
}

func (m *mockRepository) Exists(ctx context.Context, clientID, programID string) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, clientID, programID)
	}
	return false, nil
}

func (m *mockRepository) ClientExists(ctx context.Context, clientID string) (bool, error) {
	if m.clientExistsFunc != nil {
		return m.clientExistsFunc(ctx, clientID)
	}
	return true, nil
}

func (m *mockRepository) ProgramName(ctx context.Context, programID string) (string, error) {
	if m.programNameFunc != nil {
		return m.programNameFunc(ctx, programID)
	}
	return "TB Care", nil
}

func (m *mockRepository) Deactivate(ctx context.Context, id string) error {
	if m.deactivateFunc != nil {
		return m.deactivateFunc(ctx, id)
	}
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func nurse() *auth.Principal {
	return &auth.Principal{UserID: "nurse-1", IsNurse: true}
}

func nonStaff() *auth.Principal {
	return &auth.Principal{UserID: "user-1"}
}

func validRequest() *CreateRequest {
	return &CreateRequest{ClientID: "client-1", ProgramID: "program-1"}
}

func TestEnrollRequiresStaff(t *testing.T) {
	svc := NewService(&mockRepository{}, nil)

	_, err := svc.Enroll(context.Background(), nonStaff(), validRequest())
	if apperr.KindOf(err) != apperr.KindPermissionDenied {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestEnrollValidation(t *testing.T) {
	svc := NewService(&mockRepository{}, nil)

	_, err := svc.Enroll(context.Background(), nurse(), &CreateRequest{ProgramID: "p"})
	if err == nil || err.Error() != "client_id is required" {
		t.Errorf("expected client_id error, got %v", err)
	}

	_, err = svc.Enroll(context.Background(), nurse(), &CreateRequest{ClientID: "c"})
	if err == nil || err.Error() != "program_id is required" {
		t.Errorf("expected program_id error, got %v", err)
	}
}

func TestEnrollUnknownClient(t *testing.T) {
	repo := &mockRepository{
		clientExistsFunc: func(ctx context.Context, clientID string) (bool, error) { return false, nil },
	}
	svc := NewService(repo, nil)

	_, err := svc.Enroll(context.Background(), nurse(), validRequest())
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEnrollUnknownProgram(t *testing.T) {
	repo := &mockRepository{
		programNameFunc: func(ctx context.Context, programID string) (string, error) {
			return "", apperr.NotFoundf("program not found")
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.Enroll(context.Background(), nurse(), validRequest())
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEnrollDuplicateConflicts(t *testing.T) {
	repo := &mockRepository{
		existsFunc: func(ctx context.Context, clientID, programID string) (bool, error) { return true, nil },
	}
	svc := NewService(repo, nil)

	_, err := svc.Enroll(context.Background(), nurse(), validRequest())
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err.Error() != "client is already enrolled in this program" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestEnrollRaceMapsToSameConflict(t *testing.T) {
	// Pre-check passes but the storage constraint fires.
	repo := &mockRepository{
		createFunc: func(ctx context.Context, e *Enrollment) error {
			return apperr.Conflict("client is already enrolled in this program")
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.Enroll(context.Background(), nurse(), validRequest())
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestEnrollSuccess(t *testing.T) {
	svc := NewService(&mockRepository{}, nil)

	e, err := svc.Enroll(context.Background(), nurse(), validRequest())
	if err != nil {
		t.Fatalf("Enroll returned error: %v", err)
	}
	if e.EnrolledBy != "nurse-1" {
		t.Errorf("expected enrolled_by nurse-1, got %s", e.EnrolledBy)
	}
	if !e.IsActive {
		t.Error("expected new enrollment to be active")
	}
	if e.ProgramName != "TB Care" {
		t.Errorf("expected program name TB Care, got %s", e.ProgramName)
	}
}

func TestListFiltersForNonStaff(t *testing.T) {
	repo := &mockRepository{
		listFunc: func(ctx context.Context) ([]Enrollment, error) {
			return []Enrollment{
				{ID: "e1", EnrolledBy: "user-1"},
				{ID: "e2", EnrolledBy: "nurse-1"},
			}, nil
		},
	}
	svc := NewService(repo, nil)

	enrollments, err := svc.List(context.Background(), nonStaff())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(enrollments) != 1 || enrollments[0].ID != "e1" {
		t.Errorf("expected only own enrollment, got %v", enrollments)
	}

	enrollments, err = svc.List(context.Background(), nurse())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(enrollments) != 2 {
		t.Errorf("expected staff to see all enrollments, got %d", len(enrollments))
	}
}

func TestDeactivateAndDeleteRequireStaff(t *testing.T) {
	svc := NewService(&mockRepository{}, nil)

	if err := svc.Deactivate(context.Background(), nonStaff(), "e1"); apperr.KindOf(err) != apperr.KindPermissionDenied {
		t.Errorf("expected permission denied on deactivate, got %v", err)
	}
	if err := svc.Delete(context.Background(), nonStaff(), "e1"); apperr.KindOf(err) != apperr.KindPermissionDenied {
		t.Errorf("expected permission denied on delete, got %v", err)
	}

	if err := svc.Deactivate(context.Background(), nurse(), "e1"); err != nil {
		t.Errorf("expected staff deactivate to succeed, got %v", err)
	}
	if err := svc.Delete(context.Background(), nurse(), "e1"); err != nil {
		t.Errorf("expected staff delete to succeed, got %v", err)
	}
}
