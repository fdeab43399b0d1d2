package metric

import (
	"context"
	"testing"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
	"github.com/AfyaLink-Health/health-records-service/internal/auth"
)

type mockRepository struct {
	createFunc       func(ctx context.Context, m *Metric) error
	listFunc         func(ctx context.Context) ([]Metric, error)
	getByIDFunc      func(ctx context.Context, id string) (*Metric, error)
	deleteFunc       func(ctx context.Context, id string) error
	clientExistsFunc func(ctx context.Context, clientID string) (bool, error)
}

func (m *mockRepository) Create(ctx context.Context, rec *Metric) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, rec)
	}
	rec.ID = "metric-1"
	return nil
}

func (m *mockRepository) List(ctx context.Context) ([]Metric, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []Metric{}, nil
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*Metric, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &Metric{ID: id}, nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockRepository) ClientExists(ctx context.Context, clientID string) (bool, error) {
	if m.clientExistsFunc != nil {
		return m.clientExistsFunc(ctx, clientID)
	}
	return true, nil
}

func nurse() *auth.Principal {
	return &auth.Principal{UserID: "nurse-1", IsNurse: true}
}

func nonStaff() *auth.Principal {
	return &auth.Principal{UserID: "user-1"}
}

func TestCoerceValuePlainNumber(t *testing.T) {
	value, unit, err := CoerceValue(float64(98.6), "F")
	if err != nil {
		t.Fatalf("CoerceValue returned error: %v", err)
	}
	if value != 98.6 || unit != "F" {
		t.Errorf("got value=%v unit=%q", value, unit)
	}
}

func TestCoerceValueNumericString(t *testing.T) {
	value, unit, err := CoerceValue("72", "bpm")
	if err != nil {
		t.Fatalf("CoerceValue returned error: %v", err)
	}
	if value != 72 || unit != "bpm" {
		t.Errorf("got value=%v unit=%q", value, unit)
	}
}

func TestCoerceValueBloodPressure(t *testing.T) {
	value, unit, err := CoerceValue("120/80", "mmHg")
	if err != nil {
		t.Fatalf("CoerceValue returned error: %v", err)
	}
	if value != 120 {
		t.Errorf("expected systolic 120 as value, got %v", value)
	}
	if unit != "mmHg (systolic/diastolic: 120/80)" {
		t.Errorf("unexpected unit annotation: %q", unit)
	}
}

func TestCoerceValueBadBloodPressure(t *testing.T) {
	_, _, err := CoerceValue("abc/80", "mmHg")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "invalid blood pressure value format" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestCoerceValueNonNumeric(t *testing.T) {
	for _, raw := range []interface{}{"high", true, []interface{}{1}} {
		_, _, err := CoerceValue(raw, "u")
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Fatalf("CoerceValue(%v): expected validation error, got %v", raw, err)
		}
		if err.Error() != "value must be a number" {
			t.Errorf("CoerceValue(%v): unexpected message %q", raw, err.Error())
		}
	}
}

func TestRecordRequiresStaff(t *testing.T) {
	svc := NewService(&mockRepository{}, nil)

	_, err := svc.Record(context.Background(), nonStaff(), &CreateRequest{
		ClientID: "c1", Name: "weight", Value: float64(70), Unit: "kg",
	})
	if apperr.KindOf(err) != apperr.KindPermissionDenied {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestRecordValidation(t *testing.T) {
	svc := NewService(&mockRepository{}, nil)

	tests := []struct {
		name    string
		req     *CreateRequest
		message string
	}{
		{"missing client", &CreateRequest{Name: "weight", Value: float64(70), Unit: "kg"}, "client_id is required"},
		{"missing name", &CreateRequest{ClientID: "c1", Value: float64(70), Unit: "kg"}, "name is required"},
		{"missing value", &CreateRequest{ClientID: "c1", Name: "weight", Unit: "kg"}, "value is required"},
		{"missing unit", &CreateRequest{ClientID: "c1", Name: "weight", Value: float64(70)}, "unit is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), nurse(), tt.req)
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if err.Error() != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, err.Error())
			}
		})
	}
}

func TestRecordStoresCoercedBloodPressure(t *testing.T) {
	var stored *Metric
	repo := &mockRepository{
		createFunc: func(ctx context.Context, m *Metric) error {
			stored = m
			return nil
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.Record(context.Background(), nurse(), &CreateRequest{
		ClientID: "c1", Name: "blood_pressure", Value: "130/85", Unit: "mmHg",
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if stored.Value != 130 {
		t.Errorf("expected stored value 130, got %v", stored.Value)
	}
	if stored.Unit != "mmHg (systolic/diastolic: 130/85)" {
		t.Errorf("unexpected stored unit: %q", stored.Unit)
	}
	if stored.RecordedBy != "nurse-1" {
		t.Errorf("expected recorded_by nurse-1, got %s", stored.RecordedBy)
	}
}

func TestRecordUnknownClient(t *testing.T) {
	repo := &mockRepository{
		clientExistsFunc: func(ctx context.Context, clientID string) (bool, error) { return false, nil },
	}
	svc := NewService(repo, nil)

	_, err := svc.Record(context.Background(), nurse(), &CreateRequest{
		ClientID: "ghost", Name: "weight", Value: float64(70), Unit: "kg",
	})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListFiltersForNonStaff(t *testing.T) {
	repo := &mockRepository{
		listFunc: func(ctx context.Context) ([]Metric, error) {
			return []Metric{
				{ID: "m1", RecordedBy: "user-1"},
				{ID: "m2", RecordedBy: "nurse-1"},
			}, nil
		},
	}
	svc := NewService(repo, nil)

	metrics, err := svc.List(context.Background(), nonStaff())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(metrics) != 1 || metrics[0].ID != "m1" {
		t.Errorf("expected only own metric, got %v", metrics)
	}
}

func TestDeleteRequiresStaff(t *testing.T) {
	svc := NewService(&mockRepository{}, nil)

	if err := svc.Delete(context.Background(), nonStaff(), "m1"); apperr.KindOf(err) != apperr.KindPermissionDenied {
		t.Errorf("expected permission denied, got %v", err)
	}
	if err := svc.Delete(context.Background(), nurse(), "m1"); err != nil {
		t.Errorf("expected staff delete to succeed, got %v", err)
	}
}
