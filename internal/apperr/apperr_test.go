package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf_Classified(t *testing.T) {
	if got := KindOf(Validationf("name is required")); got != KindValidation {
		t.Errorf("Expected KindValidation, got %v", got)
	}
	if got := KindOf(PermissionDenied("only doctors")); got != KindPermissionDenied {
		t.Errorf("Expected KindPermissionDenied, got %v", got)
	}
	if got := KindOf(NotFoundf("client not found")); got != KindNotFound {
		t.Errorf("Expected KindNotFound, got %v", got)
	}
	if got := KindOf(Conflict("already enrolled")); got != KindConflict {
		t.Errorf("Expected KindConflict, got %v", got)
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("enroll client: %w", Conflict("client is already enrolled in this program"))
	if got := KindOf(err); got != KindConflict {
		t.Errorf("Expected wrapped error to keep KindConflict, got %v", got)
	}
	if HTTPStatus(err) != http.StatusConflict {
		t.Errorf("Expected 409 for wrapped conflict, got %d", HTTPStatus(err))
	}
}

func TestKindOf_Unclassified(t *testing.T) {
	err := errors.New("pq: connection refused")
	if got := KindOf(err); got != KindInternal {
		t.Errorf("Expected KindInternal for plain error, got %v", got)
	}
	if HTTPStatus(err) != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", HTTPStatus(err))
	}
	if Code(err) != "server_error" {
		t.Errorf("Expected server_error, got %s", Code(err))
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validationf("value must be a number"), http.StatusBadRequest},
		{PermissionDenied("only medical staff can enroll clients"), http.StatusForbidden},
		{NotFoundf("program not found"), http.StatusNotFound},
		{Conflict("username already exists"), http.StatusConflict},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Errorf("HTTPStatus(%q) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestMessagePreserved(t *testing.T) {
	err := Validationf("missing required field: %s", "medication_name")
	if err.Error() != "missing required field: medication_name" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}
