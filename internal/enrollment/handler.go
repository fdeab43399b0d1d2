package enrollment

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
	"github.com/AfyaLink-Health/health-records-service/internal/auth"
)

// MetricsRecorder records enrollment business metrics
type MetricsRecorder interface {
	RecordEnrollmentOperation(ctx context.Context, operation string)
}

type Handler struct {
	service ServiceInterface
	metrics MetricsRecorder
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithMetrics(service ServiceInterface, metrics MetricsRecorder) *Handler {
	return &Handler{service: service, metrics: metrics}
}

type ListResponse struct {
	Success     bool         `json:"success"`
	Enrollments []Enrollment `json:"enrollments"`
	Total       int          `json:"total"`
}

// Create handles POST /api/enrollments
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	e, err := h.service.Enroll(r.Context(), principal, &req)
	if err != nil {
		respondAppError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordEnrollmentOperation(r.Context(), "create")
	}
	respondJSON(w, http.StatusCreated, e)
}

// List handles GET /api/enrollments
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	enrollments, err := h.service.List(r.Context(), principal)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ListResponse{Success: true, Enrollments: enrollments, Total: len(enrollments)})
}

// Get handles GET /api/enrollments/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, e)
}

// Deactivate handles POST /api/enrollments/{id}/deactivate
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	if err := h.service.Deactivate(r.Context(), principal, mux.Vars(r)["id"]); err != nil {
		respondAppError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordEnrollmentOperation(r.Context(), "deactivate")
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Enrollment deactivated successfully",
	})
}

// Delete handles DELETE /api/enrollments/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	if err := h.service.Delete(r.Context(), principal, mux.Vars(r)["id"]); err != nil {
		respondAppError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordEnrollmentOperation(r.Context(), "delete")
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Enrollment deleted successfully",
	})
}

func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}

func respondAppError(w http.ResponseWriter, err error) {
	respondError(w, apperr.HTTPStatus(err), apperr.Code(err), err.Error())
}
