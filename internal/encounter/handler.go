package encounter

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
	"github.com/AfyaLink-Health/health-records-service/internal/auth"
)

// MetricsRecorder records encounter business metrics
type MetricsRecorder interface {
	RecordEncounterOperation(ctx context.Context, operation string)
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
	Success    bool        `json:"success"`
	Encounters []Encounter `json:"encounters"`
	Total      int         `json:"total"`
}

// Create handles POST /api/encounters
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

	e, err := h.service.Schedule(r.Context(), principal, &req)
	if err != nil {
		respondAppError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordEncounterOperation(r.Context(), "schedule")
	}
	respondJSON(w, http.StatusCreated, e)
}

// List handles GET /api/encounters
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	encounters, err := h.service.List(r.Context(), principal)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ListResponse{Success: true, Encounters: encounters, Total: len(encounters)})
}

// Get handles GET /api/encounters/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, e)
}

// UpdateStatus handles PATCH /api/encounters/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	e, err := h.service.UpdateStatus(r.Context(), principal, mux.Vars(r)["id"], &req)
	if err != nil {
		respondAppError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordEncounterOperation(r.Context(), "status_change")
	}
	respondJSON(w, http.StatusOK, e)
}

// Delete handles DELETE /api/encounters/{id}
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
		h.metrics.RecordEncounterOperation(r.Context(), "delete")
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Encounter deleted successfully",
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
