package report

import (
	"encoding/json"
	"net/http"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Generate handles GET /api/reports?type=&start_date=&end_date=
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	reportType := q.Get("type")
	if reportType == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "type is required")
		return
	}

	result, err := h.service.Generate(r.Context(), reportType, q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ProgramMetrics handles GET /api/program-metrics
func (h *Handler) ProgramMetrics(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.ProgramMetrics(r.Context())
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"programs": summaries,
	})
}

// ResourceUtilization handles GET /api/resource-utilization
func (h *Handler) ResourceUtilization(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.ResourceUtilization(r.Context())
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
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
