package client

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
	"github.com/AfyaLink-Health/health-records-service/internal/auth"
	"github.com/AfyaLink-Health/health-records-service/internal/pagination"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type ListResponse struct {
	Success    bool             `json:"success"`
	Clients    []Client         `json:"clients"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

// Register handles POST /api/clients/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	c, err := h.service.Register(r.Context(), principal, &req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

// List handles GET /api/clients
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r)
	clients, meta, err := h.service.List(r.Context(), params)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ListResponse{Success: true, Clients: clients, Pagination: meta})
}

// Search handles GET /api/clients/search?q=
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ListResponse{Success: true, Clients: clients})
}

// Get handles GET /api/clients/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// GetProfile handles GET /api/clients/{id}/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProfile(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// GetComprehensive handles GET /api/clients/{id}/comprehensive
func (h *Handler) GetComprehensive(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetComprehensive(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Delete handles DELETE /api/clients/{id}
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
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Client deleted successfully",
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
