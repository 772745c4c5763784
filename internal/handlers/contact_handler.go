package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"physio-backend/internal/middleware"
	"physio-backend/internal/models"
	"physio-backend/internal/services"
)

// ContactHandler handles the contact/appointment form.
type ContactHandler struct {
	Service *services.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{Service: service}
}

// Submit stores a contact form submission.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	request, err := h.Service.Submit(r.Context(), req, middleware.ClientIP(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(request)
}

// ListRecent returns recent submissions (admin only).
func (h *ContactHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	requests, err := h.Service.ListRecent(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if requests == nil {
		requests = []models.ContactRequest{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requests)
}
