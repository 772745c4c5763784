package handlers

import (
	"encoding/json"
	"net/http"

	"physio-backend/internal/health"
	"physio-backend/internal/monitoring"
	"physio-backend/internal/services"
)

// AdminHandler covers admin login, health, and system monitoring.
type AdminHandler struct {
	Auth    *services.AuthService
	Checker *health.HealthChecker
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(auth *services.AuthService, checker *health.HealthChecker) *AdminHandler {
	return &AdminHandler{Auth: auth, Checker: checker}
}

// Login exchanges the admin password for a bearer token.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.Auth.Login(req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// Health serves the public health check.
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.Checker.Check()

	w.Header().Set("Content-Type", "application/json")
	if status.Status != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(status)
}

// SystemStats serves host metrics (admin only).
func (h *AdminHandler) SystemStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(monitoring.CollectSystemStats())
}
