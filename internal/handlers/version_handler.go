package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"physio-backend/internal/services"
)

// VersionHandler exposes build/release information and the deploy hook.
type VersionHandler struct {
	Service *services.ReleaseService
}

// NewVersionHandler creates a new version handler
func NewVersionHandler(service *services.ReleaseService) *VersionHandler {
	return &VersionHandler{Service: service}
}

// GetVersion reports the running build and the latest announced
// release.
func (h *VersionHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	latest, deployedAt := h.Service.LatestVersion()

	resp := struct {
		Running    string `json:"running"`
		Latest     string `json:"latest"`
		DeployedAt string `json:"deployed_at,omitempty"`
	}{
		Running: h.Service.RunningVersion(),
		Latest:  latest,
	}
	if !deployedAt.IsZero() {
		resp.DeployedAt = deployedAt.UTC().Format(time.RFC3339)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// NotifyDeploy is called by the deploy pipeline after a release. Open
// tabs get nudged to re-check their service worker.
func (h *VersionHandler) NotifyDeploy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Version string `json:"version"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Version == "" {
		http.Error(w, "version is required", http.StatusBadRequest)
		return
	}

	announced := h.Service.AnnounceRelease(req.Version)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"announced": announced})
}
