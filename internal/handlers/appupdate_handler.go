package handlers

import (
	"encoding/json"
	"net/http"

	"physio-backend/internal/appupdate"
	"physio-backend/internal/monitoring"
)

// AppUpdateHandler is the HTTP surface of the update-prompt lifecycle.
// Each page load owns a session, identified by a client-generated id;
// the page reports its service worker's lifecycle notifications here
// and asks whether the update prompt should be visible.
type AppUpdateHandler struct {
	Registry *appupdate.Registry
	Metrics  *monitoring.Metrics
}

// NewAppUpdateHandler creates a new app update handler
func NewAppUpdateHandler(registry *appupdate.Registry, metrics *monitoring.Metrics) *AppUpdateHandler {
	return &AppUpdateHandler{Registry: registry, Metrics: metrics}
}

type updateEventRequest struct {
	SessionID string `json:"session_id"`
	Kind      string `json:"kind"`
	ScriptURL string `json:"script_url,omitempty"`
	Error     string `json:"error,omitempty"`
}

type updateActionRequest struct {
	SessionID string `json:"session_id"`
}

type updateStatusResponse struct {
	ShouldShowPrompt bool `json:"should_show_prompt"`
	OfflineReady     bool `json:"offline_ready"`
}

// HandleEvent ingests one service-worker lifecycle notification.
func (h *AppUpdateHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var req updateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	kind, err := appupdate.ParseKind(req.Kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, bridge := h.Registry.Acquire(req.SessionID)
	bridge.Handle(appupdate.Notification{
		Kind:      kind,
		ScriptURL: req.ScriptURL,
		Error:     req.Error,
	})
	if h.Metrics != nil {
		h.Metrics.CountNotification(kind.String())
	}

	w.WriteHeader(http.StatusAccepted)
}

// GetStatus reports the current surfacing decision for a session. The
// suppression window is evaluated fresh on every call, so a suppressed
// update becomes visible here as soon as the window elapses.
func (h *AppUpdateHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	controller, _ := h.Registry.Acquire(sessionID)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	json.NewEncoder(w).Encode(updateStatusResponse{
		ShouldShowPrompt: controller.ShouldShowPrompt(),
		OfflineReady:     controller.OfflineReady(),
	})
}

// Accept applies the visitor's decision to update now. The activation
// and reload commands go back over the session's websocket; the reply
// here only confirms receipt.
func (h *AppUpdateHandler) Accept(w http.ResponseWriter, r *http.Request) {
	controller, ok := h.sessionFromBody(w, r)
	if !ok {
		return
	}

	accepted := controller.Accept()
	if accepted && h.Metrics != nil {
		h.Metrics.CountAccept()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"accepted": accepted})
}

// Dismiss hides the prompt and starts the suppression window.
func (h *AppUpdateHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	controller, ok := h.sessionFromBody(w, r)
	if !ok {
		return
	}

	controller.Dismiss()
	if h.Metrics != nil {
		h.Metrics.CountDismiss()
	}

	w.WriteHeader(http.StatusNoContent)
}

// Goodbye is the page's unload beacon; it frees the session early
// instead of waiting for the registry janitor.
func (h *AppUpdateHandler) Goodbye(w http.ResponseWriter, r *http.Request) {
	var req updateActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	h.Registry.Drop(req.SessionID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AppUpdateHandler) sessionFromBody(w http.ResponseWriter, r *http.Request) (*appupdate.Controller, bool) {
	var req updateActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return nil, false
	}
	controller, _ := h.Registry.Acquire(req.SessionID)
	return controller, true
}
