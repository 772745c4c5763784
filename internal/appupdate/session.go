package appupdate

import "time"

// Session is a snapshot of one page load's update state.
// It lives for the lifetime of the page load and is destroyed when the
// page navigates away or reloads.
type Session struct {
	OfflineReady    bool      `json:"offline_ready"`
	UpdateAvailable bool      `json:"update_available"`
	SuppressedUntil time.Time `json:"suppressed_until,omitempty"`
	Accepted        bool      `json:"accepted"`
}

// Suppressed reports whether the prompt is suppressed at the given time.
func (s Session) Suppressed(now time.Time) bool {
	if s.SuppressedUntil.IsZero() {
		return false
	}
	return now.Before(s.SuppressedUntil)
}

// ShouldShowPrompt reports whether the update prompt should be visible
// at the given time. Recomputed fresh on every call, never cached.
func (s Session) ShouldShowPrompt(now time.Time) bool {
	if s.Accepted {
		return false
	}
	return s.UpdateAvailable && !s.Suppressed(now)
}
