package models

import (
	"encoding/json"
	"time"
)

// AnalyticsEvent is one event reported by the site before forwarding
// to the external collector. The params payload is opaque to us.
type AnalyticsEvent struct {
	ID        int64           `json:"id"`
	EventName string          `json:"event_name"`
	PagePath  string          `json:"page_path,omitempty"`
	Params    json.RawMessage `json:"params,omitempty"`
	ClientIP  string          `json:"-"`
	Forwarded bool            `json:"forwarded"`
	CreatedAt time.Time       `json:"created_at"`
}

// TrackEventRequest is the request body for reporting an event.
type TrackEventRequest struct {
	EventName string          `json:"event_name"`
	PagePath  string          `json:"page_path,omitempty"`
	Params    json.RawMessage `json:"params,omitempty"`
}
