package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"physio-backend/internal/config"
	"physio-backend/internal/models"
	"physio-backend/internal/repositories"
)

const maxEventNameLen = 100

// AnalyticsService accepts site events, keeps a local audit copy, and
// forwards them to the external collector. Forwarding is fire-and-
// forget: a collector outage must never surface to the visitor.
type AnalyticsService struct {
	repo   *repositories.AnalyticsEventRepository
	cfg    config.AnalyticsConfig
	client *http.Client
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo *repositories.AnalyticsEventRepository, cfg config.AnalyticsConfig) *AnalyticsService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AnalyticsService{
		repo:   repo,
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Track validates and records an event, then forwards it in the
// background.
func (s *AnalyticsService) Track(ctx context.Context, req models.TrackEventRequest, clientIP string) (*models.AnalyticsEvent, error) {
	name := strings.TrimSpace(req.EventName)
	if name == "" {
		return nil, fmt.Errorf("event name is required")
	}
	if len(name) > maxEventNameLen {
		return nil, fmt.Errorf("event name exceeds %d characters", maxEventNameLen)
	}

	event := &models.AnalyticsEvent{
		EventName: name,
		PagePath:  strings.TrimSpace(req.PagePath),
		Params:    req.Params,
		ClientIP:  clientIP,
	}

	if s.repo != nil {
		if err := s.repo.Create(ctx, event); err != nil {
			return nil, fmt.Errorf("store analytics event: %w", err)
		}
	}

	go s.forward(event)
	return event, nil
}

// Summary is the event-volume snapshot served on the admin endpoint.
type Summary struct {
	EventsLastDay  int64 `json:"events_last_day"`
	EventsLastWeek int64 `json:"events_last_week"`
}

// Summarize reports recent event volumes from the local audit copy.
func (s *AnalyticsService) Summarize(ctx context.Context) (*Summary, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("analytics storage is not configured")
	}

	day, err := s.repo.CountSince(ctx, "24 hours")
	if err != nil {
		return nil, fmt.Errorf("count events (24h): %w", err)
	}
	week, err := s.repo.CountSince(ctx, "7 days")
	if err != nil {
		return nil, fmt.Errorf("count events (7d): %w", err)
	}

	return &Summary{EventsLastDay: day, EventsLastWeek: week}, nil
}

// forward delivers the event to the external collector. Failures are
// logged and otherwise swallowed.
func (s *AnalyticsService) forward(event *models.AnalyticsEvent) {
	if !s.cfg.Enabled || s.cfg.CollectorURL == "" {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("analytics: failed to marshal event %d: %v", event.ID, err)
		return
	}

	resp, err := s.client.Post(s.cfg.CollectorURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Printf("analytics: failed to forward event %d: %v", event.ID, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("analytics: collector returned %d for event %d", resp.StatusCode, event.ID)
		return
	}

	if s.repo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.repo.MarkForwarded(ctx, event.ID); err != nil {
			log.Printf("analytics: failed to mark event %d forwarded: %v", event.ID, err)
		}
	}
}
