package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"physio-backend/internal/config"
	"physio-backend/internal/models"
)

func TestTrackValidation(t *testing.T) {
	svc := NewAnalyticsService(nil, config.AnalyticsConfig{})

	cases := []struct {
		name string
		req  models.TrackEventRequest
	}{
		{"empty name", models.TrackEventRequest{}},
		{"blank name", models.TrackEventRequest{EventName: "   "}},
		{"name too long", models.TrackEventRequest{EventName: strings.Repeat("x", 101)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Track(context.Background(), tc.req, "1.2.3.4")
			assert.Error(t, err)
		})
	}
}

func TestTrackForwardsToCollector(t *testing.T) {
	var received atomic.Int32
	var lastBody atomic.Value

	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		lastBody.Store(string(body))
		received.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer collector.Close()

	svc := NewAnalyticsService(nil, config.AnalyticsConfig{
		Enabled:      true,
		CollectorURL: collector.URL,
	})

	event, err := svc.Track(context.Background(), models.TrackEventRequest{
		EventName: "page_view",
		PagePath:  "/",
		Params:    json.RawMessage(`{"ref":"search"}`),
	}, "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, "page_view", event.EventName)

	require.Eventually(t, func() bool { return received.Load() == 1 },
		time.Second, 10*time.Millisecond)
	assert.Contains(t, lastBody.Load().(string), `"page_view"`)
}

func TestTrackDisabledForwardingStillAccepts(t *testing.T) {
	svc := NewAnalyticsService(nil, config.AnalyticsConfig{Enabled: false})

	event, err := svc.Track(context.Background(), models.TrackEventRequest{EventName: "cta_click"}, "")
	require.NoError(t, err)
	assert.Equal(t, "cta_click", event.EventName)
}

func TestSummarizeWithoutStorage(t *testing.T) {
	svc := NewAnalyticsService(nil, config.AnalyticsConfig{})

	_, err := svc.Summarize(context.Background())
	assert.Error(t, err)
}

func TestForwardCollectorFailureIsSwallowed(t *testing.T) {
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer collector.Close()

	svc := NewAnalyticsService(nil, config.AnalyticsConfig{
		Enabled:      true,
		CollectorURL: collector.URL,
	})

	// Must not panic or error; the failure only shows up in the log.
	svc.forward(&models.AnalyticsEvent{ID: 7, EventName: "page_view"})
}
