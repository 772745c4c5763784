package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"physio-backend/internal/appupdate"
)

type capturedCommands struct {
	mu   sync.Mutex
	cmds []appupdate.Command
}

func (c *capturedCommands) Send(sessionID string, cmd appupdate.Command) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cmds = append(c.cmds, cmd)
}

func (c *capturedCommands) all() []appupdate.Command {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]appupdate.Command(nil), c.cmds...)
}

func newUpdateHandler() (*AppUpdateHandler, *capturedCommands) {
	sender := &capturedCommands{}
	registry := appupdate.NewRegistry(appupdate.Config{}, sender, time.Hour)
	return NewAppUpdateHandler(registry, nil), sender
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func getStatus(t *testing.T, h *AppUpdateHandler, sessionID string) string {
	t.Helper()
	req := httptest.NewRequest("GET", "/api/app-update/status?session_id="+sessionID, nil)
	rec := httptest.NewRecorder()
	h.GetStatus(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestEventThenStatusShowsPrompt(t *testing.T) {
	h, _ := newUpdateHandler()

	rec := postJSON(t, h.HandleEvent, `{"session_id":"s1","kind":"registered","script_url":"/sw.js"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, getStatus(t, h, "s1"), `"should_show_prompt":false`)

	rec = postJSON(t, h.HandleEvent, `{"session_id":"s1","kind":"need-refresh"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, getStatus(t, h, "s1"), `"should_show_prompt":true`)
}

func TestOfflineReadyStatus(t *testing.T) {
	h, _ := newUpdateHandler()

	postJSON(t, h.HandleEvent, `{"session_id":"s1","kind":"offline-ready"}`)

	body := getStatus(t, h, "s1")
	assert.Contains(t, body, `"offline_ready":true`)
	assert.Contains(t, body, `"should_show_prompt":false`)
}

func TestDismissHidesPrompt(t *testing.T) {
	h, _ := newUpdateHandler()

	postJSON(t, h.HandleEvent, `{"session_id":"s1","kind":"need-refresh"}`)
	rec := postJSON(t, h.Dismiss, `{"session_id":"s1"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	assert.Contains(t, getStatus(t, h, "s1"), `"should_show_prompt":false`)

	// A repeat notification during the window stays hidden
	postJSON(t, h.HandleEvent, `{"session_id":"s1","kind":"need-refresh"}`)
	assert.Contains(t, getStatus(t, h, "s1"), `"should_show_prompt":false`)
}

func TestAcceptSendsActivateAndReload(t *testing.T) {
	h, sender := newUpdateHandler()

	postJSON(t, h.HandleEvent, `{"session_id":"s1","kind":"need-refresh"}`)

	rec := postJSON(t, h.Accept, `{"session_id":"s1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"accepted":true`)

	// The reload command is scheduled with a real 100ms timer here.
	require.Eventually(t, func() bool { return len(sender.all()) == 2 },
		time.Second, 10*time.Millisecond)

	cmds := sender.all()
	assert.Equal(t, appupdate.Command{Name: "activate", TakeControl: true}, cmds[0])
	assert.Equal(t, appupdate.Command{Name: "reload"}, cmds[1])

	// Second accept is a no-op
	rec = postJSON(t, h.Accept, `{"session_id":"s1"}`)
	assert.Contains(t, rec.Body.String(), `"accepted":false`)
	assert.Len(t, sender.all(), 2)
}

func TestEventValidation(t *testing.T) {
	h, _ := newUpdateHandler()

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing session", `{"kind":"need-refresh"}`},
		{"unknown kind", `{"session_id":"s1","kind":"activated"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h.HandleEvent, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGoodbyeDropsSession(t *testing.T) {
	h, _ := newUpdateHandler()

	postJSON(t, h.HandleEvent, `{"session_id":"s1","kind":"need-refresh"}`)
	postJSON(t, h.Dismiss, `{"session_id":"s1"}`)

	rec := postJSON(t, h.Goodbye, `{"session_id":"s1"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Fresh session after the goodbye: the suppression window is gone.
	postJSON(t, h.HandleEvent, `{"session_id":"s1","kind":"need-refresh"}`)
	assert.Contains(t, getStatus(t, h, "s1"), `"should_show_prompt":true`)
}
