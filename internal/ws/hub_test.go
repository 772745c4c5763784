package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"physio-backend/internal/appupdate"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub()
	server := httptest.NewServer(http.HandlerFunc(hub.HandleConnection))
	t.Cleanup(server.Close)
	return hub, server
}

func dialSession(t *testing.T, server *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/?session_id=" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForConns(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Len() == n },
		time.Second, 10*time.Millisecond)
}

func TestHubSendReachesSession(t *testing.T) {
	hub, server := startHub(t)
	conn := dialSession(t, server, "tab-1")
	waitForConns(t, hub, 1)

	hub.Send("tab-1", appupdate.Command{Name: "activate", TakeControl: true})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var cmd appupdate.Command
	require.NoError(t, conn.ReadJSON(&cmd))
	assert.Equal(t, appupdate.Command{Name: "activate", TakeControl: true}, cmd)
}

func TestHubSendUnknownSessionIsDropped(t *testing.T) {
	hub, _ := startHub(t)

	// Must not panic or block
	hub.Send("nobody", appupdate.Command{Name: "reload"})
}

func TestHubRequiresSessionID(t *testing.T) {
	_, server := startHub(t)

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHubNotifyReleaseBroadcasts(t *testing.T) {
	hub, server := startHub(t)
	conn1 := dialSession(t, server, "tab-1")
	conn2 := dialSession(t, server, "tab-2")
	waitForConns(t, hub, 2)

	hub.NotifyRelease("2.0.0")

	for _, conn := range []*websocket.Conn{conn1, conn2} {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		var msg struct {
			Command string `json:"command"`
			Version string `json:"version"`
		}
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, "check-update", msg.Command)
		assert.Equal(t, "2.0.0", msg.Version)
	}
}

func TestHubDisconnectRemovesConnection(t *testing.T) {
	hub, server := startHub(t)
	conn := dialSession(t, server, "tab-1")
	waitForConns(t, hub, 1)

	conn.Close()
	waitForConns(t, hub, 0)
}
