package appupdate

import (
	"sync"
	"time"
)

// DefaultSessionTTL is how long an idle session is kept before the
// janitor drops it. A reload or navigation starts a fresh session with
// a fresh id, so stale entries only accumulate from abandoned tabs.
const DefaultSessionTTL = 1 * time.Hour

// Command is a directive pushed back to the page. Activation carries
// the immediate-takeover flag; reload carries nothing.
type Command struct {
	Name        string `json:"command"`
	TakeControl bool   `json:"take_control,omitempty"`
}

// CommandSender delivers a command to the page owning a session.
// Delivery is fire-and-forget; a closed tab just drops the command.
type CommandSender interface {
	Send(sessionID string, cmd Command)
}

// Registry holds one controller per live page load, keyed by the
// client-generated session id.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*registryEntry

	cfg    Config
	sender CommandSender
	ttl    time.Duration
	now    func() time.Time
}

type registryEntry struct {
	controller *Controller
	bridge     *Bridge
	lastSeen   time.Time
}

// NewRegistry creates a session registry and starts its cleanup
// goroutine.
func NewRegistry(cfg Config, sender CommandSender, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	r := &Registry{
		sessions: make(map[string]*registryEntry),
		cfg:      cfg,
		sender:   sender,
		ttl:      ttl,
		now:      time.Now,
	}
	go r.janitor()
	return r
}

// Acquire returns the controller and bridge for a session id, creating
// them on first use and refreshing the idle timer.
func (r *Registry) Acquire(sessionID string) (*Controller, *Bridge) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[sessionID]
	if !ok {
		controller := NewController(r.cfg, sessionActivator{id: sessionID, sender: r.sender}, sessionReloader{id: sessionID, sender: r.sender})
		entry = &registryEntry{
			controller: controller,
			bridge:     NewBridge(controller),
		}
		r.sessions[sessionID] = entry
	}
	entry.lastSeen = r.now()
	return entry.controller, entry.bridge
}

// Drop removes a session, typically on the page's unload beacon.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// janitor removes idle sessions periodically.
func (r *Registry) janitor() {
	ticker := time.NewTicker(r.ttl)
	defer ticker.Stop()

	for range ticker.C {
		r.sweep(r.now())
	}
}

func (r *Registry) sweep(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, entry := range r.sessions {
		if now.Sub(entry.lastSeen) >= r.ttl {
			delete(r.sessions, id)
		}
	}
}

// sessionActivator issues the activation command over the session's
// command channel.
type sessionActivator struct {
	id     string
	sender CommandSender
}

func (a sessionActivator) ActivateUpdate(takeControl bool) {
	if a.sender == nil {
		return
	}
	a.sender.Send(a.id, Command{Name: "activate", TakeControl: takeControl})
}

// sessionReloader issues the reload command over the session's command
// channel.
type sessionReloader struct {
	id     string
	sender CommandSender
}

func (rl sessionReloader) Reload() {
	if rl.sender == nil {
		return
	}
	rl.sender.Send(rl.id, Command{Name: "reload"})
}
