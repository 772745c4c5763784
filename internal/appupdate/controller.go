package appupdate

import (
	"sync"
	"time"
)

const (
	// DefaultSuppressionWindow is how long the prompt stays hidden after
	// the user dismisses it.
	DefaultSuppressionWindow = 48 * time.Hour

	// DefaultReloadDelay is the pause between issuing the activation
	// command and triggering the page reload, giving the new worker time
	// to take control before the reload reads the new assets.
	DefaultReloadDelay = 100 * time.Millisecond
)

// Activator issues the "activate pending version now" command to the
// caching/registration mechanism. The call is fire-and-forget; the
// controller never observes its outcome.
type Activator interface {
	ActivateUpdate(takeControl bool)
}

// Reloader triggers a full page reload. Like activation it is
// fire-and-forget.
type Reloader interface {
	Reload()
}

// Config tunes the controller's timing policy. Zero values fall back
// to the defaults above.
type Config struct {
	SuppressionWindow time.Duration
	ReloadDelay       time.Duration
}

// Controller owns the update session for one page load and decides
// whether the update prompt should be visible. All mutations go through
// the controller; the Bridge may set the two boolean flags but never
// the suppression timestamp, so an inbound notification can never clear
// a user-initiated cooldown.
type Controller struct {
	mu      sync.Mutex
	session Session

	window      time.Duration
	reloadDelay time.Duration

	activator Activator
	reloader  Reloader

	// Injected for tests. Lazy timestamp comparison means no background
	// timer has to stay alive across the page lifetime.
	now   func() time.Time
	after func(time.Duration, func())
}

// NewController creates a controller in the Idle state.
func NewController(cfg Config, activator Activator, reloader Reloader) *Controller {
	window := cfg.SuppressionWindow
	if window <= 0 {
		window = DefaultSuppressionWindow
	}
	delay := cfg.ReloadDelay
	if delay <= 0 {
		delay = DefaultReloadDelay
	}
	return &Controller{
		window:      window,
		reloadDelay: delay,
		activator:   activator,
		reloader:    reloader,
		now:         time.Now,
		after:       func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
	}
}

// Snapshot returns a copy of the current session state.
func (c *Controller) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// ShouldShowPrompt reports whether the update prompt should be shown
// right now. The suppression window is checked lazily against the
// stored timestamp, so a suppressed update becomes visible again the
// moment the window elapses without needing a fresh notification.
func (c *Controller) ShouldShowPrompt() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.ShouldShowPrompt(c.now())
}

// OfflineReady reports whether the current asset set is fully cached.
func (c *Controller) OfflineReady() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.OfflineReady
}

// Accept applies the user's decision to update. In order: issue the
// activation command with immediate takeover requested, clear the
// available flag so the prompt disappears without waiting for the
// reload, then schedule one reload after the configured delay.
//
// The session is terminal afterwards. Repeated or concurrent calls are
// no-ops; the activation command and the reload are each issued exactly
// once. Returns true when this call performed the acceptance.
func (c *Controller) Accept() bool {
	c.mu.Lock()
	if c.session.Accepted || !c.session.UpdateAvailable {
		c.mu.Unlock()
		return false
	}
	c.session.Accepted = true
	c.session.UpdateAvailable = false
	c.mu.Unlock()

	if c.activator != nil {
		c.activator.ActivateUpdate(true)
	}
	if c.reloader != nil {
		c.after(c.reloadDelay, c.reloader.Reload)
	}
	return true
}

// Dismiss hides the prompt by arming the suppression window. The
// available flag is left untouched: the update is still there, the
// user just does not want to hear about it for a while. Once the
// window elapses the next check re-shows the prompt on its own,
// without waiting for the browser to re-deliver need-refresh.
//
// A dismiss with no pending update still arms the cooldown: a dismissal
// always starts the clock, whether or not a prompt was actually
// visible.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.Accepted {
		return
	}
	c.session.SuppressedUntil = c.now().Add(c.window)
}

// setOfflineReady is the Bridge's write path for the offline-ready
// flag. Monotonic: once true it stays true.
func (c *Controller) setOfflineReady() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.OfflineReady = true
}

// setUpdateAvailable is the Bridge's write path for the available flag.
// The flag is recorded even while suppression is active so that expiry
// of the window reveals the update without a new notification.
func (c *Controller) setUpdateAvailable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.Accepted {
		return
	}
	c.session.UpdateAvailable = true
}
