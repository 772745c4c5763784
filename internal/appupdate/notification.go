package appupdate

import "fmt"

// Kind classifies lifecycle notifications from the browser's
// service-worker registration.
type Kind int

const (
	KindRegistered        Kind = iota // worker registration succeeded
	KindRegistrationError             // worker registration failed
	KindOfflineReady                  // current asset set fully cached
	KindNeedRefresh                   // newer asset set downloaded and waiting
)

// Notification is a single lifecycle event reported by the page.
// These may arrive in any order and at any time after page load,
// including never.
type Notification struct {
	Kind      Kind   `json:"kind"`
	ScriptURL string `json:"script_url,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ParseKind maps the wire name of a notification to its Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "registered":
		return KindRegistered, nil
	case "registration-error":
		return KindRegistrationError, nil
	case "offline-ready":
		return KindOfflineReady, nil
	case "need-refresh":
		return KindNeedRefresh, nil
	}
	return 0, fmt.Errorf("unknown notification kind %q", name)
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRegistered:
		return "registered"
	case KindRegistrationError:
		return "registration-error"
	case KindOfflineReady:
		return "offline-ready"
	case KindNeedRefresh:
		return "need-refresh"
	}
	return "unknown"
}
