package appupdate

import "log"

// Bridge translates lifecycle notifications from the service-worker
// registration into session state. It is purely reactive: no polling,
// no timers, just inbound notifications.
type Bridge struct {
	controller *Controller
}

// NewBridge creates a bridge feeding the given controller.
func NewBridge(controller *Controller) *Bridge {
	return &Bridge{controller: controller}
}

// Handle applies one notification. Registered and registration-error
// are diagnostic only; offline-ready and need-refresh flip their flags.
// Every branch is idempotent and none of them can fail, so ordering
// anomalies from the browser are tolerated as-is.
func (b *Bridge) Handle(n Notification) {
	switch n.Kind {
	case KindRegistered:
		log.Printf("appupdate: service worker registered (%s)", n.ScriptURL)
	case KindRegistrationError:
		log.Printf("appupdate: service worker registration failed: %s", n.Error)
	case KindOfflineReady:
		b.controller.setOfflineReady()
	case KindNeedRefresh:
		b.controller.setUpdateAvailable()
	default:
		log.Printf("appupdate: ignoring notification kind %s", n.Kind)
	}
}
