package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the server's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	notificationsTotal *prometheus.CounterVec
	promptsAccepted    prometheus.Counter
	promptsDismissed   prometheus.Counter
	liveSessions       prometheus.GaugeFunc
}

// NewMetrics creates and registers all collectors. sessionCount feeds
// the live-session gauge; pass nil to skip it.
func NewMetrics(sessionCount func() int) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		registry: registry,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "physio_http_requests_total",
			Help: "HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "physio_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		notificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "physio_appupdate_notifications_total",
			Help: "Service worker lifecycle notifications by kind.",
		}, []string{"kind"}),
		promptsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "physio_appupdate_accepted_total",
			Help: "Update prompts accepted by visitors.",
		}),
		promptsDismissed: factory.NewCounter(prometheus.CounterOpts{
			Name: "physio_appupdate_dismissed_total",
			Help: "Update prompts dismissed by visitors.",
		}),
	}

	if sessionCount != nil {
		m.liveSessions = factory.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "physio_appupdate_live_sessions",
			Help: "Update sessions currently tracked.",
		}, func() float64 { return float64(sessionCount()) })
	}

	return m
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// CountNotification records one inbound lifecycle notification.
func (m *Metrics) CountNotification(kind string) {
	m.notificationsTotal.WithLabelValues(kind).Inc()
}

// CountAccept records an accepted update prompt.
func (m *Metrics) CountAccept() { m.promptsAccepted.Inc() }

// CountDismiss records a dismissed update prompt.
func (m *Metrics) CountDismiss() { m.promptsDismissed.Inc() }
