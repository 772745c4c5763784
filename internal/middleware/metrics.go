package middleware

import (
	"net/http"
	"strings"
	"time"

	"physio-backend/internal/monitoring"
)

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RequestMetrics records request counts and latencies.
func RequestMetrics(metrics *monitoring.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Static assets and the metrics endpoint itself would drown
			// the interesting series.
			if skipMetrics(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			metrics.ObserveRequest(r.Method, sanitizePath(r.URL.Path), wrapped.statusCode, time.Since(start))
		})
	}
}

func skipMetrics(path string) bool {
	skipPrefixes := []string{
		"/static/",
		"/metrics",
		"/favicon.ico",
		"/robots.txt",
		// websocket upgrades must keep the raw ResponseWriter
		"/ws/",
	}
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// sanitizePath strips query strings and caps length so the path label
// stays low-cardinality.
func sanitizePath(path string) string {
	if idx := strings.Index(path, "?"); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 200 {
		path = path[:200]
	}
	return path
}
