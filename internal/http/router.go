package http

import (
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"

	"physio-backend/internal/handlers"
	"physio-backend/internal/middleware"
	"physio-backend/internal/monitoring"
	"physio-backend/internal/ws"
)

// RouterDeps bundles everything the router wires together.
type RouterDeps struct {
	Pages     *handlers.PageHandler
	PWA       *handlers.PWAHandler
	AppUpdate *handlers.AppUpdateHandler
	Analytics *handlers.AnalyticsHandler
	Contact   *handlers.ContactHandler
	Version   *handlers.VersionHandler
	Admin     *handlers.AdminHandler
	AdminAuth *middleware.AdminAuth
	Hub       *ws.Hub
	Metrics   *monitoring.Metrics
	StaticFS  fs.FS
}

// NewRouter builds the full route table with its middleware stack.
func NewRouter(deps RouterDeps) http.Handler {
	r := mux.NewRouter()

	// PWA shell at root paths so the worker scope covers the origin
	r.HandleFunc("/manifest.json", deps.PWA.Manifest).Methods("GET")
	r.HandleFunc("/sw.js", deps.PWA.ServiceWorker).Methods("GET")
	r.HandleFunc("/robots.txt", deps.Pages.Robots).Methods("GET")

	// Static assets
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.FS(deps.StaticFS))))

	// Update lifecycle
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.APIRateLimiter.Middleware)
	api.HandleFunc("/app-update/events", deps.AppUpdate.HandleEvent).Methods("POST")
	api.HandleFunc("/app-update/status", deps.AppUpdate.GetStatus).Methods("GET")
	api.HandleFunc("/app-update/accept", deps.AppUpdate.Accept).Methods("POST")
	api.HandleFunc("/app-update/dismiss", deps.AppUpdate.Dismiss).Methods("POST")
	api.HandleFunc("/app-update/goodbye", deps.AppUpdate.Goodbye).Methods("POST")

	// Analytics and contact
	api.HandleFunc("/analytics/events", deps.Analytics.TrackEvent).Methods("POST")
	api.Handle("/contact",
		middleware.ContactRateLimiter.Middleware(http.HandlerFunc(deps.Contact.Submit))).Methods("POST")

	// Release info
	api.HandleFunc("/version", deps.Version.GetVersion).Methods("GET")

	// Admin surface
	api.HandleFunc("/admin/login", deps.Admin.Login).Methods("POST")
	api.Handle("/deploy/notify",
		deps.AdminAuth.Require(http.HandlerFunc(deps.Version.NotifyDeploy))).Methods("POST")
	api.Handle("/admin/contact-requests",
		deps.AdminAuth.Require(http.HandlerFunc(deps.Contact.ListRecent))).Methods("GET")
	api.Handle("/admin/analytics/summary",
		deps.AdminAuth.Require(http.HandlerFunc(deps.Analytics.Summary))).Methods("GET")
	api.Handle("/monitoring/system",
		deps.AdminAuth.Require(http.HandlerFunc(deps.Admin.SystemStats))).Methods("GET")

	// Ops endpoints
	r.HandleFunc("/health", deps.Admin.Health).Methods("GET")
	r.Handle("/metrics", deps.Metrics.Handler()).Methods("GET")

	// Update command channel
	r.HandleFunc("/ws/app-update", deps.Hub.HandleConnection)

	// Pages (catch-all last)
	r.PathPrefix("/").HandlerFunc(deps.Pages.Home)

	// Outer middleware: redirect, headers, metrics, gzip
	var handler http.Handler = r
	handler = middleware.GzipCompression(handler)
	handler = middleware.RequestMetrics(deps.Metrics)(handler)
	handler = middleware.SecurityHeaders(handler)
	handler = middleware.HTTPSRedirect(handler)
	return handler
}
