package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/rs/cors"

	"physio-backend/internal/appupdate"
	"physio-backend/internal/config"
	"physio-backend/internal/database"
	"physio-backend/internal/handlers"
	"physio-backend/internal/health"
	h "physio-backend/internal/http"
	"physio-backend/internal/middleware"
	"physio-backend/internal/monitoring"
	"physio-backend/internal/repositories"
	"physio-backend/internal/services"
	"physio-backend/internal/ws"
	"physio-backend/migrations"
	"physio-backend/static"
	"physio-backend/templates"
)

// version is injected by the build (-ldflags "-X main.version=...")
var version = "dev"

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	skipMigrations := flag.Bool("skip-migrations", false, "Skip database migrations on startup")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to database and apply migrations
	pool := database.Connect(cfg)
	defer pool.Close()

	if !*skipMigrations {
		migrator := database.NewMigrator(pool, migrations.FS)
		if err := migrator.RunMigrations(context.Background()); err != nil {
			log.Fatalf("Migrations failed: %v", err)
		}
	}

	// Update lifecycle: hub carries commands back to pages, registry
	// owns one controller per page load
	hub := ws.NewHub()
	registry := appupdate.NewRegistry(appupdate.Config{
		SuppressionWindow: cfg.Update.SuppressionWindow,
		ReloadDelay:       cfg.Update.ReloadDelay,
	}, hub, cfg.Update.SessionTTL)

	// Metrics and health
	metrics := monitoring.NewMetrics(registry.Len)
	checker := health.NewHealthChecker(pool)

	// Repositories
	analyticsRepo := repositories.NewAnalyticsEventRepository(pool)
	contactRepo := repositories.NewContactRequestRepository(pool)

	// Services
	analyticsService := services.NewAnalyticsService(analyticsRepo, cfg.Analytics)
	contactService := services.NewContactService(contactRepo)
	releaseService := services.NewReleaseService(version, hub)
	authService := services.NewAuthService(cfg.Admin)

	// Handlers
	pageHandler := handlers.NewPageHandler(templates.FS, cfg.Site, version)
	pwaHandler := handlers.NewPWAHandler(static.FS)
	appUpdateHandler := handlers.NewAppUpdateHandler(registry, metrics)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	contactHandler := handlers.NewContactHandler(contactService)
	versionHandler := handlers.NewVersionHandler(releaseService)
	adminHandler := handlers.NewAdminHandler(authService, checker)
	adminAuth := middleware.NewAdminAuth(authService)

	router := h.NewRouter(h.RouterDeps{
		Pages:     pageHandler,
		PWA:       pwaHandler,
		AppUpdate: appUpdateHandler,
		Analytics: analyticsHandler,
		Contact:   contactHandler,
		Version:   versionHandler,
		Admin:     adminHandler,
		AdminAuth: adminAuth,
		Hub:       hub,
		Metrics:   metrics,
		StaticFS:  static.FS,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server running on %s (version: %s)", addr, version)
	if err := http.ListenAndServe(addr, corsHandler.Handler(router)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
