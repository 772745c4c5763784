package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 48*time.Hour, cfg.Update.SuppressionWindow)
	assert.Equal(t, 100*time.Millisecond, cfg.Update.ReloadDelay)
	assert.Equal(t, time.Hour, cfg.Update.SessionTTL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PHYSIO_SERVER_PORT", "9999")
	t.Setenv("PHYSIO_DATABASE_NAME", "physio_test")
	t.Setenv("PHYSIO_UPDATE_SUPPRESSION_WINDOW", "1h")
	t.Setenv("PHYSIO_SITE_NAME", "Testpraxis")

	cfg := Load()

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "physio_test", cfg.Database.Name)
	assert.Equal(t, time.Hour, cfg.Update.SuppressionWindow)
	assert.Equal(t, "Testpraxis", cfg.Site.Name)
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db.local", Port: 5433,
		User: "u", Password: "p", Name: "site", SSLMode: "require",
	}
	assert.Equal(t, "postgres://u:p@db.local:5433/site?sslmode=require", d.DSN())
}
