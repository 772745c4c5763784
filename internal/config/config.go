package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all server configuration, loaded from config.yaml with
// environment variable overrides (PHYSIO_ prefix).
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Update    UpdateConfig    `mapstructure:"update"`
	Admin     AdminConfig     `mapstructure:"admin"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Site      SiteConfig      `mapstructure:"site"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN builds the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type AnalyticsConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	CollectorURL string        `mapstructure:"collector_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// UpdateConfig tunes the update-prompt lifecycle.
type UpdateConfig struct {
	SuppressionWindow time.Duration `mapstructure:"suppression_window"`
	ReloadDelay       time.Duration `mapstructure:"reload_delay"`
	SessionTTL        time.Duration `mapstructure:"session_ttl"`
}

type AdminConfig struct {
	PasswordHash string        `mapstructure:"password_hash"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type SiteConfig struct {
	Name    string `mapstructure:"name"`
	BaseURL string `mapstructure:"base_url"`
}

// Load reads configuration from .env, config.yaml, and environment
// variables, in increasing order of precedence. Missing files are fine;
// every field has a default suitable for local development.
func Load() *Config {
	// .env is optional (local development convenience)
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/physio-backend")

	v.SetEnvPrefix("PHYSIO")
	// Nested keys use dots; env names use underscores (PHYSIO_SERVER_PORT)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: failed to read config file: %v", err)
		}
	} else {
		log.Printf("Loaded configuration from %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("Failed to parse configuration: %v", err)
	}

	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "physio_user")
	v.SetDefault("database.password", "physio_pass")
	v.SetDefault("database.name", "physio_db")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("analytics.enabled", true)
	v.SetDefault("analytics.collector_url", "")
	v.SetDefault("analytics.timeout", 5*time.Second)

	v.SetDefault("update.suppression_window", 48*time.Hour)
	v.SetDefault("update.reload_delay", 100*time.Millisecond)
	v.SetDefault("update.session_ttl", time.Hour)

	v.SetDefault("admin.password_hash", "")
	v.SetDefault("admin.jwt_secret", "")
	v.SetDefault("admin.token_ttl", 12*time.Hour)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("site.name", "Physiotherapie Praxis")
	v.SetDefault("site.base_url", "http://localhost:8080")
}
