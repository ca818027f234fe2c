package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// defaultActiveFireURL is the public interagency current-perimeter feed,
// queried as a GeoJSON feature collection.
const defaultActiveFireURL = "https://services3.arcgis.com/T4QMspbfLg3qTGWY/arcgis/rest/services/WFIGS_Interagency_Perimeters_Current/FeatureServer/0/query?where=1%3D1&outFields=poly_IncidentName&f=geojson"

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Historical datasets directory.
	DataDir string

	// Active-fire perimeter feed.
	ActiveFireEnabled bool
	ActiveFireURL     string
	ActiveFireTimeout time.Duration

	// Danger-zone broadcast (optional).
	BroadcastEnabled bool
	KafkaBrokers     []string
	KafkaZoneTopic   string

	// Retention window for in-memory danger-zone observations.
	ZoneTTL time.Duration
}

// Load reads configuration from environment variables (optionally a .env
// file), applying defaults where unset.
func Load() (*Config, error) {
	_ = godotenv.Load() // ignore missing file

	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	feedTimeout, err := envDuration("ACTIVE_FIRE_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	zoneTTL, err := envDuration("ZONE_TTL", time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DataDir: envOrDefault("DATA_DIR", "data"),

		ActiveFireEnabled: envBool("ACTIVE_FIRE_ENABLED", true),
		ActiveFireURL:     envOrDefault("ACTIVE_FIRE_URL", defaultActiveFireURL),
		ActiveFireTimeout: feedTimeout,

		BroadcastEnabled: envBool("BROADCAST_ENABLED", false),
		KafkaBrokers:     splitBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaZoneTopic:   envOrDefault("KAFKA_ZONE_TOPIC", "danger-zone-observations"),

		ZoneTTL: zoneTTL,
	}

	if cfg.DataDir == "" {
		return nil, errors.New("DATA_DIR is required")
	}
	if cfg.ActiveFireEnabled && cfg.ActiveFireURL == "" {
		return nil, errors.New("ACTIVE_FIRE_ENABLED is true but ACTIVE_FIRE_URL is empty")
	}
	if cfg.BroadcastEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("BROADCAST_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaZoneTopic == "" {
			return nil, errors.New("BROADCAST_ENABLED is true but KAFKA_ZONE_TOPIC is empty")
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true"
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}

func splitBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}
