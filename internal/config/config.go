package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// Scoring engine artifacts
	ModelPath string // fitted weights + schema (JSON)
	GridPath  string // offline grid feature table (CSV)

	// Engine tuning
	GridStep       float64       // cell size in degrees, must match the offline build
	SearchRings    int           // nearest-cell fallback search radius
	DefaultFeature float64       // fill value for missing cells/features
	SampleStride   int           // score every Nth route point
	MaxSamples     int           // latency bound for long geometries
	AlertThreshold float64       // scores below this can fire alerts
	AlertCooldown  time.Duration // minimum time between alerts per session
}

// Load reads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", ":8080"),
		DBPath:    getEnv("DB_PATH", "./data/safewalk.db"),
		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),

		ModelPath: getEnv("MODEL_PATH", "./data/safety_model.json"),
		GridPath:  getEnv("GRID_PATH", "./data/grid_features.csv"),

		GridStep:       getEnvFloat("GRID_STEP", 0.0015), // ~150m cells
		SearchRings:    getEnvInt("SEARCH_RINGS", 3),
		DefaultFeature: getEnvFloat("DEFAULT_FEATURE", 0),
		SampleStride:   getEnvInt("SAMPLE_STRIDE", 5),
		MaxSamples:     getEnvInt("MAX_SAMPLES", 500),
		AlertThreshold: getEnvFloat("ALERT_THRESHOLD", 3.0),
		AlertCooldown:  getEnvDuration("ALERT_COOLDOWN", 5*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
