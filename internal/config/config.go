package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// Search tuning
	SearchCacheTTL      time.Duration
	SearchCacheSize     int
	LocationCacheTTL    time.Duration
	LocationCacheSize   int
	CacheCleanupPeriod  time.Duration
	FullScanLimit       int
	SimilarityThreshold float64

	// Proximity defaults (meters)
	DefaultSearchRadius int
	MaxSearchRadius     int
}

// Load loads configuration from the environment, falling back to defaults
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/gps_inspection.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	return &Config{
		Port:                port,
		DBPath:              dbPath,
		JWTSecret:           jwtSecret,
		SearchCacheTTL:      envDuration("SEARCH_CACHE_TTL_SECONDS", 300),
		SearchCacheSize:     envInt("SEARCH_CACHE_SIZE", 1000),
		LocationCacheTTL:    envDuration("LOCATION_CACHE_TTL_SECONDS", 60),
		LocationCacheSize:   envInt("LOCATION_CACHE_SIZE", 1000),
		CacheCleanupPeriod:  envDuration("CACHE_CLEANUP_SECONDS", 300),
		FullScanLimit:       envInt("SEARCH_FULL_SCAN_LIMIT", 1000),
		SimilarityThreshold: 0.7,
		DefaultSearchRadius: envInt("DEFAULT_SEARCH_RADIUS_METERS", 100),
		MaxSearchRadius:     envInt("MAX_SEARCH_RADIUS_METERS", 5000),
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallbackSeconds int) time.Duration {
	return time.Duration(envInt(key, fallbackSeconds)) * time.Second
}
