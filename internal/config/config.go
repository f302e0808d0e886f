package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the service.
type Config struct {
	ListenAddr      string
	DatabaseURL     string
	RefreshInterval time.Duration
	DigestTime      string // HH:MM, local time
}

// Load reads configuration from a .env file (if present) and environment
// variables, with sane defaults.
func Load() (Config, error) {
	// Missing .env is fine; env vars still apply.
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr:      strings.TrimSpace(os.Getenv("LISTEN_ADDR")),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RefreshInterval: parseInterval(strings.TrimSpace(os.Getenv("REFRESH_INTERVAL_SECONDS"))),
		DigestTime:      strings.TrimSpace(os.Getenv("DIGEST_TIME")),
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "lovetasks.db"
	}
	if cfg.RefreshInterval == 0 {
		// Mirrors the one-minute refresh cadence of the original client.
		cfg.RefreshInterval = 60 * time.Second
	}
	if cfg.DigestTime == "" {
		cfg.DigestTime = "09:00"
	}

	return cfg, nil
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	seconds, err := time.ParseDuration(raw + "s")
	if err != nil || seconds <= 0 {
		return 0
	}
	return seconds
}
