package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application settings loaded from the environment.
type Config struct {
	Port          int    `json:"port"`
	DBPath        string `json:"db_path"`
	OSRSBaseURL   string `json:"osrs_base_url"`
	UserAgent     string `json:"user_agent"`
	RetentionDays int    `json:"retention_days"` // price snapshots older than this are pruned on sync

	// Flip query limits.
	DefaultLimit int `json:"default_limit"`
	MaxLimit     int `json:"max_limit"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Port:          13380,
		DBPath:        "flipper.db",
		OSRSBaseURL:   "https://prices.runescape.wiki/api/v1/osrs",
		UserAgent:     "ge-flipper/1.0 - GE flip tracker",
		RetentionDays: 7,
		DefaultLimit:  50,
		MaxLimit:      200,
	}
}

// Load reads a .env file if present, then overlays environment variables on
// top of the defaults.
func Load() *Config {
	godotenv.Load()

	cfg := Default()
	if v := os.Getenv("GE_FLIPPER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Port = port
		}
	}
	if v := os.Getenv("GE_FLIPPER_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("OSRS_API_BASE_URL"); v != "" {
		cfg.OSRSBaseURL = v
	}
	if v := os.Getenv("OSRS_API_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("GE_FLIPPER_RETENTION_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			cfg.RetentionDays = days
		}
	}
	return cfg
}
