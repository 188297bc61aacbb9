package config

import (
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.RetentionDays != 7 {
		t.Errorf("RetentionDays = %d, want 7", cfg.RetentionDays)
	}
	if cfg.DefaultLimit != 50 || cfg.MaxLimit != 200 {
		t.Errorf("limits = %d/%d, want 50/200", cfg.DefaultLimit, cfg.MaxLimit)
	}
	if cfg.OSRSBaseURL == "" || cfg.UserAgent == "" {
		t.Error("upstream defaults must not be empty")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GE_FLIPPER_PORT", "9999")
	t.Setenv("GE_FLIPPER_DB", "/tmp/test.db")
	t.Setenv("GE_FLIPPER_RETENTION_DAYS", "3")

	cfg := Load()
	if cfg.Port != 9999 {
		t.Errorf("Port = %d, want 9999", cfg.Port)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q, want /tmp/test.db", cfg.DBPath)
	}
	if cfg.RetentionDays != 3 {
		t.Errorf("RetentionDays = %d, want 3", cfg.RetentionDays)
	}
}

func TestLoad_IgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("GE_FLIPPER_PORT", "not-a-port")
	t.Setenv("GE_FLIPPER_RETENTION_DAYS", "-1")

	cfg := Load()
	if cfg.Port != Default().Port {
		t.Errorf("Port = %d, want default %d", cfg.Port, Default().Port)
	}
	if cfg.RetentionDays != 7 {
		t.Errorf("RetentionDays = %d, want 7", cfg.RetentionDays)
	}
}
