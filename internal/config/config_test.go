package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// viper treats empty variables as unset
	t.Setenv("API_BASE_URL", "")
	t.Setenv("API_TIMEOUT_SECONDS", "")
	t.Setenv("JOURNAL_TYPE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Fatalf("unexpected default base url %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 30*time.Second {
		t.Fatalf("unexpected default timeout %v", cfg.APITimeout)
	}
	if cfg.JournalType != "bbolt" {
		t.Fatalf("unexpected default journal type %q", cfg.JournalType)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://flotorch.example.com/api/")
	t.Setenv("API_TIMEOUT_SECONDS", "12")
	t.Setenv("JOURNAL_TYPE", "none")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "https://flotorch.example.com/api" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 12*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.APITimeout)
	}
	if cfg.JournalType != "none" {
		t.Fatalf("unexpected journal type %q", cfg.JournalType)
	}
	if cfg.JournalTTL != 7*24*time.Hour {
		t.Fatalf("unexpected journal ttl %v", cfg.JournalTTL)
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:8000")
	t.Setenv("API_TIMEOUT_SECONDS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}

func TestWithOverrides(t *testing.T) {
	base := &Config{
		APIBaseURL:            "http://localhost:8000",
		APITimeoutSeconds:     30,
		JournalTTLSeconds:     60,
		JournalCleanupSeconds: 60,
	}

	cfg, err := base.WithOverrides("http://backend:9000/", 500*time.Millisecond)
	if err != nil {
		t.Fatalf("WithOverrides: %v", err)
	}
	if cfg.APIBaseURL != "http://backend:9000" {
		t.Fatalf("unexpected base url %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != time.Second {
		t.Fatalf("sub-second timeout should round up to 1s, got %v", cfg.APITimeout)
	}
	if base.APIBaseURL != "http://localhost:8000" {
		t.Fatalf("overrides must not mutate the receiver")
	}
}
