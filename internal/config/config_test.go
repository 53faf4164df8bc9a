package config

import (
	"testing"
	"time"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SITE_URL", "https://rise.example/")
	t.Setenv("ADMIN_EMAILS", " a@example.com, B@example.com ,")
	t.Setenv("NEWS_FEED_INTERVAL", "15m")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.SiteURL != "https://rise.example" {
		t.Errorf("SiteURL = %q, trailing slash should be trimmed", cfg.SiteURL)
	}
	if len(cfg.AdminEmails) != 2 {
		t.Fatalf("AdminEmails = %v, want 2 entries", cfg.AdminEmails)
	}
	if !cfg.IsAdminEmail("b@EXAMPLE.com") {
		t.Error("IsAdminEmail should be case-insensitive")
	}
	if cfg.IsAdminEmail("c@example.com") {
		t.Error("c@example.com is not an admin")
	}
	if cfg.NewsFeedInterval != 15*time.Minute {
		t.Errorf("NewsFeedInterval = %s, want 15m", cfg.NewsFeedInterval)
	}
	if cfg.MaxOpenConns != 25 {
		t.Errorf("MaxOpenConns = %d, invalid value should fall back to 25", cfg.MaxOpenConns)
	}
}
