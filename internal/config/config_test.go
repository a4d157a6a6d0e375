package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_PATH", "./data/matter.db")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("RESPONDER_PROVIDER", "static")
	t.Setenv("GIFT_NOTICE_DELAY", "5s")
	t.Setenv("DAY_WATCH_INTERVAL", "1m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GiftNoticeDelay != 5*time.Second {
		t.Fatalf("expected 5s gift delay, got %v", cfg.GiftNoticeDelay)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "UTC" {
		t.Fatalf("expected UTC, got %v %v", loc, err)
	}
	if got := cfg.ResponderConfig().Provider; got != "static" {
		t.Fatalf("expected static provider, got %q", got)
	}
}

func TestValidateRejectsBadInput(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:             "8080",
			DBPath:           "x.db",
			Timezone:         "UTC",
			DayWatchInterval: time.Minute,
			Responder:        ResponderConfig{Provider: "static"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty port", func(c *Config) { c.Port = "" }, "PORT"},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, "TIMEZONE"},
		{"zero watch interval", func(c *Config) { c.DayWatchInterval = 0 }, "DAY_WATCH_INTERVAL"},
		{"gemini without key", func(c *Config) { c.Responder.Provider = "gemini" }, "GOOGLE_API_KEY"},
		{"anthropic without key", func(c *Config) { c.Responder.Provider = "anthropic" }, "ANTHROPIC_API_KEY"},
		{"unknown provider", func(c *Config) { c.Responder.Provider = "oracle" }, "RESPONDER_PROVIDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %s, got %v", tt.want, err)
			}
		})
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("base config should validate: %v", err)
	}
}

func TestGetEnvDurationFallsBackOnGarbage(t *testing.T) {
	t.Setenv("MATTER_TEST_DURATION", "soon")
	if got := getEnvDuration("MATTER_TEST_DURATION", time.Second); got != time.Second {
		t.Fatalf("expected fallback, got %v", got)
	}
}

func TestIsDevelopment(t *testing.T) {
	if !(&Config{}).IsDevelopment() {
		t.Fatal("empty frontend url should be development")
	}
	if (&Config{FrontendURL: "https://matter.example"}).IsDevelopment() {
		t.Fatal("public frontend url should not be development")
	}
}
