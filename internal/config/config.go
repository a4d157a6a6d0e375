// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ashureev/matter/internal/responder"
)

// Config holds all application configuration.
type Config struct {
	Port             string
	FrontendURL      string
	DBPath           string
	Timezone         string
	GiftNoticeDelay  time.Duration
	DayWatchInterval time.Duration
	Responder        ResponderConfig
}

// ResponderConfig selects and tunes the reflection responder.
type ResponderConfig struct {
	Provider        string
	Model           string
	GoogleAPIKey    string
	AnthropicAPIKey string
	AgentAddr       string
	Timeout         time.Duration
	RatePerMinute   int
	Burst           int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	defaults := responder.DefaultConfig()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		FrontendURL:      getEnv("FRONTEND_URL", ""),
		DBPath:           getEnv("DB_PATH", "./data/matter.db"),
		Timezone:         getEnv("TIMEZONE", "Local"),
		GiftNoticeDelay:  getEnvDuration("GIFT_NOTICE_DELAY", 5*time.Second),
		DayWatchInterval: getEnvDuration("DAY_WATCH_INTERVAL", time.Minute),
		Responder: ResponderConfig{
			Provider:        strings.ToLower(getEnv("RESPONDER_PROVIDER", string(defaults.Provider))),
			Model:           getEnv("RESPONDER_MODEL", ""),
			GoogleAPIKey:    getEnv("GOOGLE_API_KEY", ""),
			AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
			AgentAddr:       getEnv("RESPONDER_AGENT_ADDR", "localhost:50051"),
			Timeout:         getEnvDuration("RESPONDER_TIMEOUT", defaults.RequestTimeout),
			RatePerMinute:   getEnvInt("RESPONDER_RATE_PER_MIN", defaults.RatePerMinute),
			Burst:           getEnvInt("RESPONDER_BURST", defaults.Burst),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("TIMEZONE: %w", err)
	}
	if c.GiftNoticeDelay < 0 {
		return fmt.Errorf("GIFT_NOTICE_DELAY must be >= 0")
	}
	if c.DayWatchInterval <= 0 {
		return fmt.Errorf("DAY_WATCH_INTERVAL must be > 0")
	}
	if c.Responder.RatePerMinute < 0 {
		return fmt.Errorf("RESPONDER_RATE_PER_MIN must be >= 0")
	}

	switch responder.Provider(c.Responder.Provider) {
	case responder.ProviderStatic:
	case responder.ProviderGemini:
		if c.Responder.GoogleAPIKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY is required for the gemini responder")
		}
	case responder.ProviderAnthropic:
		if c.Responder.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic responder")
		}
	case responder.ProviderGrpc:
		if c.Responder.AgentAddr == "" {
			return fmt.Errorf("RESPONDER_AGENT_ADDR is required for the grpc responder")
		}
	default:
		return fmt.Errorf("unknown RESPONDER_PROVIDER %q", c.Responder.Provider)
	}
	return nil
}

// Location resolves the fallback time zone used when a client sends none.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// ResponderConfig converts the responder settings for responder.New.
func (c *Config) ResponderConfig() responder.Config {
	return responder.Config{
		Provider:        responder.Provider(c.Responder.Provider),
		ModelName:       c.Responder.Model,
		GoogleAPIKey:    c.Responder.GoogleAPIKey,
		AnthropicAPIKey: c.Responder.AnthropicAPIKey,
		AgentAddr:       c.Responder.AgentAddr,
		RequestTimeout:  c.Responder.Timeout,
		RatePerMinute:   c.Responder.RatePerMinute,
		Burst:           c.Responder.Burst,
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
