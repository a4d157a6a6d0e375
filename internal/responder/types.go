// Package responder turns a completed intention and its reflection into one
// short affirming sentence. It never reports failure to its caller: any error
// is logged and replaced with a fixed sentence.
package responder

import (
	"context"
	"time"

	"github.com/ashureev/matter/internal/domain"
)

const (
	// FallbackEmpty is returned when the backend answered with nothing.
	FallbackEmpty = "The forest listens to your heart."
	// FallbackError is returned when the backend call failed.
	FallbackError = "The wind whispers in acknowledgment."
)

// Provider names a backend implementation.
type Provider string

const (
	ProviderStatic    Provider = "static"
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
	ProviderGrpc      Provider = "grpc"
)

// Request is the input of one reflection response.
type Request struct {
	GoalText   string
	Category   domain.Category
	Reflection string
}

// Backend generates text for a prompt.
type Backend interface {
	Generate(ctx context.Context, req Request, prompt string) (string, error)
	Name() string
}

// Config holds responder configuration.
type Config struct {
	Provider        Provider
	ModelName       string
	GoogleAPIKey    string
	AnthropicAPIKey string
	AgentAddr       string
	RequestTimeout  time.Duration
	RatePerMinute   int
	Burst           int
}

// DefaultConfig returns default responder configuration.
func DefaultConfig() Config {
	return Config{
		Provider:       ProviderStatic,
		RequestTimeout: 15 * time.Second,
		RatePerMinute:  30,
		Burst:          5,
	}
}
