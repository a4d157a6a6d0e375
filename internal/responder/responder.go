package responder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Responder wraps a Backend with a rate limit, a timeout and fallbacks.
type Responder struct {
	backend Backend
	limiter *rate.Limiter
	timeout time.Duration
	logger  *slog.Logger
}

// NewWithBackend creates a responder around backend. A nil backend never calls
// out and always answers FallbackEmpty.
func NewWithBackend(backend Backend, cfg Config, logger *slog.Logger) *Responder {
	if logger == nil {
		logger = slog.Default()
	}
	var limiter *rate.Limiter
	if cfg.RatePerMinute > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), burst)
	}
	return &Responder{
		backend: backend,
		limiter: limiter,
		timeout: cfg.RequestTimeout,
		logger:  logger,
	}
}

// New builds the backend named by cfg.Provider.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Responder, error) {
	var (
		backend Backend
		err     error
	)
	switch cfg.Provider {
	case "", ProviderStatic:
	case ProviderGemini:
		backend, err = NewGeminiBackend(ctx, cfg.GoogleAPIKey, cfg.ModelName)
	case ProviderAnthropic:
		backend, err = NewAnthropicBackend(cfg.AnthropicAPIKey, cfg.ModelName)
	case ProviderGrpc:
		backend, err = NewGrpcClient(cfg.AgentAddr, logger)
	default:
		return nil, fmt.Errorf("unknown responder provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return NewWithBackend(backend, cfg, logger), nil
}

// Name reports the backend in use.
func (r *Responder) Name() string {
	if r.backend == nil {
		return string(ProviderStatic)
	}
	return r.backend.Name()
}

// Respond returns one affirming sentence for req. It always returns a usable
// sentence.
func (r *Responder) Respond(ctx context.Context, req Request) string {
	if r.backend == nil {
		return FallbackEmpty
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			r.logger.Warn("Reflection response rate limited", "backend", r.backend.Name(), "error", err)
			return FallbackError
		}
	}

	text, err := r.backend.Generate(ctx, req, BuildPrompt(req))
	if err != nil {
		r.logger.Error("Error generating reflection response", "backend", r.backend.Name(), "error", err)
		return FallbackError
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return FallbackEmpty
	}
	return text
}

// Close releases backend resources when the backend holds any.
func (r *Responder) Close() error {
	if c, ok := r.backend.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
