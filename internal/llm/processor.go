// Package llm turns a formatted product context and a user question into
// a natural-language answer via an external text-generation backend.
// Two providers are supported: a Groq (OpenAI-compatible) chat endpoint
// and the Gemini generateContent endpoint. All calls run through a
// circuit breaker so a dead backend fails fast instead of stacking up
// 30-second timeouts.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	internalErrors "github.com/shopassist/shop-assistant/internal/errors"
	"github.com/shopassist/shop-assistant/internal/metrics"
)

// Provider names accepted in configuration.
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
)

const defaultTimeout = 30 * time.Second

// Config holds the text-generation backend settings.
type Config struct {
	Provider string        // "gemini" (default) or "groq"
	APIKey   string
	Model    string        // optional model override, provider default if empty
	BaseURL  string        // optional endpoint override, used by tests
	Timeout  time.Duration // per-request timeout, default 30s
	Logger   *zap.Logger
}

// backend is one concrete text-generation provider.
type backend interface {
	complete(ctx context.Context, productContext, userQuery string) (string, error)
	name() string
}

// Processor implements services.Answerer over a configured backend.
type Processor struct {
	backend backend
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewProcessor creates a Processor for the configured provider.
// It fails when no API key is configured or the provider is unknown.
func NewProcessor(cfg Config) (*Processor, error) {
	if cfg.APIKey == "" {
		return nil, internalErrors.ErrMissingAPIKey
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	var b backend
	switch cfg.Provider {
	case ProviderGroq:
		b = newGroqBackend(cfg)
	case ProviderGemini, "":
		b = newGeminiBackend(cfg)
	default:
		return nil, internalErrors.NewValidationError("provider", fmt.Sprintf("unknown LLM provider '%s'", cfg.Provider))
	}

	return &Processor{
		backend: b,
		breaker: newBreaker("llm-"+b.name(), cfg.Logger),
		logger:  cfg.Logger,
	}, nil
}

// Provider returns the active backend name.
func (p *Processor) Provider() string {
	return p.backend.name()
}

// Answer sends the product context and the user's question to the backend
// and returns its reply.
func (p *Processor) Answer(ctx context.Context, productContext, userQuery string) (string, error) {
	provider := p.backend.name()
	start := time.Now()

	reply, err := p.breaker.Execute(func() (interface{}, error) {
		return p.backend.complete(ctx, productContext, userQuery)
	})

	duration := time.Since(start)
	metrics.LLMRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())

	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(provider, "error").Inc()
		p.logger.Warn("llm request failed",
			zap.String("provider", provider),
			zap.Duration("took", duration),
			zap.Error(err),
		)
		return "", err
	}

	metrics.LLMRequestsTotal.WithLabelValues(provider, "success").Inc()
	answer, ok := reply.(string)
	if !ok || answer == "" {
		return "", internalErrors.NewBackendError(provider, "empty response")
	}
	return answer, nil
}

// newBreaker builds the circuit breaker guarding backend calls.
func newBreaker(name string, logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			var stateVal float64
			switch to {
			case gobreaker.StateClosed:
				stateVal = 0
			case gobreaker.StateHalfOpen:
				stateVal = 1
			case gobreaker.StateOpen:
				stateVal = 2
			}
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateVal)
		},
	})
}
