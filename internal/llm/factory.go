package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/lingoz/internal/store"
)

// NewProvider builds the full provider stack from configuration:
// each backend is wrapped with logging and retry, then the backends
// are chained behind a FallbackProvider in priority order.
//
//	caller → fallback → [retry → logging → backend] ...
func NewProvider(ctx context.Context, cfg Config, eventRepo store.LLMEventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	backends := make([]Provider, 0, len(cfg.Backends))
	for _, name := range cfg.Backends {
		base, err := newBackend(ctx, name, cfg)
		if err != nil {
			return nil, fmt.Errorf("initializing %s backend: %w", name, err)
		}
		logged := WithLogging(base, eventRepo)
		backends = append(backends, WithRetry(logged, cfg.Retry))
	}

	if len(backends) == 1 {
		return backends[0], nil
	}
	return WithFallback(backends...), nil
}

// NewProviderFromEnv builds the provider stack from environment variables.
func NewProviderFromEnv(ctx context.Context, eventRepo store.LLMEventRepo) (Provider, error) {
	return NewProvider(ctx, ConfigFromEnv(), eventRepo)
}

func newBackend(ctx context.Context, name string, cfg Config) (Provider, error) {
	switch name {
	case "openai":
		return NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		return NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		return NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown model backend: %q", name)
	}
}
