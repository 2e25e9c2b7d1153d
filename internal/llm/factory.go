package llm

import (
	"context"
	"fmt"

	"github.com/vidyayathra/tutor/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, eventRepo)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// NewProviderFromEnv builds a Provider from VIDYA_* environment
// variables, falling back to probing the standard provider key vars
// when the configured provider has no key.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, eventRepo)
}

// NewEmbedderFromEnv builds an Embedder the same way.
func NewEmbedderFromEnv(ctx context.Context) (Embedder, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		if discovered, ok := DiscoverConfig(); ok {
			cfg = discovered
		}
	}
	return NewEmbedder(ctx, cfg)
}

// NewEmbedder creates an Embedder from configuration. Only the Gemini and
// OpenAI providers expose embedding endpoints; other provider selections
// fall back to Gemini when its key is present, then OpenAI.
func NewEmbedder(ctx context.Context, cfg Config) (Embedder, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		return NewOpenAIProvider(cfg.OpenAI)
	case "mock":
		return &MockEmbedder{Dim: 8}, nil
	}

	if cfg.Gemini.APIKey != "" {
		return NewGeminiProvider(ctx, cfg.Gemini)
	}
	if cfg.OpenAI.APIKey != "" {
		return NewOpenAIProvider(cfg.OpenAI)
	}
	return nil, fmt.Errorf("no embedding-capable provider configured (gemini or openai key required)")
}
