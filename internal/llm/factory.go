package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with timeout, retry and logging middleware.
// eventRepo may be nil, in which case calls are only logged through log.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *zap.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewScriptedProvider(nil)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → timeout → retry → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo, log)
	retried := WithRetry(logged, cfg.Retry, log)

	return WithTimeout(retried, cfg.Timeout), nil
}

// ResolveConfig picks provider configuration in priority order:
// 1. INTERVUE_LLM_PROVIDER with its INTERVUE_* key
// 2. standard provider key env vars (OPENAI_API_KEY, ...)
// 3. the API key stored with `intervue key set`
func ResolveConfig(ctx context.Context, creds store.CredentialRepo) (Config, error) {
	if os.Getenv("INTERVUE_LLM_PROVIDER") != "" {
		cfg := ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}

	if cfg := ConfigFromEnv(); cfg.HasKey() {
		return cfg, nil
	}

	if cfg, ok := DiscoverConfig(); ok {
		return cfg, nil
	}

	if creds != nil {
		provider, key, err := creds.Any(ctx)
		if err == nil {
			return ConfigWithKey(provider, key)
		}
		if !errors.Is(err, store.ErrNotFound) {
			return Config{}, err
		}
	}

	return Config{}, ErrNotConfigured
}
