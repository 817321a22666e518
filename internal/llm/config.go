package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config selects a vendor and carries the settings of every vendor, so a
// stored key for one does not clobber env overrides for another.
type Config struct {
	// Provider is one of the names in vendors, or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one call including its retries. Zero leaves it to the
	// HTTP client.
	Timeout time.Duration

	// Temperature applies to conversational requests.
	Temperature float64
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // any OpenAI-compatible endpoint
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig shapes the backoff in WithRetry. MaxAttempts counts the first
// try.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// vendor ties a provider name to its Config fields and environment.
type vendor struct {
	name string

	// stdKeyEnv is the vendor's conventional key variable, picked up when
	// no INTERVUE_ variable selects a provider.
	stdKeyEnv string

	key   func(*Config) *string
	model func(*Config) *string
	base  func(*Config) *string // nil when the endpoint is fixed
}

// vendors is in discovery order.
var vendors = []vendor{
	{
		name: "openai", stdKeyEnv: "OPENAI_API_KEY",
		key:   func(c *Config) *string { return &c.OpenAI.APIKey },
		model: func(c *Config) *string { return &c.OpenAI.Model },
		base:  func(c *Config) *string { return &c.OpenAI.BaseURL },
	},
	{
		name: "gemini", stdKeyEnv: "GEMINI_API_KEY",
		key:   func(c *Config) *string { return &c.Gemini.APIKey },
		model: func(c *Config) *string { return &c.Gemini.Model },
	},
	{
		name: "anthropic", stdKeyEnv: "ANTHROPIC_API_KEY",
		key:   func(c *Config) *string { return &c.Anthropic.APIKey },
		model: func(c *Config) *string { return &c.Anthropic.Model },
	},
	{
		name: "openrouter", stdKeyEnv: "OPENROUTER_API_KEY",
		key:   func(c *Config) *string { return &c.OpenRouter.APIKey },
		model: func(c *Config) *string { return &c.OpenRouter.Model },
		base:  func(c *Config) *string { return &c.OpenRouter.BaseURL },
	},
}

func lookupVendor(name string) (vendor, bool) {
	for _, v := range vendors {
		if v.name == name {
			return v, true
		}
	}
	return vendor{}, false
}

// env names the INTERVUE_ variable for one of the vendor's settings,
// e.g. INTERVUE_GEMINI_MODEL.
func (v vendor) env(setting string) string {
	return "INTERVUE_" + strings.ToUpper(v.name) + "_" + setting
}

// DefaultConfig is OpenAI with a single attempt and no overall timeout.
func DefaultConfig() Config {
	return Config{
		Provider:   "openai",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Temperature: 0.7,
	}
}

// ConfigFromEnv overlays INTERVUE_* variables on DefaultConfig. Malformed
// numbers and durations are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if p := os.Getenv("INTERVUE_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	for _, v := range vendors {
		setFromEnv(v.key(&cfg), v.env("API_KEY"))
		setFromEnv(v.model(&cfg), v.env("MODEL"))
		if v.base != nil {
			setFromEnv(v.base(&cfg), v.env("BASE_URL"))
		}
	}

	if n, err := strconv.Atoi(os.Getenv("INTERVUE_LLM_MAX_ATTEMPTS")); err == nil && n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	if d, err := time.ParseDuration(os.Getenv("INTERVUE_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	if t, err := strconv.ParseFloat(os.Getenv("INTERVUE_LLM_TEMPERATURE"), 64); err == nil && t >= 0 {
		cfg.Temperature = t
	}
	return cfg
}

func setFromEnv(dst *string, name string) {
	if s := os.Getenv(name); s != "" {
		*dst = s
	}
}

// DiscoverConfig returns a Config for the first vendor, in vendors order,
// whose conventional key variable (OPENAI_API_KEY and so on) is set.
func DiscoverConfig() (Config, bool) {
	for _, v := range vendors {
		if k := os.Getenv(v.stdKeyEnv); k != "" {
			cfg, _ := ConfigWithKey(v.name, k)
			return cfg, true
		}
	}
	return Config{}, false
}

// ConfigWithKey returns DefaultConfig switched to provider with key set. It
// backs both env discovery and the stored credential.
func ConfigWithKey(provider, key string) (Config, error) {
	v, ok := lookupVendor(provider)
	if !ok {
		return Config{}, fmt.Errorf("unknown LLM provider: %q", provider)
	}
	cfg := DefaultConfig()
	cfg.Provider = provider
	*v.key(&cfg) = key
	return cfg, nil
}

// HasKey reports whether the selected provider can be used.
func (c Config) HasKey() bool {
	return c.Validate() == nil
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	v, ok := lookupVendor(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *v.key(&c) == "" {
		return fmt.Errorf("%s or %s is required for the %s provider", v.env("API_KEY"), v.stdKeyEnv, v.name)
	}
	return nil
}
