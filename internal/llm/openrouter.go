package llm

import (
	"errors"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// Sent so calls show up under the app's name in the OpenRouter dashboard.
	openRouterTitle   = "Intervue"
	openRouterReferer = "https://github.com/abhisek/intervue"
)

// OpenRouterProvider is an OpenAIProvider pointed at OpenRouter with its
// attribution headers set.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
// Model IDs are vendor-prefixed ("google/gemini-2.0-flash-exp") and used as is.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	return newOpenRouterProvider(cfg, http.DefaultTransport)
}

func newOpenRouterProvider(cfg OpenRouterConfig, base http.RoundTripper) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	hc := &http.Client{Transport: attributionTransport{base: base}}
	inner, err := newOpenAIProvider(OpenAIConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: baseURL}, hc)
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// attributionTransport adds the OpenRouter app attribution headers.
type attributionTransport struct {
	base http.RoundTripper
}

func (t attributionTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("X-Title", openRouterTitle)
	r.Header.Set("HTTP-Referer", openRouterReferer)
	return t.base.RoundTrip(r)
}
