// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the serve and proxy commands.
type Config struct {
	Port        string
	PublicURL   string
	DBPath      string
	LogLevel    string
	LogFile     string
	Development bool

	// SessionTTL is the sliding expiry of an idle interview session.
	SessionTTL time.Duration
	RoomTTL    time.Duration

	// RoomSecret signs room host and invite tokens.
	RoomSecret string

	AllowedOrigins []string

	Speech SpeechConfig
	Proxy  ProxyConfig
}

// SpeechConfig controls the speech-to-text and text-to-speech adapters.
type SpeechConfig struct {
	Enabled         bool
	Language        string
	SampleRateHertz int
	PreferredVoices []string
}

// ProxyConfig controls the forwarding gateway.
type ProxyConfig struct {
	Port       string
	BackendURL string
	Timeout    time.Duration
}

// DefaultPreferredVoices is the ordered voice preference list.
var DefaultPreferredVoices = []string{"Google US English", "Microsoft David", "Alex", "Samantha"}

// LoadDotEnv loads a .env file from the working directory when present.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("INTERVUE_PORT", "3000"),
		PublicURL:      getEnv("INTERVUE_PUBLIC_URL", "http://localhost:3000"),
		DBPath:         getEnv("INTERVUE_DB", ""),
		LogLevel:       getEnv("INTERVUE_LOG_LEVEL", "info"),
		LogFile:        getEnv("INTERVUE_LOG_FILE", ""),
		Development:    getEnvBool("INTERVUE_DEV", false),
		SessionTTL:     getEnvDuration("INTERVUE_SESSION_TTL", 60*time.Minute),
		RoomTTL:        getEnvDuration("INTERVUE_ROOM_TTL", 4*time.Hour),
		RoomSecret:     getEnv("INTERVUE_ROOM_SECRET", ""),
		AllowedOrigins: getEnvList("INTERVUE_ALLOWED_ORIGINS", []string{"*"}),
		Speech: SpeechConfig{
			Enabled:         getEnvBool("INTERVUE_SPEECH_ENABLED", false),
			Language:        getEnv("INTERVUE_SPEECH_LANGUAGE", "en-US"),
			SampleRateHertz: getEnvInt("INTERVUE_SPEECH_SAMPLE_RATE", 16000),
			PreferredVoices: getEnvList("INTERVUE_PREFERRED_VOICES", DefaultPreferredVoices),
		},
		Proxy: ProxyConfig{
			Port:       getEnv("INTERVUE_PROXY_PORT", "8080"),
			BackendURL: getEnv("API_BASE_URL", "http://localhost:3000"),
			Timeout:    getEnvDuration("INTERVUE_PROXY_TIMEOUT", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that required fields are set and well formed.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("INTERVUE_PORT cannot be empty")
	}
	if c.SessionTTL <= 0 {
		return errors.New("INTERVUE_SESSION_TTL must be > 0")
	}
	if c.RoomTTL <= 0 {
		return errors.New("INTERVUE_ROOM_TTL must be > 0")
	}
	if _, err := url.ParseRequestURI(c.Proxy.BackendURL); err != nil {
		return fmt.Errorf("API_BASE_URL: %w", err)
	}
	if c.Speech.SampleRateHertz <= 0 {
		return errors.New("INTERVUE_SPEECH_SAMPLE_RATE must be > 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
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

// getEnvList splits a comma-separated value, dropping blanks.
func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
