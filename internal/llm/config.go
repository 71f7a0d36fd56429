package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds model backend configuration.
type Config struct {
	// Backends is the fallback priority order. Each entry is one of
	// "openai", "anthropic", "gemini", "mock". The first backend serves
	// every request; later entries are tried only when earlier ones fail.
	Backends []string

	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Timeout is the maximum duration for a single model request
	// (including retries). Default: 30s.
	Timeout time.Duration
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional override for OpenAI-compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		Gemini:    GeminiConfig{Model: "gemini-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables.
//
// LINGOZ_LLM_BACKENDS sets the fallback order as a comma-separated
// list ("openai,gemini"). When unset, every backend with a discoverable
// API key joins the chain in the order OpenAI, Anthropic, Gemini.
// OpenAI leads because the speech service shares its key.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	cfg.OpenAI.APIKey = firstEnv("LINGOZ_OPENAI_API_KEY", "OPENAI_API_KEY")
	cfg.Anthropic.APIKey = firstEnv("LINGOZ_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	cfg.Gemini.APIKey = firstEnv("LINGOZ_GEMINI_API_KEY", "GEMINI_API_KEY")

	if m := os.Getenv("LINGOZ_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("LINGOZ_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}
	if m := os.Getenv("LINGOZ_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}
	if m := os.Getenv("LINGOZ_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if b := os.Getenv("LINGOZ_LLM_BACKENDS"); b != "" {
		for _, name := range strings.Split(b, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Backends = append(cfg.Backends, name)
			}
		}
		return cfg
	}

	if cfg.OpenAI.APIKey != "" {
		cfg.Backends = append(cfg.Backends, "openai")
	}
	if cfg.Anthropic.APIKey != "" {
		cfg.Backends = append(cfg.Backends, "anthropic")
	}
	if cfg.Gemini.APIKey != "" {
		cfg.Backends = append(cfg.Backends, "gemini")
	}

	return cfg
}

// Validate checks that every selected backend has its API key set.
func (c Config) Validate() error {
	if len(c.Backends) == 0 {
		return fmt.Errorf("no model backend configured: set OPENAI_API_KEY, ANTHROPIC_API_KEY, or GEMINI_API_KEY")
	}
	for _, b := range c.Backends {
		switch b {
		case "openai":
			if c.OpenAI.APIKey == "" {
				return fmt.Errorf("openai backend selected but no API key set")
			}
		case "anthropic":
			if c.Anthropic.APIKey == "" {
				return fmt.Errorf("anthropic backend selected but no API key set")
			}
		case "gemini":
			if c.Gemini.APIKey == "" {
				return fmt.Errorf("gemini backend selected but no API key set")
			}
		case "mock":
			// No API key needed.
		default:
			return fmt.Errorf("unknown model backend: %q", b)
		}
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
