package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrCredentialMissing is returned when the market-data provider API key
// is not configured. It is fatal at startup: no tool can work without it.
var ErrCredentialMissing = errors.New("market data API key not configured (set POLYGON_API_KEY)")

type Config struct {
	LLMProvider string `json:"llm_provider"`
	Model       string `json:"model"`
	BaseURL     string `json:"base_url"`
	MaxTokens   int    `json:"max_tokens"`

	// AI model API keys
	OpenAIAPIKey   string `json:"openai_api_key"`
	DeepSeekAPIKey string `json:"deepseek_api_key"`

	// Market data provider
	PolygonAPIKey  string `json:"polygon_api_key"`
	PolygonBaseURL string `json:"polygon_base_url"`

	// Agent loop
	MaxToolCalls int  `json:"max_tool_calls"`
	Verbose      bool `json:"verbose"`

	Debug        bool `json:"debug"`
	DebugEnabled bool `json:"debug_enabled"`
	DebugPort    int  `json:"debug_port"`

	UserAgent string `json:"user_agent"`
}

// baseConfig holds the built-in defaults with nothing from the
// environment, so the Manager never persists secrets it did not own.
func baseConfig() Config {
	return Config{
		LLMProvider: "openai",
		Model:       "gpt-4o-mini",
		BaseURL:     "",
		MaxTokens:   8192,

		PolygonBaseURL: "https://api.polygon.io",

		MaxToolCalls: 8,
		Verbose:      false,

		Debug:        false,
		DebugEnabled: false,
		DebugPort:    52538,

		UserAgent: "marketagent/1.0",
	}
}

func DefaultConfig() *Config {
	cfg := baseConfig()

	// Load environment variables from .env file
	_ = godotenv.Load()

	// Override with environment variables if they exist
	cfg.loadFromEnv()

	return &cfg
}

// Load builds the runtime configuration through the file-backed Manager:
// the persisted file is the base, and .env plus the process environment
// override it for this run. The Manager is returned so the caller can
// persist changes and watch for on-disk edits.
func Load(opts ...ManagerOption) (*Manager, *Config, error) {
	mgr, err := NewManager(opts...)
	if err != nil {
		return nil, nil, err
	}
	_ = godotenv.Load()
	return mgr, mgr.Effective(), nil
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("LLM_PROVIDER"); val != "" {
		c.LLMProvider = val
	}
	if val := os.Getenv("LLM_MODEL"); val != "" {
		c.Model = val
	}
	if val := os.Getenv("LLM_BASE_URL"); val != "" {
		c.BaseURL = val
	}
	if val := os.Getenv("LLM_MAX_TOKENS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.MaxTokens = v
		}
	}

	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		c.OpenAIAPIKey = val
	}
	if val := os.Getenv("DEEPSEEK_API_KEY"); val != "" {
		c.DeepSeekAPIKey = val
	}

	if val := os.Getenv("POLYGON_API_KEY"); val != "" {
		c.PolygonAPIKey = val
	}
	if val := os.Getenv("POLYGON_BASE_URL"); val != "" {
		c.PolygonBaseURL = val
	}

	if val := os.Getenv("MAX_TOOL_CALLS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.MaxToolCalls = v
		}
	}
	if val := os.Getenv("VERBOSE"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Verbose = enabled
		}
	}

	if val := os.Getenv("MARKETAGENT_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
	if val := os.Getenv("EINO_DEBUG_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.DebugEnabled = enabled
		}
	}
	if val := os.Getenv("EINO_DEBUG_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.DebugPort = port
		}
	}
}

// Validate checks structural sanity of the configuration. Credential
// presence is checked separately by ValidateCredentials so that a config
// file without secrets still round-trips through the Manager.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LLMProvider) {
	case "openai", "deepseek":
	default:
		return fmt.Errorf("unsupported llm provider %q", c.LLMProvider)
	}
	if c.MaxToolCalls <= 0 {
		return fmt.Errorf("max_tool_calls must be positive, got %d", c.MaxToolCalls)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if strings.TrimSpace(c.PolygonBaseURL) == "" {
		return fmt.Errorf("polygon_base_url must not be empty")
	}
	return nil
}

// ValidateCredentials checks the secrets needed for a live run.
func (c *Config) ValidateCredentials() error {
	if strings.TrimSpace(c.PolygonAPIKey) == "" {
		return ErrCredentialMissing
	}
	switch strings.ToLower(c.LLMProvider) {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY not set for provider openai")
		}
	case "deepseek":
		if c.DeepSeekAPIKey == "" {
			return fmt.Errorf("DEEPSEEK_API_KEY not set for provider deepseek")
		}
	}
	return nil
}
