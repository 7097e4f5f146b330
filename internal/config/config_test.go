package config

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("POLYGON_API_KEY", "")
	t.Setenv("MAX_TOOL_CALLS", "")

	cfg := DefaultConfig()
	if cfg.LLMProvider != "openai" {
		t.Errorf("expected default provider openai, got %s", cfg.LLMProvider)
	}
	if cfg.MaxToolCalls != 8 {
		t.Errorf("expected default max tool calls 8, got %d", cfg.MaxToolCalls)
	}
	if cfg.PolygonBaseURL == "" {
		t.Error("expected non-empty polygon base URL")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "deepseek")
	t.Setenv("LLM_MODEL", "deepseek-chat")
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	t.Setenv("POLYGON_API_KEY", "pk-test")
	t.Setenv("MAX_TOOL_CALLS", "3")
	t.Setenv("VERBOSE", "true")

	cfg := DefaultConfig()
	if cfg.LLMProvider != "deepseek" {
		t.Errorf("expected provider deepseek, got %s", cfg.LLMProvider)
	}
	if cfg.Model != "deepseek-chat" {
		t.Errorf("expected model deepseek-chat, got %s", cfg.Model)
	}
	if cfg.PolygonAPIKey != "pk-test" {
		t.Errorf("expected polygon key from env, got %q", cfg.PolygonAPIKey)
	}
	if cfg.MaxToolCalls != 3 {
		t.Errorf("expected max tool calls 3, got %d", cfg.MaxToolCalls)
	}
	if !cfg.Verbose {
		t.Error("expected verbose true")
	}
	if err := cfg.ValidateCredentials(); err != nil {
		t.Errorf("credentials should validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLMProvider = "llama-on-a-floppy"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unsupported provider")
	}

	cfg = DefaultConfig()
	cfg.MaxToolCalls = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero tool call budget")
	}
}

func TestValidateCredentialsMissingKey(t *testing.T) {
	t.Setenv("POLYGON_API_KEY", "")

	cfg := DefaultConfig()
	cfg.PolygonAPIKey = ""
	err := cfg.ValidateCredentials()
	if !errors.Is(err, ErrCredentialMissing) {
		t.Errorf("expected ErrCredentialMissing, got %v", err)
	}
}
