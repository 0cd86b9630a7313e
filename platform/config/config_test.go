package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AI_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.AIProvider != ProviderOpenAI {
		t.Errorf("AIProvider = %q", cfg.AIProvider)
	}
	if cfg.AITimeout != 12*time.Second {
		t.Errorf("AITimeout = %v", cfg.AITimeout)
	}
	if cfg.MatchLimit != 10 {
		t.Errorf("MatchLimit = %d", cfg.MatchLimit)
	}
	if cfg.IsAIEnabled() {
		t.Errorf("AI enabled without an API key")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AI_PROVIDER", "GEMINI")
	t.Setenv("AI_API_KEY", "secret")
	t.Setenv("AI_TIMEOUT", "3s")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "60")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AIProvider != ProviderGemini {
		t.Errorf("AIProvider = %q, want lowered %q", cfg.AIProvider, ProviderGemini)
	}
	if !cfg.IsAIEnabled() {
		t.Errorf("AI should be enabled with a key present")
	}
	if cfg.AITimeout != 3*time.Second {
		t.Errorf("AITimeout = %v", cfg.AITimeout)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("AI_PROVIDER", "skynet")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestLoadWildcardOriginEnablesAllowAll(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "*")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.CORSAllowAll {
		t.Fatalf("wildcard origin should enable allow-all")
	}
}

func TestProviderOffDisablesAI(t *testing.T) {
	t.Setenv("AI_PROVIDER", "off")
	t.Setenv("AI_API_KEY", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IsAIEnabled() {
		t.Fatalf("provider off must disable AI even with a key")
	}
}
