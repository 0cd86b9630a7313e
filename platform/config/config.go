// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetRateLimitPerMinute() float64
	GetRateLimitBurst() int
}

// AIConfig provides settings for the generative AI backend.
// The credential is only ever supplied through the environment.
type AIConfig interface {
	GetAIProvider() string
	GetAIAPIKey() string
	GetAIBaseURL() string
	GetAIModel() string
	GetAITimeout() time.Duration
	IsAIEnabled() bool
}

// EngineConfig provides settings for the estimation engine.
type EngineConfig interface {
	GetAITimeout() time.Duration
	GetMatchLimit() int
}

// HeuristicConfig provides settings for the deterministic fallback tables.
type HeuristicConfig interface {
	GetHeuristicTablesFile() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// AI provider identifiers accepted in AI_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderOff    = "off"
)

// Config holds all application configuration values.
type Config struct {
	Env                 string
	HTTPAddr            string
	CORSAllowAll        bool
	CORSOrigins         []string
	RateLimitPerMinute  float64
	RateLimitBurst      int
	AIProvider          string
	AIAPIKey            string
	AIBaseURL           string
	AIModel             string
	AITimeout           time.Duration
	MatchLimit          int
	HeuristicTablesFile string
}

// Load reads configuration from the environment, with .env support for
// development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:        corsAllowAll,
		CORSOrigins:         corsOrigins,
		RateLimitPerMinute:  mustFloat(getEnv("RATE_LIMIT_PER_MINUTE", "120")),
		RateLimitBurst:      mustInt(getEnv("RATE_LIMIT_BURST", "30")),
		AIProvider:          strings.ToLower(getEnv("AI_PROVIDER", ProviderOpenAI)),
		AIAPIKey:            getEnv("AI_API_KEY", ""),
		AIBaseURL:           getEnv("AI_BASE_URL", ""),
		AIModel:             getEnv("AI_MODEL", ""),
		AITimeout:           mustDuration(getEnv("AI_TIMEOUT", "12s")),
		MatchLimit:          mustInt(getEnv("MATCH_LIMIT_DEFAULT", "10")),
		HeuristicTablesFile: getEnv("HEURISTIC_TABLES_FILE", ""),
	}

	switch cfg.AIProvider {
	case ProviderOpenAI, ProviderGemini, ProviderOff:
	default:
		return nil, fmt.Errorf("AI_PROVIDER must be one of openai, gemini, off; got %q", cfg.AIProvider)
	}
	if cfg.AITimeout <= 0 {
		return nil, fmt.Errorf("AI_TIMEOUT must be a positive duration")
	}
	if cfg.MatchLimit <= 0 {
		return nil, fmt.Errorf("MATCH_LIMIT_DEFAULT must be positive")
	}

	return cfg, nil
}

// Interface implementations.

func (c *Config) GetHTTPAddr() string            { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool          { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string       { return c.CORSOrigins }
func (c *Config) GetRateLimitPerMinute() float64 { return c.RateLimitPerMinute }
func (c *Config) GetRateLimitBurst() int         { return c.RateLimitBurst }

func (c *Config) GetAIProvider() string       { return c.AIProvider }
func (c *Config) GetAIAPIKey() string         { return c.AIAPIKey }
func (c *Config) GetAIBaseURL() string        { return c.AIBaseURL }
func (c *Config) GetAIModel() string          { return c.AIModel }
func (c *Config) GetAITimeout() time.Duration { return c.AITimeout }

// IsAIEnabled reports whether the AI path is configured. Without a key the
// engine still works; every call takes the heuristic path.
func (c *Config) IsAIEnabled() bool {
	return c.AIProvider != ProviderOff && c.AIAPIKey != ""
}

func (c *Config) GetMatchLimit() int             { return c.MatchLimit }
func (c *Config) GetHeuristicTablesFile() string { return c.HeuristicTablesFile }

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func mustFloat(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
