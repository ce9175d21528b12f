package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system:
// the HTTP server, the Sectors financial-data API, the LLM provider, and the agent
// runtime itself.
//
// Example YAML/ENV equivalent:
//
//	SERVER_PORT=8080
//	SECTORS_API_KEY=sk-...
//	SECTORS_BASE_URL=https://api.sectors.app
//	GROQ_API_KEY=gsk-...
//	GROQ_MODEL=llama-3.3-70b-versatile
type Config struct {
	Server  ServerConfig  // HTTP server configuration
	Sectors SectorsConfig // Upstream financial-data API settings
	LLM     LLMConfig     // Language-model provider settings
	Agent   AgentConfig   // Agent runtime tunables
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port               string // The TCP port the HTTP server will listen on (e.g., "8080")
	RateLimitPerMinute int    // Max requests per client IP per minute
}

// SectorsConfig defines how the endpoint client reaches the Sectors API.
//
// Fields:
//   - APIKey: static bearer credential attached to every request.
//   - BaseURL: scheme + host of the provider (default https://api.sectors.app).
//   - Timeout: per-request timeout for upstream calls.
type SectorsConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// LLMConfig defines the OpenAI-compatible chat-completions provider used to run
// the agent. Defaults target Groq's endpoint, but any compatible vendor works.
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// AgentConfig holds agent runtime tunables.
//
// Fields:
//   - MaxTurns: ceiling on model invocations per chat turn.
//   - MaxLookaheadDays: how many consecutive calendar days the trading-day
//     resolver may probe before giving up.
type AgentConfig struct {
	MaxTurns         int
	MaxLookaheadDays int
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	viper.SetDefault("SECTORS_BASE_URL", "https://api.sectors.app")
	viper.SetDefault("SECTORS_TIMEOUT_SECONDS", 15)

	viper.SetDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1")
	viper.SetDefault("GROQ_MODEL", "llama-3.3-70b-versatile")

	viper.SetDefault("AGENT_MAX_TURNS", 10)
	viper.SetDefault("MAX_LOOKAHEAD_DAYS", 7)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Sectors: SectorsConfig{
			APIKey:  viper.GetString("SECTORS_API_KEY"),
			BaseURL: viper.GetString("SECTORS_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("SECTORS_TIMEOUT_SECONDS")) * time.Second,
		},
		LLM: LLMConfig{
			APIKey:  viper.GetString("GROQ_API_KEY"),
			BaseURL: viper.GetString("GROQ_BASE_URL"),
			Model:   viper.GetString("GROQ_MODEL"),
		},
		Agent: AgentConfig{
			MaxTurns:         viper.GetInt("AGENT_MAX_TURNS"),
			MaxLookaheadDays: viper.GetInt("MAX_LOOKAHEAD_DAYS"),
		},
	}

	// Validate critical fields
	validateConfig()
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// This avoids unexpected runtime failures due to incomplete configuration.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Sectors.APIKey == "" {
		missing = append(missing, "SECTORS_API_KEY")
	}
	if AppConfig.Sectors.BaseURL == "" {
		missing = append(missing, "SECTORS_BASE_URL")
	}
	if AppConfig.LLM.APIKey == "" {
		missing = append(missing, "GROQ_API_KEY")
	}
	if AppConfig.LLM.Model == "" {
		missing = append(missing, "GROQ_MODEL")
	}
	if AppConfig.Agent.MaxLookaheadDays < 1 {
		missing = append(missing, "MAX_LOOKAHEAD_DAYS")
	}

	if len(missing) > 0 {
		log.Fatalf("missing or invalid required environment variables: %v", missing)
	}
}

// String returns a redacted, human-readable rendering of the config, safe for logs.
func (c Config) String() string {
	return fmt.Sprintf("server=:%s sectors=%s llm=%s model=%s lookahead=%d",
		c.Server.Port, c.Sectors.BaseURL, c.LLM.BaseURL, c.LLM.Model, c.Agent.MaxLookaheadDays)
}
