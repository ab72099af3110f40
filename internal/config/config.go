// Package config provides configuration management for Journa.
// It loads settings from environment variables with the JOURNA_ prefix,
// provides sensible defaults, and optionally overlays a YAML config file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration settings for the Journa application.
type Config struct {
	Storage    StorageConfig    `yaml:"storage"`
	LLM        LLMConfig        `yaml:"llm"`
	Categorize CategorizeConfig `yaml:"categorize"`
	Device     DeviceConfig     `yaml:"device"`
}

// StorageConfig contains database and storage configuration.
type StorageConfig struct {
	StorageEngine string `yaml:"engine"`       // Storage engine: sqlite, postgres (default: sqlite)
	DataPath      string `yaml:"data_path"`    // Path to data directory for SQLite (default: ./data)
	PostgresDSN   string `yaml:"postgres_dsn"` // PostgreSQL DSN when engine is postgres
}

// LLMConfig contains LLM provider configuration.
type LLMConfig struct {
	Provider          string  `yaml:"provider"`            // LLM provider: anthropic, openai, ollama (default: anthropic)
	AnthropicAPIKey   string  `yaml:"anthropic_api_key"`   // Anthropic API key
	AnthropicModel    string  `yaml:"anthropic_model"`     // Anthropic model name
	OpenAIAPIKey      string  `yaml:"openai_api_key"`      // OpenAI API key
	OpenAIModel       string  `yaml:"openai_model"`        // OpenAI model name (default: gpt-4)
	OllamaURL         string  `yaml:"ollama_url"`          // Ollama API URL (default: http://localhost:11434)
	OllamaModel       string  `yaml:"ollama_model"`        // Ollama model name (default: qwen2.5:7b)
	RequestsPerMinute float64 `yaml:"requests_per_minute"` // LLM call rate limit (default: 30)
}

// CategorizeConfig toggles the three independent journal extraction calls.
type CategorizeConfig struct {
	People   bool `yaml:"people"`   // Scan for person segments (default: true)
	Calendar bool `yaml:"calendar"` // Scan for date segments (default: true)
	Logs     bool `yaml:"logs"`     // Produce a log summary segment (default: true)
}

// DeviceConfig identifies the device owner for self-reference filtering.
type DeviceConfig struct {
	// DisplayName is the device display name, e.g. "Spencer's iPhone".
	// Owner candidate names are derived from it.
	DisplayName string `yaml:"display_name"`
}

// LoadConfig loads configuration from environment variables with sensible
// defaults. All environment variables use the JOURNA_ prefix.
func LoadConfig() (*Config, error) {
	return buildBaseConfig(), nil
}

// LoadConfigFile loads configuration from environment variables and overlays
// values from a YAML file. File values take precedence over environment
// variables.
func LoadConfigFile(path string) (*Config, error) {
	cfg := buildBaseConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// buildBaseConfig constructs a Config with values from environment variables
// and defaults.
func buildBaseConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			StorageEngine: getEnv("JOURNA_STORAGE_ENGINE", "sqlite"),
			DataPath:      getEnv("JOURNA_DATA_PATH", "./data"),
			PostgresDSN:   getEnv("JOURNA_POSTGRES_DSN", ""),
		},
		LLM: LLMConfig{
			Provider:          getEnv("JOURNA_LLM_PROVIDER", "anthropic"),
			AnthropicAPIKey:   getEnv("JOURNA_ANTHROPIC_API_KEY", ""),
			AnthropicModel:    getEnv("JOURNA_ANTHROPIC_MODEL", ""),
			OpenAIAPIKey:      getEnv("JOURNA_OPENAI_API_KEY", ""),
			OpenAIModel:       getEnv("JOURNA_OPENAI_MODEL", "gpt-4"),
			OllamaURL:         getEnv("JOURNA_OLLAMA_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("JOURNA_OLLAMA_MODEL", "qwen2.5:7b"),
			RequestsPerMinute: getEnvFloat("JOURNA_LLM_REQUESTS_PER_MINUTE", 30),
		},
		Categorize: CategorizeConfig{
			People:   getEnvBool("JOURNA_CATEGORIZE_PEOPLE", true),
			Calendar: getEnvBool("JOURNA_CATEGORIZE_CALENDAR", true),
			Logs:     getEnvBool("JOURNA_CATEGORIZE_LOGS", true),
		},
		Device: DeviceConfig{
			DisplayName: getEnv("JOURNA_DEVICE_NAME", ""),
		},
	}
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns a default
// value when unset or unparseable.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default
// value. It recognizes "true", "1", "yes" as true and "false", "0", "no" as
// false (case-insensitive).
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultValue
}
