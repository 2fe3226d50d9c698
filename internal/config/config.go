// Package config provides application configuration with multi-source
// priority: environment variables override the config file
// (~/.sathi/config.yaml), which overrides built-in defaults.
//
// Validation is fail-fast at load time, with sentinel errors for
// errors.Is checks. Sensitive values (API keys) stay in the environment
// and are never written to the config struct.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AI provider identifiers used in Config.Provider.
const (
	ProviderGoogleAI = "googleai"
	ProviderOllama   = "ollama"
	ProviderOpenAI   = "openai"
)

// Defaults for the generation and retrieval contract.
const (
	DefaultModelName     = "gemini-2.5-flash"
	DefaultEmbedderModel = "gemini-embedding-001"
	DefaultTemperature   = 0.7
	DefaultMaxTokens     = 500
	DefaultRetrievalK    = 3
	DefaultAddr          = "127.0.0.1:5000"
	DefaultMaxSessions   = 1000
)

// Config stores application configuration.
type Config struct {
	// AI provider and model configuration
	Provider    string  `mapstructure:"provider"`
	ModelName   string  `mapstructure:"model_name"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`

	// Embedding / retrieval configuration
	EmbedderModel string `mapstructure:"embedder_model"`
	RetrievalK    int    `mapstructure:"retrieval_k"`

	// Ollama configuration (only used when provider is "ollama")
	OllamaHost string `mapstructure:"ollama_host"`

	// Timeouts, in seconds
	GenerationTimeoutSec int `mapstructure:"generation_timeout"`
	SearchTimeoutSec     int `mapstructure:"search_timeout"`

	// Session store bound
	MaxSessions int `mapstructure:"max_sessions"`

	// HTTP server
	Addr string `mapstructure:"addr"`

	// Rate limiting (requests per second; 0 disables)
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`

	// Logging
	LogLevel string `mapstructure:"log_level"`
	LogJSON  bool   `mapstructure:"log_json"`

	// Tracing (OTLP HTTP; empty endpoint disables)
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	ServiceName  string `mapstructure:"service_name"`
	Environment  string `mapstructure:"environment"`
}

// GenerationTimeout returns the generation timeout as a duration.
func (c *Config) GenerationTimeout() time.Duration {
	return time.Duration(c.GenerationTimeoutSec) * time.Second
}

// SearchTimeout returns the embed+search timeout as a duration.
func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.SearchTimeoutSec) * time.Second
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".sathi")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("SATHI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", ProviderGoogleAI)
	v.SetDefault("model_name", DefaultModelName)
	v.SetDefault("temperature", DefaultTemperature)
	v.SetDefault("max_tokens", DefaultMaxTokens)

	v.SetDefault("embedder_model", DefaultEmbedderModel)
	v.SetDefault("retrieval_k", DefaultRetrievalK)

	v.SetDefault("ollama_host", "http://localhost:11434")

	v.SetDefault("generation_timeout", 60)
	v.SetDefault("search_timeout", 10)

	v.SetDefault("max_sessions", DefaultMaxSessions)

	v.SetDefault("addr", DefaultAddr)

	v.SetDefault("rate_limit", 0.0)
	v.SetDefault("rate_burst", 10)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)

	v.SetDefault("otlp_endpoint", "")
	v.SetDefault("service_name", "sathi")
	v.SetDefault("environment", "dev")
}
