package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a configuration that passes validation; tests
// mutate single fields from here.
func validConfig() *Config {
	return &Config{
		Provider:             ProviderGoogleAI,
		ModelName:            DefaultModelName,
		EmbedderModel:        DefaultEmbedderModel,
		Temperature:          DefaultTemperature,
		MaxTokens:            DefaultMaxTokens,
		RetrievalK:           DefaultRetrievalK,
		GenerationTimeoutSec: 60,
		SearchTimeoutSec:     10,
		MaxSessions:          DefaultMaxSessions,
		Addr:                 DefaultAddr,
		LogLevel:             "info",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:   "ollama provider",
			mutate: func(c *Config) { c.Provider = ProviderOllama },
		},
		{
			name:   "openai provider",
			mutate: func(c *Config) { c.Provider = ProviderOpenAI },
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Provider = "anthropic" },
			wantErr: ErrInvalidProvider,
		},
		{
			name:    "empty provider",
			mutate:  func(c *Config) { c.Provider = "" },
			wantErr: ErrInvalidProvider,
		},
		{
			name:    "empty model name",
			mutate:  func(c *Config) { c.ModelName = "" },
			wantErr: ErrInvalidModelName,
		},
		{
			name:    "empty embedder model",
			mutate:  func(c *Config) { c.EmbedderModel = "" },
			wantErr: ErrInvalidEmbedderModel,
		},
		{
			name:    "negative temperature",
			mutate:  func(c *Config) { c.Temperature = -0.1 },
			wantErr: ErrInvalidTemperature,
		},
		{
			name:    "temperature above limit",
			mutate:  func(c *Config) { c.Temperature = 2.5 },
			wantErr: ErrInvalidTemperature,
		},
		{
			name:   "temperature at limit",
			mutate: func(c *Config) { c.Temperature = 2.0 },
		},
		{
			name:    "zero max tokens",
			mutate:  func(c *Config) { c.MaxTokens = 0 },
			wantErr: ErrInvalidMaxTokens,
		},
		{
			name:    "max tokens above limit",
			mutate:  func(c *Config) { c.MaxTokens = 10000 },
			wantErr: ErrInvalidMaxTokens,
		},
		{
			name:    "zero retrieval k",
			mutate:  func(c *Config) { c.RetrievalK = 0 },
			wantErr: ErrInvalidRetrievalK,
		},
		{
			name:    "retrieval k above limit",
			mutate:  func(c *Config) { c.RetrievalK = 51 },
			wantErr: ErrInvalidRetrievalK,
		},
		{
			name:    "zero generation timeout",
			mutate:  func(c *Config) { c.GenerationTimeoutSec = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "zero search timeout",
			mutate:  func(c *Config) { c.SearchTimeoutSec = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "zero max sessions",
			mutate:  func(c *Config) { c.MaxSessions = 0 },
			wantErr: ErrInvalidMaxSessions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateNil(t *testing.T) {
	var cfg *Config
	assert.ErrorIs(t, cfg.Validate(), ErrConfigNil)
}

func TestConfig_TimeoutHelpers(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, 60*time.Second, cfg.GenerationTimeout())
	assert.Equal(t, 10*time.Second, cfg.SearchTimeout())
}

func TestLoad_Defaults(t *testing.T) {
	// Isolate from any real config file in the home directory.
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderGoogleAI, cfg.Provider)
	assert.Equal(t, DefaultModelName, cfg.ModelName)
	assert.Equal(t, DefaultEmbedderModel, cfg.EmbedderModel)
	assert.InDelta(t, DefaultTemperature, cfg.Temperature, 1e-9)
	assert.Equal(t, DefaultMaxTokens, cfg.MaxTokens)
	assert.Equal(t, DefaultRetrievalK, cfg.RetrievalK)
	assert.Equal(t, DefaultMaxSessions, cfg.MaxSessions)
	assert.Equal(t, DefaultAddr, cfg.Addr)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SATHI_MODEL_NAME", "gemini-2.5-pro")
	t.Setenv("SATHI_MAX_TOKENS", "800")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-pro", cfg.ModelName)
	assert.Equal(t, 800, cfg.MaxTokens)
}

func TestLoad_InvalidEnvFailsFast(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SATHI_PROVIDER", "nonsense")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidProvider)
}
