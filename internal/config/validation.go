package config

import (
	"errors"
	"fmt"
)

// Sentinel validation errors, checked with errors.Is.
var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrInvalidProvider indicates the AI provider is not supported.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidModelName indicates the model name is empty.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidEmbedderModel indicates the embedder model is empty.
	ErrInvalidEmbedderModel = errors.New("invalid embedder model")

	// ErrInvalidTemperature indicates the temperature is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidMaxTokens indicates the max tokens value is out of range.
	ErrInvalidMaxTokens = errors.New("invalid max tokens")

	// ErrInvalidRetrievalK indicates retrieval_k is not positive.
	ErrInvalidRetrievalK = errors.New("invalid retrieval k")

	// ErrInvalidTimeout indicates a timeout value is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrInvalidMaxSessions indicates the session bound is not positive.
	ErrInvalidMaxSessions = errors.New("invalid max sessions")
)

// Limits applied during validation.
const (
	maxTemperature = 2.0
	maxMaxTokens   = 8192
	maxRetrievalK  = 50
)

// Validate checks the configuration for out-of-range values. It runs at
// load time so misconfiguration fails before any traffic is served.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	switch c.Provider {
	case ProviderGoogleAI, ProviderOllama, ProviderOpenAI:
	default:
		return fmt.Errorf("%w: %q (supported: googleai, ollama, openai)", ErrInvalidProvider, c.Provider)
	}

	if c.ModelName == "" {
		return fmt.Errorf("%w: model name must not be empty", ErrInvalidModelName)
	}
	if c.EmbedderModel == "" {
		return fmt.Errorf("%w: embedder model must not be empty", ErrInvalidEmbedderModel)
	}

	if c.Temperature < 0 || c.Temperature > maxTemperature {
		return fmt.Errorf("%w: %v not in [0, %v]", ErrInvalidTemperature, c.Temperature, maxTemperature)
	}
	if c.MaxTokens < 1 || c.MaxTokens > maxMaxTokens {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidMaxTokens, c.MaxTokens, maxMaxTokens)
	}
	if c.RetrievalK < 1 || c.RetrievalK > maxRetrievalK {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidRetrievalK, c.RetrievalK, maxRetrievalK)
	}

	if c.GenerationTimeoutSec < 1 {
		return fmt.Errorf("%w: generation_timeout must be at least 1s", ErrInvalidTimeout)
	}
	if c.SearchTimeoutSec < 1 {
		return fmt.Errorf("%w: search_timeout must be at least 1s", ErrInvalidTimeout)
	}

	if c.MaxSessions < 1 {
		return fmt.Errorf("%w: max_sessions must be positive", ErrInvalidMaxSessions)
	}

	return nil
}
