// Package cmd implements the sathi command line interface.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/arogyasathi/sathi/internal/config"
	"github.com/arogyasathi/sathi/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "sathi",
	Short: "Arogya Sathi - AI health assistant for rural communities",
	Long: `Arogya Sathi is a retrieval-augmented health assistant.

It answers symptom questions grounded in a curated medical knowledge
base, classifies the risk level of each exchange, and keeps
conversation context per session.

Run 'sathi serve' to start the HTTP API, or 'sathi ask' for a
one-shot question from the terminal.`,
	SilenceUsage: true,
}

// Execute runs the root command. It is the single entry point called
// from main.
func Execute() error {
	// Best effort: a missing .env file is not an error.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

// loadConfig loads and validates configuration, then installs the
// configured logger as the process default.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	logger := log.New(log.Config{
		Level: log.ParseLevel(cfg.LogLevel),
		JSON:  cfg.LogJSON,
	})
	slog.SetDefault(logger)

	if err := checkRequiredEnv(cfg); err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}

// checkRequiredEnv verifies provider credentials are present before any
// network setup happens, so the failure is a clear message instead of a
// late API error.
func checkRequiredEnv(cfg *config.Config) error {
	switch cfg.Provider {
	case config.ProviderGoogleAI:
		if os.Getenv("GEMINI_API_KEY") == "" && os.Getenv("GOOGLE_API_KEY") == "" {
			fmt.Fprintln(os.Stderr, "Error: GEMINI_API_KEY environment variable not set")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "To set your API key:")
			fmt.Fprintln(os.Stderr, "  export GEMINI_API_KEY=your-api-key")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Get your API key at: https://ai.google.dev/")
			return fmt.Errorf("GEMINI_API_KEY not set")
		}
	case config.ProviderOpenAI:
		if os.Getenv("OPENAI_API_KEY") == "" {
			return fmt.Errorf("OPENAI_API_KEY not set")
		}
	}
	// Ollama needs no credentials.
	return nil
}
