package cmd

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/arogyasathi/sathi/internal/app"
	"github.com/arogyasathi/sathi/internal/session"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-shot health question from the terminal",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			logger.Warn("shutdown error", "error", closeErr)
		}
	}()

	question := strings.TrimSpace(strings.Join(args, " "))
	sess := session.New(uuid.NewString())

	result, err := a.Generator.Generate(ctx, question, sess)
	if err != nil {
		return fmt.Errorf("analyzing symptoms: %w", err)
	}

	fmt.Println(result.Response)
	fmt.Println()
	fmt.Printf("Risk level: %s (sources: %d)\n", result.Severity, result.SourcesCount)

	return nil
}
