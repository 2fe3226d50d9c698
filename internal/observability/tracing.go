// Package observability wires optional OTLP trace export into Genkit's
// tracer provider.
package observability

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/firebase/genkit/go/core/tracing"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const shutdownTimeout = 5 * time.Second

// Config selects the OTLP collector. An empty Endpoint disables tracing.
type Config struct {
	Endpoint    string // host:port of an OTLP HTTP collector
	ServiceName string
	Environment string
}

// SetupTracing registers an OTLP span exporter on Genkit's tracer
// provider and returns a shutdown function. Must run before genkit.Init
// so the provider is ready when Genkit starts tracing. Failure to reach
// the collector disables tracing rather than failing startup.
func SetupTracing(ctx context.Context, cfg Config, logger *slog.Logger) func() {
	if cfg.Endpoint == "" {
		return func() {}
	}
	if logger == nil {
		logger = slog.Default()
	}

	// Genkit's TracerProvider reads service identity from OTEL env vars.
	// Safe here: called once during startup before goroutines spawn.
	if cfg.ServiceName != "" {
		_ = os.Setenv("OTEL_SERVICE_NAME", cfg.ServiceName)
	}
	if cfg.Environment != "" {
		_ = os.Setenv("OTEL_RESOURCE_ATTRIBUTES", "deployment.environment="+cfg.Environment)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		logger.Warn("creating OTLP exporter, tracing disabled", "error", err)
		return func() {}
	}

	processor := sdktrace.NewBatchSpanProcessor(exporter)
	tracing.TracerProvider().RegisterSpanProcessor(processor)

	logger.Debug("tracing enabled",
		"endpoint", cfg.Endpoint,
		"service", cfg.ServiceName,
		"environment", cfg.Environment,
	)

	shutdown := tracing.TracerProvider().Shutdown

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("shutting down tracer provider", "error", err)
		}
	}
}
