// Package app constructs and owns the application object graph.
//
// Everything is built explicitly at startup with injected dependencies:
// no lazy global singletons, no construct-on-first-use. Test setups build
// the same graph with mock capabilities from internal/testutil.
package app

import (
	"log/slog"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/arogyasathi/sathi/internal/config"
	"github.com/arogyasathi/sathi/internal/knowledge"
	"github.com/arogyasathi/sathi/internal/rag"
	"github.com/arogyasathi/sathi/internal/session"
)

// App holds the assembled application components.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	Genkit   *genkit.Genkit
	Embedder ai.Embedder

	Knowledge  *knowledge.Store
	Retriever  *rag.Retriever
	Classifier *rag.Classifier
	Generator  *rag.Generator
	Sessions   *session.Store

	otelCleanup func()
}

// Close releases resources held by the App. Safe to call on a partially
// initialized App (Setup calls it on failure).
func (a *App) Close() error {
	if a.otelCleanup != nil {
		a.otelCleanup()
		a.otelCleanup = nil
	}
	return nil
}
