package rag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/arogyasathi/sathi/internal/knowledge"
	"github.com/arogyasathi/sathi/internal/session"
)

// Generation defaults, matching the documented call contract.
const (
	DefaultTemperature       = 0.7
	DefaultMaxTokens         = 500
	DefaultGenerationTimeout = 60 * time.Second

	// contextPreviewRunes bounds the per-document previews exposed in
	// Result.ContextUsed for caller-side auditing.
	contextPreviewRunes = 100
)

// promptGuidelines is the fixed behavioral portion of the system
// instruction, appended after the retrieved knowledge on every call.
const promptGuidelines = `GUIDELINES:
- Use the retrieved medical knowledge to inform your responses
- Provide empathetic, evidence-based health guidance
- Use simple, culturally appropriate language
- Always include safety disclaimers for serious symptoms
- Never diagnose - only provide general health information
- Encourage professional consultation for concerning symptoms

Remember: You're a guide to help people make informed decisions, not a replacement for doctors.`

// GeneratorConfig carries the fixed generation parameters.
type GeneratorConfig struct {
	ModelName   string        // provider-qualified model name
	Temperature float64       // sampling temperature
	MaxTokens   int           // response token cap
	Timeout     time.Duration // caller-visible generation timeout
}

// withDefaults fills zero values with the documented defaults.
func (c GeneratorConfig) withDefaults() GeneratorConfig {
	if c.Temperature == 0 {
		c.Temperature = DefaultTemperature
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultGenerationTimeout
	}
	return c
}

// Result is the annotated outcome of one generate call.
type Result struct {
	Response     string   `json:"response"`
	Severity     Severity `json:"severity"`
	ContextUsed  []string `json:"contextUsed"`
	SourcesCount int      `json:"sources"`
}

// Generator assembles retrieved context and conversation history into a
// generation request and post-processes the result with the classifier.
//
// Generator is stateless across calls and safe for concurrent use; all
// mutable state lives in the sessions it is handed.
type Generator struct {
	g          *genkit.Genkit
	retriever  *Retriever
	classifier *Classifier
	cfg        GeneratorConfig
	logger     *slog.Logger
}

// NewGenerator creates a Generator. The Genkit instance carries the
// registered generation model named by cfg.ModelName.
func NewGenerator(g *genkit.Genkit, retriever *Retriever, classifier *Classifier, cfg GeneratorConfig, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		g:          g,
		retriever:  retriever,
		classifier: classifier,
		cfg:        cfg.withDefaults(),
		logger:     logger,
	}
}

// Generate runs the full pipeline for one user query against a session:
// retrieve, assemble, generate, classify, append.
//
// The session is mutated only after generation succeeds, in a single
// append of the (user, assistant) pair; any failure leaves the transcript
// untouched. Prior turns are snapshotted before the model call, so a
// concurrent exchange completing mid-call is simply not part of this
// call's context.
func (gen *Generator) Generate(ctx context.Context, query string, sess *session.Session) (*Result, error) {
	retrieved, err := gen.retriever.Retrieve(ctx, query, 0)
	if err != nil {
		return nil, err
	}

	history := sess.Turns()
	messages := make([]*ai.Message, 0, len(history)+1)
	for _, turn := range history {
		switch turn.Role {
		case session.RoleAssistant:
			messages = append(messages, ai.NewModelMessage(ai.NewTextPart(turn.Content)))
		default:
			messages = append(messages, ai.NewUserMessage(ai.NewTextPart(turn.Content)))
		}
	}
	messages = append(messages, ai.NewUserMessage(ai.NewTextPart(query)))

	genCtx, cancel := context.WithTimeout(ctx, gen.cfg.Timeout)
	defer cancel()

	resp, err := genkit.Generate(genCtx, gen.g,
		ai.WithModelName(gen.cfg.ModelName),
		ai.WithSystem(buildSystemInstruction(retrieved)),
		ai.WithMessages(messages...),
		ai.WithConfig(&ai.GenerationCommonConfig{
			Temperature:     gen.cfg.Temperature,
			MaxOutputTokens: gen.cfg.MaxTokens,
		}),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: generation timed out: %w", ErrGenerationFailure, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailure, err)
	}

	responseText := strings.TrimSpace(resp.Text())
	if responseText == "" {
		return nil, fmt.Errorf("%w: model returned empty response", ErrGenerationFailure)
	}

	severity := gen.classifier.Classify(query, responseText, retrieved)

	sess.AppendExchange(query, responseText)

	gen.logger.Debug("generated response",
		"session", sess.ID(),
		"severity", severity,
		"sources", len(retrieved),
		"response_length", len(responseText),
	)

	return &Result{
		Response:     responseText,
		Severity:     severity,
		ContextUsed:  contextPreviews(retrieved),
		SourcesCount: len(retrieved),
	}, nil
}

// buildSystemInstruction composes the system instruction from the
// retrieved passages followed by the fixed guidelines. It is rebuilt on
// every call because the retrieved content varies by query.
func buildSystemInstruction(retrieved []knowledge.RetrievedContext) string {
	var sb strings.Builder
	sb.WriteString("You are Arogya Sathi, a compassionate AI health assistant for rural India.\n\n")

	if len(retrieved) > 0 {
		sb.WriteString("RETRIEVED MEDICAL KNOWLEDGE:\n")
		for i, doc := range retrieved {
			fmt.Fprintf(&sb, "Medical Knowledge %d:\n%s\n\n", i+1, doc.Text)
		}
	}

	sb.WriteString(promptGuidelines)
	return sb.String()
}

// contextPreviews returns bounded previews of the retrieved texts.
func contextPreviews(retrieved []knowledge.RetrievedContext) []string {
	previews := make([]string, 0, len(retrieved))
	for _, doc := range retrieved {
		runes := []rune(doc.Text)
		if len(runes) > contextPreviewRunes {
			previews = append(previews, string(runes[:contextPreviewRunes])+"...")
		} else {
			previews = append(previews, doc.Text)
		}
	}
	return previews
}
