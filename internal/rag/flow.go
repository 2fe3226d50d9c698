package rag

import (
	"context"
	"fmt"
	"sync"

	"github.com/firebase/genkit/go/core"
	"github.com/firebase/genkit/go/genkit"
	"github.com/google/uuid"

	"github.com/arogyasathi/sathi/internal/session"
)

// FlowName is the registered name of the chat flow in Genkit.
const FlowName = "sathi/chat"

// Input is the request payload for the chat flow. SessionID may be empty;
// a fresh UUID is minted and echoed back in the output.
type Input struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

// Output is the response payload from the chat flow.
type Output struct {
	Response    string   `json:"response"`
	SessionID   string   `json:"sessionId"`
	RiskLevel   Severity `json:"riskLevel"`
	ContextUsed []string `json:"contextUsed"`
	Sources     int      `json:"sources"`
}

// Flow is the chat flow type, exported for use with genkit.Handler.
type Flow = core.Flow[Input, Output, struct{}]

// Flow registration is process-global in Genkit and re-registration
// panics, so the flow is a guarded singleton.
var (
	flowOnce sync.Once
	flow     *Flow
)

// NewFlow returns the chat flow singleton, defining it on first call.
// Later calls return the existing flow and ignore the arguments.
func NewFlow(g *genkit.Genkit, generator *Generator, sessions *session.Store) *Flow {
	flowOnce.Do(func() {
		flow = defineFlow(g, generator, sessions)
	})
	return flow
}

// ResetFlowForTesting clears the flow singleton so tests can register
// against a fresh Genkit instance. Not safe for concurrent use.
func ResetFlowForTesting() {
	flowOnce = sync.Once{}
	flow = nil
}

// defineFlow registers the chat flow: resolve the session, run the
// generator, and return the annotated result.
func defineFlow(g *genkit.Genkit, generator *Generator, sessions *session.Store) *Flow {
	return genkit.DefineFlow(g, FlowName,
		func(ctx context.Context, input Input) (Output, error) {
			sessionID := input.SessionID
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			sess, err := sessions.GetOrCreate(sessionID)
			if err != nil {
				return Output{SessionID: sessionID}, fmt.Errorf("resolving session: %w", err)
			}

			result, err := generator.Generate(ctx, input.Message, sess)
			if err != nil {
				return Output{SessionID: sessionID}, err
			}

			return Output{
				Response:    result.Response,
				SessionID:   sessionID,
				RiskLevel:   result.Severity,
				ContextUsed: result.ContextUsed,
				Sources:     result.SourcesCount,
			}, nil
		},
	)
}
