package rag

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyasathi/sathi/internal/knowledge"
	"github.com/arogyasathi/sathi/internal/session"
	"github.com/arogyasathi/sathi/internal/testutil"
)

// pipeline bundles a fully wired generator with its test doubles.
type pipeline struct {
	generator *Generator
	llm       *testutil.MockLLM
	embedder  *testutil.MockEmbedder
	store     *knowledge.Store
}

// newTestPipeline wires the generator against mock model and embedder.
// seed controls whether the reference corpus is indexed.
func newTestPipeline(t *testing.T, seed bool) *pipeline {
	t.Helper()
	g := genkit.Init(context.Background())

	llm := testutil.NewMockLLM("I understand. Please consult a doctor if symptoms persist.")
	llm.RegisterModel(g)

	mock := testutil.NewMockEmbedder(8)
	embedder := mock.RegisterEmbedder(g)

	store, err := knowledge.New(embedder, testutil.DiscardLogger())
	require.NoError(t, err)
	if seed {
		require.NoError(t, store.Seed(context.Background(), knowledge.Corpus()))
	}

	retriever := NewRetriever(store, DefaultTopK, time.Second, testutil.DiscardLogger())
	gen := NewGenerator(g, retriever, NewClassifier(), GeneratorConfig{
		ModelName: testutil.MockModelName,
	}, testutil.DiscardLogger())

	return &pipeline{generator: gen, llm: llm, embedder: mock, store: store}
}

func TestGenerator_Generate(t *testing.T) {
	p := newTestPipeline(t, true)
	p.llm.AddResponse("fever", "Drink plenty of fluids and rest. See a doctor if the fever lasts more than 3 days.")

	sess := session.New("s1")
	result, err := p.generator.Generate(context.Background(), "I have a fever since yesterday", sess)
	require.NoError(t, err)

	assert.Contains(t, result.Response, "fluids")
	assert.Equal(t, SeverityMedium, result.Severity)
	assert.Equal(t, 3, result.SourcesCount)
	assert.Len(t, result.ContextUsed, 3)

	turns := sess.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, "I have a fever since yesterday", turns[0].Content)
	assert.Equal(t, result.Response, turns[1].Content)
}

func TestGenerator_HighRiskQuery(t *testing.T) {
	p := newTestPipeline(t, true)
	p.llm.AddResponse("chest pain", "Chest pain can be serious. Go to the nearest health center immediately.")

	sess := session.New("s1")
	result, err := p.generator.Generate(context.Background(), "I have chest pain", sess)
	require.NoError(t, err)

	assert.Equal(t, SeverityHigh, result.Severity)
}

func TestGenerator_ContextPreviewsBounded(t *testing.T) {
	p := newTestPipeline(t, true)

	sess := session.New("s1")
	result, err := p.generator.Generate(context.Background(), "I have a cough", sess)
	require.NoError(t, err)

	for _, preview := range result.ContextUsed {
		assert.LessOrEqual(t, len([]rune(preview)), contextPreviewRunes+len("..."))
	}
}

func TestGenerator_SequentialCallsAccumulateHistory(t *testing.T) {
	p := newTestPipeline(t, true)

	sess := session.New("s1")
	ctx := context.Background()

	_, err := p.generator.Generate(ctx, "I have a fever", sess)
	require.NoError(t, err)
	_, err = p.generator.Generate(ctx, "it got worse overnight", sess)
	require.NoError(t, err)

	assert.Equal(t, 4, sess.Len())

	calls := p.llm.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "it got worse overnight", calls[1].UserMessage)
}

func TestGenerator_EmptyCorpus(t *testing.T) {
	p := newTestPipeline(t, false)

	sess := session.New("s1")
	result, err := p.generator.Generate(context.Background(), "I have a fever", sess)
	require.NoError(t, err)

	assert.Equal(t, 0, result.SourcesCount)
	assert.Empty(t, result.ContextUsed)
	assert.Equal(t, 2, sess.Len())
}

func TestGenerator_BlankQuery(t *testing.T) {
	p := newTestPipeline(t, true)

	sess := session.New("s1")
	_, err := p.generator.Generate(context.Background(), "   ", sess)
	assert.ErrorIs(t, err, ErrInvalidQuery)
	assert.Equal(t, 0, sess.Len())
}

func TestGenerator_ModelFailureLeavesSessionUntouched(t *testing.T) {
	p := newTestPipeline(t, true)
	p.llm.FailWith(testutil.ErrMockUnavailable)

	sess := session.New("s1")
	_, err := p.generator.Generate(context.Background(), "I have a fever", sess)
	assert.ErrorIs(t, err, ErrGenerationFailure)
	assert.Equal(t, 0, sess.Len())
}

func TestGenerator_EmbedderFailureLeavesSessionUntouched(t *testing.T) {
	p := newTestPipeline(t, true)
	p.embedder.SetFailing(true)

	sess := session.New("s1")
	_, err := p.generator.Generate(context.Background(), "I have a fever", sess)
	assert.ErrorIs(t, err, ErrEmbeddingFailure)
	assert.Equal(t, 0, sess.Len())
}

func TestGenerator_ConcurrentExchangesOnOneSession(t *testing.T) {
	p := newTestPipeline(t, true)
	const n = 20

	sess := session.New("s1")
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.generator.Generate(context.Background(),
				fmt.Sprintf("question number %d", i), sess)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	turns := sess.Turns()
	require.Len(t, turns, 2*n)
	for i := 0; i < len(turns); i += 2 {
		assert.Equal(t, session.RoleUser, turns[i].Role)
		assert.Equal(t, session.RoleAssistant, turns[i+1].Role)
	}
}

func TestGeneratorConfig_Defaults(t *testing.T) {
	cfg := GeneratorConfig{ModelName: "m"}.withDefaults()
	assert.InDelta(t, DefaultTemperature, cfg.Temperature, 1e-9)
	assert.Equal(t, DefaultMaxTokens, cfg.MaxTokens)
	assert.Equal(t, DefaultGenerationTimeout, cfg.Timeout)
}

func TestBuildSystemInstruction(t *testing.T) {
	retrieved := []knowledge.RetrievedContext{
		{Text: "Fever lasting more than 3 days needs attention."},
		{Text: "Chest pain should never be ignored."},
	}

	instruction := buildSystemInstruction(retrieved)

	assert.Contains(t, instruction, "Arogya Sathi")
	assert.Contains(t, instruction, "RETRIEVED MEDICAL KNOWLEDGE:")
	assert.Contains(t, instruction, "Medical Knowledge 1:\nFever lasting more than 3 days needs attention.")
	assert.Contains(t, instruction, "Medical Knowledge 2:\nChest pain should never be ignored.")
	assert.Contains(t, instruction, "Never diagnose")

	// Without retrieved context the knowledge block is omitted entirely.
	bare := buildSystemInstruction(nil)
	assert.NotContains(t, bare, "RETRIEVED MEDICAL KNOWLEDGE")
	assert.Contains(t, bare, "GUIDELINES:")
}
