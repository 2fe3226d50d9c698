package rag

import (
	"context"
	"testing"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyasathi/sathi/internal/knowledge"
	"github.com/arogyasathi/sathi/internal/testutil"
)

// newTestRetriever builds a retriever over a mock-embedded store.
// seed controls whether the reference corpus is indexed.
func newTestRetriever(t *testing.T, seed bool) (*Retriever, *testutil.MockEmbedder) {
	t.Helper()
	g := genkit.Init(context.Background())
	mock := testutil.NewMockEmbedder(8)
	embedder := mock.RegisterEmbedder(g)

	store, err := knowledge.New(embedder, testutil.DiscardLogger())
	require.NoError(t, err)
	if seed {
		require.NoError(t, store.Seed(context.Background(), knowledge.Corpus()))
	}

	return NewRetriever(store, DefaultTopK, time.Second, testutil.DiscardLogger()), mock
}

func TestRetriever_Retrieve(t *testing.T) {
	r, _ := newTestRetriever(t, true)
	ctx := context.Background()

	results, err := r.Retrieve(ctx, "I have a fever", 0)
	require.NoError(t, err)
	assert.Len(t, results, DefaultTopK)
}

func TestRetriever_RejectsBlankQuery(t *testing.T) {
	r, _ := newTestRetriever(t, true)
	ctx := context.Background()

	for _, query := range []string{"", "   ", "\n\t"} {
		_, err := r.Retrieve(ctx, query, 3)
		assert.ErrorIs(t, err, ErrInvalidQuery)
	}
}

func TestRetriever_ClampsK(t *testing.T) {
	r, _ := newTestRetriever(t, true)
	ctx := context.Background()

	// Corpus has 3 documents; asking for more returns all of them.
	results, err := r.Retrieve(ctx, "fever", 100)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestRetriever_EmptyIndex(t *testing.T) {
	r, _ := newTestRetriever(t, false)

	results, err := r.Retrieve(context.Background(), "fever", 3)
	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestRetriever_EmbedderFailure(t *testing.T) {
	r, mock := newTestRetriever(t, true)
	mock.SetFailing(true)

	_, err := r.Retrieve(context.Background(), "fever", 3)
	assert.ErrorIs(t, err, ErrEmbeddingFailure)
}

func TestNewRetriever_Defaults(t *testing.T) {
	r := NewRetriever(nil, 0, 0, nil)
	assert.Equal(t, DefaultTopK, r.TopK())
	assert.Equal(t, defaultSearchTimeout, r.timeout)
}
