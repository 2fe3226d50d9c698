package rag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/arogyasathi/sathi/internal/knowledge"
)

// DefaultTopK is the number of context documents retrieved per query when
// the caller does not say otherwise.
const DefaultTopK = 3

// defaultSearchTimeout bounds the embed-plus-search path. The corpus is
// small, so the search itself is near-instant; the budget covers the
// embedding call.
const defaultSearchTimeout = 10 * time.Second

// Retriever turns a query into nearest-neighbor context documents.
// It is a thin orchestration over the knowledge store: its own contract is
// input validation and k clamping.
type Retriever struct {
	store   *knowledge.Store
	topK    int
	timeout time.Duration
	logger  *slog.Logger
}

// NewRetriever creates a Retriever over the given store. topK <= 0 falls
// back to DefaultTopK; timeout <= 0 falls back to a 10-second budget.
func NewRetriever(store *knowledge.Store, topK int, timeout time.Duration, logger *slog.Logger) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if timeout <= 0 {
		timeout = defaultSearchTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{store: store, topK: topK, timeout: timeout, logger: logger}
}

// Retrieve returns up to k context documents for the query, closest first.
// A blank query fails with ErrInvalidQuery before any external call; k is
// clamped to [1, corpus size]; an empty corpus yields an empty result.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]knowledge.RetrievedContext, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is empty", ErrInvalidQuery)
	}
	if k < 1 {
		k = r.topK
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	retrieved, err := r.store.Search(ctx, query, k)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: search timed out: %w", ErrEmbeddingFailure, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailure, err)
	}

	r.logger.Debug("retrieved context", "query_length", len(query), "results", len(retrieved))
	return retrieved, nil
}

// TopK returns the configured default result count.
func (r *Retriever) TopK() int {
	return r.topK
}
