package knowledge

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/firebase/genkit/go/ai"
	chromem "github.com/philippgille/chromem-go"
)

// collectionName is the chromem collection holding the reference corpus.
const collectionName = "medical_knowledge"

// Store manages the reference corpus with vector search over an embedded
// chromem-go collection.
//
// Seeding happens once, single-threaded, before serving traffic; after that
// the Store is read-only and safe for concurrent use.
type Store struct {
	coll   *chromem.Collection
	logger *slog.Logger
}

// New creates a Store backed by a fresh in-memory collection. The embedder
// is captured by the collection's embedding function, so the same model
// embeds both seeded documents and queries.
func New(embedder ai.Embedder, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db := chromem.NewDB()
	coll, err := db.CreateCollection(collectionName, nil, NewEmbeddingFunc(embedder))
	if err != nil {
		return nil, fmt.Errorf("creating collection: %w", err)
	}

	return &Store{coll: coll, logger: logger}, nil
}

// Seed indexes the given documents, computing one embedding per document.
// Re-seeding an existing ID replaces its content: chromem stores documents
// keyed by ID, so Seed is idempotent per document.
func (s *Store) Seed(ctx context.Context, docs []Document) error {
	for _, doc := range docs {
		if doc.ID == "" {
			return fmt.Errorf("document with empty ID (category %q)", doc.Category)
		}
		err := s.coll.AddDocument(ctx, chromem.Document{
			ID:      doc.ID,
			Content: doc.Text,
			Metadata: map[string]string{
				metaCategory: doc.Category,
				metaSeverity: doc.Severity,
			},
		})
		if err != nil {
			return fmt.Errorf("indexing document %q: %w", doc.ID, err)
		}
	}

	s.logger.Debug("knowledge base seeded", "documents", s.coll.Count())
	return nil
}

// Search embeds the query and returns the k closest documents, ordered by
// similarity descending. k is clamped to the corpus size; an empty index
// yields an empty result, not an error.
func (s *Store) Search(ctx context.Context, query string, k int) ([]RetrievedContext, error) {
	n := s.coll.Count()
	if n == 0 {
		return nil, nil
	}
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}

	results, err := s.coll.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}

	retrieved := make([]RetrievedContext, 0, len(results))
	for _, r := range results {
		retrieved = append(retrieved, RetrievedContext{
			Text:       r.Content,
			Category:   r.Metadata[metaCategory],
			Severity:   r.Metadata[metaSeverity],
			Similarity: r.Similarity,
		})
	}

	return retrieved, nil
}

// Count returns the number of indexed documents.
func (s *Store) Count() int {
	return s.coll.Count()
}
