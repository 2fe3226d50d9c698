// Package knowledge holds the static reference corpus and its embedding
// index.
//
// The [Store] wraps an embedded chromem-go collection. Documents are seeded
// once at startup ([Store.Seed]) and queried with vector similarity search
// ([Store.Search]). The collection owns a single embedding function derived
// from the injected Genkit embedder, so seed-time and query-time embeddings
// always live in the same vector space.
//
// The corpus is static for the process lifetime: there is no delete
// operation, and re-seeding a document ID replaces its content in place.
package knowledge
