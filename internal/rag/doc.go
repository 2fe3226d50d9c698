// Package rag implements the retrieval-augmented generation pipeline with
// integrated risk classification.
//
// The pipeline is: [Retriever] finds the nearest reference passages for a
// query, [Generator] assembles them with the session transcript into a
// generation request and delegates to the configured model, and
// [Classifier] annotates the result with a low/medium/high severity level
// combining retrieved-document metadata with keyword heuristics.
//
// External capabilities (embedding, generation) are injected; failures
// propagate to the caller as typed errors with no internal retry and no
// session mutation.
package rag
