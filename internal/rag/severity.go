package rag

import (
	"strings"

	"github.com/arogyasathi/sathi/internal/knowledge"
)

// Severity is the triage classification attached to every generated
// response.
type Severity string

// Severity levels, precedence high > medium > low.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Fixed keyword tables for risk assessment. Matching is case-insensitive
// whole-substring matching, not tokenized: overlapping phrases must each be
// listed explicitly ("severe bleeding" does not imply "bleeding").
var (
	highRiskKeywords = []string{
		"chest pain",
		"difficulty breathing",
		"severe bleeding",
		"unconscious",
		"seizure",
		"stroke",
		"heart attack",
		"severe headache",
	}

	mediumRiskKeywords = []string{
		"fever",
		"persistent pain",
		"vomiting",
		"diarrhea",
	}
)

// Classifier assigns a severity level to a query/response pair using two
// signals: severity metadata on retrieved documents and keyword matching.
// Classification is deterministic and independent of call order.
type Classifier struct{}

// NewClassifier creates a Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns the severity for the given query and response, given
// the retrieved context used to generate the response.
//
// The keyword scan is unconditional: a high-risk keyword anywhere in the
// query or response yields high regardless of retrieved metadata. Metadata
// is a first-pass signal only; a high-severity document in the retrieved
// set does not by itself raise the level, since broad retrieval over a
// small corpus routinely surfaces high-severity passages for benign
// queries.
func (c *Classifier) Classify(query, response string, retrieved []knowledge.RetrievedContext) Severity {
	blob := strings.ToLower(query + " " + response)

	// First pass: retrieved metadata flags high severity. The keyword
	// confirmation keeps a benign query that merely retrieved an urgent
	// passage from being escalated.
	for _, doc := range retrieved {
		if doc.Severity == knowledge.SeverityHigh && containsAny(blob, highRiskKeywords) {
			return SeverityHigh
		}
	}

	if containsAny(blob, highRiskKeywords) {
		return SeverityHigh
	}
	if containsAny(blob, mediumRiskKeywords) {
		return SeverityMedium
	}
	return SeverityLow
}

func containsAny(blob string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(blob, kw) {
			return true
		}
	}
	return false
}
