package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arogyasathi/sathi/internal/knowledge"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier()

	highDoc := knowledge.RetrievedContext{
		Text:     "Chest pain can be serious.",
		Category: knowledge.CategorySymptoms,
		Severity: knowledge.SeverityHigh,
	}
	lowDoc := knowledge.RetrievedContext{
		Text:     "Fever is a common symptom.",
		Category: knowledge.CategorySymptoms,
		Severity: knowledge.SeverityLowMedium,
	}

	tests := []struct {
		name      string
		query     string
		response  string
		retrieved []knowledge.RetrievedContext
		want      Severity
	}{
		{
			name:     "high risk keyword in query",
			query:    "I have chest pain and feel dizzy",
			response: "Please seek care immediately.",
			want:     SeverityHigh,
		},
		{
			name:     "high risk keyword only in response",
			query:    "my father collapsed",
			response: "If he is unconscious, call emergency services now.",
			want:     SeverityHigh,
		},
		{
			name:      "fever query retrieving high severity doc stays medium",
			query:     "I have a fever since yesterday",
			response:  "Drink fluids and rest.",
			retrieved: []knowledge.RetrievedContext{lowDoc, highDoc},
			want:      SeverityMedium,
		},
		{
			name:      "high severity doc with keyword confirmation",
			query:     "I have chest pain",
			response:  "This needs urgent attention.",
			retrieved: []knowledge.RetrievedContext{highDoc},
			want:      SeverityHigh,
		},
		{
			name:     "medium risk keyword",
			query:    "my child has been vomiting all night",
			response: "Keep them hydrated.",
			want:     SeverityMedium,
		},
		{
			name:     "benign query",
			query:    "what foods are good for a healthy diet",
			response: "Vegetables, fruits, and whole grains.",
			want:     SeverityLow,
		},
		{
			name:     "matching is case insensitive",
			query:    "SEVERE BLEEDING from a cut",
			response: "Apply pressure and go to the nearest center.",
			want:     SeverityHigh,
		},
		{
			name:     "plain bleeding alone does not escalate",
			query:    "slight bleeding from a small cut",
			response: "Clean the wound and cover it.",
			want:     SeverityLow,
		},
		{
			name:     "empty query and response",
			query:    "",
			response: "",
			want:     SeverityLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.query, tt.response, tt.retrieved)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifier_DeterministicAcrossCalls(t *testing.T) {
	c := NewClassifier()
	first := c.Classify("I have a fever", "Rest well.", nil)
	second := c.Classify("I have a fever", "Rest well.", nil)
	assert.Equal(t, first, second)
}
