package knowledge

// Document severity tags carried in corpus metadata. These are coarser than
// the classifier's output levels: "low-medium" exists only as a document tag.
const (
	SeverityLow       = "low"
	SeverityLowMedium = "low-medium"
	SeverityMedium    = "medium"
	SeverityHigh      = "high"
)

// Document categories.
const (
	CategorySymptoms  = "symptoms"
	CategoryEmergency = "emergency"
)

// Metadata keys stored alongside each document in the index.
const (
	metaCategory = "category"
	metaSeverity = "severity"
)

// Document is a single reference passage in the knowledge base.
// Documents are immutable once seeded.
type Document struct {
	ID       string // unique identifier
	Text     string // passage content, embedded verbatim into prompts
	Category string // e.g. "symptoms", "emergency"
	Severity string // severity tag, one of the Severity* constants
}

// RetrievedContext is one search hit: a document's text plus its metadata
// and the similarity to the query. Ephemeral, produced per query, never
// persisted.
type RetrievedContext struct {
	Text       string
	Category   string
	Severity   string
	Similarity float32 // cosine similarity, higher is closer
}
