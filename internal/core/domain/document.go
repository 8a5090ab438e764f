package domain

// Document represents one raw document produced by a loader.
// Identity is ID, unique within a run. Immutable after loading.
type Document struct {
	// ID is the unique identifier for the document. For wiki-dump files
	// it comes from the <doc id=...> attribute, otherwise the file name.
	ID string

	// SourcePath is the path of the file the document came from.
	SourcePath string

	// Title is the human-readable title.
	Title string

	// RawText is the text content as extracted by the loader,
	// before any normalisation.
	RawText string
}

// NormalizedDocument is a Document with its cleaned text attached.
type NormalizedDocument struct {
	Document

	// CleanText is the text after tag stripping, script filtering
	// and whitespace collapsing. The dedup hash is computed over it.
	CleanText string
}

// Chunk is a bounded, order-preserving slice of a document's clean text,
// sized for scoring-backend input limits.
type Chunk struct {
	// DocumentID links to the parent Document.
	DocumentID string

	// Index is the 0-based, contiguous position within the document.
	Index int

	// Text is the chunk content, a contiguous substring of the
	// document's clean text.
	Text string
}

// ScoreResult is the scoring backend's judgement of a piece of text.
type ScoreResult struct {
	// Score is the quality score on the backend's 1-10 scale.
	Score float64

	// Rationale is the backend's explanation for the score.
	Rationale string
}

// CorpusRecord is the final persisted unit, written exactly once per
// document to exactly one of the two output streams.
type CorpusRecord struct {
	ID         string   `json:"id"`
	SourcePath string   `json:"source_path"`
	Title      string   `json:"title"`
	Text       string   `json:"text"`
	LLMScore   *float64 `json:"llm_score,omitempty"`
	LLMReason  *string  `json:"llm_reason,omitempty"`

	// Reason is set only on the rejected stream.
	Reason string `json:"reason,omitempty"`
}
