// Package model defines the shared data types for the seller-assist service.
package model

// RawDocument is a single markdown file loaded from the docs directory.
type RawDocument struct {
	// DocID is the document identifier derived from the filename, with the
	// ordering prefix stripped ("01_overview.md" -> "overview").
	DocID string `json:"doc_id"`

	// Path is the file path the document was loaded from.
	Path string `json:"path"`

	// Content is the full markdown text.
	Content string `json:"content"`
}

// Section is a structural block extracted from a markdown document.
type Section struct {
	// Section is the level-2 heading title.
	Section string `json:"section"`

	// Subsection is the level-3 heading title, empty when the block sits
	// directly under a section heading.
	Subsection string `json:"subsection,omitempty"`

	// Text is the trimmed body of the block.
	Text string `json:"text"`

	// StartLine is the 1-based line right after the opening heading.
	StartLine int `json:"start_line"`

	// EndLine is the 1-based line right before the next heading or EOF.
	EndLine int `json:"end_line"`
}

// Chunk is an indexable slice of a section with full provenance metadata.
type Chunk struct {
	DocID      string `json:"doc_id"`
	ChunkID    string `json:"chunk_id"`
	Text       string `json:"text"`
	Section    string `json:"section"`
	Subsection string `json:"subsection,omitempty"`
	Path       string `json:"path"`
	StartLine  int    `json:"start_line"`
	EndLine    int    `json:"end_line"`
}

// ScoredChunk is a chunk returned from similarity search with its score.
type ScoredChunk struct {
	Chunk
	Score float32 `json:"score"`
}
