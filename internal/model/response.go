package model

// Intent is the routing category assigned to a seller question.
type Intent string

const (
	IntentPolicy         Intent = "policy"
	IntentRecommendation Intent = "recommendation"
	IntentAnalytics      Intent = "analytics"
	IntentRefusal        Intent = "refusal"
)

// Valid reports whether the intent is one of the four routing categories.
func (i Intent) Valid() bool {
	switch i {
	case IntentPolicy, IntentRecommendation, IntentAnalytics, IntentRefusal:
		return true
	}
	return false
}

// SourceRef is the provenance metadata of one retrieved chunk.
type SourceRef struct {
	DocID      string `json:"doc_id"`
	ChunkID    string `json:"chunk_id"`
	Section    string `json:"section"`
	Subsection string `json:"subsection,omitempty"`
	Path       string `json:"path"`
	StartLine  int    `json:"start_line"`
	EndLine    int    `json:"end_line"`
}

// AgentResponse is the unified response every agent returns.
// Citations and Sources are always non-nil, even when empty.
type AgentResponse struct {
	Intent     Intent      `json:"intent"`
	Answer     string      `json:"answer"`
	Citations  []string    `json:"citations"`
	Confidence float64     `json:"confidence"`
	Sources    []SourceRef `json:"sources"`
}

// NewAgentResponse creates an AgentResponse with empty, non-nil slices.
func NewAgentResponse(intent Intent) *AgentResponse {
	return &AgentResponse{
		Intent:    intent,
		Citations: []string{},
		Sources:   []SourceRef{},
	}
}

// AskRequest is the HTTP request body for the ask endpoint.
type AskRequest struct {
	Question string `json:"question" binding:"required"`
	SellerID string `json:"seller_id"`
}

// IngestRequest is the HTTP request body for the ingest endpoint.
type IngestRequest struct {
	Force bool `json:"force"`
}

// IngestResponse reports the outcome of an ingestion run.
type IngestResponse struct {
	Documents int   `json:"documents"`
	Chunks    int   `json:"chunks"`
	Indexed   int64 `json:"indexed"`
	Reused    bool  `json:"reused"`
}
