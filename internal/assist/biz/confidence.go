package biz

import (
	"fmt"

	"github.com/marketx/seller-assist/internal/model"
	"github.com/marketx/seller-assist/internal/pkg/textutil"
)

// shortTextThreshold is the average retrieved-text length (in characters)
// below which retrieval is considered suspicious.
const shortTextThreshold = 40

// RetrievalConfidence scores the quality of a retrieval result.
//
// Heuristic: 0.0 for no results, 0.2 when the average retrieved text is very
// short, 1.0 otherwise. Similarity-score based scoring is a possible
// extension; callers must only rely on the [0,1] range and the gate below.
func RetrievalConfidence(chunks []model.ScoredChunk) float64 {
	if len(chunks) == 0 {
		return 0.0
	}

	total := 0
	for _, c := range chunks {
		total += textutil.RuneLen(c.Text)
	}
	avgLen := float64(total) / float64(len(chunks))

	if avgLen < shortTextThreshold {
		return 0.2
	}

	return 1.0
}

// FormatCitation renders the unified citation for one retrieved chunk:
// "[doc_id > section > chunk_id]".
func FormatCitation(chunk model.ScoredChunk) string {
	return fmt.Sprintf("[%s > %s > %s]", chunk.DocID, chunk.Section, chunk.ChunkID)
}

// ExtractCitations renders citations for all retrieved chunks, preserving
// retrieval order.
func ExtractCitations(chunks []model.ScoredChunk) []string {
	citations := make([]string, 0, len(chunks))
	for _, c := range chunks {
		citations = append(citations, FormatCitation(c))
	}
	return citations
}

// SourceRefs converts retrieved chunks into response source metadata,
// preserving retrieval order.
func SourceRefs(chunks []model.ScoredChunk) []model.SourceRef {
	sources := make([]model.SourceRef, 0, len(chunks))
	for _, c := range chunks {
		sources = append(sources, model.SourceRef{
			DocID:      c.DocID,
			ChunkID:    c.ChunkID,
			Section:    c.Section,
			Subsection: c.Subsection,
			Path:       c.Path,
			StartLine:  c.StartLine,
			EndLine:    c.EndLine,
		})
	}
	return sources
}
