package biz

import (
	"fmt"
	"strings"

	"github.com/marketx/seller-assist/internal/model"
	"github.com/marketx/seller-assist/internal/pkg/textutil"
)

const (
	// DefaultChunkSize is the default chunk size in characters.
	DefaultChunkSize = 600
	// DefaultChunkOverlap is the default overlap between consecutive chunks.
	DefaultChunkOverlap = 100
)

// ChunkSection splits a section into overlapping character chunks.
//
// Consecutive chunks share exactly chunkOverlap characters; no chunk exceeds
// chunkSize. ChunkID is left empty and assigned later by ChunkDocs, once the
// per-document sequence is known.
func ChunkSection(section model.Section, docID string, chunkSize, chunkOverlap int) []model.Chunk {
	text := strings.TrimSpace(section.Text)
	if text == "" {
		return nil
	}

	pieces := textutil.SplitIntoChunks(text, chunkSize, chunkOverlap)

	// Pieces are kept verbatim so that concatenating them and dropping each
	// piece's leading overlap reconstructs the section text exactly.
	chunks := make([]model.Chunk, 0, len(pieces))
	for _, piece := range pieces {
		chunks = append(chunks, model.Chunk{
			DocID:      docID,
			Text:       piece,
			Section:    section.Section,
			Subsection: section.Subsection,
			StartLine:  section.StartLine,
			EndLine:    section.EndLine,
		})
	}
	return chunks
}

// ChunkDocs chunks all raw documents into retrieval-ready chunks.
//
// Chunk identifiers are assigned per document as "{doc_id}_{seq:03d}" with a
// 1-based sequence running across all of the document's sections. Beyond 999
// chunks the sequence field widens to four digits; identifiers stay unique
// and ordered, only the fixed width is lost.
func ChunkDocs(rawDocs []model.RawDocument, chunkSize, chunkOverlap int) ([]model.Chunk, error) {
	var allChunks []model.Chunk

	for _, rawDoc := range rawDocs {
		sections := ExtractSections(rawDoc.Content)

		var docChunks []model.Chunk
		for _, section := range sections {
			docChunks = append(docChunks, ChunkSection(section, rawDoc.DocID, chunkSize, chunkOverlap)...)
		}

		for i := range docChunks {
			docChunks[i].Path = rawDoc.Path
			docChunks[i].ChunkID = fmt.Sprintf("%s_%03d", rawDoc.DocID, i+1)
		}

		allChunks = append(allChunks, docChunks...)
	}

	if len(allChunks) == 0 {
		return nil, fmt.Errorf("%w: no chunks generated from seller documentation", ErrEmptyCorpus)
	}

	return allChunks, nil
}
