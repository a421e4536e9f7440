package store

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus/client/v2/entity"

	"github.com/marketx/seller-assist/internal/model"
	"github.com/marketx/seller-assist/pkg/component/milvus"
)

// MilvusStore implements VectorStore on top of Milvus.
type MilvusStore struct {
	client *milvus.Client
}

// NewMilvusStore creates a Milvus-backed vector store.
func NewMilvusStore(client *milvus.Client) *MilvusStore {
	return &MilvusStore{client: client}
}

var _ VectorStore = (*MilvusStore)(nil)

// outputFields are the metadata fields returned from similarity search.
var outputFields = []string{
	"doc_id", "chunk_id", "section", "subsection", "path",
	"start_line", "end_line", "content",
}

// CreateCollection creates the documentation collection.
func (s *MilvusStore) CreateCollection(ctx context.Context, config *CollectionConfig) error {
	schema := &milvus.CollectionSchema{
		Name:        config.Name,
		Description: config.Description,
		Dimension:   config.Dimension,
		MetaFields: []milvus.MetaField{
			{Name: "doc_id", DataType: entity.FieldTypeVarChar, MaxLen: 128},
			{Name: "chunk_id", DataType: entity.FieldTypeVarChar, MaxLen: 160},
			{Name: "section", DataType: entity.FieldTypeVarChar, MaxLen: 255},
			{Name: "subsection", DataType: entity.FieldTypeVarChar, MaxLen: 255},
			{Name: "path", DataType: entity.FieldTypeVarChar, MaxLen: 1024},
			{Name: "start_line", DataType: entity.FieldTypeInt64},
			{Name: "end_line", DataType: entity.FieldTypeInt64},
			{Name: "content", DataType: entity.FieldTypeVarChar, MaxLen: 65535},
		},
	}
	return s.client.CreateCollection(ctx, schema)
}

// HasCollection reports whether the collection exists.
func (s *MilvusStore) HasCollection(ctx context.Context, collection string) (bool, error) {
	return s.client.HasCollection(ctx, collection)
}

// DropCollection removes the collection and all its data.
func (s *MilvusStore) DropCollection(ctx context.Context, collection string) error {
	return s.client.DropCollection(ctx, collection)
}

// Insert stores chunks with their embeddings.
func (s *MilvusStore) Insert(ctx context.Context, collection string, chunks []model.Chunk, embeddings [][]float32) (int64, error) {
	if len(chunks) == 0 {
		return 0, nil
	}
	if len(chunks) != len(embeddings) {
		return 0, fmt.Errorf("chunk count %d does not match embedding count %d", len(chunks), len(embeddings))
	}

	metadata := map[string][]any{
		"doc_id":     make([]any, len(chunks)),
		"chunk_id":   make([]any, len(chunks)),
		"section":    make([]any, len(chunks)),
		"subsection": make([]any, len(chunks)),
		"path":       make([]any, len(chunks)),
		"start_line": make([]any, len(chunks)),
		"end_line":   make([]any, len(chunks)),
		"content":    make([]any, len(chunks)),
	}

	for i, chunk := range chunks {
		metadata["doc_id"][i] = chunk.DocID
		metadata["chunk_id"][i] = chunk.ChunkID
		metadata["section"][i] = chunk.Section
		metadata["subsection"][i] = chunk.Subsection
		metadata["path"][i] = chunk.Path
		metadata["start_line"][i] = int64(chunk.StartLine)
		metadata["end_line"][i] = int64(chunk.EndLine)
		metadata["content"][i] = chunk.Text
	}

	ids, err := s.client.Insert(ctx, collection, &milvus.InsertData{
		Embeddings: embeddings,
		Metadata:   metadata,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert chunks: %w", err)
	}

	return int64(len(ids)), nil
}

// Search returns the topK most similar chunks, best match first.
func (s *MilvusStore) Search(ctx context.Context, collection string, vector []float32, topK int) ([]model.ScoredChunk, error) {
	results, err := s.client.Search(ctx, collection, vector, topK, outputFields)
	if err != nil {
		return nil, fmt.Errorf("failed to search collection: %w", err)
	}

	chunks := make([]model.ScoredChunk, 0, len(results))
	for _, r := range results {
		chunk := model.ScoredChunk{Score: r.Score}
		if v, ok := r.Metadata["doc_id"].(string); ok {
			chunk.DocID = v
		}
		if v, ok := r.Metadata["chunk_id"].(string); ok {
			chunk.ChunkID = v
		}
		if v, ok := r.Metadata["section"].(string); ok {
			chunk.Section = v
		}
		if v, ok := r.Metadata["subsection"].(string); ok {
			chunk.Subsection = v
		}
		if v, ok := r.Metadata["path"].(string); ok {
			chunk.Path = v
		}
		if v, ok := r.Metadata["start_line"].(int64); ok {
			chunk.StartLine = int(v)
		}
		if v, ok := r.Metadata["end_line"].(int64); ok {
			chunk.EndLine = int(v)
		}
		if v, ok := r.Metadata["content"].(string); ok {
			chunk.Text = v
		}
		chunks = append(chunks, chunk)
	}

	return chunks, nil
}

// Count returns the number of stored chunks.
func (s *MilvusStore) Count(ctx context.Context, collection string) (int64, error) {
	return s.client.GetCollectionStats(ctx, collection)
}
