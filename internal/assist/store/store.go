// Package store defines the vector storage layer for the documentation index.
package store

import (
	"context"

	"github.com/marketx/seller-assist/internal/model"
)

// CollectionConfig describes the vector collection backing the index.
type CollectionConfig struct {
	// Name is the collection name.
	Name string
	// Description is a human-readable collection description.
	Description string
	// Dimension is the embedding vector dimension.
	Dimension int
}

// VectorStore abstracts the persisted similarity index.
type VectorStore interface {
	// CreateCollection creates the collection if it does not exist.
	CreateCollection(ctx context.Context, config *CollectionConfig) error

	// HasCollection reports whether the collection exists.
	HasCollection(ctx context.Context, collection string) (bool, error)

	// DropCollection removes the collection and all its data.
	DropCollection(ctx context.Context, collection string) error

	// Insert stores chunks with their embeddings and returns the number of
	// inserted rows.
	Insert(ctx context.Context, collection string, chunks []model.Chunk, embeddings [][]float32) (int64, error)

	// Search returns the topK chunks most similar to the query vector,
	// ordered best match first.
	Search(ctx context.Context, collection string, vector []float32, topK int) ([]model.ScoredChunk, error)

	// Count returns the number of stored chunks.
	Count(ctx context.Context, collection string) (int64, error)
}
