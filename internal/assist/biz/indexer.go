package biz

import (
	"context"
	"fmt"

	"github.com/kart-io/logger"

	"github.com/marketx/seller-assist/internal/assist/metrics"
	"github.com/marketx/seller-assist/internal/assist/store"
	"github.com/marketx/seller-assist/internal/model"
	"github.com/marketx/seller-assist/pkg/llm"
)

// embedBatchSize bounds the number of texts sent to the embedding provider
// in one request.
const embedBatchSize = 64

// IndexerConfig configures the documentation indexer.
type IndexerConfig struct {
	// Collection is the vector collection name.
	Collection string
	// EmbeddingDim is the embedding vector dimension.
	EmbeddingDim int
	// TopK is the default number of retrieval results.
	TopK int
}

// Indexer builds, loads, and queries the documentation index.
type Indexer struct {
	store    store.VectorStore
	embedder llm.EmbeddingProvider
	config   *IndexerConfig
}

// NewIndexer creates an indexer instance.
func NewIndexer(vectorStore store.VectorStore, embedder llm.EmbeddingProvider, config *IndexerConfig) *Indexer {
	return &Indexer{
		store:    vectorStore,
		embedder: embedder,
		config:   config,
	}
}

// Build creates the documentation index from chunks.
//
// When force is false and a non-empty collection already exists, it is reused
// and no embeddings are computed. When force is true, the collection is
// dropped and recreated before insert, so readers never observe a
// half-written index under the old name.
func (i *Indexer) Build(ctx context.Context, chunks []model.Chunk, force bool) (*model.IngestResponse, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: nothing to index", ErrEmptyCorpus)
	}

	exists, err := i.store.HasCollection(ctx, i.config.Collection)
	if err != nil {
		return nil, fmt.Errorf("failed to check collection: %w", err)
	}

	if exists && !force {
		count, err := i.store.Count(ctx, i.config.Collection)
		if err != nil {
			return nil, fmt.Errorf("failed to count collection: %w", err)
		}
		if count > 0 {
			logger.Infow("reusing existing documentation index",
				"collection", i.config.Collection, "chunks", count)
			return &model.IngestResponse{Chunks: len(chunks), Indexed: count, Reused: true}, nil
		}
	}

	if exists && force {
		logger.Infow("force rebuild, dropping collection", "collection", i.config.Collection)
		if err := i.store.DropCollection(ctx, i.config.Collection); err != nil {
			return nil, fmt.Errorf("failed to drop collection: %w", err)
		}
	}

	if err := i.store.CreateCollection(ctx, &store.CollectionConfig{
		Name:        i.config.Collection,
		Description: "Marketplace X seller documentation",
		Dimension:   i.config.EmbeddingDim,
	}); err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	var indexed int64
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for j, c := range batch {
			texts[j] = c.Text
		}

		embeddings, err := i.embedder.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunks: %w", err)
		}

		n, err := i.store.Insert(ctx, i.config.Collection, batch, embeddings)
		if err != nil {
			return nil, fmt.Errorf("failed to insert chunks: %w", err)
		}
		indexed += n
	}

	metrics.GetAssistMetrics().AddChunksIndexed(indexed)
	logger.Infow("documentation index built",
		"collection", i.config.Collection, "chunks", len(chunks), "indexed", indexed)

	return &model.IngestResponse{Chunks: len(chunks), Indexed: indexed}, nil
}

// Load verifies the documentation index exists and holds data.
func (i *Indexer) Load(ctx context.Context) error {
	exists, err := i.store.HasCollection(ctx, i.config.Collection)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: collection %s", ErrIndexNotFound, i.config.Collection)
	}

	count, err := i.store.Count(ctx, i.config.Collection)
	if err != nil {
		return fmt.Errorf("failed to count collection: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: collection %s is empty", ErrIndexNotFound, i.config.Collection)
	}

	return nil
}

// Retrieve returns the k chunks most similar to the query, best match first.
// A non-positive k falls back to the configured default.
func (i *Indexer) Retrieve(ctx context.Context, query string, k int) ([]model.ScoredChunk, error) {
	if k <= 0 {
		k = i.config.TopK
	}

	vector, err := i.embedder.EmbedSingle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	chunks, err := i.store.Search(ctx, i.config.Collection, vector, k)
	if err != nil {
		return nil, err
	}

	metrics.GetAssistMetrics().IncRetrievals()
	return chunks, nil
}

// Count returns the number of indexed chunks.
func (i *Indexer) Count(ctx context.Context) (int64, error) {
	return i.store.Count(ctx, i.config.Collection)
}
