package biz

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketx/seller-assist/internal/model"
)

func testChunks(n int) []model.Chunk {
	chunks := make([]model.Chunk, n)
	for i := range chunks {
		chunks[i] = model.Chunk{
			DocID:   "policies",
			ChunkID: "policies_001",
			Text:    strings.Repeat("x", 100),
			Section: "Rules",
		}
	}
	return chunks
}

func newTestIndexer(vs *mockVectorStore, embedder *mockEmbeddingProvider) *Indexer {
	return NewIndexer(vs, embedder, &IndexerConfig{
		Collection:   "seller_docs",
		EmbeddingDim: 8,
		TopK:         4,
	})
}

func TestIndexerBuild_CreatesCollection(t *testing.T) {
	vs := newMockVectorStore()
	embedder := &mockEmbeddingProvider{dim: 8}
	indexer := newTestIndexer(vs, embedder)

	resp, err := indexer.Build(context.Background(), testChunks(3), false)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Chunks)
	assert.Equal(t, int64(3), resp.Indexed)
	assert.False(t, resp.Reused)

	count, err := vs.Count(context.Background(), "seller_docs")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestIndexerBuild_ReusesExistingIndex(t *testing.T) {
	vs := newMockVectorStore()
	embedder := &mockEmbeddingProvider{dim: 8}
	indexer := newTestIndexer(vs, embedder)

	_, err := indexer.Build(context.Background(), testChunks(3), false)
	require.NoError(t, err)
	firstEmbedCalls := embedder.embedCalls

	resp, err := indexer.Build(context.Background(), testChunks(3), false)
	require.NoError(t, err)
	assert.True(t, resp.Reused)
	assert.Equal(t, int64(3), resp.Indexed)
	assert.Equal(t, firstEmbedCalls, embedder.embedCalls, "reuse must not embed again")
}

func TestIndexerBuild_ForceDropsAndRebuilds(t *testing.T) {
	vs := newMockVectorStore()
	embedder := &mockEmbeddingProvider{dim: 8}
	indexer := newTestIndexer(vs, embedder)

	_, err := indexer.Build(context.Background(), testChunks(3), false)
	require.NoError(t, err)

	resp, err := indexer.Build(context.Background(), testChunks(5), true)
	require.NoError(t, err)
	assert.False(t, resp.Reused)
	assert.Equal(t, int64(5), resp.Indexed)
	assert.Equal(t, 1, vs.dropCalls)

	count, err := vs.Count(context.Background(), "seller_docs")
	require.NoError(t, err)
	assert.Equal(t, int64(5), count, "old rows must not survive a force rebuild")
}

func TestIndexerBuild_EmptyChunks(t *testing.T) {
	indexer := newTestIndexer(newMockVectorStore(), &mockEmbeddingProvider{dim: 8})

	_, err := indexer.Build(context.Background(), nil, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyCorpus))
}

func TestIndexerBuild_BatchesEmbeddings(t *testing.T) {
	vs := newMockVectorStore()
	embedder := &mockEmbeddingProvider{dim: 8}
	indexer := newTestIndexer(vs, embedder)

	_, err := indexer.Build(context.Background(), testChunks(130), false)
	require.NoError(t, err)
	assert.Equal(t, 3, embedder.embedCalls)
	assert.Equal(t, 3, vs.insertCalls)
}

func TestIndexerLoad(t *testing.T) {
	vs := newMockVectorStore()
	embedder := &mockEmbeddingProvider{dim: 8}
	indexer := newTestIndexer(vs, embedder)

	err := indexer.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIndexNotFound))

	_, err = indexer.Build(context.Background(), testChunks(2), false)
	require.NoError(t, err)
	assert.NoError(t, indexer.Load(context.Background()))
}

func TestIndexerLoad_EmptyCollection(t *testing.T) {
	vs := newMockVectorStore()
	vs.collections["seller_docs"] = &mockCollection{}

	indexer := newTestIndexer(vs, &mockEmbeddingProvider{dim: 8})
	err := indexer.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIndexNotFound))
}

func TestIndexerRetrieve_DefaultTopK(t *testing.T) {
	vs := newMockVectorStore()
	vs.searchResults = []model.ScoredChunk{
		{Chunk: model.Chunk{DocID: "a"}, Score: 0.1},
		{Chunk: model.Chunk{DocID: "b"}, Score: 0.2},
		{Chunk: model.Chunk{DocID: "c"}, Score: 0.3},
		{Chunk: model.Chunk{DocID: "d"}, Score: 0.4},
		{Chunk: model.Chunk{DocID: "e"}, Score: 0.5},
	}
	embedder := &mockEmbeddingProvider{dim: 8}
	indexer := newTestIndexer(vs, embedder)

	chunks, err := indexer.Retrieve(context.Background(), "what are the fees?", 0)
	require.NoError(t, err)
	assert.Len(t, chunks, 4, "non-positive k falls back to configured TopK")
	assert.Equal(t, 1, embedder.singleCalls)

	chunks, err = indexer.Retrieve(context.Background(), "what are the fees?", 2)
	require.NoError(t, err)
	assert.Len(t, chunks, 2)
}

func TestIndexerRetrieve_EmbedError(t *testing.T) {
	embedder := &mockEmbeddingProvider{dim: 8, err: errors.New("provider down")}
	indexer := newTestIndexer(newMockVectorStore(), embedder)

	_, err := indexer.Retrieve(context.Background(), "question", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to embed query")
}
