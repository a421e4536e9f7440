package llm

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ EmbeddingProvider = (*countingEmbedder)(nil)

// countingEmbedder records how often the underlying provider is hit.
type countingEmbedder struct {
	embedCalls  int
	singleCalls int
	lastBatch   []string
}

func (c *countingEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	c.embedCalls++
	c.lastBatch = texts
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = []float32{float32(len(text)), 1.0, 2.0}
	}
	return out, nil
}

func (c *countingEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	c.singleCalls++
	return []float32{float32(len(text)), 1.0, 2.0}, nil
}

func (c *countingEmbedder) Name() string { return "counting" }

func setupCachedProvider(t *testing.T) (*CachedEmbeddingProvider, *countingEmbedder, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	embedder := &countingEmbedder{}
	cached := NewCachedEmbeddingProvider(embedder, client, &EmbeddingCacheConfig{
		Enabled:   true,
		TTL:       time.Hour,
		KeyPrefix: "test:emb:",
	})
	return cached, embedder, mr
}

func TestCachedEmbeddingProvider_DisabledCallsProvider(t *testing.T) {
	embedder := &countingEmbedder{}
	cached := NewCachedEmbeddingProvider(embedder, nil, DefaultEmbeddingCacheConfig())
	ctx := context.Background()

	_, err := cached.EmbedSingle(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, 1, embedder.singleCalls)

	_, err = cached.Embed(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, embedder.embedCalls)
}

func TestCachedEmbeddingProvider_SingleHitSkipsProvider(t *testing.T) {
	cached, embedder, _ := setupCachedProvider(t)
	ctx := context.Background()

	first, err := cached.EmbedSingle(ctx, "return window")
	require.NoError(t, err)
	assert.Equal(t, 1, embedder.singleCalls)

	second, err := cached.EmbedSingle(ctx, "return window")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, embedder.singleCalls)
}

func TestCachedEmbeddingProvider_CorruptEntryFallsBack(t *testing.T) {
	cached, embedder, mr := setupCachedProvider(t)
	ctx := context.Background()

	key := cached.generateCacheKey("broken entry")
	require.NoError(t, mr.Set(key, "not-json"))

	embedding, err := cached.EmbedSingle(ctx, "broken entry")
	require.NoError(t, err)
	require.NotEmpty(t, embedding)
	assert.Equal(t, 1, embedder.singleCalls)

	// The corrupt entry was replaced; the next read hits the cache.
	_, err = cached.EmbedSingle(ctx, "broken entry")
	require.NoError(t, err)
	assert.Equal(t, 1, embedder.singleCalls)
}

func TestCachedEmbeddingProvider_RedisErrorFallsBack(t *testing.T) {
	cached, embedder, mr := setupCachedProvider(t)
	ctx := context.Background()

	mr.SetError("connection refused")

	// Both the read and the write-back fail; the provider result still flows.
	embedding, err := cached.EmbedSingle(ctx, "degraded")
	require.NoError(t, err)
	require.NotEmpty(t, embedding)
	assert.Equal(t, 1, embedder.singleCalls)
}

func TestCachedEmbeddingProvider_BatchEmbedsOnlyUncached(t *testing.T) {
	cached, embedder, _ := setupCachedProvider(t)
	ctx := context.Background()

	_, err := cached.EmbedSingle(ctx, "warm")
	require.NoError(t, err)

	embeddings, err := cached.Embed(ctx, []string{"warm", "cold"})
	require.NoError(t, err)
	require.Len(t, embeddings, 2)
	assert.Equal(t, 1, embedder.embedCalls)
	assert.Equal(t, []string{"cold"}, embedder.lastBatch)
}

func TestCachedEmbeddingProvider_BatchCorruptEntryReEmbedded(t *testing.T) {
	cached, embedder, mr := setupCachedProvider(t)
	ctx := context.Background()

	key := cached.generateCacheKey("stale")
	require.NoError(t, mr.Set(key, "{truncated"))

	embeddings, err := cached.Embed(ctx, []string{"stale"})
	require.NoError(t, err)
	require.Len(t, embeddings, 1)
	assert.Equal(t, 1, embedder.embedCalls)
	assert.Equal(t, []string{"stale"}, embedder.lastBatch)
}

func TestCachedEmbeddingProvider_ClearCache(t *testing.T) {
	cached, embedder, _ := setupCachedProvider(t)
	ctx := context.Background()

	_, err := cached.EmbedSingle(ctx, "one")
	require.NoError(t, err)
	require.NoError(t, cached.ClearCache(ctx))

	_, err = cached.EmbedSingle(ctx, "one")
	require.NoError(t, err)
	assert.Equal(t, 2, embedder.singleCalls)
}

func TestCachedEmbeddingProvider_Name(t *testing.T) {
	cached, _, _ := setupCachedProvider(t)
	assert.Equal(t, "counting-cached", cached.Name())
}
