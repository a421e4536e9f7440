package biz

import (
	"context"
	"fmt"

	"github.com/marketx/seller-assist/internal/assist/store"
	"github.com/marketx/seller-assist/internal/model"
	"github.com/marketx/seller-assist/pkg/llm"
)

// Compile-time interface checks.
var (
	_ store.VectorStore     = (*mockVectorStore)(nil)
	_ llm.EmbeddingProvider = (*mockEmbeddingProvider)(nil)
	_ llm.ChatProvider      = (*mockChatProvider)(nil)
)

type mockCollection struct {
	config *store.CollectionConfig
	chunks []model.Chunk
}

// mockVectorStore is an in-memory VectorStore for tests.
type mockVectorStore struct {
	collections map[string]*mockCollection

	searchResults []model.ScoredChunk

	createError error
	insertError error
	searchError error

	dropCalls   int
	insertCalls int
}

func newMockVectorStore() *mockVectorStore {
	return &mockVectorStore{collections: make(map[string]*mockCollection)}
}

func (m *mockVectorStore) CreateCollection(_ context.Context, config *store.CollectionConfig) error {
	if m.createError != nil {
		return m.createError
	}
	if _, ok := m.collections[config.Name]; !ok {
		m.collections[config.Name] = &mockCollection{config: config}
	}
	return nil
}

func (m *mockVectorStore) HasCollection(_ context.Context, collection string) (bool, error) {
	_, ok := m.collections[collection]
	return ok, nil
}

func (m *mockVectorStore) DropCollection(_ context.Context, collection string) error {
	m.dropCalls++
	delete(m.collections, collection)
	return nil
}

func (m *mockVectorStore) Insert(_ context.Context, collection string, chunks []model.Chunk, embeddings [][]float32) (int64, error) {
	m.insertCalls++
	if m.insertError != nil {
		return 0, m.insertError
	}
	col, ok := m.collections[collection]
	if !ok {
		return 0, fmt.Errorf("collection %s does not exist", collection)
	}
	if len(chunks) != len(embeddings) {
		return 0, fmt.Errorf("chunks/embeddings length mismatch")
	}
	col.chunks = append(col.chunks, chunks...)
	return int64(len(chunks)), nil
}

func (m *mockVectorStore) Search(_ context.Context, collection string, _ []float32, topK int) ([]model.ScoredChunk, error) {
	if m.searchError != nil {
		return nil, m.searchError
	}
	results := m.searchResults
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func (m *mockVectorStore) Count(_ context.Context, collection string) (int64, error) {
	col, ok := m.collections[collection]
	if !ok {
		return 0, nil
	}
	return int64(len(col.chunks)), nil
}

// mockEmbeddingProvider returns fixed-dimension zero vectors and counts calls.
type mockEmbeddingProvider struct {
	dim         int
	embedCalls  int
	singleCalls int
	err         error
}

func (m *mockEmbeddingProvider) Embed(_ context.Context, texts []string) ([][]float32, error) {
	m.embedCalls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = make([]float32, m.dim)
	}
	return out, nil
}

func (m *mockEmbeddingProvider) EmbedSingle(_ context.Context, _ string) ([]float32, error) {
	m.singleCalls++
	if m.err != nil {
		return nil, m.err
	}
	return make([]float32, m.dim), nil
}

func (m *mockEmbeddingProvider) Name() string { return "mock-embed" }

// mockChatProvider returns a canned response and records the last prompts.
type mockChatProvider struct {
	response string
	err      error

	generateCalls    int
	lastPrompt       string
	lastSystemPrompt string
}

func (m *mockChatProvider) Chat(_ context.Context, messages []llm.Message) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockChatProvider) Generate(_ context.Context, prompt, systemPrompt string) (string, error) {
	m.generateCalls++
	m.lastPrompt = prompt
	m.lastSystemPrompt = systemPrompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockChatProvider) Name() string { return "mock-chat" }
