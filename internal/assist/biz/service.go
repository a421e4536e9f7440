package biz

import (
	"context"
	"errors"
	"fmt"

	"github.com/kart-io/logger"

	"github.com/marketx/seller-assist/internal/assist/metrics"
	"github.com/marketx/seller-assist/internal/model"
	"github.com/marketx/seller-assist/pkg/llm"
)

// ServiceConfig configures the assist service.
type ServiceConfig struct {
	// DocsDir is the seller documentation directory.
	DocsDir string
	// ChunkSize is the chunk size in characters.
	ChunkSize int
	// ChunkOverlap is the overlap between consecutive chunks.
	ChunkOverlap int
}

// AssistService ties the corpus pipeline, the router, and the answer cache
// together behind the operations the transport layer exposes.
type AssistService struct {
	config   *ServiceConfig
	indexer  *Indexer
	router   *Router
	cache    *AnswerCache
	embedder llm.EmbeddingProvider
	chat     llm.ChatProvider
}

// NewAssistService creates the assist service.
func NewAssistService(
	config *ServiceConfig,
	indexer *Indexer,
	router *Router,
	cache *AnswerCache,
	embedder llm.EmbeddingProvider,
	chat llm.ChatProvider,
) *AssistService {
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultChunkSize
	}
	if config.ChunkOverlap <= 0 {
		config.ChunkOverlap = DefaultChunkOverlap
	}
	return &AssistService{
		config:   config,
		indexer:  indexer,
		router:   router,
		cache:    cache,
		embedder: embedder,
		chat:     chat,
	}
}

// Ask answers a seller question: answer cache first, then classify and route.
func (s *AssistService) Ask(ctx context.Context, question, sellerID string) (*model.AgentResponse, error) {
	if cached := s.cache.Get(ctx, question); cached != nil {
		metrics.GetAssistMetrics().RecordQuery(true, nil)
		return cached, nil
	}

	resp, err := s.router.Route(ctx, question, sellerID)
	metrics.GetAssistMetrics().RecordQuery(false, err)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, question, resp)
	return resp, nil
}

// Ingest loads, chunks, and indexes the documentation corpus.
func (s *AssistService) Ingest(ctx context.Context, force bool) (*model.IngestResponse, error) {
	rawDocs, err := LoadRawDocs(s.config.DocsDir)
	if err != nil {
		return nil, err
	}

	chunks, err := ChunkDocs(rawDocs, s.config.ChunkSize, s.config.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	result, err := s.indexer.Build(ctx, chunks, force)
	if err != nil {
		return nil, err
	}

	result.Documents = len(rawDocs)
	if !result.Reused {
		metrics.GetAssistMetrics().AddDocumentsIngested(int64(len(rawDocs)))
	}

	logger.Infow("ingestion finished",
		"documents", result.Documents, "chunks", result.Chunks,
		"indexed", result.Indexed, "reused", result.Reused, "force", force)
	return result, nil
}

// EnsureIndex makes sure an index is available, building it from the docs
// directory when missing or empty.
func (s *AssistService) EnsureIndex(ctx context.Context) error {
	err := s.indexer.Load(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrIndexNotFound) {
		return err
	}

	logger.Infow("documentation index missing, building on startup")
	if _, err := s.Ingest(ctx, false); err != nil {
		return fmt.Errorf("startup ingestion failed: %w", err)
	}
	return nil
}

// Stats reports index, provider, cache, and counter state.
func (s *AssistService) Stats(ctx context.Context) map[string]any {
	stats := map[string]any{
		"embedding_provider": s.embedder.Name(),
		"chat_provider":      s.chat.Name(),
		"answer_cache":       s.cache.Stats(ctx),
		"metrics":            metrics.GetAssistMetrics().Snapshot(),
	}

	count, err := s.indexer.Count(ctx)
	if err != nil {
		stats["index_error"] = err.Error()
	} else {
		stats["indexed_chunks"] = count
	}

	return stats
}
