package assist

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"
	goredis "github.com/redis/go-redis/v9"

	"github.com/marketx/seller-assist/internal/assist/biz"
	"github.com/marketx/seller-assist/internal/assist/handler"
	"github.com/marketx/seller-assist/internal/assist/router"
	"github.com/marketx/seller-assist/internal/assist/store"
	"github.com/marketx/seller-assist/pkg/app"
	"github.com/marketx/seller-assist/pkg/component/milvus"
	"github.com/marketx/seller-assist/pkg/llm"
	redisopts "github.com/marketx/seller-assist/pkg/options/redis"
)

// shutdownTimeout bounds graceful HTTP server shutdown.
const shutdownTimeout = 30 * time.Second

// Server holds the running service and the resources it owns.
type Server struct {
	httpServer  *http.Server
	milvusClose func()
	redisClose  func()
}

// NewServer wires the service from validated options.
func NewServer(opts *Options) (*Server, error) {
	// 1. Logger
	opts.Log.AddInitialField("service.name", Name)
	opts.Log.AddInitialField("service.version", app.GetVersion())
	if err := opts.Log.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("Starting seller assist service...")

	// 2. Milvus client and vector store
	milvusClient, err := milvus.New(opts.Milvus)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize milvus: %w", err)
	}
	vectorStore := store.NewMilvusStore(milvusClient)
	logger.Info("Vector store initialized")

	// 3. Redis client for caching
	redisClient, redisClose := newRedisClient(opts)

	// 4. LLM providers
	embedder, err := llm.NewEmbeddingProvider(opts.Embedding.Provider, opts.Embedding.ToConfigMap())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedding provider: %w", err)
	}
	if redisClient != nil {
		embedder = llm.NewCachedEmbeddingProvider(embedder, redisClient, llm.DefaultEmbeddingCacheConfig())
	}
	logger.Infow("Embedding provider initialized",
		"provider", opts.Embedding.Provider, "model", opts.Embedding.Model)

	chatProvider, err := llm.NewChatProvider(opts.Chat.Provider, opts.Chat.ToConfigMap())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chat provider: %w", err)
	}
	logger.Infow("Chat provider initialized",
		"provider", opts.Chat.Provider, "model", opts.Chat.Model)

	// 5. Biz layer
	indexer := biz.NewIndexer(vectorStore, embedder, &biz.IndexerConfig{
		Collection:   opts.Corpus.Collection,
		EmbeddingDim: opts.Corpus.EmbeddingDim,
		TopK:         opts.Corpus.TopK,
	})
	answerer := biz.NewAnswerer(indexer, chatProvider, &biz.AnswererConfig{
		TopK:                opts.Corpus.TopK,
		ConfidenceThreshold: opts.Corpus.ConfidenceThreshold,
	})
	intentRouter := biz.NewRouter(chatProvider, answerer)
	answerCache := biz.NewAnswerCache(redisClient, &biz.AnswerCacheConfig{
		Enabled:   opts.Cache.Enabled && redisClient != nil,
		TTL:       opts.Cache.TTL,
		KeyPrefix: opts.Cache.KeyPrefix,
	})
	service := biz.NewAssistService(&biz.ServiceConfig{
		DocsDir:      opts.Corpus.DocsDir,
		ChunkSize:    opts.Corpus.ChunkSize,
		ChunkOverlap: opts.Corpus.ChunkOverlap,
	}, indexer, intentRouter, answerCache, embedder, chatProvider)
	logger.Infow("Assist service initialized",
		"docs_dir", opts.Corpus.DocsDir,
		"collection", opts.Corpus.Collection,
		"confidence_threshold", opts.Corpus.ConfidenceThreshold,
		"cache.enabled", opts.Cache.Enabled)

	// 6. Startup index build
	if opts.Corpus.BuildOnStartup {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		err := service.EnsureIndex(ctx)
		cancel()
		if err != nil {
			logger.Warnw("startup index build failed, ingest via API to retry", "error", err.Error())
		}
	}

	// 7. HTTP server
	gin.SetMode(opts.HTTP.Mode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	router.Register(engine, handler.NewAssistHandler(service))

	logger.Info("Seller assist service is ready")
	return &Server{
		httpServer: &http.Server{
			Addr:         opts.HTTP.Addr,
			Handler:      engine,
			ReadTimeout:  opts.HTTP.ReadTimeout,
			WriteTimeout: opts.HTTP.WriteTimeout,
			IdleTimeout:  opts.HTTP.IdleTimeout,
		},
		milvusClose: func() { _ = milvusClient.Close(context.Background()) },
		redisClose:  redisClose,
	}, nil
}

// newRedisClient connects to Redis when caching is enabled. Connection
// failures disable caching instead of failing startup.
func newRedisClient(opts *Options) (*goredis.Client, func()) {
	if !opts.Cache.Enabled {
		logger.Info("Cache is disabled")
		return nil, nil
	}
	redisOpts := opts.Cache.Redis
	if redisOpts == nil {
		redisOpts = redisopts.NewOptions()
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:         fmt.Sprintf("%s:%d", redisOpts.Host, redisOpts.Port),
		Password:     redisOpts.Password,
		DB:           redisOpts.Database,
		MaxRetries:   redisOpts.MaxRetries,
		PoolSize:     redisOpts.PoolSize,
		MinIdleConns: redisOpts.MinIdleConns,
		DialTimeout:  redisOpts.DialTimeout,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warnw("failed to connect to redis, cache will be disabled", "error", err.Error())
		_ = client.Close()
		return nil, nil
	}

	logger.Infow("Redis cache initialized",
		"host", redisOpts.Host, "port", redisOpts.Port, "ttl", opts.Cache.TTL)
	return client, func() { _ = client.Close() }
}

// Run starts the HTTP server and blocks until a termination signal.
func (s *Server) Run() error {
	defer func() {
		if s.milvusClose != nil {
			s.milvusClose()
		}
		if s.redisClose != nil {
			s.redisClose()
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("HTTP server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Infow("Shutting down server...", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("Server exited")
	return nil
}
