package biz

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/kart-io/logger"
	goredis "github.com/redis/go-redis/v9"

	"github.com/marketx/seller-assist/internal/model"
	"github.com/marketx/seller-assist/pkg/utils/json"
)

// AnswerCacheConfig configures the answer cache.
type AnswerCacheConfig struct {
	// Enabled toggles the cache.
	Enabled bool
	// TTL is the cache entry expiration.
	TTL time.Duration
	// KeyPrefix is prepended to every cache key.
	KeyPrefix string
}

// AnswerCache caches routed answers in Redis. All cache failures degrade to
// misses; the cache never turns a working pipeline into an error.
type AnswerCache struct {
	redis  *goredis.Client
	config *AnswerCacheConfig
}

// NewAnswerCache creates an answer cache instance.
func NewAnswerCache(redis *goredis.Client, config *AnswerCacheConfig) *AnswerCache {
	if config == nil {
		config = &AnswerCacheConfig{
			Enabled:   false,
			TTL:       1 * time.Hour,
			KeyPrefix: "assist:ask:",
		}
	}
	return &AnswerCache{
		redis:  redis,
		config: config,
	}
}

// generateCacheKey derives a cache key from the question (SHA256 hash).
// The seller ID is excluded: the answer pipelines do not depend on it.
func (c *AnswerCache) generateCacheKey(question string) string {
	hash := sha256.Sum256([]byte(question))
	hashStr := hex.EncodeToString(hash[:])
	return c.config.KeyPrefix + hashStr
}

// Get returns the cached response for the question, or nil on a miss.
func (c *AnswerCache) Get(ctx context.Context, question string) *model.AgentResponse {
	if !c.config.Enabled || c.redis == nil {
		return nil
	}

	cacheKey := c.generateCacheKey(question)

	data, err := c.redis.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err != goredis.Nil {
			logger.Warnw("failed to get from answer cache", "error", err.Error(), "key", cacheKey)
		}
		return nil
	}

	var resp model.AgentResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		logger.Warnw("failed to unmarshal cached answer, deleting", "error", err.Error(), "key", cacheKey)
		_ = c.redis.Del(ctx, cacheKey).Err()
		return nil
	}

	logger.Infow("answer cache hit", "key", cacheKey, "intent", string(resp.Intent))
	return &resp
}

// Set stores the response for the question.
func (c *AnswerCache) Set(ctx context.Context, question string, resp *model.AgentResponse) {
	if !c.config.Enabled || c.redis == nil || resp == nil {
		return
	}

	cacheKey := c.generateCacheKey(question)

	data, err := json.Marshal(resp)
	if err != nil {
		logger.Warnw("failed to marshal answer for caching", "error", err.Error())
		return
	}

	if err := c.redis.Set(ctx, cacheKey, data, c.config.TTL).Err(); err != nil {
		logger.Warnw("failed to set answer cache", "error", err.Error(), "key", cacheKey)
	}
}

// Clear deletes all cached answers.
func (c *AnswerCache) Clear(ctx context.Context) error {
	if !c.config.Enabled || c.redis == nil {
		return nil
	}

	pattern := c.config.KeyPrefix + "*"
	iter := c.redis.Scan(ctx, 0, pattern, 0).Iterator()

	deleted := 0
	for iter.Next(ctx) {
		if err := c.redis.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warnw("failed to delete cache key", "error", err.Error(), "key", iter.Val())
		} else {
			deleted++
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}

	logger.Infow("cleared answer cache", "deleted_count", deleted)
	return nil
}

// Stats returns cache statistics for the stats endpoint.
func (c *AnswerCache) Stats(ctx context.Context) map[string]any {
	if !c.config.Enabled || c.redis == nil {
		return map[string]any{"enabled": false}
	}

	pattern := c.config.KeyPrefix + "*"
	iter := c.redis.Scan(ctx, 0, pattern, 0).Iterator()

	keyCount := 0
	for iter.Next(ctx) {
		keyCount++
	}
	if err := iter.Err(); err != nil {
		logger.Warnw("error during cache scan", "error", err.Error())
	}

	return map[string]any{
		"enabled":    true,
		"key_count":  keyCount,
		"ttl":        c.config.TTL.String(),
		"key_prefix": c.config.KeyPrefix,
	}
}
