// Package cache provides a Redis-backed read-through cache for generated
// answers, so repeated questions skip the retrieval and generation round
// trip entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"aiact-tutor/internal/config"
	"aiact-tutor/internal/rag/schema"
	"aiact-tutor/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// AnswerCache stores full answers keyed by a digest of the question.
type AnswerCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewAnswerCache connects to Redis and verifies the connection.
func NewAnswerCache(ctx context.Context, cfg config.CacheConfig) (*AnswerCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Address, err)
	}

	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Duration(config.DefaultCacheTTL) * time.Second
	}

	return &AnswerCache{
		client: client,
		ttl:    ttl,
		log:    logger.New("answer_cache"),
	}, nil
}

// key normalizes the question so trivially different phrasings of the same
// string (case, surrounding whitespace) share an entry.
func key(question string) string {
	norm := strings.ToLower(strings.TrimSpace(question))
	sum := sha256.Sum256([]byte(norm))
	return "answer:" + hex.EncodeToString(sum[:])
}

// Get returns the cached answer for a question, or nil on a miss. Cache
// failures are logged and treated as misses; the pipeline is the source of
// truth.
func (c *AnswerCache) Get(ctx context.Context, question string) *schema.Answer {
	raw, err := c.client.Get(ctx, key(question)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.WithError(err).Warn("cache read failed")
		}
		return nil
	}

	var answer schema.Answer
	if err := json.Unmarshal(raw, &answer); err != nil {
		c.log.WithError(err).Warn("discarding corrupt cache entry")
		return nil
	}
	return &answer
}

// Set stores an answer. Failures are logged, never surfaced.
func (c *AnswerCache) Set(ctx context.Context, question string, answer *schema.Answer) {
	raw, err := json.Marshal(answer)
	if err != nil {
		c.log.WithError(err).Warn("cache encode failed")
		return
	}
	if err := c.client.Set(ctx, key(question), raw, c.ttl).Err(); err != nil {
		c.log.WithError(err).Warn("cache write failed")
	}
}

// Close releases the underlying connection.
func (c *AnswerCache) Close() error {
	return c.client.Close()
}
