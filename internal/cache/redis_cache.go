package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/Baaaki/portfolio/internal/models"
	"github.com/Baaaki/portfolio/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	projectsKey   = "portfolio:projects:all"
	generationKey = "portfolio:projects:generation"
)

var errStaleGeneration = errors.New("project list changed since read")

// RedisProjectCache stores the JSON-encoded project list under one key.
// Every invalidation bumps a generation counter; a list is written back only
// while the counter still matches the one seen before the database read.
type RedisProjectCache struct {
	client *redis.Client
	ttl    time.Duration

	// dirty is set when an invalidation could not reach Redis. Reads bypass
	// the cache until a retry succeeds.
	dirty atomic.Bool
}

// NewRedisProjectCache connects to redisURL and verifies the connection.
func NewRedisProjectCache(ctx context.Context, redisURL string, ttl time.Duration) (*RedisProjectCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewRedisProjectCacheFromClient(client, ttl), nil
}

func NewRedisProjectCacheFromClient(client *redis.Client, ttl time.Duration) *RedisProjectCache {
	return &RedisProjectCache{client: client, ttl: ttl}
}

func (c *RedisProjectCache) GetProjects(ctx context.Context) ([]models.Project, int64, bool) {
	if c.dirty.Load() {
		if err := c.invalidate(ctx); err != nil {
			logger.Log.Warn("Project cache still unreachable after failed invalidation", zap.Error(err))
			return nil, NoGeneration, false
		}
		c.dirty.Store(false)
	}

	vals, err := c.client.MGet(ctx, generationKey, projectsKey).Result()
	if err != nil {
		logger.Log.Warn("Project cache read failed", zap.Error(err))
		return nil, NoGeneration, false
	}

	generation, err := parseGeneration(vals[0])
	if err != nil {
		logger.Log.Warn("Project cache generation is corrupt", zap.Error(err))
		return nil, NoGeneration, false
	}

	data, ok := vals[1].(string)
	if !ok {
		return nil, generation, false
	}

	var projects []models.Project
	if err := json.Unmarshal([]byte(data), &projects); err != nil {
		logger.Log.Warn("Project cache entry is corrupt, dropping it", zap.Error(err))
		c.Invalidate(ctx)
		return nil, NoGeneration, false
	}
	if projects == nil {
		projects = []models.Project{}
	}

	return projects, generation, true
}

// SetProjects stores projects if no invalidation happened since generation
// was observed.
func (c *RedisProjectCache) SetProjects(ctx context.Context, generation int64, projects []models.Project) {
	if generation == NoGeneration || c.dirty.Load() {
		return
	}

	data, err := json.Marshal(projects)
	if err != nil {
		logger.Log.Warn("Project cache encode failed", zap.Error(err))
		return
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, generationKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		current, err := parseGeneration(nilIfMissing(raw, err))
		if err != nil {
			return err
		}
		if current != generation {
			return errStaleGeneration
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, projectsKey, data, c.ttl)
			return nil
		})
		return err
	}, generationKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		logger.Log.Debug("Project list changed during read, not caching it",
			zap.Int64("generation", generation),
		)
	default:
		logger.Log.Warn("Project cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached list and bumps the generation. On failure the
// cache stays bypassed until a later invalidation succeeds.
func (c *RedisProjectCache) Invalidate(ctx context.Context) {
	if err := c.invalidate(ctx); err != nil {
		c.dirty.Store(true)
		logger.Log.Warn("Project cache invalidation failed, bypassing cache", zap.Error(err))
		return
	}
	c.dirty.Store(false)
}

func (c *RedisProjectCache) invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, projectsKey)
		return nil
	})
	return err
}

func (c *RedisProjectCache) Close() error {
	return c.client.Close()
}

func parseGeneration(v any) (int64, error) {
	switch g := v.(type) {
	case nil:
		return 0, nil
	case string:
		return strconv.ParseInt(g, 10, 64)
	default:
		return 0, errors.New("unexpected generation type")
	}
}

func nilIfMissing(raw string, err error) any {
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return raw
}
