package questionnaire

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"agrisurvey/internal/platform/metrics"
	dErrors "agrisurvey/pkg/domain-errors"
	"agrisurvey/pkg/requestcontext"
)

const publishedKeyPrefix = "questionnaire:published:"

// RedisCache keeps published questionnaires in Redis so field devices can
// sync them without hitting PostgreSQL. Entries expire on their own; writes
// to the aggregate invalidate eagerly.
type RedisCache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewRedisCache(client *redis.Client, ttl time.Duration, m *metrics.Metrics) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, metrics: m}
}

func (c *RedisCache) GetPublished(ctx context.Context, id string) (*Questionnaire, error) {
	payload, err := c.client.Get(ctx, publishedKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		c.miss()
		return nil, dErrors.Newf(dErrors.CodeNotFound, "questionnaire %s not cached", id)
	}
	if err != nil {
		return nil, fmt.Errorf("cache get questionnaire: %w", err)
	}

	var in API
	if err := json.Unmarshal(payload, &in); err != nil {
		return nil, fmt.Errorf("decode cached questionnaire: %w", err)
	}
	q, err := FromAPI(in, requestcontext.Now(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "cached questionnaire is invalid")
	}
	c.hit()
	return q, nil
}

func (c *RedisCache) SetPublished(ctx context.Context, q *Questionnaire) error {
	if q.Statut != StatusPublie {
		return dErrors.New(dErrors.CodeValidation, "only published questionnaires are cached")
	}
	payload, err := json.Marshal(q.ToAPI())
	if err != nil {
		return fmt.Errorf("encode questionnaire for cache: %w", err)
	}
	if err := c.client.Set(ctx, publishedKeyPrefix+q.ID, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set questionnaire: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, publishedKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("cache invalidate questionnaire: %w", err)
	}
	return nil
}

func (c *RedisCache) hit() {
	if c.metrics != nil {
		c.metrics.CacheHits.WithLabelValues("questionnaire").Inc()
	}
}

func (c *RedisCache) miss() {
	if c.metrics != nil {
		c.metrics.CacheMisses.WithLabelValues("questionnaire").Inc()
	}
}
