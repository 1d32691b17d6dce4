package wrapper

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/forja-labs/pkg/logger"
	"github.com/forja-labs/pkg/pipeline/query"
)

// NewCacheQueryWrapper returns middleware that serves query results from
// Redis when available and stores fresh results with the given ttl.
//
// keyFn derives the cache key from the input context, so only queries whose
// result is fully determined by their context should be cached. Cache
// failures are logged and treated as misses; the query itself never fails
// because of the cache.
func NewCacheQueryWrapper[C query.Context, R query.Result](
	log logger.Logger,
	rdb redis.Cmdable,
	ttl time.Duration,
	keyFn func(C) string,
) query.WrapFunc[C, R] {
	log = log.Named("pipeline.query.cache")

	return func(next query.ExecFunc[C, R]) query.ExecFunc[C, R] {
		return func(ctx context.Context, q query.Query[C, R], c C) (R, error) {
			key := keyFn(c)

			if cached, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var result R
				if unmarshalErr := json.Unmarshal(cached, &result); unmarshalErr == nil {
					return result, nil
				}
				// stale or incompatible payload, drop it and fall through
				if delErr := rdb.Del(ctx, key).Err(); delErr != nil {
					log.WithContext(ctx).With("cache_key", key).Warn("failed to drop invalid cache entry")
				}
			} else if !errors.Is(err, redis.Nil) {
				log.WithContext(ctx).With("cache_key", key).With("error", err).Warn("cache read failed")
			}

			result, err := next(ctx, q, c)
			if err != nil {
				return result, err
			}

			payload, err := json.Marshal(result)
			if err != nil {
				log.WithContext(ctx).With("cache_key", key).With("error", err).Warn("failed to encode result for cache")
				return result, nil
			}

			if setErr := rdb.Set(ctx, key, payload, ttl).Err(); setErr != nil {
				log.WithContext(ctx).With("cache_key", key).With("error", setErr).Warn("cache write failed")
			}

			return result, nil
		}
	}
}
