package client

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/carejourney/client-go/internal/cache"
)

// readThrough implements stale-while-revalidate over the query cache:
// a fresh hit is returned as is; a stale hit is returned immediately while a
// single background refetch is kicked off; a miss fetches synchronously and
// populates the cache.
func readThrough[T any](ctx context.Context, c *Client, resource string, key cache.Key, staleAfter time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok, stale := c.cache.Get(key); ok {
		if cached, typed := v.(T); typed {
			cacheHitsTotal.WithLabelValues(resource).Inc()
			if stale && c.cache.TryMarkFetching(key) {
				revalidationsTotal.WithLabelValues(resource).Inc()
				go revalidate(context.WithoutCancel(ctx), c, resource, key, staleAfter, fetch)
			}
			return cached, nil
		}
	}

	cacheMissesTotal.WithLabelValues(resource).Inc()
	val, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.cache.Put(key, val, staleAfter)
	return val, nil
}

// revalidate refreshes one stale entry in the background. A failed refetch
// keeps serving the stale value; the entry is flagged so the next read may
// try again.
func revalidate[T any](ctx context.Context, c *Client, resource string, key cache.Key, staleAfter time.Duration, fetch func(context.Context) (T, error)) {
	val, err := fetch(ctx)
	if err != nil {
		c.cache.MarkError(key)
		log.Debug().Err(err).Str("resource", resource).Msg("background revalidation failed")
		return
	}
	c.cache.Put(key, val, staleAfter)
}
