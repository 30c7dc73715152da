// Package client is the CareJourney SDK: it synchronizes a local query
// cache with the backend's schedules, files, posts and follow graph, giving
// callers instantaneous optimistic writes with rollback on failure.
package client

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/carejourney/client-go/internal/api"
	"github.com/carejourney/client-go/internal/cache"
	"github.com/carejourney/client-go/internal/gateway"
	"github.com/carejourney/client-go/internal/mutate"
	"github.com/carejourney/client-go/internal/shardqueue"
	"github.com/carejourney/client-go/internal/types"
)

// Staleness windows per resource family. Folder counts, feeds and follow
// graphs rely on explicit invalidation only.
const (
	schedulesStaleAfter = 59 * time.Minute
	filesStaleAfter     = 59 * time.Minute
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client is the SDK entry point. All reads go through the query cache with
// stale-while-revalidate; all writes go through the optimistic mutation
// coordinator. Safe for concurrent use.
type Client struct {
	http     *http.Client
	gw       *gateway.Gateway
	cache    *cache.Store
	exec     executor
	coord    *mutate.Coordinator
	notifier Notifier

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the given backend base URL. creds may be nil,
// in which case every request is sent unauthenticated. Additional options
// can be provided via functional arguments.
func New(baseURL string, creds CredentialSource, opts ...Option) *Client {
	if baseURL == "" {
		panic("baseURL cannot be empty")
	}

	c := &Client{
		http:     &http.Client{Timeout: gateway.DefaultTimeout},
		cache:    cache.NewStore(),
		notifier: logNotifier{},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}
	if c.exec == nil {
		c.exec = newDefaultExecutor()
	}

	c.gw = gateway.New(baseURL, creds, c.http)
	c.coord = mutate.New(c.cache, c.exec, c.notifier)
	return c
}

// newDefaultExecutor builds the settlement executor from SQ_* environment
// overrides on top of sane defaults.
func newDefaultExecutor() *shardqueue.ShardExecutor {
	cfg, err := shardqueue.LoadConfig()
	if err != nil {
		log.Warn().Err(err).Msg("invalid SQ_* environment, using defaults")
		cfg = shardqueue.Config{}
	}
	if cfg.Shards <= 0 {
		cfg.Shards = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}
	cfg.ErrorHandler = func(err error) {
		log.Warn().Err(err).Msg("settlement job error")
	}
	return shardqueue.NewShardExecutor(cfg)
}

// Close stops the settlement executor, draining queued mutations. Safe to
// call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.exec != nil {
		c.exec.Stop()
	}
	return nil
}

// Clear wipes the query cache. Call on logout so the next account does not
// observe the previous account's data.
func (c *Client) Clear() { c.cache.Clear() }

// AwaitSettled blocks until all previously submitted mutations for the
// given cache key have settled (confirmed or rolled back).
func (c *Client) AwaitSettled(ctx context.Context, key Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.coord.Await(ctx, key)
}

// Invalidate marks every cache entry under the key prefix stale, forcing a
// refetch on next read.
func (c *Client) Invalidate(prefix Key) { c.cache.Invalidate(prefix) }

// --------------------------------------------------------------------
// Reads (stale-while-revalidate through the query cache)
// --------------------------------------------------------------------

// Schedules returns the appointments or medications collection.
func (c *Client) Schedules(ctx context.Context, name ScheduleName) ([]ScheduleItem, error) {
	if err := types.ValidateScheduleName(name); err != nil {
		return nil, err
	}
	return readThrough(ctx, c, "schedules", types.SchedulesKey(name), schedulesStaleAfter,
		func(ctx context.Context) ([]types.ScheduleItem, error) {
			return api.GetSchedules(ctx, c.gw, name)
		})
}

// Files lists a folder. URIs are time-limited signed URLs; the cache's
// freshness window is shorter than their validity.
func (c *Client) Files(ctx context.Context, folder string) ([]FileInfo, error) {
	if err := types.ValidateIDPresent(folder, "folderName"); err != nil {
		return nil, err
	}
	return readThrough(ctx, c, "files", types.FilesKey(folder), filesStaleAfter,
		func(ctx context.Context) ([]types.FileInfo, error) {
			return api.GetFiles(ctx, c.gw, folder)
		})
}

// FoldersLength returns per-folder item counts. Never time-stale; the
// delete-file mutation invalidates it explicitly.
func (c *Client) FoldersLength(ctx context.Context) (FolderLengths, error) {
	return readThrough(ctx, c, "folders-length", types.FoldersLengthKey(), cache.NeverStale,
		func(ctx context.Context) (types.FolderLengths, error) {
			return api.GetFoldersLength(ctx, c.gw)
		})
}

// Posts returns the first page of a cancer-type feed. An authoritative
// fetch replaces the cached list wholesale, which is also what reconciles
// away any pending placeholder replies.
func (c *Client) Posts(ctx context.Context, cancerType string, limit int) ([]Post, error) {
	return readThrough(ctx, c, "posts", types.PostsKey(cancerType), cache.NeverStale,
		func(ctx context.Context) ([]types.Post, error) {
			page, err := api.GetPosts(ctx, c.gw, cancerType, limit, 1)
			if err != nil {
				return nil, err
			}
			return page.Posts, nil
		})
}

// MorePosts fetches the given page and appends it to the cached feed,
// returning the full accumulated list.
func (c *Client) MorePosts(ctx context.Context, cancerType string, limit, pageNo int) ([]Post, error) {
	page, err := api.GetPosts(ctx, c.gw, cancerType, limit, pageNo)
	if err != nil {
		return nil, err
	}
	key := types.PostsKey(cancerType)
	var merged []types.Post
	c.cache.Set(key, func(old any) any {
		merged = appendPosts(postsOf(old), page.Posts)
		return merged
	})
	return merged, nil
}

// Followers returns the users following userID.
func (c *Client) Followers(ctx context.Context, userID string) ([]string, error) {
	if err := types.ValidateIDPresent(userID, "userId"); err != nil {
		return nil, err
	}
	return readThrough(ctx, c, "followers", types.FollowersKey(userID), cache.NeverStale,
		func(ctx context.Context) ([]string, error) {
			p, err := api.GetProfile(ctx, c.gw, userID)
			if err != nil {
				return nil, err
			}
			return p.Followers, nil
		})
}

// Followings returns the users userID follows.
func (c *Client) Followings(ctx context.Context, userID string) ([]string, error) {
	if err := types.ValidateIDPresent(userID, "userId"); err != nil {
		return nil, err
	}
	return readThrough(ctx, c, "followings", types.FollowingsKey(userID), cache.NeverStale,
		func(ctx context.Context) ([]string, error) {
			p, err := api.GetProfile(ctx, c.gw, userID)
			if err != nil {
				return nil, err
			}
			return p.Followings, nil
		})
}

// appendPosts concatenates pages, dropping ids already present so a
// re-fetched page does not duplicate posts.
func appendPosts(existing, more []types.Post) []types.Post {
	seen := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		seen[p.ID] = struct{}{}
	}
	out := make([]types.Post, len(existing), len(existing)+len(more))
	copy(out, existing)
	for _, p := range more {
		if _, dup := seen[p.ID]; !dup {
			out = append(out, p)
		}
	}
	return out
}
