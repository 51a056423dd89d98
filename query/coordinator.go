package query

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-clientes-sync/cache"
	"github.com/goliatone/go-clientes-sync/internal/logging"
	"github.com/goliatone/go-clientes-sync/internal/metrics"
)

// ErrNilFetch is returned by Fetch when no fetch function is given.
var ErrNilFetch = errors.New("query: fetch function is nil")

// Coordinator owns the entry table and the value store. It is safe for
// concurrent use; entries are only changed through Fetch and Invalidate.
type Coordinator struct {
	store      cache.CacheService
	serializer cache.KeySerializer
	group      singleflight.Group
	logger     *slog.Logger
	metrics    *metrics.Metrics

	mu      sync.Mutex
	entries map[cache.Key]*entry
}

// New returns a coordinator storing values in store.
func New(store cache.CacheService, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:      store,
		serializer: cache.NewDefaultKeySerializer(),
		logger:     logging.Nop(),
		entries:    make(map[cache.Key]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the value of key, calling fn when the entry is not ready.
//
// Concurrent callers for the same key share one call to fn. The call runs
// detached from the caller's cancellation: a caller whose ctx is done
// returns ctx.Err() right away while the request completes and fills the
// entry for the next caller.
func Fetch[T any](ctx context.Context, c *Coordinator, key cache.Key, fn cache.FetchFn[T]) (T, error) {
	var zero T
	if fn == nil {
		return zero, ErrNilFetch
	}
	value, err := c.fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}
	return cache.As[T](value)
}

func (c *Coordinator) fetch(ctx context.Context, key cache.Key, fn cache.FetchFn[any]) (any, error) {
	c.mu.Lock()
	e := c.entryLocked(key)
	gen := e.gen
	storageKey := c.serializer.SerializeKey(key, gen)

	if e.status == StatusReady {
		if value, ok := c.store.Get(ctx, storageKey); ok {
			c.mu.Unlock()
			c.metrics.IncCacheHit(key.Resource)
			return value, nil
		}
		// the store expired the value; fall through to a fresh request
	}

	joining := e.status == StatusLoading
	e.status = StatusLoading
	e.err = nil
	e.waiters++
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		e.waiters--
		c.mu.Unlock()
	}()

	if joining {
		c.metrics.IncSharedFetch(key.Resource)
	}

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(storageKey, func() (any, error) {
		return c.load(detached, key, gen, storageKey, fn)
	})

	select {
	case <-ctx.Done():
		c.logger.Debug("fetch abandoned", "key", key.String(), "error", ctx.Err())
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

// load issues the request and settles the entry, unless the entry was
// invalidated in the meantime.
func (c *Coordinator) load(ctx context.Context, key cache.Key, gen uint64, storageKey string, fn cache.FetchFn[any]) (any, error) {
	c.metrics.IncFetchRequest(key.Resource)
	c.logger.Debug("fetching", "key", key.String(), "generation", gen)

	start := time.Now()
	value, err := c.store.GetOrFetch(ctx, storageKey, fn)
	c.metrics.ObserveFetchLatency(key.Resource, time.Since(start).Seconds())

	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entryLocked(key)
	if e.gen != gen {
		if err == nil {
			_ = c.store.Delete(ctx, storageKey)
		}
		c.metrics.IncStaleDiscard(key.Resource)
		c.logger.Debug("discarding stale response", "key", key.String(), "generation", gen, "current", e.gen)
		return value, err
	}

	if err != nil {
		e.status = StatusErrored
		e.err = err
		c.metrics.IncFetchError(key.Resource)
		c.logger.Debug("fetch failed", "key", key.String(), "error", err)
		return nil, err
	}

	e.status = StatusReady
	return value, nil
}

// Invalidate marks keys absent and drops their stored values in one store
// call. Unknown keys are ignored. The next Fetch of an invalidated key issues
// a new request.
func (c *Coordinator) Invalidate(ctx context.Context, keys ...cache.Key) {
	c.mu.Lock()
	stale := make([]string, 0, len(keys))
	bumped := make([]cache.Key, 0, len(keys))
	for _, key := range keys {
		if storageKey, ok := c.bumpLocked(key); ok {
			stale = append(stale, storageKey)
			bumped = append(bumped, key)
		}
	}
	c.mu.Unlock()

	if len(stale) == 0 {
		return
	}
	if err := c.store.InvalidateKeys(ctx, stale); err != nil {
		c.logger.Warn("dropping stale values failed", "keys", stale, "error", err)
	}
	c.invalidated(bumped)
}

// InvalidateMatching invalidates every known key accepted by match and
// returns how many were invalidated.
func (c *Coordinator) InvalidateMatching(ctx context.Context, match func(cache.Key) bool) int {
	if match == nil {
		return 0
	}

	c.mu.Lock()
	var keys []cache.Key
	for key := range c.entries {
		if match(key) {
			keys = append(keys, key)
		}
	}
	c.mu.Unlock()

	c.Invalidate(ctx, keys...)
	return len(keys)
}

// InvalidateResource invalidates every entry of resource, list and items,
// and sweeps the store of anything stored under the resource at any
// generation. It returns how many entries were invalidated.
func (c *Coordinator) InvalidateResource(ctx context.Context, resource string) int {
	match := cache.SameResource(resource)

	c.mu.Lock()
	var bumped []cache.Key
	for key := range c.entries {
		if match(key) {
			c.bumpLocked(key)
			bumped = append(bumped, key)
		}
	}
	c.mu.Unlock()

	for _, prefix := range c.serializer.ResourcePrefixes(resource) {
		if err := c.store.DeleteByPrefix(ctx, prefix); err != nil {
			c.logger.Warn("sweeping resource failed", "prefix", prefix, "error", err)
		}
	}
	c.invalidated(bumped)
	return len(bumped)
}

// bumpLocked moves a known entry to the next generation and returns the
// storage key of the generation it left.
func (c *Coordinator) bumpLocked(key cache.Key) (string, bool) {
	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	stale := c.serializer.SerializeKey(key, e.gen)
	e.gen++
	e.status = StatusAbsent
	e.err = nil
	return stale, true
}

func (c *Coordinator) invalidated(keys []cache.Key) {
	for _, key := range keys {
		c.metrics.IncInvalidation(key.Resource)
		c.logger.Debug("invalidated", "key", key.String())
	}
}

// Entry returns a snapshot of key. A key never fetched reports StatusAbsent.
func (c *Coordinator) Entry(key cache.Key) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Entry{Key: key, Status: StatusAbsent}
	e, ok := c.entries[key]
	if !ok {
		return snap
	}

	snap.Status = e.status
	snap.Err = e.err
	snap.Generation = e.gen
	snap.Waiters = e.waiters

	if e.status == StatusReady {
		value, ok := c.store.Get(context.Background(), c.serializer.SerializeKey(key, e.gen))
		if !ok {
			snap.Status = StatusAbsent
		}
		snap.Value = value
	}
	return snap
}

// Status is shorthand for Entry(key).Status.
func (c *Coordinator) Status(key cache.Key) Status {
	return c.Entry(key).Status
}

// Keys returns every key the coordinator has seen, sorted by their string form.
func (c *Coordinator) Keys() []cache.Key {
	c.mu.Lock()
	keys := make([]cache.Key, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	c.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}

func (c *Coordinator) entryLocked(key cache.Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}
