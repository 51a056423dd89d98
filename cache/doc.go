// Package cache provides the contracts the query coordinator is built on:
// entry keys, the value store interface and its configuration.
//
// # Keys
//
// A Key names either a whole collection or one record of it:
//
//	cache.ListKey("clientes")        // "clientes"
//	cache.ItemKey("clientes", 42)    // "clientes::42"
//
// Resource names are folded to lower snake case so "DashboardStats" and
// "dashboard-stats" address the same entries.
//
// # Storage keys
//
// The coordinator never stores values under the bare entry key. A
// KeySerializer appends the entry generation ("clientes#3"), and every
// invalidation bumps the generation. A fetch that was already in flight when
// its entry was invalidated therefore lands under a key nobody reads again.
// ResourcePrefixes lets a whole resource be swept from the store with
// DeleteByPrefix.
//
// # Value store
//
// CacheService is a read-through store. The default implementation
// (NewCacheService) is backed by sturdyc; it never stores errors, so a
// failed fetch is retried on the next access.
//
//	svc, err := cache.NewCacheService(cache.DefaultConfig())
//	list, err := cache.GetOrFetch(ctx, svc, "clientes#0", func(ctx context.Context) ([]records.Client, error) {
//		return repo.List(ctx)
//	})
package cache
