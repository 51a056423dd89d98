// Package query implements the cache coordinator that sits between views
// and the record repository.
//
// Each entry is addressed by a cache.Key and moves through
//
//	absent -> loading -> ready | errored
//
// Fetch serves ready entries from the value store and otherwise issues one
// request per key, shared by every concurrent caller. Invalidate sends
// entries back to absent; the next Fetch issues a fresh request. There is
// no automatic retry: an errored entry is fetched again on its next access.
//
// Invalidation bumps the entry generation. A response that arrives for an
// older generation is handed to the callers that were waiting for it but is
// never stored, so a mutation can not be undone by a list fetched before it.
//
// A Coordinator is an ordinary value. Build one per session and pass it to
// the components that read through it:
//
//	store, _ := cache.NewCacheService(cache.DefaultConfig())
//	coord := query.New(store, query.WithLogger(logger))
//
//	list, err := query.Fetch(ctx, coord, cache.ListKey("clientes"), repo.List)
package query
