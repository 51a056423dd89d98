// Package repositorycache provides a cached decorator for records.Repository.
//
// # Overview
//
// CachedRepository wraps a base repository and routes reads through a
// query.Coordinator while delegating writes directly to the base repository.
// It implements records.Repository, so it is a drop-in replacement.
//
//	coord := query.New(store)
//	cached := repositorycache.New(records.NewRepository(client), coord)
//
//	list, err := cached.List(ctx)          // "clientes" entry
//	one, err := cached.GetByID(ctx, 42)    // "clientes::42" entry
//
// # Cached vs Pass-through Operations
//
// Cached: List, GetByID.
//
// Pass-through: Create, Update, Delete. When they succeed the decorator
// invalidates
//
//   - Create: the list key
//   - Update, Delete: the list key and the key of the written id
//
// A failed write invalidates nothing, so cached entries stay ready.
//
// # Extra invalidation keys
//
// Other entries derived from the same records (dashboard counters, for
// instance) can be invalidated together with a write by attaching their keys
// to the context:
//
//	ctx = repositorycache.WithInvalidationKeys(ctx, dashboard.StatsKey)
//	_, err := cached.Create(ctx, draft)
//
// # Error Handling
//
// Errors from the base repository are propagated unchanged.
package repositorycache
