package repositorycache

import (
	"context"
	"slices"

	"github.com/goliatone/go-clientes-sync/cache"
	"github.com/goliatone/go-clientes-sync/query"
	"github.com/goliatone/go-clientes-sync/records"
)

// Interface assertion to ensure CachedRepository implements records.Repository
var _ records.Repository = (*CachedRepository)(nil)

// CachedRepository decorates a base repository with the query coordinator.
// Reads go through the coordinator; writes pass through to the base
// repository and invalidate the affected keys when they succeed.
type CachedRepository struct {
	base     records.Repository
	coord    *query.Coordinator
	resource string
}

// New creates a new CachedRepository that wraps the base repository.
func New(base records.Repository, coord *query.Coordinator) *CachedRepository {
	return &CachedRepository{
		base:     base,
		coord:    coord,
		resource: records.Resource,
	}
}

// ListKey is the coordinator key of the full client list.
func (c *CachedRepository) ListKey() cache.Key {
	return cache.ListKey(c.resource)
}

// ItemKey is the coordinator key of a single client.
func (c *CachedRepository) ItemKey(id int64) cache.Key {
	return cache.ItemKey(c.resource, id)
}

// List returns every client, served from the coordinator when ready.
// The returned slice is a copy; callers may reorder or filter it.
func (c *CachedRepository) List(ctx context.Context) ([]records.Client, error) {
	list, err := query.Fetch(ctx, c.coord, c.ListKey(), c.base.List)
	if err != nil {
		return nil, err
	}
	return slices.Clone(list), nil
}

// GetByID returns one client, served from the coordinator when ready.
func (c *CachedRepository) GetByID(ctx context.Context, id int64) (records.Client, error) {
	return query.Fetch(ctx, c.coord, c.ItemKey(id), func(ctx context.Context) (records.Client, error) {
		return c.base.GetByID(ctx, id)
	})
}

// Refresh invalidates every cached entry of the resource, list and items,
// and returns how many entries were invalidated.
func (c *CachedRepository) Refresh(ctx context.Context) int {
	return c.coord.InvalidateResource(ctx, c.resource)
}

// Create creates a new record. Write operations pass through to base repository
func (c *CachedRepository) Create(ctx context.Context, draft records.Draft) (records.Client, error) {
	result, err := c.base.Create(ctx, draft)
	if err == nil {
		c.invalidateAfterCreate(ctx)
	}
	return result, err
}

// Update updates a record
func (c *CachedRepository) Update(ctx context.Context, id int64, draft records.Draft) (records.Client, error) {
	result, err := c.base.Update(ctx, id, draft)
	if err == nil {
		c.invalidateAfterUpdate(ctx, id)
	}
	return result, err
}

// Delete removes a record
func (c *CachedRepository) Delete(ctx context.Context, id int64) error {
	err := c.base.Delete(ctx, id)
	if err == nil {
		c.invalidateAfterDelete(ctx, id)
	}
	return err
}

// invalidateAfterCreate drops the list; no item entry exists yet for a new id
func (c *CachedRepository) invalidateAfterCreate(ctx context.Context) {
	c.invalidate(ctx, c.ListKey())
}

// invalidateAfterUpdate drops the list and the entry of the written record
func (c *CachedRepository) invalidateAfterUpdate(ctx context.Context, id int64) {
	c.invalidate(ctx, c.ListKey(), c.ItemKey(id))
}

// invalidateAfterDelete invalidates the same keys as an update
func (c *CachedRepository) invalidateAfterDelete(ctx context.Context, id int64) {
	c.invalidateAfterUpdate(ctx, id)
}

func (c *CachedRepository) invalidate(ctx context.Context, keys ...cache.Key) {
	keys = dedupeKeys(append(keys, invalidationKeysFromContext(ctx)...))
	c.coord.Invalidate(ctx, keys...)
}
