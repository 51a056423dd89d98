package repositorycache

import (
	"context"

	"github.com/goliatone/go-clientes-sync/cache"
)

type invalidationKeysContextKey struct{}

// WithInvalidationKeys attaches extra keys to ctx. A successful write made
// with ctx invalidates them along with the keys of the written record.
func WithInvalidationKeys(ctx context.Context, keys ...cache.Key) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(keys) == 0 {
		return ctx
	}

	existing := invalidationKeysFromContext(ctx)
	combined := dedupeKeys(append(existing, keys...))
	if len(combined) == 0 {
		return ctx
	}

	return context.WithValue(ctx, invalidationKeysContextKey{}, combined)
}

func invalidationKeysFromContext(ctx context.Context) []cache.Key {
	if ctx == nil {
		return nil
	}
	if keys, ok := ctx.Value(invalidationKeysContextKey{}).([]cache.Key); ok {
		return append([]cache.Key(nil), keys...)
	}
	return nil
}

func dedupeKeys(keys []cache.Key) []cache.Key {
	if len(keys) == 0 {
		return nil
	}
	seen := make(map[cache.Key]struct{}, len(keys))
	out := keys[:0]
	for _, key := range keys {
		if key.Resource == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
