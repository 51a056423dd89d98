package cache

import (
	"fmt"
	"strconv"
	"strings"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// Key identifies a coordinator entry: a resource kind plus an optional id.
// A Key without ID is the "all records" entry for that resource.
type Key struct {
	Resource string
	ID       string
}

// ListKey returns the key of the full collection of resource.
func ListKey(resource string) Key {
	return Key{Resource: normalizeResource(resource)}
}

// ItemKey returns the key of a single record of resource.
func ItemKey(resource string, id any) Key {
	return Key{Resource: normalizeResource(resource), ID: formatID(id)}
}

// IsList reports whether k addresses a whole collection.
func (k Key) IsList() bool {
	return k.ID == ""
}

// String renders the key as "resource" or "resource::id".
func (k Key) String() string {
	if k.IsList() {
		return k.Resource
	}
	return k.Resource + KeySeparator + k.ID
}

// SameResource matches every key (list or item) of resource.
func SameResource(resource string) func(Key) bool {
	resource = normalizeResource(resource)
	return func(k Key) bool {
		return k.Resource == resource
	}
}

func formatID(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// KeySerializer builds the storage key for a coordinator entry. The
// generation is part of the storage key so a value fetched before an
// invalidation can never be read back after it.
type KeySerializer interface {
	SerializeKey(key Key, generation uint64) string
	// ResourcePrefixes returns the storage key prefixes covering every
	// entry of resource, at any generation, and nothing else.
	ResourcePrefixes(resource string) []string
}

// generationSeparator splits the entry key from its generation.
const generationSeparator = "#"

type defaultKeySerializer struct{}

// NewDefaultKeySerializer returns the serializer used by the coordinator.
func NewDefaultKeySerializer() KeySerializer {
	return defaultKeySerializer{}
}

func (defaultKeySerializer) SerializeKey(key Key, generation uint64) string {
	var b strings.Builder
	b.WriteString(key.String())
	b.WriteString(generationSeparator)
	b.WriteString(strconv.FormatUint(generation, 10))
	return b.String()
}

func (defaultKeySerializer) ResourcePrefixes(resource string) []string {
	resource = normalizeResource(resource)
	if resource == "" {
		return nil
	}
	return []string{resource + generationSeparator, resource + KeySeparator}
}
