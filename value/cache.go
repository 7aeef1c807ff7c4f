package value

import "github.com/robolog/wpilog/internal/hash"

// DescriptorCache memoizes DescriptorRegistry lookups by a fast hash of
// the type string, avoiding a registry round trip for every raw value
// that shares a type during the structify post-pass, which can call
// Lookup once per data point across a long timeline.
//
// DescriptorCache is not safe for concurrent use; a Reader's structify
// pass runs single-threaded.
type DescriptorCache struct {
	registry DescriptorRegistry
	entries  map[uint64]cacheEntry
}

type cacheEntry struct {
	typeStr string
	desc    StructDescriptor
	ok      bool
}

// NewDescriptorCache wraps registry with a lookup cache.
func NewDescriptorCache(registry DescriptorRegistry) *DescriptorCache {
	return &DescriptorCache{
		registry: registry,
		entries:  make(map[uint64]cacheEntry),
	}
}

// Lookup resolves typeStr to a StructDescriptor, consulting the cache
// before falling back to the underlying registry. A hash collision
// between two distinct type strings falls back to the registry rather
// than trusting the cached entry, since — unlike the type-serial
// fingerprint used for data-record decoding — a wrong descriptor here
// would corrupt struct payload bytes rather than merely mis-dispatch.
func (c *DescriptorCache) Lookup(typeStr string) (StructDescriptor, bool) {
	h := hash.TypeHash(typeStr)
	if e, ok := c.entries[h]; ok && e.typeStr == typeStr {
		return e.desc, e.ok
	}

	desc, ok := c.registry.Lookup(typeStr)
	c.entries[h] = cacheEntry{typeStr: typeStr, desc: desc, ok: ok}

	return desc, ok
}
