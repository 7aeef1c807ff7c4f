// Package hash wraps xxHash64 for the one place wpilog needs a fast,
// non-authoritative string hash: keying the structify post-pass's
// descriptor cache (see value.DescriptorCache). It is unrelated to the
// type-serial fingerprint in package typeserial, which the wire encoding
// fixes to a specific, deliberately simple formula — this package is
// purely an internal performance detail with no on-disk footprint.
package hash

import "github.com/cespare/xxhash/v2"

// TypeHash computes the xxHash64 of a struct type string.
func TypeHash(typeStr string) uint64 {
	return xxhash.Sum64String(typeStr)
}
