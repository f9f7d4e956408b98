package nfa

// utf8SuffixCache caches UTF-8 suffix states for deduplication during NFA construction.
// This significantly reduces the number of states when compiling patterns with '.' (dot)
// or Unicode character classes by sharing common continuation byte states.
//
// Based on Rust regex-automata's Utf8SuffixMap (map.rs:187-296).
//
// The key insight is that UTF-8 sequences share common suffixes:
//   - E1-EC and EE-EF both end with [80-BF][80-BF]
//   - All multi-byte sequences end with [80-BF]
//
// By processing UTF-8 byte sequences in REVERSE order and caching
// (targetState, byteRange) -> stateID mappings, we can reuse states.
//
// Example for '.':
//
//	Without caching: 39 states (each [80-BF] duplicated)
//	With caching: ~13-15 states (shared continuation bytes)
type utf8SuffixCache struct {
	version  uint16
	capacity int
	entries  []utf8SuffixEntry
}

// utf8SuffixKey uniquely identifies a suffix transition.
// The key is (From, Start, End) where:
//   - From: the target state this byte range transitions TO
//   - Start, End: the byte range [Start, End]
type utf8SuffixKey struct {
	from  StateID
	start byte
	end   byte
}

type utf8SuffixEntry struct {
	version uint16
	key     utf8SuffixKey
	val     StateID
}

// defaultUtf8SuffixCacheCapacity is the initial cache size.
// Rust uses 1000, but for '.' we only need ~20 entries.
// Using a smaller size reduces memory and improves cache locality.
const defaultUtf8SuffixCacheCapacity = 64

// newUtf8SuffixCache creates a new suffix cache.
func newUtf8SuffixCache() *utf8SuffixCache {
	return &utf8SuffixCache{
		version:  1,
		capacity: defaultUtf8SuffixCacheCapacity,
		entries:  make([]utf8SuffixEntry, defaultUtf8SuffixCacheCapacity),
	}
}

// clear resets the cache for reuse without reallocating.
// Uses version increment for O(1) clearing.
func (c *utf8SuffixCache) clear() {
	c.version++
	if c.version == 0 {
		// Handle overflow by resetting all entries
		c.version = 1
		for i := range c.entries {
			c.entries[i].version = 0
		}
	}
}
