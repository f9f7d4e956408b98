package nfa

// hash computes the cache index for a key using FNV-1a.
func (c *utf8SuffixCache) hash(key utf8SuffixKey) int {
	// FNV-1a hash - simple and fast for small keys
	h := uint64(14695981039346656037)
	h = (h ^ uint64(key.from)) * 1099511628211
	h = (h ^ uint64(key.start)) * 1099511628211
	h = (h ^ uint64(key.end)) * 1099511628211
	//nolint:gosec // capacity is always small (64), no overflow risk
	return int(h % uint64(c.capacity))
}

// get looks up a cached state for the given key.
// Returns (stateID, true) if found, (0, false) otherwise.
func (c *utf8SuffixCache) get(key utf8SuffixKey) (StateID, bool) {
	idx := c.hash(key)
	e := &c.entries[idx]
	if e.version == c.version && e.key == key {
		return e.val, true
	}
	return 0, false
}

// set stores a state in the cache.
// Note: This is a simple direct-mapped cache - collisions overwrite.
// For UTF-8 dot compilation, collisions are rare due to the small working set.
func (c *utf8SuffixCache) set(key utf8SuffixKey, val StateID) {
	idx := c.hash(key)
	c.entries[idx] = utf8SuffixEntry{
		version: c.version,
		key:     key,
		val:     val,
	}
}

// getOrCreate returns a cached state or creates a new one using the builder.
// This is the main API for suffix-sharing compilation.
//
// Parameters:
//   - builder: NFA builder to create new states
//   - targetState: the state this byte range should transition TO
//   - lo, hi: the byte range [lo, hi]
//
// Returns the StateID for a ByteRange state matching [lo, hi] -> targetState.
// If an identical state exists in the cache, it is reused.
func (c *utf8SuffixCache) getOrCreate(builder *Builder, targetState StateID, lo, hi byte) StateID {
	key := utf8SuffixKey{from: targetState, start: lo, end: hi}

	if cached, found := c.get(key); found {
		return cached
	}

	// Create new state and cache it
	newState := builder.AddByteRange(lo, hi, targetState)
	c.set(key, newState)
	return newState
}
