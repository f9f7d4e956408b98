package lazy

// Size reports how many states are currently cached.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.states)
}

// IsFull reports whether the cache has reached maxStates.
func (c *Cache) IsFull() bool {
	return c.Size() >= int(c.maxStates)
}

// Stats returns the running hit/miss counts and the derived hit rate.
// A hit rate below roughly 90% usually means MaxStates is too small for
// the pattern and input being searched.
func (c *Cache) Stats() (hits, misses uint64, hitRate float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	hits, misses = c.hits, c.misses
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return hits, misses, hitRate
}

// ResetStats zeroes the hit/miss counters without touching cached state,
// for isolating a benchmark iteration from warm-up traffic.
func (c *Cache) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits, c.misses = 0, 0
}

// ClearCount reports how many times ClearKeepMemory has fired during the
// current search.
func (c *Cache) ClearCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clearCount
}

// ResetClearCount zeroes the clear budget, called at the start of each new
// search so a prior search's thrashing doesn't count against this one.
func (c *Cache) ResetClearCount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearCount = 0
}
