package lazy

import (
	"sync"

	"github.com/corelex/rex2/internal/conv"
)

// Cache is the bounded, concurrency-safe table of determinized states a DFA
// consults and grows during search. It maps a StateKey (a hash of an NFA
// state set) to the *State built for that set, so the same set of live NFA
// threads always resolves to the same DFA state rather than being
// redetermized every time it's reached.
//
// There is no per-state eviction: once Insert finds the cache at capacity
// it reports ErrCacheFull, leaving the decision of whether to clear and
// rebuild (see ClearKeepMemory) to the DFA driving the search.
type Cache struct {
	mu sync.RWMutex

	states map[StateKey]*State

	maxStates uint32

	// nextID hands out state IDs starting at 1; StartState, 0, is always
	// pre-assigned rather than coming through this counter.
	nextID StateID

	// clearCount counts clears within the current search, checked against
	// Config.MaxCacheClears to decide when to give up and fall back to the
	// NFA instead of thrashing.
	clearCount int

	hits   uint64
	misses uint64
}

// NewCache allocates an empty cache that will hold at most maxStates
// states before Insert starts reporting ErrCacheFull.
func NewCache(maxStates uint32) *Cache {
	return &Cache{
		states:    make(map[StateKey]*State, maxStates),
		maxStates: maxStates,
		nextID:    StartState + 1,
	}
}

// Get looks up a previously determinized state by key.
func (c *Cache) Get(key StateKey) (*State, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	state, ok := c.states[key]
	if ok {
		c.hits++
	}
	return state, ok
}

// Insert stores state under key and assigns it an ID if it doesn't already
// have one (StartState is pre-assigned and skips this). If key is already
// present — another caller raced to determinize the same state — the
// existing entry's ID is returned instead of overwriting it.
func (c *Cache) Insert(key StateKey, state *State) (StateID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.states[key]; ok {
		c.hits++
		return existing.ID(), nil
	}

	if conv.IntToUint32(len(c.states)) >= c.maxStates {
		c.misses++
		return InvalidState, ErrCacheFull
	}

	if state.id == InvalidState {
		state.id = c.nextID
		c.nextID++
	}

	c.states[key] = state
	c.misses++
	return state.ID(), nil
}

// GetOrInsert is the combined read-then-write path determinization uses:
// return the cached state for key if one exists, otherwise insert state
// and return it. The bool result tells the caller which happened.
func (c *Cache) GetOrInsert(key StateKey, state *State) (*State, bool, error) {
	if existing, ok := c.Get(key); ok {
		return existing, true, nil
	}

	stateID, err := c.Insert(key, state)
	if err != nil {
		return nil, false, err
	}

	c.mu.RLock()
	insertedState := c.states[key]
	c.mu.RUnlock()

	if insertedState.ID() != stateID {
		panic("cache state ID mismatch")
	}
	return insertedState, false, nil
}

// Clear empties the cache and resets every counter, including clearCount.
// Used by tests and ResetCache; a search in progress should use
// ClearKeepMemory instead, which preserves clearCount's budget tracking.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states = make(map[StateKey]*State, c.maxStates)
	c.nextID = StartState + 1
	c.clearCount = 0
	c.hits = 0
	c.misses = 0
}

// ClearKeepMemory empties the state table without discarding its backing
// storage or touching hit/miss statistics, and counts the clear against
// the search's clear budget. Called when Insert reports the cache full but
// the search wants to keep going rather than drop to the NFA immediately.
//
// Every *State obtained before this call is stale afterward; the caller
// must re-derive its position from a freshly computed start state.
func (c *Cache) ClearKeepMemory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.states {
		delete(c.states, k)
	}
	c.nextID = StartState + 1
	c.clearCount++
}
