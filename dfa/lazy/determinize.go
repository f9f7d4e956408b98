package lazy

import "github.com/corelex/rex2/nfa"

// determinize computes the state reached from current on byte b, creating
// and caching a new DFA state if this transition hasn't been seen before.
//
// The steps: move current's NFA state set across b (carrying the word
// context needed for \b/\B), hash the resulting set plus its word context
// into a cache key, and either reuse an existing state under that key or
// build and register a new one. An empty resulting set means no
// transition exists on b, i.e. a dead state.
//
// Returns (nil, nil) for a dead state — not an error — or (nil,
// errCacheCleared) when inserting would have overflowed the cache and a
// clear-and-rebuild just happened, which invalidates every *State the
// caller is holding.
func (d *DFA) determinize(current *State, b byte) (*State, error) {
	builder := NewBuilderWithWordBoundary(d.nfa, d.config, d.hasWordBoundary)
	classIdx := d.byteToClass(b)

	nextNFAStates := builder.moveWithWordContext(current.NFAStates(), b, current.IsFromWord())
	if len(nextNFAStates) == 0 {
		current.AddTransition(classIdx, DeadState)
		return nil, nil //nolint:nilnil // dead state is a valid, non-error result
	}

	if len(nextNFAStates) > d.config.DeterminizationLimit {
		return nil, &DFAError{Kind: StateLimitExceeded, Message: "determinization limit exceeded"}
	}

	// The destination state's word context is defined by the byte that
	// got us there, not by the source state's context.
	nextIsFromWord := isWordByte(b)
	key := ComputeStateKeyWithWord(nextNFAStates, nextIsFromWord)

	if existing, ok := d.cache.Get(key); ok {
		current.AddTransition(classIdx, existing.ID())
		return existing, nil
	}

	isMatch := builder.containsMatchState(nextNFAStates)
	newState := NewStateWithStride(InvalidState, nextNFAStates, isMatch, nextIsFromWord, d.AlphabetLen())

	if _, err := d.cache.Insert(key, newState); err != nil {
		if clearErr := d.tryClearCache(); clearErr != nil {
			return nil, clearErr
		}
		return nil, errCacheCleared
	}

	d.registerState(newState)
	current.AddTransition(classIdx, newState.ID())
	return newState, nil
}

// tryClearCache evicts every determinized state and rebuilds just the
// start state, letting a search continue instead of falling back to the
// NFA the moment the cache fills. Returns ErrCacheFull once
// config.MaxCacheClears has been hit in one search.
func (d *DFA) tryClearCache() error {
	if d.cache.ClearCount() >= d.config.MaxCacheClears {
		return ErrCacheFull
	}

	d.cache.ClearKeepMemory()
	d.states = d.states[:0]
	d.startTable = NewStartTable()

	builder := NewBuilderWithWordBoundary(d.nfa, d.config, d.hasWordBoundary)
	startLook := LookSetFromStartKind(StartText)
	startStateSet := builder.epsilonClosure([]nfa.StateID{d.nfa.StartUnanchored()}, startLook)
	isMatch := builder.containsMatchState(startStateSet)
	startState := NewStateWithStride(StartState, startStateSet, isMatch, false, d.AlphabetLen())

	key := ComputeStateKeyWithWord(startStateSet, false)
	_, _ = d.cache.Insert(key, startState) // cache was just cleared, cannot fail
	d.registerState(startState)
	d.startTable.Set(StartText, false, startState.ID())
	return nil
}

// getState resolves a StateID to its *State via direct slice indexing,
// returning nil for DeadState or an ID that hasn't been registered yet.
func (d *DFA) getState(id StateID) *State {
	if id == DeadState {
		return nil
	}
	idx := int(id)
	if idx >= len(d.states) {
		return nil
	}
	return d.states[idx]
}

// registerState records state at its ID's slot, growing the states slice
// as needed. IDs are handed out sequentially, so this keeps lookups O(1).
func (d *DFA) registerState(state *State) {
	id := int(state.ID())
	for len(d.states) <= id {
		d.states = append(d.states, nil)
	}
	d.states[id] = state
}

// checkEOIMatch reports whether state would become a match state at
// end-of-input — i.e. a trailing word-boundary assertion (as in `test\b`)
// resolves to satisfied once there is no next byte to check against.
func (d *DFA) checkEOIMatch(state *State) bool {
	if state == nil {
		return false
	}
	builder := NewBuilderWithWordBoundary(d.nfa, d.config, d.hasWordBoundary)
	return builder.CheckEOIMatch(state.NFAStates(), state.IsFromWord())
}

// checkWordBoundaryMatch reports whether consuming nextByte would resolve
// a pending \b/\B assertion into a match, without actually consuming it.
// This lets the search loops return a match position that sits right
// before the byte that triggered the boundary, rather than having to
// speculatively consume and roll back.
func (d *DFA) checkWordBoundaryMatch(state *State, nextByte byte) bool {
	if state == nil || state.IsMatch() {
		return false
	}
	builder := NewBuilderWithWordBoundary(d.nfa, d.config, d.hasWordBoundary)
	wordBoundarySatisfied := state.IsFromWord() != isWordByte(nextByte)
	resolved := builder.resolveWordBoundaries(state.NFAStates(), wordBoundarySatisfied)
	return builder.containsMatchState(resolved)
}

// getStartState returns the start state appropriate for searching from
// pos, given the look-behind byte (if any) and whether the search is
// anchored, computing and caching it in the StartTable on first use.
func (d *DFA) getStartState(haystack []byte, pos int, anchored bool) *State {
	var kind StartKind
	if pos == 0 {
		kind = StartText
	} else {
		kind = d.startTable.GetKind(haystack[pos-1])
	}

	if stateID := d.startTable.Get(kind, anchored); stateID != InvalidState {
		return d.getState(stateID)
	}

	builder := NewBuilderWithWordBoundary(d.nfa, d.config, d.hasWordBoundary)
	cfg := StartConfig{Kind: kind, Anchored: anchored}
	state, key := ComputeStartStateWithStride(builder, d.nfa, cfg, d.AlphabetLen())

	insertedState, existed, err := d.cache.GetOrInsert(key, state)
	if err != nil {
		// Cache full: hand back the computed state uncached so the
		// search can still proceed.
		return state
	}
	if !existed {
		d.registerState(insertedState)
	}
	d.startTable.Set(kind, anchored, insertedState.ID())
	return insertedState
}

// getStartStateForUnanchored is getStartState for the common unanchored
// Find-family case.
func (d *DFA) getStartStateForUnanchored(haystack []byte, pos int) *State {
	return d.getStartState(haystack, pos, false)
}

// matchesEmpty reports whether the pattern matches the empty string,
// checked first against the cached start state and falling back to the
// NFA when that's not conclusive.
func (d *DFA) matchesEmpty() bool {
	if startState := d.getState(StartState); startState != nil && startState.IsMatch() {
		return true
	}
	start, end, matched := d.pikevm.Search([]byte{})
	return matched && start == 0 && end == 0
}

// nfaFallback runs the Thompson NFA from startPos when the DFA can't
// continue (cache exhausted, determinization limit hit), preserving
// absolute positions so anchors still resolve correctly.
func (d *DFA) nfaFallback(haystack []byte, startPos int) int {
	_, end, matched := d.pikevm.SearchAt(haystack, startPos)
	if !matched {
		return -1
	}
	return end
}
