package lazy

// SearchReverseLimitedQuadratic is SearchReverseLimited's signal that the
// scan hit its minStart guard without reaching a dead state, meaning the
// caller should retry with a different (non-quadratic) strategy rather
// than trust this result.
const SearchReverseLimitedQuadratic = -2

// SearchReverse scans haystack[start:end] backward from end-1, looking
// for where a reverse-direction match state is reached — which
// corresponds to the start of a forward match. It reads the slice in
// reverse rather than allocating a reversed copy, and unrolls 4
// transitions per iteration the same way the forward searches do, since
// reverse search has neither word-boundary nor acceleration concerns to
// complicate batching.
//
// Used by the reverse-suffix and reverse-anchored strategies to locate a
// match's start without a second allocation.
func (d *DFA) SearchReverse(haystack []byte, start, end int) int { // Reverse DFA search with 4x unrolling
	if end <= start || end > len(haystack) {
		return -1
	}

	currentState := d.getStartStateForReverse(haystack, end)
	if currentState == nil {
		return d.nfaFallbackReverse(haystack, start, end)
	}

	lastMatch := -1
	if currentState.IsMatch() {
		lastMatch = end
	}

	at := end - 1

	for at >= start+3 {
		nextID := currentState.transitions[d.byteToClass(haystack[at])]
		if isSpecialStateID(nextID) {
			goto reverseSlowPath
		}
		currentState = d.states[int(nextID)]
		if currentState == nil {
			return d.nfaFallbackReverse(haystack, start, end)
		}
		if currentState.isMatch {
			lastMatch = at
		}
		at--

		nextID = currentState.transitions[d.byteToClass(haystack[at])]
		if isSpecialStateID(nextID) {
			goto reverseSlowPath
		}
		currentState = d.states[int(nextID)]
		if currentState == nil {
			return d.nfaFallbackReverse(haystack, start, end)
		}
		if currentState.isMatch {
			lastMatch = at
		}
		at--

		nextID = currentState.transitions[d.byteToClass(haystack[at])]
		if isSpecialStateID(nextID) {
			goto reverseSlowPath
		}
		currentState = d.states[int(nextID)]
		if currentState == nil {
			return d.nfaFallbackReverse(haystack, start, end)
		}
		if currentState.isMatch {
			lastMatch = at
		}
		at--

		nextID = currentState.transitions[d.byteToClass(haystack[at])]
		if isSpecialStateID(nextID) {
			goto reverseSlowPath
		}
		currentState = d.states[int(nextID)]
		if currentState == nil {
			return d.nfaFallbackReverse(haystack, start, end)
		}
		if currentState.isMatch {
			lastMatch = at
		}
		at--

		continue

	reverseSlowPath:
		break
	}

	for at >= start {
		b := haystack[at]

		classIdx := d.byteToClass(b)
		nextID, ok := currentState.Transition(classIdx)
		switch {
		case !ok:
			nextState, err := d.determinize(currentState, b)
			if err != nil {
				if isCacheCleared(err) {
					currentState = d.getStartStateForReverse(haystack, at+1)
					if currentState == nil {
						return d.nfaFallbackReverse(haystack, start, end)
					}
					continue
				}
				return d.nfaFallbackReverse(haystack, start, end)
			}
			if nextState == nil {
				return lastMatch
			}
			currentState = nextState

		case nextID == DeadState:
			return lastMatch

		default:
			currentState = d.getState(nextID)
			if currentState == nil {
				return d.nfaFallbackReverse(haystack, start, end)
			}
		}

		if currentState.IsMatch() {
			lastMatch = at
		}
		at--
	}

	return lastMatch
}

// SearchReverseLimited is SearchReverse with an anti-quadratic guard:
// repeated reverse scans over the same region (as happen when a reverse
// suffix match turns out to be a false positive) can degrade to O(n^2), so
// this refuses to scan past minStart and instead reports
// SearchReverseLimitedQuadratic, telling the caller to fall back to a
// linear-time strategy.
func (d *DFA) SearchReverseLimited(haystack []byte, start, end, minStart int) int {
	if end <= start || end > len(haystack) {
		return -1
	}

	currentState := d.getStartStateForReverse(haystack, end)
	if currentState == nil {
		return d.nfaFallbackReverse(haystack, start, end)
	}

	lastMatch := -1
	if currentState.IsMatch() {
		lastMatch = end
	}

	lowerBound := start
	if minStart > lowerBound {
		lowerBound = minStart
	}

	for at := end - 1; at >= lowerBound; at-- {
		b := haystack[at]

		classIdx := d.byteToClass(b)
		nextID, ok := currentState.Transition(classIdx)
		switch {
		case !ok:
			nextState, err := d.determinize(currentState, b)
			if err != nil {
				if isCacheCleared(err) {
					currentState = d.getStartStateForReverse(haystack, at+1)
					if currentState == nil {
						return d.nfaFallbackReverse(haystack, start, end)
					}
					at++
					continue
				}
				return d.nfaFallbackReverse(haystack, start, end)
			}
			if nextState == nil {
				return lastMatch
			}
			currentState = nextState

		case nextID == DeadState:
			return lastMatch

		default:
			currentState = d.getState(nextID)
			if currentState == nil {
				return d.nfaFallbackReverse(haystack, start, end)
			}
		}

		if currentState.IsMatch() {
			lastMatch = at
		}
	}

	if lowerBound > start && lastMatch < 0 {
		return SearchReverseLimitedQuadratic
	}
	return lastMatch
}

// IsMatchReverse is SearchReverse narrowed to a yes/no answer, returning
// as soon as any reverse match state is reached.
func (d *DFA) IsMatchReverse(haystack []byte, start, end int) bool {
	if end <= start || end > len(haystack) {
		return false
	}

	currentState := d.getStartStateForReverse(haystack, end)
	if currentState == nil {
		_, _, matched := d.pikevm.Search(haystack[start:end])
		return matched
	}
	if currentState.IsMatch() {
		return true
	}

	for at := end - 1; at >= start; at-- {
		b := haystack[at]

		classIdx := d.byteToClass(b)
		nextID, ok := currentState.Transition(classIdx)
		switch {
		case !ok:
			nextState, err := d.determinize(currentState, b)
			if err != nil {
				if isCacheCleared(err) {
					currentState = d.getStartStateForReverse(haystack, at+1)
					if currentState == nil {
						_, _, matched := d.pikevm.Search(haystack[start:end])
						return matched
					}
					at++
					continue
				}
				_, _, matched := d.pikevm.Search(haystack[start:end])
				return matched
			}
			if nextState == nil {
				return false
			}
			currentState = nextState

		case nextID == DeadState:
			return false

		default:
			currentState = d.getState(nextID)
			if currentState == nil {
				_, _, matched := d.pikevm.Search(haystack[start:end])
				return matched
			}
		}

		if currentState.IsMatch() {
			return true
		}
	}

	// A trailing optional element (e.g. pattern "0?0" against "0") can
	// leave the final state matching even though the loop never saw an
	// intermediate match.
	return currentState.IsMatch()
}

// getStartStateForReverse returns the start state for a reverse scan
// ending at end, keyed by the look-ahead byte at end (reverse search's
// equivalent of look-behind), caching it the same way getStartState does
// for forward search.
func (d *DFA) getStartStateForReverse(haystack []byte, end int) *State {
	var kind StartKind
	if end >= len(haystack) {
		kind = StartText
	} else {
		kind = d.startTable.GetKind(haystack[end])
	}

	if stateID := d.startTable.Get(kind, false); stateID != InvalidState {
		return d.getState(stateID)
	}

	builder := NewBuilderWithWordBoundary(d.nfa, d.config, d.hasWordBoundary)
	cfg := StartConfig{Kind: kind, Anchored: false}
	state, key := ComputeStartStateWithStride(builder, d.nfa, cfg, d.AlphabetLen())

	insertedState, existed, err := d.cache.GetOrInsert(key, state)
	if err != nil {
		return state
	}
	if !existed {
		d.registerState(insertedState)
	}
	d.startTable.Set(kind, false, insertedState.ID())
	return insertedState
}

// nfaFallbackReverse runs the NFA over haystack[start:end] and translates
// its match-start offset back into absolute coordinates, for reverse
// search callers that need a position rather than a bool.
func (d *DFA) nfaFallbackReverse(haystack []byte, start, end int) int {
	matchStart, _, matched := d.pikevm.Search(haystack[start:end])
	if !matched {
		return -1
	}
	return start + matchStart
}
