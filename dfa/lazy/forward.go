package lazy

// unanchoredBoolFallback runs the NFA from at and reports only whether it
// matched, for the search loops' "give up on the DFA, ask the NFA"
// branches that don't need a position back — just a yes/no answer,
// unanchored.
func (d *DFA) unanchoredBoolFallback(haystack []byte, at int) bool {
	start, end, matched := d.pikevm.SearchAt(haystack, at)
	return matched && start >= 0 && end >= start
}

// anchoredBoolFallback is unanchoredBoolFallback's anchored counterpart:
// the NFA match must start exactly at at, used when a caller has already
// committed to a candidate start position and only needs it confirmed.
func (d *DFA) anchoredBoolFallback(haystack []byte, at int) bool {
	start, end, matched := d.pikevm.SearchAt(haystack, at)
	return matched && start == at && end >= start
}

// Find locates the first match anywhere in haystack, returning its end
// position or -1.
//
//	dfa, _ := lazy.CompilePattern("hello")
//	dfa.Find([]byte("say hello world")) // 9 (end of "hello")
func (d *DFA) Find(haystack []byte) int {
	return d.FindAt(haystack, 0)
}

// FindAt is Find starting the search at position at within the full
// haystack, rather than conceptually slicing it — so anchors like ^ still
// refer to the true start of the string. FindAll-family callers rely on
// this to re-enter the search after each match without breaking anchoring.
func (d *DFA) FindAt(haystack []byte, at int) int {
	if at > len(haystack) {
		return -1
	}
	if at == len(haystack) {
		if d.matchesEmpty() {
			return at
		}
		return -1
	}
	if len(haystack) == 0 {
		if d.matchesEmpty() {
			return 0
		}
		return -1
	}

	if d.prefilter != nil {
		return d.findWithPrefilterAt(haystack, at)
	}
	return d.searchAt(haystack, at)
}

// SearchAt is FindAt without ever consulting the prefilter, for callers
// that have already narrowed to a candidate region (e.g. after a reverse
// scan) and just need a forward DFA pass from there.
func (d *DFA) SearchAt(haystack []byte, at int) int {
	if at > len(haystack) {
		return -1
	}
	if at == len(haystack) {
		if d.matchesEmpty() {
			return at
		}
		return -1
	}
	if len(haystack) == 0 {
		if d.matchesEmpty() {
			return 0
		}
		return -1
	}
	return d.searchAt(haystack, at)
}

// SearchAtAnchored is SearchAt with the match additionally required to
// begin exactly at at (no implicit unanchored prefix), used by the
// reverse-suffix strategy once it has located a candidate match start.
func (d *DFA) SearchAtAnchored(haystack []byte, at int) int {
	if at > len(haystack) {
		return -1
	}
	if at == len(haystack) {
		if d.matchesEmpty() {
			return at
		}
		return -1
	}
	if len(haystack) == 0 {
		if d.matchesEmpty() {
			return 0
		}
		return -1
	}

	currentState := d.getStartState(haystack, at, true)
	if currentState == nil {
		return d.nfaFallback(haystack, at)
	}

	lastMatch := -1
	if currentState.IsMatch() {
		lastMatch = at
	}

	for pos := at; pos < len(haystack); pos++ {
		b := haystack[pos]

		if d.hasWordBoundary && d.checkWordBoundaryMatch(currentState, b) {
			return pos
		}

		classIdx := d.byteToClass(b)
		nextID, ok := currentState.Transition(classIdx)
		switch {
		case !ok:
			nextState, err := d.determinize(currentState, b)
			if err != nil {
				if isCacheCleared(err) {
					currentState = d.getStartState(haystack, pos, true)
					if currentState == nil {
						return d.nfaFallback(haystack, at)
					}
					pos--
					continue
				}
				return d.nfaFallback(haystack, at)
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
				return d.nfaFallback(haystack, at)
			}
		}

		if currentState.IsMatch() {
			lastMatch = pos + 1
		}
	}

	if d.checkEOIMatch(currentState) {
		return len(haystack)
	}
	return lastMatch
}

// IsMatch reports whether the pattern matches anywhere in haystack. Unlike
// Find it stops at the first match state reached instead of pursuing
// leftmost-longest, which is typically 2-10x faster for a plain yes/no
// query.
func (d *DFA) IsMatch(haystack []byte) bool {
	if len(haystack) == 0 {
		return d.matchesEmpty()
	}
	if d.prefilter != nil {
		return d.isMatchWithPrefilter(haystack)
	}
	return d.searchEarliestMatch(haystack, 0)
}

// isMatchWithPrefilter narrows IsMatch to the prefilter's candidate
// positions, confirming each with an anchored DFA check rather than
// letting an unanchored search re-scan from the candidate to the end
// (which, for a non-matching candidate, degraded to quadratic behavior).
func (d *DFA) isMatchWithPrefilter(haystack []byte) bool {
	if d.prefilter.IsComplete() {
		return d.prefilter.Find(haystack, 0) != -1
	}

	pos := d.prefilter.Find(haystack, 0)
	if pos == -1 {
		return false
	}
	if d.searchEarliestMatchAnchored(haystack, pos) {
		return true
	}

	for pos < len(haystack) {
		pos++
		candidate := d.prefilter.Find(haystack, pos)
		if candidate == -1 {
			return false
		}
		pos = candidate
		if d.searchEarliestMatchAnchored(haystack, pos) {
			return true
		}
	}
	return false
}

// searchEarliestMatch is IsMatch's core loop: an unanchored DFA scan from
// startPos that returns the instant any match state is reached, with no
// leftmost-longest bookkeeping to slow it down. The 4x unrolled fast path
// applies whenever the pattern has no word-boundary assertions and the
// current state isn't flagged for SIMD acceleration (a stronger
// optimization in its own right); anything else drops to the single-byte
// slow path, which handles every edge case precisely.
func (d *DFA) searchEarliestMatch(haystack []byte, startPos int) bool { //nolint:funlen,maintidx // DFA search with 4x unrolling
	if startPos > len(haystack) {
		return false
	}
	if d.isAlwaysAnchored && startPos > 0 {
		return false
	}

	currentState := d.getStartStateForUnanchored(haystack, startPos)
	if currentState == nil {
		return d.unanchoredBoolFallback(haystack, startPos)
	}
	if currentState.IsMatch() {
		return true
	}

	canUnroll := !d.hasWordBoundary
	endPos := len(haystack)
	pos := startPos

	for pos < endPos {
		if canUnroll && !currentState.IsAccelerable() && pos+3 < endPos {
			nextID := currentState.transitions[d.byteToClass(haystack[pos])]
			if isSpecialStateID(nextID) {
				goto earliestSlowPath
			}
			currentState = d.states[int(nextID)]
			if currentState == nil {
				return d.unanchoredBoolFallback(haystack, startPos)
			}
			pos++
			if currentState.isMatch {
				return true
			}

			if pos+2 >= endPos {
				goto earliestSlowPath
			}

			nextID = currentState.transitions[d.byteToClass(haystack[pos])]
			if isSpecialStateID(nextID) {
				goto earliestSlowPath
			}
			currentState = d.states[int(nextID)]
			if currentState == nil {
				return d.unanchoredBoolFallback(haystack, startPos)
			}
			pos++
			if currentState.isMatch {
				return true
			}

			if pos+1 >= endPos {
				goto earliestSlowPath
			}

			nextID = currentState.transitions[d.byteToClass(haystack[pos])]
			if isSpecialStateID(nextID) {
				goto earliestSlowPath
			}
			currentState = d.states[int(nextID)]
			if currentState == nil {
				return d.unanchoredBoolFallback(haystack, startPos)
			}
			pos++
			if currentState.isMatch {
				return true
			}

			nextID = currentState.transitions[d.byteToClass(haystack[pos])]
			if isSpecialStateID(nextID) {
				goto earliestSlowPath
			}
			currentState = d.states[int(nextID)]
			if currentState == nil {
				return d.unanchoredBoolFallback(haystack, startPos)
			}
			pos++
			if currentState.isMatch {
				return true
			}

			continue
		}

	earliestSlowPath:
		if pos >= endPos {
			break
		}

		d.tryDetectAcceleration(currentState)

		if exitBytes := currentState.AccelExitBytes(); len(exitBytes) > 0 {
			nextPos := d.accelerate(haystack, pos, exitBytes)
			if nextPos == -1 {
				return false
			}
			pos = nextPos
		}

		b := haystack[pos]

		if d.hasWordBoundary && d.checkWordBoundaryMatch(currentState, b) {
			return true
		}

		classIdx := d.byteToClass(b)
		nextID, ok := currentState.Transition(classIdx)
		switch {
		case !ok:
			nextState, err := d.determinize(currentState, b)
			if err != nil {
				return d.unanchoredBoolFallback(haystack, startPos)
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
				return d.unanchoredBoolFallback(haystack, pos)
			}
		}

		pos++
		if currentState.IsMatch() {
			return true
		}
	}

	return d.checkEOIMatch(currentState)
}

// searchEarliestMatchAnchored is searchEarliestMatch with the match
// additionally required to start exactly at startPos, used to confirm a
// prefilter candidate without letting the scan drift past it (see
// isMatchWithPrefilter).
func (d *DFA) searchEarliestMatchAnchored(haystack []byte, startPos int) bool {
	if startPos > len(haystack) {
		return false
	}

	currentState := d.getStartState(haystack, startPos, true)
	if currentState == nil {
		return d.anchoredBoolFallback(haystack, startPos)
	}
	if currentState.IsMatch() {
		return true
	}

	for pos := startPos; pos < len(haystack); pos++ {
		b := haystack[pos]

		if d.hasWordBoundary && d.checkWordBoundaryMatch(currentState, b) {
			return true
		}

		classIdx := d.byteToClass(b)
		nextID, ok := currentState.Transition(classIdx)
		switch {
		case !ok:
			nextState, err := d.determinize(currentState, b)
			if err != nil {
				if isCacheCleared(err) {
					currentState = d.getStartState(haystack, pos, true)
					if currentState == nil {
						return d.anchoredBoolFallback(haystack, startPos)
					}
					pos--
					continue
				}
				return d.anchoredBoolFallback(haystack, startPos)
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
				return d.anchoredBoolFallback(haystack, startPos)
			}
		}

		if currentState.IsMatch() {
			return true
		}
	}

	return d.checkEOIMatch(currentState)
}

// findWithPrefilterAt is FindAt's prefilter-accelerated path: it jumps
// between prefilter candidates instead of scanning every byte, running a
// short DFA pass at each candidate to confirm or reject it, and tracks the
// leftmost-longest match once a candidate commits.
func (d *DFA) findWithPrefilterAt(haystack []byte, startAt int) int { //nolint:funlen // prefilter search with cache-clear handling needs multi-path logic
	if d.prefilter.IsComplete() {
		return d.prefilter.Find(haystack, startAt)
	}

	candidate := d.prefilter.Find(haystack, startAt)
	if candidate == -1 {
		return -1
	}
	pos := candidate

	currentState := d.getStartStateForUnanchored(haystack, pos)
	if currentState == nil {
		return d.nfaFallback(haystack, 0)
	}

	lastMatch := -1
	committed := false

	if currentState.IsMatch() {
		lastMatch = pos
		committed = true
	}

	for pos < len(haystack) {
		b := haystack[pos]

		if d.hasWordBoundary && d.checkWordBoundaryMatch(currentState, b) {
			return pos
		}

		classIdx := d.byteToClass(b)
		nextID, ok := currentState.Transition(classIdx)
		var nextState *State
		switch {
		case !ok:
			var err error
			nextState, err = d.determinize(currentState, b)
			if err != nil {
				if isCacheCleared(err) {
					currentState = d.getStartStateForUnanchored(haystack, pos)
					if currentState == nil {
						return d.nfaFallback(haystack, 0)
					}
					committed = lastMatch >= 0
					continue
				}
				return d.nfaFallback(haystack, 0)
			}
			if nextState == nil {
				if lastMatch != -1 {
					return lastMatch
				}
				pos++
				candidate = d.prefilter.Find(haystack, pos)
				if candidate == -1 {
					return -1
				}
				pos = candidate
				currentState = d.getStartStateForUnanchored(haystack, pos)
				if currentState == nil {
					return d.nfaFallback(haystack, 0)
				}
				lastMatch = -1
				committed = false
				if currentState.IsMatch() {
					lastMatch = pos
					committed = true
				}
				continue
			}
		case nextID == DeadState:
			if lastMatch != -1 {
				return lastMatch
			}
			pos++
			candidate = d.prefilter.Find(haystack, pos)
			if candidate == -1 {
				return -1
			}
			pos = candidate
			currentState = d.getStartStateForUnanchored(haystack, pos)
			if currentState == nil {
				return d.nfaFallback(haystack, 0)
			}
			lastMatch = -1
			committed = false
			if currentState.IsMatch() {
				lastMatch = pos
				committed = true
			}
			continue
		default:
			nextState = d.getState(nextID)
			if nextState == nil {
				return d.nfaFallback(haystack, 0)
			}
		}

		pos++
		currentState = nextState

		if currentState.IsMatch() {
			lastMatch = pos
			committed = true
		} else if committed {
			return lastMatch
		}

		// Back in the start state with nothing committed means we're
		// still in the unanchored prefix's self-loop; skip ahead to the
		// next prefilter candidate instead of scanning byte by byte.
		if !committed && currentState.ID() == StartState && pos < len(haystack) {
			candidate = d.prefilter.Find(haystack, pos)
			if candidate == -1 {
				return -1
			}
			if candidate > pos {
				pos = candidate
			}
		}
	}

	if d.checkEOIMatch(currentState) {
		return len(haystack)
	}
	return lastMatch
}

// searchAt is the unprefiltered leftmost-longest DFA search underlying
// Find/SearchAt. Like searchEarliestMatch it has a 4x unrolled fast path
// (borrowed from the same approach as the Rust regex crate's DFA search)
// for patterns without word-boundary assertions, gated off once a match
// has been committed since leftmost-longest tracking then needs per-byte
// granularity to know when an active thread has died out.
func (d *DFA) searchAt(haystack []byte, startPos int) int { //nolint:funlen,maintidx // DFA search with 4x unrolling is inherently complex
	if startPos > len(haystack) {
		return -1
	}
	if d.isAlwaysAnchored && startPos > 0 {
		return -1
	}

	currentState := d.getStartStateForUnanchored(haystack, startPos)
	if currentState == nil {
		return d.nfaFallback(haystack, startPos)
	}

	lastMatch := -1
	committed := false
	if currentState.IsMatch() {
		lastMatch = startPos
		committed = true
	}

	canUnroll := !d.hasWordBoundary
	end := len(haystack)
	pos := startPos

	for pos < end {
		if canUnroll && !committed && !currentState.IsAccelerable() && pos+3 < end {
			nextID := currentState.transitions[d.byteToClass(haystack[pos])]
			if isSpecialStateID(nextID) {
				goto slowPath
			}
			currentState = d.states[int(nextID)]
			if currentState == nil {
				return d.nfaFallback(haystack, startPos)
			}
			pos++

			if currentState.isMatch || pos+2 >= end {
				if currentState.isMatch {
					lastMatch = pos
					committed = true
				}
				goto slowPath
			}

			nextID = currentState.transitions[d.byteToClass(haystack[pos])]
			if isSpecialStateID(nextID) {
				goto slowPath
			}
			currentState = d.states[int(nextID)]
			if currentState == nil {
				return d.nfaFallback(haystack, startPos)
			}
			pos++

			if currentState.isMatch || pos+1 >= end {
				if currentState.isMatch {
					lastMatch = pos
					committed = true
				}
				goto slowPath
			}

			nextID = currentState.transitions[d.byteToClass(haystack[pos])]
			if isSpecialStateID(nextID) {
				goto slowPath
			}
			currentState = d.states[int(nextID)]
			if currentState == nil {
				return d.nfaFallback(haystack, startPos)
			}
			pos++

			if currentState.isMatch {
				lastMatch = pos
				committed = true
				goto slowPath
			}

			nextID = currentState.transitions[d.byteToClass(haystack[pos])]
			if isSpecialStateID(nextID) {
				goto slowPath
			}
			currentState = d.states[int(nextID)]
			if currentState == nil {
				return d.nfaFallback(haystack, startPos)
			}
			pos++

			if currentState.isMatch {
				lastMatch = pos
				committed = true
			}

			continue
		}

	slowPath:
		if pos >= end {
			break
		}

		d.tryDetectAcceleration(currentState)

		if exitBytes := currentState.AccelExitBytes(); len(exitBytes) > 0 {
			nextPos := d.accelerate(haystack, pos, exitBytes)
			if nextPos == -1 {
				return lastMatch
			}
			pos = nextPos
		}

		b := haystack[pos]

		if d.hasWordBoundary && d.checkWordBoundaryMatch(currentState, b) {
			return pos
		}

		classIdx := d.byteToClass(b)
		nextID, ok := currentState.Transition(classIdx)
		switch {
		case !ok:
			nextState, err := d.determinize(currentState, b)
			if err != nil {
				return d.nfaFallback(haystack, startPos)
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
				return d.nfaFallback(haystack, startPos)
			}
		}

		pos++

		if currentState.IsMatch() {
			lastMatch = pos
			committed = true
		} else if committed {
			if !d.hasInProgressPattern(currentState) {
				return lastMatch
			}
		}
	}

	if d.checkEOIMatch(currentState) {
		return len(haystack)
	}
	return lastMatch
}
