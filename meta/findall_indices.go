package meta

// FindAllIndicesStreaming returns all non-overlapping match indices using streaming algorithm.
// For CharClassSearcher strategy, this uses single-pass state machine which is significantly
// faster than repeated FindIndicesAt calls (no per-match function call overhead).
//
// Returns slice of [2]int{start, end} pairs. Limit n (0=no limit) restricts match count.
// The results slice is reused if provided (pass nil for fresh allocation).
//
// This method is optimized for patterns like \w+, \d+, [a-z]+ where matches are frequent.
func (e *Engine) FindAllIndicesStreaming(haystack []byte, n int, results [][2]int) [][2]int {
	// Only CharClassSearcher benefits from streaming - others use standard loop
	if e.strategy != UseCharClassSearcher || e.charClassSearcher == nil {
		return e.findAllIndicesLoop(haystack, n, results)
	}

	// Use streaming state machine for CharClassSearcher
	allMatches := e.charClassSearcher.FindAllIndices(haystack, results)

	// Apply limit if specified
	if n > 0 && len(allMatches) > n {
		return allMatches[:n]
	}

	return allMatches
}

// findAllIndicesLoop is the standard loop-based FindAll for non-streaming strategies.
// Optimized: acquires SearchState once for entire loop to avoid sync.Pool overhead per match.
func (e *Engine) findAllIndicesLoop(haystack []byte, n int, results [][2]int) [][2]int {
	if results == nil {
		// Smart allocation: anchored patterns have max 1 match, others use capped heuristic.
		// This avoids huge allocations on large inputs (6MB → 62k capacity was causing 170µs overhead).
		var initCap int
		if e.isStartAnchored {
			initCap = 1 // Start-anchored patterns match at most once (position 0 only)
		} else {
			// Estimate ~1 match per 100 bytes, but cap at reasonable size to avoid
			// allocating megabytes for large inputs with few matches.
			initCap = len(haystack)/100 + 1
			if initCap > 256 {
				initCap = 256 // Cap at 256 to limit allocation overhead; append will grow if needed
			}
		}
		results = make([][2]int, 0, initCap)
	} else {
		results = results[:0]
	}

	pos := 0
	lastMatchEnd := -1

	// Get state ONCE for entire iteration - eliminates 1.29M sync.Pool ops for FindAll
	state := e.getSearchState()
	defer e.putSearchState(state)

	for n <= 0 || len(results) < n {
		start, end, found := e.findIndicesAtWithState(haystack, pos, state)
		if !found {
			break
		}

		// Skip empty matches that start exactly where the previous non-empty match ended.
		// This matches Go's stdlib behavior:
		// - "a*" on "ab" returns [[0 1] [2 2]], not [[0 1] [1 1] [2 2]]
		if start == end && start == lastMatchEnd {
			pos++
			if pos > len(haystack) {
				break
			}
			continue
		}

		results = append(results, [2]int{start, end})

		// Track non-empty match ends for the skip rule
		if start != end {
			lastMatchEnd = end
		}

		// Move position past this match
		switch {
		case start == end:
			// Empty match: advance by 1 to avoid infinite loop
			pos = end + 1
		case end > pos:
			pos = end
		default:
			pos++
		}

		if pos > len(haystack) {
			break
		}
	}

	return results
}
