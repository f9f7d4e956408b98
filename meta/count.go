package meta

// Count returns the number of non-overlapping matches in the haystack.
//
// This is optimized for counting without allocating result slices.
// Uses early termination for boolean checks at each step.
// If n > 0, counts at most n matches. If n <= 0, counts all matches.
// Optimized: acquires SearchState once for entire loop to avoid sync.Pool overhead per match.
//
// Example:
//
//	engine, _ := meta.Compile(`\d+`)
//	count := engine.Count([]byte("1 2 3 4 5"), -1)
//	// count == 5
func (e *Engine) Count(haystack []byte, n int) int {
	if n == 0 {
		return 0
	}

	count := 0
	pos := 0
	lastNonEmptyEnd := -1

	// Get state ONCE for entire iteration - eliminates sync.Pool overhead per match
	state := e.getSearchState()
	defer e.putSearchState(state)

	for pos <= len(haystack) {
		// Use state-reusing version for zero sync.Pool overhead per match
		start, end, found := e.findIndicesAtWithState(haystack, pos, state)
		if !found {
			break
		}

		// Skip empty matches at lastNonEmptyEnd (stdlib behavior)
		//nolint:gocritic // badCond: intentional - checking empty match (start==end) at lastNonEmptyEnd
		if start == end && start == lastNonEmptyEnd {
			pos++
			if pos > len(haystack) {
				break
			}
			continue
		}

		count++

		// Track non-empty match ends
		if start != end {
			lastNonEmptyEnd = end
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

		// Check limit
		if n > 0 && count >= n {
			break
		}
	}

	return count
}
