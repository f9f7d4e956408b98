package nfa

// Search finds the first match in haystack.
// Returns (start, end, true) if found, (-1, -1, false) otherwise.
func (s *CharClassSearcher) Search(haystack []byte) (int, int, bool) {
	return s.SearchAt(haystack, 0)
}

// SearchAt finds the first match starting from position at.
// Returns (start, end, true) if found, (-1, -1, false) otherwise.
func (s *CharClassSearcher) SearchAt(haystack []byte, at int) (int, int, bool) {
	n := len(haystack)
	if at >= n {
		return -1, -1, false
	}

	// Find first matching byte (start of match)
	start := -1
	for i := at; i < n; i++ {
		if s.membership[haystack[i]] {
			start = i
			break
		}
	}

	if start == -1 {
		return -1, -1, false
	}

	// Scan forward while bytes match (greedy)
	end := start + 1
	for end < n && s.membership[haystack[end]] {
		end++
	}

	// Check minimum match length
	if end-start < s.minMatch {
		// Match too short, try from next position
		return s.SearchAt(haystack, start+1)
	}

	return start, end, true
}

// IsMatch returns true if pattern matches anywhere in haystack.
func (s *CharClassSearcher) IsMatch(haystack []byte) bool {
	n := len(haystack)
	matchLen := 0

	for i := 0; i < n; i++ {
		if s.membership[haystack[i]] {
			matchLen++
			if matchLen >= s.minMatch {
				return true
			}
		} else {
			matchLen = 0
		}
	}

	return false
}

// CanHandle returns true - CharClassSearcher can handle any input size.
func (s *CharClassSearcher) CanHandle(_ int) bool {
	return true
}
