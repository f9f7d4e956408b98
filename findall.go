package rex2

// FindAllIndex returns a slice of all successive index pairs of matches
// of the pattern in b. If n > 0, it returns at most n matches. A zero n
// returns nil (no matches requested); a negative n returns all matches.
//
// Example:
//
//	re := rex2.MustCompile(`\d+`)
//	locs := re.FindAllIndex([]byte("1 2 3"), -1)
//	// locs = [[0 1] [2 3] [4 5]]
func (r *Regex) FindAllIndex(b []byte, n int) [][]int {
	if n == 0 {
		return nil
	}

	pairs := r.engine.FindAllIndicesStreaming(b, n, nil)
	if len(pairs) == 0 {
		return nil
	}

	result := make([][]int, len(pairs))
	for i, p := range pairs {
		result[i] = []int{p[0], p[1]}
	}
	return result
}

// FindAllStringIndex is the string version of FindAllIndex.
func (r *Regex) FindAllStringIndex(s string, n int) [][]int {
	return r.FindAllIndex([]byte(s), n)
}

// FindAllIndexCompact is a zero-allocation-friendly variant of FindAllIndex
// that returns [2]int pairs directly, reusing dst's backing array when it
// has capacity. Intended for hot loops that can't afford the [][]int
// header-per-match allocation of FindAllIndex.
func (r *Regex) FindAllIndexCompact(b []byte, n int, dst [][2]int) [][2]int {
	if n == 0 {
		return dst[:0]
	}
	return r.engine.FindAllIndicesStreaming(b, n, dst)
}

// FindAllSubmatch is the 'All' version of FindSubmatch; it returns a
// slice of all successive matches, including capture groups.
func (r *Regex) FindAllSubmatch(b []byte, n int) [][][]byte {
	if n == 0 {
		return nil
	}

	matches := r.engine.FindAllSubmatch(b, n)
	if len(matches) == 0 {
		return nil
	}

	result := make([][][]byte, len(matches))
	for i, m := range matches {
		result[i] = m.AllGroups()
	}
	return result
}

// FindAllStringSubmatch is the string version of FindAllSubmatch.
func (r *Regex) FindAllStringSubmatch(s string, n int) [][]string {
	if n == 0 {
		return nil
	}

	matches := r.engine.FindAllSubmatch([]byte(s), n)
	if len(matches) == 0 {
		return nil
	}

	result := make([][]string, len(matches))
	for i, m := range matches {
		result[i] = m.AllGroupStrings()
	}
	return result
}

// FindAllSubmatchIndex is the 'All' version of FindSubmatchIndex; it
// returns a slice of index pairs for each match and its capture groups.
func (r *Regex) FindAllSubmatchIndex(b []byte, n int) [][]int {
	if n == 0 {
		return nil
	}

	matches := r.engine.FindAllSubmatch(b, n)
	if len(matches) == 0 {
		return nil
	}

	result := make([][]int, len(matches))
	for i, m := range matches {
		numGroups := m.NumCaptures()
		idx := make([]int, numGroups*2)
		for g := 0; g < numGroups; g++ {
			pair := m.GroupIndex(g)
			if len(pair) >= 2 {
				idx[g*2] = pair[0]
				idx[g*2+1] = pair[1]
			} else {
				idx[g*2] = -1
				idx[g*2+1] = -1
			}
		}
		result[i] = idx
	}
	return result
}

// FindAllStringSubmatchIndex is the string version of FindAllSubmatchIndex.
func (r *Regex) FindAllStringSubmatchIndex(s string, n int) [][]int {
	return r.FindAllSubmatchIndex([]byte(s), n)
}

// Count returns the number of non-overlapping matches of the pattern in b.
// If n > 0, counting stops after n matches. A negative n counts all matches.
func (r *Regex) Count(b []byte, n int) int {
	return r.engine.Count(b, n)
}

// CountString is the string version of Count.
func (r *Regex) CountString(s string, n int) int {
	return r.engine.Count([]byte(s), n)
}

// Longest makes future searches prefer the leftmost-longest match, the
// same overall match that POSIX ERE semantics require, instead of the
// default leftmost-first (Perl-style) match. It modifies the Regex in
// place and is not safe to call concurrently with searches on the same
// Regex.
func (r *Regex) Longest() {
	r.engine.SetLongest(true)
}
