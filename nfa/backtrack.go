package nfa

// BacktrackerState holds the mutable scratch space a BoundedBacktracker
// needs during a single search: the visited bit vector, the Longest flag,
// and the sizing fields used to index into it. Callers that need
// thread-safe concurrent use of one BoundedBacktracker across goroutines
// allocate one BacktrackerState per goroutine (or pull one from a pool)
// and pass it to the *WithState methods; callers that only ever touch a
// BoundedBacktracker from one goroutine at a time can use the plain
// methods, which manage an internal BacktrackerState automatically.
type BacktrackerState struct {
	// Visited is a bit vector tracking (state, position) pairs.
	// Layout: bit at index (state * (InputLen+1) + pos) indicates visited.
	Visited []uint64

	// Generation counts how many times this state has been reset, for
	// diagnostics; it has no effect on matching behavior.
	Generation uint32

	// NumStates is the NFA state count this Visited vector was sized for.
	NumStates int

	// InputLen is the haystack length this Visited vector was sized for.
	InputLen int

	// Longest enables leftmost-longest matching instead of the default
	// leftmost-first semantics.
	Longest bool
}

// NewBacktrackerState returns a zero-value BacktrackerState ready to be
// passed to a BoundedBacktracker's *WithState methods.
func NewBacktrackerState() *BacktrackerState {
	return &BacktrackerState{}
}

// reset resizes and clears the visited bit vector for a new search over
// haystackLen bytes against an NFA with numStates states.
func (s *BacktrackerState) reset(numStates, haystackLen int) {
	s.NumStates = numStates
	s.InputLen = haystackLen
	s.Generation++

	bitsNeeded := numStates * (haystackLen + 1)
	wordsNeeded := (bitsNeeded + 63) / 64

	if cap(s.Visited) >= wordsNeeded {
		s.Visited = s.Visited[:wordsNeeded]
		for i := range s.Visited {
			s.Visited[i] = 0
		}
	} else {
		s.Visited = make([]uint64, wordsNeeded)
	}
}

// clear zeros the visited bit vector without resizing it, for reuse
// between successive start positions within the same search.
func (s *BacktrackerState) clear() {
	for i := range s.Visited {
		s.Visited[i] = 0
	}
}

// shouldVisit checks if (state, pos) has been visited and marks it if not.
// Returns true if we should visit (not yet visited), false if already visited.
// This is the hot path - must be as fast as possible.
func (s *BacktrackerState) shouldVisit(state StateID, pos int) bool {
	idx := int(state)*(s.InputLen+1) + pos
	word := idx / 64
	bit := uint64(1) << uint(idx%64)
	if s.Visited[word]&bit != 0 {
		return false
	}
	s.Visited[word] |= bit
	return true
}

// BoundedBacktracker implements a bounded backtracking regex matcher.
// It uses a bit vector to track visited (state, position) pairs, providing
// O(1) lookup with low constant overhead - faster than SparseSet for small inputs.
//
// This engine is selected when:
//   - len(haystack) * nfa.States() <= maxVisitedSize
//   - No prefilter is available (no good literals)
//   - Pattern doesn't benefit from DFA (simple character classes)
//
// BoundedBacktracker is 2-5x faster than PikeVM for patterns like \d+, \w+, [a-z]+.
type BoundedBacktracker struct {
	nfa *NFA

	// numStates is cached for bounds checking
	numStates int

	// maxVisitedSize limits memory usage (in bits)
	maxVisitedSize int

	// internalState backs the non-stateful convenience methods (IsMatch,
	// Search, SearchAt, IsMatchAnchored, SetLongest). It is not safe for
	// concurrent use; concurrent callers should use the *WithState methods
	// with their own BacktrackerState instead.
	internalState *BacktrackerState
}

// NewBoundedBacktracker creates a new bounded backtracker for the given NFA.
func NewBoundedBacktracker(nfa *NFA) *BoundedBacktracker {
	return &BoundedBacktracker{
		nfa:            nfa,
		numStates:      nfa.States(),
		maxVisitedSize: 32 * 1024 * 1024, // 32M bits = 4MB
		internalState:  NewBacktrackerState(),
	}
}

// NumStates returns the number of NFA states this backtracker was built for.
func (b *BoundedBacktracker) NumStates() int {
	return b.numStates
}

// MaxVisitedSize returns the maximum size, in bits, of the visited bit
// vector this backtracker will allocate for a single search.
func (b *BoundedBacktracker) MaxVisitedSize() int {
	return b.maxVisitedSize
}

// MaxInputSize returns the largest haystack length this backtracker can
// handle given its state count, or 0 if it has no states to bound against.
func (b *BoundedBacktracker) MaxInputSize() int {
	if b.numStates == 0 {
		return 0
	}
	n := b.maxVisitedSize/b.numStates - 1
	if n < 0 {
		return 0
	}
	return n
}

// SetLongest enables or disables leftmost-longest matching for searches
// made through the non-stateful methods (IsMatch, Search, SearchAt,
// IsMatchAnchored).
func (b *BoundedBacktracker) SetLongest(longest bool) {
	b.internalState.Longest = longest
}

// CanHandle returns true if this engine can handle the given input size.
// Returns false if the visited bit vector would exceed maxVisitedSize.
func (b *BoundedBacktracker) CanHandle(haystackLen int) bool {
	bitsNeeded := b.numStates * (haystackLen + 1)
	return bitsNeeded <= b.maxVisitedSize
}

// IsMatch returns true if the pattern matches anywhere in the haystack.
func (b *BoundedBacktracker) IsMatch(haystack []byte) bool {
	return b.IsMatchWithState(haystack, b.internalState)
}

// IsMatchAnchored returns true if the pattern matches at the start of haystack.
func (b *BoundedBacktracker) IsMatchAnchored(haystack []byte) bool {
	return b.IsMatchAnchoredWithState(haystack, b.internalState)
}

// Search finds the first match in the haystack.
// Returns (start, end, true) if found, (-1, -1, false) otherwise.
func (b *BoundedBacktracker) Search(haystack []byte) (int, int, bool) {
	return b.SearchWithState(haystack, b.internalState)
}

// SearchAt finds the first match in haystack[at:], still reporting
// absolute positions into haystack.
func (b *BoundedBacktracker) SearchAt(haystack []byte, at int) (int, int, bool) {
	return b.SearchAtWithState(haystack, at, b.internalState)
}

// IsMatchWithState is IsMatch using caller-supplied scratch space,
// allowing one BoundedBacktracker to be shared across goroutines.
func (b *BoundedBacktracker) IsMatchWithState(haystack []byte, state *BacktrackerState) bool {
	if !b.CanHandle(len(haystack)) {
		return false
	}

	state.reset(b.numStates, len(haystack))

	for startPos := 0; startPos <= len(haystack); startPos++ {
		if b.backtrack(haystack, startPos, b.nfa.StartAnchored(), state) {
			return true
		}
	}
	return false
}

// IsMatchAnchoredWithState is IsMatchAnchored using caller-supplied scratch space.
func (b *BoundedBacktracker) IsMatchAnchoredWithState(haystack []byte, state *BacktrackerState) bool {
	if !b.CanHandle(len(haystack)) {
		return false
	}

	state.reset(b.numStates, len(haystack))
	return b.backtrack(haystack, 0, b.nfa.StartAnchored(), state)
}

// SearchWithState is Search using caller-supplied scratch space.
func (b *BoundedBacktracker) SearchWithState(haystack []byte, state *BacktrackerState) (int, int, bool) {
	return b.SearchAtWithState(haystack, 0, state)
}

// SearchAtWithState is SearchAt using caller-supplied scratch space.
func (b *BoundedBacktracker) SearchAtWithState(haystack []byte, at int, state *BacktrackerState) (int, int, bool) {
	if !b.CanHandle(len(haystack)) {
		return -1, -1, false
	}
	if at < 0 || at > len(haystack) {
		return -1, -1, false
	}

	if state.Longest {
		memo := make(map[int]int)
		for startPos := at; startPos <= len(haystack); startPos++ {
			if end := b.backtrackFindLongest(haystack, startPos, b.nfa.StartAnchored(), memo); end >= 0 {
				return startPos, end, true
			}
		}
		return -1, -1, false
	}

	state.reset(b.numStates, len(haystack))
	for startPos := at; startPos <= len(haystack); startPos++ {
		if end := b.backtrackFind(haystack, startPos, b.nfa.StartAnchored(), state); end >= 0 {
			return startPos, end, true
		}
		state.clear()
	}
	return -1, -1, false
}

// backtrack performs recursive backtracking search for IsMatch.
// Returns true if a match is found from the given (pos, state).
//
//nolint:gocyclo,cyclop // complexity is inherent to state machine dispatch
func (b *BoundedBacktracker) backtrack(haystack []byte, pos int, state StateID, bs *BacktrackerState) bool {
	if state == InvalidState || int(state) >= b.numStates {
		return false
	}

	if !bs.shouldVisit(state, pos) {
		return false
	}

	s := b.nfa.State(state)
	if s == nil {
		return false
	}

	switch s.Kind() {
	case StateMatch:
		return true

	case StateByteRange:
		lo, hi, next := s.ByteRange()
		if pos < len(haystack) {
			c := haystack[pos]
			if c >= lo && c <= hi {
				return b.backtrack(haystack, pos+1, next, bs)
			}
		}
		return false

	case StateSparse:
		if pos >= len(haystack) {
			return false
		}
		c := haystack[pos]
		for _, tr := range s.Transitions() {
			if c >= tr.Lo && c <= tr.Hi {
				return b.backtrack(haystack, pos+1, tr.Next, bs)
			}
		}
		return false

	case StateSplit:
		left, right := s.Split()
		return b.backtrack(haystack, pos, left, bs) || b.backtrack(haystack, pos, right, bs)

	case StateEpsilon:
		return b.backtrack(haystack, pos, s.Epsilon(), bs)

	case StateCapture:
		_, _, next := s.Capture()
		return b.backtrack(haystack, pos, next, bs)

	case StateLook:
		look, next := s.Look()
		if checkLookAssertion(look, haystack, pos) {
			return b.backtrack(haystack, pos, next, bs)
		}
		return false

	case StateRuneAny:
		if pos < len(haystack) {
			width := runeWidth(haystack[pos:])
			if width > 0 {
				return b.backtrack(haystack, pos+width, s.RuneAny(), bs)
			}
		}
		return false

	case StateRuneAnyNotNL:
		if pos < len(haystack) && haystack[pos] != '\n' {
			width := runeWidth(haystack[pos:])
			if width > 0 {
				return b.backtrack(haystack, pos+width, s.RuneAnyNotNL(), bs)
			}
		}
		return false

	case StateFail:
		return false
	}

	return false
}

// backtrackFind performs recursive backtracking to find match end position.
// Returns end position if match found, -1 otherwise.
//
//nolint:gocyclo,cyclop // complexity is inherent to state machine dispatch
func (b *BoundedBacktracker) backtrackFind(haystack []byte, pos int, state StateID, bs *BacktrackerState) int {
	if state == InvalidState || int(state) >= b.numStates {
		return -1
	}

	if !bs.shouldVisit(state, pos) {
		return -1
	}

	s := b.nfa.State(state)
	if s == nil {
		return -1
	}

	switch s.Kind() {
	case StateMatch:
		return pos

	case StateByteRange:
		lo, hi, next := s.ByteRange()
		if pos < len(haystack) {
			c := haystack[pos]
			if c >= lo && c <= hi {
				return b.backtrackFind(haystack, pos+1, next, bs)
			}
		}
		return -1

	case StateSparse:
		if pos >= len(haystack) {
			return -1
		}
		c := haystack[pos]
		for _, tr := range s.Transitions() {
			if c >= tr.Lo && c <= tr.Hi {
				return b.backtrackFind(haystack, pos+1, tr.Next, bs)
			}
		}
		return -1

	case StateSplit:
		left, right := s.Split()
		if end := b.backtrackFind(haystack, pos, left, bs); end >= 0 {
			return end
		}
		return b.backtrackFind(haystack, pos, right, bs)

	case StateEpsilon:
		return b.backtrackFind(haystack, pos, s.Epsilon(), bs)

	case StateCapture:
		_, _, next := s.Capture()
		return b.backtrackFind(haystack, pos, next, bs)

	case StateLook:
		look, next := s.Look()
		if checkLookAssertion(look, haystack, pos) {
			return b.backtrackFind(haystack, pos, next, bs)
		}
		return -1

	case StateRuneAny:
		if pos < len(haystack) {
			width := runeWidth(haystack[pos:])
			if width > 0 {
				return b.backtrackFind(haystack, pos+width, s.RuneAny(), bs)
			}
		}
		return -1

	case StateRuneAnyNotNL:
		if pos < len(haystack) && haystack[pos] != '\n' {
			width := runeWidth(haystack[pos:])
			if width > 0 {
				return b.backtrackFind(haystack, pos+width, s.RuneAnyNotNL(), bs)
			}
		}
		return -1

	case StateFail:
		return -1
	}

	return -1
}

// backtrackFindLongest finds the longest match end position reachable
// from (pos, state), exploring every split branch rather than stopping at
// the first success. Results are memoized per (state, pos) in memo since
// the backtracker is only selected for patterns that cannot match the
// empty string, so loop bodies always consume at least one byte and the
// (state, pos) reachability graph within a single search has no cycles.
//
//nolint:gocyclo,cyclop // complexity is inherent to state machine dispatch
func (b *BoundedBacktracker) backtrackFindLongest(haystack []byte, pos int, state StateID, memo map[int]int) int {
	if state == InvalidState || int(state) >= b.numStates {
		return -1
	}

	key := int(state)*(len(haystack)+1) + pos
	if v, ok := memo[key]; ok {
		return v
	}

	s := b.nfa.State(state)
	if s == nil {
		memo[key] = -1
		return -1
	}

	var result int
	switch s.Kind() {
	case StateMatch:
		result = pos

	case StateByteRange:
		lo, hi, next := s.ByteRange()
		result = -1
		if pos < len(haystack) {
			c := haystack[pos]
			if c >= lo && c <= hi {
				result = b.backtrackFindLongest(haystack, pos+1, next, memo)
			}
		}

	case StateSparse:
		result = -1
		if pos < len(haystack) {
			c := haystack[pos]
			for _, tr := range s.Transitions() {
				if c >= tr.Lo && c <= tr.Hi {
					result = b.backtrackFindLongest(haystack, pos+1, tr.Next, memo)
					break
				}
			}
		}

	case StateSplit:
		left, right := s.Split()
		a := b.backtrackFindLongest(haystack, pos, left, memo)
		c := b.backtrackFindLongest(haystack, pos, right, memo)
		result = a
		if c > result {
			result = c
		}

	case StateEpsilon:
		result = b.backtrackFindLongest(haystack, pos, s.Epsilon(), memo)

	case StateCapture:
		_, _, next := s.Capture()
		result = b.backtrackFindLongest(haystack, pos, next, memo)

	case StateLook:
		look, next := s.Look()
		result = -1
		if checkLookAssertion(look, haystack, pos) {
			result = b.backtrackFindLongest(haystack, pos, next, memo)
		}

	case StateRuneAny:
		result = -1
		if pos < len(haystack) {
			width := runeWidth(haystack[pos:])
			if width > 0 {
				result = b.backtrackFindLongest(haystack, pos+width, s.RuneAny(), memo)
			}
		}

	case StateRuneAnyNotNL:
		result = -1
		if pos < len(haystack) && haystack[pos] != '\n' {
			width := runeWidth(haystack[pos:])
			if width > 0 {
				result = b.backtrackFindLongest(haystack, pos+width, s.RuneAnyNotNL(), memo)
			}
		}

	case StateFail:
		result = -1

	default:
		result = -1
	}

	memo[key] = result
	return result
}

// runeWidth returns the width in bytes of the first UTF-8 rune in b.
// Returns 0 if b is empty.
func runeWidth(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	// Fast path for ASCII
	if b[0] < 0x80 {
		return 1
	}
	// Multi-byte UTF-8
	switch {
	case b[0]&0xE0 == 0xC0 && len(b) >= 2:
		return 2
	case b[0]&0xF0 == 0xE0 && len(b) >= 3:
		return 3
	case b[0]&0xF8 == 0xF0 && len(b) >= 4:
		return 4
	default:
		return 1 // Invalid UTF-8, treat as single byte
	}
}
