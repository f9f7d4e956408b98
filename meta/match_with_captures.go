// Package meta implements the meta-engine orchestrator.
//
// match_with_captures.go defines the result type returned by the
// Find*Submatch family: a match plus the start/end of every capture
// group, together with the haystack it was found in so groups can be
// sliced out directly.

package meta

// MatchWithCaptures represents a successful match together with the
// positions of every capture group (group 0 is the entire match).
//
// Captures[i] is a two-element [start, end] slice for group i, or nil if
// that group did not participate in the match (e.g. the losing side of
// an alternation, or an optional group that never ran).
type MatchWithCaptures struct {
	haystack []byte

	// Start and End mirror Captures[0] for callers that only need the
	// overall match span.
	Start int
	End   int

	Captures [][]int
}

// NewMatchWithCaptures builds a MatchWithCaptures from a haystack and a
// set of group index pairs. captures[0] is expected to hold the overall
// match span.
func NewMatchWithCaptures(haystack []byte, captures [][]int) *MatchWithCaptures {
	m := &MatchWithCaptures{haystack: haystack, Captures: captures, Start: -1, End: -1}
	if len(captures) > 0 && len(captures[0]) == 2 {
		m.Start, m.End = captures[0][0], captures[0][1]
	}
	return m
}

// NumCaptures returns the number of groups tracked, including group 0.
func (m *MatchWithCaptures) NumCaptures() int {
	return len(m.Captures)
}

// GroupIndex returns the [start, end] pair for group i, or nil if the
// group is out of range or did not participate in the match.
func (m *MatchWithCaptures) GroupIndex(i int) []int {
	if i < 0 || i >= len(m.Captures) {
		return nil
	}
	return m.Captures[i]
}

// Group returns the matched bytes for group i, or nil if the group did
// not participate in the match.
func (m *MatchWithCaptures) Group(i int) []byte {
	idx := m.GroupIndex(i)
	if idx == nil || idx[0] < 0 || idx[1] < 0 {
		return nil
	}
	return m.haystack[idx[0]:idx[1]]
}

// GroupString returns the matched text for group i as a string.
func (m *MatchWithCaptures) GroupString(i int) string {
	b := m.Group(i)
	if b == nil {
		return ""
	}
	return string(b)
}

// AllGroups returns the matched bytes for every group, in order. A nil
// entry means that group did not participate in the match.
func (m *MatchWithCaptures) AllGroups() [][]byte {
	out := make([][]byte, len(m.Captures))
	for i := range m.Captures {
		out[i] = m.Group(i)
	}
	return out
}

// AllGroupStrings returns the matched text for every group, in order.
func (m *MatchWithCaptures) AllGroupStrings() []string {
	out := make([]string, len(m.Captures))
	for i := range m.Captures {
		out[i] = m.GroupString(i)
	}
	return out
}

// String returns the text of the overall match (group 0).
func (m *MatchWithCaptures) String() string {
	return m.GroupString(0)
}
