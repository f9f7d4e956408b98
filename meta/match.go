package meta

// Match represents a successful regex match with position information.
//
// A Match contains:
//   - Start position (inclusive)
//   - End position (exclusive)
//   - Reference to the original haystack
//
// Note: This is a simple match without capture group support.
// Capture groups will be added in a future version.
//
// Example:
//
//	match := &Match{start: 5, end: 11, haystack: []byte("test foo123 end")}
//	println(match.String()) // "foo123"
//	println(match.Start(), match.End()) // 5, 11
type Match struct {
	start    int
	end      int
	haystack []byte
}

// NewMatch creates a new Match from start and end positions.
//
// Parameters:
//   - start: inclusive start position in haystack
//   - end: exclusive end position in haystack
//   - haystack: the original byte buffer that was searched
//
// The haystack is stored by reference (not copied) for efficiency.
// Callers must ensure the haystack remains valid for the lifetime of the Match.
//
// Example:
//
//	haystack := []byte("hello world")
//	match := meta.NewMatch(0, 5, haystack) // "hello"
func NewMatch(start, end int, haystack []byte) *Match {
	return &Match{
		start:    start,
		end:      end,
		haystack: haystack,
	}
}
