package prefilter

import "github.com/corelex/rex2/simd"

// DigitPrefilter narrows a search to positions at or after the next ASCII
// digit, for patterns where literal extraction fails but every alternation
// branch still requires a leading [0-9] — IP-address alternations, `\d{3}-...`
// phone patterns, bounded numeric validators.
//
// It is never IsComplete: landing on a digit only means the full pattern
// might start there, not that it does.
type DigitPrefilter struct{}

// NewDigitPrefilter builds a DigitPrefilter. The struct carries no state, so
// any number of calls can share one instance.
func NewDigitPrefilter() *DigitPrefilter {
	return &DigitPrefilter{}
}

// Find returns the index of the first ASCII digit at or after start, or -1
// if the remaining haystack has none. Delegates to simd.MemchrDigitAt, which
// takes the AVX2 path on amd64 for haystacks of at least 32 bytes.
func (p *DigitPrefilter) Find(haystack []byte, start int) int {
	return simd.MemchrDigitAt(haystack, start)
}

// IsComplete is always false: a digit position is a candidate, not a match.
func (p *DigitPrefilter) IsComplete() bool {
	return false
}

// LiteralLen is always 0: match length is determined by the full pattern,
// not by this prefilter.
func (p *DigitPrefilter) LiteralLen() int {
	return 0
}

// HeapBytes is always 0: DigitPrefilter is stateless and allocates nothing
// beyond the zero-size struct itself.
func (p *DigitPrefilter) HeapBytes() int {
	return 0
}
