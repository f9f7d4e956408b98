package prefilter

// IsComplete implements Prefilter.IsComplete.
func (t *FatTeddy) IsComplete() bool {
	return t.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (t *FatTeddy) LiteralLen() int {
	if t.complete && t.uniformLen > 0 {
		return t.uniformLen
	}
	return 0
}

// HeapBytes implements Prefilter.HeapBytes.
func (t *FatTeddy) HeapBytes() int {
	heapBytes := 264 // sizeof(fatTeddyMasks)

	for _, p := range t.patterns {
		heapBytes += len(p)
	}

	heapBytes += len(t.buckets) * 24
	for _, bucket := range t.buckets {
		heapBytes += len(bucket) * 8
	}

	return heapBytes
}

// MinimumLen returns the minimum haystack length for efficient SIMD search.
//
// For haystacks smaller than this, the SIMD setup overhead exceeds the benefit.
// Callers should use a fallback strategy (like Aho-Corasick) for small inputs.
//
// This follows Rust regex's minimum_len() approach:
//   - AVX2 processes 32 bytes per iteration
//   - With 2-byte fingerprint, minimum is 32 + 1 = 33 bytes
//   - We use 64 as conservative threshold based on benchmarks showing
//     Aho-Corasick is ~2x faster than Fat Teddy on ~37 byte inputs
//
// Reference: rust-aho-corasick/src/packed/teddy/builder.rs:585
func (t *FatTeddy) MinimumLen() int {
	// Benchmarks: 37-byte haystack with 50 patterns:
	//   Fat Teddy: ~267 ns, Aho-Corasick: ~130 ns
	return 64
}

// PatternCount returns the number of patterns in this Fat Teddy searcher.
// Used by meta-engine to build appropriate fallback strategy.
func (t *FatTeddy) PatternCount() int {
	return len(t.patterns)
}

// Patterns returns the patterns stored in this Fat Teddy searcher.
// Used by meta-engine to build Aho-Corasick fallback for small haystacks.
func (t *FatTeddy) Patterns() [][]byte {
	return t.patterns
}
