package prefilter

// IsComplete implements Prefilter.IsComplete.
//
// Returns true if finding a Teddy match guarantees a full regex match. This
// is only true if all patterns are exact literals with no overlap, which is
// always the case for Teddy since Find/FindMatch verify the full pattern.
func (t *Teddy) IsComplete() bool {
	return t.complete
}

// LiteralLen implements Prefilter.LiteralLen.
//
// When all patterns have the same length and complete=true,
// returns that uniform length. Otherwise returns 0.
func (t *Teddy) LiteralLen() int {
	if t.complete && t.uniformLen > 0 {
		return t.uniformLen
	}
	return 0
}

// HeapBytes implements Prefilter.HeapBytes.
//
// Returns approximate heap memory used by Teddy: the fixed-size mask table
// (264 bytes), pattern storage, and the bucket slices.
func (t *Teddy) HeapBytes() int {
	heapBytes := 264 // sizeof(teddyMasks)

	for _, p := range t.patterns {
		heapBytes += len(p)
	}

	heapBytes += len(t.buckets) * 24 // slice header (24 bytes on 64-bit)
	for _, bucket := range t.buckets {
		heapBytes += len(bucket) * 8 // int slice (8 bytes per element)
	}

	return heapBytes
}
