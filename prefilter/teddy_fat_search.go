package prefilter

import (
	"bytes"
	"math/bits"
)

// Find returns the index of the first match starting at or after 'start'.
//
// This implements the Prefilter interface. It uses AVX2 SIMD search to find candidates,
// then verifies full pattern matches.
//
// Returns -1 if no match is found.
func (t *FatTeddy) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}

	haystack = haystack[start:]

	if len(haystack) < 16 {
		return t.findScalar(haystack, start)
	}

	pos, bucketMask := t.findSIMD(haystack)
	accumulatedOffset := 0

	for pos != -1 {
		for bucketMask != 0 {
			bucket := bits.TrailingZeros16(bucketMask)
			bucketMask &^= 1 << bucket

			matchPos, _ := t.verifyBucket(haystack[accumulatedOffset:], pos, bucket)
			if matchPos != -1 {
				return start + accumulatedOffset + matchPos
			}
		}

		nextSearchStart := accumulatedOffset + pos + 1
		if nextSearchStart >= len(haystack) {
			break
		}

		accumulatedOffset = nextSearchStart
		pos, bucketMask = t.findSIMD(haystack[accumulatedOffset:])
	}

	return -1
}

// FindMatch returns the start and end positions of the first match.
//
//nolint:dupl // Intentional duplication - FatTeddy uses uint16 bucketMask, Teddy uses uint8
func (t *FatTeddy) FindMatch(haystack []byte, start int) (int, int) {
	if start < 0 || start >= len(haystack) {
		return -1, -1
	}

	haystack = haystack[start:]

	if len(haystack) < 16 {
		return t.findMatchScalar(haystack, start)
	}

	pos, bucketMask := t.findSIMD(haystack)
	accumulatedOffset := 0

	for pos != -1 {
		for bucketMask != 0 {
			bucket := bits.TrailingZeros16(bucketMask)
			bucketMask &^= 1 << bucket

			matchPos, patternID := t.verifyBucket(haystack[accumulatedOffset:], pos, bucket)
			if matchPos != -1 && patternID >= 0 && patternID < len(t.patterns) {
				matchStart := start + accumulatedOffset + matchPos
				matchEnd := matchStart + len(t.patterns[patternID])
				return matchStart, matchEnd
			}
		}

		nextSearchStart := accumulatedOffset + pos + 1
		if nextSearchStart >= len(haystack) {
			break
		}

		accumulatedOffset = nextSearchStart
		pos, bucketMask = t.findSIMD(haystack[accumulatedOffset:])
	}

	return -1, -1
}

// findScalar performs scalar search for haystacks shorter than one SIMD vector.
func (t *FatTeddy) findScalar(haystack []byte, start int) int {
	for i := 0; i < len(haystack)-t.minLen+1; i++ {
		for _, pattern := range t.patterns {
			if i+len(pattern) <= len(haystack) && bytes.Equal(haystack[i:i+len(pattern)], pattern) {
				return start + i
			}
		}
	}
	return -1
}

// findMatchScalar is the scalar fallback for FindMatch.
func (t *FatTeddy) findMatchScalar(haystack []byte, start int) (int, int) {
	for i := 0; i < len(haystack)-t.minLen+1; i++ {
		for _, pattern := range t.patterns {
			if i+len(pattern) <= len(haystack) && bytes.Equal(haystack[i:i+len(pattern)], pattern) {
				return start + i, start + i + len(pattern)
			}
		}
	}
	return -1, -1
}

// findScalarCandidate is a pure Go implementation for finding candidates.
// Returns (position, bucketMask) or (-1, 0) if no candidate found.
// bucketMask is 16-bit for Fat Teddy (16 buckets).
func (t *FatTeddy) findScalarCandidate(haystack []byte) (pos int, bucketMask uint16) {
	fpLen := int(t.masks.fingerprintLen)

	for i := 0; i+fpLen <= len(haystack); i++ {
		candidateMaskLo := byte(0xFF) // buckets 0-7
		candidateMaskHi := byte(0xFF) // buckets 8-15

		for pos := 0; pos < fpLen; pos++ {
			b := haystack[i+pos]
			loNibble := b & 0x0F
			hiNibble := (b >> 4) & 0x0F

			loMaskLo := t.masks.loMasks[pos][loNibble]
			hiMaskLo := t.masks.hiMasks[pos][hiNibble]
			candidateMaskLo &= loMaskLo & hiMaskLo

			loMaskHi := t.masks.loMasks[pos][16+loNibble]
			hiMaskHi := t.masks.hiMasks[pos][16+hiNibble]
			candidateMaskHi &= loMaskHi & hiMaskHi
		}

		combined := uint16(candidateMaskLo) | (uint16(candidateMaskHi) << 8)
		if combined != 0 {
			return i, combined
		}
	}

	return -1, 0
}

// verifyBucket checks if any pattern in the specified bucket matches at pos.
func (t *FatTeddy) verifyBucket(haystack []byte, pos int, bucket int) (int, int) {
	if pos < 0 || pos >= len(haystack) {
		return -1, -1
	}

	if bucket >= 0 && bucket < len(t.buckets) {
		for _, patternID := range t.buckets[bucket] {
			pattern := t.patterns[patternID]
			end := pos + len(pattern)
			if end <= len(haystack) && bytes.Equal(haystack[pos:end], pattern) {
				return pos, patternID
			}
		}
	}

	return -1, -1
}
