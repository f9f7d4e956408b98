// Package prefilter provides the Fat Teddy multi-pattern SIMD matching algorithm.
//
// Fat Teddy is an AVX2-based extension of Teddy that uses 16 buckets (vs 8 in Slim Teddy).
// It processes 256-bit vectors and can efficiently handle 33-64 patterns.
//
// Architecture:
//   - Slim Teddy: 8 buckets, SSSE3 (128-bit), 2-32 patterns
//   - Fat Teddy: 16 buckets, AVX2 (256-bit), 33-64 patterns
//   - Fallback: Aho-Corasick for >64 patterns or no AVX2
//
// Mask Layout (256-bit / 32 bytes per mask):
//   - Low 128-bit lane (bytes 0-15): buckets 0-7
//   - High 128-bit lane (bytes 16-31): buckets 8-15
//
// Reference:
//   - Rust aho-corasick: src/packed/teddy/generic.rs
package prefilter

// FatTeddyConfig configures Fat Teddy construction.
type FatTeddyConfig struct {
	// MinPatterns is the minimum patterns required (default: 2)
	MinPatterns int

	// MaxPatterns is the maximum patterns allowed (default: 64)
	MaxPatterns int

	// MinPatternLen is the minimum pattern length required (default: 3)
	MinPatternLen int

	// FingerprintLen is the number of fingerprint bytes to use (1-4, default: 2)
	FingerprintLen int
}

// DefaultFatTeddyConfig returns the default Fat Teddy configuration.
func DefaultFatTeddyConfig() *FatTeddyConfig {
	return &FatTeddyConfig{
		MinPatterns:    MinTeddyPatterns,
		MaxPatterns:    MaxFatTeddyPatterns,
		MinPatternLen:  MinTeddyPatternLen,
		FingerprintLen: 2, // 2-byte fingerprint reduces false positives by ~90%
	}
}

// FatTeddy is an AVX2-accelerated multi-pattern searcher using 16 buckets.
//
// It uses the same algorithm as Slim Teddy but with 256-bit vectors,
// enabling efficient search for 33-64 patterns.
//
// Thread-safety: FatTeddy is safe for concurrent use (all state is immutable).
type FatTeddy struct {
	// patterns stores the original pattern bytes
	patterns [][]byte

	// masks stores the nibble lookup tables for AVX2 search
	masks *fatTeddyMasks

	// buckets maps bucket ID (0-15) to list of pattern IDs
	buckets [][]int

	// minLen is the minimum pattern length (used for verification bounds)
	minLen int

	// complete indicates if FatTeddy match is sufficient (no verification needed)
	complete bool

	// uniformLen is the pattern length when all patterns have the same length
	uniformLen int
}

// fatTeddyMasks stores the nibble lookup masks for AVX2 search.
//
// Layout for 256-bit vectors:
//   - Bytes 0-15: bucket bits for buckets 0-7
//   - Bytes 16-31: bucket bits for buckets 8-15
//
// During search:
//  1. VBROADCASTI128 loads 16 bytes and duplicates to both lanes
//  2. VPSHUFB on low lane -> candidates for buckets 0-7
//  3. VPSHUFB on high lane -> candidates for buckets 8-15
//  4. VPERM2I128 + VPUNPCKLBW interleaves results
//  5. VPMOVMSKB extracts 16-bit bucket mask
type fatTeddyMasks struct {
	// fingerprintLen is the number of fingerprint bytes (1-4)
	fingerprintLen uint32

	_ uint32 // padding for alignment

	// loMasks[pos] is the low-nibble lookup table for fingerprint position 'pos'.
	// Layout: bytes 0-15 = buckets 0-7, bytes 16-31 = buckets 8-15
	loMasks [MaxFingerprintLen][32]byte

	// hiMasks[pos] is the high-nibble lookup table for fingerprint position 'pos'.
	// Layout same as loMasks.
	hiMasks [MaxFingerprintLen][32]byte
}

// NewFatTeddy creates a new Fat Teddy searcher for the given patterns.
//
// Returns nil if patterns are not suitable for Fat Teddy:
//   - Fewer than MinPatterns (default: 2)
//   - More than MaxPatterns (default: 64)
//   - Any pattern shorter than MinPatternLen (default: 3)
//
// Note: For 2-32 patterns, prefer Slim Teddy (SSSE3) as it has lower overhead.
// Fat Teddy is optimal for 33-64 patterns on AVX2-capable CPUs.
//
// Example:
//
//	patterns := make([][]byte, 50)
//	for i := range patterns {
//	    patterns[i] = []byte(fmt.Sprintf("pattern%02d", i))
//	}
//	fatTeddy := prefilter.NewFatTeddy(patterns, nil)
//	if fatTeddy != nil {
//	    pos := fatTeddy.Find(haystack, 0)
//	}
//
//nolint:dupl // Intentional duplication - FatTeddy (16 buckets) vs Teddy (8 buckets) have similar constructors
func NewFatTeddy(patterns [][]byte, config *FatTeddyConfig) *FatTeddy {
	if config == nil {
		config = DefaultFatTeddyConfig()
	}

	if len(patterns) < config.MinPatterns || len(patterns) > config.MaxPatterns {
		return nil
	}

	minLen := len(patterns[0])
	for _, p := range patterns {
		if len(p) < config.MinPatternLen {
			return nil
		}
		if len(p) < minLen {
			minLen = len(p)
		}
	}

	fingerprintLen := config.FingerprintLen
	if fingerprintLen > minLen {
		fingerprintLen = minLen
	}
	if fingerprintLen > MaxFingerprintLen {
		fingerprintLen = MaxFingerprintLen
	}

	patternsCopy := make([][]byte, len(patterns))
	for i, p := range patterns {
		patternsCopy[i] = make([]byte, len(p))
		copy(patternsCopy[i], p)
	}

	masks, buckets := buildFatMasks(patternsCopy, fingerprintLen)

	uniformLen := len(patternsCopy[0])
	for _, p := range patternsCopy[1:] {
		if len(p) != uniformLen {
			uniformLen = 0
			break
		}
	}

	return &FatTeddy{
		patterns:   patternsCopy,
		masks:      masks,
		buckets:    buckets,
		minLen:     minLen,
		complete:   true, // Find()/FindMatch() always verify full pattern matches
		uniformLen: uniformLen,
	}
}

// buildFatMasks constructs the nibble lookup masks for AVX2 search (16 buckets).
//
// Algorithm:
//  1. Assign each pattern to a bucket (modulo 16 distribution)
//  2. For each fingerprint position:
//     - For each pattern: extract byte at that position
//     - Split byte into low nibble (b & 0x0F) and high nibble (b >> 4)
//     - For buckets 0-7: set bit in bytes 0-15
//     - For buckets 8-15: set bit in bytes 16-31
//
// Mask layout matches Rust aho-corasick generic.rs FatMaskBuilder.
func buildFatMasks(patterns [][]byte, fingerprintLen int) (*fatTeddyMasks, [][]int) {
	masks := &fatTeddyMasks{
		fingerprintLen: uint32(fingerprintLen), // #nosec G115 -- fingerprintLen is bounded by MaxFingerprintLen(4)
	}

	buckets := make([][]int, NumBucketsFat)

	for patternID, pattern := range patterns {
		bucketID := patternID % NumBucketsFat
		buckets[bucketID] = append(buckets[bucketID], patternID)

		for pos := 0; pos < fingerprintLen; pos++ {
			b := pattern[pos]
			loNibble := b & 0x0F
			hiNibble := (b >> 4) & 0x0F

			if bucketID < 8 {
				bucketBit := byte(1 << bucketID)
				masks.loMasks[pos][loNibble] |= bucketBit
				masks.hiMasks[pos][hiNibble] |= bucketBit
			} else {
				bucketBit := byte(1 << (bucketID - 8))
				masks.loMasks[pos][16+loNibble] |= bucketBit
				masks.hiMasks[pos][16+hiNibble] |= bucketBit
			}
		}
	}

	return masks, buckets
}
