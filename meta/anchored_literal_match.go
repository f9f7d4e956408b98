package meta

// MatchAnchoredLiteral performs fast O(prefix + suffix + charclass) matching.
// This is the runtime execution for UseAnchoredLiteral strategy.
//
// Algorithm:
//  1. Length check (O(1))
//  2. Prefix check (O(len(prefix)))
//  3. Suffix check (O(len(suffix)))
//  4. Charclass bridge check (O(k) where k = distance to find match)
//
// Returns true if input matches the pattern.
func MatchAnchoredLiteral(input []byte, info *AnchoredLiteralInfo) bool {
	// O(1) length check
	if len(input) < info.MinLength {
		return false
	}

	// O(len(prefix)) prefix check
	if len(info.Prefix) > 0 {
		if len(input) < len(info.Prefix) {
			return false
		}
		for i, b := range info.Prefix {
			if input[i] != b {
				return false
			}
		}
	}

	// O(len(suffix)) suffix check
	suffixStart := len(input) - len(info.Suffix)
	for i, b := range info.Suffix {
		if input[suffixStart+i] != b {
			return false
		}
	}

	// If no charclass bridge required, we're done
	// (wildcard .* matches everything between prefix and suffix)
	if info.CharClassTable == nil {
		// Still need to verify wildcard minimum
		middleLen := suffixStart - len(info.Prefix)
		return middleLen >= info.WildcardMin
	}

	// O(k) charclass bridge check
	// The charclass+ MUST be immediately before the suffix.
	// For pattern like ^/.*[\w-]+\.php$:
	// - The characters immediately before .php MUST match [\w-]+
	// - We scan backwards from suffix and count consecutive matches
	// - If we hit a non-match before CharClassMin, we FAIL (no reset!)
	//
	// This correctly handles UTF-8 input where Cyrillic "файл" doesn't match [\w-]+.
	charClassEnd := suffixStart
	charClassStart := len(info.Prefix) + info.WildcardMin
	found := 0

	for i := charClassEnd - 1; i >= charClassStart; i-- {
		if info.CharClassTable[input[i]] {
			found++
		} else {
			// Non-matching char breaks the charclass+ sequence
			// The charclass MUST be immediately before suffix, so we're done
			break
		}
	}

	return found >= info.CharClassMin
}
