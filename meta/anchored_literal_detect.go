package meta

import "regexp/syntax"

// DetectAnchoredLiteral analyzes a regex AST to detect patterns suitable
// for the UseAnchoredLiteral strategy.
//
// Pattern structure (all variations):
//
//	^prefix.*charclass+suffix$   (full form)
//	^prefix.*suffix$             (no charclass bridge)
//	^.*suffix$                   (no prefix)
//	^prefix.+suffix$             (.+ instead of .*)
//
// Requirements:
//   - Must be anchored at both start (^ or \A) and end ($ or \z)
//   - Must contain .* or .+ (greedy wildcard)
//   - Must have a literal suffix before end anchor
//
// Returns nil if pattern doesn't match the required structure.
func DetectAnchoredLiteral(re *syntax.Regexp) *AnchoredLiteralInfo {
	// Must be a concatenation
	if re.Op != syntax.OpConcat {
		return nil
	}

	subs := re.Sub
	if len(subs) < 3 {
		// Minimum: anchor + wildcard + anchor (but this has no suffix)
		// Realistic minimum: anchor + wildcard + suffix + anchor = 4
		return nil
	}

	// Check start anchor (first element)
	if !isStartAnchor(subs[0]) {
		return nil
	}

	// Check end anchor (last element)
	if !isEndAnchor(subs[len(subs)-1]) {
		return nil
	}

	// Find the structure: [anchor] [prefix?] [wildcard] [charclass?] [suffix] [anchor]
	// We work from both ends toward the middle.

	// Extract suffix (second to last, before end anchor)
	suffixIdx := len(subs) - 2
	suffix := extractLiteral(subs[suffixIdx])
	if suffix == nil {
		// No suffix literal - not eligible
		return nil
	}

	// Search for wildcard (.* or .+) between start anchor and suffix
	// Also collect any prefix literals and charclass bridge
	var prefix []byte
	var wildcardIdx = -1
	var wildcardMin int
	var charClassTable *[256]bool
	var charClassMin int

	// Scan from after start anchor to before suffix
	for i := 1; i < suffixIdx; i++ {
		sub := subs[i]

		//nolint:gocritic // ifElseChain: conditions are on different expressions, switch not appropriate
		if isGreedyWildcard(sub) {
			if wildcardIdx != -1 {
				// Multiple wildcards - too complex
				return nil
			}
			wildcardIdx = i
			wildcardMin = getWildcardMin(sub)
		} else if wildcardIdx == -1 {
			// Before wildcard - must be literal (prefix)
			lit := extractLiteral(sub)
			if lit == nil {
				// Non-literal before wildcard - not eligible
				// (could be optional like https?, handle later)
				if sub.Op == syntax.OpQuest {
					// Optional element - check if contains literal
					if len(sub.Sub) > 0 && sub.Sub[0].Op == syntax.OpLiteral {
						// Optional literal like "s?" in "https?"
						// For now, include it as part of prefix checking
						// This is complex - skip for MVP
						return nil
					}
				}
				return nil
			}
			prefix = append(prefix, lit...)
		} else {
			// After wildcard - must be charclass+ or nothing
			if isCharClassPlus(sub) && i == suffixIdx-1 {
				// Charclass bridge right before suffix
				charClassTable = buildCharClassTable(sub.Sub[0])
				charClassMin = 1 // Plus requires at least 1
			} else {
				// Something else between wildcard and suffix - not eligible
				return nil
			}
		}
	}

	if wildcardIdx == -1 {
		// No wildcard found - not eligible
		return nil
	}

	// Calculate minimum length
	minLen := len(prefix) + wildcardMin + charClassMin + len(suffix)

	return &AnchoredLiteralInfo{
		Prefix:         prefix,
		Suffix:         suffix,
		CharClassTable: charClassTable,
		CharClassMin:   charClassMin,
		WildcardMin:    wildcardMin,
		MinLength:      minLen,
	}
}
