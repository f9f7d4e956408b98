package meta

import "regexp/syntax"

// isDigitOnlyClass returns true if the character class contains ONLY digits [0-9].
// The runes slice contains pairs: [lo1, hi1, lo2, hi2, ...] representing ranges.
//
// Examples:
//   - [0-9] → runes = [48, 57] → true
//   - [0-5] → runes = [48, 53] → true
//   - [0-9a-z] → runes = [48, 57, 97, 122] → false (includes letters)
//   - [a-z] → runes = [97, 122] → false (no digits)
func isDigitOnlyClass(runes []rune) bool {
	if len(runes) == 0 || len(runes)%2 != 0 {
		return false
	}

	for i := 0; i < len(runes); i += 2 {
		lo, hi := runes[i], runes[i+1]
		if lo < '0' || hi > '9' {
			return false
		}
	}
	return true
}

// isOptionalElement returns true if the syntax element can match zero characters.
// This includes Quest (?), Star (*), and Repeat with min=0.
func isOptionalElement(re *syntax.Regexp) bool {
	if re == nil {
		return false
	}
	switch re.Op {
	case syntax.OpQuest, syntax.OpStar:
		return true
	case syntax.OpRepeat:
		return re.Min == 0
	default:
		return false
	}
}

// isOptionalDigitOnly returns true if the optional element, when it matches,
// only matches digits. This is used for [1-9]? type patterns where we need
// to verify the element is safe to skip over in digit-lead detection.
func isOptionalDigitOnly(re *syntax.Regexp) bool {
	if re == nil || len(re.Sub) == 0 {
		return false
	}
	sub := re.Sub[0]
	switch sub.Op {
	case syntax.OpCharClass:
		return isDigitOnlyClass(sub.Rune)
	case syntax.OpLiteral:
		for _, r := range sub.Rune {
			if r < '0' || r > '9' {
				return false
			}
		}
		return len(sub.Rune) > 0
	default:
		// If the sub-pattern is itself digit-lead, any match starts with a digit.
		return isDigitLeadPattern(sub)
	}
}

// isDigitLeadConcat checks if a concatenation pattern is digit-lead.
//
// If an element is optional and digit-only, it's fine either way and we
// continue; if optional but not digit-only, the pattern is not digit-lead;
// if required, the pattern is digit-lead iff that element is.
func isDigitLeadConcat(subs []*syntax.Regexp) bool {
	for _, sub := range subs {
		if isOptionalElement(sub) {
			if !isOptionalDigitOnly(sub) {
				return false
			}
			continue
		}
		return isDigitLeadPattern(sub)
	}
	// All elements were optional - pattern can match empty, not digit-lead
	return false
}

// isDigitLeadPattern returns true if ALL branches of the pattern must start with a digit [0-9].
// This is used to enable digit prefilter optimization for patterns like IP addresses.
//
// The function recursively analyzes the AST to determine if every possible match
// must begin with a digit character. This enables SIMD prefiltering to skip
// non-digit regions entirely.
//
// Examples that return true:
//   - \d+ (digit class with plus)
//   - [0-9]+ (explicit digit range)
//   - 25[0-5]|2[0-4][0-9] (all branches start with digit literal)
//   - (\d+) (capture group wrapping digit pattern)
//
// Examples that return false:
//   - [a-z0-9]+ (may start with letter)
//   - a\d+ (starts with literal 'a')
//   - \d*foo, \d?foo (star/quest can match zero)
//   - .*\d+ (dot-star matches anything)
func isDigitLeadPattern(re *syntax.Regexp) bool {
	if re == nil {
		return false
	}

	switch re.Op {
	case syntax.OpCharClass:
		return isDigitOnlyClass(re.Rune)

	case syntax.OpLiteral:
		return len(re.Rune) > 0 && re.Rune[0] >= '0' && re.Rune[0] <= '9'

	case syntax.OpAlternate:
		if len(re.Sub) == 0 {
			return false
		}
		for _, sub := range re.Sub {
			if !isDigitLeadPattern(sub) {
				return false
			}
		}
		return true

	case syntax.OpConcat:
		if len(re.Sub) == 0 {
			return false
		}
		return isDigitLeadConcat(re.Sub)

	case syntax.OpCapture:
		if len(re.Sub) == 0 {
			return false
		}
		return isDigitLeadPattern(re.Sub[0])

	case syntax.OpPlus:
		if len(re.Sub) == 0 {
			return false
		}
		return isDigitLeadPattern(re.Sub[0])

	case syntax.OpRepeat:
		if len(re.Sub) == 0 {
			return false
		}
		if re.Min >= 1 {
			return isDigitLeadPattern(re.Sub[0])
		}
		return false

	case syntax.OpStar, syntax.OpQuest:
		return false

	case syntax.OpEmptyMatch:
		return false

	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		return false

	case syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText:
		return false

	case syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return false

	default:
		return false
	}
}

// digitPrefilterMaxNFAStates is the maximum NFA state count for using digit prefilter.
// Set to 100 to include IP patterns (74 states) - digit prefilter + sliced haystack
// optimization provides good speedup by skipping non-digit positions.
const digitPrefilterMaxNFAStates = 100

// shouldUseDigitPrefilter checks if the pattern should use digit prefilter optimization.
//
// Returns true when the pattern must start with a digit, DFA and prefilter
// are enabled, and the NFA is small enough that per-position verification
// overhead doesn't exceed the SIMD scanning benefit.
func shouldUseDigitPrefilter(re *syntax.Regexp, nfaSize int, config Config) bool {
	if re == nil || !config.EnableDFA || !config.EnablePrefilter {
		return false
	}
	if nfaSize > digitPrefilterMaxNFAStates {
		return false
	}
	return isDigitLeadPattern(re)
}

// isDigitRunSkipSafe reports whether the leading element of the pattern is an
// unbounded run of digits (\d+, \d*, or \d{n,}) over a plain digit class. When
// true, the digit prefilter can skip directly to the next digit run instead of
// verifying every candidate position, since any digit byte inside the run is
// itself a valid starting point.
func isDigitRunSkipSafe(re *syntax.Regexp) bool {
	if re == nil {
		return false
	}

	switch re.Op {
	case syntax.OpStar, syntax.OpPlus:
		if len(re.Sub) != 1 || re.Sub[0].Op != syntax.OpCharClass {
			return false
		}
		return isDigitOnlyClass(re.Sub[0].Rune)

	case syntax.OpRepeat:
		if re.Max != -1 || len(re.Sub) != 1 || re.Sub[0].Op != syntax.OpCharClass {
			return false
		}
		return isDigitOnlyClass(re.Sub[0].Rune)

	case syntax.OpConcat:
		if len(re.Sub) == 0 {
			return false
		}
		return isDigitRunSkipSafe(re.Sub[0])

	case syntax.OpCapture:
		if len(re.Sub) == 0 {
			return false
		}
		return isDigitRunSkipSafe(re.Sub[0])

	default:
		return false
	}
}
