package meta

import (
	"regexp/syntax"

	"github.com/corelex/rex2/literal"
	"github.com/corelex/rex2/nfa"
	"github.com/corelex/rex2/prefilter"
)

// hasWordBoundary recursively checks if a syntax.Regexp contains word boundary assertions.
//
// Word boundary assertions don't work correctly with reverse DFA search because
// the boundary depends on both adjacent characters, which changes meaning in reverse.
func hasWordBoundary(re *syntax.Regexp) bool {
	if re == nil {
		return false
	}

	switch re.Op {
	case syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return true
	case syntax.OpConcat, syntax.OpAlternate:
		for _, sub := range re.Sub {
			if hasWordBoundary(sub) {
				return true
			}
		}
	case syntax.OpCapture, syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		for _, sub := range re.Sub {
			if hasWordBoundary(sub) {
				return true
			}
		}
	}
	return false
}

// isSafeForReverseSuffix checks if a pattern is safe for UseReverseSuffix strategy.
// Returns true only for patterns where reverse search is proven to work correctly.
//
// Safe patterns (whitelist approach):
//   - `.*suffix` - AnyChar Star followed by literal
//   - `.+suffix` - AnyChar Plus followed by literal
//   - `[charclass]+suffix` - CharClass Plus followed by literal (e.g., `[^\s]+\.txt`)
//   - `prefix.*suffix` - literal, AnyChar Star, literal
//
// Unsafe patterns (blacklist - excluded):
//   - Quest (?) before suffix: `0?0`, `a?b` - reverse NFA bug with optional
//   - Internal anchors: `0?^0`, `a$b` - position constraints don't reverse
//   - Star of CharClass: `[^\s]*suffix` - zero-width match edge cases
func isSafeForReverseSuffix(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpConcat:
		if len(re.Sub) < 2 {
			return false
		}
		hasWildcard := false
		for i := 0; i < len(re.Sub)-1; i++ {
			sub := re.Sub[i]
			if (sub.Op == syntax.OpStar || sub.Op == syntax.OpPlus) &&
				len(sub.Sub) > 0 &&
				(sub.Sub[0].Op == syntax.OpAnyChar || sub.Sub[0].Op == syntax.OpAnyCharNotNL) {
				hasWildcard = true
				break
			}
			if sub.Op == syntax.OpPlus && len(sub.Sub) > 0 && sub.Sub[0].Op == syntax.OpCharClass {
				hasWildcard = true
				break
			}
		}
		if !hasWildcard {
			return false
		}
		for i := 1; i < len(re.Sub)-1; i++ {
			if containsAnchor(re.Sub[i]) {
				return false
			}
		}
		return true

	case syntax.OpCapture:
		if len(re.Sub) > 0 {
			return isSafeForReverseSuffix(re.Sub[0])
		}
		return false

	default:
		return false
	}
}

// containsAnchor checks if AST contains any anchor (^, $, \A, \z)
func containsAnchor(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText:
		return true
	case syntax.OpConcat, syntax.OpAlternate:
		for _, sub := range re.Sub {
			if containsAnchor(sub) {
				return true
			}
		}
	case syntax.OpCapture, syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		if len(re.Sub) > 0 {
			return containsAnchor(re.Sub[0])
		}
	}
	return false
}

// isMultilineLineAnchored checks if a pattern has multiline line-start anchor (^).
// Returns true for patterns like `(?m)^.*suffix` where ^ matches at line starts.
//
// This distinguishes:
//   - `(?m)^.*\.php` → true (multiline, line-anchored)
//   - `.*\.php` → false (unanchored, use UseReverseSuffix)
//   - `\A.*\.php` → false (text-anchored, not multiline)
func isMultilineLineAnchored(re *syntax.Regexp) bool {
	return containsLineStartAnchor(re) && containsWildcard(re)
}

// containsLineStartAnchor checks if AST contains OpBeginLine (^) but NOT OpBeginText (\A).
// Returns true only for multiline line-start anchors, not text-start anchors.
func containsLineStartAnchor(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpBeginLine:
		return true
	case syntax.OpBeginText:
		return false
	case syntax.OpConcat:
		if len(re.Sub) > 0 && re.Sub[0].Op == syntax.OpBeginLine {
			return true
		}
		for _, sub := range re.Sub {
			if containsLineStartAnchor(sub) {
				return true
			}
		}
	case syntax.OpAlternate:
		// All branches must have line-start anchor for pattern to be line-anchored
		if len(re.Sub) == 0 {
			return false
		}
		for _, sub := range re.Sub {
			if !containsLineStartAnchor(sub) {
				return false
			}
		}
		return true
	case syntax.OpCapture:
		if len(re.Sub) > 0 {
			return containsLineStartAnchor(re.Sub[0])
		}
	}
	return false
}

// containsWildcard checks if AST contains .* or .+ wildcard pattern.
func containsWildcard(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpStar, syntax.OpPlus:
		if len(re.Sub) > 0 {
			sub := re.Sub[0]
			if sub.Op == syntax.OpAnyChar || sub.Op == syntax.OpAnyCharNotNL {
				return true
			}
		}
	case syntax.OpConcat, syntax.OpAlternate:
		for _, sub := range re.Sub {
			if containsWildcard(sub) {
				return true
			}
		}
	case syntax.OpCapture, syntax.OpQuest, syntax.OpRepeat:
		if len(re.Sub) > 0 {
			return containsWildcard(re.Sub[0])
		}
	}
	return false
}

// isSafeForMultilineReverseSuffix checks if a pattern is safe for UseMultilineReverseSuffix.
// Returns true for patterns where line-aware reverse search is proven to work correctly.
//
// Safe patterns:
//   - `(?m)^.*suffix` - Line-anchored with any-char wildcard
//   - `(?m)^.+suffix` - Line-anchored with required any-char
//   - `(?m)^[charclass]+suffix` - Line-anchored with charclass
//
// Unsafe patterns:
//   - Patterns with internal line anchors
//   - Patterns where reverse search semantics differ
func isSafeForMultilineReverseSuffix(re *syntax.Regexp) bool {
	if !isMultilineLineAnchored(re) {
		return false
	}

	switch re.Op {
	case syntax.OpConcat:
		if len(re.Sub) < 2 {
			return false
		}
		// First element should be ^ (line start anchor), then .* or .+ or
		// [charclass]+, then suffix literal.
		hasLineAnchor := false
		hasWildcard := false

		for i, sub := range re.Sub {
			if i == 0 && sub.Op == syntax.OpBeginLine {
				hasLineAnchor = true
				continue
			}
			if isWildcardOp(sub) {
				hasWildcard = true
				continue
			}
		}

		return hasLineAnchor && hasWildcard

	case syntax.OpCapture:
		if len(re.Sub) > 0 {
			return isSafeForMultilineReverseSuffix(re.Sub[0])
		}
		return false

	default:
		return false
	}
}

// isWildcardOp checks if the op is a wildcard pattern (.*, .+, or [charclass]+)
func isWildcardOp(re *syntax.Regexp) bool {
	if re.Op == syntax.OpStar || re.Op == syntax.OpPlus {
		if len(re.Sub) > 0 {
			sub := re.Sub[0]
			if sub.Op == syntax.OpAnyChar || sub.Op == syntax.OpAnyCharNotNL {
				return true
			}
			if re.Op == syntax.OpPlus && sub.Op == syntax.OpCharClass {
				return true
			}
		}
	}
	return false
}

// isSafeForReverseInner checks if a pattern is safe for UseReverseInner strategy.
// Returns true for patterns where reverse search is proven to work correctly.
//
// Safe patterns:
//   - `.*keyword.*` - AnyChar Star on both sides
//   - `[\w]+@[\w]+` - CharClass Plus (email patterns)
//   - `.+keyword` - AnyChar Plus before
//
// Unsafe patterns:
//   - `A*20*` - Star of Literal (not AnyChar or CharClass)
//   - Patterns with Star that could match zero (zero-width issues)
func isSafeForReverseInner(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpConcat:
		if len(re.Sub) < 2 {
			return false
		}
		first := re.Sub[0]

		if (first.Op == syntax.OpStar || first.Op == syntax.OpPlus) &&
			len(first.Sub) > 0 &&
			(first.Sub[0].Op == syntax.OpAnyChar || first.Sub[0].Op == syntax.OpAnyCharNotNL) {
			return true
		}

		// CharClass Plus ([\w]+ etc) is safe because Plus requires at least 1
		// char; Star of CharClass could be zero-width, so only Plus is allowed.
		if first.Op == syntax.OpPlus && len(first.Sub) > 0 && first.Sub[0].Op == syntax.OpCharClass {
			return true
		}

		return false

	case syntax.OpCapture:
		if len(re.Sub) > 0 {
			return isSafeForReverseInner(re.Sub[0])
		}
		return false

	default:
		return false
	}
}

// shouldUseReverseSuffixSet checks if multiple suffix literals are available for Teddy prefilter.
// This handles patterns like `.*\.(txt|log|md)` where LCS is empty but individual suffixes are useful.
func shouldUseReverseSuffixSet(prefixLiterals, suffixLiterals *literal.Seq) bool {
	if suffixLiterals == nil || suffixLiterals.IsEmpty() {
		return false
	}

	// Skip if this is an exact literal alternation (would be better served by UseTeddy).
	// For `foo|bar|baz`: prefix literals == suffix literals, all complete.
	// For `.*\.(txt|log|md)`: prefix is empty/[""], suffix is [".txt", ".log", ".md"].
	if prefixLiterals != nil && !prefixLiterals.IsEmpty() && prefixLiterals.AllComplete() {
		if prefixLiterals.Len() == suffixLiterals.Len() {
			return false
		}
	}

	litCount := suffixLiterals.Len()
	if litCount < 2 || litCount > 32 {
		return false
	}

	for i := 0; i < litCount; i++ {
		if len(suffixLiterals.Get(i).Bytes) < 2 { // allow 2-byte suffixes for extensions
			return false
		}
	}

	return true
}

// hasFastPrefixPrefilter checks if the prefix literals would produce a "fast"
// SIMD-backed prefilter. Used to gate reverse optimizations.
//
// Returns true when the prefix literals have a good LCP (producing
// Memchr/Memmem) or would produce a fast Teddy prefilter.
func hasFastPrefixPrefilter(literals *literal.Seq, config Config) bool {
	if literals == nil || literals.IsEmpty() {
		return false
	}
	lcp := literals.LongestCommonPrefix()
	if len(lcp) >= config.MinLiteralLen {
		return true
	}
	return prefilter.WouldBeFast(literals)
}

// selectReverseStrategy selects reverse-based strategies (ReverseSuffix, ReverseInner).
// Returns 0 if no reverse strategy is suitable.
//
// This is a helper function to reduce cyclomatic complexity in SelectStrategy.
func selectReverseStrategy(n *nfa.NFA, re *syntax.Regexp, literals *literal.Seq, config Config) Strategy {
	if re == nil || !config.EnableDFA || !config.EnablePrefilter {
		return 0
	}

	// Patterns with end anchor ($, \z) NOT at end position are impossible to match.
	// E.g., `$00` has $ followed by "00" - nothing can follow end-of-string.
	// These patterns should fall through to NFA which will correctly return no match.
	if nfa.HasImpossibleEndAnchor(re) {
		return 0
	}

	if hasWordBoundary(re) {
		return 0
	}

	if n.IsAlwaysAnchored() || nfa.IsPatternEndAnchored(re) {
		return 0 // Anchored patterns use other strategies
	}

	extractor := literal.New(literal.ExtractorConfig{
		MaxLiterals:   config.MaxLiterals,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	})

	// Multiline check first: for patterns like `(?m)^/.*\.php`, the ^ anchor
	// matches at LINE start, not just position 0, so prefix literals are not
	// useful (the match can occur on any line). This must come before the
	// prefix literal check below.
	if isSafeForMultilineReverseSuffix(re) {
		suffixLiterals := extractor.ExtractSuffixes(re)
		if suffixLiterals != nil && !suffixLiterals.IsEmpty() {
			lcs := suffixLiterals.LongestCommonSuffix()
			if len(lcs) >= config.MinLiteralLen {
				return UseMultilineReverseSuffix
			}
		}
	}

	// If prefix literals would already produce a fast forward prefilter, skip
	// reverse optimizations - the overhead is not worth it.
	if hasFastPrefixPrefilter(literals, config) {
		return 0
	}

	// No good/fast prefix - check suffix literals (for patterns like `.*\.txt`)
	suffixLiterals := extractor.ExtractSuffixes(re)
	if suffixLiterals != nil && !suffixLiterals.IsEmpty() {
		lcs := suffixLiterals.LongestCommonSuffix()
		if len(lcs) >= config.MinLiteralLen {
			// Whitelist approach: only enable ReverseSuffix for patterns where
			// reverse search is proven to work correctly.
			if !isSafeForReverseSuffix(re) {
				return 0
			}
			return UseReverseSuffix
		}
	}

	// No common suffix (LCS empty), but check if multiple suffix literals
	// are available for Teddy multi-suffix prefilter, e.g. `.*\.(txt|log|md)`.
	if shouldUseReverseSuffixSet(literals, suffixLiterals) {
		return UseReverseSuffixSet
	}

	// No prefix or suffix - try inner literal (for patterns like `.*keyword.*`)
	innerInfo := extractor.ExtractInnerForReverseSearch(re)
	if innerInfo != nil {
		lcp := innerInfo.Literals.LongestCommonPrefix()
		// Single-character inner literals like "@" can still be effective
		// (Match() gets a memchr prefilter, Find() uses early return), except
		// for digit-lead patterns like `\d+\.\d+\.\d+` where DigitPrefilter
		// is faster due to the high frequency of "." in typical text.
		if len(lcp) == 1 && isDigitLeadPattern(re) {
			return 0
		}
		if len(lcp) >= 1 {
			if !isSafeForReverseInner(re) {
				return 0
			}
			return UseReverseInner
		}
	}

	return 0
}
