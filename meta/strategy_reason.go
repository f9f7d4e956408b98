package meta

import (
	"github.com/corelex/rex2/literal"
	"github.com/corelex/rex2/nfa"
)

// strategyReasons maps simple strategies to their reason strings.
// This reduces cyclomatic complexity by avoiding switch cases for constant-return strategies.
var strategyReasons = map[Strategy]string{
	UseBoth:                   "adaptive strategy (medium complexity pattern)",
	UseReverseAnchored:        "reverse search for end-anchored pattern (O(m) instead of O(n*m))",
	UseReverseSuffix:          "suffix literal prefilter + reverse DFA (10-100x for patterns like .*\\.txt)",
	UseOnePass:                "one-pass DFA for anchored pattern with captures (10-20x over PikeVM)",
	UseReverseInner:           "inner literal prefilter + bidirectional DFA (10-100x for patterns like ERROR.*connection.*timeout)",
	UseTeddy:                  "Teddy multi-pattern prefilter for exact literal alternation (50-250x by skipping DFA)",
	UseReverseSuffixSet:       "Teddy multi-suffix prefilter for suffix alternation (5-10x for patterns like .*\\.(txt|log|md))",
	UseCharClassSearcher:      "specialized lookup-table searcher for char_class+ patterns (14-17x faster than BoundedBacktracker)",
	UseCompositeSearcher:      "sequential lookup tables for concatenated char classes (5-6x faster than BoundedBacktracker)",
	UseBranchDispatch:         "O(1) first-byte dispatch for anchored alternations (2-3x faster on match, 10x+ on no-match)",
	UseDigitPrefilter:         "SIMD digit scanner for digit-lead alternation patterns (5-10x for IP address patterns)",
	UseAhoCorasick:            "Aho-Corasick automaton for large literal alternations (50-500x for >32 pattern sets)",
	UseAnchoredLiteral:        "O(1) specialized matching for ^prefix.*suffix$ patterns (50-90x faster than stdlib)",
	UseMultilineReverseSuffix: "line-aware suffix prefilter for multiline patterns (5-20x for (?m)^.*\\.php patterns)",
}

// StrategyReason provides a human-readable explanation for strategy selection.
//
// This is useful for debugging and performance tuning.
//
// Example:
//
//	strategy := meta.SelectStrategy(nfa, literals, config)
//	reason := meta.StrategyReason(strategy, nfa, literals, config)
//	log.Printf("Using %s: %s", strategy, reason)
func StrategyReason(strategy Strategy, n *nfa.NFA, literals *literal.Seq, config Config) string {
	if reason, ok := strategyReasons[strategy]; ok {
		return reason
	}

	return strategyReasonComplex(strategy, n, literals, config)
}

// strategyReasonComplex handles strategies with context-dependent reason strings.
// This is a helper function to reduce cyclomatic complexity in StrategyReason.
func strategyReasonComplex(strategy Strategy, n *nfa.NFA, literals *literal.Seq, config Config) string {
	nfaSize := n.States()

	switch strategy {
	case UseNFA:
		if !config.EnableDFA {
			return "DFA disabled in configuration"
		}
		if nfaSize < 20 {
			return "tiny NFA (< 20 states), DFA overhead not worth it"
		}
		return "no good literals and small NFA"

	case UseDFA:
		if literals != nil && !literals.IsEmpty() {
			lcp := literals.LongestCommonPrefix()
			if len(lcp) >= config.MinLiteralLen {
				return "good literals available for prefilter + DFA"
			}
		}
		if nfaSize > 100 {
			return "large NFA (> 100 states), DFA essential"
		}
		return "DFA selected for performance"

	case UseBoundedBacktracker:
		if n.IsAlwaysAnchored() {
			return "bounded backtracker for start-anchored pattern (skip DFA for single-position check)"
		}
		return "bounded backtracker for simple character class pattern (2-4x faster than PikeVM)"

	default:
		return "unknown strategy"
	}
}
