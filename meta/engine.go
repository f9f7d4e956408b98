// Package meta implements the meta-engine orchestrator.
//
// engine.go contains the Engine struct definition.

package meta

import (
	"regexp/syntax"

	"github.com/coregx/ahocorasick"
	"github.com/corelex/rex2/dfa/lazy"
	"github.com/corelex/rex2/dfa/onepass"
	"github.com/corelex/rex2/nfa"
	"github.com/corelex/rex2/prefilter"
)

// Engine is the meta-engine that orchestrates all regex execution strategies.
//
// The Engine:
//  1. Analyzes the pattern and extracts literals
//  2. Selects the optimal strategy (NFA, DFA, or both)
//  3. Builds prefilter (if literals available)
//  4. Coordinates search across engines
//
// Thread safety: The Engine uses a sync.Pool internally to provide thread-safe
// concurrent access. Multiple goroutines can safely call search methods (Find,
// IsMatch, FindSubmatch, etc.) on the same Engine instance concurrently.
//
// The underlying NFA, DFA, and prefilters are immutable after compilation.
// Per-search mutable state is managed via sync.Pool, following the Go stdlib
// regexp package pattern.
//
// Example:
//
//	// Compile pattern (once)
//	engine, err := meta.Compile("(foo|bar)\\d+")
//	if err != nil {
//	    return err
//	}
//
//	// Search (safe to call from multiple goroutines)
//	haystack := []byte("test foo123 end")
//	match := engine.Find(haystack)
//	if match != nil {
//	    println(match.String()) // "foo123"
//	}
type Engine struct {
	// Statistics (useful for debugging and tuning)
	// IMPORTANT: stats MUST be first field for proper 8-byte alignment on 32-bit platforms.
	// This ensures atomic operations on uint64 fields work correctly.
	stats Stats

	nfa *nfa.NFA

	// ast is the parsed, simplified pattern tree. Kept around for
	// operations that need to walk the original structure rather than
	// the compiled program, such as LiteralPrefix.
	ast *syntax.Regexp

	// asciiNFA is an NFA compiled in ASCII-only mode (V11-002 optimization).
	// When the pattern contains '.' and input is ASCII-only (all bytes < 0x80),
	// this NFA is used instead of the main NFA. ASCII mode compiles '.' to
	// a single byte range (0x00-0x7F) instead of ~28 UTF-8 states.
	//
	// Performance impact for Issue #79 pattern ^/.*[\w-]+\.php:
	//   - UTF-8 NFA: ~39 states, BoundedBacktracker walks all states per byte
	//   - ASCII NFA: ~14 states, 2.8x state reduction
	//
	// Runtime detection uses SIMD (AVX2 on x86-64) to check if input is ASCII,
	// achieving ~20-40 GB/s throughput.
	//
	// This field is nil if:
	//   - Pattern doesn't contain '.' (no benefit from ASCII optimization)
	//   - ASCII optimization is disabled via config
	asciiNFA                       *nfa.NFA
	asciiBoundedBacktracker        *nfa.BoundedBacktracker // BoundedBacktracker for asciiNFA
	dfa                            *lazy.DFA
	pikevm                         *nfa.PikeVM
	boundedBacktracker             *nfa.BoundedBacktracker
	charClassSearcher              *nfa.CharClassSearcher    // Specialized searcher for char_class+ patterns
	compositeSearcher              *nfa.CompositeSearcher    // For concatenated char classes like [a-zA-Z]+[0-9]+
	compositeSequenceDFA           *nfa.CompositeSequenceDFA // DFA for composite patterns (faster than backtracking)
	branchDispatcher               *nfa.BranchDispatcher     // O(1) branch dispatch for anchored alternations
	anchoredFirstBytes             *nfa.FirstByteSet         // O(1) first-byte rejection for anchored patterns
	anchoredSuffix                 []byte                    // O(1) suffix rejection for anchored patterns
	reverseSearcher                *ReverseAnchoredSearcher
	reverseSuffixSearcher          *ReverseSuffixSearcher
	reverseSuffixSetSearcher       *ReverseSuffixSetSearcher
	reverseInnerSearcher           *ReverseInnerSearcher
	multilineReverseSuffixSearcher *MultilineReverseSuffixSearcher // For (?m)^.*suffix patterns
	digitPrefilter                 *prefilter.DigitPrefilter       // For digit-lead patterns like IP addresses
	ahoCorasick                    *ahocorasick.Automaton          // For large literal alternations (>32 patterns)
	anchoredLiteralInfo            *AnchoredLiteralInfo            // For ^prefix.*suffix$ patterns (Issue #79)
	prefilter                      prefilter.Prefilter
	strategy                       Strategy
	config                         Config

	// fatTeddyFallback is an Aho-Corasick automaton used as fallback for small haystacks
	// when the main prefilter is Fat Teddy (33-64 patterns). Fat Teddy's AVX2 SIMD setup
	// overhead makes it slower than Aho-Corasick for haystacks < 64 bytes.
	// Reference: rust-aho-corasick/src/packed/teddy/builder.rs:585 (minimum_len fallback)
	fatTeddyFallback *ahocorasick.Automaton

	// OnePass DFA for anchored patterns with captures (optional optimization)
	// This is independent of strategy - used by FindSubmatch when available
	// Note: The cache is now stored in pooled SearchState for thread-safety
	onepass *onepass.DFA

	// statePool provides thread-safe pooling of per-search mutable state.
	// This enables concurrent searches on the same Engine instance.
	statePool *searchStatePool

	// longest enables leftmost-longest (POSIX) matching semantics
	// By default (false), uses leftmost-first (Perl) semantics
	longest bool

	// canMatchEmpty is true if the pattern can match an empty string.
	// When true, BoundedBacktracker cannot be used for Find operations
	// because its greedy semantics give wrong results for patterns like (?:|a)*
	canMatchEmpty bool

	// isStartAnchored is true if the pattern is anchored at start (^).
	// Used for first-byte prefilter optimization.
	isStartAnchored bool
}
