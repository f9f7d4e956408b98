// Package onepass implements the "one-pass" DFA fast path for anchored,
// capture-bearing patterns.
//
// A pattern is one-pass when, at every byte of an anchored match, the NFA
// never has to guess between two live paths: the next byte always picks at
// most one successor. That property lets the whole automaton, captures
// included, be flattened into a single dense transition table at compile
// time, so a search becomes a tight table-lookup loop with no thread list,
// no stack, and no backtracking. The trade is narrower applicability: only
// anchored searches are supported, and anything genuinely ambiguous —
// `a*a`, `(.*) (.*)`, a first-byte clash inside an alternation like
// `(ab|ac)` — is rejected by Build and has to run on PikeVM or the lazy DFA
// instead.
//
// The package is split by concern rather than by lifecycle: this file holds
// just the shared types and sentinel errors; dfa.go holds the compiled
// automaton and its byte-at-a-time stepping; search.go layers capture
// tracking on top of that stepping; builder.go does the compile-time
// epsilon-closure walk that either produces a DFA or proves the pattern
// isn't one-pass.
package onepass

import "errors"

var (
	// ErrNotOnePass means Build found a point in the pattern where more
	// than one NFA path could be live at once.
	ErrNotOnePass = errors.New("pattern is not one-pass")

	// ErrTooManyCaptures means the pattern declares more than the 16
	// explicit capture groups a one-pass DFA can track (32 slots, plus
	// group 0 for the overall match).
	ErrTooManyCaptures = errors.New("too many capture groups (max 16)")
)

// StateID indexes a state in a one-pass DFA's transition table. 21 bits are
// reserved for it inside Transition's packed encoding, capping a single
// automaton at a little over two million states.
type StateID uint32
