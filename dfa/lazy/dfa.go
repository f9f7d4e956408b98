// Package lazy implements an on-demand ("lazy") DFA for regex matching: a
// deterministic automaton whose states are determinized the first time a
// search actually visits them, rather than all at once ahead of time.
//
// Compiling the full subset-construction DFA for a pattern can blow up
// exponentially in the number of states. Building states lazily sidesteps
// that entirely for the common case, since real searches visit only a
// small fraction of the states a full DFA would need: a bounded cache
// holds whatever has been determinized so far, and when the cache fills up
// it is cleared and rebuilt rather than growing without bound. If too many
// clears happen in one search (a sign the pattern is pathological for this
// representation), the engine gives up and reruns the search on the
// Thompson NFA instead, which is slower but has no such blowup.
//
//	dfa, err := lazy.CompilePattern(`(foo|bar)\d+`)
//	if err != nil {
//		return err
//	}
//	if pos := dfa.Find([]byte("test foo123 end")); pos != -1 {
//		fmt.Println("matched ending at", pos)
//	}
package lazy

import (
	"errors"

	"github.com/corelex/rex2/nfa"
	"github.com/corelex/rex2/prefilter"
	"github.com/corelex/rex2/simd"
)

// DFA is an on-demand determinizing automaton over a single compiled
// pattern. It is not safe for concurrent use: a search mutates the state
// cache as it determinizes new states, so each goroutine needs its own DFA
// built from the shared, immutable *nfa.NFA.
type DFA struct {
	nfa       *nfa.NFA
	cache     *Cache
	config    Config
	prefilter prefilter.Prefilter
	pikevm    *nfa.PikeVM

	// states indexes determinized states by ID. IDs are assigned
	// sequentially, so a slice beats a map here — profiling showed map
	// lookups eating a disproportionate share of search time.
	states []*State

	// startTable caches the start state for each (look-behind context,
	// anchored) pair, so assertions like ^ and \b don't require
	// recomputing an epsilon closure on every search.
	startTable *StartTable

	// byteClasses folds the 256-byte alphabet down to however many
	// equivalence classes the pattern actually distinguishes, shrinking
	// per-state transition storage accordingly.
	byteClasses *nfa.ByteClasses

	// freshStartStates are the NFA states reachable from the anchored
	// start; they get reintroduced by the unanchored prefix after every
	// position. A thread set containing only these (plus unanchoredStart
	// machinery) carries no live pattern progress, so a committed match
	// can be returned immediately — see hasInProgressPattern.
	freshStartStates map[nfa.StateID]bool
	unanchoredStart  nfa.StateID

	// hasWordBoundary gates the per-byte \b/\B bookkeeping in the search
	// loops; patterns without word assertions skip it entirely.
	hasWordBoundary bool

	// isAlwaysAnchored means every match must start at position 0, so
	// searches starting elsewhere can fail immediately.
	isAlwaysAnchored bool
}

// hasInProgressPattern reports whether state still carries a thread that
// could extend a previously committed match. If every live NFA state is
// either a fresh restart of the unanchored prefix or the unanchored
// machinery itself, there is nothing left that could grow the match, and
// the caller can stop and return what it already has.
func (d *DFA) hasInProgressPattern(state *State) bool {
	for _, nfaState := range state.NFAStates() {
		if d.freshStartStates[nfaState] {
			continue
		}
		if nfaState >= d.unanchoredStart-1 {
			continue
		}
		return true
	}
	return false
}

// ByteClasses returns the byte equivalence classes backing this DFA, or
// nil if the NFA it was built from didn't carry alphabet reduction.
func (d *DFA) ByteClasses() *nfa.ByteClasses {
	return d.byteClasses
}

// AlphabetLen returns how many equivalence classes the byte alphabet folds
// into, or 256 if there is no reduction.
func (d *DFA) AlphabetLen() int {
	if d.byteClasses == nil {
		return 256
	}
	return d.byteClasses.AlphabetLen()
}

// byteToClass maps a raw byte to its equivalence class, or returns it
// unchanged if this DFA has no byte classes.
func (d *DFA) byteToClass(b byte) byte {
	if d.byteClasses == nil {
		return b
	}
	return d.byteClasses.Get(b)
}

// CacheStats reports the determinized-state cache's current size,
// capacity, and hit/miss counts, for tuning and diagnostics.
func (d *DFA) CacheStats() (size int, capacity uint32, hits, misses uint64, hitRate float64) {
	size = d.cache.Size()
	capacity = d.config.MaxStates
	hits, misses, hitRate = d.cache.Stats()
	return
}

// ResetCache discards every determinized state and rebuilds just the start
// state, forcing the rest to be recomputed on the next search. Intended
// for tests and benchmarks that need a clean cache between runs.
func (d *DFA) ResetCache() {
	d.cache.Clear()
	d.states = make([]*State, 0, d.config.MaxStates)
	d.startTable = NewStartTable()

	builder := NewBuilderWithWordBoundary(d.nfa, d.config, d.hasWordBoundary)
	startLook := LookSetFromStartKind(StartText)
	startStateSet := builder.epsilonClosure([]nfa.StateID{d.nfa.StartUnanchored()}, startLook)
	isMatch := builder.containsMatchState(startStateSet)
	startState := NewStateWithStride(StartState, startStateSet, isMatch, false, d.AlphabetLen())
	key := ComputeStateKey(startStateSet)
	_, _ = d.cache.Insert(key, startState) // cache is empty, cannot fail
	d.registerState(startState)
	d.startTable.Set(StartText, false, startState.ID())
}

// isSpecialStateID reports whether id needs the slow path: DeadState,
// InvalidState (not yet determinized), or otherwise outside the normal
// sequential run of cached state IDs. Both sentinels sort above every real
// ID, so a single comparison covers both.
func isSpecialStateID(id StateID) bool {
	return id >= DeadState
}

// isCacheCleared reports whether err is the signal that determinize just
// cleared the cache — meaning every previously held *State is now stale
// and the caller must re-derive its current state from the start state.
func isCacheCleared(err error) bool {
	if err == nil {
		return false
	}
	var dfaErr *DFAError
	return errors.As(err, &dfaErr) && dfaErr.Kind == CacheCleared
}

// accelerate uses SIMD byte scanning to jump ahead to the next of 1-3
// "exit bytes" — the only bytes for which an accelerable state's
// transition isn't a self-loop — skipping over runs of input that
// wouldn't change the search's state at all. Returns -1 if no exit byte
// remains in the input.
func (d *DFA) accelerate(haystack []byte, pos int, exitBytes []byte) int {
	if pos >= len(haystack) {
		return -1
	}
	remaining := haystack[pos:]
	var found int
	switch len(exitBytes) {
	case 1:
		found = simd.Memchr(remaining, exitBytes[0])
	case 2:
		found = simd.Memchr2(remaining, exitBytes[0], exitBytes[1])
	case 3:
		found = simd.Memchr3(remaining, exitBytes[0], exitBytes[1], exitBytes[2])
	default:
		return pos
	}
	if found == -1 {
		return -1
	}
	return pos + found
}

// tryDetectAcceleration runs (once per state) a check for whether state
// has few enough distinct transitions to be worth SIMD-accelerating, and
// records the result on the state so future visits skip the check.
func (d *DFA) tryDetectAcceleration(state *State) {
	if state == nil || state.AccelChecked() {
		return
	}
	if exitBytes := DetectAccelerationFromCachedWithClasses(state, d.byteClasses); len(exitBytes) > 0 {
		state.SetAccelBytes(exitBytes)
	} else {
		state.MarkAccelChecked()
	}
}
