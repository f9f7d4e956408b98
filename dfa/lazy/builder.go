package lazy

import (
	"github.com/corelex/rex2/nfa"
	"github.com/corelex/rex2/prefilter"
)

// Builder drives the one-time setup that produces a ready-to-search DFA:
// computing the initial start state, sizing the transition cache to the
// NFA's byte-class alphabet, and wiring up the PikeVM fallback. The actual
// determinization of new states happens lazily afterward, in
// DFA.determinize, as search visits bytes it hasn't seen before.
type Builder struct {
	nfa    *nfa.NFA
	config Config

	// hasWordBoundary short-circuits moveWithWordContext's word-boundary
	// resolution for patterns that have no \b or \B, which is the common
	// case and otherwise costs a scan on every byte consumed.
	hasWordBoundary bool
}

// NewBuilder creates a builder for n, scanning it once up front to see
// whether moveWithWordContext needs to do word-boundary resolution.
func NewBuilder(n *nfa.NFA, config Config) *Builder {
	b := &Builder{
		nfa:    n,
		config: config,
	}
	b.hasWordBoundary = b.checkHasWordBoundary()
	return b
}

// NewBuilderWithWordBoundary creates a builder with a precomputed
// hasWordBoundary flag, skipping NewBuilder's scan. DFA.determinize uses
// this on every transition, where re-scanning the whole NFA each time
// would dominate search cost.
func NewBuilderWithWordBoundary(n *nfa.NFA, config Config, hasWordBoundary bool) *Builder {
	return &Builder{
		nfa:             n,
		config:          config,
		hasWordBoundary: hasWordBoundary,
	}
}

// Build computes the start state, wires up the cache and PikeVM fallback,
// and returns a DFA ready for searching.
func (b *Builder) Build() (*DFA, error) {
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	cache := NewCache(b.config.MaxStates)

	var pf prefilter.Prefilter
	if b.config.UsePrefilter {
		pf = b.buildPrefilter()
	}

	// ByteClasses compress the transition alphabet: typical patterns need
	// only 4-64 equivalence classes rather than the full 256 byte values,
	// which is what makes per-state transition tables cheap to keep.
	byteClasses := b.nfa.ByteClasses()
	stride := defaultStride
	if byteClasses != nil {
		stride = byteClasses.AlphabetLen()
	}

	// StartUnanchored carries the implicit (?s:.)*? prefix needed for
	// O(n) unanchored search. At position 0 both \A and ^ are satisfied,
	// and there is no previous byte, so isFromWord starts false.
	startLook := LookSetFromStartKind(StartText)
	startStateSet := b.epsilonClosure([]nfa.StateID{b.nfa.StartUnanchored()}, startLook)
	isMatch := b.containsMatchState(startStateSet)
	isFromWord := false
	startState := NewStateWithStride(StartState, startStateSet, isMatch, isFromWord, stride)

	key := ComputeStateKeyWithWord(startStateSet, isFromWord)
	if _, err := cache.Insert(key, startState); err != nil {
		return nil, &DFAError{
			Kind:    InvalidConfig,
			Message: "failed to insert start state",
			Cause:   err,
		}
	}

	startTable := NewStartTable()

	// freshStartStates tracks the epsilon closure of the anchored start:
	// once every live thread is in this set (plus the always-running
	// unanchored machinery), a committed leftmost match can't be beaten by
	// starting later, and the search loops use that to stop early.
	anchoredStartClosure := b.epsilonClosure([]nfa.StateID{b.nfa.StartAnchored()}, startLook)
	freshStartStates := make(map[nfa.StateID]bool, len(anchoredStartClosure))
	for _, stateID := range anchoredStartClosure {
		freshStartStates[stateID] = true
	}

	dfa := &DFA{
		nfa:              b.nfa,
		cache:            cache,
		config:           b.config,
		prefilter:        pf,
		pikevm:           nfa.NewPikeVM(b.nfa),
		states:           make([]*State, 0, b.config.MaxStates),
		startTable:       startTable,
		byteClasses:      b.nfa.ByteClasses(),
		freshStartStates: freshStartStates,
		unanchoredStart:  b.nfa.StartUnanchored(),
		hasWordBoundary:  b.checkHasWordBoundary(),
		isAlwaysAnchored: b.nfa.IsAlwaysAnchored(),
	}

	dfa.registerState(startState)
	startTable.Set(StartText, false, startState.ID())

	return dfa, nil
}
