package lazy

import (
	"fmt"

	"github.com/corelex/rex2/nfa"
)

// StateID identifies a DFA state within a single DFA's cache.
type StateID uint32

const (
	// InvalidState marks a state that hasn't been determinized yet.
	InvalidState StateID = 0xFFFFFFFF

	// DeadState has no outgoing transitions; once reached, no later byte
	// can produce a match.
	DeadState StateID = 0xFFFFFFFE

	// StartState is always ID 0.
	StartState StateID = 0
)

// defaultStride is the transition alphabet size used when a state is built
// without an explicit ByteClasses-derived stride: one slot per byte value.
const defaultStride = 256

// State is one node of the determinized automaton: a set of NFA states
// (the ones reachable by the epsilon closure that produced it) together
// with whatever byte transitions have been discovered for it so far. A
// state's transition map starts empty and fills in lazily as determinize
// visits bytes the search actually needs.
type State struct {
	id StateID

	transitions map[byte]StateID

	isMatch bool

	// isFromWord records whether the byte immediately preceding this state
	// was a word character. Two states built from the same NFA state set
	// but reached with a different isFromWord are distinct DFA states,
	// since \b and \B resolve differently depending on it.
	isFromWord bool

	// stride bounds which byte-class indices are valid transition keys for
	// this state; indices at or beyond it are rejected rather than silently
	// accepted, so a state built for a compressed alphabet can't be handed
	// a transition for a class that doesn't exist in it.
	stride int

	// nfaStates is copied on construction so this state doesn't alias the
	// caller's slice; determinize.go reads it on every transition lookup.
	nfaStates []nfa.StateID
}

// NewState builds a state from an NFA state set with the default (full
// byte-range) stride, copying the slice so the caller is free to reuse or
// mutate theirs afterward.
func NewState(id StateID, nfaStates []nfa.StateID, isMatch bool) *State {
	return NewStateWithStride(id, nfaStates, isMatch, false, defaultStride)
}

// NewStateWithWordContext builds a state that also records the word
// context it was reached under, using the default stride.
func NewStateWithWordContext(id StateID, nfaStates []nfa.StateID, isMatch, isFromWord bool) *State {
	return NewStateWithStride(id, nfaStates, isMatch, isFromWord, defaultStride)
}

// NewStateWithStride builds a state bound to a specific transition-table
// stride, typically ByteClasses.AlphabetLen() for a compressed alphabet.
func NewStateWithStride(id StateID, nfaStates []nfa.StateID, isMatch, isFromWord bool, stride int) *State {
	nfaStatesCopy := make([]nfa.StateID, len(nfaStates))
	copy(nfaStatesCopy, nfaStates)

	if stride <= 0 {
		stride = defaultStride
	}

	return &State{
		id:          id,
		transitions: make(map[byte]StateID, 16),
		isMatch:     isMatch,
		isFromWord:  isFromWord,
		stride:      stride,
		nfaStates:   nfaStatesCopy,
	}
}

func (s *State) ID() StateID {
	return s.id
}

func (s *State) IsMatch() bool {
	return s.isMatch
}

// IsFromWord reports whether the byte preceding this state was a word
// character, the context moveWithWordContext needs to resolve \b and \B
// on the next transition.
func (s *State) IsFromWord() bool {
	return s.isFromWord
}

// Stride returns the number of valid transition-class indices for this
// state.
func (s *State) Stride() int {
	return s.stride
}

// Transition returns the cached destination for byte b, if determinize
// has already computed one. A class index at or beyond the state's stride
// is always reported as absent.
func (s *State) Transition(b byte) (StateID, bool) {
	if int(b) >= s.stride {
		return InvalidState, false
	}
	next, ok := s.transitions[b]
	return next, ok
}

// AddTransition records (or overwrites) where byte b leads. A class index
// at or beyond the state's stride is silently ignored. Setting a
// transition to InvalidState removes it rather than caching an invalid
// destination.
func (s *State) AddTransition(b byte, next StateID) {
	if int(b) >= s.stride {
		return
	}
	if next == InvalidState {
		delete(s.transitions, b)
		return
	}
	s.transitions[b] = next
}

func (s *State) NFAStates() []nfa.StateID {
	return s.nfaStates
}

func (s *State) TransitionCount() int {
	return len(s.transitions)
}

func (s *State) String() string {
	return fmt.Sprintf("DFAState(id=%d, isMatch=%v, transitions=%d, nfaStates=%v)",
		s.id, s.isMatch, len(s.transitions), s.nfaStates)
}
