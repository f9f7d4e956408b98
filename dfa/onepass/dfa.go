package onepass

import "github.com/corelex/rex2/nfa"

// DFA is a compiled one-pass automaton.
//
// The transition table is a flat array addressed as
// table[state<<stride2 + class], where class comes from folding each input
// byte through classes and stride is the next power of two at or above the
// byte alphabet's size — which turns the multiply in the classic
// table[state*alphabetLen+class] addressing into a shift.
type DFA struct {
	numCaptures int

	table []Transition

	classes     *nfa.ByteClasses
	alphabetLen int

	stride  int
	stride2 uint

	startState StateID

	// matchStates and matchSlots are parallel to the table's state axis:
	// matchStates[s] tells whether s accepts, matchSlots[s] carries the
	// slot mask to apply (capture end positions) when it does.
	matchStates []bool
	matchSlots  []uint32
	minMatchID  StateID

	stateCount int
}

// NumCaptures reports the number of capture groups this DFA tracks,
// counting group 0 (the overall match).
func (d *DFA) NumCaptures() int {
	return d.numCaptures
}

// IsMatch reports whether input matches starting at offset 0, without
// computing capture positions. Cheaper than Search when only a yes/no
// answer is needed.
func (d *DFA) IsMatch(input []byte) bool {
	state := d.startState
	for _, b := range input {
		trans := d.step(state, b)
		if trans.IsDead() {
			return false
		}
		state = trans.NextState()
		if d.isMatchState(state) {
			return true
		}
	}
	return d.isMatchState(state)
}

// step folds b through the byte-class table and looks up the resulting
// transition out of state. Both IsMatch and Search go through this so the
// class-fold and table lookup live in exactly one place.
func (d *DFA) step(state StateID, b byte) Transition {
	return d.getTransition(state, d.classes.Get(b))
}

// getTransition returns the transition out of state on byte class, or a
// dead transition if the lookup would fall outside the table.
func (d *DFA) getTransition(state StateID, class byte) Transition {
	idx := (int(state) << d.stride2) + int(class)
	if idx < 0 || idx >= len(d.table) {
		return NewTransition(DeadState, false, 0)
	}
	return d.table[idx]
}

// isMatchState reports whether state accepts.
func (d *DFA) isMatchState(state StateID) bool {
	i := int(state)
	return i >= 0 && i < len(d.matchStates) && d.matchStates[i]
}

// getMatchSlots returns the slot mask recorded for a match state: which
// capture end positions to stamp when the search stops there.
func (d *DFA) getMatchSlots(state StateID) uint32 {
	i := int(state)
	if i < 0 || i >= len(d.matchSlots) {
		return 0
	}
	return d.matchSlots[i]
}
