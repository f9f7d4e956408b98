package lazy

import (
	"sync"

	"github.com/corelex/rex2/nfa"
)

// stateSetPoolCapacityLimit caps how large a StateSet can grow and still be
// worth returning to the pool. Epsilon closures during determinization are
// small; a set that grew far past that was likely built for an unusual,
// one-off purpose and pooling it would just pin that memory behind future
// small closures that will never need it.
const stateSetPoolCapacityLimit = 4096

var stateSetPool = sync.Pool{
	New: func() any {
		return NewStateSet()
	},
}

// acquireStateSet borrows a cleared StateSet from the pool, avoiding a map
// allocation on every epsilonClosure/move call during determinization.
func acquireStateSet() *StateSet {
	return stateSetPool.Get().(*StateSet)
}

// releaseStateSet returns ss to the pool after clearing it. A nil set is
// a no-op, and a set that grew unusually large is dropped rather than
// pooled so it doesn't keep that memory alive indefinitely.
func releaseStateSet(ss *StateSet) {
	if ss == nil {
		return
	}
	if len(ss.states) > stateSetPoolCapacityLimit {
		return
	}
	ss.Clear()
	stateSetPool.Put(ss)
}

// StateSet is a deduplicating set of NFA states used while computing
// epsilon closures, before the result is hashed into a StateKey and turned
// into a determinized State.
type StateSet struct {
	states map[nfa.StateID]struct{}
}

func NewStateSet() *StateSet {
	return &StateSet{states: make(map[nfa.StateID]struct{})}
}

func NewStateSetWithCapacity(capacity int) *StateSet {
	return &StateSet{states: make(map[nfa.StateID]struct{}, capacity)}
}

func (ss *StateSet) Add(state nfa.StateID) {
	ss.states[state] = struct{}{}
}

func (ss *StateSet) Contains(state nfa.StateID) bool {
	_, ok := ss.states[state]
	return ok
}

func (ss *StateSet) Len() int {
	return len(ss.states)
}

// Clear empties the set while keeping its backing map for reuse.
func (ss *StateSet) Clear() {
	for k := range ss.states {
		delete(ss.states, k)
	}
}

// ToSlice returns the set's members in sorted order, so that two sets
// with the same members always produce identical slices.
func (ss *StateSet) ToSlice() []nfa.StateID {
	if len(ss.states) == 0 {
		return nil
	}
	slice := make([]nfa.StateID, 0, len(ss.states))
	for state := range ss.states {
		slice = append(slice, state)
	}
	sortStateIDs(slice)
	return slice
}

func (ss *StateSet) Clone() *StateSet {
	clone := NewStateSetWithCapacity(len(ss.states))
	for state := range ss.states {
		clone.Add(state)
	}
	return clone
}
