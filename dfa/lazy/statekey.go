package lazy

import (
	"hash/fnv"

	"github.com/corelex/rex2/nfa"
)

// StateKey identifies a DFA state by the NFA state set it was built from,
// independent of insertion order — two epsilon closures that visit the
// same states in different orders must still collide to the same key, or
// the cache would never recognize them as the same state.
type StateKey uint64

// ComputeStateKey hashes an NFA state set into a StateKey, sorting first
// so that {1,2,3} and {3,2,1} land on the same key.
func ComputeStateKey(nfaStates []nfa.StateID) StateKey {
	if len(nfaStates) == 0 {
		return StateKey(0)
	}

	sorted := make([]nfa.StateID, len(nfaStates))
	copy(sorted, nfaStates)
	sortStateIDs(sorted)

	h := fnv.New64a()
	for _, sid := range sorted {
		_, _ = h.Write([]byte{byte(sid), byte(sid >> 8), byte(sid >> 16), byte(sid >> 24)})
	}
	return StateKey(h.Sum64())
}

// ComputeStateKeyWithWord hashes an NFA state set together with the word
// context it was reached under. Two epsilon closures that land on the same
// NFA states but disagree on isFromWord must resolve to different DFA
// states, since \b and \B depend on it — so the word bit is folded into
// the low bit of the hash rather than ignored.
func ComputeStateKeyWithWord(nfaStates []nfa.StateID, isFromWord bool) StateKey {
	key := ComputeStateKey(nfaStates)
	if isFromWord {
		key ^= 1
	}
	return key
}

// sortStateIDs insertion-sorts states in place. NFA state sets coming out
// of an epsilon closure are small and often nearly sorted already, which
// is exactly where insertion sort beats an allocating general-purpose
// sort.
func sortStateIDs(states []nfa.StateID) {
	for i := 1; i < len(states); i++ {
		key := states[i]
		j := i - 1
		for j >= 0 && states[j] > key {
			states[j+1] = states[j]
			j--
		}
		states[j+1] = key
	}
}
