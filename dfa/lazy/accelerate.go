package lazy

import "github.com/corelex/rex2/nfa"

// maxAccelerationExitClasses bounds how many distinct equivalence classes a
// state may exit on and still be considered accelerable. Beyond this, a
// SIMD memchr-style scan has too many needles to be worth it over just
// stepping the DFA.
const maxAccelerationExitClasses = 3

// recordExitClass appends classIdx to exitClasses and reports whether the
// state is still within the acceleration budget. Both DetectAcceleration
// and its cached-transitions variant share this bookkeeping since they
// differ only in how they discover whether a class exits.
func recordExitClass(exitClasses []byte, classIdx int) ([]byte, bool) {
	exitClasses = append(exitClasses, byte(classIdx))
	return exitClasses, len(exitClasses) <= maxAccelerationExitClasses
}

// classesToExitBytes converts equivalence-class indices back into
// representative byte values a memchr-style scan can search for. With no
// ByteClasses compression, a class index already is a byte value.
func classesToExitBytes(exitClasses []byte, byteClasses *nfa.ByteClasses) []byte {
	if byteClasses == nil {
		return exitClasses
	}

	exitBytes := make([]byte, 0, len(exitClasses))
	for _, classIdx := range exitClasses {
		for b := 0; b < 256; b++ {
			if byteClasses.Get(byte(b)) == classIdx {
				exitBytes = append(exitBytes, byte(b))
				break
			}
		}
	}
	return exitBytes
}

// DetectAccelerationFromCached analyzes a state's cached transitions only,
// without forcing determinization of the ones that haven't run yet. It
// requires most of the state's transitions to already be cached to draw a
// reliable conclusion.
//
// A state is accelerable when all but 1-3 equivalence classes loop back to
// itself or lead to the dead state; those 1-3 "exit" classes are what a
// SIMD scan can search for to skip ahead to the next byte worth stepping
// on.
func DetectAccelerationFromCached(state *State) []byte {
	return DetectAccelerationFromCachedWithClasses(state, nil)
}

// DetectAccelerationFromCachedWithClasses is DetectAccelerationFromCached
// with ByteClasses support, so exit classes can be mapped back to
// representative byte values under alphabet compression.
func DetectAccelerationFromCachedWithClasses(state *State, byteClasses *nfa.ByteClasses) []byte {
	if state == nil {
		return nil
	}

	stride := state.Stride()
	minCachedRequired := stride - stride/16
	if minCachedRequired < 1 {
		minCachedRequired = 1
	}
	if state.TransitionCount() < minCachedRequired {
		return nil
	}

	selfID := state.ID()
	var exitClasses []byte
	uncachedCount := 0
	maxUncached := stride / 16
	if maxUncached < 1 {
		maxUncached = 1
	}

	for classIdx := 0; classIdx < stride; classIdx++ {
		nextID, ok := state.Transition(byte(classIdx))
		if !ok {
			uncachedCount++
			if uncachedCount > maxUncached {
				return nil
			}
			continue
		}

		if nextID == selfID || nextID == DeadState {
			continue
		}

		var withinBudget bool
		if exitClasses, withinBudget = recordExitClass(exitClasses, classIdx); !withinBudget {
			return nil
		}
	}

	if len(exitClasses) < 1 {
		return nil
	}
	return classesToExitBytes(exitClasses, byteClasses)
}

// DetectAcceleration analyzes state by computing move() for every
// equivalence class not yet cached, which makes it considerably more
// expensive than DetectAccelerationFromCached. Callers should only use it
// on states already known to be hot.
func (b *Builder) DetectAcceleration(state *State) []byte {
	if state == nil {
		return nil
	}

	byteClasses := b.nfa.ByteClasses()
	selfID := state.ID()
	var exitClasses []byte
	stride := state.Stride()

	for classIdx := 0; classIdx < stride; classIdx++ {
		nextID, ok := state.Transition(byte(classIdx))
		if !ok {
			repByte := representativeByte(classIdx, byteClasses)
			nextNFAStates := b.move(state.NFAStates(), repByte)
			if len(nextNFAStates) == 0 {
				continue
			}

			var withinBudget bool
			if exitClasses, withinBudget = recordExitClass(exitClasses, classIdx); !withinBudget {
				return nil
			}
			continue
		}

		if nextID == selfID || nextID == DeadState {
			continue
		}

		var withinBudget bool
		if exitClasses, withinBudget = recordExitClass(exitClasses, classIdx); !withinBudget {
			return nil
		}
	}

	if len(exitClasses) < 1 {
		return nil
	}
	return classesToExitBytes(exitClasses, byteClasses)
}

// representativeByte finds a byte value that maps to classIdx under
// byteClasses, or classIdx itself when there's no compression.
func representativeByte(classIdx int, byteClasses *nfa.ByteClasses) byte {
	if byteClasses == nil {
		return byte(classIdx)
	}
	for b := 0; b < 256; b++ {
		if byteClasses.Get(byte(b)) == byte(classIdx) {
			return byte(b)
		}
	}
	return byte(classIdx)
}
