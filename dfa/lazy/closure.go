package lazy

import "github.com/corelex/rex2/nfa"

// epsilonClosure computes the set of NFA states reachable from states via
// epsilon transitions (Split, Epsilon, Capture) and any StateLook whose
// assertion is already satisfied in lookHave.
//
// This is the core NFA-to-DFA operation: every DFA state is the epsilon
// closure of some set of NFA states, and every byte transition is a move
// followed by another closure.
func (b *Builder) epsilonClosure(states []nfa.StateID, lookHave LookSet) []nfa.StateID {
	closure := acquireStateSet()
	defer releaseStateSet(closure)
	stack := make([]nfa.StateID, 0, len(states)*2)

	for _, sid := range states {
		if !closure.Contains(sid) {
			closure.Add(sid)
			stack = append(stack, sid)
		}
	}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		state := b.nfa.State(current)
		if state == nil {
			continue
		}

		switch state.Kind() {
		case nfa.StateEpsilon:
			next := state.Epsilon()
			if next != nfa.InvalidState && !closure.Contains(next) {
				closure.Add(next)
				stack = append(stack, next)
			}

		case nfa.StateSplit:
			left, right := state.Split()
			if left != nfa.InvalidState && !closure.Contains(left) {
				closure.Add(left)
				stack = append(stack, left)
			}
			if right != nfa.InvalidState && !closure.Contains(right) {
				closure.Add(right)
				stack = append(stack, right)
			}

		case nfa.StateLook:
			// Only follow if the assertion actually holds here. Without
			// this, "^abc" would be reachable from any position.
			look, next := state.Look()
			if lookHave.Contains(look) && next != nfa.InvalidState && !closure.Contains(next) {
				closure.Add(next)
				stack = append(stack, next)
			}

		case nfa.StateCapture:
			// The DFA doesn't track capture positions, but must still
			// pass through capture states to reach consuming states.
			_, _, next := state.Capture()
			if next != nfa.InvalidState && !closure.Contains(next) {
				closure.Add(next)
				stack = append(stack, next)
			}
		}
	}

	return closure.ToSlice()
}

// move computes the states reachable from states on input, without word
// boundary tracking. Patterns without \b/\B should use this; it skips the
// more expensive moveWithWordContext resolution entirely.
func (b *Builder) move(states []nfa.StateID, input byte) []nfa.StateID {
	return b.moveWithWordContext(states, input, false)
}

// moveWithWordContext computes the states reachable from states on input,
// resolving \b/\B assertions along the way.
//
// isFromWord records whether the byte immediately before this transition
// was a word character; comparing it against isWordByte(input) is what
// lets \b and \B resolve correctly without ever looking more than one
// byte behind the current position.
func (b *Builder) moveWithWordContext(states []nfa.StateID, input byte, isFromWord bool) []nfa.StateID {
	var resolvedStates []nfa.StateID
	if !b.hasWordBoundary {
		resolvedStates = states
	} else {
		isCurrentWord := isWordByte(input)
		wordBoundarySatisfied := isFromWord != isCurrentWord
		resolvedStates = b.resolveWordBoundaries(states, wordBoundarySatisfied)
	}

	targets := acquireStateSet()

	for _, sid := range resolvedStates {
		state := b.nfa.State(sid)
		if state == nil {
			continue
		}

		switch state.Kind() {
		case nfa.StateByteRange:
			lo, hi, next := state.ByteRange()
			if input >= lo && input <= hi {
				targets.Add(next)
			}

		case nfa.StateSparse:
			for _, tr := range state.Transitions() {
				if input >= tr.Lo && input <= tr.Hi {
					targets.Add(tr.Next)
				}
			}
		}
	}

	if targets.Len() == 0 {
		releaseStateSet(targets)
		return nil
	}

	// Word boundary assertions are resolved at the START of the next move
	// call via the destination state's isFromWord, not here; only line
	// assertions depend solely on the byte just consumed.
	var lookAfter LookSet
	if input == '\n' {
		lookAfter = LookStartLine
	}

	targetSlice := targets.ToSlice()
	releaseStateSet(targets)
	return b.epsilonClosure(targetSlice, lookAfter)
}

// resolveWordBoundaries expands states with whatever becomes reachable by
// crossing a \b or \B assertion that wordBoundarySatisfied now allows.
//
// Word boundary assertions can't be folded into the ordinary epsilon
// closure because whether they hold depends on both the previous byte
// (known when the closure runs) and the next byte (not known yet). This
// runs once that next byte is in hand, expanding only the states reached
// by actually crossing the boundary — states that haven't crossed one are
// left untouched, or patterns like `a*` would falsely gain boundary-gated
// alternatives.
func (b *Builder) resolveWordBoundaries(states []nfa.StateID, wordBoundarySatisfied bool) []nfa.StateID {
	crossedBoundary := acquireStateSet()
	stack := make([]nfa.StateID, 0, len(states))

	for _, sid := range states {
		state := b.nfa.State(sid)
		if state == nil {
			continue
		}
		if state.Kind() == nfa.StateLook {
			look, next := state.Look()
			if next == nfa.InvalidState {
				continue
			}
			switch look {
			case nfa.LookWordBoundary:
				if wordBoundarySatisfied && !crossedBoundary.Contains(next) {
					crossedBoundary.Add(next)
					stack = append(stack, next)
				}
			case nfa.LookNoWordBoundary:
				if !wordBoundarySatisfied && !crossedBoundary.Contains(next) {
					crossedBoundary.Add(next)
					stack = append(stack, next)
				}
			}
		}
	}

	if len(stack) == 0 {
		releaseStateSet(crossedBoundary)
		return states
	}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		state := b.nfa.State(current)
		if state == nil {
			continue
		}

		switch state.Kind() {
		case nfa.StateLook:
			look, next := state.Look()
			if next == nfa.InvalidState {
				continue
			}
			switch look {
			case nfa.LookWordBoundary:
				if wordBoundarySatisfied && !crossedBoundary.Contains(next) {
					crossedBoundary.Add(next)
					stack = append(stack, next)
				}
			case nfa.LookNoWordBoundary:
				if !wordBoundarySatisfied && !crossedBoundary.Contains(next) {
					crossedBoundary.Add(next)
					stack = append(stack, next)
				}
			}

		case nfa.StateEpsilon:
			next := state.Epsilon()
			if next != nfa.InvalidState && !crossedBoundary.Contains(next) {
				crossedBoundary.Add(next)
				stack = append(stack, next)
			}

		case nfa.StateSplit:
			left, right := state.Split()
			if left != nfa.InvalidState && !crossedBoundary.Contains(left) {
				crossedBoundary.Add(left)
				stack = append(stack, left)
			}
			if right != nfa.InvalidState && !crossedBoundary.Contains(right) {
				crossedBoundary.Add(right)
				stack = append(stack, right)
			}

		case nfa.StateCapture:
			_, _, next := state.Capture()
			if next != nfa.InvalidState && !crossedBoundary.Contains(next) {
				crossedBoundary.Add(next)
				stack = append(stack, next)
			}
		}
	}

	result := acquireStateSet()
	for _, sid := range states {
		result.Add(sid)
	}
	for _, sid := range crossedBoundary.ToSlice() {
		result.Add(sid)
	}
	releaseStateSet(crossedBoundary)

	resultSlice := result.ToSlice()
	releaseStateSet(result)
	return resultSlice
}

// containsMatchState reports whether any state in states is an NFA match
// state.
func (b *Builder) containsMatchState(states []nfa.StateID) bool {
	for _, sid := range states {
		if b.nfa.IsMatch(sid) {
			return true
		}
	}
	return false
}

// CheckEOIMatch reports whether states would resolve to a match once input
// runs out. At end-of-input there is no next byte, so \b is satisfied
// exactly when isFromWord is true (word character followed by nothing
// counts as a word-to-non-word transition), and \z/$ are always satisfied.
func (b *Builder) CheckEOIMatch(states []nfa.StateID, isFromWord bool) bool {
	wordBoundarySatisfied := isFromWord
	resolved := b.resolveWordBoundaries(states, wordBoundarySatisfied)
	final := b.epsilonClosure(resolved, LookSetForEOI())
	return b.containsMatchState(final)
}

// checkHasWordBoundary scans every NFA state once for a \b or \B
// assertion, letting moveWithWordContext skip its expensive path entirely
// for patterns that don't need it.
func (b *Builder) checkHasWordBoundary() bool {
	numStates := b.nfa.States()
	for i := nfa.StateID(0); int(i) < numStates; i++ {
		state := b.nfa.State(i)
		if state == nil {
			continue
		}
		if state.Kind() == nfa.StateLook {
			look, _ := state.Look()
			if look == nfa.LookWordBoundary || look == nfa.LookNoWordBoundary {
				return true
			}
		}
	}
	return false
}
