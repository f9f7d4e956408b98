package nfa

import "regexp/syntax"

// collectCaptureInfo counts capture groups and collects their names ahead
// of compilation, so captureCount and captureNames are known before any
// state is built. After returning, c.captureNames has length
// captureCount+1 with index 0 (the entire match) always "".
func (c *Compiler) collectCaptureInfo(re *syntax.Regexp) {
	c.countCapturesRecursive(re)
	c.captureNames = make([]string, c.captureCount+1)
	c.collectNamesRecursive(re)
}

func (c *Compiler) countCapturesRecursive(re *syntax.Regexp) {
	switch re.Op {
	case syntax.OpCapture:
		if re.Cap > c.captureCount {
			c.captureCount = re.Cap
		}
		for _, sub := range re.Sub {
			c.countCapturesRecursive(sub)
		}
	case syntax.OpConcat, syntax.OpAlternate:
		for _, sub := range re.Sub {
			c.countCapturesRecursive(sub)
		}
	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		if len(re.Sub) > 0 {
			c.countCapturesRecursive(re.Sub[0])
		}
	}
}

func (c *Compiler) collectNamesRecursive(re *syntax.Regexp) {
	switch re.Op {
	case syntax.OpCapture:
		if re.Cap >= 0 && re.Cap < len(c.captureNames) {
			c.captureNames[re.Cap] = re.Name
		}
		for _, sub := range re.Sub {
			c.collectNamesRecursive(sub)
		}
	case syntax.OpConcat, syntax.OpAlternate:
		for _, sub := range re.Sub {
			c.collectNamesRecursive(sub)
		}
	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		if len(re.Sub) > 0 {
			c.collectNamesRecursive(re.Sub[0])
		}
	}
}

// isPatternAnchored reports whether re inherently starts with ^ or \A, in
// which case the unanchored start state can just be the anchored one.
//
// Only \A (OpBeginText) counts: ^ (OpBeginLine) also matches after any
// newline in multiline mode, so it doesn't anchor the pattern to input
// start.
func (c *Compiler) isPatternAnchored(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpBeginText:
		return true
	case syntax.OpConcat:
		if len(re.Sub) > 0 {
			return c.isPatternAnchored(re.Sub[0])
		}
	case syntax.OpCapture:
		if len(re.Sub) > 0 {
			return c.isPatternAnchored(re.Sub[0])
		}
	}
	return false
}

// IsPatternEndAnchored reports whether re is anchored at its end (ends
// with \z or non-multiline $), which lets a reverse search run in O(m)
// instead of the O(n*m) an unanchored scan would need.
//
// OpEndLine (multiline $) doesn't count: it can match before any \n as
// well as at EOF, and a reverse search from the end would miss those
// earlier matches. A true end anchor anywhere but the very end of the
// pattern (like `(a$)b$`) also disqualifies it, since ReverseAnchored
// assumes the match's end coincides with input's end.
func IsPatternEndAnchored(re *syntax.Regexp) bool {
	if !isEndAnchored(re) {
		return false
	}
	if hasInternalEndAnchor(re) {
		return false
	}
	return true
}

// isEndAnchored checks whether the pattern ends with $, ignoring internal
// anchors.
func isEndAnchored(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpEndText:
		return true
	case syntax.OpConcat:
		if len(re.Sub) > 0 {
			return isEndAnchored(re.Sub[len(re.Sub)-1])
		}
	case syntax.OpCapture:
		if len(re.Sub) > 0 {
			return isEndAnchored(re.Sub[0])
		}
	case syntax.OpAlternate:
		if len(re.Sub) == 0 {
			return false
		}
		for _, sub := range re.Sub {
			if !isEndAnchored(sub) {
				return false
			}
		}
		return true
	}
	return false
}

// hasInternalEndAnchor reports whether an end anchor ($ or \z) appears
// anywhere except the very end of the pattern, as in the contradictory
// `(a$)b$`.
func hasInternalEndAnchor(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpConcat:
		for i := 0; i < len(re.Sub)-1; i++ {
			if containsEndAnchor(re.Sub[i]) {
				return true
			}
		}
		if len(re.Sub) > 0 {
			if hasInternalEndAnchor(re.Sub[len(re.Sub)-1]) {
				return true
			}
		}
	case syntax.OpCapture:
		if len(re.Sub) > 0 {
			return hasInternalEndAnchor(re.Sub[0])
		}
	case syntax.OpAlternate:
		for _, sub := range re.Sub {
			if hasInternalEndAnchor(sub) {
				return true
			}
		}
	}
	return false
}

// HasImpossibleEndAnchor reports whether re has an end anchor ($, \z) that
// isn't at the end of the pattern, meaning it can never match: e.g. `$00`
// requires end-of-string immediately followed by more input.
func HasImpossibleEndAnchor(re *syntax.Regexp) bool {
	return containsEndAnchor(re) && !isEndAnchored(re)
}

func containsEndAnchor(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpEndText, syntax.OpEndLine:
		return true
	case syntax.OpConcat, syntax.OpAlternate:
		for _, sub := range re.Sub {
			if containsEndAnchor(sub) {
				return true
			}
		}
	case syntax.OpCapture, syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		if len(re.Sub) > 0 {
			return containsEndAnchor(re.Sub[0])
		}
	}
	return false
}

// IsPatternStartAnchored reports whether any branch of re starts with ^ or
// \A, which rules out UseReverseAnchored for alternations like `^a?$|^b?$`
// where reverse search can't properly honor a partial start anchor.
//
// Unlike IsPatternEndAnchored (which requires every branch to be
// end-anchored), this only needs one branch to have a start anchor.
func IsPatternStartAnchored(re *syntax.Regexp) bool {
	return containsStartAnchor(re)
}

func containsStartAnchor(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpBeginText, syntax.OpBeginLine:
		return true
	case syntax.OpConcat:
		for _, sub := range re.Sub {
			if containsStartAnchor(sub) {
				return true
			}
		}
	case syntax.OpAlternate:
		for _, sub := range re.Sub {
			if containsStartAnchor(sub) {
				return true
			}
		}
	case syntax.OpCapture, syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		if len(re.Sub) > 0 {
			return containsStartAnchor(re.Sub[0])
		}
	}
	return false
}
