package literal

import "regexp/syntax"

// buildPrefixAST returns concat.Sub[:splitIdx] as its own pattern, the
// portion before an inner literal, for driving a reverse NFA search.
func buildPrefixAST(concat *syntax.Regexp, splitIdx int) *syntax.Regexp {
	if splitIdx <= 0 {
		return &syntax.Regexp{Op: syntax.OpEmptyMatch}
	}

	if splitIdx == 1 {
		return cloneRegexp(concat.Sub[0])
	}

	prefix := &syntax.Regexp{
		Op:    syntax.OpConcat,
		Flags: concat.Flags,
		Sub:   make([]*syntax.Regexp, splitIdx),
	}
	for i := 0; i < splitIdx; i++ {
		prefix.Sub[i] = cloneRegexp(concat.Sub[i])
	}

	return prefix
}

// buildSuffixAST returns concat.Sub[splitIdx:] as its own pattern, the inner
// literal and everything after it, for driving a forward NFA search.
func buildSuffixAST(concat *syntax.Regexp, splitIdx int) *syntax.Regexp {
	remaining := len(concat.Sub) - splitIdx
	if remaining <= 0 {
		return &syntax.Regexp{Op: syntax.OpEmptyMatch}
	}

	if remaining == 1 {
		return cloneRegexp(concat.Sub[splitIdx])
	}

	suffix := &syntax.Regexp{
		Op:    syntax.OpConcat,
		Flags: concat.Flags,
		Sub:   make([]*syntax.Regexp, remaining),
	}
	for i := 0; i < remaining; i++ {
		suffix.Sub[i] = cloneRegexp(concat.Sub[splitIdx+i])
	}

	return suffix
}

// cloneRegexp deep-copies re, since syntax.Regexp is mutable and
// buildPrefixAST/buildSuffixAST must not share structure with the original
// AST.
func cloneRegexp(re *syntax.Regexp) *syntax.Regexp {
	if re == nil {
		return nil
	}

	clone := &syntax.Regexp{
		Op:    re.Op,
		Flags: re.Flags,
		Min:   re.Min,
		Max:   re.Max,
		Cap:   re.Cap,
		Name:  re.Name,
	}

	if len(re.Rune) > 0 {
		clone.Rune = make([]rune, len(re.Rune))
		copy(clone.Rune, re.Rune)
	}
	clone.Rune0 = re.Rune0

	if len(re.Sub) > 0 {
		clone.Sub = make([]*syntax.Regexp, len(re.Sub))
		for i, sub := range re.Sub {
			clone.Sub[i] = cloneRegexp(sub)
		}
	}
	for i := range re.Sub0 {
		if re.Sub0[i] != nil {
			clone.Sub0[i] = cloneRegexp(re.Sub0[i])
		}
	}

	return clone
}

// isWildcardOrRepetition reports whether re (or, for concat/alternate/
// capture, anything reachable inside it) is a wildcard or a repetition,
// signaling variable-length matching around an inner literal.
func isWildcardOrRepetition(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		return true
	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		return true
	case syntax.OpConcat, syntax.OpAlternate:
		for _, sub := range re.Sub {
			if isWildcardOrRepetition(sub) {
				return true
			}
		}
		return false
	case syntax.OpCapture:
		if len(re.Sub) > 0 {
			return isWildcardOrRepetition(re.Sub[0])
		}
		return false
	default:
		return false
	}
}

// runeSliceToBytes UTF-8-encodes runes into a byte slice.
func runeSliceToBytes(runes []rune) []byte {
	return []byte(string(runes))
}
