package nfa

// isWordByte reports whether b is an ASCII word character: [0-9A-Za-z_].
// Word boundaries are computed over bytes, matching Go's regexp/syntax
// OpWordBoundary semantics (ASCII only, not full Unicode word classes).
func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

// checkLookAssertion reports whether the zero-width assertion look holds
// at position pos within haystack.
func checkLookAssertion(look Look, haystack []byte, pos int) bool {
	switch look {
	case LookStartText:
		return pos == 0
	case LookEndText:
		return pos == len(haystack)
	case LookStartLine:
		return pos == 0 || haystack[pos-1] == '\n'
	case LookEndLine:
		return pos == len(haystack) || haystack[pos] == '\n'
	case LookWordBoundary:
		return wordBefore(haystack, pos) != wordAfter(haystack, pos)
	case LookNoWordBoundary:
		return wordBefore(haystack, pos) == wordAfter(haystack, pos)
	default:
		return false
	}
}

func wordBefore(haystack []byte, pos int) bool {
	return pos > 0 && isWordByte(haystack[pos-1])
}

func wordAfter(haystack []byte, pos int) bool {
	return pos < len(haystack) && isWordByte(haystack[pos])
}
