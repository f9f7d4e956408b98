package nfa

import "regexp/syntax"

// compileCharClass compiles a character class like [a-zA-Z0-9]. ranges is
// the pattern's paired [lo1, hi1, lo2, hi2, ...] rune ranges.
func (c *Compiler) compileCharClass(ranges []rune) (start, end StateID, err error) {
	if len(ranges) == 0 {
		// Empty character class (e.g., [^\S\s]) should never match
		return c.compileNoMatch()
	}

	allASCII := true
	for _, r := range ranges {
		if r > 127 {
			allASCII = false
			break
		}
	}

	if allASCII && len(ranges) >= 2 {
		var transitions []Transition
		for i := 0; i < len(ranges); i += 2 {
			lo := byte(ranges[i])
			hi := byte(ranges[i+1])
			transitions = append(transitions, Transition{
				Lo:   lo,
				Hi:   hi,
				Next: InvalidState,
			})
		}

		if len(transitions) == 1 {
			t := transitions[0]
			id := c.builder.AddByteRange(t.Lo, t.Hi, InvalidState)
			return id, id, nil
		}

		target := c.builder.AddEpsilon(InvalidState)
		for i := range transitions {
			transitions[i].Next = target
		}
		id := c.builder.AddSparse(transitions)
		return id, target, nil
	}

	// Non-ASCII ranges need a UTF-8 automaton rather than a flat byte table.
	return c.compileUnicodeClass(ranges)
}

// compileUnicodeClass expands a small Unicode character class into an
// alternation of its individual characters, or defers to
// compileUnicodeClassLarge once the class is too big for that to be
// practical.
func (c *Compiler) compileUnicodeClass(ranges []rune) (start, end StateID, err error) {
	if len(ranges) == 0 {
		return c.compileNoMatch()
	}

	totalChars := int64(0)
	for i := 0; i < len(ranges); i += 2 {
		lo := ranges[i]
		hi := ranges[i+1]
		totalChars += int64(hi - lo + 1)
		if totalChars > 256 {
			// Large classes (like negated [^,] with 1.1M chars) need UTF-8
			// byte ranges rather than one alternative per codepoint.
			return c.compileUnicodeClassLarge(ranges)
		}
	}

	var alts []*syntax.Regexp
	for i := 0; i < len(ranges); i += 2 {
		lo := ranges[i]
		hi := ranges[i+1]
		for r := lo; r <= hi; r++ {
			alts = append(alts, &syntax.Regexp{
				Op:   syntax.OpLiteral,
				Rune: []rune{r},
			})
		}
	}

	if len(alts) == 1 {
		return c.compileRegexp(alts[0])
	}

	return c.compileAlternate(alts)
}

// compileUnicodeClassLarge handles large Unicode character classes (e.g.
// negated classes) by building UTF-8 automata for each Unicode range
// instead of enumerating every codepoint.
//
// If the non-ASCII part covers all of non-ASCII Unicode (as for [^,]), it
// takes the efficient "any valid UTF-8 multi-byte sequence" path rather
// than compiling precise per-range automata.
func (c *Compiler) compileUnicodeClassLarge(ranges []rune) (start, end StateID, err error) {
	var asciiRanges []Transition
	var nonASCIIRanges [][2]rune

	for i := 0; i < len(ranges); i += 2 {
		lo := ranges[i]
		hi := ranges[i+1]

		switch {
		case hi < 0x80:
			asciiRanges = append(asciiRanges, Transition{
				Lo:   byte(lo),
				Hi:   byte(hi),
				Next: InvalidState,
			})
		case lo >= 0x80:
			nonASCIIRanges = append(nonASCIIRanges, [2]rune{lo, hi})
		default:
			asciiRanges = append(asciiRanges, Transition{
				Lo:   byte(lo),
				Hi:   0x7F,
				Next: InvalidState,
			})
			nonASCIIRanges = append(nonASCIIRanges, [2]rune{0x80, hi})
		}
	}

	// True for patterns like [^,], [^a], [^\n] where the excluded char is
	// ASCII and everything non-ASCII is included.
	coversAllNonASCII := len(nonASCIIRanges) == 1 &&
		nonASCIIRanges[0][0] <= 0x80 &&
		nonASCIIRanges[0][1] >= 0x10FFFF

	target := c.builder.AddEpsilon(InvalidState)
	var altStarts []StateID

	if len(asciiRanges) > 0 {
		for i := range asciiRanges {
			asciiRanges[i].Next = target
		}
		switch {
		case len(asciiRanges) == 1:
			id := c.builder.AddByteRange(asciiRanges[0].Lo, asciiRanges[0].Hi, target)
			altStarts = append(altStarts, id)
		default:
			id := c.builder.AddSparse(asciiRanges)
			altStarts = append(altStarts, id)
		}
	}

	if len(nonASCIIRanges) > 0 {
		if coversAllNonASCII {
			multiByteStarts := c.buildUTF8NonASCIIBranches(target)
			altStarts = append(altStarts, multiByteStarts...)

			// Also match invalid UTF-8 bytes for stdlib compatibility: Go's
			// regexp treats a standalone invalid byte as one character that
			// satisfies negated classes like \D, \S, \W, [^x]. This is only
			// safe here because the class covers ALL non-ASCII codepoints;
			// a partial class like \P{Han} can't add 0x80-0xFF without
			// matching individual bytes of valid multi-byte sequences.
			invalidUTF8 := c.builder.AddByteRange(0x80, 0xFF, target)
			altStarts = append(altStarts, invalidUTF8)
		} else {
			for _, rng := range nonASCIIRanges {
				rangeStarts := c.compileUTF8Range(rng[0], rng[1], target)
				altStarts = append(altStarts, rangeStarts...)
			}
		}
	}

	if len(altStarts) == 0 {
		return c.compileNoMatch()
	}

	if len(altStarts) == 1 {
		return altStarts[0], target, nil
	}

	split := c.buildSplitChain(altStarts)
	return split, target, nil
}
