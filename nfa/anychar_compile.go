package nfa

// compileAnyChar compiles '.' matching any character including newlines,
// used for OpAnyChar (the parser's node for (?s:.) / DotNL mode).
func (c *Compiler) compileAnyChar() (start, end StateID, err error) {
	if c.config.ASCIIOnly {
		return c.compileASCIIAny(true)
	}
	return c.compileUTF8Any(true)
}

// compileAnyCharNotNL compiles '.' matching any character except \n.
func (c *Compiler) compileAnyCharNotNL() (start, end StateID, err error) {
	if c.config.ASCIIOnly {
		return c.compileASCIIAny(false)
	}
	return c.compileUTF8Any(false)
}

// buildASCIIBranch builds the transition(s) matching any ASCII byte
// (0x00-0x7F), optionally excluding newline, into endState. Both
// compileASCIIAny and the ASCII branch of compileUTF8Any need exactly this
// shape, so it's shared rather than duplicated.
func (c *Compiler) buildASCIIBranch(includeNL bool, endState StateID) StateID {
	if includeNL {
		return c.builder.AddByteRange(0x00, 0x7F, endState)
	}

	asciiTrans := []Transition{
		{Lo: 0x00, Hi: 0x09, Next: endState},
		{Lo: 0x0B, Hi: 0x7F, Next: endState},
	}
	return c.builder.AddSparse(asciiTrans)
}

// compileASCIIAny compiles '.' for ASCII-only mode: 1-2 states instead of
// the ~28 UTF-8 states compileUTF8Any needs, for callers that already know
// their input is all ASCII.
func (c *Compiler) compileASCIIAny(includeNL bool) (start, end StateID, err error) {
	endState := c.builder.AddEpsilon(InvalidState)
	ascii := c.buildASCIIBranch(includeNL, endState)
	return ascii, endState, nil
}

// compileUTF8Any compiles an NFA that matches any single UTF-8 codepoint,
// excluding newline (0x0A) when includeNL is false.
//
// Multi-byte sequences are built in REVERSE byte order through a suffix
// cache so that common continuation-byte tails (like plain [80-BF]) are
// shared across branches instead of rebuilt for each one, cutting total
// state count roughly in half.
//
// UTF-8 encoding:
//   - 1-byte: 0x00-0x7F (ASCII)
//   - 2-byte: 0xC2-0xDF, 0x80-0xBF
//   - 3-byte: 0xE0, 0xA0-0xBF, 0x80-0xBF
//     0xE1-0xEC, 0x80-0xBF, 0x80-0xBF
//     0xED, 0x80-0x9F, 0x80-0xBF
//     0xEE-0xEF, 0x80-0xBF, 0x80-0xBF
//   - 4-byte: 0xF0, 0x90-0xBF, 0x80-0xBF, 0x80-0xBF
//     0xF1-0xF3, 0x80-0xBF, 0x80-0xBF, 0x80-0xBF
//     0xF4, 0x80-0x8F, 0x80-0xBF, 0x80-0xBF
func (c *Compiler) compileUTF8Any(includeNL bool) (start, end StateID, err error) {
	endState := c.builder.AddEpsilon(InvalidState)
	cache := newUtf8SuffixCache()

	type byteRange struct{ lo, hi byte }
	sequences := [][]byteRange{
		{{0xC2, 0xDF}, {0x80, 0xBF}},
		{{0xE0, 0xE0}, {0xA0, 0xBF}, {0x80, 0xBF}},
		{{0xE1, 0xEC}, {0x80, 0xBF}, {0x80, 0xBF}},
		{{0xED, 0xED}, {0x80, 0x9F}, {0x80, 0xBF}}, // avoid surrogates
		{{0xEE, 0xEF}, {0x80, 0xBF}, {0x80, 0xBF}},
		{{0xF0, 0xF0}, {0x90, 0xBF}, {0x80, 0xBF}, {0x80, 0xBF}},
		{{0xF1, 0xF3}, {0x80, 0xBF}, {0x80, 0xBF}, {0x80, 0xBF}},
		{{0xF4, 0xF4}, {0x80, 0x8F}, {0x80, 0xBF}, {0x80, 0xBF}},
	}

	var branches []StateID
	branches = append(branches, c.buildASCIIBranch(includeNL, endState))

	// Process each sequence's bytes in REVERSE order so the suffix cache
	// can maximize sharing: e.g. the trailing [80-BF] of the 0xE1-0xEC
	// branch is the same state as the trailing [80-BF] of 0xEE-0xEF.
	for _, seq := range sequences {
		target := endState
		for i := len(seq) - 1; i >= 0; i-- {
			br := seq[i]
			target = cache.getOrCreate(c.builder, target, br.lo, br.hi)
		}
		branches = append(branches, target)
	}

	// Invalid UTF-8 bytes match as single bytes for stdlib compatibility,
	// since Go's regexp lets '.' match invalid UTF-8 as one character each.
	// 0xC2-0xF4 (valid lead bytes) are deliberately excluded here: adding
	// them breaks capture groups on zero-width matches like (.*) on "",
	// and the multi-byte branches above already handle them in valid
	// sequences.
	invalidTrans := []Transition{
		{Lo: 0x80, Hi: 0xBF, Next: endState}, // standalone continuation bytes
		{Lo: 0xC0, Hi: 0xC1, Next: endState}, // overlong 2-byte encodings
		{Lo: 0xF5, Hi: 0xFF, Next: endState}, // out of Unicode range
	}
	invalidUTF8 := c.builder.AddSparse(invalidTrans)
	branches = append(branches, invalidUTF8)

	startState := c.buildSplitChain(branches)

	return startState, endState, nil
}
