package literal

import "regexp/syntax"

// ExtractInner extracts a literal required somewhere in the pattern,
// regardless of position, for patterns like ".*foo.*" where the wildcard
// prefix/suffix rules out ExtractPrefixes/ExtractSuffixes.
//
//	".*foo.*"               -> ["foo"]
//	".*(hello|world).*"     -> ["hello", "world"]
//	"prefix.*middle.*suffix" -> ["prefix"] (first one found)
func (e *Extractor) ExtractInner(re *syntax.Regexp) *Seq {
	return e.extractInner(re, 0)
}

// extractInner returns the first required literal found in re, walking
// OpConcat left to right. Every literal returned is marked incomplete:
// "somewhere in the match" is weaker than "is the match", so the literal
// engine can never bypass full verification on an inner literal alone.
func (e *Extractor) extractInner(re *syntax.Regexp, depth int) *Seq {
	if depth > maxExtractDepth || re.Flags&syntax.FoldCase != 0 {
		return NewSeq()
	}

	switch re.Op {
	case syntax.OpLiteral:
		bytes := runeSliceToBytes(re.Rune)
		if len(bytes) > e.config.MaxLiteralLen {
			bytes = bytes[:e.config.MaxLiteralLen]
		}
		return NewSeq(NewLiteral(bytes, false))

	case syntax.OpConcat:
		for _, sub := range re.Sub {
			seq := e.extractInner(sub, depth+1)
			if !seq.IsEmpty() {
				return seq
			}
		}
		return NewSeq()

	case syntax.OpAlternate:
		var allLits []Literal
		for _, sub := range re.Sub {
			seq := e.extractInner(sub, depth+1)
			if seq.IsEmpty() {
				return NewSeq()
			}
			for i := 0; i < seq.Len(); i++ {
				allLits = append(allLits, seq.Get(i))
				if len(allLits) >= e.config.MaxLiterals {
					return NewSeq(allLits...)
				}
			}
		}
		return NewSeq(allLits...)

	case syntax.OpCharClass:
		return e.expandCharClass(re)

	case syntax.OpCapture:
		if len(re.Sub) == 0 {
			return NewSeq()
		}
		return e.extractInner(re.Sub[0], depth+1)

	default:
		return NewSeq()
	}
}

// InnerLiteralInfo describes a literal found strictly between a pattern's
// ends, split into the AST before it and the AST from it onward. Used by the
// ReverseInner strategy: PrefixAST drives a reverse NFA search for the match
// start, SuffixAST a forward NFA search for the match end, once the inner
// literal has pinned a candidate position.
type InnerLiteralInfo struct {
	Literals *Seq

	// InnerIdx is the literal's index within the OpConcat it was found in.
	InnerIdx int

	// PrefixAST is the pattern fragment before the inner literal; for
	// `ERROR.*connection.*timeout` with inner "connection" this is `ERROR.*`.
	PrefixAST *syntax.Regexp

	// SuffixAST is the inner literal and everything after it; for the same
	// example this is `connection.*timeout`.
	SuffixAST *syntax.Regexp
}

// ExtractInnerForReverseSearch looks for a literal inside re.Sub that has
// wildcards or repetitions on both sides, suitable for the ReverseInner
// strategy (bidirectional search anchored on an inner literal rather than a
// prefix or suffix). Returns nil if re isn't an OpConcat of at least three
// parts or no such literal exists.
func (e *Extractor) ExtractInnerForReverseSearch(re *syntax.Regexp) *InnerLiteralInfo {
	if re.Op != syntax.OpConcat || len(re.Sub) < 3 {
		return nil
	}

	for i := 1; i < len(re.Sub)-1; i++ {
		literals := e.extractInner(re.Sub[i], 0)
		if literals.IsEmpty() {
			continue
		}

		hasWildcardBefore := false
		for j := 0; j < i; j++ {
			if isWildcardOrRepetition(re.Sub[j]) {
				hasWildcardBefore = true
				break
			}
		}

		hasWildcardAfter := false
		for j := i + 1; j < len(re.Sub); j++ {
			if isWildcardOrRepetition(re.Sub[j]) {
				hasWildcardAfter = true
				break
			}
		}

		if hasWildcardBefore && hasWildcardAfter {
			return &InnerLiteralInfo{
				Literals:  literals,
				InnerIdx:  i,
				PrefixAST: buildPrefixAST(re, i),
				SuffixAST: buildSuffixAST(re, i),
			}
		}
	}

	return nil
}
