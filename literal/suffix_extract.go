package literal

import "regexp/syntax"

// ExtractSuffixes extracts literal suffixes from a regex pattern.
//
// Examples:
//
//	"world"         -> ["world"]
//	"(foo|bar)"     -> ["foo", "bar"]
//	"test[xyz]"     -> ["testx", "testy", "testz"]
//	"hello.*world"  -> ["world"]
//	"foo.*"         -> [] (no suffix requirement)
func (e *Extractor) ExtractSuffixes(re *syntax.Regexp) *Seq {
	return e.extractSuffixes(re, 0)
}

// extractSuffixes mirrors extractPrefixes but walks from the end: OpConcat
// extracts the suffix of its last element, then prepends preceding literals
// one at a time ("cross_reverse" in the prefix extractor's terms).
//
//nolint:cyclop // FoldCase guard plus trailing-anchor skip push this a hair over the usual limit
func (e *Extractor) extractSuffixes(re *syntax.Regexp, depth int) *Seq {
	if depth > maxExtractDepth || re.Flags&syntax.FoldCase != 0 {
		return NewSeq()
	}

	switch re.Op {
	case syntax.OpLiteral:
		bytes := runeSliceToBytes(re.Rune)
		if len(bytes) > e.config.MaxLiteralLen {
			bytes = bytes[len(bytes)-e.config.MaxLiteralLen:]
		}
		return NewSeq(NewLiteral(bytes, true))

	case syntax.OpConcat:
		return e.extractSuffixesConcat(re, depth)

	case syntax.OpAlternate:
		var allLits []Literal
		for _, sub := range re.Sub {
			seq := e.extractSuffixes(sub, depth+1)
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
		return e.extractSuffixes(re.Sub[0], depth+1)

	default:
		return NewSeq()
	}
}

// extractSuffixesConcat finds the suffix of the last non-anchor element of
// an OpConcat, then walks backward prepending any preceding OpLiteral
// sub-expressions, stopping (and marking incomplete) at the first
// non-literal.
func (e *Extractor) extractSuffixesConcat(re *syntax.Regexp, depth int) *Seq {
	if len(re.Sub) == 0 {
		return NewSeq()
	}

	lastIdx := len(re.Sub) - 1
	for lastIdx >= 0 {
		op := re.Sub[lastIdx].Op
		if op != syntax.OpEndLine && op != syntax.OpEndText {
			break
		}
		lastIdx--
	}
	if lastIdx < 0 {
		return NewSeq()
	}

	suffixes := e.extractSuffixes(re.Sub[lastIdx], depth+1)
	if suffixes.IsEmpty() {
		return NewSeq()
	}

	for i := lastIdx - 1; i >= 0; i-- {
		sub := re.Sub[i]

		if sub.Op != syntax.OpLiteral {
			lits := make([]Literal, suffixes.Len())
			for j := 0; j < suffixes.Len(); j++ {
				lit := suffixes.Get(j)
				lits[j] = NewLiteral(lit.Bytes, false)
			}
			return NewSeq(lits...)
		}

		prefix := runeSliceToBytes(sub.Rune)
		lits := make([]Literal, suffixes.Len())
		for j := 0; j < suffixes.Len(); j++ {
			lit := suffixes.Get(j)
			newBytes := make([]byte, len(prefix)+len(lit.Bytes))
			copy(newBytes, prefix)
			copy(newBytes[len(prefix):], lit.Bytes)
			if len(newBytes) > e.config.MaxLiteralLen {
				newBytes = newBytes[len(newBytes)-e.config.MaxLiteralLen:]
			}
			lits[j] = NewLiteral(newBytes, lit.Complete)
		}
		suffixes = NewSeq(lits...)

		if suffixes.Len() > e.config.MaxLiterals {
			return suffixes
		}
	}

	return suffixes
}
