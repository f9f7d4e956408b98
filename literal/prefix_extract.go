package literal

import "regexp/syntax"

const maxExtractDepth = 100

// ExtractPrefixes extracts literal prefixes from a regex pattern.
//
// Examples:
//
//	"hello"           -> ["hello"] (exact)
//	"hello|world"     -> ["hello", "world"] (exact)
//	"hello.*"         -> ["hello"] (inexact, more can follow)
//	"(foo|bar)baz"    -> ["foobaz", "barbaz"] (exact)
//	".*hello"         -> [] (no usable prefix, starts with wildcard)
func (e *Extractor) ExtractPrefixes(re *syntax.Regexp) *Seq {
	return e.extractPrefixes(re, 0)
}

// extractPrefixes walks re, building a Seq of literal prefixes. depth guards
// against pathological AST nesting. Patterns (or sub-patterns) under
// FoldCase are skipped entirely: the prefilter matches bytes case-sensitively,
// so only the literal bytes as written would be checked, silently missing
// the other case.
func (e *Extractor) extractPrefixes(re *syntax.Regexp, depth int) *Seq {
	if depth > maxExtractDepth || re.Flags&syntax.FoldCase != 0 {
		return NewSeq()
	}

	switch re.Op {
	case syntax.OpLiteral:
		bytes := runeSliceToBytes(re.Rune)
		if len(bytes) > e.config.MaxLiteralLen {
			bytes = bytes[:e.config.MaxLiteralLen]
		}
		return NewSeq(NewLiteral(bytes, true))

	case syntax.OpConcat:
		return e.extractPrefixesConcat(re, depth)

	case syntax.OpAlternate:
		// Union of all branches; if any branch has no prefix requirement
		// (e.g. `.*?`), neither does the alternation as a whole.
		var allLits []Literal
		truncated := false
		for _, sub := range re.Sub {
			seq := e.extractPrefixes(sub, depth+1)
			if seq.IsEmpty() {
				return NewSeq()
			}
			for i := 0; i < seq.Len(); i++ {
				allLits = append(allLits, seq.Get(i))
				if len(allLits) >= e.config.MaxLiterals {
					truncated = true
					break
				}
			}
			if truncated {
				break
			}
		}
		// Hitting the limit mid-alternation means the set no longer covers
		// every branch, so the literal engine can't bypass full verification.
		if truncated {
			for i := range allLits {
				allLits[i].Complete = false
			}
		}
		return NewSeq(allLits...)

	case syntax.OpCharClass:
		return e.expandCharClass(re)

	case syntax.OpCapture:
		if len(re.Sub) == 0 {
			return NewSeq()
		}
		return e.extractPrefixes(re.Sub[0], depth+1)

	default:
		return NewSeq()
	}
}

// extractPrefixesConcat cross-products accumulated literals against each
// leading sub-expression of an OpConcat until one can't contribute (a
// wildcard, an unbounded repeat) or a configured limit is hit.
//
// Example: ag[act]gtaaa
//
//	step 0: acc = [""]
//	step 1: "ag"    -> acc = ["ag"]
//	step 2: [act]   -> acc = ["aga", "agc", "agt"]
//	step 3: "gtaaa" -> acc = ["agagtaaa", "agcgtaaa", "agtgtaaa"]
func (e *Extractor) extractPrefixesConcat(re *syntax.Regexp, depth int) *Seq {
	if len(re.Sub) == 0 {
		return NewSeq()
	}

	startIdx := 0
	for startIdx < len(re.Sub) {
		op := re.Sub[startIdx].Op
		if op == syntax.OpBeginLine || op == syntax.OpBeginText {
			startIdx++
		} else {
			break
		}
	}
	if startIdx >= len(re.Sub) {
		return NewSeq()
	}

	crossLimit := e.config.CrossProductLimit
	if crossLimit <= 0 {
		crossLimit = 250
	}

	acc := NewSeq(NewLiteral([]byte{}, true))

	for i := startIdx; i < len(re.Sub); i++ {
		if !e.hasAnyExact(acc) {
			break
		}

		contribution := e.concatSubContribution(re.Sub[i], depth)
		if contribution == nil {
			e.markAllInexact(acc)
			break
		}

		acc.CrossForward(contribution)

		if acc.Len() > crossLimit || acc.Len() > e.config.MaxLiterals {
			acc = e.handleCrossProductOverflow(acc)
			break
		}

		e.enforceMaxLiteralLen(acc)
	}

	if acc.Len() == 1 && len(acc.Get(0).Bytes) == 0 {
		return NewSeq()
	}

	return acc
}

// concatSubContribution returns what a single OpConcat child contributes to
// a cross-product accumulation, or nil if it can't contribute anything
// (a wildcard, an unbounded repeat, a folded literal).
func (e *Extractor) concatSubContribution(sub *syntax.Regexp, depth int) *Seq {
	if sub.Flags&syntax.FoldCase != 0 {
		return nil
	}

	switch sub.Op {
	case syntax.OpLiteral:
		return NewSeq(NewLiteral(runeSliceToBytes(sub.Rune), true))

	case syntax.OpCharClass:
		expanded := e.expandCharClass(sub)
		if expanded.IsEmpty() {
			return nil
		}
		return expanded

	case syntax.OpAlternate:
		return e.expandAlternateContribution(sub, depth)

	case syntax.OpCapture:
		if len(sub.Sub) == 0 {
			return nil
		}
		return e.concatSubContribution(sub.Sub[0], depth)

	case syntax.OpRepeat:
		// min >= 1 guarantees at least one occurrence; the result is always
		// inexact since repetition means more of the same may follow.
		if sub.Min >= 1 && len(sub.Sub) > 0 {
			inner := e.concatSubContribution(sub.Sub[0], depth)
			if inner == nil {
				return nil
			}
			e.markAllInexact(inner)
			return inner
		}
		return nil

	default:
		return nil
	}
}

// expandAlternateContribution expands an alternation nested inside a
// concatenation into its cross-product contribution. Unlike the top-level
// OpAlternate case in extractPrefixes, a branch with no literals or a
// literal count over MaxLiterals aborts the whole contribution (nil) rather
// than truncating, since a cross-product built from a partial contribution
// would silently misrepresent the pattern.
func (e *Extractor) expandAlternateContribution(alt *syntax.Regexp, depth int) *Seq {
	if alt.Op != syntax.OpAlternate {
		return nil
	}
	var allLits []Literal
	for _, sub := range alt.Sub {
		seq := e.extractPrefixes(sub, depth+1)
		if seq.IsEmpty() {
			return nil
		}
		for i := 0; i < seq.Len(); i++ {
			allLits = append(allLits, seq.Get(i))
			if len(allLits) > e.config.MaxLiterals {
				return nil
			}
		}
	}
	return NewSeq(allLits...)
}
