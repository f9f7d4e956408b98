package literal

import "regexp/syntax"

// expandCharClass expands a small character class into individual literals.
//
//	[abc]   -> ["a", "b", "c"]
//	[a-z]   -> []  (26 chars, over the default MaxClassSize of 10)
//	[0-9]   -> ["0", ..., "9"] if MaxClassSize >= 10
//
// Returns an empty Seq if re isn't a char class or its size exceeds
// MaxClassSize.
func (e *Extractor) expandCharClass(re *syntax.Regexp) *Seq {
	if re.Op != syntax.OpCharClass {
		return NewSeq()
	}

	count := 0
	for i := 0; i < len(re.Rune); i += 2 {
		lo, hi := re.Rune[i], re.Rune[i+1]
		count += int(hi - lo + 1)
		if count > e.config.MaxClassSize {
			return NewSeq()
		}
	}

	var lits []Literal
	for i := 0; i < len(re.Rune); i += 2 {
		lo, hi := re.Rune[i], re.Rune[i+1]
		for r := lo; r <= hi; r++ {
			bytes := []byte(string(r))
			if len(bytes) > e.config.MaxLiteralLen {
				bytes = bytes[:e.config.MaxLiteralLen]
			}
			lits = append(lits, NewLiteral(bytes, true))

			if len(lits) >= e.config.MaxLiterals {
				return NewSeq(lits...)
			}
		}
	}

	return NewSeq(lits...)
}
