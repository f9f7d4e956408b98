// Package meta implements the meta-engine orchestrator.
//
// literal_prefix.go walks the parsed pattern tree to find an exact
// literal prefix, the kind reported by stdlib regexp.Regexp.LiteralPrefix.
// This is deliberately separate from the literal package's prefix
// extraction, which is tuned for fuzzy multi-literal prefiltering rather
// than an exact, anchor-sensitive prefix.

package meta

import "regexp/syntax"

// LiteralPrefix returns a literal string that must begin any match of
// the pattern, and whether that literal comprises the entire pattern.
// An anchor at the very start (e.g. "^hello") disqualifies the pattern
// from having a literal prefix at all, matching stdlib semantics.
func (e *Engine) LiteralPrefix() (prefix string, complete bool) {
	if e.ast == nil {
		return "", false
	}
	return literalPrefix(e.ast)
}

func literalPrefix(re *syntax.Regexp) (string, bool) {
	switch re.Op {
	case syntax.OpLiteral:
		return string(re.Rune), true

	case syntax.OpConcat:
		if len(re.Sub) == 0 || re.Sub[0].Op != syntax.OpLiteral {
			return "", false
		}
		var buf []rune
		for _, sub := range re.Sub {
			if sub.Op != syntax.OpLiteral {
				return string(buf), false
			}
			buf = append(buf, sub.Rune...)
		}
		return string(buf), true

	default:
		return "", false
	}
}
