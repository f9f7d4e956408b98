// Package rex2set compiles many patterns into a single matcher that reports
// every pattern matching a haystack in one pass, mirroring RE2::Set.
//
// A Set is built once from a slice of patterns and then queried with
// MatchBytes/MatchString, which return the indices (in input order) of every
// pattern that matches somewhere in the haystack. Unlike rex2.Regex, a Set
// never reports match position or captures; it only answers "which of these
// patterns are present".
package rex2set

import (
	"fmt"
	"regexp/syntax"

	"github.com/coregx/ahocorasick"
	"github.com/corelex/rex2/literal"
	"github.com/corelex/rex2/meta"
)

// Set is a compiled collection of patterns that can be matched together.
//
// A Set is safe for concurrent use by multiple goroutines.
type Set struct {
	patterns []string
	engines  []*meta.Engine

	// prefilter[i] is an Aho-Corasick automaton over pattern i's required
	// literal prefixes, used to skip running engine i when none of its
	// literals occur in the haystack. Nil when pattern i has no literal
	// requirement worth prefiltering (it always runs).
	prefilter []*ahocorasick.Automaton
}

// CompileError reports which pattern in a set failed to compile.
type CompileError struct {
	Index   int
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("rex2set: pattern %d (%q): %v", e.Index, e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Compile builds a Set from patterns using the default configuration.
//
// Example:
//
//	set, err := rex2set.Compile([]string{`\d+`, `[a-z]+`, `ERROR`})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	matched := set.MatchString("order 42 failed") // []int{0, 1}
func Compile(patterns []string) (*Set, error) {
	return CompileWithConfig(patterns, meta.DefaultConfig())
}

// CompileWithConfig builds a Set from patterns using a custom engine
// configuration, applied to every pattern in the set.
func CompileWithConfig(patterns []string, config meta.Config) (*Set, error) {
	s := &Set{
		patterns:  make([]string, len(patterns)),
		engines:   make([]*meta.Engine, len(patterns)),
		prefilter: make([]*ahocorasick.Automaton, len(patterns)),
	}
	copy(s.patterns, patterns)

	extractor := literal.New(literal.DefaultConfig())

	for i, pattern := range patterns {
		re, err := syntax.Parse(pattern, syntax.Perl)
		if err != nil {
			return nil, &CompileError{Index: i, Pattern: pattern, Err: err}
		}

		engine, err := meta.CompileRegexp(re, config)
		if err != nil {
			return nil, &CompileError{Index: i, Pattern: pattern, Err: err}
		}
		s.engines[i] = engine

		prefixes := extractor.ExtractPrefixes(re)
		if prefixes.IsEmpty() {
			continue
		}

		builder := ahocorasick.NewBuilder()
		for j := 0; j < prefixes.Len(); j++ {
			builder.AddPattern(prefixes.Get(j).Bytes)
		}
		if auto, err := builder.Build(); err == nil {
			s.prefilter[i] = auto
		}
	}

	return s, nil
}

// Len returns the number of patterns in the set.
func (s *Set) Len() int {
	return len(s.patterns)
}

// Pattern returns the source text of the i'th pattern.
func (s *Set) Pattern(i int) string {
	return s.patterns[i]
}

// MatchString returns the indices, in ascending order, of every pattern in
// the set that matches somewhere in haystack.
func (s *Set) MatchString(haystack string) []int {
	return s.MatchBytes([]byte(haystack))
}

// MatchBytes is MatchString for a []byte haystack, avoiding a copy when the
// caller already holds one.
func (s *Set) MatchBytes(haystack []byte) []int {
	var matched []int
	for i, engine := range s.engines {
		if !s.mayMatch(i, haystack) {
			continue
		}
		if engine.IsMatch(haystack) {
			matched = append(matched, i)
		}
	}
	return matched
}

// AnyMatch reports whether at least one pattern in the set matches haystack,
// stopping at the first hit instead of collecting every match like
// MatchBytes/MatchString.
func (s *Set) AnyMatch(haystack []byte) bool {
	for i, engine := range s.engines {
		if !s.mayMatch(i, haystack) {
			continue
		}
		if engine.IsMatch(haystack) {
			return true
		}
	}
	return false
}

// mayMatch reports whether pattern i could possibly match haystack. When
// pattern i has a required literal prefix, its absence from haystack rules
// the pattern out without running the full engine. Patterns with no usable
// literal (".*", a bare character class, and similar) always return true.
func (s *Set) mayMatch(i int, haystack []byte) bool {
	pf := s.prefilter[i]
	if pf == nil {
		return true
	}
	return pf.IsMatch(haystack)
}
