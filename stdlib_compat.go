package rex2

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/corelex/rex2/meta"
)

// Match reports whether the byte slice b contains any match of the
// regular expression pattern. More complicated queries need to use
// Compile and the full Regex interface.
func Match(pattern string, b []byte) (bool, error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.Match(b), nil
}

// MatchString reports whether the string s contains any match of the
// regular expression pattern.
func MatchString(pattern, s string) (bool, error) {
	return Match(pattern, []byte(s))
}

// MatchReader reports whether the text returned by the RuneReader
// contains any match of the regular expression pattern.
func MatchReader(pattern string, r io.RuneReader) (bool, error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchReader(r), nil
}

// CompilePOSIX is like Compile but restricts the regular expression to
// POSIX ERE (egrep) syntax and changes the match semantics to
// leftmost-longest, as required by POSIX.
//
// Like Compile, CompilePOSIX parses with the same Perl-compatible syntax
// understood by the underlying compiler; the distinguishing behavior
// POSIX callers rely on, leftmost-longest matching, is enabled via
// Longest.
func CompilePOSIX(pattern string) (*Regex, error) {
	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	re.Longest()
	return re, nil
}

// MustCompilePOSIX is like CompilePOSIX but panics if the expression
// cannot be parsed.
func MustCompilePOSIX(pattern string) *Regex {
	re, err := CompilePOSIX(pattern)
	if err != nil {
		panic("rex2: CompilePOSIX(" + pattern + "): " + err.Error())
	}
	return re
}

// SubexpNames returns the names of the parenthesized subexpressions in
// this Regex. The name for the first sub-expression is names[1], so that
// if m is a match slice, the name for m[i] is SubexpNames()[i]. Unnamed
// subexpressions are the empty string. Name 0 (the whole match) is
// always the empty string.
func (r *Regex) SubexpNames() []string {
	return r.engine.SubexpNames()
}

// SubexpIndex returns the index of the first subexpression with the
// given name, or -1 if there is no subexpression with that name.
//
// Note that multiple subexpressions can be written using the same name,
// as in (?P<bob>a+)(?P<bob>b+), which declares two subexpressions named
// "bob".
func (r *Regex) SubexpIndex(name string) int {
	if name == "" {
		return -1
	}
	for i, n := range r.SubexpNames() {
		if n == name {
			return i
		}
	}
	return -1
}

// LiteralPrefix returns a literal string that must begin any match of
// the regular expression r. It returns the boolean true if the literal
// string comprises the entire regular expression.
func (r *Regex) LiteralPrefix() (prefix string, complete bool) {
	return r.engine.LiteralPrefix()
}

// Copy returns a new Regex object identical to r, with its own mutable
// state (e.g. the Longest setting) independent of r's.
//
// Deprecated in stdlib regexp but kept here, as in stdlib, for API
// parity: since a Regex carries no mutable per-search scratch space
// visible to callers, concurrent use of a single Regex from multiple
// goroutines is already safe, and Copy is rarely needed.
func (r *Regex) Copy() *Regex {
	engine, err := meta.Compile(r.pattern)
	if err != nil {
		// r was already successfully compiled, so recompiling the same
		// pattern cannot fail.
		panic("rex2: Copy: " + err.Error())
	}
	if r.engine.IsLongest() {
		engine.SetLongest(true)
	}
	return &Regex{engine: engine, pattern: r.pattern}
}

// MarshalText implements encoding.TextMarshaler. The output matches
// that of the String method.
func (r *Regex) MarshalText() ([]byte, error) {
	return []byte(r.pattern), nil
}

// UnmarshalText implements encoding.TextUnmarshaler by calling Compile
// on the encoded pattern.
func (r *Regex) UnmarshalText(text []byte) error {
	newRe, err := Compile(string(text))
	if err != nil {
		return err
	}
	*r = *newRe
	return nil
}

// readerToBytes drains r, encoding runes read from it as UTF-8.
// RuneReader-based searches are not streamed through the engine; the
// reader is materialized once and handed to the byte-based search path.
func readerToBytes(r io.RuneReader) []byte {
	var buf bytes.Buffer
	tmp := make([]byte, utf8.UTFMax)
	for {
		ru, _, err := r.ReadRune()
		if err != nil {
			break
		}
		n := utf8.EncodeRune(tmp, ru)
		buf.Write(tmp[:n])
	}
	return buf.Bytes()
}

// MatchReader reports whether the text returned by the RuneReader
// contains any match of the regular expression r.
func (r *Regex) MatchReader(reader io.RuneReader) bool {
	return r.Match(readerToBytes(reader))
}

// FindReaderIndex returns a two-element slice of integers defining the
// location of the leftmost match of the regular expression in text read
// from the RuneReader. Returns nil if no match is found.
func (r *Regex) FindReaderIndex(reader io.RuneReader) []int {
	return r.FindIndex(readerToBytes(reader))
}

// FindReaderSubmatchIndex returns index pairs identifying the leftmost
// match of the regular expression in text read from the RuneReader, and
// the matches, if any, of its subexpressions.
func (r *Regex) FindReaderSubmatchIndex(reader io.RuneReader) []int {
	return r.FindSubmatchIndex(readerToBytes(reader))
}
