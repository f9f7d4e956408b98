// Command rex2grep scans files or standard input line by line and prints
// the lines matching one or more patterns, similar to grep(1).
//
// Usage:
//
//	rex2grep [-v] [-n] [-i] [-c] PATTERN [FILE...]
//	rex2grep -e PATTERN -e PATTERN [FILE...]
//
// With more than one -e pattern, a line is printed if any pattern matches
// it (backed by rex2set.Set rather than running each pattern separately).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/corelex/rex2"
	"github.com/corelex/rex2/rex2set"
)

type patternList []string

func (p *patternList) String() string {
	return strings.Join(*p, ",")
}

func (p *patternList) Set(value string) error {
	*p = append(*p, value)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rex2grep", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var patterns patternList
	fs.Var(&patterns, "e", "pattern to match (repeatable)")
	invert := fs.Bool("v", false, "print lines that do not match")
	lineNum := fs.Bool("n", false, "prefix each printed line with its line number")
	ignoreCase := fs.Bool("i", false, "match case-insensitively")
	countOnly := fs.Bool("c", false, "print only a count of matching lines")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	rest := fs.Args()
	if len(patterns) == 0 {
		if len(rest) == 0 {
			fmt.Fprintln(stderr, "rex2grep: no pattern given")
			return 2
		}
		patterns = patternList{rest[0]}
		rest = rest[1:]
	}

	if *ignoreCase {
		for i, p := range patterns {
			patterns[i] = "(?i)" + p
		}
	}

	matcher, err := newMatcher(patterns)
	if err != nil {
		fmt.Fprintf(stderr, "rex2grep: %v\n", err)
		return 2
	}

	readers, closeAll, err := openInputs(rest, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "rex2grep: %v\n", err)
		return 2
	}
	defer closeAll()

	count := 0
	for _, named := range readers {
		n, scanErr := scan(named, matcher, *invert, *lineNum, *countOnly, stdout)
		if scanErr != nil {
			fmt.Fprintf(stderr, "rex2grep: %v\n", scanErr)
			return 2
		}
		count += n
	}

	if *countOnly {
		fmt.Fprintln(stdout, count)
	}

	if count == 0 {
		return 1
	}
	return 0
}

// matcher abstracts over a single compiled pattern and a compiled set so the
// scan loop doesn't care which backs it.
type matcher interface {
	MatchString(s string) bool
}

type singleMatcher struct {
	re *rex2.Regex
}

func (m singleMatcher) MatchString(s string) bool {
	return m.re.MatchString(s)
}

type setMatcher struct {
	set *rex2set.Set
}

func (m setMatcher) MatchString(s string) bool {
	return m.set.AnyMatch([]byte(s))
}

func newMatcher(patterns []string) (matcher, error) {
	if len(patterns) == 1 {
		re, err := rex2.Compile(patterns[0])
		if err != nil {
			return nil, err
		}
		return singleMatcher{re: re}, nil
	}

	set, err := rex2set.Compile(patterns)
	if err != nil {
		return nil, err
	}
	return setMatcher{set: set}, nil
}

type namedReader struct {
	name string
	r    io.Reader
}

func openInputs(paths []string, stdin io.Reader) ([]namedReader, func(), error) {
	if len(paths) == 0 {
		return []namedReader{{name: "<stdin>", r: stdin}}, func() {}, nil
	}

	readers := make([]namedReader, 0, len(paths))
	files := make([]*os.File, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			for _, opened := range files {
				opened.Close()
			}
			return nil, nil, err
		}
		files = append(files, f)
		readers = append(readers, namedReader{name: path, r: f})
	}

	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}
	return readers, closeAll, nil
}

// scan reads named line by line, printing lines whose match state agrees
// with invert, and returns how many lines were printed.
func scan(named namedReader, m matcher, invert, lineNum, countOnly bool, stdout io.Writer) (int, error) {
	sc := bufio.NewScanner(named.r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	printed := 0
	lineNo := 0
	prefix := ""
	if len(named.name) > 0 && named.name != "<stdin>" {
		prefix = named.name + ":"
	}

	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if m.MatchString(line) == invert {
			continue
		}
		printed++
		if countOnly {
			continue
		}
		if lineNum {
			fmt.Fprintf(stdout, "%s%d:%s\n", prefix, lineNo, line)
		} else {
			fmt.Fprintf(stdout, "%s%s\n", prefix, line)
		}
	}
	return printed, sc.Err()
}
