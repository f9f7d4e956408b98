package lazy

import (
	"github.com/corelex/rex2/literal"
	"github.com/corelex/rex2/nfa"
	"github.com/corelex/rex2/prefilter"
)

// Compile builds a DFA from an NFA using DefaultConfig.
func Compile(n *nfa.NFA) (*DFA, error) {
	return CompileWithConfig(n, DefaultConfig())
}

// CompileWithConfig builds a DFA from an NFA with the given configuration.
func CompileWithConfig(n *nfa.NFA, config Config) (*DFA, error) {
	builder := NewBuilder(n, config)
	return builder.Build()
}

// CompileWithPrefilter builds a DFA and attaches pf for accelerating
// unanchored search by skipping regions the prefilter rules out.
func CompileWithPrefilter(n *nfa.NFA, config Config, pf prefilter.Prefilter) (*DFA, error) {
	builder := NewBuilder(n, config)
	dfa, err := builder.Build()
	if err != nil {
		return nil, err
	}
	dfa.prefilter = pf
	return dfa, nil
}

// CompilePattern parses pattern, compiles it to an NFA, and builds a DFA
// from it in one step, using DefaultConfig.
//
// Example:
//
//	dfa, err := lazy.CompilePattern("(foo|bar)\\d+")
//	if err != nil {
//	    return err
//	}
//	pos := dfa.Find([]byte("test foo123 end"))
func CompilePattern(pattern string) (*DFA, error) {
	return CompilePatternWithConfig(pattern, DefaultConfig())
}

// CompilePatternWithConfig is CompilePattern with a caller-supplied Config.
func CompilePatternWithConfig(pattern string, config Config) (*DFA, error) {
	compiler := nfa.NewDefaultCompiler()
	nfaObj, err := compiler.Compile(pattern)
	if err != nil {
		return nil, &DFAError{
			Kind:    InvalidConfig,
			Message: "NFA compilation failed",
			Cause:   err,
		}
	}

	return CompileWithConfig(nfaObj, config)
}

// ExtractPrefilter parses pattern and tries to build a prefilter from it.
// Returns (nil, nil) when no suitable prefilter can be built; that is a
// normal outcome, not an error.
//
//nolint:nilnil // nil prefilter with nil error means "no prefilter available"
func ExtractPrefilter(pattern string) (prefilter.Prefilter, error) {
	compiler := nfa.NewDefaultCompiler()
	if _, err := compiler.Compile(pattern); err != nil {
		return nil, err
	}

	// Literal extraction from a compiled NFA (rather than from the AST
	// before compilation) isn't implemented; callers that need a prefilter
	// should extract from the pattern's syntax tree and use
	// BuildPrefilterFromLiterals directly.
	return nil, nil
}

// BuildPrefilterFromLiterals builds a prefilter from already-extracted
// prefix/suffix literal sequences.
func BuildPrefilterFromLiterals(prefixes, suffixes *literal.Seq) prefilter.Prefilter {
	builder := prefilter.NewBuilder(prefixes, suffixes)
	return builder.Build()
}

// buildPrefilter is the Build()-time hook for attaching a prefilter
// derived from the NFA being compiled. Reconstructing literal sequences
// from an NFA (rather than from the pre-compilation AST) isn't
// implemented, so this always opts out; CompileWithPrefilter remains the
// way to attach one explicitly.
func (b *Builder) buildPrefilter() prefilter.Prefilter {
	return nil
}
