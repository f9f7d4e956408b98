// Package meta implements the meta-engine orchestrator.
//
// anchored_literal.go implements the UseAnchoredLiteral strategy for patterns
// matching the form: ^[prefix].*[charclass+]suffix$
//
// This strategy provides O(1) matching for common URL/path patterns by:
// 1. O(1) prefix check (if present)
// 2. O(k) suffix check
// 3. O(m) charclass bridge verification (if present)
//
// Example patterns:
//   - ^/.*[\w-]+\.php$  → prefix="/", charclass=[\w-], suffix=".php"
//   - ^.*\.txt$         → no prefix, no charclass, suffix=".txt"
//   - ^https?://.*$     → NOT eligible (no suffix literal)

package meta

// AnchoredLiteralInfo contains extracted components for fast matching.
// This is used by the UseAnchoredLiteral strategy.
type AnchoredLiteralInfo struct {
	// Prefix is the required prefix literal (may be empty).
	// For ^/.*\.php$, this is "/".
	Prefix []byte

	// Suffix is the required suffix literal (always non-empty).
	// For ^/.*\.php$, this is ".php".
	Suffix []byte

	// CharClassTable is a 256-byte lookup table for the charclass bridge.
	// For [\w-], table[c] is true for [A-Za-z0-9_-].
	// nil if no charclass bridge required.
	CharClassTable *[256]bool

	// CharClassMin is the minimum count of charclass matches required.
	// Usually 1 for charclass+.
	CharClassMin int

	// WildcardMin is 0 for .* or 1 for .+
	WildcardMin int

	// MinLength is the minimum input length for a possible match.
	// Calculated as: len(Prefix) + WildcardMin + CharClassMin + len(Suffix)
	MinLength int
}
