package rex2set

import (
	"reflect"
	"testing"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		wantErr  bool
	}{
		{"simple literals", []string{"foo", "bar", "baz"}, false},
		{"mixed classes", []string{`\d+`, `[a-z]+`, "ERROR"}, false},
		{"empty set", nil, false},
		{"invalid pattern", []string{"foo", "("}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Compile(tt.patterns)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Compile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if _, ok := err.(*CompileError); !ok {
					t.Fatalf("expected *CompileError, got %T", err)
				}
				return
			}
			if set.Len() != len(tt.patterns) {
				t.Errorf("Len() = %d, want %d", set.Len(), len(tt.patterns))
			}
		})
	}
}

func TestMatchString(t *testing.T) {
	set, err := Compile([]string{`\d+`, `[a-z]+`, "ERROR", "zzz"})
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	tests := []struct {
		haystack string
		want     []int
	}{
		{"order 42 failed", []int{0, 1}},
		{"ERROR: disk full", []int{1, 2}},
		{"nothing matches here digits 7", []int{0, 1}},
		{"ZZZ UPPER ONLY 123", []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.haystack, func(t *testing.T) {
			got := set.MatchString(tt.haystack)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MatchString(%q) = %v, want %v", tt.haystack, got, tt.want)
			}
		})
	}
}

func TestAnyMatch(t *testing.T) {
	set, err := Compile([]string{"needle", `\d{5}`})
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	if !set.AnyMatch([]byte("find the needle in the haystack")) {
		t.Error("AnyMatch() = false, want true")
	}
	if set.AnyMatch([]byte("nothing relevant")) {
		t.Error("AnyMatch() = true, want false")
	}
}

func TestPatternAndLen(t *testing.T) {
	patterns := []string{"alpha", "beta", "gamma"}
	set, err := Compile(patterns)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if set.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", set.Len())
	}
	for i, p := range patterns {
		if set.Pattern(i) != p {
			t.Errorf("Pattern(%d) = %q, want %q", i, set.Pattern(i), p)
		}
	}
}

func TestMatchBytesNoLiteralPattern(t *testing.T) {
	// Patterns with no extractable literal prefix (bare classes, dot-star)
	// must still run their engine rather than being filtered out.
	set, err := Compile([]string{`.*`, `[0-9]`})
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	got := set.MatchBytes([]byte("anything at all 9"))
	if !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("MatchBytes() = %v, want [0 1]", got)
	}
}
