package parser

import (
	"testing"
)

// FuzzParseLine checks that no script line makes the parser panic.
// Run with: go test ./internal/parser -fuzz=FuzzParseLine -fuzztime=30s
func FuzzParseLine(f *testing.F) {
	seeds := []string{
		"new ops",
		"select default",
		"add ChartPanel to WidgetContainer_container1 unique",
		"remove Table from WidgetContainer_container2",
		"move up Chart in WidgetContainer_container1",
		"move sideways Chart",
		"edit on",
		"target",
		"next-key WidgetContainer",
		"add 'Quoted Key' # comment",
		"'unterminated",
		"",
		"   # only a comment",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		cmd, ok, err := ParseLine(1, input)
		if err != nil {
			if _, isScriptErr := err.(*ScriptError); !isScriptErr {
				t.Fatalf("ParseLine(%q) returned %T, want *ScriptError", input, err)
			}
			return
		}
		if ok && cmd.Op == "" {
			t.Fatalf("ParseLine(%q) returned a command without an op", input)
		}
	})
}
