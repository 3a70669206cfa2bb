package lang

import (
	"strings"
	"testing"
)

// Every handler must degrade gracefully on malformed input: no panic, no
// error, just empty/false/best-effort results.
func TestHandlersDegradeGracefully(t *testing.T) {
	registry := NewRegistry(nil)

	inputs := []string{
		"",
		"\n\n\n",
		"function broken( {",
		"class {{{",
		"<div><<><",
		".rule { color",
		"def f(:\n\t\tpass",
		strings.Repeat("{", 50),
		"\x00\x01\x02",
		"import",
	}

	for _, id := range registry.SupportedLanguageIDs() {
		h, ok := registry.HandlerForLanguageID(id)
		if !ok {
			t.Fatalf("missing handler for %s", id)
		}
		for _, input := range inputs {
			h.AnalyzeImports(input)
			h.AnalyzeDependencies(input)

			for _, fn := range h.AnalyzeFunctions(input) {
				if fn.Complexity < 1 {
					t.Errorf("%s: complexity %d < 1 for input %q", id, fn.Complexity, input)
				}
			}
			for _, n := range h.AnalyzeStructure(input) {
				if n.StartLine < 0 || n.EndLine < n.StartLine {
					t.Errorf("%s: bad line range %d..%d for input %q", id, n.StartLine, n.EndLine, input)
				}
			}
			for _, d := range h.DetectSyntaxErrors(input) {
				if d.Line < 0 || d.Column < 0 {
					t.Errorf("%s: negative diagnostic position %+v for input %q", id, d, input)
				}
			}

			h.ValidateSyntax(input)
			h.ValidateImports(input)
			h.ValidateStructure(input)
			h.FormatCode(input)
			h.InjectImports(input, []string{"dep"})
			h.WrapInFunction(input, "wrapped")
		}
	}
}

// Generation operations must never depend on the input text, so they are
// exercised with edge-case arguments instead.
func TestHandlersGenerateWithEdgeArguments(t *testing.T) {
	registry := NewRegistry(nil)

	for _, id := range registry.SupportedLanguageIDs() {
		h, _ := registry.HandlerForLanguageID(id)

		h.GenerateImports(nil)
		h.GenerateImports([]string{""})
		h.GenerateFunction("f", nil, "", "")
		h.GenerateClass("C", nil, nil)

		if out := h.GenerateImports([]string{"a", "b"}); out == "" {
			t.Errorf("%s: expected non-empty imports", id)
		}
	}
}

func TestInjectImportsIdempotentAcrossHandlers(t *testing.T) {
	registry := NewRegistry(nil)

	samples := map[string]string{
		"typescript": "const x = 1;\n",
		"javascript": "const x = 1;\n",
		"python":     "x = 1\n",
		"css":        ".x { color: red; }\n",
		"html":       "<html><head><title>t</title></head><body></body></html>",
	}
	deps := []string{"alpha", "beta"}

	for id, text := range samples {
		h, ok := registry.HandlerForLanguageID(id)
		if !ok {
			t.Fatalf("missing handler for %s", id)
		}
		once := h.InjectImports(text, deps)
		twice := h.InjectImports(once, deps)
		if once != twice {
			t.Errorf("%s: injection not idempotent:\n%q\nvs\n%q", id, once, twice)
		}
	}
}
