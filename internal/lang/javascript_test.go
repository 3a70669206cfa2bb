package lang

import (
	"reflect"
	"strings"
	"testing"
)

func TestJavaScriptAnalyzeDependencies(t *testing.T) {
	h := NewJavaScriptHandler(nil)
	text := `import express from 'express';
const path = require('path');
import express2 from 'express';`

	got := h.AnalyzeDependencies(text)
	want := []string{"express", "path"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestJavaScriptComplexityCountsLogicalOperators(t *testing.T) {
	h := NewJavaScriptHandler(nil)
	text := `function check(a, b) {
  if (a) {
    return true;
  }
  return a && b;
}`

	funcs := h.AnalyzeFunctions(text)
	if len(funcs) != 1 {
		t.Fatalf("Expected 1 function, got %d", len(funcs))
	}
	// base 1 + if + &&
	if funcs[0].Complexity != 3 {
		t.Errorf("Expected complexity 3, got %d", funcs[0].Complexity)
	}
}

func TestJavaScriptArrowFunction(t *testing.T) {
	h := NewJavaScriptHandler(nil)
	text := `const sum = (a, b) => {
  return a + b;
};`

	funcs := h.AnalyzeFunctions(text)
	if len(funcs) != 1 {
		t.Fatalf("Expected 1 function, got %d: %v", len(funcs), funcs)
	}
	if funcs[0].Name != "sum" {
		t.Errorf("Expected name sum, got %s", funcs[0].Name)
	}
	if len(funcs[0].Params) != 2 {
		t.Errorf("Expected 2 params, got %v", funcs[0].Params)
	}
}

func TestJavaScriptValidateStructureRequiresExport(t *testing.T) {
	h := NewJavaScriptHandler(nil)

	if h.ValidateStructure("function add(a, b) { return a + b; }") {
		t.Error("Expected module without exports to be invalid")
	}
	if !h.ValidateStructure("export function add(a, b) { return a + b; }") {
		t.Error("Expected exported function to be valid")
	}
	if !h.ValidateStructure("const x = 1;\nexport default x;") {
		t.Error("Expected default export to be valid")
	}
}

func TestJavaScriptValidateImportsUsage(t *testing.T) {
	h := NewJavaScriptHandler(nil)

	used := "import lodash from 'lodash';\nconst out = lodash.chunk([1, 2], 1);\n"
	if !h.ValidateImports(used) {
		t.Error("Expected used import to validate")
	}

	// A side-effect import binds nothing, so its derived identifier never
	// appears in the tree.
	unused := "import 'lodash';\nconst out = 1;\n"
	if h.ValidateImports(unused) {
		t.Error("Expected unreferenced dependency to fail validation")
	}
}

func TestJavaScriptGenerateClass(t *testing.T) {
	h := NewJavaScriptHandler(nil)
	got := h.GenerateClass("Store", []string{"items"}, []string{"add"})
	if !strings.Contains(got, "this.items = null;") {
		t.Errorf("Expected property assignment in constructor, got %q", got)
	}
	if !h.ValidateSyntax(got) {
		t.Errorf("Generated class does not parse: %q", got)
	}
}

func TestJavaScriptGenerateFunctionIgnoresReturnType(t *testing.T) {
	h := NewJavaScriptHandler(nil)
	got := h.GenerateFunction("f", []string{"x"}, "number", "return x;")
	if strings.Contains(got, "number") {
		t.Errorf("Expected return type to be ignored, got %q", got)
	}
}

func TestJavaScriptInjectImportsIdempotent(t *testing.T) {
	h := NewJavaScriptHandler(nil)
	text := "const a = 1;\n"

	once := h.InjectImports(text, []string{"react"})
	if !strings.Contains(once, "import react from 'react';") {
		t.Errorf("Expected react import, got %q", once)
	}
	twice := h.InjectImports(once, []string{"react"})
	if twice != once {
		t.Errorf("Expected idempotent injection, got %q then %q", once, twice)
	}
}
