package lang

import (
	"reflect"
	"strings"
	"testing"
)

func TestTypeScriptAnalyzeImports(t *testing.T) {
	h := NewTypeScriptHandler(nil)
	text := `import fs from 'fs';
import { join } from "path";
import './side-effect';
export { helper } from './helper';
const lib = require('lib');`

	got := h.AnalyzeImports(text)
	for _, want := range []string{"fs", "path", "./side-effect", "./helper", "lib"} {
		found := false
		for _, spec := range got {
			if spec == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected import %q in %v", want, got)
		}
	}
}

func TestTypeScriptAnalyzeDependencies(t *testing.T) {
	h := NewTypeScriptHandler(nil)
	text := `import fs from 'fs';
import fs2 from 'fs';
import { join } from 'path';
const lib = require('lib');`

	got := h.AnalyzeDependencies(text)
	want := []string{"fs", "path", "lib"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected deduplicated deps %v, got %v", want, got)
	}
}

func TestTypeScriptAnalyzeFunctions(t *testing.T) {
	h := NewTypeScriptHandler(nil)
	text := `function pick(a: number, b: number): number {
  if (a > b) {
    return a;
  }
  return b;
}`

	funcs := h.AnalyzeFunctions(text)
	if len(funcs) != 1 {
		t.Fatalf("Expected 1 function, got %d: %v", len(funcs), funcs)
	}
	fn := funcs[0]
	if fn.Name != "pick" {
		t.Errorf("Expected name pick, got %s", fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Errorf("Expected 2 params, got %v", fn.Params)
	}
	if fn.ReturnType != "number" {
		t.Errorf("Expected return type number, got %q", fn.ReturnType)
	}
	if fn.Complexity != 2 {
		t.Errorf("Expected complexity 2, got %d", fn.Complexity)
	}
}

func TestTypeScriptLogicalOperatorsNotCounted(t *testing.T) {
	h := NewTypeScriptHandler(nil)
	text := `function both(a: boolean, b: boolean): boolean {
  return a && b;
}`

	funcs := h.AnalyzeFunctions(text)
	if len(funcs) != 1 {
		t.Fatalf("Expected 1 function, got %d", len(funcs))
	}
	if funcs[0].Complexity != 1 {
		t.Errorf("Expected complexity 1 (no logical counting), got %d", funcs[0].Complexity)
	}
}

func TestTypeScriptAnalyzeStructure(t *testing.T) {
	h := NewTypeScriptHandler(nil)
	text := `interface Shape {
  area(): number;
}

class Circle {
  constructor() {}
}

function render() {}`

	nodes := h.AnalyzeStructure(text)
	kinds := make(map[string]NodeKind)
	for _, n := range nodes {
		kinds[n.Name] = n.Kind
		if n.StartLine < 0 || n.EndLine < n.StartLine {
			t.Errorf("Bad line range for %s: %d..%d", n.Name, n.StartLine, n.EndLine)
		}
	}
	if kinds["Shape"] != KindInterface {
		t.Errorf("Expected Shape to be an interface, got %v", kinds["Shape"])
	}
	if kinds["Circle"] != KindClass {
		t.Errorf("Expected Circle to be a class, got %v", kinds["Circle"])
	}
	if kinds["render"] != KindFunction {
		t.Errorf("Expected render to be a function, got %v", kinds["render"])
	}

	for _, n := range nodes {
		if n.Name == "Shape" && n.StartLine != 0 {
			t.Errorf("Expected Shape to start at line 0, got %d", n.StartLine)
		}
	}
}

func TestTypeScriptValidateSyntax(t *testing.T) {
	h := NewTypeScriptHandler(nil)
	if !h.ValidateSyntax("const x: number = 1;") {
		t.Error("Expected valid syntax")
	}
	if h.ValidateSyntax("function broken( {") {
		t.Error("Expected invalid syntax")
	}
}

func TestTypeScriptDetectSyntaxErrors(t *testing.T) {
	h := NewTypeScriptHandler(nil)
	if diags := h.DetectSyntaxErrors("const x = 1;"); len(diags) != 0 {
		t.Errorf("Expected no diagnostics for clean source, got %v", diags)
	}
	diags := h.DetectSyntaxErrors("function broken( {")
	if len(diags) == 0 {
		t.Fatal("Expected diagnostics for malformed source")
	}
	for _, d := range diags {
		if d.Line < 0 || d.Column < 0 {
			t.Errorf("Diagnostic position must be zero-based non-negative: %+v", d)
		}
	}
}

func TestTypeScriptValidateStructureConstructors(t *testing.T) {
	h := NewTypeScriptHandler(nil)

	without := `class Point {
  x: number;
}`
	if h.ValidateStructure(without) {
		t.Error("Expected class without constructor to be invalid")
	}

	with := `class Point {
  x: number;
  constructor() {
    this.x = 0;
  }
}`
	if !h.ValidateStructure(with) {
		t.Error("Expected class with constructor to be valid")
	}
}

func TestTypeScriptGenerateImports(t *testing.T) {
	h := NewTypeScriptHandler(nil)
	got := h.GenerateImports([]string{"lodash", "@scope/my-lib"})
	want := "import lodash from 'lodash';\nimport mylib from '@scope/my-lib';"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestTypeScriptGenerateImportsRoundTrip(t *testing.T) {
	h := NewTypeScriptHandler(nil)
	deps := []string{"fs", "path"}
	rendered := h.GenerateImports(deps)
	if got := h.AnalyzeDependencies(rendered + "\n"); !reflect.DeepEqual(got, deps) {
		t.Errorf("Round trip failed: generated %q, analyzed %v", rendered, got)
	}
}

func TestTypeScriptGenerateFunction(t *testing.T) {
	h := NewTypeScriptHandler(nil)
	got := h.GenerateFunction("add", []string{"a: number", "b: number"}, "number", "return a + b;")
	want := "function add(a: number, b: number): number {\n  return a + b;\n}"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if !h.ValidateSyntax(got) {
		t.Errorf("Generated function does not parse: %q", got)
	}
}

func TestTypeScriptGenerateClassIsValid(t *testing.T) {
	h := NewTypeScriptHandler(nil)
	got := h.GenerateClass("User", []string{"name: string"}, []string{"save"})
	if !strings.Contains(got, "class User {") {
		t.Errorf("Expected class declaration in %q", got)
	}
	if !strings.Contains(got, "constructor()") {
		t.Errorf("Expected constructor in %q", got)
	}
	if !h.ValidateSyntax(got) {
		t.Errorf("Generated class does not parse: %q", got)
	}
	if !h.ValidateStructure(got) {
		t.Errorf("Generated class must satisfy structure validation: %q", got)
	}
}

func TestTypeScriptInjectImportsIdempotent(t *testing.T) {
	h := NewTypeScriptHandler(nil)
	text := "import fs from 'fs';\n\nconst data = fs.readFileSync('x');\n"

	once := h.InjectImports(text, []string{"path", "fs"})
	if !strings.Contains(once, "import path from 'path';") {
		t.Errorf("Expected path import injected, got %q", once)
	}
	if strings.Count(once, "'fs'") != 1 {
		t.Errorf("Expected existing fs import untouched, got %q", once)
	}

	twice := h.InjectImports(once, []string{"path", "fs"})
	if twice != once {
		t.Errorf("Expected injection to be idempotent:\nfirst %q\nsecond %q", once, twice)
	}
}

func TestTypeScriptWrapInFunction(t *testing.T) {
	h := NewTypeScriptHandler(nil)
	got := h.WrapInFunction("console.log('hi');", "run")
	want := "function run() {\n  console.log('hi');\n}"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestTypeScriptFormatCode(t *testing.T) {
	h := NewTypeScriptHandler(nil)
	input := "function f() {\nreturn 1;\n}"
	want := "function f() {\n  return 1;\n}"
	if got := h.FormatCode(input); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
