package lang

import (
	"reflect"
	"strings"
	"testing"
)

const htmlDoc = `<html>
<head>
<title>Demo</title>
<link rel="stylesheet" href="main.css">
</head>
<body>
<div id="app"></div>
<script src="app.js"></script>
</body>
</html>`

func TestHTMLAnalyzeDependencies(t *testing.T) {
	h := NewHTMLHandler(nil)

	got := h.AnalyzeDependencies(htmlDoc)
	want := []string{"main.css", "app.js"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestHTMLAnalyzeImports(t *testing.T) {
	h := NewHTMLHandler(nil)
	text := `<link rel="stylesheet" href="a.css"><script src="b.js"></script><img src="c.png">`

	got := h.AnalyzeImports(text)
	for _, want := range []string{"a.css", "b.js", "c.png"} {
		found := false
		for _, spec := range got {
			if spec == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected %q in %v", want, got)
		}
	}
}

func TestHTMLAnalyzeFunctions(t *testing.T) {
	h := NewHTMLHandler(nil)
	text := `<html><body><script>
function greet(name) {
  if (name) {
    console.log(name);
  }
}
</script></body></html>`

	funcs := h.AnalyzeFunctions(text)
	if len(funcs) != 1 {
		t.Fatalf("Expected 1 function, got %d: %v", len(funcs), funcs)
	}
	if funcs[0].Name != "greet" {
		t.Errorf("Expected greet, got %s", funcs[0].Name)
	}
	if !reflect.DeepEqual(funcs[0].Params, []string{"name"}) {
		t.Errorf("Expected [name], got %v", funcs[0].Params)
	}
	// base 1 + one if(
	if funcs[0].Complexity != 2 {
		t.Errorf("Expected complexity 2, got %d", funcs[0].Complexity)
	}
}

func TestHTMLAnalyzeStructure(t *testing.T) {
	h := NewHTMLHandler(nil)

	nodes := h.AnalyzeStructure(htmlDoc)
	names := make(map[string]bool)
	for _, n := range nodes {
		names[n.Name] = true
		if n.StartLine < 0 || n.EndLine < n.StartLine {
			t.Errorf("Bad line range for %s: %d..%d", n.Name, n.StartLine, n.EndLine)
		}
	}
	for _, want := range []string{"html", "head", "body", "title", "div#app", "script"} {
		if !names[want] {
			t.Errorf("Expected structure node %q, have %v", want, names)
		}
	}
}

func TestHTMLValidateStructureScenario(t *testing.T) {
	h := NewHTMLHandler(nil)

	missingTitle := "<html><head></head><body><p>hi</p></body></html>"
	if h.ValidateStructure(missingTitle) {
		t.Error("Expected document without title to be invalid")
	}

	complete := "<html><head><title>X</title></head><body><p>hi</p></body></html>"
	if !h.ValidateStructure(complete) {
		t.Error("Expected complete skeleton to be valid")
	}
}

func TestHTMLValidateImportsLinksInHead(t *testing.T) {
	h := NewHTMLHandler(nil)

	if !h.ValidateImports(htmlDoc) {
		t.Error("Expected stylesheet link in head to validate")
	}

	inBody := `<html><head><title>X</title></head><body><link rel="stylesheet" href="late.css"></body></html>`
	if h.ValidateImports(inBody) {
		t.Error("Expected stylesheet link in body to fail validation")
	}
}

func TestHTMLValidateSyntaxMismatchedTag(t *testing.T) {
	h := NewHTMLHandler(nil)

	if !h.ValidateSyntax(htmlDoc) {
		t.Error("Expected well-formed document to validate")
	}

	mismatched := "<html><body><div>hello</span></body></html>"
	if h.ValidateSyntax(mismatched) {
		t.Error("Expected mismatched closing tag to be invalid")
	}
	diags := h.DetectSyntaxErrors(mismatched)
	if len(diags) == 0 {
		t.Error("Expected diagnostics for mismatched closing tag")
	}
}

func TestHTMLGenerateImports(t *testing.T) {
	h := NewHTMLHandler(nil)
	got := h.GenerateImports([]string{"app.js", "logo.png", "style.css"})
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 elements, got %q", got)
	}
	if lines[0] != `<script src="app.js"></script>` {
		t.Errorf("Unexpected script element: %q", lines[0])
	}
	if lines[1] != `<img src="logo.png">` {
		t.Errorf("Unexpected img element: %q", lines[1])
	}
	if lines[2] != `<link rel="stylesheet" href="style.css">` {
		t.Errorf("Unexpected link element: %q", lines[2])
	}
}

func TestHTMLInjectImportsPlacement(t *testing.T) {
	h := NewHTMLHandler(nil)

	once := h.InjectImports(htmlDoc, []string{"extra.css", "extra.js", "main.css"})

	headEnd := strings.Index(once, "</head>")
	if idx := strings.Index(once, `href="extra.css"`); idx < 0 || idx > headEnd {
		t.Errorf("Expected extra.css link inside head, got:\n%s", once)
	}
	bodyEnd := strings.Index(once, "</body>")
	if idx := strings.Index(once, `src="extra.js"`); idx < 0 || idx > bodyEnd || idx < headEnd {
		t.Errorf("Expected extra.js script at end of body, got:\n%s", once)
	}
	if strings.Count(once, "main.css") != 1 {
		t.Errorf("Expected existing main.css untouched, got:\n%s", once)
	}

	if twice := h.InjectImports(once, []string{"extra.css", "extra.js", "main.css"}); twice != once {
		t.Errorf("Expected idempotent injection:\n%s\nvs\n%s", once, twice)
	}
}

func TestHTMLFormatCode(t *testing.T) {
	h := NewHTMLHandler(nil)
	input := "<div>\n<p>hi</p>\n</div>"
	want := "<div>\n  <p>hi</p>\n</div>"
	if got := h.FormatCode(input); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestHTMLWrapInFunction(t *testing.T) {
	h := NewHTMLHandler(nil)
	got := h.WrapInFunction("alert('hi');", "boot")
	want := "<script>\nfunction boot() {\n  alert('hi');\n}\n</script>"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
