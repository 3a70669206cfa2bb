package document

import (
	"context"
	"testing"

	"langlens/internal/core/errors"
	"langlens/internal/lang"
)

func newService() *Service {
	return NewService(lang.NewRegistry(nil), nil)
}

func TestAnalyzeResolvesByExtension(t *testing.T) {
	s := newService()
	doc := Document{
		Path: "main.py",
		Text: "import os\n\ndef main():\n    pass\n",
	}

	analysis, err := s.Analyze(context.Background(), doc)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(analysis.Dependencies) != 1 || analysis.Dependencies[0] != "os" {
		t.Errorf("Unexpected dependencies: %v", analysis.Dependencies)
	}
	if !analysis.SyntaxValid {
		t.Error("Expected valid syntax")
	}
	if !analysis.ImportsValid {
		t.Error("Expected valid import placement")
	}
}

func TestAnalyzeResolvesByLanguageID(t *testing.T) {
	s := newService()
	doc := Document{
		LanguageID: "css",
		Text:       ".btn { color: red; }",
	}

	analysis, err := s.Analyze(context.Background(), doc)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !analysis.SyntaxValid {
		t.Error("Expected valid stylesheet")
	}
}

func TestExtensionTakesPrecedenceOverLanguageID(t *testing.T) {
	s := newService()
	doc := Document{
		Path:       "module.py",
		LanguageID: "javascript",
		Text:       "import os\n",
	}

	deps, err := s.Dependencies(context.Background(), doc)
	if err != nil {
		t.Fatalf("Dependencies failed: %v", err)
	}
	if len(deps) != 1 || deps[0] != "os" {
		t.Errorf("Expected python handler to win, got %v", deps)
	}
}

func TestUnsupportedDocument(t *testing.T) {
	s := newService()
	doc := Document{Path: "main.go", LanguageID: "go", Text: "package main"}

	_, err := s.Analyze(context.Background(), doc)
	if err == nil {
		t.Fatal("Expected error for unsupported document")
	}
	if !errors.IsCode(err, errors.CodeNotSupported) {
		t.Errorf("Expected NOT_SUPPORTED, got %v", err)
	}
}

func TestFileStructureOutline(t *testing.T) {
	s := newService()
	doc := Document{
		Path: "app.ts",
		Text: "class App {\n  constructor() {}\n}\n",
	}

	nodes, err := s.FileStructure(context.Background(), doc)
	if err != nil {
		t.Fatalf("FileStructure failed: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("Expected 1 outline node, got %v", nodes)
	}
	n := nodes[0]
	if n.Type != "class" || n.Name != "App" {
		t.Errorf("Unexpected node: %+v", n)
	}
	if n.Range.Start.Line != 0 || n.Range.End.Line != 2 {
		t.Errorf("Unexpected range: %+v", n.Range)
	}
}

func TestCancelledContext(t *testing.T) {
	s := newService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Imports(ctx, Document{Path: "a.py", Text: "import os\n"}); err == nil {
		t.Error("Expected context error from Imports")
	}
	if _, err := s.Analyze(ctx, Document{Path: "a.py", Text: "import os\n"}); err == nil {
		t.Error("Expected context error from Analyze")
	}
}

func TestFormat(t *testing.T) {
	s := newService()
	doc := Document{Path: "a.ts", Text: "function f() {\nreturn 1;\n}"}

	got, err := s.Format(context.Background(), doc)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if got != "function f() {\n  return 1;\n}" {
		t.Errorf("Unexpected formatting: %q", got)
	}
}
