package lang

import (
	"fmt"
	"log/slog"
	"strings"
)

// JavaScriptHandler analyzes .js/.jsx/.mjs sources through the JavaScript
// grammar. Unlike TypeScript it counts logical && / || toward complexity and
// validates that the file exports something.
type JavaScriptHandler struct {
	base
}

func NewJavaScriptHandler(logger *slog.Logger) *JavaScriptHandler {
	desc := Descriptor{
		LanguageID:       "javascript",
		Extensions:       []string{".js", ".jsx", ".mjs"},
		ImportPatterns:   javascriptPatterns.Imports,
		FunctionPatterns: javascriptPatterns.Functions,
		ClassPatterns:    javascriptPatterns.Classes,
		BlockPatterns:    javascriptPatterns.Blocks,
	}
	return &JavaScriptHandler{base: newBase(desc, javascriptGrammar(), logger)}
}

func (h *JavaScriptHandler) AnalyzeImports(text string) []string {
	return h.scanImports(text)
}

func (h *JavaScriptHandler) AnalyzeDependencies(text string) []string {
	tree := h.parse(text)
	if tree == nil {
		return nil
	}
	defer tree.Close()
	return scriptDependencies(tree.RootNode(), []byte(text))
}

func (h *JavaScriptHandler) AnalyzeFunctions(text string) []FunctionInfo {
	tree := h.parse(text)
	if tree == nil {
		return nil
	}
	defer tree.Close()
	return scriptFunctions(tree.RootNode(), []byte(text), true)
}

func (h *JavaScriptHandler) AnalyzeStructure(text string) []StructureNode {
	tree := h.parse(text)
	if tree == nil {
		return nil
	}
	defer tree.Close()
	return scriptStructure(tree.RootNode(), []byte(text))
}

func (h *JavaScriptHandler) DetectSyntaxErrors(text string) []Diagnostic {
	return h.treeDiagnostics(text)
}

func (h *JavaScriptHandler) GenerateImports(deps []string) string {
	lines := make([]string, 0, len(deps))
	for _, dep := range deps {
		lines = append(lines, fmt.Sprintf("import %s from '%s';", deriveImportName(dep), dep))
	}
	return strings.Join(lines, "\n")
}

func (h *JavaScriptHandler) GenerateFunction(name string, params []string, returnType, body string) string {
	// JavaScript has no return type annotations; the argument is accepted
	// for contract uniformity and ignored.
	_ = returnType
	signature := fmt.Sprintf("function %s(%s)", name, strings.Join(params, ", "))
	if strings.TrimSpace(body) == "" {
		return signature + " {\n}"
	}
	return signature + " {\n" + indentBlock(body, "  ") + "\n}"
}

func (h *JavaScriptHandler) GenerateClass(name string, properties, methods []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "class %s {\n", name)
	b.WriteString("  constructor() {\n")
	for _, prop := range properties {
		fmt.Fprintf(&b, "    this.%s = null;\n", prop)
	}
	b.WriteString("  }\n")
	for _, method := range methods {
		fmt.Fprintf(&b, "\n  %s() {\n  }\n", method)
	}
	b.WriteString("}")
	return b.String()
}

func (h *JavaScriptHandler) ValidateSyntax(text string) bool {
	return h.parsesClean(text)
}

func (h *JavaScriptHandler) ValidateImports(text string) bool {
	tree := h.parse(text)
	if tree == nil {
		return false
	}
	defer tree.Close()
	return scriptImportsUsed(tree.RootNode(), []byte(text))
}

// ValidateStructure requires at least one export, default or named.
func (h *JavaScriptHandler) ValidateStructure(text string) bool {
	tree := h.parse(text)
	if tree == nil {
		return false
	}
	defer tree.Close()
	return scriptHasExport(tree.RootNode())
}

func (h *JavaScriptHandler) FormatCode(text string) string {
	return reindentBraces(text, "  ")
}

func (h *JavaScriptHandler) InjectImports(text string, deps []string) string {
	missing := missingDeps(deps, h.AnalyzeDependencies(text))
	if len(missing) == 0 {
		return text
	}
	return insertAfterImports(text, h.GenerateImports(missing), h.desc.ImportPatterns)
}

func (h *JavaScriptHandler) WrapInFunction(text, name string) string {
	return fmt.Sprintf("function %s() {\n%s\n}", name, indentBlock(text, "  "))
}
