package lang

import (
	"fmt"
	"log/slog"
	"strings"
)

// TypeScriptHandler analyzes .ts/.tsx sources through the TypeScript grammar.
type TypeScriptHandler struct {
	base
}

func NewTypeScriptHandler(logger *slog.Logger) *TypeScriptHandler {
	desc := Descriptor{
		LanguageID:       "typescript",
		Extensions:       []string{".ts", ".tsx"},
		ImportPatterns:   typescriptPatterns.Imports,
		FunctionPatterns: typescriptPatterns.Functions,
		ClassPatterns:    typescriptPatterns.Classes,
		BlockPatterns:    typescriptPatterns.Blocks,
	}
	return &TypeScriptHandler{base: newBase(desc, typescriptGrammar(), logger)}
}

func (h *TypeScriptHandler) AnalyzeImports(text string) []string {
	return h.scanImports(text)
}

func (h *TypeScriptHandler) AnalyzeDependencies(text string) []string {
	tree := h.parse(text)
	if tree == nil {
		return nil
	}
	defer tree.Close()
	return scriptDependencies(tree.RootNode(), []byte(text))
}

func (h *TypeScriptHandler) AnalyzeFunctions(text string) []FunctionInfo {
	tree := h.parse(text)
	if tree == nil {
		return nil
	}
	defer tree.Close()
	return scriptFunctions(tree.RootNode(), []byte(text), false)
}

func (h *TypeScriptHandler) AnalyzeStructure(text string) []StructureNode {
	tree := h.parse(text)
	if tree == nil {
		return nil
	}
	defer tree.Close()
	return scriptStructure(tree.RootNode(), []byte(text))
}

func (h *TypeScriptHandler) DetectSyntaxErrors(text string) []Diagnostic {
	return h.treeDiagnostics(text)
}

func (h *TypeScriptHandler) GenerateImports(deps []string) string {
	lines := make([]string, 0, len(deps))
	for _, dep := range deps {
		lines = append(lines, fmt.Sprintf("import %s from '%s';", deriveImportName(dep), dep))
	}
	return strings.Join(lines, "\n")
}

func (h *TypeScriptHandler) GenerateFunction(name string, params []string, returnType, body string) string {
	signature := fmt.Sprintf("function %s(%s)", name, strings.Join(params, ", "))
	if returnType != "" {
		signature += ": " + returnType
	}
	if strings.TrimSpace(body) == "" {
		return signature + " {\n}"
	}
	return signature + " {\n" + indentBlock(body, "  ") + "\n}"
}

func (h *TypeScriptHandler) GenerateClass(name string, properties, methods []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "class %s {\n", name)
	for _, prop := range properties {
		fmt.Fprintf(&b, "  %s;\n", prop)
	}
	if len(properties) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("  constructor() {\n  }\n")
	for _, method := range methods {
		fmt.Fprintf(&b, "\n  %s() {\n  }\n", method)
	}
	b.WriteString("}")
	return b.String()
}

func (h *TypeScriptHandler) ValidateSyntax(text string) bool {
	return h.parsesClean(text)
}

func (h *TypeScriptHandler) ValidateImports(text string) bool {
	tree := h.parse(text)
	if tree == nil {
		return false
	}
	defer tree.Close()
	return scriptImportsUsed(tree.RootNode(), []byte(text))
}

// ValidateStructure requires every class to declare a constructor.
func (h *TypeScriptHandler) ValidateStructure(text string) bool {
	tree := h.parse(text)
	if tree == nil {
		return false
	}
	defer tree.Close()
	return scriptClassesHaveConstructors(tree.RootNode(), []byte(text))
}

func (h *TypeScriptHandler) FormatCode(text string) string {
	return reindentBraces(text, "  ")
}

func (h *TypeScriptHandler) InjectImports(text string, deps []string) string {
	missing := missingDeps(deps, h.AnalyzeDependencies(text))
	if len(missing) == 0 {
		return text
	}
	return insertAfterImports(text, h.GenerateImports(missing), h.desc.ImportPatterns)
}

func (h *TypeScriptHandler) WrapInFunction(text, name string) string {
	return fmt.Sprintf("function %s() {\n%s\n}", name, indentBlock(text, "  "))
}
