package lang

import (
	"fmt"
	"log/slog"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// CSSHandler analyzes stylesheets (plain CSS, SCSS, LESS) through the CSS
// grammar. SCSS constructs the grammar does not know (@use, @mixin) surface
// as generic at-rules and are handled by keyword.
type CSSHandler struct {
	base
}

func NewCSSHandler(logger *slog.Logger) *CSSHandler {
	desc := Descriptor{
		LanguageID:       "css",
		Extensions:       []string{".css", ".scss", ".less"},
		ImportPatterns:   cssPatterns.Imports,
		FunctionPatterns: cssPatterns.Functions,
		ClassPatterns:    cssPatterns.Classes,
		BlockPatterns:    cssPatterns.Blocks,
	}
	return &CSSHandler{base: newBase(desc, cssGrammar(), logger)}
}

func (h *CSSHandler) AnalyzeImports(text string) []string {
	return h.scanImports(text)
}

func (h *CSSHandler) AnalyzeDependencies(text string) []string {
	tree := h.parse(text)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	source := []byte(text)
	var deps []string
	walkTree(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Kind() {
		case "import_statement":
			if spec := cssImportArgument(node, source); spec != "" {
				deps = append(deps, spec)
			}
			return false
		case "at_rule":
			keyword := nodeText(source, childOfKind(node, "at_keyword"))
			if keyword == "@use" || keyword == "@import" {
				if spec := cssImportArgument(node, source); spec != "" {
					deps = append(deps, spec)
				}
				return false
			}
		}
		return true
	})
	return dedupe(deps)
}

// cssImportArgument returns the first string-literal (or url()) argument of
// an import-like at-rule.
func cssImportArgument(node *sitter.Node, source []byte) string {
	if str := descendantOfKind(node, "string_value"); str != nil {
		return trimQuoted(nodeText(source, str))
	}
	if call := descendantOfKind(node, "call_expression"); call != nil {
		if args := descendantOfKind(call, "arguments"); args != nil {
			for i := uint(0); i < args.NamedChildCount(); i++ {
				arg := args.NamedChild(i)
				if value := trimQuoted(nodeText(source, arg)); value != "" {
					return value
				}
			}
		}
	}
	return ""
}

// AnalyzeFunctions reports @mixin and @function blocks; complexity grows by
// one per rule nested inside the body.
func (h *CSSHandler) AnalyzeFunctions(text string) []FunctionInfo {
	tree := h.parse(text)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	source := []byte(text)
	var funcs []FunctionInfo
	walkTree(tree.RootNode(), func(node *sitter.Node) bool {
		if node.Kind() != "at_rule" {
			return true
		}
		header := cssFirstLine(nodeText(source, node))
		for _, pattern := range h.desc.FunctionPatterns {
			m := pattern.FindStringSubmatch(header)
			if m == nil {
				continue
			}
			fn := FunctionInfo{Name: m[1], Complexity: 1}
			if len(m) > 2 && m[2] != "" {
				for _, param := range strings.Split(m[2], ",") {
					param = strings.TrimSpace(param)
					if param != "" {
						fn.Params = append(fn.Params, param)
					}
				}
			}
			fn.Complexity += countDescendantsOfKind(childOfKind(node, "block"), "rule_set")
			funcs = append(funcs, fn)
			break
		}
		return false
	})
	return funcs
}

func (h *CSSHandler) AnalyzeStructure(text string) []StructureNode {
	tree := h.parse(text)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	source := []byte(text)
	var nodes []StructureNode
	walkTree(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Kind() {
		case "rule_set":
			nodes = append(nodes, StructureNode{
				Kind:      KindOther,
				Name:      strings.TrimSpace(nodeText(source, childOfKind(node, "selectors"))),
				StartLine: startLine(node),
				EndLine:   endLine(node),
			})
		case "media_statement", "keyframes_statement", "supports_statement":
			nodes = append(nodes, StructureNode{
				Kind:      KindOther,
				Name:      cssFirstLine(nodeText(source, node)),
				StartLine: startLine(node),
				EndLine:   endLine(node),
			})
		case "at_rule":
			header := cssFirstLine(nodeText(source, node))
			for _, pattern := range h.desc.FunctionPatterns {
				if m := pattern.FindStringSubmatch(header); m != nil {
					nodes = append(nodes, StructureNode{
						Kind:      KindFunction,
						Name:      m[1],
						StartLine: startLine(node),
						EndLine:   endLine(node),
					})
					break
				}
			}
		case "declaration":
			name := nodeText(source, childOfKind(node, "property_name"))
			if strings.HasPrefix(name, "--") || strings.HasPrefix(name, "$") {
				nodes = append(nodes, StructureNode{
					Kind:      KindVariable,
					Name:      name,
					StartLine: startLine(node),
					EndLine:   endLine(node),
				})
			}
		}
		return true
	})
	return nodes
}

func cssFirstLine(text string) string {
	line := text
	if idx := strings.IndexAny(line, "{\n"); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}

func (h *CSSHandler) DetectSyntaxErrors(text string) []Diagnostic {
	return h.treeDiagnostics(text)
}

func (h *CSSHandler) GenerateImports(deps []string) string {
	lines := make([]string, 0, len(deps))
	for _, dep := range deps {
		lines = append(lines, fmt.Sprintf("@import '%s';", dep))
	}
	return strings.Join(lines, "\n")
}

// GenerateFunction renders a mixin, or an SCSS function returning body when
// a return type is requested.
func (h *CSSHandler) GenerateFunction(name string, params []string, returnType, body string) string {
	paramList := ""
	if len(params) > 0 {
		paramList = "(" + strings.Join(params, ", ") + ")"
	}
	if returnType != "" {
		return fmt.Sprintf("@function %s%s {\n  @return %s;\n}", name, paramList, body)
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Sprintf("@mixin %s%s {\n}", name, paramList)
	}
	return fmt.Sprintf("@mixin %s%s {\n%s\n}", name, paramList, indentBlock(body, "  "))
}

// GenerateClass renders a flat class selector; methods become companion
// modifier rules because nesting is not allowed.
func (h *CSSHandler) GenerateClass(name string, properties, methods []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, ".%s {\n", name)
	for _, prop := range properties {
		fmt.Fprintf(&b, "  %s;\n", strings.TrimRight(prop, ";"))
	}
	b.WriteString("}")
	for _, method := range methods {
		fmt.Fprintf(&b, "\n\n.%s--%s {\n}", name, method)
	}
	return b.String()
}

func (h *CSSHandler) ValidateSyntax(text string) bool {
	return h.parsesClean(text)
}

// ValidateImports requires all @import/@use statements to precede any other
// statement; blank lines and comments are ignored. Comments are stripped with
// block-comment state carried across lines, so multi-line headers do not
// count as statements.
func (h *CSSHandler) ValidateImports(text string) bool {
	seenOther := false
	for _, line := range strings.Split(cssStripComments(text), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		isImport := strings.HasPrefix(trimmed, "@import") || strings.HasPrefix(trimmed, "@use")
		if isImport && seenOther {
			return false
		}
		if !isImport {
			seenOther = true
		}
	}
	return true
}

// cssStripComments removes /* */ blocks (which may span lines) and // line
// comments while keeping the line structure intact.
func cssStripComments(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, len(lines))
	inBlock := false
	for i, line := range lines {
		var b strings.Builder
		j := 0
		for j < len(line) {
			if inBlock {
				end := strings.Index(line[j:], "*/")
				if end < 0 {
					j = len(line)
					break
				}
				j += end + 2
				inBlock = false
				continue
			}
			if strings.HasPrefix(line[j:], "/*") {
				inBlock = true
				j += 2
				continue
			}
			if strings.HasPrefix(line[j:], "//") {
				break
			}
			b.WriteByte(line[j])
			j++
		}
		out[i] = b.String()
	}
	return strings.Join(out, "\n")
}

// ValidateStructure rejects rules nested inside other rules: only flat CSS
// is considered structurally valid.
func (h *CSSHandler) ValidateStructure(text string) bool {
	tree := h.parse(text)
	if tree == nil {
		return false
	}
	defer tree.Close()

	flat := true
	walkTree(tree.RootNode(), func(node *sitter.Node) bool {
		if node.Kind() != "rule_set" {
			return true
		}
		if descendantOfKind(childOfKind(node, "block"), "rule_set") != nil {
			flat = false
		}
		return false
	})
	return flat
}

func (h *CSSHandler) FormatCode(text string) string {
	return reindentBraces(text, "  ")
}

func (h *CSSHandler) InjectImports(text string, deps []string) string {
	missing := missingDeps(deps, h.AnalyzeDependencies(text))
	if len(missing) == 0 {
		return text
	}
	return insertAfterImports(text, h.GenerateImports(missing), h.desc.ImportPatterns)
}

func (h *CSSHandler) WrapInFunction(text, name string) string {
	if strings.TrimSpace(text) == "" {
		return fmt.Sprintf("@mixin %s {\n}", name)
	}
	return fmt.Sprintf("@mixin %s {\n%s\n}", name, indentBlock(text, "  "))
}
