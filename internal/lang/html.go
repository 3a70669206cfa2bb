package lang

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// HTMLHandler analyzes documents through the HTML grammar. Script blocks are
// analyzed textually: the grammar treats their contents as raw text.
type HTMLHandler struct {
	base
}

var (
	htmlBranchRes = []*regexp.Regexp{
		regexp.MustCompile(`\bif\s*\(`),
		regexp.MustCompile(`\bfor\s*\(`),
		regexp.MustCompile(`\bwhile\s*\(`),
		regexp.MustCompile(`\bswitch\s*\(`),
		regexp.MustCompile(`\?[^?.:]`),
	}
	htmlVoidTags = map[string]bool{
		"area": true, "base": true, "br": true, "col": true, "embed": true,
		"hr": true, "img": true, "input": true, "link": true, "meta": true,
		"param": true, "source": true, "track": true, "wbr": true,
	}
	htmlOpenTagRe  = regexp.MustCompile(`<([a-zA-Z][\w-]*)`)
	htmlCloseTagRe = regexp.MustCompile(`</([a-zA-Z][\w-]*)`)
)

func NewHTMLHandler(logger *slog.Logger) *HTMLHandler {
	desc := Descriptor{
		LanguageID:       "html",
		Extensions:       []string{".html", ".htm"},
		ImportPatterns:   htmlPatterns.Imports,
		FunctionPatterns: htmlPatterns.Functions,
		ClassPatterns:    htmlPatterns.Classes,
		BlockPatterns:    htmlPatterns.Blocks,
	}
	return &HTMLHandler{base: newBase(desc, htmlGrammar(), logger)}
}

// htmlTag reads the tag name and attributes from an element-like node.
func htmlTag(node *sitter.Node, source []byte) (string, map[string]string) {
	tag := childOfKind(node, "start_tag")
	if tag == nil {
		tag = childOfKind(node, "self_closing_tag")
	}
	if tag == nil {
		return "", nil
	}
	name := strings.ToLower(nodeText(source, childOfKind(tag, "tag_name")))
	attrs := make(map[string]string)
	for i := uint(0); i < tag.ChildCount(); i++ {
		child := tag.Child(i)
		if child.Kind() != "attribute" {
			continue
		}
		key := strings.ToLower(nodeText(source, childOfKind(child, "attribute_name")))
		value := ""
		if quoted := childOfKind(child, "quoted_attribute_value"); quoted != nil {
			value = nodeText(source, childOfKind(quoted, "attribute_value"))
		} else if raw := childOfKind(child, "attribute_value"); raw != nil {
			value = nodeText(source, raw)
		}
		attrs[key] = value
	}
	return name, attrs
}

func (h *HTMLHandler) AnalyzeImports(text string) []string {
	return h.scanImports(text)
}

// AnalyzeDependencies queries the document for stylesheet links, script
// sources and image sources.
func (h *HTMLHandler) AnalyzeDependencies(text string) []string {
	tree := h.parse(text)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	source := []byte(text)
	var deps []string
	walkTree(tree.RootNode(), func(node *sitter.Node) bool {
		kind := node.Kind()
		if kind != "element" && kind != "script_element" {
			return true
		}
		name, attrs := htmlTag(node, source)
		switch name {
		case "link":
			if attrs["rel"] == "stylesheet" && attrs["href"] != "" {
				deps = append(deps, attrs["href"])
			}
		case "script", "img":
			if attrs["src"] != "" {
				deps = append(deps, attrs["src"])
			}
		}
		return true
	})
	return dedupe(deps)
}

// AnalyzeFunctions scans each script block's text; complexity is the branch
// count of the enclosing block, base 1.
func (h *HTMLHandler) AnalyzeFunctions(text string) []FunctionInfo {
	tree := h.parse(text)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	source := []byte(text)
	var funcs []FunctionInfo
	walkTree(tree.RootNode(), func(node *sitter.Node) bool {
		if node.Kind() != "script_element" {
			return true
		}
		block := nodeText(source, childOfKind(node, "raw_text"))
		complexity := 1
		for _, branch := range htmlBranchRes {
			complexity += len(branch.FindAllStringIndex(block, -1))
		}
		for _, pattern := range h.desc.FunctionPatterns {
			for _, m := range pattern.FindAllStringSubmatch(block, -1) {
				fn := FunctionInfo{Name: m[1], Complexity: complexity}
				if len(m) > 2 {
					for _, param := range strings.Split(m[2], ",") {
						param = strings.TrimSpace(param)
						if param != "" {
							fn.Params = append(fn.Params, param)
						}
					}
				}
				funcs = append(funcs, fn)
			}
		}
		return false
	})
	return funcs
}

// AnalyzeStructure yields one node per element, labeled by tag name and #id
// when present; script and style blocks get their own labels.
func (h *HTMLHandler) AnalyzeStructure(text string) []StructureNode {
	tree := h.parse(text)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	source := []byte(text)
	var nodes []StructureNode
	walkTree(tree.RootNode(), func(node *sitter.Node) bool {
		var name string
		switch node.Kind() {
		case "element":
			tag, attrs := htmlTag(node, source)
			if tag == "" {
				return true
			}
			name = tag
			if id := attrs["id"]; id != "" {
				name += "#" + id
			}
		case "script_element":
			name = "script"
		case "style_element":
			name = "style"
		default:
			return true
		}
		nodes = append(nodes, StructureNode{
			Kind:      KindOther,
			Name:      name,
			StartLine: startLine(node),
			EndLine:   endLine(node),
		})
		return true
	})
	return nodes
}

func (h *HTMLHandler) DetectSyntaxErrors(text string) []Diagnostic {
	diags := h.treeDiagnostics(text)

	tree := h.parse(text)
	if tree == nil {
		return diags
	}
	defer tree.Close()
	source := []byte(text)
	walkTree(tree.RootNode(), func(node *sitter.Node) bool {
		if node.Kind() == "erroneous_end_tag" {
			diags = append(diags, Diagnostic{
				Line:    startLine(node),
				Column:  int(node.StartPosition().Column),
				Message: "mismatched closing tag " + strings.TrimSpace(nodeText(source, node)),
			})
		}
		return true
	})
	return diags
}

// GenerateImports renders one element per dependency, chosen by extension.
func (h *HTMLHandler) GenerateImports(deps []string) string {
	lines := make([]string, 0, len(deps))
	for _, dep := range deps {
		lines = append(lines, htmlImportElement(dep))
	}
	return strings.Join(lines, "\n")
}

func htmlImportElement(dep string) string {
	lower := strings.ToLower(dep)
	switch {
	case strings.HasSuffix(lower, ".js") || strings.HasSuffix(lower, ".mjs"):
		return fmt.Sprintf(`<script src="%s"></script>`, dep)
	case strings.HasSuffix(lower, ".png") || strings.HasSuffix(lower, ".jpg") ||
		strings.HasSuffix(lower, ".jpeg") || strings.HasSuffix(lower, ".gif") ||
		strings.HasSuffix(lower, ".svg"):
		return fmt.Sprintf(`<img src="%s">`, dep)
	default:
		return fmt.Sprintf(`<link rel="stylesheet" href="%s">`, dep)
	}
}

func (h *HTMLHandler) GenerateFunction(name string, params []string, returnType, body string) string {
	_ = returnType
	inner := fmt.Sprintf("function %s(%s) {\n%s\n}", name, strings.Join(params, ", "), indentBlock(body, "  "))
	if strings.TrimSpace(body) == "" {
		inner = fmt.Sprintf("function %s(%s) {\n}", name, strings.Join(params, ", "))
	}
	return "<script>\n" + inner + "\n</script>"
}

func (h *HTMLHandler) GenerateClass(name string, properties, methods []string) string {
	var b strings.Builder
	b.WriteString("<script>\n")
	fmt.Fprintf(&b, "class %s {\n", name)
	b.WriteString("  constructor() {\n")
	for _, prop := range properties {
		fmt.Fprintf(&b, "    this.%s = null;\n", prop)
	}
	b.WriteString("  }\n")
	for _, method := range methods {
		fmt.Fprintf(&b, "\n  %s() {\n  }\n", method)
	}
	b.WriteString("}\n</script>")
	return b.String()
}

func (h *HTMLHandler) ValidateSyntax(text string) bool {
	tree := h.parse(text)
	if tree == nil {
		return false
	}
	defer tree.Close()
	if tree.RootNode().HasError() {
		return false
	}
	clean := true
	walkTree(tree.RootNode(), func(node *sitter.Node) bool {
		if node.Kind() == "erroneous_end_tag" {
			clean = false
		}
		return clean
	})
	return clean
}

// ValidateImports requires stylesheet links to live inside <head>.
func (h *HTMLHandler) ValidateImports(text string) bool {
	tree := h.parse(text)
	if tree == nil {
		return false
	}
	defer tree.Close()
	return htmlLinksInHead(tree.RootNode(), []byte(text), false)
}

func htmlLinksInHead(node *sitter.Node, source []byte, inHead bool) bool {
	if node == nil {
		return true
	}
	if node.Kind() == "element" {
		name, attrs := htmlTag(node, source)
		if name == "link" && attrs["rel"] == "stylesheet" && !inHead {
			return false
		}
		if name == "head" {
			inHead = true
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if !htmlLinksInHead(node.Child(i), source, inHead) {
			return false
		}
	}
	return true
}

// ValidateStructure requires the document skeleton: html, head, body, title.
func (h *HTMLHandler) ValidateStructure(text string) bool {
	tree := h.parse(text)
	if tree == nil {
		return false
	}
	defer tree.Close()

	source := []byte(text)
	seen := make(map[string]bool)
	walkTree(tree.RootNode(), func(node *sitter.Node) bool {
		if node.Kind() == "element" {
			name, _ := htmlTag(node, source)
			seen[name] = true
		}
		return true
	})
	return seen["html"] && seen["head"] && seen["body"] && seen["title"]
}

// FormatCode reindents by tag depth, best-effort.
func (h *HTMLHandler) FormatCode(text string) string {
	lines := strings.Split(text, "\n")
	depth := 0
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			out = append(out, "")
			continue
		}
		if strings.HasPrefix(trimmed, "</") && depth > 0 {
			depth--
		}
		out = append(out, strings.Repeat("  ", depth)+trimmed)
		depth += htmlDepthDelta(trimmed)
		if depth < 0 {
			depth = 0
		}
	}
	return strings.Join(out, "\n")
}

func htmlDepthDelta(line string) int {
	opens := 0
	for _, m := range htmlOpenTagRe.FindAllStringSubmatch(line, -1) {
		tag := strings.ToLower(m[1])
		if !htmlVoidTags[tag] {
			opens++
		}
	}
	closes := len(htmlCloseTagRe.FindAllString(line, -1))
	selfClosing := strings.Count(line, "/>")
	delta := opens - closes - selfClosing
	// The leading close tag was already applied by the caller.
	if strings.HasPrefix(line, "</") {
		delta++
	}
	return delta
}

// InjectImports places missing link elements in <head> and missing script
// elements at the end of <body>.
func (h *HTMLHandler) InjectImports(text string, deps []string) string {
	missing := missingDeps(deps, h.AnalyzeDependencies(text))
	if len(missing) == 0 {
		return text
	}

	var headLines, bodyLines []string
	for _, dep := range missing {
		element := htmlImportElement(dep)
		if strings.HasPrefix(element, "<script") {
			bodyLines = append(bodyLines, element)
		} else {
			headLines = append(headLines, element)
		}
	}

	out := text
	if len(headLines) > 0 {
		out = htmlInsertBefore(out, "</head>", strings.Join(headLines, "\n"))
	}
	if len(bodyLines) > 0 {
		out = htmlInsertBefore(out, "</body>", strings.Join(bodyLines, "\n"))
	}
	return out
}

// htmlInsertBefore inserts block on its own lines before the first
// case-insensitive occurrence of marker, or appends when missing.
func htmlInsertBefore(text, marker, block string) string {
	idx := strings.Index(strings.ToLower(text), marker)
	if idx < 0 {
		if strings.HasSuffix(text, "\n") {
			return text + block + "\n"
		}
		return text + "\n" + block
	}
	return text[:idx] + block + "\n" + text[idx:]
}

func (h *HTMLHandler) WrapInFunction(text, name string) string {
	if strings.TrimSpace(text) == "" {
		return fmt.Sprintf("<script>\nfunction %s() {\n}\n</script>", name)
	}
	return fmt.Sprintf("<script>\nfunction %s() {\n%s\n}\n</script>", name, indentBlock(text, "  "))
}
