package lang

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// PythonHandler is the pattern-only handler: it has no grammar and analyzes
// sources by line scanning and indentation. Its syntax checks are heuristic
// and may both miss and over-report errors.
type PythonHandler struct {
	base
}

var (
	pythonDefRe     = regexp.MustCompile(`^(\s*)def\s+(\w+)\s*\(([^)]*)\)\s*(?:->\s*([^:]+?)\s*)?:`)
	pythonClassRe   = regexp.MustCompile(`^(\s*)class\s+(\w+)`)
	pythonAssignRe  = regexp.MustCompile(`^(\w+)\s*=[^=]`)
	pythonInitRe    = regexp.MustCompile(`^\s*def\s+__init__\s*\(`)
	pythonBranchRes = []*regexp.Regexp{
		regexp.MustCompile(`\bif\b`),
		regexp.MustCompile(`\belif\b`),
		regexp.MustCompile(`\bfor\b`),
		regexp.MustCompile(`\bwhile\b`),
		regexp.MustCompile(`\band\b`),
		regexp.MustCompile(`\bor\b`),
	}
)

func NewPythonHandler(logger *slog.Logger) *PythonHandler {
	desc := Descriptor{
		LanguageID:       "python",
		Extensions:       []string{".py"},
		ImportPatterns:   pythonPatterns.Imports,
		FunctionPatterns: pythonPatterns.Functions,
		ClassPatterns:    pythonPatterns.Classes,
		BlockPatterns:    pythonPatterns.Blocks,
	}
	return &PythonHandler{base: newBase(desc, nil, logger)}
}

func (h *PythonHandler) AnalyzeImports(text string) []string {
	return h.scanImports(text)
}

// AnalyzeDependencies line-scans import statements and keeps the top-level
// module name before the first dot. Relative imports resolve to no module.
func (h *PythonHandler) AnalyzeDependencies(text string) []string {
	var deps []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "import "):
			rest := strings.TrimPrefix(trimmed, "import ")
			for _, part := range strings.Split(rest, ",") {
				name := strings.TrimSpace(part)
				if idx := strings.Index(name, " as "); idx >= 0 {
					name = name[:idx]
				}
				deps = append(deps, topLevelModule(name))
			}
		case strings.HasPrefix(trimmed, "from "):
			rest := strings.TrimPrefix(trimmed, "from ")
			fields := strings.Fields(rest)
			if len(fields) > 0 {
				deps = append(deps, topLevelModule(fields[0]))
			}
		}
	}
	return dedupe(deps)
}

func topLevelModule(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimLeft(name, ".")
	if idx := strings.Index(name, "."); idx >= 0 {
		name = name[:idx]
	}
	return name
}

func (h *PythonHandler) AnalyzeFunctions(text string) []FunctionInfo {
	lines := strings.Split(text, "\n")
	var funcs []FunctionInfo
	for i, line := range lines {
		m := pythonDefRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		fn := FunctionInfo{
			Name:       m[2],
			ReturnType: strings.TrimSpace(m[4]),
			Complexity: 1,
		}
		for _, param := range strings.Split(m[3], ",") {
			param = strings.TrimSpace(param)
			if param != "" {
				fn.Params = append(fn.Params, param)
			}
		}
		end := pythonBlockEnd(lines, i)
		for _, bodyLine := range lines[i+1 : end+1] {
			for _, branch := range pythonBranchRes {
				fn.Complexity += len(branch.FindAllStringIndex(bodyLine, -1))
			}
		}
		funcs = append(funcs, fn)
	}
	return funcs
}

func (h *PythonHandler) AnalyzeStructure(text string) []StructureNode {
	lines := strings.Split(text, "\n")
	var nodes []StructureNode
	for i, line := range lines {
		if m := pythonClassRe.FindStringSubmatch(line); m != nil {
			nodes = append(nodes, StructureNode{
				Kind: KindClass, Name: m[2], StartLine: i, EndLine: pythonBlockEnd(lines, i),
			})
			continue
		}
		if m := pythonDefRe.FindStringSubmatch(line); m != nil {
			nodes = append(nodes, StructureNode{
				Kind: KindFunction, Name: m[2], StartLine: i, EndLine: pythonBlockEnd(lines, i),
			})
			continue
		}
		if m := pythonAssignRe.FindStringSubmatch(line); m != nil {
			nodes = append(nodes, StructureNode{
				Kind: KindVariable, Name: m[1], StartLine: i, EndLine: i,
			})
		}
	}
	return nodes
}

// pythonBlockEnd returns the zero-based last line of the block opened at
// start: the block runs until the first subsequent non-blank line whose
// indentation is at or below the starting line's.
func pythonBlockEnd(lines []string, start int) int {
	startIndent := pythonIndent(lines[start])
	end := start
	for i := start + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		if pythonIndent(lines[i]) <= startIndent {
			break
		}
		end = i
	}
	return end
}

func pythonIndent(line string) int {
	indent := 0
	for _, r := range line {
		switch r {
		case ' ':
			indent++
		case '\t':
			indent += 4
		default:
			return indent
		}
	}
	return indent
}

// DetectSyntaxErrors runs the heuristic checks: def/class lines must end with
// a colon, brackets must balance, and dedents must return to a known level.
func (h *PythonHandler) DetectSyntaxErrors(text string) []Diagnostic {
	lines := strings.Split(text, "\n")
	var diags []Diagnostic

	depth := 0
	indents := []int{0}
	for i, line := range lines {
		code := line
		if idx := strings.Index(code, "#"); idx >= 0 {
			code = code[:idx]
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}

		if depth == 0 {
			indent := pythonIndent(line)
			top := indents[len(indents)-1]
			if indent > top {
				indents = append(indents, indent)
			} else if indent < top {
				for len(indents) > 1 && indents[len(indents)-1] > indent {
					indents = indents[:len(indents)-1]
				}
				if indents[len(indents)-1] != indent {
					diags = append(diags, Diagnostic{
						Line:    i,
						Message: "unindent does not match any outer indentation level",
					})
					indents = append(indents, indent)
				}
			}

			if strings.HasPrefix(trimmed, "def ") || strings.HasPrefix(trimmed, "class ") {
				balanced := strings.Count(trimmed, "(") == strings.Count(trimmed, ")")
				if balanced && !strings.HasSuffix(trimmed, ":") {
					diags = append(diags, Diagnostic{
						Line:    i,
						Message: "expected ':' at end of definition",
					})
				}
			}
		}

		depth += strings.Count(code, "(") + strings.Count(code, "[") + strings.Count(code, "{")
		depth -= strings.Count(code, ")") + strings.Count(code, "]") + strings.Count(code, "}")
		if depth < 0 {
			diags = append(diags, Diagnostic{Line: i, Message: "unbalanced closing bracket"})
			depth = 0
		}
	}
	if depth > 0 {
		diags = append(diags, Diagnostic{Line: len(lines) - 1, Message: "unclosed bracket"})
	}
	return diags
}

func (h *PythonHandler) GenerateImports(deps []string) string {
	lines := make([]string, 0, len(deps))
	for _, dep := range deps {
		lines = append(lines, "import "+dep)
	}
	return strings.Join(lines, "\n")
}

func (h *PythonHandler) GenerateFunction(name string, params []string, returnType, body string) string {
	signature := fmt.Sprintf("def %s(%s)", name, strings.Join(params, ", "))
	if returnType != "" {
		signature += " -> " + returnType
	}
	if strings.TrimSpace(body) == "" {
		return signature + ":\n    pass"
	}
	return signature + ":\n" + indentBlock(body, "    ")
}

func (h *PythonHandler) GenerateClass(name string, properties, methods []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "class %s:\n", name)
	b.WriteString("    def __init__(self):\n")
	if len(properties) == 0 {
		b.WriteString("        pass\n")
	}
	for _, prop := range properties {
		fmt.Fprintf(&b, "        self.%s = None\n", prop)
	}
	for _, method := range methods {
		fmt.Fprintf(&b, "\n    def %s(self):\n        pass\n", method)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (h *PythonHandler) ValidateSyntax(text string) bool {
	return len(h.DetectSyntaxErrors(text)) == 0
}

// ValidateImports requires all import statements to precede any other
// statement; blank lines and comments are ignored.
func (h *PythonHandler) ValidateImports(text string) bool {
	seenOther := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		isImport := strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "from ")
		if isImport && seenOther {
			return false
		}
		if !isImport {
			seenOther = true
		}
	}
	return true
}

// ValidateStructure requires every class block to define __init__ and
// rejects class definitions nested inside another class.
func (h *PythonHandler) ValidateStructure(text string) bool {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if pythonClassRe.FindStringSubmatch(line) == nil {
			continue
		}
		end := pythonBlockEnd(lines, i)
		hasInit := false
		for j := i + 1; j <= end; j++ {
			if pythonClassRe.MatchString(strings.TrimLeft(lines[j], " \t")) &&
				pythonIndent(lines[j]) > pythonIndent(line) {
				return false
			}
			if pythonInitRe.MatchString(lines[j]) {
				hasInit = true
			}
		}
		if !hasInit {
			return false
		}
	}
	return true
}

// FormatCode is best-effort for an indentation-based language: trailing
// whitespace stripped, runs of blank lines collapsed to two.
func (h *PythonHandler) FormatCode(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blanks++
			if blanks > 2 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// InjectImports compares requested deps against existing ones at the
// top-level module granularity, so "os.path" counts as present once any
// "os" import exists (and vice versa).
func (h *PythonHandler) InjectImports(text string, deps []string) string {
	have := make(map[string]bool)
	for _, dep := range h.AnalyzeDependencies(text) {
		have[dep] = true
	}
	var missing []string
	for _, dep := range deps {
		canon := topLevelModule(dep)
		if canon == "" || have[canon] {
			continue
		}
		have[canon] = true
		missing = append(missing, dep)
	}
	if len(missing) == 0 {
		return text
	}
	return insertAfterImports(text, h.GenerateImports(missing), h.desc.ImportPatterns)
}

func (h *PythonHandler) WrapInFunction(text, name string) string {
	if strings.TrimSpace(text) == "" {
		return fmt.Sprintf("def %s():\n    pass", name)
	}
	return fmt.Sprintf("def %s():\n%s", name, indentBlock(text, "    "))
}
