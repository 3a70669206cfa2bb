package lang

import (
	"log/slog"
	"regexp"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// base carries the plumbing shared by every handler: the descriptor, the
// diagnostic logger, and (for AST-backed handlers) the grammar.
type base struct {
	desc    Descriptor
	grammar *sitter.Language
	logger  *slog.Logger
}

func newBase(desc Descriptor, grammar *sitter.Language, logger *slog.Logger) base {
	if logger == nil {
		logger = slog.Default()
	}
	return base{desc: desc, grammar: grammar, logger: logger}
}

func (b *base) Descriptor() Descriptor {
	return b.desc
}

// scanImports is the regex phase of import analysis: each pattern in
// declaration order, all matches in text order, first non-empty capture
// group as the specifier. Duplicates are kept.
func (b *base) scanImports(text string) []string {
	var specs []string
	for _, pattern := range b.desc.ImportPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			for _, group := range match[1:] {
				if group != "" {
					specs = append(specs, group)
					break
				}
			}
		}
	}
	return specs
}

// parse runs the tree phase. A nil tree means the parser could not process
// the input; the failure is reported to the logger and never propagated.
// Callers must Close() the returned tree.
func (b *base) parse(text string) *sitter.Tree {
	if b.grammar == nil {
		return nil
	}
	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(b.grammar); err != nil {
		b.logger.Debug("grammar rejected by parser", "language", b.desc.LanguageID, "error", err)
		return nil
	}
	tree := parser.Parse([]byte(text), nil)
	if tree == nil {
		b.logger.Debug("parse failed", "language", b.desc.LanguageID)
		return nil
	}
	return tree
}

// treeDiagnostics converts parser error and missing nodes into diagnostics
// with zero-based positions.
func (b *base) treeDiagnostics(text string) []Diagnostic {
	tree := b.parse(text)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	source := []byte(text)
	var diags []Diagnostic
	walkTree(tree.RootNode(), func(node *sitter.Node) bool {
		switch {
		case node.IsError():
			snippet := nodeText(source, node)
			if len(snippet) > 20 {
				snippet = snippet[:20]
			}
			diags = append(diags, Diagnostic{
				Line:    startLine(node),
				Column:  int(node.StartPosition().Column),
				Message: "syntax error near " + strings.TrimSpace(snippet),
			})
			return false
		case node.IsMissing():
			diags = append(diags, Diagnostic{
				Line:    startLine(node),
				Column:  int(node.StartPosition().Column),
				Message: "missing " + node.Kind(),
			})
			return false
		case !node.HasError():
			// Subtree is clean, no need to descend.
			return false
		}
		return true
	})
	return diags
}

// parsesClean reports whether the tree phase produced an error-free tree.
func (b *base) parsesClean(text string) bool {
	tree := b.parse(text)
	if tree == nil {
		return false
	}
	defer tree.Close()
	return !tree.RootNode().HasError()
}

// lastLineMatching returns the index of the last line matched by any of the
// given patterns, or -1.
func lastLineMatching(lines []string, patterns []*regexp.Regexp) int {
	last := -1
	for i, line := range lines {
		for _, pattern := range patterns {
			if pattern.MatchString(line) {
				last = i
				break
			}
		}
	}
	return last
}

// insertAfterImports places rendered import lines after the last existing
// import statement, or at the top of the file when there is none.
func insertAfterImports(text, rendered string, importPatterns []*regexp.Regexp) string {
	if rendered == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	last := lastLineMatching(lines, importPatterns)
	if last < 0 {
		return rendered + "\n" + text
	}
	head := strings.Join(lines[:last+1], "\n")
	tail := strings.Join(lines[last+1:], "\n")
	return head + "\n" + rendered + "\n" + tail
}

// missingDeps preserves the order of requested while dropping everything
// already present in existing.
func missingDeps(requested, existing []string) []string {
	have := make(map[string]bool, len(existing))
	for _, dep := range existing {
		have[dep] = true
	}
	var missing []string
	for _, dep := range requested {
		if !have[dep] {
			have[dep] = true
			missing = append(missing, dep)
		}
	}
	return missing
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// deriveImportName maps a specifier to the identifier a default import of it
// would use: last path segment, non-alphanumerics stripped, "_" prefix when
// the result starts with a digit.
func deriveImportName(spec string) string {
	segment := spec
	if idx := strings.LastIndex(segment, "/"); idx >= 0 {
		segment = segment[idx+1:]
	}
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" {
		return name
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return name
}

func trimQuoted(value string) string {
	value = strings.TrimSpace(value)
	return strings.Trim(value, "\"'`")
}

// reindentBraces reformats brace-delimited source: one statement per line as
// given, indentation recomputed from brace depth.
func reindentBraces(text, indent string) string {
	lines := strings.Split(text, "\n")
	depth := 0
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			out = append(out, "")
			continue
		}
		closing := 0
		for closing < len(trimmed) && (trimmed[closing] == '}' || trimmed[closing] == ')') {
			closing++
		}
		level := depth
		if closing > 0 {
			level -= closing
			if level < 0 {
				level = 0
			}
		}
		out = append(out, strings.Repeat(indent, level)+trimmed)
		depth += strings.Count(trimmed, "{") - strings.Count(trimmed, "}")
		if depth < 0 {
			depth = 0
		}
	}
	return strings.Join(out, "\n")
}

func indentBlock(text, indent string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
