package lang

import "regexp"

// NodeKind classifies a structure outline entry.
type NodeKind string

const (
	KindClass     NodeKind = "class"
	KindFunction  NodeKind = "function"
	KindInterface NodeKind = "interface"
	KindVariable  NodeKind = "variable"
	KindOther     NodeKind = "other"
)

// FunctionInfo describes one function found in a source file.
// Complexity is a cyclomatic-like branch count with a base value of 1.
type FunctionInfo struct {
	Name       string
	Params     []string
	ReturnType string
	Complexity int
}

// StructureNode is one outline entry with a zero-based inclusive line span.
type StructureNode struct {
	Kind      NodeKind
	Name      string
	StartLine int
	EndLine   int
}

// Diagnostic is a detected syntax problem. Line and Column are zero-based;
// Column is 0 when unknown.
type Diagnostic struct {
	Line    int
	Column  int
	Message string
}

// Analysis aggregates the results of a full per-file analysis pass.
type Analysis struct {
	Imports        []string
	Dependencies   []string
	Structure      []StructureNode
	SyntaxValid    bool
	ImportsValid   bool
	StructureValid bool
}

// Descriptor is the immutable per-handler metadata: supported extensions,
// the language identifier, and the pattern tables used by the regex phase.
type Descriptor struct {
	LanguageID string
	Extensions []string

	ImportPatterns   []*regexp.Regexp
	FunctionPatterns []*regexp.Regexp
	ClassPatterns    []*regexp.Regexp
	BlockPatterns    []*regexp.Regexp
}

// Handler is the per-language analysis/generation/validation contract.
//
// All operations are synchronous pure functions of their arguments. None of
// them returns an error: parser failures degrade to an empty/false/unchanged
// result and are reported only through the handler's diagnostic logger.
type Handler interface {
	Descriptor() Descriptor

	// AnalyzeImports is the regex phase: it applies each import pattern in
	// declaration order and maps matches to bare specifiers. Duplicates are
	// not removed at this layer.
	AnalyzeImports(text string) []string

	// AnalyzeDependencies is the canonical, deduplicated dependency set,
	// computed by syntax-tree traversal where a grammar is available.
	AnalyzeDependencies(text string) []string

	AnalyzeFunctions(text string) []FunctionInfo
	AnalyzeStructure(text string) []StructureNode
	DetectSyntaxErrors(text string) []Diagnostic

	GenerateImports(deps []string) string
	GenerateFunction(name string, params []string, returnType, body string) string
	GenerateClass(name string, properties, methods []string) string

	ValidateSyntax(text string) bool
	ValidateImports(text string) bool
	ValidateStructure(text string) bool

	FormatCode(text string) string
	InjectImports(text string, deps []string) string
	WrapInFunction(text, name string) string
}
