package lang

import "regexp"

// PatternSet is the pure-data pattern library for one language. Pattern
// order matters: AnalyzeImports applies import patterns in declaration order.
type PatternSet struct {
	Imports   []*regexp.Regexp
	Functions []*regexp.Regexp
	Classes   []*regexp.Regexp
	Blocks    []*regexp.Regexp
}

var typescriptPatterns = PatternSet{
	Imports: []*regexp.Regexp{
		regexp.MustCompile(`import\s+(?:type\s+)?[\w{}*,\s]+\s+from\s+['"]([^'"]+)['"]`),
		regexp.MustCompile(`import\s+['"]([^'"]+)['"]`),
		regexp.MustCompile(`import\s*\(\s*['"]([^'"]+)['"]\s*\)`),
		regexp.MustCompile(`export\s+[\w{}*,\s]+\s+from\s+['"]([^'"]+)['"]`),
		regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`),
	},
	Functions: []*regexp.Regexp{
		regexp.MustCompile(`function\s+(\w+)\s*\(([^)]*)\)`),
		regexp.MustCompile(`(\w+)\s*=\s*(?:async\s+)?\(([^)]*)\)\s*(?::\s*[\w<>\[\]]+\s*)?=>`),
	},
	Classes: []*regexp.Regexp{
		regexp.MustCompile(`class\s+(\w+)`),
		regexp.MustCompile(`interface\s+(\w+)`),
	},
	Blocks: []*regexp.Regexp{
		regexp.MustCompile(`\{`),
		regexp.MustCompile(`\}`),
	},
}

var javascriptPatterns = PatternSet{
	Imports: []*regexp.Regexp{
		regexp.MustCompile(`import\s+[\w{}*,\s]+\s+from\s+['"]([^'"]+)['"]`),
		regexp.MustCompile(`import\s+['"]([^'"]+)['"]`),
		regexp.MustCompile(`import\s*\(\s*['"]([^'"]+)['"]\s*\)`),
		regexp.MustCompile(`export\s+[\w{}*,\s]+\s+from\s+['"]([^'"]+)['"]`),
		regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`),
	},
	Functions: []*regexp.Regexp{
		regexp.MustCompile(`function\s+(\w+)\s*\(([^)]*)\)`),
		regexp.MustCompile(`(\w+)\s*=\s*(?:async\s+)?\(([^)]*)\)\s*=>`),
	},
	Classes: []*regexp.Regexp{
		regexp.MustCompile(`class\s+(\w+)`),
	},
	Blocks: []*regexp.Regexp{
		regexp.MustCompile(`\{`),
		regexp.MustCompile(`\}`),
	},
}

var pythonPatterns = PatternSet{
	Imports: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*import\s+([\w.]+)`),
		regexp.MustCompile(`(?m)^\s*from\s+([\w.]+)\s+import`),
	},
	Functions: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^(\s*)def\s+(\w+)\s*\(([^)]*)\)\s*(?:->\s*([^:]+?)\s*)?:`),
	},
	Classes: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^(\s*)class\s+(\w+)`),
	},
	Blocks: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^(\s*)(?:def|class|if|elif|else|for|while|with|try)\b.*:\s*$`),
	},
}

var cssPatterns = PatternSet{
	Imports: []*regexp.Regexp{
		regexp.MustCompile(`@import\s+['"]([^'"]+)['"]`),
		regexp.MustCompile(`@import\s+url\(\s*['"]?([^'")]+)['"]?\s*\)`),
		regexp.MustCompile(`@use\s+['"]([^'"]+)['"]`),
	},
	Functions: []*regexp.Regexp{
		regexp.MustCompile(`@mixin\s+([\w-]+)(?:\s*\(([^)]*)\))?`),
		regexp.MustCompile(`@function\s+([\w-]+)(?:\s*\(([^)]*)\))?`),
	},
	Classes: []*regexp.Regexp{
		regexp.MustCompile(`\.([\w-]+)\s*\{`),
	},
	Blocks: []*regexp.Regexp{
		regexp.MustCompile(`\{`),
		regexp.MustCompile(`\}`),
	},
}

var htmlPatterns = PatternSet{
	Imports: []*regexp.Regexp{
		regexp.MustCompile(`<link[^>]+href=["']([^"']+)["']`),
		regexp.MustCompile(`<script[^>]+src=["']([^"']+)["']`),
		regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`),
	},
	Functions: []*regexp.Regexp{
		regexp.MustCompile(`function\s+(\w+)\s*\(([^)]*)\)`),
	},
	Classes: []*regexp.Regexp{
		regexp.MustCompile(`class\s+(\w+)`),
	},
	Blocks: []*regexp.Regexp{
		regexp.MustCompile(`<(\w+)[^>]*>`),
		regexp.MustCompile(`</(\w+)>`),
	},
}
