package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Grammar bindings are statically linked. The Python handler is the one
// pattern-only handler and has no grammar.

func typescriptGrammar() *sitter.Language {
	return sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
}

func javascriptGrammar() *sitter.Language {
	return sitter.NewLanguage(tree_sitter_javascript.Language())
}

func cssGrammar() *sitter.Language {
	return sitter.NewLanguage(tree_sitter_css.Language())
}

func htmlGrammar() *sitter.Language {
	return sitter.NewLanguage(tree_sitter_html.Language())
}
