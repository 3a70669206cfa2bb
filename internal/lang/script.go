package lang

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Shared tree-phase analysis for the TypeScript and JavaScript grammars.
// Both grammars use the same node kinds for everything this layer needs.

func scriptDependencies(root *sitter.Node, source []byte) []string {
	var deps []string
	walkTree(root, func(node *sitter.Node) bool {
		switch node.Kind() {
		case "import_statement", "export_statement":
			if str := childOfKind(node, "string"); str != nil {
				deps = append(deps, trimQuoted(nodeText(source, str)))
			}
		case "call_expression":
			fn := node.ChildByFieldName("function")
			if fn == nil || nodeText(source, fn) != "require" {
				return true
			}
			args := node.ChildByFieldName("arguments")
			if str := childOfKind(args, "string"); str != nil {
				deps = append(deps, trimQuoted(nodeText(source, str)))
			}
		}
		return true
	})
	return dedupe(deps)
}

// scriptBranchKinds are counted toward cyclomatic complexity in both
// languages; logical && and || are JavaScript-only.
var scriptBranchKinds = map[string]bool{
	"if_statement":       true,
	"for_statement":      true,
	"for_in_statement":   true,
	"while_statement":    true,
	"do_statement":       true,
	"switch_case":        true,
	"ternary_expression": true,
}

func scriptComplexity(body *sitter.Node, source []byte, countLogical bool) int {
	complexity := 1
	walkTree(body, func(node *sitter.Node) bool {
		if scriptBranchKinds[node.Kind()] {
			complexity++
			return true
		}
		if countLogical && node.Kind() == "binary_expression" {
			op := node.ChildByFieldName("operator")
			if op != nil {
				switch nodeText(source, op) {
				case "&&", "||":
					complexity++
				}
			}
		}
		return true
	})
	return complexity
}

func scriptParams(parameters *sitter.Node, source []byte) []string {
	if parameters == nil {
		return nil
	}
	var params []string
	for i := uint(0); i < parameters.NamedChildCount(); i++ {
		child := parameters.NamedChild(i)
		if child.Kind() == "comment" {
			continue
		}
		params = append(params, nodeText(source, child))
	}
	return params
}

func scriptReturnType(node *sitter.Node, source []byte) string {
	annotation := node.ChildByFieldName("return_type")
	if annotation == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(nodeText(source, annotation), ":"))
}

func scriptFunctions(root *sitter.Node, source []byte, countLogical bool) []FunctionInfo {
	var funcs []FunctionInfo
	walkTree(root, func(node *sitter.Node) bool {
		switch node.Kind() {
		case "function_declaration", "generator_function_declaration", "method_definition":
			name := nodeText(source, node.ChildByFieldName("name"))
			funcs = append(funcs, FunctionInfo{
				Name:       name,
				Params:     scriptParams(node.ChildByFieldName("parameters"), source),
				ReturnType: scriptReturnType(node, source),
				Complexity: scriptComplexity(node.ChildByFieldName("body"), source, countLogical),
			})
		case "variable_declarator":
			value := node.ChildByFieldName("value")
			if value == nil {
				return true
			}
			kind := value.Kind()
			if kind != "arrow_function" && kind != "function_expression" {
				return true
			}
			funcs = append(funcs, FunctionInfo{
				Name:       nodeText(source, node.ChildByFieldName("name")),
				Params:     scriptParams(value.ChildByFieldName("parameters"), source),
				ReturnType: scriptReturnType(value, source),
				Complexity: scriptComplexity(value.ChildByFieldName("body"), source, countLogical),
			})
		}
		return true
	})
	return funcs
}

func scriptStructure(root *sitter.Node, source []byte) []StructureNode {
	var nodes []StructureNode
	add := func(kind NodeKind, name string, node *sitter.Node) {
		nodes = append(nodes, StructureNode{
			Kind:      kind,
			Name:      name,
			StartLine: startLine(node),
			EndLine:   endLine(node),
		})
	}
	walkTree(root, func(node *sitter.Node) bool {
		named := func() string { return nodeText(source, node.ChildByFieldName("name")) }
		switch node.Kind() {
		case "class_declaration", "abstract_class_declaration":
			add(KindClass, named(), node)
		case "interface_declaration":
			add(KindInterface, named(), node)
		case "function_declaration", "generator_function_declaration":
			add(KindFunction, named(), node)
		case "enum_declaration", "type_alias_declaration":
			add(KindOther, named(), node)
		case "lexical_declaration", "variable_declaration":
			parent := node.Parent()
			if parent != nil && parent.Kind() != "program" && parent.Kind() != "export_statement" {
				return true
			}
			if declarator := childOfKind(node, "variable_declarator"); declarator != nil {
				add(KindVariable, nodeText(source, declarator.ChildByFieldName("name")), node)
			}
		}
		return true
	})
	return nodes
}

func scriptIdentifiers(root *sitter.Node, source []byte) map[string]bool {
	idents := make(map[string]bool)
	walkTree(root, func(node *sitter.Node) bool {
		switch node.Kind() {
		case "identifier", "property_identifier", "type_identifier", "shorthand_property_identifier":
			idents[nodeText(source, node)] = true
		}
		return true
	})
	return idents
}

// scriptImportsUsed checks that every dependency's derived identifier is used
// somewhere in the tree.
func scriptImportsUsed(root *sitter.Node, source []byte) bool {
	idents := scriptIdentifiers(root, source)
	for _, dep := range scriptDependencies(root, source) {
		name := deriveImportName(dep)
		if name == "" {
			continue
		}
		if !idents[name] {
			return false
		}
	}
	return true
}

func scriptHasExport(root *sitter.Node) bool {
	found := false
	walkTree(root, func(node *sitter.Node) bool {
		if node.Kind() == "export_statement" {
			found = true
		}
		return !found
	})
	return found
}

// scriptClassesHaveConstructors reports whether every class body declares a
// constructor method.
func scriptClassesHaveConstructors(root *sitter.Node, source []byte) bool {
	ok := true
	walkTree(root, func(node *sitter.Node) bool {
		kind := node.Kind()
		if kind != "class_declaration" && kind != "abstract_class_declaration" && kind != "class" {
			return true
		}
		body := node.ChildByFieldName("body")
		if body == nil {
			ok = false
			return true
		}
		hasCtor := false
		for i := uint(0); i < body.NamedChildCount(); i++ {
			member := body.NamedChild(i)
			if member.Kind() != "method_definition" {
				continue
			}
			if nodeText(source, member.ChildByFieldName("name")) == "constructor" {
				hasCtor = true
				break
			}
		}
		if !hasCtor {
			ok = false
		}
		return true
	})
	return ok
}
