package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// visitFunc inspects a node during a tree walk. Returning false skips the
// node's children.
type visitFunc func(node *sitter.Node) bool

func walkTree(node *sitter.Node, visit visitFunc) {
	if node == nil {
		return
	}
	if !visit(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		walkTree(node.Child(i), visit)
	}
}

func nodeText(source []byte, node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// startLine and endLine are zero-based rows of a node's source span.
func startLine(node *sitter.Node) int {
	return int(node.StartPosition().Row)
}

func endLine(node *sitter.Node) int {
	return int(node.EndPosition().Row)
}

func childOfKind(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// descendantOfKind searches the subtree below node, excluding node itself.
func descendantOfKind(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return child
		}
		if found := descendantOfKind(child, kind); found != nil {
			return found
		}
	}
	return nil
}

func countDescendantsOfKind(node *sitter.Node, kind string) int {
	count := 0
	if node == nil {
		return 0
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			count++
		}
		count += countDescendantsOfKind(child, kind)
	}
	return count
}
