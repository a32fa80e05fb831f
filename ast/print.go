package ast

import (
	"bufio"
	"io"
	"strings"
)

const indent = "  "

// Fprint writes the tree rooted at n to w, one node per line, indented
// two spaces per nesting level, children in source order.
func Fprint(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	var err error
	Walk(n, func(node *Node, depth int) bool {
		if err != nil {
			return false
		}
		_, err = bw.WriteString(strings.Repeat(indent, depth) + node.Label() + "\n")
		return err == nil
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

// Dump returns the text produced by Fprint.
func Dump(n *Node) string {
	var sb strings.Builder
	_ = Fprint(&sb, n)
	return sb.String()
}

// Walk visits n and its descendants depth first, calling fn with each node
// and its depth (0 for n). Children of a node are skipped when fn returns false.
func Walk(n *Node, fn func(node *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		walk(child, depth+1, fn)
	}
}

// Count returns the number of nodes in the tree, including n.
func Count(n *Node) int {
	count := 0
	Walk(n, func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Depth returns the deepest block nesting below n.
func Depth(n *Node) int {
	deepest := 0
	var visit func(node *Node, level int)
	visit = func(node *Node, level int) {
		if node.Kind.IsBlock() {
			level++
		}
		if level > deepest {
			deepest = level
		}
		if !node.Kind.IsContainer() {
			return
		}
		for _, child := range node.Children {
			visit(child, level)
		}
	}
	if n != nil {
		visit(n, 0)
	}
	return deepest
}
