// Package markup adapts produced Markdown text into document nodes that a
// host documentation build can embed at a call site.
package markup

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// CommonMark core only: the produced text must not rely on extensions a
// host parser might not enable.
var markdown = goldmark.New()

// Parse parses Markdown text and returns the ordered top-level nodes of
// the result. When the whole text parses to a single wrapping paragraph,
// its inline children are returned instead, so that a short result (one
// word or phrase) embeds inline rather than as a block. The returned
// nodes reference source, which callers keep for text extraction.
func Parse(source []byte) []ast.Node {
	document := markdown.Parser().Parse(text.NewReader(source))

	root := ast.Node(document)
	if document.ChildCount() == 1 {
		if paragraph, ok := document.FirstChild().(*ast.Paragraph); ok {
			root = paragraph
		}
	}

	var nodes []ast.Node
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		nodes = append(nodes, child)
	}
	return nodes
}
