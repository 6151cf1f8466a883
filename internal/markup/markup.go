package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// NodeType distinguishes element nodes from text leaves.
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// Node is one node of a parsed recipe document: an element with a lowercase
// tag name and ordered children, or a text leaf. Data holds the tag name for
// elements and the raw text for text nodes, mirroring x/net/html.
type Node struct {
	Type     NodeType
	Data     string
	Children []*Node
}

// Parse converts a recipe markup blob into a document tree. Parsing is
// error-tolerant: malformed input produces whatever tree the fragments allow,
// and an empty blob produces an empty document. The returned root is a
// synthetic container and is never nil.
func Parse(raw string) *Node {
	root := &Node{Type: ElementNode, Data: "document"}
	if strings.TrimSpace(raw) == "" {
		return root
	}
	parsed, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return root
	}
	convert(parsed, root)
	return root
}

func convert(src *html.Node, dst *Node) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			dst.Children = append(dst.Children, &Node{Type: TextNode, Data: c.Data})
		case html.ElementNode:
			n := &Node{Type: ElementNode, Data: strings.ToLower(c.Data)}
			convert(c, n)
			dst.Children = append(dst.Children, n)
		}
	}
}

// Text returns the concatenated text of every descendant text node,
// in document order.
func (n *Node) Text() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	if n.Type == TextNode {
		b.WriteString(n.Data)
		return
	}
	for _, c := range n.Children {
		c.writeText(b)
	}
}
