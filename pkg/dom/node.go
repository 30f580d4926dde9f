package dom

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/toolbox/internal/errors"
)

// Node is an HTML node. Element identity is pointer identity.
type Node = html.Node

// Parse parses a complete HTML document.
func Parse(r io.Reader) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.New("E021").Wrap(err)
	}
	return doc, nil
}

// ParseString parses a complete HTML document from a string.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

// ParseFragment parses markup in the context of a <body> element and returns
// it wrapped in a detached <div>.
func ParseFragment(s string) (*Node, error) {
	body := &Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		return nil, errors.New("E021").Wrap(err)
	}
	wrapper := El("div")
	for _, n := range nodes {
		wrapper.AppendChild(n)
	}
	return wrapper, nil
}

// Render writes n as HTML.
func Render(w io.Writer, n *Node) error {
	return html.Render(w, n)
}

// RenderString renders n as an HTML string.
func RenderString(n *Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// IsElement reports whether n is an element node.
func IsElement(n *Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n *Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	Walk(n, func(c *Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, fn)
	}
}

// Contains reports whether other is n or one of its descendants.
func Contains(n, other *Node) bool {
	for p := other; p != nil; p = p.Parent {
		if p == n {
			return true
		}
	}
	return false
}
