package dom

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// El creates an element with the given tag. Children may be Attr, *Node,
// []*Node, string (text) or nil.
func El(tag string, children ...any) *Node {
	n := &Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case Attr:
			SetAttr(n, v.Key, v.Value)
		case []Attr:
			for _, a := range v {
				SetAttr(n, a.Key, a.Value)
			}
		case *Node:
			if v != nil {
				n.AppendChild(v)
			}
		case []*Node:
			for _, c := range v {
				if c != nil {
					n.AppendChild(c)
				}
			}
		case string:
			n.AppendChild(Text(v))
		}
	}
	return n
}

// Text creates a text node.
func Text(content string) *Node {
	return &Node{Type: html.TextNode, Data: content}
}

// Document wraps children in a document node with an <html> root.
func Document(head, body *Node) *Node {
	doc := &Node{Type: html.DocumentNode}
	doc.AppendChild(El("html", head, body))
	return doc
}

// Element factories

func Html(children ...any) *Node    { return El("html", children...) }
func Head(children ...any) *Node    { return El("head", children...) }
func Body(children ...any) *Node    { return El("body", children...) }
func Title(children ...any) *Node   { return El("title", children...) }
func Meta(children ...any) *Node    { return El("meta", children...) }
func Div(children ...any) *Node     { return El("div", children...) }
func Span(children ...any) *Node    { return El("span", children...) }
func Section(children ...any) *Node { return El("section", children...) }
func Main(children ...any) *Node    { return El("main", children...) }
func Nav(children ...any) *Node     { return El("nav", children...) }
func Ul(children ...any) *Node      { return El("ul", children...) }
func Li(children ...any) *Node      { return El("li", children...) }
func A(children ...any) *Node       { return El("a", children...) }
func Button(children ...any) *Node  { return El("button", children...) }
func P(children ...any) *Node       { return El("p", children...) }
func Img(children ...any) *Node     { return El("img", children...) }
