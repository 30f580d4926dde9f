package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Attr represents a single attribute passed to an element factory.
type Attr struct {
	Key   string
	Value string
}

func attr(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Data creates a data-* attribute.
// Example: Data("share-target", "facebook") → data-share-target="facebook"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Property sets the property attribute (Open Graph meta tags).
func Property(p string) Attr { return attr("property", p) }

// Content sets the content attribute.
func Content(c string) Attr { return attr("content", c) }

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// AttrValue returns the value of the attribute key on n.
func AttrValue(n *Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// GetAttr returns the value of the attribute key on n, or "" when absent.
func GetAttr(n *Node, key string) string {
	v, _ := AttrValue(n, key)
	return v
}

// HasAttr reports whether n carries the attribute key.
func HasAttr(n *Node, key string) bool {
	_, ok := AttrValue(n, key)
	return ok
}

// SetAttr sets (or replaces) the attribute key on n.
func SetAttr(n *Node, key, value string) {
	if n == nil {
		return
	}
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttr removes the attribute key from n.
func RemoveAttr(n *Node, key string) {
	if n == nil {
		return
	}
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// DataEntry is one data-* attribute with its dataset key.
type DataEntry struct {
	// Key is the camel-cased dataset key ("data-share-target" → "shareTarget").
	Key   string
	Value string
}

// Dataset returns the data-* attributes of n in attribute order, keyed the
// way the browser's DOMStringMap keys them.
func Dataset(n *Node) []DataEntry {
	if n == nil {
		return nil
	}
	var out []DataEntry
	for _, a := range n.Attr {
		if a.Namespace != "" || !strings.HasPrefix(a.Key, "data-") {
			continue
		}
		out = append(out, DataEntry{Key: DatasetKey(a.Key[len("data-"):]), Value: a.Val})
	}
	return out
}

// DataValue returns the value of the dataset key on n.
func DataValue(n *Node, key string) (string, bool) {
	for _, e := range Dataset(n) {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// DatasetKey converts an attribute name suffix to its dataset key: every
// dash followed by a lowercase ASCII letter is dropped and the letter
// upper-cased.
func DatasetKey(name string) string {
	if !strings.Contains(name, "-") {
		return name
	}
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '-' && i+1 < len(name) && name[i+1] >= 'a' && name[i+1] <= 'z' {
			b.WriteByte(name[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
