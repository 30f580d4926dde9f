package dom

import (
	"sync"

	"github.com/andybalholm/cascadia"

	"github.com/vango-dev/toolbox/internal/errors"
)

// Selector is a compiled CSS selector group.
type Selector struct {
	src   string
	group cascadia.SelectorGroup
}

var selectorCache sync.Map // map[string]Selector

// Compile compiles a CSS selector (or comma separated group). Compiled
// selectors are cached by source text.
func Compile(sel string) (Selector, error) {
	if cached, ok := selectorCache.Load(sel); ok {
		return cached.(Selector), nil
	}
	group, err := cascadia.ParseGroup(sel)
	if err != nil {
		return Selector{}, errors.New("E020").
			WithDetail("Cannot compile selector " + sel).
			Wrap(err)
	}
	s := Selector{src: sel, group: group}
	selectorCache.Store(sel, s)
	return s, nil
}

// MustCompile is like Compile but panics on an invalid selector.
func MustCompile(sel string) Selector {
	s, err := Compile(sel)
	if err != nil {
		panic(err)
	}
	return s
}

// String returns the selector source.
func (s Selector) String() string { return s.src }

// Matches reports whether the element n matches the selector.
func (s Selector) Matches(n *Node) bool {
	if !IsElement(n) || s.group == nil {
		return false
	}
	return s.group.Match(n)
}

// QueryAll returns every matching descendant of root in document order.
// root itself is never included.
func (s Selector) QueryAll(root *Node) []*Node {
	if root == nil {
		return nil
	}
	var out []*Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, func(n *Node) bool {
			if s.Matches(n) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// Query returns the first matching descendant of root, or nil.
func (s Selector) Query(root *Node) *Node {
	if root == nil {
		return nil
	}
	var found *Node
	for c := root.FirstChild; c != nil && found == nil; c = c.NextSibling {
		Walk(c, func(n *Node) bool {
			if found != nil {
				return false
			}
			if s.Matches(n) {
				found = n
				return false
			}
			return true
		})
	}
	return found
}

// Closest returns n or its nearest ancestor matching the selector, or nil.
func (s Selector) Closest(n *Node) *Node {
	for p := n; p != nil; p = p.Parent {
		if s.Matches(p) {
			return p
		}
	}
	return nil
}

// The helpers below compile sel on the fly. An invalid selector matches
// nothing; use Compile to observe the error.

// QueryAll returns every descendant of root matching sel.
func QueryAll(root *Node, sel string) []*Node {
	s, err := Compile(sel)
	if err != nil {
		return nil
	}
	return s.QueryAll(root)
}

// Query returns the first descendant of root matching sel.
func Query(root *Node, sel string) *Node {
	s, err := Compile(sel)
	if err != nil {
		return nil
	}
	return s.Query(root)
}

// Matches reports whether n matches sel.
func Matches(n *Node, sel string) bool {
	s, err := Compile(sel)
	if err != nil {
		return false
	}
	return s.Matches(n)
}

// Closest returns n or its nearest ancestor matching sel.
func Closest(n *Node, sel string) *Node {
	s, err := Compile(sel)
	if err != nil {
		return nil
	}
	return s.Closest(n)
}
