package dom

import "strings"

// Declaration is one property of an inline style.
type Declaration struct {
	Property string
	Value    string
}

// Style parses the inline style of n into its declarations, in order.
func Style(n *Node) []Declaration {
	var out []Declaration
	for _, part := range strings.Split(GetAttr(n, "style"), ";") {
		prop, value, ok := strings.Cut(part, ":")
		prop = strings.TrimSpace(prop)
		if !ok || prop == "" {
			continue
		}
		out = append(out, Declaration{Property: strings.ToLower(prop), Value: strings.TrimSpace(value)})
	}
	return out
}

// StyleValue returns the value of one inline style property.
func StyleValue(n *Node, prop string) string {
	for _, d := range Style(n) {
		if d.Property == prop {
			return d.Value
		}
	}
	return ""
}

// SetStyle sets inline style properties on n, given as property/value
// pairs. Existing properties keep their position.
func SetStyle(n *Node, pairs ...string) {
	decls := Style(n)
	for i := 0; i+1 < len(pairs); i += 2 {
		prop := strings.ToLower(pairs[i])
		found := false
		for j := range decls {
			if decls[j].Property == prop {
				decls[j].Value = pairs[i+1]
				found = true
				break
			}
		}
		if !found {
			decls = append(decls, Declaration{Property: prop, Value: pairs[i+1]})
		}
	}
	writeStyle(n, decls)
}

// ClearStyle removes the given properties from the inline style of n. The
// style attribute is dropped once empty.
func ClearStyle(n *Node, props ...string) {
	drop := make(map[string]bool, len(props))
	for _, p := range props {
		drop[strings.ToLower(p)] = true
	}
	var kept []Declaration
	for _, d := range Style(n) {
		if !drop[d.Property] {
			kept = append(kept, d)
		}
	}
	writeStyle(n, kept)
}

func writeStyle(n *Node, decls []Declaration) {
	if len(decls) == 0 {
		RemoveAttr(n, "style")
		return
	}
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.Property + ": " + d.Value
	}
	SetAttr(n, "style", strings.Join(parts, "; ")+";")
}
