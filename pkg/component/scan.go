package component

import (
	"sort"
	"strings"

	"github.com/vango-dev/toolbox/pkg/dom"
	"github.com/vango-dev/toolbox/pkg/strcase"
)

// MountPoint describes one element Attach would consider.
type MountPoint struct {
	// Name is the registry name in the mount attribute.
	Name string `json:"name"`

	// Key is the default instance key for Name.
	Key string `json:"key"`

	// Element is a short selector-like description ("div#app.hero").
	Element string `json:"element"`

	// Props are the decoded data-attributes.
	Props Props `json:"props"`

	// Refs lists the owned reference names with their element counts.
	Refs map[string]int `json:"refs"`
}

// Scan lists the mount points below root in document order without
// instantiating anything. Only WithMarkers is meaningful among the options.
func Scan(root *dom.Node, opts ...Option) []MountPoint {
	o := buildOptions(opts)
	var out []MountPoint
	for _, el := range dom.QueryAll(root, o.markers.componentSelector()) {
		name := o.markers.componentName(el)
		b := NewBase(el, nil, WithMarkers(o.markers))

		refs := make(map[string]int, len(b.Refs))
		for k, v := range b.Refs {
			refs[k] = len(v)
		}
		out = append(out, MountPoint{
			Name:    name,
			Key:     strcase.Uncapitalize(name),
			Element: describe(el),
			Props:   b.Props,
			Refs:    refs,
		})
	}
	return out
}

// Names returns the distinct registry names used below root, sorted.
func Names(root *dom.Node, opts ...Option) []string {
	seen := map[string]bool{}
	for _, mp := range Scan(root, opts...) {
		seen[mp.Name] = true
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func describe(el *dom.Node) string {
	var b strings.Builder
	b.WriteString(el.Data)
	if id := dom.GetAttr(el, "id"); id != "" {
		b.WriteString("#" + id)
	}
	for _, c := range strings.Fields(dom.GetAttr(el, "class")) {
		b.WriteString("." + c)
	}
	return b.String()
}
