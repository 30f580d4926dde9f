package component

import (
	"github.com/vango-dev/toolbox/pkg/dom"
	"github.com/vango-dev/toolbox/pkg/strcase"
)

// Refs maps reference names to their elements in document order.
type Refs map[string][]*dom.Node

// Base carries the state every component derives from its root element.
// Concrete components embed it:
//
//	type Counter struct {
//	    *component.Base
//	    count int
//	}
//
//	func NewCounter(el *dom.Node, props component.Props) component.Instance {
//	    c := &Counter{Base: component.NewBase(el, props)}
//	    c.count = int(c.Props.Float("count", 0))
//	    return c
//	}
type Base struct {
	// Root is the element the component is mounted on.
	Root *dom.Node

	// Props are the caller's defaults overridden by the element's
	// data-attributes.
	Props Props

	// Refs are the reference elements owned by this component.
	Refs Refs

	markers Markers
}

// NewBase derives props and refs for a component mounted on el.
// Only WithMarkers is meaningful among the options.
func NewBase(el *dom.Node, defaults Props, opts ...Option) *Base {
	o := buildOptions(opts)

	props := defaults.Clone()
	for k, v := range elementProps(el, o.markers) {
		props[k] = v
	}

	b := &Base{
		Root:    el,
		Props:   props,
		markers: o.markers,
	}
	b.Refs = b.collectRefs()
	return b
}

// collectRefs gathers descendant references. A reference that is itself a
// component root always belongs to this component; any other reference
// belongs to its nearest enclosing component root, or to this component when
// it has none.
func (b *Base) collectRefs() Refs {
	refs := Refs{}
	if b.Root == nil {
		return refs
	}

	componentSel := b.markers.componentSelector()
	refAttr := b.markers.RefAttr()

	for _, el := range dom.QueryAll(b.Root, b.markers.refSelector()) {
		if !dom.Matches(el, componentSel) {
			owner := dom.Closest(el, componentSel)
			if owner != nil && owner != b.Root {
				continue
			}
		}
		name := strcase.FromDashed(dom.GetAttr(el, refAttr))
		refs[name] = append(refs[name], el)
	}
	return refs
}

// Ref returns the first element referenced as name, or nil.
func (b *Base) Ref(name string) *dom.Node {
	if list := b.Refs[name]; len(list) > 0 {
		return list[0]
	}
	return nil
}

// RefList returns every element referenced as name.
func (b *Base) RefList(name string) []*dom.Node {
	return b.Refs[name]
}

// Destroy is a no-op teardown; components override it when they hold
// subscriptions.
func (b *Base) Destroy() error {
	return nil
}
