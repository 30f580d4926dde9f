package component

import (
	"github.com/vango-dev/toolbox/pkg/dom"
)

// Markers names the data-attributes (without the data- prefix) that mark
// mount points and references.
type Markers struct {
	Component string
	Ref       string
}

// DefaultMarkers are data-component and data-ref.
var DefaultMarkers = Markers{Component: "component", Ref: "ref"}

func (m Markers) withDefaults() Markers {
	if m.Component == "" {
		m.Component = DefaultMarkers.Component
	}
	if m.Ref == "" {
		m.Ref = DefaultMarkers.Ref
	}
	return m
}

// ComponentAttr returns the full mount attribute name.
func (m Markers) ComponentAttr() string { return "data-" + m.withDefaults().Component }

// RefAttr returns the full reference attribute name.
func (m Markers) RefAttr() string { return "data-" + m.withDefaults().Ref }

func (m Markers) componentSelector() string { return "[" + m.ComponentAttr() + "]" }
func (m Markers) refSelector() string       { return "[" + m.RefAttr() + "]" }

// reservedPrefixes returns the dataset keys excluded from props.
func (m Markers) reservedPrefixes() []string {
	m = m.withDefaults()
	return []string{dom.DatasetKey(m.Component), dom.DatasetKey(m.Ref)}
}

// componentName returns the registry name an element mounts, if any.
func (m Markers) componentName(el *dom.Node) string {
	return dom.GetAttr(el, m.ComponentAttr())
}
